package mocks

import (
	"sync"

	"github.com/kevin07696/payment-simulator/internal/frames"
)

// FramesDriver records every command posted into the embedded widget
type FramesDriver struct {
	mu     sync.Mutex
	Posted []*frames.Command
}

// NewFramesDriver creates a recording widget driver
func NewFramesDriver() *FramesDriver {
	return &FramesDriver{}
}

// Post implements frames.Driver
func (d *FramesDriver) Post(cmd *frames.Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Posted = append(d.Posted, cmd)
}

// Commands returns a snapshot of the posted commands
func (d *FramesDriver) Commands() []*frames.Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*frames.Command(nil), d.Posted...)
}

// Last returns the most recently posted command, or nil
func (d *FramesDriver) Last() *frames.Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Posted) == 0 {
		return nil
	}
	return d.Posted[len(d.Posted)-1]
}
