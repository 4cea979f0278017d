package frames

import (
	"fmt"
	"sync"

	"github.com/kevin07696/payment-simulator/internal/domain/ports"
)

// Driver is the embedded widget's command sink. Implementations execute the
// command's script inside the page-scripted card entry surface.
type Driver interface {
	Post(cmd *Command)
}

// Handler receives the widget's asynchronous lifecycle events after the
// bridge has applied its own semantics (identity guard, panic containment)
type Handler interface {
	// HandlePageLoaded fires once the widget's page is ready for commands
	HandlePageLoaded()

	// HandleComplete fires when the in-flight action finishes. What the
	// payload means depends on which action was running; the handler owns
	// that dispatch. A returned error is surfaced through the reporter.
	HandleComplete(response string) error

	// HandleValidationChange fires when a form control's validity changes
	HandleValidationChange(domID string, valid bool)

	// HandleRendered / HandleRemoved fire when an action's surface appears
	// or disappears
	HandleRendered(actionID string)
	HandleRemoved(actionID string)

	// HandleErrorMessage fires when the widget reports an error for display
	HandleErrorMessage(message string)
}

// ErrorReporter is the orchestrator's generic error channel
type ErrorReporter interface {
	ReportError(err error)
}

// Bridge mediates between the orchestrator and the embedded capture widget.
// Commands flow out through Issue, events flow back in through the widget
// callback methods.
type Bridge struct {
	mu     sync.Mutex
	last   *Command
	driver Driver

	handler  Handler
	reporter ErrorReporter
	logger   ports.Logger
}

// NewBridge wires a widget driver to a handler
func NewBridge(driver Driver, handler Handler, reporter ErrorReporter, logger ports.Logger) *Bridge {
	return &Bridge{
		driver:   driver,
		handler:  handler,
		reporter: reporter,
		logger:   logger,
	}
}

// Issue hands a command to the widget, but only if it differs by identity
// from the last issued command. A re-render replaying the same command
// reference results in no dispatch. Reports whether the command was posted.
func (b *Bridge) Issue(cmd *Command) bool {
	if cmd == nil {
		return false
	}

	b.mu.Lock()
	if b.last == cmd {
		b.mu.Unlock()
		return false
	}
	// The guard is recorded before posting so a re-entrant re-render
	// observes the command as already issued.
	b.last = cmd
	b.mu.Unlock()

	b.driver.Post(cmd)
	return true
}

// LastIssued returns the most recently issued command reference
func (b *Bridge) LastIssued() *Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// OnPageLoaded implements the widget callback contract
func (b *Bridge) OnPageLoaded() {
	b.logger.Debug("frames: page loaded")
	b.handler.HandlePageLoaded()
}

// OnComplete dispatches an action completion to the handler. Errors and
// panics raised while handling the completion are surfaced through the
// orchestrator's error channel; they never crash the bridge.
func (b *Bridge) OnComplete(response string) {
	b.logger.Debug("frames: action complete", ports.String("response", response))

	defer func() {
		if r := recover(); r != nil {
			b.reporter.ReportError(fmt.Errorf("frames completion handler panic: %v", r))
		}
	}()

	if err := b.handler.HandleComplete(response); err != nil {
		b.reporter.ReportError(err)
	}
}

// OnError surfaces a widget error message for display
func (b *Bridge) OnError(message string) {
	b.logger.Debug("frames: error", ports.String("message", message))
	b.handler.HandleErrorMessage(message)
}

// OnFocusChange implements the widget callback contract
func (b *Bridge) OnFocusChange(domID string, focused bool) {
	b.logger.Debug("frames: focus change",
		ports.String("dom_id", domID),
		ports.Bool("focused", focused))
}

// OnProgressChanged implements the widget callback contract
func (b *Bridge) OnProgressChanged(progress int) {
	b.logger.Debug("frames: progress", ports.Int("progress", progress))
}

// OnRendered implements the widget callback contract
func (b *Bridge) OnRendered(actionID string) {
	b.logger.Debug("frames: rendered", ports.String("action_id", actionID))
	b.handler.HandleRendered(actionID)
}

// OnRemoved implements the widget callback contract
func (b *Bridge) OnRemoved(actionID string) {
	b.logger.Debug("frames: removed", ports.String("action_id", actionID))
	b.handler.HandleRemoved(actionID)
}

// OnValidationChange implements the widget callback contract
func (b *Bridge) OnValidationChange(domID string, valid bool) {
	b.logger.Debug("frames: validation change",
		ports.String("dom_id", domID),
		ports.Bool("valid", valid))
	b.handler.HandleValidationChange(domID, valid)
}
