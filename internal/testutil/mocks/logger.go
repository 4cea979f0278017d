package mocks

import "github.com/kevin07696/payment-simulator/internal/domain/ports"

// Logger is a capturing implementation of ports.Logger for testing
type Logger struct {
	InfoCalls  []LogCall
	ErrorCalls []LogCall
	WarnCalls  []LogCall
	DebugCalls []LogCall
}

// LogCall represents a captured log call
type LogCall struct {
	Message string
	Fields  []ports.Field
}

// NewLogger creates a capturing logger
func NewLogger() *Logger {
	return &Logger{}
}

func (m *Logger) Info(msg string, fields ...ports.Field) {
	m.InfoCalls = append(m.InfoCalls, LogCall{Message: msg, Fields: fields})
}

func (m *Logger) Error(msg string, fields ...ports.Field) {
	m.ErrorCalls = append(m.ErrorCalls, LogCall{Message: msg, Fields: fields})
}

func (m *Logger) Warn(msg string, fields ...ports.Field) {
	m.WarnCalls = append(m.WarnCalls, LogCall{Message: msg, Fields: fields})
}

func (m *Logger) Debug(msg string, fields ...ports.Field) {
	m.DebugCalls = append(m.DebugCalls, LogCall{Message: msg, Fields: fields})
}
