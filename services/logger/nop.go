package logsvc

import "github.com/classreconnect/backend/core"

// NopLogger discards everything. Meant for tests.
type NopLogger struct{}

var _ core.Logger = (*NopLogger)(nil)

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (l *NopLogger) Enable(enabled bool)                   {}
func (l *NopLogger) Debug(msg string, args ...interface{}) {}
func (l *NopLogger) Info(msg string, args ...interface{})  {}
func (l *NopLogger) Warn(msg string, args ...interface{})  {}
func (l *NopLogger) Error(msg string, args ...interface{}) {}
func (l *NopLogger) Fatal(msg string, args ...interface{}) {}
