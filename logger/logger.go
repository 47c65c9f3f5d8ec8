// Package logger bootstraps the process-wide zap logger.
package logger

import "go.uber.org/zap"

var log = zap.NewNop()

// Init replaces the no-op logger with a production zap logger. Call once
// from main before anything logs.
func Init() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	log = l
	return nil
}

func L() *zap.Logger { return log }

func Sync() { _ = log.Sync() }
