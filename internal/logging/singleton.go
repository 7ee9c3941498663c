package logging

import (
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// InitLogger initializes the singleton logger with the given configuration.
// Calling it again replaces the instance, which tests rely on.
func InitLogger(config *Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	instance = logger
	return nil
}

// GetLogger returns the singleton logger instance.
// It panics if InitLogger has not been called.
func GetLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		panic("logger not initialized - call logging.InitLogger() first")
	}

	return instance
}
