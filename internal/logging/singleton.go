package logging

import (
	"sync"
)

var (
	instance  *Logger
	once      sync.Once
	mu        sync.RWMutex
	logConfig *LogConfig
)

// Configure sets the logging configuration.
// This should be called before any logger usage.
func Configure(config *LogConfig) {
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
}

// GetLogger returns the singleton logger instance.
// If no config was provided via Configure(), a stdout-only default is used so
// tests and tools do not have to care about log files.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		cfg := logConfig
		if cfg == nil {
			cfg = &LogConfig{}
		}

		var err error
		instance, err = NewLogger(cfg)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})

	return instance
}
