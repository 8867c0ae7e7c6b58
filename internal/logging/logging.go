package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ANSI color codes for terminal output
const (
	colorRed    = "\033[97;41m"
	colorGreen  = "\033[97;42m"
	colorYellow = "\033[90;43m"
	colorBlue   = "\033[97;44m"
	colorReset  = "\033[0m"
)

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	File       string `json:"file"`        // Path to log file
	MaxSize    int    `json:"max_size"`    // Max size in MB
	MaxBackups int    `json:"max_backups"` // Number of backups to keep
	MaxAge     int    `json:"max_age"`     // Max age in days
}

type Logger struct {
	*log.Logger
	writer *lumberjack.Logger
}

// NewLogger creates a logger writing to stdout, and additionally to a
// rotated file when config.File is set.
func NewLogger(config *LogConfig) (*Logger, error) {
	if config.File == "" {
		return &Logger{Logger: log.New(os.Stdout, "", log.LstdFlags)}, nil
	}

	// Create log directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(config.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Set up log rotation
	writer := &lumberjack.Logger{
		Filename:   config.File,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   true,
	}

	// Write to both file and stdout
	multiWriter := io.MultiWriter(writer, os.Stdout)
	logger := log.New(multiWriter, "", log.LstdFlags)

	return &Logger{
		Logger: logger,
		writer: writer,
	}, nil
}

func (l *Logger) Close() error {
	if l.writer == nil {
		return nil
	}
	return l.writer.Close()
}

func (l *Logger) Debug(format string, v ...interface{}) {
	prefix := colorBlue + "[DEBUG]" + colorReset
	l.Printf(prefix+" "+format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	prefix := colorGreen + "[INFO]" + colorReset
	l.Printf(prefix+" "+format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	prefix := colorYellow + "[WARN]" + colorReset
	l.Printf(prefix+" "+format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	prefix := colorRed + "[ERROR]" + colorReset
	l.Printf(prefix+" "+format, v...)
}

// LogHTTPError logs an HTTP error with request context
func (l *Logger) LogHTTPError(method, path, clientIP string, status int, message string, err error) {
	if err != nil {
		l.Error("%s %s | %s | %d | %s: %v", method, path, clientIP, status, message, err)
		return
	}
	l.Error("%s %s | %s | %d | %s", method, path, clientIP, status, message)
}
