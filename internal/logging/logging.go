// Package logging configures the process-wide stdlib logger from the
// NOTI_LOG environment variable: a level filter over log.Printf, defaulting
// to info.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level is the minimum severity that reaches the logger.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError
	case "warn", "warning":
		return LevelWarn
	case "debug":
		return LevelDebug
	case "trace":
		return LevelTrace
	default:
		return LevelInfo
	}
}

var current = LevelInfo

// Init reads NOTI_LOG (default "info") and sets the process-wide filter
// level. Call once at process start, before any other package logs.
func Init() {
	env := os.Getenv("NOTI_LOG")
	if env == "" {
		env = "info"
	}
	current = parseLevel(env)
	log.SetFlags(log.Ldate | log.Ltime)
}

func enabled(l Level) bool { return l <= current }

func Errorf(format string, args ...any) {
	if enabled(LevelError) {
		log.Output(2, "ERROR "+fmt.Sprintf(format, args...))
	}
}

func Warnf(format string, args ...any) {
	if enabled(LevelWarn) {
		log.Output(2, "WARN  "+fmt.Sprintf(format, args...))
	}
}

func Infof(format string, args ...any) {
	if enabled(LevelInfo) {
		log.Output(2, "INFO  "+fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...any) {
	if enabled(LevelDebug) {
		log.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
	}
}

func Tracef(format string, args ...any) {
	if enabled(LevelTrace) {
		log.Output(2, "TRACE "+fmt.Sprintf(format, args...))
	}
}

// Fatalf logs at error level and terminates the process; reserved for
// unrecoverable startup failure.
func Fatalf(format string, args ...any) {
	log.Fatalf("FATAL "+format, args...)
}
