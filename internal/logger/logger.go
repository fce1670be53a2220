// Package logger holds the process-wide diagnostics sink.
//
// There is exactly one sink at a time. Replacing it is safe from any
// goroutine, including while a hook is running.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is the severity of a log message
type Level int

const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Proc receives every log message. Closures carry any user state.
type Proc func(level Level, format string, args ...any)

var (
	mu   sync.RWMutex
	proc Proc = defaultProc

	stdout = log.New(os.Stdout, "", log.LstdFlags)
	stderr = log.New(os.Stderr, "", log.LstdFlags)

	debugEnabled = os.Getenv("INPUTHOOK_DEBUG") != ""
)

// defaultProc sends Info to stdout and Warn/Error to stderr. Debug output is
// dropped unless INPUTHOOK_DEBUG is set.
func defaultProc(level Level, format string, args ...any) {
	switch level {
	case Debug:
		if debugEnabled {
			stdout.Printf("[DEBUG] "+format, args...)
		}
	case Info:
		stdout.Printf(format, args...)
	default:
		stderr.Printf(format, args...)
	}
}

// Set installs p as the sink. A nil p restores the default sink.
func Set(p Proc) {
	mu.Lock()
	defer mu.Unlock()
	if p == nil {
		p = defaultProc
	}
	proc = p
}

// Logf forwards a message to the current sink.
func Logf(level Level, format string, args ...any) {
	mu.RLock()
	p := proc
	mu.RUnlock()
	p(level, format, args...)
}

func Debugf(format string, args ...any) { Logf(Debug, format, args...) }
func Infof(format string, args ...any)  { Logf(Info, format, args...) }
func Warnf(format string, args ...any)  { Logf(Warn, format, args...) }
func Errorf(format string, args ...any) { Logf(Error, format, args...) }

// ParseLevel accepts the names printed by Level.String, in any case.
func ParseLevel(s string) (Level, error) {
	for l := Debug; l <= Error; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	if strings.EqualFold(s, "warning") {
		return Warn, nil
	}
	return 0, fmt.Errorf("logger: unknown level %q", s)
}

// Filter drops messages below threshold before handing them to next.
func Filter(threshold Level, next Proc) Proc {
	return func(level Level, format string, args ...any) {
		if level >= threshold {
			next(level, format, args...)
		}
	}
}

// Stdout writes every message it receives to stdout, prefixed with its
// level. It is meant to follow Filter.
func Stdout(level Level, format string, args ...any) {
	stdout.Printf("["+level.String()+"] "+format, args...)
}
