// Package hook observes and synthesizes system-wide keyboard and mouse
// input.
//
// A single process-wide engine backs the package functions. Enable starts a
// dedicated listener thread which translates native input into
// event.Event values and hands each one to the DispatchProc inline, so a
// slow callback delays the input itself on platforms that hook
// synchronously. Disable may be called from the callback.
//
//	hook.SetDispatchProc(func(ev *event.Event) {
//		if ev.Type == event.KeyPressed && ev.Keyboard.Keycode == event.KeyEscape {
//			hook.Disable()
//		}
//	})
//	if err := hook.Enable(); err != nil {
//		log.Fatal(err)
//	}
//	hook.Wait()
package hook

import (
	"context"
	"sync"
	"time"

	"inputhook/event"
	"inputhook/internal/logger"
	"inputhook/internal/platform"
	"inputhook/internal/translate"
)

// Screen describes one monitor
type Screen = platform.Screen

// LogLevel is the severity passed to a LoggerProc
type LogLevel = logger.Level

const (
	LogDebug = logger.Debug
	LogInfo  = logger.Info
	LogWarn  = logger.Warn
	LogError = logger.Error
)

// LoggerProc receives the library's diagnostics
type LoggerProc = logger.Proc

var defaultEngine = sync.OnceValue(func() *Engine {
	b, err := newBackend()
	return newEngine(b, err)
})

// Default returns the process-wide engine.
func Default() *Engine { return defaultEngine() }

// SetLoggerProc replaces the diagnostics sink. nil restores the default,
// which prints Info to stdout and Warn/Error to stderr.
func SetLoggerProc(p LoggerProc) { logger.Set(p) }

func SetDispatchProc(p DispatchProc) { Default().SetDispatchProc(p) }

// SetMultiClick overrides the multi-click interval and the pixel tolerance
// of later runs. Zero values use the platform settings.
func SetMultiClick(interval time.Duration, tolerance int) {
	Default().SetClickConfig(translate.ClickConfig{Interval: interval, Tolerance: tolerance})
}

func Enable() error   { return Default().Enable() }
func Disable() error  { return Default().Disable() }
func IsEnabled() bool { return Default().IsEnabled() }
func Wait()           { Default().Wait() }

func WaitContext(ctx context.Context) error { return Default().WaitContext(ctx) }

// PostEvent injects ev through the native input stream. KeyTyped and
// MouseClicked are derived events and post nothing.
func PostEvent(ev *event.Event) error { return Default().PostEvent(ev) }

// Screens returns the attached monitors, or nil when they cannot be
// enumerated.
func Screens() []Screen { return Default().Screens() }

func AutoRepeatRate() int                { return Default().AutoRepeatRate() }
func AutoRepeatDelay() int               { return Default().AutoRepeatDelay() }
func PointerAccelerationMultiplier() int { return Default().PointerAccelerationMultiplier() }
func PointerAccelerationThreshold() int  { return Default().PointerAccelerationThreshold() }
func PointerSensitivity() int            { return Default().PointerSensitivity() }
func MultiClickTime() int                { return Default().MultiClickTime() }
