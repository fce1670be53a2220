package hook

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"inputhook/event"
	"inputhook/internal/deadkey"
	"inputhook/internal/logger"
	"inputhook/internal/platform"
	"inputhook/internal/status"
	"inputhook/internal/synth"
	"inputhook/internal/translate"
)

// State is the lifecycle state of an Engine
type State int

const (
	Stopped State = iota
	Starting
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// DispatchProc receives every event on the listener thread. The event is
// only valid for the duration of the call.
type DispatchProc func(ev *event.Event)

// Engine owns one listener thread at a time. All methods are safe for
// concurrent use; Disable may also be called from inside the DispatchProc.
type Engine struct {
	backend    platform.Backend
	backendErr error

	mu       sync.Mutex
	state    State
	capture  platform.Capture
	done     chan struct{} // closed when the current listener exits
	finished chan struct{} // closed and replaced after each completed run
	tid      uint64        // listener OS thread, 0 when none

	dispatch atomic.Pointer[DispatchProc]
	clicks   atomic.Pointer[translate.ClickConfig]

	synthMu sync.Mutex
	synth   *synth.Synthesizer
}

func newEngine(b platform.Backend, err error) *Engine {
	return &Engine{
		backend:    b,
		backendErr: err,
		finished:   make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsEnabled reports whether the listener is running.
func (e *Engine) IsEnabled() bool { return e.State() == Running }

// BackendName names the native backend, or "" when none is available.
func (e *Engine) BackendName() string {
	if e.backend == nil {
		return ""
	}
	return e.backend.Name()
}

// SetDispatchProc installs the callback. nil discards events.
func (e *Engine) SetDispatchProc(p DispatchProc) {
	if p == nil {
		e.dispatch.Store(nil)
		return
	}
	e.dispatch.Store(&p)
}

// SetClickConfig overrides the multi-click interval and tolerance used by
// runs started after the call. Zero fields fall back to the platform.
func (e *Engine) SetClickConfig(cfg translate.ClickConfig) {
	e.clicks.Store(&cfg)
}

func (e *Engine) deliver(ev *event.Event) {
	if p := e.dispatch.Load(); p != nil {
		(*p)(ev)
	}
}

// Enable starts the listener and returns once capture is installed or
// failed to install. A Disable that lands while the listener is starting
// makes Enable return NotRunning.
func (e *Engine) Enable() error {
	if e.backendErr != nil {
		return status.Wrap(status.Failure, e.backendErr)
	}

	e.mu.Lock()
	switch e.state {
	case Running:
		e.mu.Unlock()
		return status.AlreadyRunning
	case Starting, Stopping:
		e.mu.Unlock()
		return status.Busy
	}
	e.state = Starting
	done := make(chan struct{})
	e.done = done
	e.mu.Unlock()

	ready := make(chan error, 1)
	go e.run(ready, done)
	return <-ready
}

// Disable stops the listener. From any goroutine but the listener it waits
// for the listener to exit; from inside the DispatchProc it only requests
// the stop, which completes after the callback returns.
func (e *Engine) Disable() error {
	e.mu.Lock()
	switch e.state {
	case Stopped:
		e.mu.Unlock()
		return status.NotRunning
	case Stopping:
		e.mu.Unlock()
		return status.Busy
	}
	e.state = Stopping
	// A nil capture means the listener is still starting; it checks the
	// state before it starts waiting. Interrupt never blocks.
	if e.capture != nil {
		e.capture.Interrupt()
	}
	done := e.done
	reentrant := e.tid != 0 && e.tid == threadID()
	e.mu.Unlock()

	if reentrant {
		return nil
	}
	<-done
	return nil
}

// Wait blocks until the current run has ended. It returns at once when the
// hook is stopped.
func (e *Engine) Wait() {
	_ = e.WaitContext(context.Background())
}

// WaitContext is Wait with cancellation.
func (e *Engine) WaitContext(ctx context.Context) error {
	e.mu.Lock()
	if e.state == Stopped {
		e.mu.Unlock()
		return nil
	}
	finished := e.finished
	e.mu.Unlock()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) clickConfig() translate.ClickConfig {
	var cfg translate.ClickConfig
	if c := e.clicks.Load(); c != nil {
		cfg = *c
	}
	if cfg.Interval <= 0 {
		if ms, err := e.backend.MultiClickTime(); err == nil && ms > 0 {
			cfg.Interval = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg
}

func (e *Engine) run(ready chan<- error, done chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)

	capture, err := e.backend.OpenCapture()
	if err != nil {
		logger.Errorf("[HOOK] Failed to install %s capture: %v", e.backend.Name(), err)
		e.mu.Lock()
		e.state = Stopped
		close(e.finished)
		e.finished = make(chan struct{})
		e.mu.Unlock()
		ready <- err
		return
	}

	resolver := deadkey.NewResolver(e.backend.Layouts(), e.backend.Suppress)
	resolver.Load()
	tr := translate.New(e.backend.Table(), resolver, e.clickConfig())

	e.mu.Lock()
	e.tid = threadID()
	aborted := e.state == Stopping
	if !aborted {
		e.state = Running
		e.capture = capture
	}
	e.mu.Unlock()
	if aborted {
		ready <- status.NotRunning
	} else {
		ready <- nil
	}

	if aborted {
		logger.Debugf("[HOOK] Disabled before the listener started")
	} else {
		logger.Debugf("[HOOK] %s listener running", e.backend.Name())
		e.deliver(&event.Event{Type: event.HookEnabled, Time: e.backend.Now()})

		err = capture.Run(func(n translate.Native) bool {
			return tr.Translate(n, e.deliver)
		})
		if err != nil {
			logger.Errorf("[HOOK] Listener stopped: %v", err)
		}
		e.deliver(&event.Event{Type: event.HookDisabled, Time: e.backend.Now()})
	}

	e.mu.Lock()
	e.capture = nil
	e.mu.Unlock()
	if err := capture.Close(); err != nil {
		logger.Warnf("[HOOK] Failed to release capture: %v", err)
	}
	resolver.Unload()

	e.mu.Lock()
	e.state = Stopped
	e.tid = 0
	close(e.finished)
	e.finished = make(chan struct{})
	e.mu.Unlock()
	logger.Debugf("[HOOK] Listener exited")
}

func (e *Engine) synthesizer() (*synth.Synthesizer, error) {
	e.synthMu.Lock()
	defer e.synthMu.Unlock()
	if e.synth != nil {
		return e.synth, nil
	}
	if e.backendErr != nil {
		return nil, status.Wrap(status.Failure, e.backendErr)
	}
	inj, err := e.backend.Injector()
	if err != nil {
		return nil, err
	}
	e.synth = synth.New(e.backend.Table(), inj)
	return e.synth, nil
}

// PostEvent injects ev as native input. Failures are logged and returned.
func (e *Engine) PostEvent(ev *event.Event) error {
	s, err := e.synthesizer()
	if err == nil {
		err = s.Post(ev)
	}
	if err != nil {
		logger.Warnf("[HOOK] Failed to post event: %v", err)
	}
	return err
}
