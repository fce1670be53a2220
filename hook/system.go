package hook

import (
	"inputhook/internal/logger"
)

// Screens returns the attached monitors, or nil on failure.
func (e *Engine) Screens() []Screen {
	if e.backend == nil {
		return nil
	}
	screens, err := e.backend.Screens()
	if err != nil {
		logger.Warnf("[HOOK] Failed to enumerate screens: %v", err)
		return nil
	}
	return screens
}

// query returns -1 when the backend cannot answer.
func (e *Engine) query(name string, fn func() (int, error)) int {
	if e.backend == nil {
		return -1
	}
	v, err := fn()
	if err != nil || v < 0 {
		logger.Debugf("[HOOK] %s unavailable: %v", name, err)
		return -1
	}
	return v
}

func (e *Engine) AutoRepeatRate() int {
	return e.query("auto repeat rate", func() (int, error) { return e.backend.AutoRepeatRate() })
}

func (e *Engine) AutoRepeatDelay() int {
	return e.query("auto repeat delay", func() (int, error) { return e.backend.AutoRepeatDelay() })
}

func (e *Engine) PointerAccelerationMultiplier() int {
	return e.query("pointer acceleration multiplier", func() (int, error) { return e.backend.PointerAccelerationMultiplier() })
}

func (e *Engine) PointerAccelerationThreshold() int {
	return e.query("pointer acceleration threshold", func() (int, error) { return e.backend.PointerAccelerationThreshold() })
}

func (e *Engine) PointerSensitivity() int {
	return e.query("pointer sensitivity", func() (int, error) { return e.backend.PointerSensitivity() })
}

func (e *Engine) MultiClickTime() int {
	return e.query("multi-click time", func() (int, error) { return e.backend.MultiClickTime() })
}
