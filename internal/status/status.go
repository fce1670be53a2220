// Package status defines the numeric result codes reported by the hook
// engine and its platform backends.
package status

import (
	"errors"
	"fmt"
)

// Status is a result code. It implements error so codes can be returned,
// wrapped and matched with errors.Is.
type Status uint8

const (
	Success        Status = 0x00
	Failure        Status = 0x01
	OutOfMemory    Status = 0x02
	NotRunning     Status = 0x03
	Busy           Status = 0x04
	AlreadyRunning Status = 0x05

	// Linux
	DeviceNotFound Status = 0x20
	DeviceOpen     Status = 0x21
	Poll           Status = 0x22
	Uinput         Status = 0x23

	// Windows
	SetWindowsHook  Status = 0x30
	GetModuleHandle Status = 0x31

	// macOS
	AXAPIDisabled       Status = 0x40
	CreateEventPort     Status = 0x41
	CreateRunLoopSource Status = 0x42
	GetRunLoop          Status = 0x43
)

var names = map[Status]string{
	Success:             "success",
	Failure:             "failure",
	OutOfMemory:         "out of memory",
	NotRunning:          "hook not running",
	Busy:                "hook busy",
	AlreadyRunning:      "hook already running",
	DeviceNotFound:      "no input device found",
	DeviceOpen:          "failed to open input device",
	Poll:                "failed to wait for input",
	Uinput:              "failed to set up uinput",
	SetWindowsHook:      "SetWindowsHookEx failed",
	GetModuleHandle:     "GetModuleHandle failed",
	AXAPIDisabled:       "accessibility API disabled",
	CreateEventPort:     "failed to create event tap",
	CreateRunLoopSource: "failed to create run loop source",
	GetRunLoop:          "failed to get run loop",
}

func (s Status) Error() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("status 0x%02X", uint8(s))
}

func (s Status) String() string { return s.Error() }

type wrapped struct {
	status Status
	err    error
}

func (w *wrapped) Error() string { return w.status.Error() + ": " + w.err.Error() }

func (w *wrapped) Unwrap() []error { return []error{w.status, w.err} }

// Wrap attaches status s to err. A nil err yields s itself.
func Wrap(s Status, err error) error {
	if err == nil {
		return s
	}
	return &wrapped{status: s, err: err}
}

// Of extracts the status carried by err: Success for nil, Failure when err
// carries no status.
func Of(err error) Status {
	if err == nil {
		return Success
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return Failure
}
