package hook

import "inputhook/internal/status"

// Status is a numeric result code. It implements error; use errors.Is or
// StatusOf to inspect errors returned by this package.
type Status = status.Status

const (
	StatusSuccess        = status.Success
	StatusFailure        = status.Failure
	StatusOutOfMemory    = status.OutOfMemory
	StatusNotRunning     = status.NotRunning
	StatusBusy           = status.Busy
	StatusAlreadyRunning = status.AlreadyRunning

	StatusDeviceNotFound = status.DeviceNotFound
	StatusDeviceOpen     = status.DeviceOpen
	StatusPoll           = status.Poll
	StatusUinput         = status.Uinput

	StatusSetWindowsHook  = status.SetWindowsHook
	StatusGetModuleHandle = status.GetModuleHandle

	StatusAXAPIDisabled       = status.AXAPIDisabled
	StatusCreateEventPort     = status.CreateEventPort
	StatusCreateRunLoopSource = status.CreateRunLoopSource
	StatusGetRunLoop          = status.GetRunLoop
)

// StatusOf returns the status carried by err.
func StatusOf(err error) Status { return status.Of(err) }
