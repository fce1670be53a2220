package status

import (
	"errors"
	"fmt"
	"testing"
)

func TestOf(t *testing.T) {
	base := errors.New("ioctl failed")
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, Success},
		{"plain", base, Failure},
		{"bare status", Busy, Busy},
		{"wrapped", Wrap(Uinput, base), Uinput},
		{"double wrapped", fmt.Errorf("enable: %w", Wrap(SetWindowsHook, base)), SetWindowsHook},
	}
	for _, tt := range tests {
		if got := Of(tt.err); got != tt.want {
			t.Errorf("%s: Of = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	base := errors.New("permission denied")
	err := Wrap(DeviceOpen, base)
	if !errors.Is(err, base) || !errors.Is(err, DeviceOpen) {
		t.Errorf("errors.Is failed for %v", err)
	}
	if errors.Is(err, Busy) {
		t.Error("unexpected match on Busy")
	}
	if Wrap(Poll, nil) != Poll {
		t.Error("Wrap with nil cause should return the status")
	}
	if got := err.Error(); got != "failed to open input device: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValues(t *testing.T) {
	// numeric values are part of the public contract
	tests := map[Status]uint8{
		Success: 0x00, Failure: 0x01, OutOfMemory: 0x02, NotRunning: 0x03, Busy: 0x04, AlreadyRunning: 0x05,
		DeviceNotFound: 0x20, SetWindowsHook: 0x30, GetModuleHandle: 0x31, AXAPIDisabled: 0x40,
		CreateEventPort: 0x41, CreateRunLoopSource: 0x42, GetRunLoop: 0x43,
	}
	for s, want := range tests {
		if uint8(s) != want {
			t.Errorf("%v = 0x%02X, want 0x%02X", s, uint8(s), want)
		}
	}
	if Status(0x99).Error() != "status 0x99" {
		t.Errorf("unknown status = %q", Status(0x99).Error())
	}
}
