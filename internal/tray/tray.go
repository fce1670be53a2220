// Package tray shows the hook state in the system tray using
// getlantern/systray.
package tray

import (
	"encoding/binary"
	"sync"

	"github.com/getlantern/systray"
)

// Controller is what the tray toggles.
type Controller interface {
	Enable() error
	Disable() error
	IsEnabled() bool
}

// Tray manages the system tray icon and menu
type Tray struct {
	ctl     Controller
	tooltip string
	onQuit  func()

	mu      sync.Mutex // guards status and capture
	status  *systray.MenuItem
	capture *systray.MenuItem
	quitCh  chan struct{}
}

// New creates a tray for ctl. onQuit runs after the tray loop has exited.
func New(ctl Controller, tooltip string, onQuit func()) *Tray {
	return &Tray{
		ctl:     ctl,
		tooltip: tooltip,
		onQuit:  onQuit,
		quitCh:  make(chan struct{}),
	}
}

// Run starts the tray event loop. It must be called from the main
// goroutine and blocks until Stop or the Quit item.
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() {
		close(t.quitCh)
		if t.onQuit != nil {
			t.onQuit()
		}
	})
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle("inputhook")
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(icon(t.ctl.IsEnabled()))

	status := systray.AddMenuItem("", "")
	status.Disable()
	systray.AddSeparator()
	capture := systray.AddMenuItemCheckbox("Capture input", "Enable or disable the hook", t.ctl.IsEnabled())
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Disable the hook and exit")

	t.mu.Lock()
	t.status, t.capture = status, capture
	t.mu.Unlock()
	t.Refresh()

	go func() {
		for {
			select {
			case <-capture.ClickedCh:
				t.toggle()
			case <-quit.ClickedCh:
				systray.Quit()
				return
			case <-t.quitCh:
				return
			}
		}
	}()
}

func (t *Tray) toggle() {
	var err error
	if t.ctl.IsEnabled() {
		err = t.ctl.Disable()
	} else {
		err = t.ctl.Enable()
	}
	if err != nil {
		t.mu.Lock()
		t.status.SetTitle("Error: " + err.Error())
		t.mu.Unlock()
		return
	}
	t.Refresh()
}

// Refresh updates the icon, check mark and status line from the
// controller. Call it when the hook state changes outside the tray.
func (t *Tray) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.capture == nil {
		return
	}
	enabled := t.ctl.IsEnabled()
	systray.SetIcon(icon(enabled))
	if enabled {
		t.capture.Check()
		t.status.SetTitle("Hook running")
	} else {
		t.capture.Uncheck()
		t.status.SetTitle("Hook stopped")
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

const iconSize = 16

// icon renders a 16x16 32-bit ICO: a rounded key cap, green while the hook
// runs and grey otherwise.
func icon(enabled bool) []byte {
	const (
		dibHeader = 40
		pixels    = iconSize * iconSize * 4
		mask      = iconSize * 4 // 1bpp rows padded to 32 bits
		offset    = 6 + 16
	)
	buf := make([]byte, offset+dibHeader+pixels+mask)

	// ICO header and directory
	binary.LittleEndian.PutUint16(buf[2:], 1) // type: icon
	binary.LittleEndian.PutUint16(buf[4:], 1) // count
	buf[6], buf[7] = iconSize, iconSize
	binary.LittleEndian.PutUint16(buf[10:], 1)  // planes
	binary.LittleEndian.PutUint16(buf[12:], 32) // bpp
	binary.LittleEndian.PutUint32(buf[14:], dibHeader+pixels+mask)
	binary.LittleEndian.PutUint32(buf[18:], offset)

	// BITMAPINFOHEADER; height counts the AND mask too
	dib := buf[offset:]
	binary.LittleEndian.PutUint32(dib[0:], dibHeader)
	binary.LittleEndian.PutUint32(dib[4:], iconSize)
	binary.LittleEndian.PutUint32(dib[8:], iconSize*2)
	binary.LittleEndian.PutUint16(dib[12:], 1)
	binary.LittleEndian.PutUint16(dib[14:], 32)
	binary.LittleEndian.PutUint32(dib[20:], pixels)

	fill := [4]byte{0x90, 0x90, 0x90, 0xFF} // BGRA
	if enabled {
		fill = [4]byte{0x40, 0xB0, 0x30, 0xFF}
	}
	px := dib[dibHeader:]
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			if !keyCap(x, y) {
				continue
			}
			copy(px[(y*iconSize+x)*4:], fill[:])
		}
	}
	return buf
}

// keyCap reports whether (x, y) lies inside the key cap shape.
func keyCap(x, y int) bool {
	if x < 1 || y < 1 || x > iconSize-2 || y > iconSize-2 {
		return false
	}
	corner := (x == 1 || x == iconSize-2) && (y == 1 || y == iconSize-2)
	return !corner
}
