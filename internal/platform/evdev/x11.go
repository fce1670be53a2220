//go:build linux

package evdev

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"

	"inputhook/internal/deadkey"
	"inputhook/internal/keymap"
	"inputhook/internal/logger"
	"inputhook/internal/platform"
)

// display is a lazily opened X connection used for layout, pointer and
// screen queries. Capture and injection work without it.
type display struct {
	conn     *xgb.Conn
	root     xproto.Window
	setup    *xproto.SetupInfo
	xinerama bool
}

func openDisplay(name string) (*display, error) {
	var (
		conn *xgb.Conn
		err  error
	)
	if name != "" {
		conn, err = xgb.NewConnDisplay(name)
	} else {
		conn, err = xgb.NewConn()
	}
	if err != nil {
		return nil, fmt.Errorf("connect to X display: %w", err)
	}
	setup := xproto.Setup(conn)
	d := &display{
		conn:  conn,
		root:  setup.DefaultScreen(conn).Root,
		setup: setup,
	}
	if err := xinerama.Init(conn); err == nil {
		if reply, err := xinerama.IsActive(conn).Reply(); err == nil && reply.State != 0 {
			d.xinerama = true
		}
	}
	return d, nil
}

func (d *display) close() { d.conn.Close() }

// keyboardRows reads the core keyboard mapping, re-keyed by input-event
// code.
func (d *display) keyboardRows() (map[uint16][]deadkey.Keysym, error) {
	first, last := d.setup.MinKeycode, d.setup.MaxKeycode
	count := byte(last - first + 1)
	reply, err := xproto.GetKeyboardMapping(d.conn, first, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("GetKeyboardMapping: %w", err)
	}
	per := int(reply.KeysymsPerKeycode)
	rows := make(map[uint16][]deadkey.Keysym, int(count))
	for i := 0; i < int(count) && per > 0; i++ {
		syms := reply.Keysyms[i*per : (i+1)*per]
		xcode := int(first) + i
		if xcode < keymap.X11KeycodeOffset || syms[0] == 0 {
			continue
		}
		row := []deadkey.Keysym{deadkey.Keysym(syms[0])}
		if per > 1 {
			row = append(row, deadkey.Keysym(syms[1]))
		}
		rows[uint16(xcode-keymap.X11KeycodeOffset)] = row
	}
	return rows, nil
}

// pointer returns the pointer position and the core modifier state.
func (d *display) pointer() (x, y int16, mask uint16, err error) {
	reply, err := xproto.QueryPointer(d.conn, d.root).Reply()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("QueryPointer: %w", err)
	}
	return reply.RootX, reply.RootY, reply.Mask, nil
}

func (d *display) screens() []platform.Screen {
	if d.xinerama {
		reply, err := xinerama.QueryScreens(d.conn).Reply()
		if err == nil && len(reply.ScreenInfo) > 0 {
			out := make([]platform.Screen, len(reply.ScreenInfo))
			for i, s := range reply.ScreenInfo {
				out[i] = platform.Screen{
					Number: uint8(i + 1),
					X:      s.XOrg,
					Y:      s.YOrg,
					Width:  s.Width,
					Height: s.Height,
				}
			}
			return out
		}
		logger.Debugf("[EVDEV] Xinerama QueryScreens failed: %v", err)
	}
	s := d.setup.DefaultScreen(d.conn)
	return []platform.Screen{{Number: 1, Width: s.WidthInPixels, Height: s.HeightInPixels}}
}

// resource looks up an Xrm resource such as "*multiClickTime" in the
// RESOURCE_MANAGER property of the root window.
func (d *display) resource(name string) (string, bool) {
	reply, err := xproto.GetProperty(d.conn, false, d.root, xproto.AtomResourceManager,
		xproto.AtomString, 0, 1<<16).Reply()
	if err != nil || reply.Format != 8 {
		return "", false
	}
	sc := bufio.NewScanner(strings.NewReader(string(reply.Value)))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if strings.EqualFold(key, name) || strings.EqualFold(key, "*"+strings.TrimPrefix(name, "*")) {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

func (d *display) resourceInt(name string) (int, bool) {
	v, ok := d.resource(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// layoutSource follows the X keyboard mapping and falls back to the
// built-in US layout when no display is reachable.
type layoutSource struct {
	b *Backend

	mu         sync.Mutex
	layout     *deadkey.KeysymLayout
	generation uint64
	warned     bool
}

func (s *layoutSource) Current() (deadkey.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.b.display()
	if err != nil {
		if !s.warned {
			logger.Warnf("[EVDEV] No X display (%v), using the built-in US layout", err)
			s.warned = true
		}
		return deadkey.USLayout(), nil
	}

	stale := s.layout == nil
	for {
		ev, xerr := d.conn.PollForEvent()
		if ev == nil && xerr == nil {
			break
		}
		if m, ok := ev.(xproto.MappingNotifyEvent); ok && m.Request == xproto.MappingKeyboard {
			stale = true
		}
	}
	if !stale {
		return s.layout, nil
	}

	rows, err := d.keyboardRows()
	if err != nil {
		if s.layout != nil {
			return s.layout, nil
		}
		return nil, err
	}
	s.generation++
	s.layout = deadkey.NewKeysymLayout(s.generation, rows)
	return s.layout, nil
}
