// inputhook - system-wide keyboard and mouse hook
// Prints, relays and injects input events on Linux, macOS and Windows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"inputhook/event"
	"inputhook/hook"
	"inputhook/internal/autostart"
	"inputhook/internal/config"
	"inputhook/internal/hotkey"
	"inputhook/internal/logger"
	"inputhook/internal/network"
	"inputhook/internal/protocol"
)

var (
	version     = "0.1.0"
	configPath  = flag.String("config", "", "Config file (.json or .toml); default is the user config dir")
	showVer     = flag.Bool("version", false, "Show version")
	printEvents = flag.Bool("print", false, "Print every captured event")
	listScreens = flag.Bool("screens", false, "List attached screens and exit")
	showSystem  = flag.Bool("system", false, "Print keyboard and pointer settings and exit")
	pressChord  = flag.String("press", "", "Post a chord such as \"Ctrl+Shift+T\" and exit")
	watchAddr   = flag.String("watch", "", "Follow the event stream of the API server at host:port")
	discover    = flag.Bool("discover", false, "Scan the local network for API servers")
	withTray    = flag.Bool("tray", false, "Show a tray icon to toggle capture")
	autoStart   = flag.String("autostart", "", "\"on\" starts the service with -tray at login, \"off\" removes it")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("inputhook version %s\n", version)
		return
	}

	cfgMgr, err := openConfig()
	if err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load config: %v", err)
	}
	cfg := cfgMgr.Get()
	setupLogging(cfg.Logging.Level)

	switch {
	case *listScreens:
		printScreens()
	case *showSystem:
		printSystem()
	case *pressChord != "":
		if err := press(*pressChord); err != nil {
			log.Fatalf("Failed to post %q: %v (%s)", *pressChord, err, hook.StatusOf(err))
		}
	case *watchAddr != "":
		watch(*watchAddr, cfg.API.Token)
	case *discover:
		scan(cfg.API.Port)
	case *autoStart != "":
		if err := setAutostart(*autoStart); err != nil {
			log.Fatalf("Autostart: %v", err)
		}
	default:
		runService(cfgMgr)
	}
}

func openConfig() (*config.Manager, error) {
	if *configPath != "" {
		return config.NewManagerAt(*configPath), nil
	}
	return config.NewManager()
}

// setupLogging routes library diagnostics through a level filter. An
// invalid level was already rejected by config validation, so it only
// happens with a hand-edited file that failed to load.
func setupLogging(level string) {
	l, err := logger.ParseLevel(level)
	if err != nil {
		l = logger.Info
	}
	logger.Set(logger.Filter(l, logger.Stdout))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printScreens() {
	screens := hook.Screens()
	if len(screens) == 0 {
		fmt.Println("No screens found")
		return
	}
	fmt.Println("Screens:")
	fmt.Println("--------")
	for _, s := range screens {
		fmt.Printf("#%d  %dx%d at (%d,%d)\n", s.Number, s.Width, s.Height, s.X, s.Y)
	}
}

func printSystem() {
	show := func(name string, v int) {
		if v < 0 {
			fmt.Printf("%-32s unavailable\n", name)
			return
		}
		fmt.Printf("%-32s %d\n", name, v)
	}
	show("Auto-repeat rate", hook.AutoRepeatRate())
	show("Auto-repeat delay", hook.AutoRepeatDelay())
	show("Pointer acceleration multiplier", hook.PointerAccelerationMultiplier())
	show("Pointer acceleration threshold", hook.PointerAccelerationThreshold())
	show("Pointer sensitivity", hook.PointerSensitivity())
	show("Multi-click time (ms)", hook.MultiClickTime())
}

// press posts the modifiers of a chord, then the key or button, and
// releases them in reverse order.
func press(s string) error {
	chord, err := hotkey.ParseChord(s)
	if err != nil {
		return err
	}
	mods := []struct {
		mask event.Mask
		key  event.Keycode
	}{
		{event.MaskCtrl, event.KeyControlL},
		{event.MaskShift, event.KeyShiftL},
		{event.MaskAlt, event.KeyAltL},
		{event.MaskMeta, event.KeyMetaL},
	}

	var seq []event.Event
	var held []event.Keycode
	for _, m := range mods {
		if chord.Modifiers&m.mask != 0 {
			seq = append(seq, event.Event{Type: event.KeyPressed, Keyboard: event.KeyboardData{Keycode: m.key}})
			held = append(held, m.key)
		}
	}
	if chord.Key != event.KeyUndefined {
		seq = append(seq,
			event.Event{Type: event.KeyPressed, Keyboard: event.KeyboardData{Keycode: chord.Key}},
			event.Event{Type: event.KeyReleased, Keyboard: event.KeyboardData{Keycode: chord.Key}})
	} else {
		seq = append(seq,
			event.Event{Type: event.MousePressed, Mouse: event.MouseData{Button: chord.Button}},
			event.Event{Type: event.MouseReleased, Mouse: event.MouseData{Button: chord.Button}})
	}
	for i := len(held) - 1; i >= 0; i-- {
		seq = append(seq, event.Event{Type: event.KeyReleased, Keyboard: event.KeyboardData{Keycode: held[i]}})
	}

	for i := range seq {
		if err := hook.PostEvent(&seq[i]); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func watch(addr, token string) {
	ctx, stop := signalContext()
	defer stop()

	client := network.NewWSClient(addr, token)
	client.OnHello = func(h protocol.HelloPayload) {
		log.Printf("Connected to inputhook %s (hook enabled: %v)", h.Version, h.Enabled)
	}
	client.OnEvent = func(ev *event.Event) {
		fmt.Println(ev)
	}
	client.Start()
	defer client.Close()

	<-ctx.Done()
}

func scan(port int) {
	ctx, stop := signalContext()
	defer stop()

	log.Printf("Scanning local network for API servers on port %d...", port)
	hosts, err := network.ScanLAN(ctx, port)
	if err != nil {
		log.Printf("Scan error: %v", err)
	}
	if len(hosts) == 0 {
		fmt.Println("No servers found")
		return
	}
	for _, h := range hosts {
		fmt.Printf("%s:%d  version=%s backend=%s enabled=%v\n", h.IP, h.Port, h.Version, h.Backend, h.Enabled)
	}
}

func setAutostart(mode string) error {
	switch mode {
	case "on":
		args := []string{"-tray"}
		if *configPath != "" {
			abs, err := filepath.Abs(*configPath)
			if err != nil {
				return err
			}
			args = append(args, "-config", abs)
		}
		if err := autostart.Enable(args); err != nil {
			return err
		}
		fmt.Println("inputhook will start at login")
	case "off":
		if err := autostart.Disable(); err != nil {
			return err
		}
		fmt.Println("Login entry removed")
	default:
		return fmt.Errorf("unknown mode %q, want on or off", mode)
	}
	return nil
}
