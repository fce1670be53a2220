package main

import (
	"fmt"
	"log"
	"net"
	"runtime"
	"strconv"
	"time"

	"inputhook/event"
	"inputhook/hook"
	"inputhook/internal/api"
	"inputhook/internal/config"
	"inputhook/internal/hotkey"
	"inputhook/internal/network"
	"inputhook/internal/osutils"
	"inputhook/internal/tray"
)

func runService(cfgMgr *config.Manager) {
	cfg := cfgMgr.Get()
	log.Printf("inputhook %s starting (relay role %q)", version, cfg.Relay.Role)
	if runtime.GOOS == "windows" && !osutils.IsAdmin() {
		log.Printf("Note: not elevated, input aimed at elevated windows is not captured")
	}

	applyHookConfig(cfg)
	cfgMgr.RegisterChangeCallback(func() {
		cfg := cfgMgr.Get()
		setupLogging(cfg.Logging.Level)
		applyHookConfig(cfg)
		log.Printf("Configuration reloaded; click settings apply from the next enable")
	})

	// Hotkey manager
	hkMgr := hotkey.NewManager()
	// Inline: Disable from the listener thread only requests the stop.
	if _, err := hkMgr.RegisterInline(cfg.Hotkeys.KillSwitch, func() {
		log.Printf("Kill switch pressed, disabling hook")
		if err := hook.Disable(); err != nil {
			log.Printf("Disable failed: %v", err)
		}
	}); err != nil {
		log.Printf("Warning: failed to register kill switch: %v", err)
	}

	var apiServer *api.Server
	if cfg.API.Enabled {
		apiServer = api.NewServer(hook.Default(), api.Options{
			Version:   version,
			Token:     cfg.API.Token,
			AllowPost: cfg.Hook.EnableInjection,
			Config:    cfgMgr,
		})
		go ensureFirewall("inputhook API", cfg.API.Port, osutils.TCP)
		go func() {
			if err := apiServer.Start(cfg.API.Port); err != nil {
				log.Printf("API server error: %v", err)
			}
		}()
		defer apiServer.Close()
	}

	var sender *network.UDPSender
	switch cfg.Relay.Role {
	case config.RoleCapture:
		go ensureFirewall("inputhook relay", cfg.Relay.Port, osutils.UDP)
		sender = network.NewUDPSender(cfg.Relay.Port)
		if err := sender.Start(); err != nil {
			log.Fatalf("Failed to start relay sender: %v", err)
		}
		defer sender.Stop()

	case config.RoleInject:
		receiver := network.NewUDPReceiver(relayAddr(cfg.Relay))
		if !receiver.Probe() {
			log.Printf("Warning: relay peer %s did not answer, continuing", cfg.Relay.Peer)
		}
		receiver.OnEvent = func(ev *event.Event) {
			if !cfgMgr.Get().Hook.EnableInjection {
				return
			}
			if err := hook.PostEvent(ev); err != nil {
				log.Printf("Relay: post %v failed: %v", ev.Type, err)
			}
		}
		if err := receiver.Start(); err != nil {
			log.Fatalf("Failed to start relay receiver: %v", err)
		}
		defer receiver.Stop()
	}

	ctx, stop := signalContext()
	defer stop()

	var t *tray.Tray
	if *withTray {
		t = tray.New(hook.Default(), "inputhook "+version, stop)
	}

	hook.SetDispatchProc(func(ev *event.Event) {
		switch ev.Type {
		case event.HookEnabled, event.HookDisabled:
			log.Printf("Hook state: %s", ev.Type)
			if t != nil {
				go t.Refresh()
			}
		}
		hkMgr.Feed(ev)
		if *printEvents {
			fmt.Println(ev)
		}
		if apiServer != nil {
			apiServer.BroadcastEvent(ev)
		}
		if sender != nil && !ev.Reserved {
			sender.Send(ev)
		}
	})

	// The inject side only posts; capturing there would echo its own
	// injections back through the dispatcher.
	if cfg.Relay.Role != config.RoleInject {
		if err := hook.Enable(); err != nil {
			log.Printf("Failed to enable hook: %v (%s)", err, hook.StatusOf(err))
			if runtime.GOOS == "linux" && !osutils.IsAdmin() {
				log.Printf("Note: evdev capture needs read access to /dev/input (root or the input group)")
			}
			if t == nil {
				return
			}
		}
	}

	go func() {
		<-ctx.Done()
		hook.Disable()
		if t != nil {
			t.Stop()
		}
	}()

	if t != nil {
		t.Run()
		hook.Disable()
		return
	}

	if cfg.Relay.Role == config.RoleInject {
		<-ctx.Done()
		return
	}
	hook.Wait()
	log.Printf("inputhook stopped")
}

// relayAddr fills in the configured port when the peer has none.
func relayAddr(rc config.RelayConfig) string {
	if _, _, err := net.SplitHostPort(rc.Peer); err == nil {
		return rc.Peer
	}
	return net.JoinHostPort(rc.Peer, strconv.Itoa(rc.Port))
}

func ensureFirewall(name string, port int, proto osutils.Protocol) {
	if err := osutils.EnsureFirewallRule(name, port, proto); err != nil {
		log.Printf("Firewall warning: %v", err)
	}
}

func applyHookConfig(cfg config.Config) {
	hook.SetMultiClick(time.Duration(cfg.Hook.MultiClickMS)*time.Millisecond, cfg.Hook.ClickTolerancePX)
}
