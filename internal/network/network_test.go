package network

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"inputhook/event"
	"inputhook/internal/protocol"
)

func TestSeqDedup(t *testing.T) {
	d := newSeqDedup()
	if d.isDuplicate(1) {
		t.Fatal("first sighting reported as duplicate")
	}
	if !d.isDuplicate(1) {
		t.Fatal("repeat not reported as duplicate")
	}
	for seq := uint32(2); seq < 2+uint32(len(d.ring)); seq++ {
		d.isDuplicate(seq)
	}
	if d.isDuplicate(1) {
		t.Error("evicted sequence still reported as duplicate")
	}
}

func TestRedundancy(t *testing.T) {
	tests := map[event.Type]int{
		event.KeyPressed:    3,
		event.MouseReleased: 3,
		event.MouseWheel:    2,
		event.MouseMoved:    1,
		event.MouseDragged:  1,
	}
	for typ, want := range tests {
		if got := redundancy(typ); got != want {
			t.Errorf("redundancy(%v) = %d, want %d", typ, got, want)
		}
	}
}

func TestSenderExpiresStalePeers(t *testing.T) {
	s := NewUDPSender(0)
	now := time.Now()
	s.peers["a"] = &udpPeer{lastSeen: now.Add(-2 * peerTimeout)}
	s.peers["b"] = &udpPeer{lastSeen: now}
	s.expire(now)
	if _, ok := s.peers["a"]; ok {
		t.Error("stale peer kept")
	}
	if !s.HasPeers() {
		t.Error("fresh peer removed")
	}
}

func TestRelayLoopback(t *testing.T) {
	sender := NewUDPSender(0)
	if err := sender.Start(); err != nil {
		t.Skipf("udp unavailable: %v", err)
	}
	defer sender.Stop()
	addr := "127.0.0.1:" + strconv.Itoa(sender.Addr().Port)

	if !NewUDPReceiver(addr).Probe() {
		t.Fatal("probe got no ack")
	}

	got := make(chan event.Event, 16)
	receiver := NewUDPReceiver(addr)
	receiver.OnEvent = func(ev *event.Event) { got <- *ev }
	if err := receiver.Start(); err != nil {
		t.Fatal(err)
	}
	defer receiver.Stop()

	// The probe registered too; wait for the receiver's own registration.
	deadline := time.Now().Add(2 * time.Second)
	for sender.PeerCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("receiver never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	sender.Send(&event.Event{Type: event.KeyTyped, Keyboard: event.KeyboardData{Char: 'a'}})
	sent := event.Event{Type: event.KeyPressed, Mask: event.MaskShiftL,
		Keyboard: event.KeyboardData{Keycode: event.KeyA, RawCode: 30}}
	sender.Send(&sent)

	select {
	case ev := <-got:
		if ev.Type != sent.Type || ev.Mask != sent.Mask || ev.Keyboard != sent.Keyboard {
			t.Errorf("received %v, want %v", &ev, &sent)
		}
		if ev.Time == 0 {
			t.Error("received event not restamped")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	select {
	case ev := <-got:
		t.Errorf("unexpected extra event %v", &ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestProbeHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Write([]byte("OK"))
		case "/api/status":
			json.NewEncoder(w).Encode(protocol.StatusPayload{Version: "1.2.3", Backend: "evdev", Enabled: true})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	host, port, _ := net.SplitHostPort(srv.Listener.Addr().String())
	p, _ := strconv.Atoi(port)

	got, ok := probeHost(context.Background(), srv.Client(), host, p)
	if !ok {
		t.Fatal("probeHost did not find server")
	}
	want := DiscoveredHost{IP: host, Port: p, Version: "1.2.3", Backend: "evdev", Enabled: true}
	if got != want {
		t.Errorf("probeHost = %+v, want %+v", got, want)
	}
}

func TestProbeHostRejectsOtherServers(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	host, port, _ := net.SplitHostPort(srv.Listener.Addr().String())
	p, _ := strconv.Atoi(port)
	if _, ok := probeHost(context.Background(), srv.Client(), host, p); ok {
		t.Error("server without /health reported as found")
	}
}
