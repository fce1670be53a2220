package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inputhook/event"
	"inputhook/hook"
	"inputhook/internal/config"
	"inputhook/internal/protocol"

	"github.com/gorilla/websocket"
)

type fakeHook struct {
	posted chan event.Event
	err    error
}

func newFakeHook() *fakeHook {
	return &fakeHook{posted: make(chan event.Event, 8)}
}

func (f *fakeHook) IsEnabled() bool     { return true }
func (f *fakeHook) BackendName() string { return "fake" }
func (f *fakeHook) Screens() []hook.Screen {
	return []hook.Screen{{Number: 1, Width: 1920, Height: 1080}}
}

func (f *fakeHook) PostEvent(ev *event.Event) error {
	if f.err != nil {
		return f.err
	}
	f.posted <- *ev
	return nil
}

func newTestServer(t *testing.T, h Hook, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(h, opts)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return s, ts
}

func request(t *testing.T, method, url, token string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAuth(t *testing.T) {
	_, ts := newTestServer(t, newFakeHook(), Options{Token: "secret"})

	if resp := request(t, http.MethodGet, ts.URL+"/health", "", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("/health without token = %d", resp.StatusCode)
	}
	if resp := request(t, http.MethodGet, ts.URL+"/api/status", "", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("/api/status without token = %d", resp.StatusCode)
	}
	if resp := request(t, http.MethodGet, ts.URL+"/api/status", "wrong", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("/api/status with wrong token = %d", resp.StatusCode)
	}
	if resp := request(t, http.MethodGet, ts.URL+"/api/status", "secret", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("/api/status with token = %d", resp.StatusCode)
	}
}

func TestStatusAndScreens(t *testing.T) {
	_, ts := newTestServer(t, newFakeHook(), Options{Version: "0.1.0", AllowPost: true})

	var status protocol.StatusPayload
	resp := request(t, http.MethodGet, ts.URL+"/api/status", "", nil)
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	want := protocol.StatusPayload{Version: "0.1.0", Backend: "fake", Enabled: true, Injection: true}
	if status != want {
		t.Errorf("status = %+v, want %+v", status, want)
	}

	var screens []hook.Screen
	resp = request(t, http.MethodGet, ts.URL+"/api/screens", "", nil)
	if err := json.NewDecoder(resp.Body).Decode(&screens); err != nil {
		t.Fatal(err)
	}
	if len(screens) != 1 || screens[0].Width != 1920 {
		t.Errorf("screens = %+v", screens)
	}

	if resp := request(t, http.MethodPost, ts.URL+"/api/status", "", nil); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/status = %d", resp.StatusCode)
	}
}

func TestPost(t *testing.T) {
	ev := event.Event{Type: event.KeyPressed, Keyboard: event.KeyboardData{Keycode: event.KeyA}}
	body, _ := json.Marshal(ev)

	t.Run("disabled", func(t *testing.T) {
		_, ts := newTestServer(t, newFakeHook(), Options{})
		if resp := request(t, http.MethodPost, ts.URL+"/api/post", "", body); resp.StatusCode != http.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("ok", func(t *testing.T) {
		h := newFakeHook()
		_, ts := newTestServer(t, h, Options{AllowPost: true})
		if resp := request(t, http.MethodPost, ts.URL+"/api/post", "", body); resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := <-h.posted; got.Type != ev.Type || got.Keyboard.Keycode != event.KeyA {
			t.Errorf("posted %v", &got)
		}
	})

	t.Run("bad body", func(t *testing.T) {
		_, ts := newTestServer(t, newFakeHook(), Options{AllowPost: true})
		if resp := request(t, http.MethodPost, ts.URL+"/api/post", "", []byte("{")); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("hook error", func(t *testing.T) {
		h := newFakeHook()
		h.err = errors.New("boom")
		_, ts := newTestServer(t, h, Options{AllowPost: true})
		resp := request(t, http.MethodPost, ts.URL+"/api/post", "", body)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", resp.StatusCode)
		}
		var e protocol.ErrorPayload
		json.NewDecoder(resp.Body).Decode(&e)
		if e.Error != "boom" {
			t.Errorf("error = %q", e.Error)
		}
	})
}

func dial(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", header)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, want protocol.MessageType) protocol.Message {
	t.Helper()
	var msg protocol.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != want {
		t.Fatalf("message type = %q, want %q", msg.Type, want)
	}
	return msg
}

func TestWebSocketStream(t *testing.T) {
	h := newFakeHook()
	s, ts := newTestServer(t, h, Options{Version: "0.1.0", Token: "secret", AllowPost: true})
	conn := dial(t, ts, "secret")

	var hello protocol.HelloPayload
	if err := readMessage(t, conn, protocol.TypeHello).Decode(&hello); err != nil {
		t.Fatal(err)
	}
	if hello.Version != "0.1.0" || !hello.Enabled {
		t.Errorf("hello = %+v", hello)
	}

	s.BroadcastEvent(&event.Event{Type: event.MouseMoved, Mouse: event.MouseData{X: 10, Y: 20}})
	var ev event.Event
	if err := readMessage(t, conn, protocol.TypeEvent).Decode(&ev); err != nil {
		t.Fatal(err)
	}
	if ev.Type != event.MouseMoved || ev.Mouse.X != 10 || ev.Mouse.Y != 20 {
		t.Errorf("streamed %v", &ev)
	}

	post, _ := protocol.NewMessage(protocol.TypePost, event.Event{Type: event.MouseWheel,
		Wheel: event.WheelData{Rotation: 1, Amount: 3, Type: event.WheelUnitScroll, Direction: event.WheelVertical}})
	if err := conn.WriteJSON(post); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-h.posted:
		if got.Type != event.MouseWheel || got.Wheel.Rotation != 1 {
			t.Errorf("posted %v", &got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("post not delivered to hook")
	}
}

func TestWebSocketRejectsPostWhenDisabled(t *testing.T) {
	_, ts := newTestServer(t, newFakeHook(), Options{})
	conn := dial(t, ts, "")
	readMessage(t, conn, protocol.TypeHello)

	post, _ := protocol.NewMessage(protocol.TypePost, event.Event{Type: event.KeyPressed})
	if err := conn.WriteJSON(post); err != nil {
		t.Fatal(err)
	}
	var e protocol.ErrorPayload
	if err := readMessage(t, conn, protocol.TypeError).Decode(&e); err != nil {
		t.Fatal(err)
	}
	if e.Error != "injection disabled" {
		t.Errorf("error = %q", e.Error)
	}
}

func TestWebSocketRequiresToken(t *testing.T) {
	_, ts := newTestServer(t, newFakeHook(), Options{Token: "secret"})
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err == nil {
		t.Fatal("dial without token succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("response = %v", resp)
	}
}

func TestConfig(t *testing.T) {
	mgr := config.NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	_, ts := newTestServer(t, newFakeHook(), Options{Config: mgr})

	var got config.Config
	resp := request(t, http.MethodGet, ts.URL+"/api/config", "", nil)
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got != *config.DefaultConfig() {
		t.Errorf("GET /api/config = %+v", got)
	}

	resp = request(t, http.MethodPost, ts.URL+"/api/config", "", []byte(`{"logging":{"level":"debug"}}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST status = %d", resp.StatusCode)
	}
	if cfg := mgr.Get(); cfg.Logging.Level != "debug" || cfg.API.Port != 18080 {
		t.Errorf("after partial update config = %+v", cfg)
	}

	reloaded := config.NewManagerAt(mgr.Path())
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Get().Logging.Level != "debug" {
		t.Error("update not saved")
	}

	resp = request(t, http.MethodPost, ts.URL+"/api/config", "", []byte(`{"relay":{"role":"bogus"}}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid config status = %d", resp.StatusCode)
	}
	if mgr.Get().Relay.Role != config.RoleNone {
		t.Error("invalid config applied")
	}
}

func TestConfigRouteNeedsStore(t *testing.T) {
	_, ts := newTestServer(t, newFakeHook(), Options{})
	if resp := request(t, http.MethodGet, ts.URL+"/api/config", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
