package network

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"inputhook/event"
	"inputhook/internal/logger"
	"inputhook/internal/protocol"

	"github.com/gorilla/websocket"
)

const (
	reconnectDelay = 5 * time.Second
	pingInterval   = 30 * time.Second
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
)

// WSClient follows the event stream of a remote inputhook API server and
// can ask it to inject events.
type WSClient struct {
	hostAddr string
	token    string
	send     chan protocol.Message
	done     chan struct{}
	once     sync.Once

	// Callbacks
	OnHello func(hello protocol.HelloPayload)
	OnEvent func(ev *event.Event)
	OnError func(msg string)

	mu          sync.Mutex
	isConnected bool
}

// NewWSClient creates a client for the API server at hostAddr ("host:port").
func NewWSClient(hostAddr, token string) *WSClient {
	return &WSClient{
		hostAddr: hostAddr,
		token:    token,
		send:     make(chan protocol.Message, 100),
		done:     make(chan struct{}),
	}
}

// Start begins the client loop (connect & process)
func (c *WSClient) Start() {
	go c.loop()
}

func (c *WSClient) loop() {
	for {
		c.connect()

		select {
		case <-c.done:
			return
		case <-time.After(reconnectDelay):
			logger.Debugf("[WS] Attempting reconnection to %s", c.hostAddr)
		}
	}
}

func (c *WSClient) connect() {
	u := url.URL{Scheme: "ws", Host: c.hostAddr, Path: "/ws"}
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		logger.Warnf("[WS] Connection to %s failed: %v", u.String(), err)
		return
	}
	defer conn.Close()

	c.setConnected(true)
	defer c.setConnected(false)
	logger.Infof("[WS] Connected to %s", u.String())

	connDone := make(chan struct{})
	go func() {
		defer close(connDone)
		c.writePump(conn)
	}()

	c.readPump(conn)
	conn.Close()
	<-connDone
}

func (c *WSClient) setConnected(v bool) {
	c.mu.Lock()
	c.isConnected = v
	c.mu.Unlock()
}

func (c *WSClient) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("[WS] Read error: %v", err)
			}
			return
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("[WS] Invalid message: %v", err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logger.Warnf("[WS] Write error: %v", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (c *WSClient) handleMessage(msg protocol.Message) {
	switch msg.Type {
	case protocol.TypeHello:
		var hello protocol.HelloPayload
		if err := msg.Decode(&hello); err != nil {
			logger.Warnf("[WS] %v", err)
			return
		}
		if c.OnHello != nil {
			c.OnHello(hello)
		}

	case protocol.TypeEvent:
		var ev event.Event
		if err := msg.Decode(&ev); err != nil {
			logger.Warnf("[WS] %v", err)
			return
		}
		if c.OnEvent != nil {
			c.OnEvent(&ev)
		}

	case protocol.TypeError:
		var e protocol.ErrorPayload
		if err := msg.Decode(&e); err != nil {
			return
		}
		logger.Warnf("[WS] Server rejected request: %s", e.Error)
		if c.OnError != nil {
			c.OnError(e.Error)
		}
	}
}

// Post asks the server to inject ev. It returns false if the send queue
// is full.
func (c *WSClient) Post(ev *event.Event) bool {
	msg, err := protocol.NewMessage(protocol.TypePost, ev)
	if err != nil {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// IsConnected returns true if the client currently holds a connection.
func (c *WSClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isConnected
}

// Close stops the client
func (c *WSClient) Close() {
	c.once.Do(func() { close(c.done) })
}
