package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"inputhook/event"
	"inputhook/internal/logger"
	"inputhook/internal/protocol"

	"github.com/gorilla/websocket"
)

const (
	broadcastQueue = 256
	clientQueue    = 256
	pingPeriod     = 50 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// local network tool; the bearer token is the access control
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSManager handles WebSocket connections and broadcasting
type WSManager struct {
	server     *Server
	clients    map[*WebSocketClient]bool
	clientsMu  sync.RWMutex
	broadcast  chan []byte
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
	shutdown   chan struct{}
	stopOnce   sync.Once
}

// WebSocketClient represents one stream subscriber
type WebSocketClient struct {
	manager *WSManager
	conn    *websocket.Conn
	send    chan []byte
	ip      string
}

func newWSManager(s *Server) *WSManager {
	return &WSManager{
		server:     s,
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
		shutdown:   make(chan struct{}),
	}
}

func (m *WSManager) start() {
	for {
		select {
		case client := <-m.register:
			m.clientsMu.Lock()
			m.clients[client] = true
			n := len(m.clients)
			m.clientsMu.Unlock()
			logger.Infof("[WS] Client connected from %s. Total clients: %d", client.ip, n)

		case client := <-m.unregister:
			m.remove(client)

		case message := <-m.broadcast:
			m.broadcastMessage(message)

		case <-m.shutdown:
			m.clientsMu.Lock()
			for client := range m.clients {
				delete(m.clients, client)
				close(client.send)
			}
			m.clientsMu.Unlock()
			return
		}
	}
}

func (m *WSManager) stop() {
	m.stopOnce.Do(func() { close(m.shutdown) })
}

func (m *WSManager) remove(client *WebSocketClient) {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()
	if _, ok := m.clients[client]; ok {
		delete(m.clients, client)
		close(client.send)
		logger.Infof("[WS] Client disconnected from %s. Total clients: %d", client.ip, len(m.clients))
	}
}

func (m *WSManager) count() int {
	m.clientsMu.RLock()
	defer m.clientsMu.RUnlock()
	return len(m.clients)
}

// broadcastMessage drops clients whose queue is full.
func (m *WSManager) broadcastMessage(message []byte) {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()

	for client := range m.clients {
		select {
		case client.send <- message:
		default:
			logger.Warnf("[WS] Client %s too slow, disconnecting", client.ip)
			close(client.send)
			delete(m.clients, client)
		}
	}
}

// BroadcastEvent sends ev to all clients, dropping it when the queue is
// full.
func (m *WSManager) BroadcastEvent(ev *event.Event) {
	msg, err := protocol.NewMessage(protocol.TypeEvent, ev)
	if err != nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case m.broadcast <- data:
	default:
		logger.Debugf("[WS] Broadcast queue full, dropping %v", ev.Type)
	}
}

func (m *WSManager) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("[WS] Failed to upgrade connection: %v", err)
		return
	}

	client := &WebSocketClient{
		manager: m,
		conn:    conn,
		send:    make(chan []byte, clientQueue),
		ip:      r.RemoteAddr,
	}

	hello, _ := protocol.NewMessage(protocol.TypeHello, protocol.HelloPayload{
		Version: m.server.opts.Version,
		Enabled: m.server.hook.IsEnabled(),
	})
	client.queue(hello)

	select {
	case m.register <- client:
	case <-m.shutdown:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// queue marshals msg onto the send buffer of a client that is not yet
// registered.
func (c *WebSocketClient) queue(msg protocol.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// readPump pumps messages from the websocket connection to the hub.
func (c *WebSocketClient) readPump() {
	defer func() {
		select {
		case c.manager.unregister <- c:
		case <-c.manager.shutdown:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("[WS] Read error: %v", err)
			}
			return
		}
		c.handleMessage(message)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *WebSocketClient) handleMessage(data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Warnf("[WS] Invalid message format from %s: %v", c.ip, err)
		return
	}

	switch msg.Type {
	case protocol.TypePost:
		if !c.manager.server.opts.AllowPost {
			c.reject("injection disabled")
			return
		}
		var ev event.Event
		if err := msg.Decode(&ev); err != nil {
			c.reject(err.Error())
			return
		}
		if err := c.manager.server.post(&ev); err != nil {
			c.reject(err.Error())
		}

	default:
		c.reject("unsupported message type " + string(msg.Type))
	}
}

// reject answers the client with a TypeError message. The send channel
// is only written while the client is still registered, since the hub
// closes it on removal.
func (c *WebSocketClient) reject(reason string) {
	msg, _ := protocol.NewMessage(protocol.TypeError, protocol.ErrorPayload{Error: reason})
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.manager.clientsMu.RLock()
	defer c.manager.clientsMu.RUnlock()
	if !c.manager.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
