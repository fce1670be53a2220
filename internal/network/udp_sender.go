// Package network relays virtual events between machines and finds
// inputhook instances on the local network.
package network

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"inputhook/event"
	"inputhook/internal/logger"
	"inputhook/internal/protocol"
)

const (
	peerTimeout     = 30 * time.Second
	cleanupInterval = 10 * time.Second
)

// UDPSender runs on the capturing machine. Injecting peers register with
// it and receive every event passed to Send.
type UDPSender struct {
	conn    *net.UDPConn
	port    int
	peers   map[string]*udpPeer
	peersMu sync.RWMutex
	seq     uint32 // atomic, monotonically increasing
	done    chan struct{}
}

type udpPeer struct {
	addr     *net.UDPAddr
	lastSeen time.Time
}

// NewUDPSender creates a sender that will listen on port; 0 picks a free
// port.
func NewUDPSender(port int) *UDPSender {
	return &UDPSender{
		port:  port,
		peers: make(map[string]*udpPeer),
		done:  make(chan struct{}),
	}
}

// Start binds the UDP socket and begins listening for peer registrations.
func (s *UDPSender) Start() error {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: s.port})
	if err != nil {
		return err
	}
	s.conn = conn

	// 1 MB write buffer for burst writes
	conn.SetWriteBuffer(1 << 20)
	conn.SetReadBuffer(1 << 16)

	logger.Infof("[RELAY] Sender listening on %s", conn.LocalAddr())

	go s.readLoop()
	go s.cleanupLoop()
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *UDPSender) Addr() *net.UDPAddr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr().(*net.UDPAddr)
}

// readLoop listens for register and heartbeat packets from peers.
func (s *UDPSender) readLoop() {
	buf := make([]byte, 64)
	for {
		n, remoteAddr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}

		pkt, err := protocol.DecodeUDPPacket(buf[:n])
		if err != nil {
			continue
		}

		switch pkt.Type {
		case protocol.UDPPacketRegister, protocol.UDPPacketHeartbeat:
			key := remoteAddr.String()
			s.peersMu.Lock()
			if _, exists := s.peers[key]; !exists {
				logger.Infof("[RELAY] Peer registered from %s", key)
			}
			s.peers[key] = &udpPeer{addr: remoteAddr, lastSeen: time.Now()}
			s.peersMu.Unlock()

			if pkt.Type == protocol.UDPPacketRegister {
				ack, _ := protocol.EncodeUDPPacket(&protocol.UDPPacket{
					Type:      protocol.UDPPacketAck,
					Timestamp: time.Now().UnixMilli(),
				})
				s.conn.WriteToUDP(ack, remoteAddr)
			}
		}
	}
}

// cleanupLoop removes peers that haven't sent a heartbeat recently.
func (s *UDPSender) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.expire(time.Now())
		case <-s.done:
			return
		}
	}
}

func (s *UDPSender) expire(now time.Time) {
	s.peersMu.Lock()
	defer s.peersMu.Unlock()
	for key, peer := range s.peers {
		if now.Sub(peer.lastSeen) > peerTimeout {
			logger.Infof("[RELAY] Removing stale peer %s", key)
			delete(s.peers, key)
		}
	}
}

// redundancy is how many copies of ev are sent. Transitions whose loss
// would leave a key or button stuck are repeated.
func redundancy(t event.Type) int {
	switch t {
	case event.KeyPressed, event.KeyReleased, event.MousePressed, event.MouseReleased:
		return 3
	case event.MouseWheel:
		return 2
	}
	return 1
}

// Send forwards ev to all registered peers. Derived and lifecycle events
// are not relayed.
func (s *UDPSender) Send(ev *event.Event) {
	switch ev.Type {
	case event.KeyTyped, event.MouseClicked, event.HookEnabled, event.HookDisabled:
		return
	}
	data, err := protocol.EncodeUDPPacket(&protocol.UDPPacket{
		Type:      protocol.UDPPacketEvent,
		Seq:       atomic.AddUint32(&s.seq, 1),
		Timestamp: time.Now().UnixMilli(),
		Event:     ev,
	})
	if err != nil {
		logger.Debugf("[RELAY] Not relaying %v: %v", ev.Type, err)
		return
	}
	s.broadcast(data, redundancy(ev.Type))
}

// broadcast sends data to all registered peers.
func (s *UDPSender) broadcast(data []byte, copies int) {
	s.peersMu.RLock()
	defer s.peersMu.RUnlock()

	for _, peer := range s.peers {
		for i := 0; i < copies; i++ {
			s.conn.WriteToUDP(data, peer.addr)
		}
	}
}

// HasPeers returns true if at least one peer is registered.
func (s *UDPSender) HasPeers() bool {
	return s.PeerCount() > 0
}

// PeerCount returns the number of registered receivers.
func (s *UDPSender) PeerCount() int {
	s.peersMu.RLock()
	defer s.peersMu.RUnlock()
	return len(s.peers)
}

// Stop shuts down the UDP sender.
func (s *UDPSender) Stop() {
	close(s.done)
	if s.conn != nil {
		s.conn.Close()
	}
}
