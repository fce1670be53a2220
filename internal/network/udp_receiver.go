package network

import (
	"errors"
	"net"
	"time"

	"inputhook/event"
	"inputhook/internal/logger"
	"inputhook/internal/protocol"
)

const (
	heartbeatInterval = 5 * time.Second
	probeAttempts     = 3
	probeTimeout      = 500 * time.Millisecond
)

// UDPReceiver runs on the injecting machine. It registers with a sender
// and hands every new event to OnEvent.
type UDPReceiver struct {
	hostAddr string // sender address in "ip:port" format
	conn     *net.UDPConn
	done     chan struct{}

	// OnEvent is called from the receive goroutine for each event. The
	// event's Time is the local receive time.
	OnEvent func(ev *event.Event)

	// dedup ring buffer for redundant packets
	dedup seqDedup
}

// seqDedup tracks recently seen sequence numbers to discard redundant
// packets. It is a fixed-size ring buffer with O(1) lookup.
type seqDedup struct {
	ring [512]uint32
	pos  int
	seen map[uint32]struct{}
}

func newSeqDedup() seqDedup {
	return seqDedup{seen: make(map[uint32]struct{}, 512)}
}

func (d *seqDedup) isDuplicate(seq uint32) bool {
	if _, ok := d.seen[seq]; ok {
		return true
	}
	// Evict oldest entry
	old := d.ring[d.pos]
	if old != 0 {
		delete(d.seen, old)
	}
	d.ring[d.pos] = seq
	d.seen[seq] = struct{}{}
	d.pos = (d.pos + 1) % len(d.ring)
	return false
}

// NewUDPReceiver creates a receiver for the sender at hostAddr.
func NewUDPReceiver(hostAddr string) *UDPReceiver {
	return &UDPReceiver{
		hostAddr: hostAddr,
		done:     make(chan struct{}),
		dedup:    newSeqDedup(),
	}
}

// Probe tests whether the sender answers a registration.
func (r *UDPReceiver) Probe() bool {
	hostUDP, err := net.ResolveUDPAddr("udp", r.hostAddr)
	if err != nil {
		logger.Warnf("[RELAY] Probe failed to resolve %s: %v", r.hostAddr, err)
		return false
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: 0})
	if err != nil {
		logger.Warnf("[RELAY] Probe failed to bind: %v", err)
		return false
	}
	defer conn.Close()

	register, _ := protocol.EncodeUDPPacket(&protocol.UDPPacket{Type: protocol.UDPPacketRegister})
	buf := make([]byte, 64)
	for attempt := 0; attempt < probeAttempts; attempt++ {
		conn.WriteToUDP(register, hostUDP)

		conn.SetReadDeadline(time.Now().Add(probeTimeout))
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			continue
		}
		resp, err := protocol.DecodeUDPPacket(buf[:n])
		if err == nil && resp.Type == protocol.UDPPacketAck {
			logger.Infof("[RELAY] Sender %s answered (attempt %d)", r.hostAddr, attempt+1)
			return true
		}
	}

	logger.Warnf("[RELAY] No answer from %s after %d attempts", r.hostAddr, probeAttempts)
	return false
}

// Start opens a UDP socket, registers with the sender, and begins
// receiving.
func (r *UDPReceiver) Start() error {
	hostUDP, err := net.ResolveUDPAddr("udp", r.hostAddr)
	if err != nil {
		return err
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: 0})
	if err != nil {
		return err
	}
	r.conn = conn
	conn.SetReadBuffer(1 << 20)

	logger.Infof("[RELAY] Receiver listening on %s, sender=%s", conn.LocalAddr(), r.hostAddr)

	r.sendControl(protocol.UDPPacketRegister, hostUDP)
	go r.heartbeatLoop(hostUDP)
	go r.readLoop()
	return nil
}

func (r *UDPReceiver) heartbeatLoop(hostAddr *net.UDPAddr) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.sendControl(protocol.UDPPacketHeartbeat, hostAddr)
		case <-r.done:
			return
		}
	}
}

// sendControl sends a register or heartbeat packet.
func (r *UDPReceiver) sendControl(pktType uint8, addr *net.UDPAddr) {
	data, _ := protocol.EncodeUDPPacket(&protocol.UDPPacket{
		Type:      pktType,
		Timestamp: time.Now().UnixMilli(),
	})
	r.conn.WriteToUDP(data, addr)
}

func (r *UDPReceiver) readLoop() {
	buf := make([]byte, 64)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-r.done:
				return
			default:
				continue
			}
		}

		pkt, err := protocol.DecodeUDPPacket(buf[:n])
		if err != nil {
			logger.Debugf("[RELAY] Dropping packet: %v", err)
			continue
		}
		if pkt.Type != protocol.UDPPacketEvent || r.dedup.isDuplicate(pkt.Seq) {
			continue
		}
		r.dispatch(pkt.Event)
	}
}

func (r *UDPReceiver) dispatch(ev *event.Event) {
	if r.OnEvent == nil {
		return
	}
	ev.Time = uint64(time.Now().UnixMilli())
	r.OnEvent(ev)
}

// Stop shuts down the UDP receiver.
func (r *UDPReceiver) Stop() {
	close(r.done)
	if r.conn != nil {
		r.conn.Close()
	}
}
