package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"

	"inputhook/event"
)

// UDP packet types
const (
	UDPPacketEvent     uint8 = 0x01
	UDPPacketRegister  uint8 = 0x10
	UDPPacketHeartbeat uint8 = 0x11
	UDPPacketAck       uint8 = 0x12 // capture side -> injector: UDP path is open
)

// Header: [type(1)] [seq(4)] [timestamp(8)] = 13 bytes
const UDPHeaderSize = 13

// Event payload: [event type(1)] [mask(2)] [body]
const eventPrefixSize = 3

const (
	keyboardBodySize = 8  // keycode(2) raw(2) char(4)
	mouseBodySize    = 8  // button(2) clicks(2) x(2) y(2)
	wheelBodySize    = 12 // clicks(2) x(2) y(2) type(1) amount(2) rotation(2) direction(1)
)

var (
	ErrShortPacket   = errors.New("udp: packet too short")
	ErrUnknownPacket = errors.New("udp: unknown packet type")
	ErrUnknownEvent  = errors.New("udp: event type cannot be relayed")
)

// UDPPacket is one datagram of the relay.
//
// Wire format per type:
//
//	Event     (0x01): header + type(1) + mask(2) + keyboard/mouse body (8) = 24 bytes
//	                  header + type(1) + mask(2) + wheel body (12)          = 28 bytes
//	Register  (0x10): header only                                           = 13 bytes
//	Heartbeat (0x11): header only                                           = 13 bytes
//	Ack       (0x12): header only                                           = 13 bytes
//
// Timestamp is the sender's wall clock in milliseconds. The event's own
// Time is not sent; receivers stamp events with their own clock.
type UDPPacket struct {
	Type      uint8
	Seq       uint32
	Timestamp int64
	Event     *event.Event
}

func bodySize(t event.Type) (int, bool) {
	switch t {
	case event.KeyPressed, event.KeyReleased, event.KeyTyped:
		return keyboardBodySize, true
	case event.MousePressed, event.MouseReleased, event.MouseClicked,
		event.MouseMoved, event.MouseDragged:
		return mouseBodySize, true
	case event.MouseWheel:
		return wheelBodySize, true
	}
	return 0, false
}

// EncodeUDPPacket serializes a UDPPacket to wire format.
func EncodeUDPPacket(pkt *UDPPacket) ([]byte, error) {
	size := UDPHeaderSize
	if pkt.Type == UDPPacketEvent {
		if pkt.Event == nil {
			return nil, fmt.Errorf("%w: missing event", ErrUnknownEvent)
		}
		body, ok := bodySize(pkt.Event.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownEvent, pkt.Event.Type)
		}
		size += eventPrefixSize + body
	}

	buf := make([]byte, size)
	buf[0] = pkt.Type
	binary.BigEndian.PutUint32(buf[1:5], pkt.Seq)
	binary.BigEndian.PutUint64(buf[5:13], uint64(pkt.Timestamp))
	if pkt.Type != UDPPacketEvent {
		return buf, nil
	}

	ev := pkt.Event
	payload := buf[UDPHeaderSize:]
	payload[0] = uint8(ev.Type)
	binary.BigEndian.PutUint16(payload[1:3], uint16(ev.Mask))
	body := payload[eventPrefixSize:]
	switch {
	case ev.Type.IsKeyboard():
		binary.BigEndian.PutUint16(body[0:2], uint16(ev.Keyboard.Keycode))
		binary.BigEndian.PutUint16(body[2:4], ev.Keyboard.RawCode)
		binary.BigEndian.PutUint32(body[4:8], uint32(ev.Keyboard.Char))
	case ev.Type == event.MouseWheel:
		w := ev.Wheel
		binary.BigEndian.PutUint16(body[0:2], w.Clicks)
		binary.BigEndian.PutUint16(body[2:4], uint16(w.X))
		binary.BigEndian.PutUint16(body[4:6], uint16(w.Y))
		body[6] = uint8(w.Type)
		binary.BigEndian.PutUint16(body[7:9], w.Amount)
		binary.BigEndian.PutUint16(body[9:11], uint16(w.Rotation))
		body[11] = uint8(w.Direction)
	default:
		m := ev.Mouse
		binary.BigEndian.PutUint16(body[0:2], uint16(m.Button))
		binary.BigEndian.PutUint16(body[2:4], m.Clicks)
		binary.BigEndian.PutUint16(body[4:6], uint16(m.X))
		binary.BigEndian.PutUint16(body[6:8], uint16(m.Y))
	}
	return buf, nil
}

// DecodeUDPPacket deserializes wire bytes into a UDPPacket.
func DecodeUDPPacket(data []byte) (*UDPPacket, error) {
	if len(data) < UDPHeaderSize {
		return nil, ErrShortPacket
	}

	pkt := &UDPPacket{
		Type:      data[0],
		Seq:       binary.BigEndian.Uint32(data[1:5]),
		Timestamp: int64(binary.BigEndian.Uint64(data[5:13])),
	}

	switch pkt.Type {
	case UDPPacketRegister, UDPPacketHeartbeat, UDPPacketAck:
		return pkt, nil
	case UDPPacketEvent:
	default:
		return nil, ErrUnknownPacket
	}

	payload := data[UDPHeaderSize:]
	if len(payload) < eventPrefixSize {
		return nil, fmt.Errorf("%w: event prefix", ErrShortPacket)
	}
	ev := &event.Event{
		Type: event.Type(payload[0]),
		Mask: event.Mask(binary.BigEndian.Uint16(payload[1:3])),
	}
	size, ok := bodySize(ev.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownEvent, ev.Type)
	}
	body := payload[eventPrefixSize:]
	if len(body) < size {
		return nil, fmt.Errorf("%w: %v body", ErrShortPacket, ev.Type)
	}

	switch {
	case ev.Type.IsKeyboard():
		ev.Keyboard = event.KeyboardData{
			Keycode: event.Keycode(binary.BigEndian.Uint16(body[0:2])),
			RawCode: binary.BigEndian.Uint16(body[2:4]),
			Char:    rune(binary.BigEndian.Uint32(body[4:8])),
		}
	case ev.Type == event.MouseWheel:
		ev.Wheel = event.WheelData{
			Clicks:    binary.BigEndian.Uint16(body[0:2]),
			X:         int16(binary.BigEndian.Uint16(body[2:4])),
			Y:         int16(binary.BigEndian.Uint16(body[4:6])),
			Type:      event.WheelType(body[6]),
			Amount:    binary.BigEndian.Uint16(body[7:9]),
			Rotation:  int16(binary.BigEndian.Uint16(body[9:11])),
			Direction: event.WheelDirection(body[11]),
		}
	default:
		ev.Mouse = event.MouseData{
			Button: event.Button(binary.BigEndian.Uint16(body[0:2])),
			Clicks: binary.BigEndian.Uint16(body[2:4]),
			X:      int16(binary.BigEndian.Uint16(body[4:6])),
			Y:      int16(binary.BigEndian.Uint16(body[6:8])),
		}
	}
	pkt.Event = ev
	return pkt, nil
}
