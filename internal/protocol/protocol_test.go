package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"inputhook/event"
)

func TestEventPacketRoundTrip(t *testing.T) {
	events := []*event.Event{
		{Type: event.KeyPressed, Mask: event.MaskShiftL | event.MaskCapsLock,
			Keyboard: event.KeyboardData{Keycode: event.KeyA, RawCode: 30}},
		{Type: event.KeyTyped, Keyboard: event.KeyboardData{RawCode: 30, Char: '€'}},
		{Type: event.MouseReleased, Mask: event.MaskButton1,
			Mouse: event.MouseData{Button: event.Button1, Clicks: 2, X: -1280, Y: 700}},
		{Type: event.MouseDragged, Mouse: event.MouseData{X: 10, Y: 20}},
		{Type: event.MouseWheel, Wheel: event.WheelData{Clicks: 1, X: 5, Y: 6,
			Type: event.WheelBlockScroll, Amount: 3, Rotation: -2, Direction: event.WheelHorizontal}},
	}
	for _, ev := range events {
		data, err := EncodeUDPPacket(&UDPPacket{Type: UDPPacketEvent, Seq: 7, Timestamp: 1234, Event: ev})
		if err != nil {
			t.Fatalf("encode %v: %v", ev.Type, err)
		}
		pkt, err := DecodeUDPPacket(data)
		if err != nil {
			t.Fatalf("decode %v: %v", ev.Type, err)
		}
		if pkt.Seq != 7 || pkt.Timestamp != 1234 {
			t.Errorf("%v header = seq %d ts %d", ev.Type, pkt.Seq, pkt.Timestamp)
		}
		if *pkt.Event != *ev {
			t.Errorf("%v decoded as %+v, want %+v", ev.Type, *pkt.Event, *ev)
		}
	}
}

func TestControlPackets(t *testing.T) {
	for _, typ := range []uint8{UDPPacketRegister, UDPPacketHeartbeat, UDPPacketAck} {
		data, err := EncodeUDPPacket(&UDPPacket{Type: typ})
		if err != nil || len(data) != UDPHeaderSize {
			t.Fatalf("encode 0x%X = %d bytes, %v", typ, len(data), err)
		}
		pkt, err := DecodeUDPPacket(data)
		if err != nil || pkt.Type != typ || pkt.Event != nil {
			t.Errorf("decode 0x%X = %+v, %v", typ, pkt, err)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	valid, _ := EncodeUDPPacket(&UDPPacket{Type: UDPPacketEvent,
		Event: &event.Event{Type: event.MouseWheel}})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{UDPPacketEvent, 0, 0}, ErrShortPacket},
		{"unknown packet", append([]byte{0x7F}, make([]byte, 12)...), ErrUnknownPacket},
		{"truncated body", valid[:len(valid)-1], ErrShortPacket},
		{"lifecycle event", append(append([]byte{UDPPacketEvent}, make([]byte, 12)...),
			uint8(event.HookEnabled), 0, 0), ErrUnknownEvent},
	}
	for _, tt := range tests {
		if _, err := DecodeUDPPacket(tt.data); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}

	if _, err := EncodeUDPPacket(&UDPPacket{Type: UDPPacketEvent, Event: &event.Event{Type: event.HookDisabled}}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("encode lifecycle event err = %v", err)
	}
}

func TestMessage(t *testing.T) {
	ev := &event.Event{Type: event.KeyReleased, Keyboard: event.KeyboardData{Keycode: event.KeyEscape}}
	msg, err := NewMessage(TypePost, ev)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	var back event.Event
	if got.Type != TypePost || got.Decode(&back) != nil || back != *ev {
		t.Errorf("message round trip = %s / %+v", got.Type, back)
	}

	empty, _ := NewMessage(TypeHello, nil)
	if err := empty.Decode(&back); err == nil {
		t.Error("Decode of empty payload succeeded")
	}
}
