// Package testharness implements a QUIC test-PDU service: a small
// request/response protocol used to exercise the QUIC transport
// end-to-end without a full call-routing backend on the other end.
package testharness

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ServiceID and Version are checked on every decoded PDU; mismatches are
// rejected rather than silently accepted.
const (
	ServiceID uint32 = 0x54455354 // "TEST"
	Version   byte   = 1
)

// Payload variant tags.
const (
	TagHeartbeatTick byte = 0
	TagHeartbeatTock byte = 1
	TagTestRequest   byte = 2
	TagTestResponse  byte = 3
)

var (
	ErrTooShort         = errors.New("testharness: pdu too short")
	ErrServiceIDMismatch = errors.New("testharness: service id mismatch")
	ErrVersionMismatch   = errors.New("testharness: protocol version mismatch")
	ErrUnknownTag        = errors.New("testharness: unknown payload tag")
)

// HeartbeatTick/Tock carry an opaque client-chosen handle so a caller can
// correlate a Tock with the Tick that produced it.
type HeartbeatTick struct{ Handle uint64 }
type HeartbeatTock struct{ Handle uint64 }

// TestRequest/TestResponse exercise a round trip carrying an SSI and a
// data word, standing in for a real call-routing lookup.
type TestRequest struct {
	Handle uint64
	SSI    uint32
}
type TestResponse struct {
	Handle uint64
	SSI    uint32
	Data   uint32
}

// PDU is the decoded form of one test-service message. Exactly one of
// the payload fields is set.
type PDU struct {
	Tick     *HeartbeatTick
	Tock     *HeartbeatTock
	Request  *TestRequest
	Response *TestResponse
}

// Encode serialises a PDU to its wire form: service_id (u32 BE), version
// (u8), tag (u8), then tag-specific fields, all big-endian.
func Encode(p PDU) ([]byte, error) {
	var tag byte
	var body []byte

	switch {
	case p.Tick != nil:
		tag = TagHeartbeatTick
		body = encodeHandle(p.Tick.Handle)
	case p.Tock != nil:
		tag = TagHeartbeatTock
		body = encodeHandle(p.Tock.Handle)
	case p.Request != nil:
		tag = TagTestRequest
		body = make([]byte, 12)
		binary.BigEndian.PutUint64(body[0:8], p.Request.Handle)
		binary.BigEndian.PutUint32(body[8:12], p.Request.SSI)
	case p.Response != nil:
		tag = TagTestResponse
		body = make([]byte, 16)
		binary.BigEndian.PutUint64(body[0:8], p.Response.Handle)
		binary.BigEndian.PutUint32(body[8:12], p.Response.SSI)
		binary.BigEndian.PutUint32(body[12:16], p.Response.Data)
	default:
		return nil, errors.New("testharness: empty pdu")
	}

	buf := make([]byte, 6+len(body))
	binary.BigEndian.PutUint32(buf[0:4], ServiceID)
	buf[4] = Version
	buf[5] = tag
	copy(buf[6:], body)
	return buf, nil
}

func encodeHandle(h uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, h)
	return buf
}

// Decode parses a PDU, rejecting anything whose service ID or protocol
// version doesn't match this service.
func Decode(data []byte) (*PDU, error) {
	if len(data) < 6 {
		return nil, ErrTooShort
	}
	serviceID := binary.BigEndian.Uint32(data[0:4])
	if serviceID != ServiceID {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrServiceIDMismatch, serviceID)
	}
	version := data[4]
	if version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrVersionMismatch, version)
	}

	tag := data[5]
	body := data[6:]
	switch tag {
	case TagHeartbeatTick:
		h, err := decodeHandle(body)
		if err != nil {
			return nil, err
		}
		return &PDU{Tick: &HeartbeatTick{Handle: h}}, nil
	case TagHeartbeatTock:
		h, err := decodeHandle(body)
		if err != nil {
			return nil, err
		}
		return &PDU{Tock: &HeartbeatTock{Handle: h}}, nil
	case TagTestRequest:
		if len(body) < 12 {
			return nil, ErrTooShort
		}
		return &PDU{Request: &TestRequest{
			Handle: binary.BigEndian.Uint64(body[0:8]),
			SSI:    binary.BigEndian.Uint32(body[8:12]),
		}}, nil
	case TagTestResponse:
		if len(body) < 16 {
			return nil, ErrTooShort
		}
		return &PDU{Response: &TestResponse{
			Handle: binary.BigEndian.Uint64(body[0:8]),
			SSI:    binary.BigEndian.Uint32(body[8:12]),
			Data:   binary.BigEndian.Uint32(body[12:16]),
		}}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
	}
}

func decodeHandle(body []byte) (uint64, error) {
	if len(body) < 8 {
		return 0, ErrTooShort
	}
	return binary.BigEndian.Uint64(body[0:8]), nil
}
