// Package brew codes the Brew backhaul wire protocol: length-prefixed
// frames carrying a 2-byte {class, type} header, used between this stack
// and a call-routing backend.
package brew

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Message classes.
const (
	ClassSubscriber  byte = 0xf0
	ClassCallControl byte = 0xf1
	ClassFrame       byte = 0xf2
	ClassError       byte = 0xf3
	ClassService     byte = 0xf4
)

// Subscriber control types (class 0xf0).
const (
	SubscriberDeregister byte = 0
	SubscriberRegister   byte = 1
	SubscriberReregister byte = 2
	SubscriberAffiliate  byte = 8
	SubscriberDeaffiliate byte = 9
)

// Call-control sub-states (class 0xf1).
const (
	CallStateGroupTx        byte = 2
	CallStateGroupIdle      byte = 3
	CallStateSetupRequest   byte = 4
	CallStateSetupAccept    byte = 5
	CallStateSetupReject    byte = 6
	CallStateCallAlert      byte = 7
	CallStateConnectRequest byte = 8
	CallStateConnectConfirm byte = 9
	CallStateCallRelease    byte = 10
	CallStateShortTransfer  byte = 11
	CallStateSimplexGranted byte = 12
	CallStateSimplexIdle    byte = 13
)

// Frame types (class 0xf2).
const (
	FrameTypeTrafficChannel byte = 0
	FrameTypeSdsTransfer    byte = 1
	FrameTypeSdsReport      byte = 2
	FrameTypeDtmfData       byte = 3
	FrameTypePacketData     byte = 4
)

// Error types (class 0xf3).
const (
	ErrorTypeMalformed  byte = 0
	ErrorTypeRestricted byte = 1
)

// MaxFrameLength is the largest Brew frame this codec will accept or
// produce.
const MaxFrameLength = 1 << 20

var (
	ErrFrameTooShort  = errors.New("brew: frame too short")
	ErrUnknownClass   = errors.New("brew: unknown message class")
	ErrFrameTooLarge  = errors.New("brew: frame exceeds max length")
	ErrInvalidPayload = errors.New("brew: payload too short for declared type")
)

// Message is the parsed form of any Brew frame.
type Message struct {
	Class byte

	Subscriber  *SubscriberMessage
	CallControl *CallControlMessage
	Frame       *FrameMessage
	Error       *ErrorMessage
	Service     *ServiceMessage
}

// SubscriberMessage is a class-0xf0 registration/affiliation frame.
type SubscriberMessage struct {
	MsgType  byte
	Number   uint32 // ISSI
	Time     uint64 // UNIX seconds
	Fraction uint32 // nanoseconds
	Groups   []uint32
}

// CallControlMessage is a class-0xf1 call-state frame.
type CallControlMessage struct {
	CallState  byte
	Identifier uuid.UUID
	Cause      *byte  // set for GroupIdle/SetupReject/CallRelease
	Raw        []byte // set for anything else carrying a payload
}

// FrameMessage is a class-0xf2 voice/SDS/DTMF/packet frame.
type FrameMessage struct {
	FrameType  byte
	Identifier uuid.UUID
	LengthBits uint16
	Data       []byte
}

// ErrorMessage is a class-0xf3 frame.
type ErrorMessage struct {
	ErrorType byte
	Data      []byte
}

// ServiceMessage is a class-0xf4 null-terminated-JSON frame.
type ServiceMessage struct {
	ServiceType byte
	JSON        string
}

// Parse decodes a single Brew frame's payload (without the u32
// length prefix).
func Parse(data []byte) (*Message, error) {
	if len(data) < 2 {
		return nil, ErrFrameTooShort
	}
	if len(data) > MaxFrameLength {
		return nil, ErrFrameTooLarge
	}

	class, typ := data[0], data[1]
	switch class {
	case ClassSubscriber:
		return parseSubscriber(typ, data)
	case ClassCallControl:
		return parseCallControl(typ, data)
	case ClassFrame:
		return parseFrame(typ, data)
	case ClassError:
		return &Message{Class: ClassError, Error: &ErrorMessage{ErrorType: typ, Data: append([]byte(nil), data[2:]...)}}, nil
	case ClassService:
		return parseService(typ, data)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownClass, class)
	}
}

func parseSubscriber(typ byte, data []byte) (*Message, error) {
	const minLen = 18
	if len(data) < minLen {
		return nil, ErrInvalidPayload
	}
	m := &SubscriberMessage{
		MsgType:  typ,
		Number:   binary.LittleEndian.Uint32(data[2:6]),
		Time:     binary.LittleEndian.Uint64(data[6:14]),
		Fraction: binary.LittleEndian.Uint32(data[14:18]),
	}
	for off := minLen; off+4 <= len(data); off += 4 {
		m.Groups = append(m.Groups, binary.LittleEndian.Uint32(data[off:off+4]))
	}
	return &Message{Class: ClassSubscriber, Subscriber: m}, nil
}

func parseCallControl(callState byte, data []byte) (*Message, error) {
	const minLen = 18
	if len(data) < minLen {
		return nil, ErrInvalidPayload
	}
	id, err := uuid.FromBytes(data[2:18])
	if err != nil {
		return nil, fmt.Errorf("brew: invalid call uuid: %w", err)
	}
	m := &CallControlMessage{CallState: callState, Identifier: id}
	payload := data[18:]
	switch callState {
	case CallStateGroupIdle, CallStateSetupReject, CallStateCallRelease:
		if len(payload) < 1 {
			return nil, ErrInvalidPayload
		}
		cause := payload[0]
		m.Cause = &cause
	case CallStateSetupAccept, CallStateCallAlert:
		// no payload
	default:
		m.Raw = append([]byte(nil), payload...)
	}
	return &Message{Class: ClassCallControl, CallControl: m}, nil
}

func parseFrame(frameType byte, data []byte) (*Message, error) {
	const minLen = 20
	if len(data) < minLen {
		return nil, ErrInvalidPayload
	}
	id, err := uuid.FromBytes(data[2:18])
	if err != nil {
		return nil, fmt.Errorf("brew: invalid frame uuid: %w", err)
	}
	m := &FrameMessage{
		FrameType:  frameType,
		Identifier: id,
		LengthBits: binary.LittleEndian.Uint16(data[18:20]),
		Data:       append([]byte(nil), data[20:]...),
	}
	return &Message{Class: ClassFrame, Frame: m}, nil
}

func parseService(serviceType byte, data []byte) (*Message, error) {
	payload := data[2:]
	end := len(payload)
	for i, b := range payload {
		if b == 0 {
			end = i
			break
		}
	}
	return &Message{Class: ClassService, Service: &ServiceMessage{ServiceType: serviceType, JSON: string(payload[:end])}}, nil
}

// BuildSubscriberRegister encodes a registration frame for issi.
func BuildSubscriberRegister(issi uint32, seconds, nanos uint64) []byte {
	buf := make([]byte, 18)
	buf[0], buf[1] = ClassSubscriber, SubscriberRegister
	binary.LittleEndian.PutUint32(buf[2:6], issi)
	binary.LittleEndian.PutUint64(buf[6:14], seconds)
	binary.LittleEndian.PutUint32(buf[14:18], uint32(nanos))
	return buf
}

// BuildFrame encodes a voice/data frame with the given call identifier.
func BuildFrame(frameType byte, id uuid.UUID, lengthBits uint16, data []byte) []byte {
	buf := make([]byte, 20+len(data))
	buf[0], buf[1] = ClassFrame, frameType
	copy(buf[2:18], id[:])
	binary.LittleEndian.PutUint16(buf[18:20], lengthBits)
	copy(buf[20:], data)
	return buf
}

// BuildService encodes a null-terminated-JSON service frame.
func BuildService(serviceType byte, json string) []byte {
	buf := make([]byte, 2+len(json)+1)
	buf[0], buf[1] = ClassService, serviceType
	copy(buf[2:], json)
	buf[len(buf)-1] = 0
	return buf
}
