package pdu

import "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"

// Type2 fields are guarded by a presence bit once the O-bit chain is open:
// absent consumes the 1 presence bit only, present consumes the presence
// bit plus width value bits.

// ParseType2Generic reads an optional type-2 field. If chainOpen is false
// the field was never on the wire (O-bit closed the chain) and nothing is
// consumed.
func ParseType2Generic(chainOpen bool, buf *bitbuf.BitBuffer, width int, name string) (*uint64, error) {
	if !chainOpen {
		return nil, nil
	}
	present, err := buf.ReadField(1, name+"_present")
	if err != nil {
		return nil, OutOfBounds(name, err)
	}
	if present == 0 {
		return nil, nil
	}
	v, err := buf.ReadField(width, name)
	if err != nil {
		return nil, OutOfBounds(name, err)
	}
	return &v, nil
}

// WriteType2Generic emits an optional type-2 field.
func WriteType2Generic(chainOpen bool, buf *bitbuf.BitBuffer, value *uint64, width int) {
	if !chainOpen {
		return
	}
	if value == nil {
		buf.WriteBits(0, 1)
		return
	}
	buf.WriteBits(1, 1)
	buf.WriteBits(*value, width)
}

// Type3FieldGeneric is a raw element-id-keyed field: an 8-bit element id
// tag followed by an 11-bit bit-length and that many payload bits. Used
// for the catch-all type-3 fields (facility, proprietary, etc.) that this
// stack parses but does not interpret.
type Type3FieldGeneric struct {
	ElemID  uint8
	Payload *bitbuf.BitBuffer
}

// ParseType3Generic peeks the next element-id tag; if it matches elemID,
// consumes tag+length+payload and returns it, else leaves the buffer
// untouched (the field is simply absent at this position).
func ParseType3Generic(chainOpen bool, buf *bitbuf.BitBuffer, elemID uint8) (*Type3FieldGeneric, error) {
	if !chainOpen {
		return nil, nil
	}
	tag, err := buf.PeekField(8, "type3_elem_id")
	if err != nil {
		// Not enough bits left for another element; treat as absent.
		return nil, nil
	}
	if uint8(tag) != elemID {
		return nil, nil
	}
	_, _ = buf.ReadField(8, "type3_elem_id")
	length, err := buf.ReadField(11, "type3_len")
	if err != nil {
		return nil, OutOfBounds("type3_len", err)
	}
	payload := bitbuf.NewAutoexpand(int(length))
	for i := 0; i < int(length); i++ {
		bit, err := buf.ReadField(1, "type3_payload")
		if err != nil {
			return nil, OutOfBounds("type3_payload", err)
		}
		payload.WriteBits(bit, 1)
	}
	payload.Seek(0)
	return &Type3FieldGeneric{ElemID: elemID, Payload: payload}, nil
}

// WriteType3Generic emits a type-3 field if present.
func WriteType3Generic(chainOpen bool, buf *bitbuf.BitBuffer, field *Type3FieldGeneric, elemID uint8) error {
	if !chainOpen || field == nil {
		return nil
	}
	buf.WriteBits(uint64(elemID), 8)
	length := field.Payload.GetLenRemaining()
	if length > 2047 {
		return InvalidValue("type3_len", uint64(length))
	}
	buf.WriteBits(uint64(length), 11)
	buf.CopyBits(field.Payload, length)
	return nil
}
