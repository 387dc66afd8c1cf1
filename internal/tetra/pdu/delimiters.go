package pdu

import "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"

// ReadObit consumes the 1-bit "other fields follow?" flag that closes a
// PDU's type-1 block, reporting whether any type-2/3/4 field follows.
func ReadObit(buf *bitbuf.BitBuffer) (bool, error) {
	v, err := buf.ReadField(1, "obit")
	if err != nil {
		return false, OutOfBounds("obit", err)
	}
	return v == 1, nil
}

// WriteObit emits the O-bit.
func WriteObit(buf *bitbuf.BitBuffer, present uint8) {
	buf.WriteBits(uint64(present), 1)
}

// WriteMbit emits an M-bit: 1 to continue the optional-field chain, 0 to
// terminate it.
func WriteMbit(buf *bitbuf.BitBuffer, more uint8) {
	buf.WriteBits(uint64(more), 1)
}
