// Package bitbuf implements the cursor-based bit-level read/write primitive
// that every codec in this module is built on top of.
package bitbuf

import (
	"fmt"
	"strings"
)

// BitBuffer is an opaque bit sequence with an internal cursor. It can be
// fixed-capacity or auto-expanding; all bit positions are zero-based, MSB
// first within each logical field.
type BitBuffer struct {
	bits   []byte // one bit per byte, value 0 or 1
	pos    int
	start  int
	autoEx bool
}

// New allocates a fixed-capacity buffer of numBits, all zero, cursor at 0.
func New(numBits int) *BitBuffer {
	return &BitBuffer{bits: make([]byte, numBits)}
}

// NewAutoexpand allocates a buffer that grows on write past its capacity.
// capHint sizes the initial backing array only; it does not cap writes.
func NewAutoexpand(capHint int) *BitBuffer {
	return &BitBuffer{bits: make([]byte, 0, capHint), autoEx: true}
}

// FromBitstr builds a fixed buffer from a string of '0'/'1' characters.
func FromBitstr(s string) *BitBuffer {
	b := &BitBuffer{bits: make([]byte, len(s))}
	for i, c := range s {
		if c == '1' {
			b.bits[i] = 1
		}
	}
	return b
}

// ToBitstr renders the bits from the current start to the logical end as a
// string of '0'/'1' characters. It does not consume the cursor.
func (b *BitBuffer) ToBitstr() string {
	var sb strings.Builder
	for _, v := range b.bits[b.start:] {
		if v != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// DumpBin renders the buffer with the cursor marked, for trace logging.
func (b *BitBuffer) DumpBin() string {
	return b.RawDumpBin(true, true, b.start, len(b.bits))
}

// RawDumpBin renders bits[from:to) as a string, optionally marking the
// current cursor position and grouping into nibbles.
func (b *BitBuffer) RawDumpBin(markCursor, group bool, from, to int) string {
	var sb strings.Builder
	for i := from; i < to && i < len(b.bits); i++ {
		if markCursor && i == b.pos {
			sb.WriteByte('|')
		}
		if b.bits[i] != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		if group && (i-from)%4 == 3 {
			sb.WriteByte(' ')
		}
	}
	if markCursor && b.pos >= to {
		sb.WriteByte('|')
	}
	return sb.String()
}

// ReadField consumes n (<=64) bits as a big-endian unsigned integer and
// advances the cursor. name is used only in the returned error.
func (b *BitBuffer) ReadField(n int, name string) (uint64, error) {
	if n > 64 {
		return 0, fmt.Errorf("bitbuf: field %q width %d exceeds 64 bits", name, n)
	}
	if b.pos+n > len(b.bits) {
		return 0, fmt.Errorf("%w: field %q needs %d bits, %d remain", ErrOutOfBounds, name, n, len(b.bits)-b.pos)
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = (v << 1) | uint64(b.bits[b.pos+i])
	}
	b.pos += n
	return v, nil
}

// PeekField reads n bits without moving the cursor.
func (b *BitBuffer) PeekField(n int, name string) (uint64, error) {
	save := b.pos
	v, err := b.ReadField(n, name)
	b.pos = save
	return v, err
}

// WriteBits writes the low n bits of value, most-significant-bit first,
// growing the backing array if the buffer is auto-expanding.
func (b *BitBuffer) WriteBits(value uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		bit := byte((value >> uint(i)) & 1)
		if b.pos < len(b.bits) {
			b.bits[b.pos] = bit
		} else if b.autoEx {
			b.bits = append(b.bits, bit)
		} else {
			panic("bitbuf: write past fixed capacity")
		}
		b.pos++
	}
}

// WriteBit writes a single bit.
func (b *BitBuffer) WriteBit(bit byte) {
	b.WriteBits(uint64(bit), 1)
}

// WriteZeroes writes n zero bits.
func (b *BitBuffer) WriteZeroes(n int) {
	for i := 0; i < n; i++ {
		b.WriteBit(0)
	}
}

// CopyBits copies n bits from src's current cursor into b, advancing both
// cursors. Used to splice a TM-SDU payload into a MAC block.
func (b *BitBuffer) CopyBits(src *BitBuffer, n int) {
	for i := 0; i < n; i++ {
		bit := src.bits[src.pos+i]
		if b.pos < len(b.bits) {
			b.bits[b.pos] = bit
		} else if b.autoEx {
			b.bits = append(b.bits, bit)
		} else {
			panic("bitbuf: copy past fixed capacity")
		}
		b.pos++
	}
	src.pos += n
}

// Seek moves the cursor to an absolute position.
func (b *BitBuffer) Seek(pos int) { b.pos = pos }

// SeekRel moves the cursor by a relative offset.
func (b *BitBuffer) SeekRel(delta int) { b.pos += delta }

// GetPos returns the cursor position relative to the logical start.
func (b *BitBuffer) GetPos() int { return b.pos - b.start }

// GetRawPos returns the cursor position relative to the backing array.
func (b *BitBuffer) GetRawPos() int { return b.pos }

// GetLen returns the number of bits between logical start and the cursor.
func (b *BitBuffer) GetLen() int { return b.pos - b.start }

// GetLenWritten is an alias of GetLen used at MAC-block framing sites where
// "how much have I written so far" reads more naturally.
func (b *BitBuffer) GetLenWritten() int { return b.GetLen() }

// GetLenRemaining returns the number of bits left to read from the cursor
// to the end of the backing array.
func (b *BitBuffer) GetLenRemaining() int { return len(b.bits) - b.pos }

// SetRawStart pins the logical start to an absolute backing-array offset.
func (b *BitBuffer) SetRawStart(pos int) { b.start = pos }

// SetRawEnd truncates the backing array to end at pos.
func (b *BitBuffer) SetRawEnd(pos int) { b.bits = b.bits[:pos] }
