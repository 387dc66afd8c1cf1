package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// BasicSlotgrant is the 8-bit basic slot granting / capacity allocation
// element (clause 21.5.6): a capacity grant paired with the delay, in
// frames, before it takes effect.
type BasicSlotgrant struct {
	CapAlloc      BasicSlotgrantCapAlloc
	GrantingDelay uint8
}

func ParseBasicSlotgrant(buf *bitbuf.BitBuffer) (BasicSlotgrant, error) {
	cap, err := buf.ReadField(4, "cap_alloc")
	if err != nil {
		return BasicSlotgrant{}, pdu.OutOfBounds("cap_alloc", err)
	}
	delay, err := buf.ReadField(4, "granting_delay")
	if err != nil {
		return BasicSlotgrant{}, pdu.OutOfBounds("granting_delay", err)
	}
	return BasicSlotgrant{CapAlloc: BasicSlotgrantCapAlloc(cap), GrantingDelay: uint8(delay)}, nil
}

func (b BasicSlotgrant) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(uint64(b.CapAlloc), 4)
	buf.WriteBits(uint64(b.GrantingDelay), 4)
}
