package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// MacFragHdrLen is the fixed size, in bits, of a MAC-FRAG header: just
// enough to say "more SDU bits follow, here's whether they're fill-padded".
const MacFragHdrLen = 4

// MacFragDl is MAC-FRAG downlink (clause 21.4.3.3): a continuation
// fragment carrying raw TM-SDU bits with no addressing of its own — it
// inherits the addressing of the MAC-RESOURCE that opened the
// fragmentation sequence.
type MacFragDl struct {
	FillBits bool
}

func ParseMacFragDl(buf *bitbuf.BitBuffer) (*MacFragDl, error) {
	t, err := buf.ReadField(2, "mac_pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("mac_pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, uint64(MacPduSupplementary)); err != nil {
		return nil, err
	}
	fill, err := buf.ReadField(1, "fill_bits")
	if err != nil {
		return nil, pdu.OutOfBounds("fill_bits", err)
	}
	_, err = buf.ReadField(1, "reserved")
	if err != nil {
		return nil, pdu.OutOfBounds("reserved", err)
	}
	return &MacFragDl{FillBits: fill == 1}, nil
}

func (m *MacFragDl) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(uint64(MacPduSupplementary), 2)
	if m.FillBits {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(0, 1)
}

// MacEndDl is MAC-END downlink (clause 21.4.3.4): the final fragment of a
// fragmentation sequence, framed like a slimmed-down MAC-RESOURCE (no
// addressing, but still able to carry power-control/slot-granting/
// channel-allocation elements).
type MacEndDl struct {
	FillBits       bool
	PosOfGrant     uint8
	LengthInd      uint8
	SlotGranting   *BasicSlotgrant
	ChanAllocation *ChanAllocElement
}

// ComputeMacEndHdrLen returns the MAC-END header size in bits for the given
// optional-element presence, mirroring BsFragger's planning arithmetic
// before the final chunk size is known.
func ComputeMacEndHdrLen(hasSlotGranting, hasChanAlloc bool) int {
	ret := 2 + 1 + 1 + 6 + 1 + 1
	if hasSlotGranting {
		ret += 8
	}
	if hasChanAlloc {
		ret += 25 // minimum, non-augmented, non-extended encoding
	}
	return ret
}

func ParseMacEndDl(buf *bitbuf.BitBuffer) (*MacEndDl, error) {
	t, err := buf.ReadField(2, "mac_pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("mac_pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, uint64(MacPduEndOrNotify)); err != nil {
		return nil, err
	}
	fill, err := buf.ReadField(1, "fill_bits")
	if err != nil {
		return nil, pdu.OutOfBounds("fill_bits", err)
	}
	pos, err := buf.ReadField(1, "pos_of_grant")
	if err != nil {
		return nil, pdu.OutOfBounds("pos_of_grant", err)
	}
	li, err := buf.ReadField(6, "length_ind")
	if err != nil {
		return nil, pdu.OutOfBounds("length_ind", err)
	}

	m := &MacEndDl{FillBits: fill == 1, PosOfGrant: uint8(pos), LengthInd: uint8(li)}

	sgf, err := buf.ReadField(1, "slot_granting_flag")
	if err != nil {
		return nil, pdu.OutOfBounds("slot_granting_flag", err)
	}
	if sgf == 1 {
		sg, err := ParseBasicSlotgrant(buf)
		if err != nil {
			return nil, err
		}
		m.SlotGranting = &sg
	}

	caf, err := buf.ReadField(1, "chan_alloc_flag")
	if err != nil {
		return nil, pdu.OutOfBounds("chan_alloc_flag", err)
	}
	if caf == 1 {
		ca, err := ParseChanAllocElement(buf)
		if err != nil {
			return nil, err
		}
		m.ChanAllocation = ca
	}

	return m, nil
}

func (m *MacEndDl) Write(buf *bitbuf.BitBuffer) error {
	buf.WriteBits(uint64(MacPduEndOrNotify), 2)
	if m.FillBits {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(m.PosOfGrant), 1)
	buf.WriteBits(uint64(m.LengthInd), 6)

	if m.SlotGranting != nil {
		buf.WriteBits(1, 1)
		m.SlotGranting.Write(buf)
	} else {
		buf.WriteBits(0, 1)
	}

	if m.ChanAllocation != nil {
		buf.WriteBits(1, 1)
		if err := m.ChanAllocation.Write(buf); err != nil {
			return err
		}
	} else {
		buf.WriteBits(0, 1)
	}
	return nil
}
