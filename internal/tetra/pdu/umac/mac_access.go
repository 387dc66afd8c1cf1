package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// MacAccess is MAC-ACCESS (clause 21.4.3.5): a mobile's uplink random- or
// reserved-access transmission, optionally the first fragment of a
// longer TM-SDU.
type MacAccess struct {
	FillBits     bool
	LengthInd    uint8
	SlotsToFollow *ReservationRequirement
}

func ParseMacAccess(buf *bitbuf.BitBuffer) (*MacAccess, error) {
	t, err := buf.ReadField(2, "mac_pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("mac_pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, uint64(MacPduResourceOrFrag)); err != nil {
		return nil, err
	}
	fill, err := buf.ReadField(1, "fill_bits")
	if err != nil {
		return nil, pdu.OutOfBounds("fill_bits", err)
	}
	li, err := buf.ReadField(6, "length_ind")
	if err != nil {
		return nil, pdu.OutOfBounds("length_ind", err)
	}

	m := &MacAccess{FillBits: fill == 1, LengthInd: uint8(li)}

	rf, err := buf.ReadField(1, "reservation_flag")
	if err != nil {
		return nil, pdu.OutOfBounds("reservation_flag", err)
	}
	if rf == 1 {
		r, err := buf.ReadField(4, "slots_to_follow")
		if err != nil {
			return nil, pdu.OutOfBounds("slots_to_follow", err)
		}
		rr := ReservationRequirement(r)
		m.SlotsToFollow = &rr
	}
	return m, nil
}

func (m *MacAccess) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(uint64(MacPduResourceOrFrag), 2)
	if m.FillBits {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(m.LengthInd), 6)
	if m.SlotsToFollow != nil {
		buf.WriteBits(1, 1)
		buf.WriteBits(uint64(*m.SlotsToFollow), 4)
	} else {
		buf.WriteBits(0, 1)
	}
}

// MacEndUl is MAC-END uplink (clause 21.4.3.6): closes a fragmented
// uplink transmission started by MAC-ACCESS.
type MacEndUl struct {
	FillBits  bool
	LengthInd uint8
}

func ParseMacEndUl(buf *bitbuf.BitBuffer) (*MacEndUl, error) {
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
	li, err := buf.ReadField(6, "length_ind")
	if err != nil {
		return nil, pdu.OutOfBounds("length_ind", err)
	}
	return &MacEndUl{FillBits: fill == 1, LengthInd: uint8(li)}, nil
}

func (m *MacEndUl) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(uint64(MacPduEndOrNotify), 2)
	if m.FillBits {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(m.LengthInd), 6)
}

// MacFragUl is MAC-FRAG uplink: a continuation fragment of a MAC-ACCESS
// sequence, framed identically to its downlink counterpart.
type MacFragUl = MacFragDl

func ParseMacFragUl(buf *bitbuf.BitBuffer) (*MacFragUl, error) { return ParseMacFragDl(buf) }
