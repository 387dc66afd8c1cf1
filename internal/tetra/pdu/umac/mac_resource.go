package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// LengthIndFragStart and LengthIndStolenSlot are the two length_ind sentinel
// values (clause 21.4.3.1) that signal fragmentation rather than an SDU
// byte count.
const (
	LengthIndFragStart  uint8 = 0b111111
	LengthIndStolenSlot uint8 = 0b111110
)

// MacResource is MAC-RESOURCE (clause 21.4.3.1): the BS's per-slot
// downlink resource grant, carrying an LLC SDU plus addressing, power
// control and channel (re)allocation elements. An absent address makes
// this a null PDU whose remaining fields carry no meaning.
type MacResource struct {
	FillBits        bool
	PosOfGrant      uint8
	EncryptionMode  uint8
	RandomAccess    bool
	LengthInd       uint8
	Addr            *addr.Address
	EventLabel      *uint16
	UsageMarker     *uint8
	PowerControl    *uint8
	SlotGranting    *BasicSlotgrant
	ChanAllocation  *ChanAllocElement
}

func NullMacResource() *MacResource {
	return &MacResource{LengthInd: 2}
}

func (m *MacResource) IsNullPdu() bool {
	return m.Addr == nil && m.EventLabel == nil && m.UsageMarker == nil
}

func ParseMacResource(buf *bitbuf.BitBuffer) (*MacResource, error) {
	t, err := buf.ReadField(2, "mac_pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("mac_pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, uint64(MacPduResourceOrFrag)); err != nil {
		return nil, err
	}

	m := &MacResource{}
	fill, err := buf.ReadField(1, "fill_bits")
	if err != nil {
		return nil, pdu.OutOfBounds("fill_bits", err)
	}
	pos, err := buf.ReadField(1, "pos_of_grant")
	if err != nil {
		return nil, pdu.OutOfBounds("pos_of_grant", err)
	}
	enc, err := buf.ReadField(2, "encryption_mode")
	if err != nil {
		return nil, pdu.OutOfBounds("encryption_mode", err)
	}
	ra, err := buf.ReadField(1, "random_access_flag")
	if err != nil {
		return nil, pdu.OutOfBounds("random_access_flag", err)
	}
	li, err := buf.ReadField(6, "length_ind")
	if err != nil {
		return nil, pdu.OutOfBounds("length_ind", err)
	}
	m.FillBits = fill == 1
	m.PosOfGrant = uint8(pos)
	m.EncryptionMode = uint8(enc)
	m.RandomAccess = ra == 1
	m.LengthInd = uint8(li)

	at, err := buf.ReadField(3, "addr_type")
	if err != nil {
		return nil, pdu.OutOfBounds("addr_type", err)
	}
	addrType := MacResourceAddrType(at)

	encrypted := m.EncryptionMode != 0
	switch addrType {
	case AddrNullPdu:
		m.FillBits = false
		m.PosOfGrant = 0
		m.EncryptionMode = 0
		m.RandomAccess = false
	case AddrSsi:
		ssi, err := buf.ReadField(24, "ssi")
		if err != nil {
			return nil, pdu.OutOfBounds("ssi", err)
		}
		m.Addr = &addr.Address{SsiType: addr.Ssi, Ssi: uint32(ssi), Encrypted: encrypted}
	case AddrEventLabel:
		el, err := buf.ReadField(10, "event_label")
		if err != nil {
			return nil, pdu.OutOfBounds("event_label", err)
		}
		v := uint16(el)
		m.EventLabel = &v
	case AddrUssi:
		ssi, err := buf.ReadField(24, "ussi")
		if err != nil {
			return nil, pdu.OutOfBounds("ussi", err)
		}
		m.Addr = &addr.Address{SsiType: addr.Ussi, Ssi: uint32(ssi), Encrypted: encrypted}
	case AddrSmi:
		smi, err := buf.ReadField(24, "smi")
		if err != nil {
			return nil, pdu.OutOfBounds("smi", err)
		}
		m.Addr = &addr.Address{SsiType: addr.Smi, Ssi: uint32(smi), Encrypted: encrypted}
	case AddrSsiAndEventLabel:
		ssi, err := buf.ReadField(24, "ssi")
		if err != nil {
			return nil, pdu.OutOfBounds("ssi", err)
		}
		el, err := buf.ReadField(10, "event_label")
		if err != nil {
			return nil, pdu.OutOfBounds("event_label", err)
		}
		m.Addr = &addr.Address{SsiType: addr.Ssi, Ssi: uint32(ssi), Encrypted: encrypted}
		v := uint16(el)
		m.EventLabel = &v
	case AddrSsiAndUsageMarker:
		ssi, err := buf.ReadField(24, "ssi")
		if err != nil {
			return nil, pdu.OutOfBounds("ssi", err)
		}
		um, err := buf.ReadField(6, "usage_marker")
		if err != nil {
			return nil, pdu.OutOfBounds("usage_marker", err)
		}
		m.Addr = &addr.Address{SsiType: addr.Ssi, Ssi: uint32(ssi), Encrypted: encrypted}
		v := uint8(um)
		m.UsageMarker = &v
	case AddrSmiAndEventLabel:
		smi, err := buf.ReadField(24, "smi")
		if err != nil {
			return nil, pdu.OutOfBounds("smi", err)
		}
		el, err := buf.ReadField(10, "event_label")
		if err != nil {
			return nil, pdu.OutOfBounds("event_label", err)
		}
		m.Addr = &addr.Address{SsiType: addr.Smi, Ssi: uint32(smi), Encrypted: encrypted}
		v := uint16(el)
		m.EventLabel = &v
	default:
		return nil, pdu.InvalidValue("addr_type", at)
	}

	if addrType == AddrNullPdu {
		m.EncryptionMode = 0
		return m, nil
	}

	pcf, err := buf.ReadField(1, "power_control_flag")
	if err != nil {
		return nil, pdu.OutOfBounds("power_control_flag", err)
	}
	if pcf == 1 {
		v, err := buf.ReadField(4, "power_control_element")
		if err != nil {
			return nil, pdu.OutOfBounds("power_control_element", err)
		}
		u := uint8(v)
		m.PowerControl = &u
	}

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

func (m *MacResource) addrType() (MacResourceAddrType, error) {
	switch {
	case m.IsNullPdu():
		return AddrNullPdu, nil
	case m.Addr != nil:
		switch m.Addr.SsiType {
		case addr.Ssi, addr.Gssi, addr.Issi:
			switch {
			case m.EventLabel == nil && m.UsageMarker == nil:
				return AddrSsi, nil
			case m.EventLabel != nil && m.UsageMarker == nil:
				return AddrSsiAndEventLabel, nil
			case m.UsageMarker != nil && m.EventLabel == nil:
				return AddrSsiAndUsageMarker, nil
			default:
				return 0, pdu.InvalidValue("addr_type", 0)
			}
		case addr.Ussi:
			if m.EventLabel == nil && m.UsageMarker == nil {
				return AddrUssi, nil
			}
			return 0, pdu.InvalidValue("addr_type", 0)
		case addr.Smi:
			if m.EventLabel != nil {
				return AddrSmiAndEventLabel, nil
			}
			return AddrSmi, nil
		default:
			return 0, pdu.InvalidValue("addr_type", 0)
		}
	case m.EventLabel != nil:
		return AddrEventLabel, nil
	default:
		return AddrNullPdu, nil
	}
}

func (m *MacResource) Write(buf *bitbuf.BitBuffer) error {
	if m.LengthInd == 0 {
		return pdu.InvalidValue("length_ind", 0)
	}
	buf.WriteBits(uint64(MacPduResourceOrFrag), 2)
	if m.FillBits {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(m.PosOfGrant), 1)
	buf.WriteBits(uint64(m.EncryptionMode), 2)
	if m.RandomAccess {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(m.LengthInd), 6)

	addrType, err := m.addrType()
	if err != nil {
		return err
	}
	buf.WriteBits(uint64(addrType), 3)

	switch addrType {
	case AddrNullPdu:
	case AddrSsi, AddrUssi, AddrSmi:
		buf.WriteBits(uint64(m.Addr.Ssi), 24)
	case AddrEventLabel:
		buf.WriteBits(uint64(*m.EventLabel), 10)
	case AddrSsiAndEventLabel, AddrSmiAndEventLabel:
		buf.WriteBits(uint64(m.Addr.Ssi), 24)
		buf.WriteBits(uint64(*m.EventLabel), 10)
	case AddrSsiAndUsageMarker:
		buf.WriteBits(uint64(m.Addr.Ssi), 24)
		buf.WriteBits(uint64(*m.UsageMarker), 6)
	}

	if addrType == AddrNullPdu {
		return nil
	}

	if m.PowerControl != nil {
		buf.WriteBits(1, 1)
		buf.WriteBits(uint64(*m.PowerControl), 4)
	} else {
		buf.WriteBits(0, 1)
	}

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

// ComputeHeaderLen mirrors update_len_and_fill_ind's header-size accounting,
// used to derive length_ind and the number of octet-alignment fill bits for
// a given SDU length.
func (m *MacResource) ComputeHeaderLen() int {
	ret := 16
	if m.IsNullPdu() {
		return ret
	}
	if m.EventLabel != nil {
		ret += 10
	}
	if m.UsageMarker != nil {
		ret += 6
	}
	if m.Addr != nil {
		ret += 24
	}
	ret++
	if m.PowerControl != nil {
		ret += 4
	}
	ret++
	if m.SlotGranting != nil {
		ret += 8
	}
	ret++
	if m.ChanAllocation != nil {
		ret += m.ChanAllocation.ComputeLen()
	}
	return ret
}

// UpdateLenAndFillInd sets LengthInd/FillBits from the header size plus a
// given SDU length, returning the number of fill bits the caller must
// append to reach octet alignment.
func (m *MacResource) UpdateLenAndFillInd(sduLen int) int {
	hdrLen := m.ComputeHeaderLen()
	totalLen := hdrLen + sduLen
	totalLenBytes := (totalLen + 7) / 8
	numFillBits := (8 - (totalLen % 8)) % 8
	m.LengthInd = uint8(totalLenBytes)
	m.FillBits = numFillBits != 0
	return numFillBits
}
