package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// ChanAllocElement is the channel allocation element (clause 21.5.2):
// points a mobile at the timeslots/carrier it should use next. Extended
// carrier numbering and augmented uplink/downlink assignment are not
// implemented, matching this stack's single-carrier deployment model.
type ChanAllocElement struct {
	AllocType          ChanAllocType
	TsAssigned         [4]bool
	UlDlAssigned       UlDlAssignment
	ClchPermission     bool
	CellChangeFlag     bool
	CarrierNum         uint16
	MonPattern         uint8
	Frame18MonPattern  *uint8
}

func ParseChanAllocElement(buf *bitbuf.BitBuffer) (*ChanAllocElement, error) {
	at, err := buf.ReadField(2, "alloc_type")
	if err != nil {
		return nil, pdu.OutOfBounds("alloc_type", err)
	}
	bitmap, err := buf.ReadField(4, "ts_assigned")
	if err != nil {
		return nil, pdu.OutOfBounds("ts_assigned", err)
	}
	ts := [4]bool{
		bitmap&0b1000 != 0,
		bitmap&0b0100 != 0,
		bitmap&0b0010 != 0,
		bitmap&0b0001 != 0,
	}
	uldl, err := buf.ReadField(2, "ul_dl_assigned")
	if err != nil {
		return nil, pdu.OutOfBounds("ul_dl_assigned", err)
	}
	clch, err := buf.ReadField(1, "clch_permission")
	if err != nil {
		return nil, pdu.OutOfBounds("clch_permission", err)
	}
	cellChange, err := buf.ReadField(1, "cell_change_flag")
	if err != nil {
		return nil, pdu.OutOfBounds("cell_change_flag", err)
	}
	carrier, err := buf.ReadField(12, "carrier_num")
	if err != nil {
		return nil, pdu.OutOfBounds("carrier_num", err)
	}
	extFlag, err := buf.ReadField(1, "ext_carrier_num_flag")
	if err != nil {
		return nil, pdu.OutOfBounds("ext_carrier_num_flag", err)
	}
	if extFlag == 1 {
		return nil, pdu.NotImplemented("extended_channel_allocation")
	}

	mon, err := buf.ReadField(2, "mon_pattern")
	if err != nil {
		return nil, pdu.OutOfBounds("mon_pattern", err)
	}
	var frame18 *uint8
	if mon == 0 {
		v, err := buf.ReadField(2, "frame18_mon_pattern")
		if err != nil {
			return nil, pdu.OutOfBounds("frame18_mon_pattern", err)
		}
		u := uint8(v)
		frame18 = &u
	}

	if UlDlAssignment(uldl) == UlDlAugmented {
		return nil, pdu.NotImplemented("augmented_channel_allocation")
	}

	return &ChanAllocElement{
		AllocType:         ChanAllocType(at),
		TsAssigned:        ts,
		UlDlAssigned:      UlDlAssignment(uldl),
		ClchPermission:    clch == 1,
		CellChangeFlag:    cellChange == 1,
		CarrierNum:        uint16(carrier),
		MonPattern:        uint8(mon),
		Frame18MonPattern: frame18,
	}, nil
}

func (c *ChanAllocElement) Write(buf *bitbuf.BitBuffer) error {
	buf.WriteBits(uint64(c.AllocType), 2)
	bitmap := uint64(0)
	if c.TsAssigned[0] {
		bitmap |= 0b1000
	}
	if c.TsAssigned[1] {
		bitmap |= 0b0100
	}
	if c.TsAssigned[2] {
		bitmap |= 0b0010
	}
	if c.TsAssigned[3] {
		bitmap |= 0b0001
	}
	buf.WriteBits(bitmap, 4)
	buf.WriteBits(uint64(c.UlDlAssigned), 2)
	if c.ClchPermission {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	if c.CellChangeFlag {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(c.CarrierNum), 12)
	buf.WriteBits(0, 1) // extended carrier numbering unsupported

	buf.WriteBits(uint64(c.MonPattern), 2)
	if c.MonPattern == 0 {
		if c.Frame18MonPattern == nil {
			return pdu.InvalidValue("frame18_mon_pattern", 0)
		}
		buf.WriteBits(uint64(*c.Frame18MonPattern), 2)
	}

	if c.UlDlAssigned == UlDlAugmented {
		return pdu.NotImplemented("augmented_channel_allocation")
	}
	return nil
}

func (c *ChanAllocElement) ComputeLen() int {
	l := 2 + 4 + 2 + 1 + 1 + 12 + 1
	l += 2
	if c.MonPattern == 0 {
		l += 2
	}
	return l
}
