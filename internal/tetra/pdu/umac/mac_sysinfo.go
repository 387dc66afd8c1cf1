package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// MacSysinfo is MAC-SYSINFO (clause 21.4.4.2): the BS's broadcast system
// information, carried on BNCH in frame 18 slot 1. It
// advertises the cell's main carrier and the access parameters a mobile
// needs before it can request resources.
type MacSysinfo struct {
	MainCarrier     uint16 // 12-bit
	FreqBand        uint8  // 4-bit
	FreqOffset      int16  // 10-bit, signed
	DuplexSpacing   uint8  // 3-bit
	ReverseOperation bool
	NumberOfCommonSecondarySlots uint8 // 2-bit
	MsTxPwrMax      uint8 // 3-bit
	RxvLevel        uint8 // 4-bit minimum access rx level
	AccessParameter uint8 // 4-bit
	RadioDownlinkTimeout uint8 // 4-bit
	HyperframeNumber uint16   // type-2: 16-bit, present after a full hyperframe only
}

const macSysinfoType1Len = 12 + 4 + 10 + 3 + 1 + 2 + 3 + 4 + 4 + 4

func ParseMacSysinfo(buf *bitbuf.BitBuffer) (*MacSysinfo, error) {
	t, err := buf.ReadField(2, "mac_pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("mac_pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, uint64(MacPduBroadcast)); err != nil {
		return nil, err
	}
	sub, err := buf.ReadField(2, "broadcast_sub_type")
	if err != nil {
		return nil, pdu.OutOfBounds("broadcast_sub_type", err)
	}
	if err := pdu.ExpectPduType(sub, 0); err != nil {
		return nil, err
	}

	mc, err := buf.ReadField(12, "main_carrier")
	if err != nil {
		return nil, pdu.OutOfBounds("main_carrier", err)
	}
	fb, err := buf.ReadField(4, "freq_band")
	if err != nil {
		return nil, pdu.OutOfBounds("freq_band", err)
	}
	fo, err := buf.ReadField(10, "freq_offset")
	if err != nil {
		return nil, pdu.OutOfBounds("freq_offset", err)
	}
	ds, err := buf.ReadField(3, "duplex_spacing")
	if err != nil {
		return nil, pdu.OutOfBounds("duplex_spacing", err)
	}
	rev, err := buf.ReadField(1, "reverse_operation")
	if err != nil {
		return nil, pdu.OutOfBounds("reverse_operation", err)
	}
	nCss, err := buf.ReadField(2, "number_of_common_secondary_slots")
	if err != nil {
		return nil, pdu.OutOfBounds("number_of_common_secondary_slots", err)
	}
	txMax, err := buf.ReadField(3, "ms_tx_pwr_max")
	if err != nil {
		return nil, pdu.OutOfBounds("ms_tx_pwr_max", err)
	}
	rxv, err := buf.ReadField(4, "rxv_level")
	if err != nil {
		return nil, pdu.OutOfBounds("rxv_level", err)
	}
	ap, err := buf.ReadField(4, "access_parameter")
	if err != nil {
		return nil, pdu.OutOfBounds("access_parameter", err)
	}
	rdt, err := buf.ReadField(4, "radio_downlink_timeout")
	if err != nil {
		return nil, pdu.OutOfBounds("radio_downlink_timeout", err)
	}

	m := &MacSysinfo{
		MainCarrier:                  uint16(mc),
		FreqBand:                     uint8(fb),
		FreqOffset:                   signExtend(fo, 10),
		DuplexSpacing:                uint8(ds),
		ReverseOperation:             rev == 1,
		NumberOfCommonSecondarySlots: uint8(nCss),
		MsTxPwrMax:                   uint8(txMax),
		RxvLevel:                     uint8(rxv),
		AccessParameter:              uint8(ap),
		RadioDownlinkTimeout:         uint8(rdt),
	}

	chainOpen, err := pdu.ReadObit(buf)
	if err != nil {
		return nil, err
	}
	if chainOpen {
		hf, err := pdu.ParseType2Generic(true, buf, 16, "hyperframe_number")
		if err != nil {
			return nil, err
		}
		if hf != nil {
			m.HyperframeNumber = uint16(*hf)
		}
	}
	return m, nil
}

func (m *MacSysinfo) Write(buf *bitbuf.BitBuffer, includeHyperframe bool) {
	buf.WriteBits(uint64(MacPduBroadcast), 2)
	buf.WriteBits(0, 2) // broadcast_sub_type: MAC-SYSINFO

	buf.WriteBits(uint64(m.MainCarrier), 12)
	buf.WriteBits(uint64(m.FreqBand), 4)
	buf.WriteBits(signTruncate(m.FreqOffset, 10), 10)
	buf.WriteBits(uint64(m.DuplexSpacing), 3)
	if m.ReverseOperation {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(m.NumberOfCommonSecondarySlots), 2)
	buf.WriteBits(uint64(m.MsTxPwrMax), 3)
	buf.WriteBits(uint64(m.RxvLevel), 4)
	buf.WriteBits(uint64(m.AccessParameter), 4)
	buf.WriteBits(uint64(m.RadioDownlinkTimeout), 4)

	if includeHyperframe {
		pdu.WriteObit(buf, 1)
		v := uint64(m.HyperframeNumber)
		pdu.WriteType2Generic(true, buf, &v, 16)
	} else {
		pdu.WriteObit(buf, 0)
	}
}

func signExtend(v uint64, bits int) int16 {
	shift := 64 - bits
	return int16(int64(v<<uint(shift)) >> uint(shift))
}

func signTruncate(v int16, bits int) uint64 {
	mask := uint64(1)<<uint(bits) - 1
	return uint64(v) & mask
}
