package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// AccessAssignHeader is the 2-bit field that selects how the two 6-bit
// usage fields of ACCESS-ASSIGN are to be interpreted (clause 21.4.3.1,
// table 21.XX simplified).
type AccessAssignHeader uint8

const (
	AaHeaderCommon AccessAssignHeader = iota
	AaHeaderTraffic
	AaHeaderReserved
	AaHeaderFr18
)

// AccessAssign is the ACCESS-ASSIGN PDU carried on AACH every timeslot:
// it tells a listening mobile what the current and next subslot are
// being used for, ahead of the actual MAC PDU that fills them.
type AccessAssign struct {
	Header  AccessAssignHeader
	Field1  uint8 // 6-bit: downlink usage for this slot
	Field2  uint8 // 6-bit: uplink usage for this slot, or fr18 MAC-SYSINFO flag
}

func NewAccessAssign(dl AccessAssignDlUsage, ul AccessAssignUlUsage) AccessAssign {
	var f1 uint8
	if dl.CommonControl {
		f1 = 0
	} else {
		f1 = dl.ToUsageMarker()
	}
	marker, hasMarker := ul.ToUsageMarker()
	hdr := AaHeaderCommon
	if hasMarker && ul.Kind != UlUsageCommonAndAssigned {
		hdr = AaHeaderTraffic
	}
	return AccessAssign{Header: hdr, Field1: f1, Field2: marker}
}

func (a AccessAssign) DlUsage() AccessAssignDlUsage {
	if a.Field1 == 0 {
		return DlUsageCommonControl()
	}
	return DlUsageFromMarker(a.Field1)
}

func (a AccessAssign) UlUsage() AccessAssignUlUsage {
	return UlUsageFromMarker(a.Field2)
}

func ParseAccessAssign(buf *bitbuf.BitBuffer) (*AccessAssign, error) {
	h, err := buf.ReadField(2, "header")
	if err != nil {
		return nil, pdu.OutOfBounds("header", err)
	}
	f1, err := buf.ReadField(6, "field1")
	if err != nil {
		return nil, pdu.OutOfBounds("field1", err)
	}
	f2, err := buf.ReadField(6, "field2")
	if err != nil {
		return nil, pdu.OutOfBounds("field2", err)
	}
	return &AccessAssign{
		Header: AccessAssignHeader(h),
		Field1: uint8(f1) & 0x3F,
		Field2: uint8(f2) & 0x3F,
	}, nil
}

func (a AccessAssign) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(uint64(a.Header), 2)
	buf.WriteBits(uint64(a.Field1), 6)
	buf.WriteBits(uint64(a.Field2), 6)
}
