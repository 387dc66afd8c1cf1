package mm

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// DLocationUpdateAccept is D-LOCATION-UPDATE-ACCEPT: the switch's
// confirmation that a U-LOCATION-UPDATE-DEMAND was accepted into the
// client registry (clause 16.9.7).
type DLocationUpdateAccept struct {
	LocationUpdateAcceptType LocationUpdateAcceptType
	Mcc                      uint16 // 10-bit
	Mnc                      uint16 // 14-bit
	LocationAreaIdent        uint16 // 14-bit

	Ssi *uint64 // 24-bit, present when the switch assigns a new address
}

func ParseDLocationUpdateAccept(buf *bitbuf.BitBuffer) (*DLocationUpdateAccept, error) {
	t, err := buf.ReadField(4, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDLocationUpdateAccept.Raw()); err != nil {
		return nil, err
	}
	luat, err := buf.ReadField(2, "location_update_accept_type")
	if err != nil {
		return nil, pdu.OutOfBounds("location_update_accept_type", err)
	}
	mcc, err := buf.ReadField(10, "mcc")
	if err != nil {
		return nil, pdu.OutOfBounds("mcc", err)
	}
	mnc, err := buf.ReadField(14, "mnc")
	if err != nil {
		return nil, pdu.OutOfBounds("mnc", err)
	}
	lai, err := buf.ReadField(14, "location_area_ident")
	if err != nil {
		return nil, pdu.OutOfBounds("location_area_ident", err)
	}

	out := &DLocationUpdateAccept{
		LocationUpdateAcceptType: LocationUpdateAcceptType(luat),
		Mcc:                      uint16(mcc),
		Mnc:                      uint16(mnc),
		LocationAreaIdent:        uint16(lai),
	}

	chainOpen, err := pdu.ReadObit(buf)
	if err != nil {
		return nil, err
	}
	if chainOpen {
		if out.Ssi, err = pdu.ParseType2Generic(true, buf, 24, "ssi"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *DLocationUpdateAccept) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDLocationUpdateAccept.Raw(), 4)
	buf.WriteBits(uint64(d.LocationUpdateAcceptType), 2)
	buf.WriteBits(uint64(d.Mcc), 10)
	buf.WriteBits(uint64(d.Mnc), 14)
	buf.WriteBits(uint64(d.LocationAreaIdent), 14)

	if d.Ssi != nil {
		pdu.WriteObit(buf, 1)
		pdu.WriteType2Generic(true, buf, d.Ssi, 24)
	} else {
		pdu.WriteObit(buf, 0)
	}
}
