package mm

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// ULocationUpdateDemand is U-LOCATION-UPDATE-DEMAND: a mobile registering
// or re-registering with the switch's client registry (clause 16.9.31).
type ULocationUpdateDemand struct {
	LocationUpdateType   LocationUpdateType
	Mcc                  uint16 // 10-bit
	Mnc                  uint16 // 14-bit
	LocationAreaIdent    uint16 // 14-bit

	CkSn      *uint64 // 4-bit, present if ciphering key sequence number given
	Ssi       *uint64 // 24-bit, present if mobile is quoting its own ITSI explicitly
}

func ParseULocationUpdateDemand(buf *bitbuf.BitBuffer) (*ULocationUpdateDemand, error) {
	t, err := buf.ReadField(4, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeULocationUpdateDemand.Raw()); err != nil {
		return nil, err
	}
	lut, err := buf.ReadField(3, "location_update_type")
	if err != nil {
		return nil, pdu.OutOfBounds("location_update_type", err)
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

	out := &ULocationUpdateDemand{
		LocationUpdateType: LocationUpdateType(lut),
		Mcc:                uint16(mcc),
		Mnc:                uint16(mnc),
		LocationAreaIdent:  uint16(lai),
	}

	chainOpen, err := pdu.ReadObit(buf)
	if err != nil {
		return nil, err
	}
	if chainOpen {
		if out.CkSn, err = pdu.ParseType2Generic(true, buf, 4, "ck_sn"); err != nil {
			return nil, err
		}
		if out.Ssi, err = pdu.ParseType2Generic(true, buf, 24, "ssi"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (u *ULocationUpdateDemand) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeULocationUpdateDemand.Raw(), 4)
	buf.WriteBits(uint64(u.LocationUpdateType), 3)
	buf.WriteBits(uint64(u.Mcc), 10)
	buf.WriteBits(uint64(u.Mnc), 14)
	buf.WriteBits(uint64(u.LocationAreaIdent), 14)

	chainOpen := u.CkSn != nil || u.Ssi != nil
	if chainOpen {
		pdu.WriteObit(buf, 1)
		pdu.WriteType2Generic(true, buf, u.CkSn, 4)
		pdu.WriteType2Generic(true, buf, u.Ssi, 24)
	} else {
		pdu.WriteObit(buf, 0)
	}
}
