package cmce

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// UCallRestore is U-CALL-RESTORE: a mobile asking the switch to re-grant
// a circuit it believes survived a brief loss of coverage (clause
// 14.7.1.18).
type UCallRestore struct {
	CallIdentifier uint16
	CallOwnership  bool
	Reserved       bool
}

func ParseUCallRestore(buf *bitbuf.BitBuffer) (*UCallRestore, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeUCallRestore.Raw()); err != nil {
		return nil, err
	}
	callID, err := buf.ReadField(14, "call_identifier")
	if err != nil {
		return nil, pdu.OutOfBounds("call_identifier", err)
	}
	ownership, err := buf.ReadField(1, "call_ownership")
	if err != nil {
		return nil, pdu.OutOfBounds("call_ownership", err)
	}
	return &UCallRestore{CallIdentifier: uint16(callID), CallOwnership: ownership == 1}, nil
}

func (u *UCallRestore) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeUCallRestore.Raw(), 5)
	buf.WriteBits(uint64(u.CallIdentifier), 14)
	if u.CallOwnership {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
}

// DCallRestore is D-CALL-RESTORE: the switch's answer to U-CALL-RESTORE,
// either re-granting the circuit or rejecting it outright (the mobile
// falls back to U-SETUP on rejection).
type DCallRestore struct {
	CallIdentifier    uint16
	Restored          bool
	TransmissionGrant TransmissionGrant
}

func ParseDCallRestore(buf *bitbuf.BitBuffer) (*DCallRestore, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDCallRestore.Raw()); err != nil {
		return nil, err
	}
	callID, err := buf.ReadField(14, "call_identifier")
	if err != nil {
		return nil, pdu.OutOfBounds("call_identifier", err)
	}
	restored, err := buf.ReadField(1, "restored")
	if err != nil {
		return nil, pdu.OutOfBounds("restored", err)
	}
	grant, err := buf.ReadField(2, "transmission_grant")
	if err != nil {
		return nil, pdu.OutOfBounds("transmission_grant", err)
	}
	return &DCallRestore{
		CallIdentifier:    uint16(callID),
		Restored:          restored == 1,
		TransmissionGrant: TransmissionGrant(grant),
	}, nil
}

func (d *DCallRestore) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDCallRestore.Raw(), 5)
	buf.WriteBits(uint64(d.CallIdentifier), 14)
	if d.Restored {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(d.TransmissionGrant), 2)
}

// DCallProceeding is D-CALL-PROCEEDING: the switch acknowledging U-SETUP
// while it finishes allocating resources, before D-SETUP is sent to the
// called party.
type DCallProceeding struct {
	CallIdentifier          uint16
	BasicServiceInformation BasicServiceInformation
}

func ParseDCallProceeding(buf *bitbuf.BitBuffer) (*DCallProceeding, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDCallProceeding.Raw()); err != nil {
		return nil, err
	}
	callID, err := buf.ReadField(14, "call_identifier")
	if err != nil {
		return nil, pdu.OutOfBounds("call_identifier", err)
	}
	bsi, err := ParseBasicServiceInformation(buf)
	if err != nil {
		return nil, err
	}
	return &DCallProceeding{CallIdentifier: uint16(callID), BasicServiceInformation: bsi}, nil
}

func (d *DCallProceeding) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDCallProceeding.Raw(), 5)
	buf.WriteBits(uint64(d.CallIdentifier), 14)
	d.BasicServiceInformation.Write(buf)
}
