package cmce

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// DSetup is D-SETUP: the switch's call-offer message, the first PDU a
// mobile sees for an incoming call. CircuitMgr emits one on every
// allocate_circuit and re-sends it periodically until the mobile responds.
type DSetup struct {
	CallIdentifier               uint16
	CallTimeOut                  CallTimeout
	HookMethodSelection          bool
	SimplexDuplexSelection       bool
	BasicServiceInformation      BasicServiceInformation
	TransmissionGrant            TransmissionGrant
	TransmissionRequestPermission bool
	CallPriority                  uint8

	CallingPartyTypeIdentifier  *uint64
	CallingPartyAddressSsi      *uint64
	CallingPartyAddressExtension *uint64
	ExternalSubscriberNumber    *pdu.Type3FieldGeneric
	Facility                    *pdu.Type3FieldGeneric
	Proprietary                 *pdu.Type3FieldGeneric
}

func ParseDSetup(buf *bitbuf.BitBuffer) (*DSetup, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDSetup.Raw()); err != nil {
		return nil, err
	}

	callID, err := buf.ReadField(14, "call_identifier")
	if err != nil {
		return nil, pdu.OutOfBounds("call_identifier", err)
	}
	timeout, err := buf.ReadField(4, "call_time_out")
	if err != nil {
		return nil, pdu.OutOfBounds("call_time_out", err)
	}
	hook, err := buf.ReadField(1, "hook_method_selection")
	if err != nil {
		return nil, pdu.OutOfBounds("hook_method_selection", err)
	}
	simplex, err := buf.ReadField(1, "simplex_duplex_selection")
	if err != nil {
		return nil, pdu.OutOfBounds("simplex_duplex_selection", err)
	}
	bsi, err := ParseBasicServiceInformation(buf)
	if err != nil {
		return nil, err
	}
	grant, err := buf.ReadField(2, "transmission_grant")
	if err != nil {
		return nil, pdu.OutOfBounds("transmission_grant", err)
	}
	permission, err := buf.ReadField(1, "transmission_request_permission")
	if err != nil {
		return nil, pdu.OutOfBounds("transmission_request_permission", err)
	}
	priority, err := buf.ReadField(4, "call_priority")
	if err != nil {
		return nil, pdu.OutOfBounds("call_priority", err)
	}

	out := &DSetup{
		CallIdentifier:                uint16(callID),
		CallTimeOut:                   CallTimeout(timeout),
		HookMethodSelection:           hook == 1,
		SimplexDuplexSelection:        simplex == 1,
		BasicServiceInformation:       bsi,
		TransmissionGrant:             TransmissionGrant(grant),
		TransmissionRequestPermission: permission == 1,
		CallPriority:                  uint8(priority),
	}

	chainOpen, err := pdu.ReadObit(buf)
	if err != nil {
		return nil, err
	}
	if chainOpen {
		if out.CallingPartyTypeIdentifier, err = pdu.ParseType2Generic(true, buf, 2, "calling_party_type_identifier"); err != nil {
			return nil, err
		}
		if out.CallingPartyAddressSsi, err = pdu.ParseType2Generic(true, buf, 24, "calling_party_address_ssi"); err != nil {
			return nil, err
		}
		if out.CallingPartyAddressExtension, err = pdu.ParseType2Generic(true, buf, 24, "calling_party_address_extension"); err != nil {
			return nil, err
		}
		if out.ExternalSubscriberNumber, err = pdu.ParseType3Generic(true, buf, uint8(Type3ElemExtSubscriberNum)); err != nil {
			return nil, err
		}
		if out.Facility, err = pdu.ParseType3Generic(true, buf, uint8(Type3ElemFacility)); err != nil {
			return nil, err
		}
		if out.Proprietary, err = pdu.ParseType3Generic(true, buf, uint8(Type3ElemProprietary)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (d *DSetup) Write(buf *bitbuf.BitBuffer) error {
	buf.WriteBits(PduTypeDSetup.Raw(), 5)
	buf.WriteBits(uint64(d.CallIdentifier), 14)
	buf.WriteBits(uint64(d.CallTimeOut), 4)
	if d.HookMethodSelection {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	if d.SimplexDuplexSelection {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	d.BasicServiceInformation.Write(buf)
	buf.WriteBits(uint64(d.TransmissionGrant), 2)
	if d.TransmissionRequestPermission {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(d.CallPriority), 4)

	chainOpen := d.CallingPartyTypeIdentifier != nil || d.CallingPartyAddressSsi != nil ||
		d.CallingPartyAddressExtension != nil || d.ExternalSubscriberNumber != nil ||
		d.Facility != nil || d.Proprietary != nil
	if chainOpen {
		pdu.WriteObit(buf, 1)
		pdu.WriteType2Generic(true, buf, d.CallingPartyTypeIdentifier, 2)
		pdu.WriteType2Generic(true, buf, d.CallingPartyAddressSsi, 24)
		pdu.WriteType2Generic(true, buf, d.CallingPartyAddressExtension, 24)
		if err := pdu.WriteType3Generic(true, buf, d.ExternalSubscriberNumber, uint8(Type3ElemExtSubscriberNum)); err != nil {
			return err
		}
		if err := pdu.WriteType3Generic(true, buf, d.Facility, uint8(Type3ElemFacility)); err != nil {
			return err
		}
		if err := pdu.WriteType3Generic(true, buf, d.Proprietary, uint8(Type3ElemProprietary)); err != nil {
			return err
		}
	} else {
		pdu.WriteObit(buf, 0)
	}
	return nil
}
