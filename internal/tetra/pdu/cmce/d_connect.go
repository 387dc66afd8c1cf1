package cmce

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// DConnect is D-CONNECT: the switch confirming a call has been answered,
// carrying the final basic service information and transmission grant for
// the established circuit.
type DConnect struct {
	CallIdentifier          uint16
	CallTimeOut             CallTimeout
	CallTimeOutSetupPhase   bool
	HookMethodSelection     bool
	SimplexDuplexSelection  bool
	TransmissionGrant       TransmissionGrant
	TransmissionRequestPermission bool
	CallPriority            uint8
	BasicServiceInformation BasicServiceInformation
}

func ParseDConnect(buf *bitbuf.BitBuffer) (*DConnect, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDConnect.Raw()); err != nil {
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
	setupPhase, err := buf.ReadField(1, "call_time_out_setup_phase")
	if err != nil {
		return nil, pdu.OutOfBounds("call_time_out_setup_phase", err)
	}
	hook, err := buf.ReadField(1, "hook_method_selection")
	if err != nil {
		return nil, pdu.OutOfBounds("hook_method_selection", err)
	}
	simplex, err := buf.ReadField(1, "simplex_duplex_selection")
	if err != nil {
		return nil, pdu.OutOfBounds("simplex_duplex_selection", err)
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
	bsi, err := ParseBasicServiceInformation(buf)
	if err != nil {
		return nil, err
	}
	return &DConnect{
		CallIdentifier:                uint16(callID),
		CallTimeOut:                   CallTimeout(timeout),
		CallTimeOutSetupPhase:         setupPhase == 1,
		HookMethodSelection:           hook == 1,
		SimplexDuplexSelection:        simplex == 1,
		TransmissionGrant:             TransmissionGrant(grant),
		TransmissionRequestPermission: permission == 1,
		CallPriority:                  uint8(priority),
		BasicServiceInformation:       bsi,
	}, nil
}

func (d *DConnect) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDConnect.Raw(), 5)
	buf.WriteBits(uint64(d.CallIdentifier), 14)
	buf.WriteBits(uint64(d.CallTimeOut), 4)
	if d.CallTimeOutSetupPhase {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
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
	buf.WriteBits(uint64(d.TransmissionGrant), 2)
	if d.TransmissionRequestPermission {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(d.CallPriority), 4)
	d.BasicServiceInformation.Write(buf)
}
