package cmce

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// USetup is U-SETUP: a mobile's outgoing call request, handled by
// CircuitMgr's allocate_circuit.
type USetup struct {
	HookMethodSelection     bool
	SimplexDuplexSelection  bool
	BasicServiceInformation BasicServiceInformation
	CallPriority            uint8

	CalledPartyTypeIdentifier  *uint64
	CalledPartyAddressSsi      *uint64
	CalledPartyAddressExtension *uint64
}

func ParseUSetup(buf *bitbuf.BitBuffer) (*USetup, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeUSetup.Raw()); err != nil {
		return nil, err
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
	priority, err := buf.ReadField(4, "call_priority")
	if err != nil {
		return nil, pdu.OutOfBounds("call_priority", err)
	}

	out := &USetup{
		HookMethodSelection:     hook == 1,
		SimplexDuplexSelection:  simplex == 1,
		BasicServiceInformation: bsi,
		CallPriority:            uint8(priority),
	}

	chainOpen, err := pdu.ReadObit(buf)
	if err != nil {
		return nil, err
	}
	if chainOpen {
		if out.CalledPartyTypeIdentifier, err = pdu.ParseType2Generic(true, buf, 2, "called_party_type_identifier"); err != nil {
			return nil, err
		}
		if out.CalledPartyAddressSsi, err = pdu.ParseType2Generic(true, buf, 24, "called_party_address_ssi"); err != nil {
			return nil, err
		}
		if out.CalledPartyAddressExtension, err = pdu.ParseType2Generic(true, buf, 24, "called_party_address_extension"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (u *USetup) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeUSetup.Raw(), 5)
	if u.HookMethodSelection {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	if u.SimplexDuplexSelection {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	u.BasicServiceInformation.Write(buf)
	buf.WriteBits(uint64(u.CallPriority), 4)

	chainOpen := u.CalledPartyTypeIdentifier != nil || u.CalledPartyAddressSsi != nil || u.CalledPartyAddressExtension != nil
	if chainOpen {
		pdu.WriteObit(buf, 1)
		pdu.WriteType2Generic(true, buf, u.CalledPartyTypeIdentifier, 2)
		pdu.WriteType2Generic(true, buf, u.CalledPartyAddressSsi, 24)
		pdu.WriteType2Generic(true, buf, u.CalledPartyAddressExtension, 24)
	} else {
		pdu.WriteObit(buf, 0)
	}
}
