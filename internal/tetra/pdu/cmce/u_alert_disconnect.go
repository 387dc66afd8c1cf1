package cmce

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// UAlert is U-ALERT: the called mobile signalling it is ringing.
type UAlert struct{}

func ParseUAlert(buf *bitbuf.BitBuffer) (*UAlert, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeUAlert.Raw()); err != nil {
		return nil, err
	}
	return &UAlert{}, nil
}

func (u *UAlert) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeUAlert.Raw(), 5)
}

// UDisconnect is U-DISCONNECT: a mobile hanging up its end of the circuit.
type UDisconnect struct {
	DisconnectCause DisconnectCause
}

func ParseUDisconnect(buf *bitbuf.BitBuffer) (*UDisconnect, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeUDisconnect.Raw()); err != nil {
		return nil, err
	}
	cause, err := buf.ReadField(5, "disconnect_cause")
	if err != nil {
		return nil, pdu.OutOfBounds("disconnect_cause", err)
	}
	return &UDisconnect{DisconnectCause: DisconnectCause(cause)}, nil
}

func (u *UDisconnect) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeUDisconnect.Raw(), 5)
	buf.WriteBits(uint64(u.DisconnectCause), 5)
}

// URelease is U-RELEASE: the mobile's final acknowledgement ending the
// disconnect handshake, prompting CircuitMgr's close_circuit.
type URelease struct {
	DisconnectCause DisconnectCause
}

func ParseURelease(buf *bitbuf.BitBuffer) (*URelease, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeURelease.Raw()); err != nil {
		return nil, err
	}
	cause, err := buf.ReadField(5, "disconnect_cause")
	if err != nil {
		return nil, pdu.OutOfBounds("disconnect_cause", err)
	}
	return &URelease{DisconnectCause: DisconnectCause(cause)}, nil
}

func (u *URelease) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeURelease.Raw(), 5)
	buf.WriteBits(uint64(u.DisconnectCause), 5)
}
