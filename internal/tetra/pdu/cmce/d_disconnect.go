package cmce

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// DDisconnect is D-DISCONNECT: the switch tearing down a call circuit.
// The CMCE entity does not send it; closing a circuit there is answered
// with D-RELEASE or with nothing.
type DDisconnect struct {
	DisconnectCause DisconnectCause
}

func ParseDDisconnect(buf *bitbuf.BitBuffer) (*DDisconnect, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDDisconnect.Raw()); err != nil {
		return nil, err
	}
	cause, err := buf.ReadField(5, "disconnect_cause")
	if err != nil {
		return nil, pdu.OutOfBounds("disconnect_cause", err)
	}
	return &DDisconnect{DisconnectCause: DisconnectCause(cause)}, nil
}

func (d *DDisconnect) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDDisconnect.Raw(), 5)
	buf.WriteBits(uint64(d.DisconnectCause), 5)
}

// DReleaseRelease is D-RELEASE: the switch's final release of a call. The
// CMCE entity sends it in answer to U-DISCONNECT and to refuse a U-SETUP
// when no circuit is free; a U-RELEASE gets no reply.
type DReleaseRelease struct {
	DisconnectCause DisconnectCause
}

func ParseDReleaseRelease(buf *bitbuf.BitBuffer) (*DReleaseRelease, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDReleaseRelease.Raw()); err != nil {
		return nil, err
	}
	cause, err := buf.ReadField(5, "disconnect_cause")
	if err != nil {
		return nil, pdu.OutOfBounds("disconnect_cause", err)
	}
	return &DReleaseRelease{DisconnectCause: DisconnectCause(cause)}, nil
}

func (d *DReleaseRelease) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDReleaseRelease.Raw(), 5)
	buf.WriteBits(uint64(d.DisconnectCause), 5)
}
