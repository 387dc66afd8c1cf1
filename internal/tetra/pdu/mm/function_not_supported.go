package mm

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// DFunctionNotSupported is D-FUNCTION-NOT-SUPPORTED for the MM service:
// the registry's catch-all reply to an MM PDU it does not implement.
type DFunctionNotSupported struct {
	PduType uint8 // 4-bit: the MM PDU type this rejects
}

func ParseDFunctionNotSupported(buf *bitbuf.BitBuffer) (*DFunctionNotSupported, error) {
	t, err := buf.ReadField(4, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDFunctionNotSupported.Raw()); err != nil {
		return nil, err
	}
	rejected, err := buf.ReadField(4, "rejected_pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("rejected_pdu_type", err)
	}
	return &DFunctionNotSupported{PduType: uint8(rejected)}, nil
}

func (d *DFunctionNotSupported) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDFunctionNotSupported.Raw(), 4)
	buf.WriteBits(uint64(d.PduType), 4)
}
