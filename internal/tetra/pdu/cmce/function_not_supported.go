package cmce

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// DFunctionNotSupported is D-FUNCTION-NOT-SUPPORTED: the switch's catch-all
// rejection for a CMCE PDU it parsed but whose protocol/function it
// does not implement.
type DFunctionNotSupported struct {
	Protocol1 uint8 // 5-bit: the CMCE PDU type this rejects
	Protocol2 uint8 // 5-bit: additional identifier, 0 if unused
}

func ParseDFunctionNotSupported(buf *bitbuf.BitBuffer) (*DFunctionNotSupported, error) {
	t, err := buf.ReadField(5, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDFunctionNotSupported.Raw()); err != nil {
		return nil, err
	}
	p1, err := buf.ReadField(5, "protocol1")
	if err != nil {
		return nil, pdu.OutOfBounds("protocol1", err)
	}
	p2, err := buf.ReadField(5, "protocol2")
	if err != nil {
		return nil, pdu.OutOfBounds("protocol2", err)
	}
	return &DFunctionNotSupported{Protocol1: uint8(p1), Protocol2: uint8(p2)}, nil
}

func (d *DFunctionNotSupported) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDFunctionNotSupported.Raw(), 5)
	buf.WriteBits(uint64(d.Protocol1), 5)
	buf.WriteBits(uint64(d.Protocol2), 5)
}
