package mle

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// PduTypeDNwrkBroadcastRemove is D-NWRK-BROADCAST-REMOVE's 4-bit MLE PDU
// type discriminator.
const PduTypeDNwrkBroadcastRemove uint64 = 0x9

// DNwrkBroadcastRemove tells a mobile to drop a neighbour cell from its
// broadcast set (clause 18.5.19). Parse/encode only: dynamic cell
// reselection is out of scope, so this PDU is not wired into any
// reselection behaviour — it exists here only so the MLE PDU library is
// complete.
type DNwrkBroadcastRemove struct {
	NeighbourCellNumber uint8 // 5-bit
}

func ParseDNwrkBroadcastRemove(buf *bitbuf.BitBuffer) (*DNwrkBroadcastRemove, error) {
	t, err := buf.ReadField(4, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDNwrkBroadcastRemove); err != nil {
		return nil, err
	}
	n, err := buf.ReadField(5, "neighbour_cell_number")
	if err != nil {
		return nil, pdu.OutOfBounds("neighbour_cell_number", err)
	}
	return &DNwrkBroadcastRemove{NeighbourCellNumber: uint8(n)}, nil
}

func (d *DNwrkBroadcastRemove) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDNwrkBroadcastRemove, 4)
	buf.WriteBits(uint64(d.NeighbourCellNumber), 5)
}
