// Package llc implements Logical Link Control: basic-link and
// advanced-link PDU framing, acknowledgement handling, and the frame
// check sequence.
package llc

import (
	"hash/crc32"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

// PduType distinguishes LLC's own small PDU set (clause 23): basic-link
// exchanges carry an upper-layer SDU directly with no framing beyond a
// type discriminator; advanced-link exchanges add sequence numbers and
// FCS for numbered acknowledged delivery.
type PduType uint8

const (
	PduBlAdata     PduType = iota // basic link, acknowledged
	PduBlData                     // basic link, unacknowledged
	PduBlUdata                    // basic link, unnumbered
	PduAlData                     // advanced link, data
	PduAlAck                      // advanced link, acknowledgement
	PduAlReconnect
	PduAlDisc
)

// LinkId identifies one advanced-link association with a peer; basic-link
// traffic is always LinkId 0.
type LinkId uint8

// BasicLinkFrame wraps an upper-layer SDU with LLC's minimal basic-link
// framing: a 2-bit type discriminator followed by the SDU bits verbatim.
// No sequencing, no FCS — basic link trusts the radio link layer's own
// CRC and simply drops anything that doesn't parse.
type BasicLinkFrame struct {
	Type PduType
	Sdu  *bitbuf.BitBuffer
}

func ParseBasicLinkFrame(buf *bitbuf.BitBuffer) (*BasicLinkFrame, error) {
	t, err := buf.ReadField(2, "llc_pdu_type")
	if err != nil {
		return nil, err
	}
	sduLen := buf.GetLenRemaining()
	sdu := bitbuf.NewAutoexpand(sduLen)
	for i := 0; i < sduLen; i++ {
		bit, err := buf.ReadField(1, "sdu")
		if err != nil {
			return nil, err
		}
		sdu.WriteBits(bit, 1)
	}
	sdu.Seek(0)
	return &BasicLinkFrame{Type: PduType(t), Sdu: sdu}, nil
}

func (f *BasicLinkFrame) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(uint64(f.Type), 2)
	buf.CopyBits(f.Sdu, f.Sdu.GetLenRemaining())
}

// AdvancedLinkFrame carries a numbered, FCS-protected SDU over an
// established advanced link (clause 23.3): link id, N(S)/N(R) sequence
// numbers, the SDU, and a trailing FCS.
type AdvancedLinkFrame struct {
	Type   PduType
	Link   LinkId
	Ns     uint8 // 2-bit send sequence number
	Nr     uint8 // 2-bit receive sequence number (piggybacked ack)
	Sdu    *bitbuf.BitBuffer
	Fcs    uint32
}

func ParseAdvancedLinkFrame(buf *bitbuf.BitBuffer) (*AdvancedLinkFrame, error) {
	t, err := buf.ReadField(2, "llc_pdu_type")
	if err != nil {
		return nil, err
	}
	link, err := buf.ReadField(4, "link_id")
	if err != nil {
		return nil, err
	}
	ns, err := buf.ReadField(2, "ns")
	if err != nil {
		return nil, err
	}
	nr, err := buf.ReadField(2, "nr")
	if err != nil {
		return nil, err
	}

	sduLen := buf.GetLenRemaining() - 32
	if sduLen < 0 {
		return nil, bitbuf.ErrOutOfBounds
	}
	sdu := bitbuf.NewAutoexpand(sduLen)
	sduBits := make([]byte, sduLen)
	for i := 0; i < sduLen; i++ {
		bit, err := buf.ReadField(1, "sdu")
		if err != nil {
			return nil, err
		}
		sdu.WriteBits(bit, 1)
		sduBits[i] = byte(bit)
	}
	sdu.Seek(0)

	fcs, err := buf.ReadField(32, "fcs")
	if err != nil {
		return nil, err
	}

	return &AdvancedLinkFrame{
		Type: PduType(t), Link: LinkId(link), Ns: uint8(ns), Nr: uint8(nr),
		Sdu: sdu, Fcs: uint32(fcs),
	}, nil
}

func (f *AdvancedLinkFrame) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(uint64(f.Type), 2)
	buf.WriteBits(uint64(f.Link), 4)
	buf.WriteBits(uint64(f.Ns), 2)
	buf.WriteBits(uint64(f.Nr), 2)

	sduLen := f.Sdu.GetLenRemaining()
	sduBits := make([]byte, sduLen)
	start := f.Sdu.GetRawPos()
	buf.CopyBits(f.Sdu, sduLen)
	f.Sdu.Seek(start)
	for i := range sduBits {
		v, _ := f.Sdu.ReadField(1, "sdu")
		sduBits[i] = byte(v)
	}
	f.Sdu.Seek(start)

	fcs := Fcs32(sduBits)
	buf.WriteBits(uint64(fcs), 32)
}

// Fcs32 computes LLC's 32-bit frame check sequence over bits: standard
// CRC-32 (IEEE 802.3 polynomial), via the standard library's hash/crc32.
func Fcs32(bits []byte) uint32 {
	packed := packBits(bits)
	return crc32.ChecksumIEEE(packed)
}

func packBits(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
