// Package mle implements the Mobile Link Entity: the protocol-discriminator
// demultiplexer that sits between LLC and the upper service entities.
// It owns no call or registration state of its own — it only routes.
package mle

import (
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	mlepdu "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/mle"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// SduInd carries one upper-layer SDU up from MLE to MM/CMCE/SNDCP, after
// the protocol-discriminator header has been stripped.
type SduInd struct {
	From    addr.Address
	Sdu     *bitbuf.BitBuffer
}

// SduReq carries one upper-layer SDU down from MM/CMCE/SNDCP through MLE
// to LLC, tagged with the protocol discriminator MLE must prefix.
type SduReq struct {
	To  addr.Address
	Pd  mlepdu.ProtocolDiscriminator
	Sdu *bitbuf.BitBuffer
}

// pdDest maps a protocol discriminator to the router entity that owns it.
func pdDest(pd mlepdu.ProtocolDiscriminator) (router.EntityID, bool) {
	switch pd {
	case mlepdu.PdMm:
		return router.EntityMm, true
	case mlepdu.PdCmce:
		return router.EntityCmce, true
	case mlepdu.PdSndcp:
		return router.EntitySndcp, true
	default:
		return 0, false
	}
}

// Entity is the MLE router entity.
type Entity struct{}

func New() *Entity { return &Entity{} }

func (e *Entity) EntityID() router.EntityID { return router.EntityMle }

func (e *Entity) TickStart(q *router.Queue, t tdma.Time) {}

func (e *Entity) TickEnd(q *router.Queue, t tdma.Time) {}

// RxPrim demultiplexes messages in both directions: an LlcSduInd from LLC
// is unwrapped by protocol discriminator and forwarded up; an mle.SduReq
// from an upper entity is wrapped and forwarded down to LLC.
func (e *Entity) RxPrim(q *router.Queue, msg router.Message) {
	switch m := msg.Payload.(type) {
	case LlcSduInd:
		e.handleUplink(q, m)
	case SduReq:
		e.handleDownlink(q, m)
	default:
		slog.Warn("mle: unrecognised message payload dropped", "src", msg.Src.String())
	}
}

// LlcSduInd is the uplink SDU delivery LLC hands to MLE, still carrying
// the 3-bit protocol-discriminator header.
type LlcSduInd struct {
	From addr.Address
	Sdu  *bitbuf.BitBuffer
}

func (e *Entity) handleUplink(q *router.Queue, m LlcSduInd) {
	pdVal, err := m.Sdu.ReadField(3, "protocol_discriminator")
	if err != nil {
		slog.Warn("mle: SDU too short for protocol discriminator", "err", err)
		return
	}
	pd := mlepdu.ProtocolDiscriminator(pdVal)
	dest, ok := pdDest(pd)
	if !ok {
		slog.Warn("mle: unroutable protocol discriminator", "pd", pd.String())
		return
	}
	q.Push(router.Message{Src: router.EntityMle, Dest: dest, Payload: SduInd{From: m.From, Sdu: m.Sdu}}, router.Normal)
}

// LlcSduReq is the downlink SDU submission MLE hands to LLC, with the
// protocol-discriminator header already prefixed.
type LlcSduReq struct {
	To  addr.Address
	Sdu *bitbuf.BitBuffer
}

func (e *Entity) handleDownlink(q *router.Queue, m SduReq) {
	out := bitbuf.NewAutoexpand(3 + m.Sdu.GetLenRemaining())
	out.WriteBits(uint64(m.Pd), 3)
	out.CopyBits(m.Sdu, m.Sdu.GetLenRemaining())
	out.Seek(0)
	q.Push(router.Message{Src: router.EntityMle, Dest: router.EntityLlc, Payload: LlcSduReq{To: m.To, Sdu: out}}, router.Normal)
}
