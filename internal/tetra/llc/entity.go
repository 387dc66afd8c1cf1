package llc

import (
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/mle"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/umac"
)

// Entity is the LLC router entity: it sits between UMAC's TM-SDU
// primitives and MLE, applying basic-link framing in each direction.
// Advanced-link associations are not established by this stack, so
// every frame built here is basic-link.
type Entity struct{}

func New() *Entity { return &Entity{} }

func (e *Entity) EntityID() router.EntityID { return router.EntityLlc }

func (e *Entity) TickStart(q *router.Queue, t tdma.Time) {}

func (e *Entity) TickEnd(q *router.Queue, t tdma.Time) {}

func (e *Entity) RxPrim(q *router.Queue, msg router.Message) {
	switch m := msg.Payload.(type) {
	case umac.TmSduInd:
		e.handleUplink(q, m)
	case mle.LlcSduReq:
		e.handleDownlink(q, m)
	default:
		slog.Warn("llc: unrecognised message payload dropped", "src", msg.Src.String())
	}
}

func (e *Entity) handleUplink(q *router.Queue, m umac.TmSduInd) {
	f, err := ParseBasicLinkFrame(m.Sdu)
	if err != nil {
		slog.Warn("llc: malformed basic-link frame dropped", "err", err)
		return
	}
	q.Push(router.Message{Src: router.EntityLlc, Dest: router.EntityMle, Payload: mle.LlcSduInd{From: m.From, Sdu: f.Sdu}}, router.Normal)
}

func (e *Entity) handleDownlink(q *router.Queue, m mle.LlcSduReq) {
	f := &BasicLinkFrame{Type: PduBlUdata, Sdu: m.Sdu}
	out := bitbuf.NewAutoexpand(2 + m.Sdu.GetLenRemaining())
	f.Write(out)
	out.Seek(0)
	q.Push(router.Message{Src: router.EntityLlc, Dest: router.EntityUmac, Payload: umac.TmSduReq{To: m.To, Sdu: out}}, router.Normal)
}
