package cmce

import (
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/mle"
	cmcepdu "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/cmce"
	mlepdu "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/mle"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// Entity is the CMCE router entity wrapping a CircuitMgr. TickEnd is
// where the re-announce/expiry sweeps happen, since those are
// time-driven rather than message-driven.
type Entity struct {
	Mgr *CircuitMgr
	now tdma.Time
}

func New() *Entity {
	return &Entity{Mgr: NewCircuitMgr()}
}

func (e *Entity) EntityID() router.EntityID { return router.EntityCmce }

func (e *Entity) TickStart(q *router.Queue, t tdma.Time) { e.now = t }

// TickEnd re-announces D-SETUP for circuits overdue and reclaims expired
// ones. Both sweeps run on the slot-1 tick of each frame only.
func (e *Entity) TickEnd(q *router.Queue, t tdma.Time) {
	if t.T != 1 {
		return
	}
	for _, c := range e.Mgr.DueForReannounce(t) {
		e.sendSetup(q, c)
		e.Mgr.MarkAnnounced(c.CallIdentifier, t)
	}
	for _, id := range e.Mgr.CloseExpiredCircuits(t) {
		slog.Info("cmce: circuit expired unanswered", "call_id", id)
	}
}

func (e *Entity) RxPrim(q *router.Queue, msg router.Message) {
	ind, ok := msg.Payload.(mle.SduInd)
	if !ok {
		slog.Warn("cmce: unrecognised message payload dropped", "src", msg.Src.String())
		return
	}
	e.handleSdu(q, ind)
}

func (e *Entity) handleSdu(q *router.Queue, ind mle.SduInd) {
	pduType, err := ind.Sdu.PeekField(5, "pdu_type")
	if err != nil {
		slog.Warn("cmce: SDU too short for PDU type", "err", err)
		return
	}

	switch cmcepdu.PduTypeUl(pduType) {
	case cmcepdu.PduTypeUSetup:
		e.handleUSetup(q, ind)
	case cmcepdu.PduTypeUAlert:
		// Alerting is a notification only; nothing to do at the switch.
	case cmcepdu.PduTypeUDisconnect:
		e.handleUDisconnect(q, ind)
	case cmcepdu.PduTypeURelease:
		e.handleURelease(q, ind)
	case cmcepdu.PduTypeUCallRestore:
		e.handleUCallRestore(q, ind)
	default:
		e.sendFunctionNotSupported(q, ind.From, uint8(pduType))
	}
}

// handleUSetup allocates a circuit for the call and replies with
// D-SETUP, or rejects with D-RELEASE if no compatible timeslot is free.
func (e *Entity) handleUSetup(q *router.Queue, ind mle.SduInd) {
	setup, err := cmcepdu.ParseUSetup(ind.Sdu)
	if err != nil {
		slog.Warn("cmce: malformed U-SETUP dropped", "err", err)
		return
	}

	called := ind.From
	if setup.CalledPartyAddressSsi != nil {
		called = addr.Address{SsiType: addr.Issi, Ssi: uint32(*setup.CalledPartyAddressSsi)}
	}

	c, err := e.Mgr.AllocateCircuit(ind.From, called, DirectionBoth, e.now)
	if err != nil {
		slog.Warn("cmce: circuit allocation failed", "err", err, "from", ind.From.String())
		e.sendRelease(q, ind.From, cmcepdu.DisconnectCauseNoResources)
		return
	}
	e.sendSetup(q, c)
}

func (e *Entity) sendRelease(q *router.Queue, to addr.Address, cause cmcepdu.DisconnectCause) {
	reply := &cmcepdu.DReleaseRelease{DisconnectCause: cause}
	out := bitbuf.NewAutoexpand(16)
	reply.Write(out)
	out.Seek(0)
	e.sendDown(q, to, out)
}

func (e *Entity) sendSetup(q *router.Queue, c *Circuit) {
	d := &cmcepdu.DSetup{
		CallIdentifier:         c.CallIdentifier,
		CallTimeOut:            cmcepdu.CallTimeoutT30s,
		SimplexDuplexSelection: true,
		BasicServiceInformation: cmcepdu.BasicServiceInformation{
			CircuitModeType:   cmcepdu.CircuitModeTchS,
			CommunicationType: cmcepdu.CommunicationTypeP2P,
		},
		TransmissionGrant: cmcepdu.TransmissionGrantGranted,
		CallPriority:      0,
	}
	out := bitbuf.NewAutoexpand(64)
	if err := d.Write(out); err != nil {
		slog.Warn("cmce: failed to encode D-SETUP", "err", err)
		return
	}
	out.Seek(0)
	e.sendDown(q, c.Called, out)
}

func (e *Entity) handleUDisconnect(q *router.Queue, ind mle.SduInd) {
	_, err := cmcepdu.ParseUDisconnect(ind.Sdu)
	if err != nil {
		slog.Warn("cmce: malformed U-DISCONNECT dropped", "err", err)
		return
	}
	e.Mgr.CloseCircuitByCaller(ind.From)
	e.sendRelease(q, ind.From, cmcepdu.DisconnectCauseUserRequest)
}

func (e *Entity) handleURelease(q *router.Queue, ind mle.SduInd) {
	rel, err := cmcepdu.ParseURelease(ind.Sdu)
	if err != nil {
		slog.Warn("cmce: malformed U-RELEASE dropped", "err", err)
		return
	}
	_ = rel
	e.Mgr.CloseCircuitByCaller(ind.From)
}

func (e *Entity) handleUCallRestore(q *router.Queue, ind mle.SduInd) {
	req, err := cmcepdu.ParseUCallRestore(ind.Sdu)
	if err != nil {
		slog.Warn("cmce: malformed U-CALL-RESTORE dropped", "err", err)
		return
	}
	_, ok := e.Mgr.Circuit(req.CallIdentifier)
	reply := &cmcepdu.DCallRestore{CallIdentifier: req.CallIdentifier, Restored: ok}
	if ok {
		reply.TransmissionGrant = cmcepdu.TransmissionGrantGranted
	}
	out := bitbuf.NewAutoexpand(32)
	reply.Write(out)
	out.Seek(0)
	e.sendDown(q, ind.From, out)
}

func (e *Entity) sendFunctionNotSupported(q *router.Queue, to addr.Address, rejectedType uint8) {
	reply := &cmcepdu.DFunctionNotSupported{Protocol1: rejectedType & 0x1F}
	out := bitbuf.NewAutoexpand(16)
	reply.Write(out)
	out.Seek(0)
	e.sendDown(q, to, out)
}

func (e *Entity) sendDown(q *router.Queue, to addr.Address, sdu *bitbuf.BitBuffer) {
	q.Push(router.Message{
		Src:     router.EntityCmce,
		Dest:    router.EntityMle,
		Payload: mle.SduReq{To: to, Pd: mlepdu.PdCmce, Sdu: sdu},
	}, router.Normal)
}
