// Package mm implements Mobility Management: the client registry that
// tracks which mobiles are registered with the cell and which talkgroups
// each one has attached to.
package mm

import (
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	mlepdu "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/mle"
	mmpdu "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/mm"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/mle"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// Client is one registered mobile's state in the registry.
type Client struct {
	Address     addr.Address
	Groups      map[uint32]struct{}
	LastUpdate  tdma.Time
}

// Registry tracks registered clients keyed by ISSI. It is the BS-side
// authority for registration and group attachment: register_client,
// remove_client, client_group_attach/detach, client_detach_all_groups.
type Registry struct {
	clients map[uint32]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[uint32]*Client)}
}

func (r *Registry) RegisterClient(a addr.Address, now tdma.Time) *Client {
	c, ok := r.clients[a.Ssi]
	if !ok {
		c = &Client{Address: a, Groups: make(map[uint32]struct{})}
		r.clients[a.Ssi] = c
	}
	c.LastUpdate = now
	return c
}

func (r *Registry) RemoveClient(ssi uint32) {
	delete(r.clients, ssi)
}

func (r *Registry) Client(ssi uint32) (*Client, bool) {
	c, ok := r.clients[ssi]
	return c, ok
}

func (r *Registry) ClientGroupAttach(ssi uint32, gssi uint32) bool {
	c, ok := r.clients[ssi]
	if !ok {
		return false
	}
	c.Groups[gssi] = struct{}{}
	return true
}

func (r *Registry) ClientGroupDetach(ssi uint32, gssi uint32) bool {
	c, ok := r.clients[ssi]
	if !ok {
		return false
	}
	delete(c.Groups, gssi)
	return true
}

func (r *Registry) ClientDetachAllGroups(ssi uint32) bool {
	c, ok := r.clients[ssi]
	if !ok {
		return false
	}
	c.Groups = make(map[uint32]struct{})
	return true
}

func (r *Registry) Len() int { return len(r.clients) }

// Entity is the MM router entity wrapping a Registry.
type Entity struct {
	Registry *Registry
	Mcc      uint16
	Mnc      uint16
	Lai      uint16
	now      tdma.Time
}

func New(mcc, mnc, lai uint16) *Entity {
	return &Entity{Registry: NewRegistry(), Mcc: mcc, Mnc: mnc, Lai: lai}
}

func (e *Entity) EntityID() router.EntityID { return router.EntityMm }

func (e *Entity) TickStart(q *router.Queue, t tdma.Time) { e.now = t }
func (e *Entity) TickEnd(q *router.Queue, t tdma.Time)   {}

func (e *Entity) RxPrim(q *router.Queue, msg router.Message) {
	ind, ok := msg.Payload.(mle.SduInd)
	if !ok {
		slog.Warn("mm: unrecognised message payload dropped", "src", msg.Src.String())
		return
	}
	e.handleSdu(q, ind)
}

func (e *Entity) handleSdu(q *router.Queue, ind mle.SduInd) {
	buf := ind.Sdu

	pduType, err := buf.PeekField(4, "pdu_type")
	if err != nil {
		slog.Warn("mm: SDU too short for PDU type", "err", err)
		return
	}

	switch mmpdu.PduTypeUl(pduType) {
	case mmpdu.PduTypeULocationUpdateDemand:
		e.handleLocationUpdateDemand(q, ind)
	case mmpdu.PduTypeUAttachDetachGroupIdentity:
		e.handleAttachDetachGroupIdentity(q, ind)
	default:
		e.sendFunctionNotSupported(q, ind.From, uint8(pduType))
	}
}

func (e *Entity) handleLocationUpdateDemand(q *router.Queue, ind mle.SduInd) {
	_, err := mmpdu.ParseULocationUpdateDemand(ind.Sdu)
	if err != nil {
		slog.Warn("mm: malformed U-LOCATION-UPDATE-DEMAND dropped", "err", err)
		return
	}
	e.Registry.RegisterClient(ind.From, e.now)

	ssi := uint64(ind.From.Ssi)
	reply := &mmpdu.DLocationUpdateAccept{
		LocationUpdateAcceptType: mmpdu.LocationUpdateAcceptRoamingLocation,
		Mcc:                      e.Mcc,
		Mnc:                      e.Mnc,
		LocationAreaIdent:        e.Lai,
		Ssi:                      &ssi,
	}
	out := bitbuf.NewAutoexpand(64)
	reply.Write(out)
	out.Seek(0)
	e.sendDown(q, ind.From, out)
}

func (e *Entity) handleAttachDetachGroupIdentity(q *router.Queue, ind mle.SduInd) {
	req, err := mmpdu.ParseUAttachDetachGroupIdentity(ind.Sdu)
	if err != nil {
		slog.Warn("mm: malformed U-ATTACH-DETACH-GROUP-IDENTITY dropped", "err", err)
		return
	}

	var accepted bool
	switch req.Type {
	case mmpdu.GroupIdentityAttach:
		accepted = e.Registry.ClientGroupAttach(ind.From.Ssi, req.Gssi)
	case mmpdu.GroupIdentityDetach:
		accepted = e.Registry.ClientGroupDetach(ind.From.Ssi, req.Gssi)
	case mmpdu.GroupIdentityDetachAll:
		accepted = e.Registry.ClientDetachAllGroups(ind.From.Ssi)
	}

	reply := &mmpdu.DAttachDetachGroupIdentityAck{Type: req.Type, Gssi: req.Gssi, Accept: accepted}
	out := bitbuf.NewAutoexpand(32)
	reply.Write(out)
	out.Seek(0)
	e.sendDown(q, ind.From, out)
}

func (e *Entity) sendFunctionNotSupported(q *router.Queue, to addr.Address, rejectedType uint8) {
	reply := &mmpdu.DFunctionNotSupported{PduType: rejectedType & 0xF}
	out := bitbuf.NewAutoexpand(8)
	reply.Write(out)
	out.Seek(0)
	e.sendDown(q, to, out)
}

func (e *Entity) sendDown(q *router.Queue, to addr.Address, sdu *bitbuf.BitBuffer) {
	q.Push(router.Message{
		Src:  router.EntityMm,
		Dest: router.EntityMle,
		Payload: mle.SduReq{To: to, Pd: mlepdu.PdMm, Sdu: sdu},
	}, router.Normal)
}
