// Package router implements the tick-driven message router that
// sequences every layer of the stack to the TDMA slot.
package router

import (
	"container/list"
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// EntityID identifies one of the fixed set of protocol-layer entities the
// router owns.
type EntityID int

const (
	EntityPhy EntityID = iota
	EntityLmac
	EntityUmac
	EntityLlc
	EntityMle
	EntityMm
	EntityCmce
	EntitySndcp
)

func (e EntityID) String() string {
	switch e {
	case EntityPhy:
		return "Phy"
	case EntityLmac:
		return "Lmac"
	case EntityUmac:
		return "Umac"
	case EntityLlc:
		return "Llc"
	case EntityMle:
		return "Mle"
	case EntityMm:
		return "Mm"
	case EntityCmce:
		return "Cmce"
	case EntitySndcp:
		return "Sndcp"
	default:
		return "Unknown"
	}
}

// Priority selects where a message lands in the router's FIFO queue.
type Priority int

const (
	Normal Priority = iota
	Immediate
)

// Message is one envelope carried through the router between entities.
type Message struct {
	Src     EntityID
	Dest    EntityID
	Payload any
}

// Queue is the per-tick handle entities use to emit messages; it is
// passed into every hook rather than stored, so entities never hold a
// back-pointer into the router.
type Queue struct {
	r *Router
}

// Push enqueues msg with the given priority: Normal goes to the back of
// the queue, Immediate jumps to the front.
func (q *Queue) Push(msg Message, prio Priority) {
	q.r.push(msg, prio)
}

// Entity is the narrow behavioural interface every protocol layer
// implements. RxPrim must not block.
type Entity interface {
	EntityID() EntityID
	TickStart(q *Queue, t tdma.Time)
	RxPrim(q *Queue, msg Message)
	TickEnd(q *Queue, t tdma.Time)
}

// Router owns the map from entity id to entity instance and the FIFO
// message queue with front-insert priority.
type Router struct {
	entities map[EntityID]Entity
	queue    *list.List // of Message
}

// New creates an empty router; register entities with Register before
// calling Tick.
func New() *Router {
	return &Router{
		entities: make(map[EntityID]Entity),
		queue:    list.New(),
	}
}

// Register adds an entity to the router, keyed by its own EntityID().
func (r *Router) Register(e Entity) {
	r.entities[e.EntityID()] = e
}

func (r *Router) push(msg Message, prio Priority) {
	if prio == Immediate {
		r.queue.PushFront(msg)
	} else {
		r.queue.PushBack(msg)
	}
}

// drain delivers queued messages to their destination entity until the
// queue is empty. Unknown destinations are warned and dropped.
func (r *Router) drain(q *Queue) {
	for r.queue.Len() > 0 {
		front := r.queue.Front()
		r.queue.Remove(front)
		msg := front.Value.(Message)

		dest, ok := r.entities[msg.Dest]
		if !ok {
			slog.Warn("router: message to unknown entity dropped", "dest", msg.Dest.String(), "src", msg.Src.String())
			continue
		}
		dest.RxPrim(q, msg)
	}
}

// Tick processes one TDMA slot at time t and returns the timepoint of the
// next slot:
//
//  1. TickStart on every entity;
//  2. drain the queue to completion;
//  3. ordered TickEnd on LLC, then UMAC, draining after each, then all
//     remaining entities;
//  4. t = t.AddTimeslots(1).
func (r *Router) Tick(t tdma.Time) tdma.Time {
	q := &Queue{r: r}

	for _, e := range r.entities {
		e.TickStart(q, t)
	}
	r.drain(q)

	r.tickEndOrdered(q, t, EntityLlc)
	r.tickEndOrdered(q, t, EntityUmac)

	for id, e := range r.entities {
		if id == EntityLlc || id == EntityUmac {
			continue
		}
		e.TickEnd(q, t)
		r.drain(q)
	}

	return t.AddTimeslots(1)
}

func (r *Router) tickEndOrdered(q *Queue, t tdma.Time, id EntityID) {
	e, ok := r.entities[id]
	if !ok {
		return
	}
	e.TickEnd(q, t)
	r.drain(q)
}
