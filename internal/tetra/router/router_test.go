package router

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

type recordingEntity struct {
	id      EntityID
	events  *[]string
	onRx    func(q *Queue, msg Message)
	onStart func(q *Queue, t tdma.Time)
	onEnd   func(q *Queue, t tdma.Time)
}

func (e *recordingEntity) EntityID() EntityID { return e.id }
func (e *recordingEntity) TickStart(q *Queue, t tdma.Time) {
	*e.events = append(*e.events, e.id.String()+":start")
	if e.onStart != nil {
		e.onStart(q, t)
	}
}
func (e *recordingEntity) RxPrim(q *Queue, msg Message) {
	*e.events = append(*e.events, e.id.String()+":rx")
	if e.onRx != nil {
		e.onRx(q, msg)
	}
}
func (e *recordingEntity) TickEnd(q *Queue, t tdma.Time) {
	*e.events = append(*e.events, e.id.String()+":end")
	if e.onEnd != nil {
		e.onEnd(q, t)
	}
}

func TestTickOrdersLlcThenUmacThenRest(t *testing.T) {
	var events []string
	r := New()
	r.Register(&recordingEntity{id: EntityMm, events: &events})
	r.Register(&recordingEntity{id: EntityUmac, events: &events})
	r.Register(&recordingEntity{id: EntityLlc, events: &events})

	next := r.Tick(tdma.Default())
	require.Equal(t, tdma.Default().AddTimeslots(1), next)

	// LLC ends before UMAC, both before MM.
	llcEnd := indexOf(events, "Llc:end")
	umacEnd := indexOf(events, "Umac:end")
	mmEnd := indexOf(events, "Mm:end")
	require.Less(t, llcEnd, umacEnd)
	require.Less(t, umacEnd, mmEnd)
}

func TestImmediatePriorityJumpsQueue(t *testing.T) {
	var events []string
	r := New()
	r.Register(&recordingEntity{id: EntityUmac, events: &events})
	r.Register(&recordingEntity{
		id:     EntityLmac,
		events: &events,
		onStart: func(q *Queue, t tdma.Time) {
			q.Push(Message{Src: EntityLmac, Dest: EntityUmac, Payload: "normal-1"}, Normal)
			q.Push(Message{Src: EntityLmac, Dest: EntityUmac, Payload: "normal-2"}, Normal)
			q.Push(Message{Src: EntityLmac, Dest: EntityUmac, Payload: "immediate"}, Immediate)
		},
	})

	var delivered []string
	umac := r.entities[EntityUmac].(*recordingEntity)
	umac.onRx = func(q *Queue, msg Message) {
		delivered = append(delivered, msg.Payload.(string))
	}

	r.Tick(tdma.Default())
	require.Equal(t, []string{"immediate", "normal-1", "normal-2"}, delivered)
}

func TestUnknownDestinationIsDropped(t *testing.T) {
	var events []string
	r := New()
	r.Register(&recordingEntity{
		id:     EntityLmac,
		events: &events,
		onStart: func(q *Queue, t tdma.Time) {
			q.Push(Message{Src: EntityLmac, Dest: EntityMm, Payload: "nobody-home"}, Normal)
		},
	})

	require.NotPanics(t, func() { r.Tick(tdma.Default()) })
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
