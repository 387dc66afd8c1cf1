// Package cmce implements the Circuit-Mode Control Entity: CircuitMgr,
// the BS-side call state machine that allocates call identifiers, tracks
// in-progress circuits, and re-announces D-SETUP until a mobile responds
// or the circuit expires.
package cmce

import (
	"errors"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// reannounceInterval is how often CircuitMgr re-sends D-SETUP for a
// circuit still awaiting a response, in timeslots.
const reannounceInterval = 4 * 18 * 4 // ~4 multiframes

// expiryTimeout is how long a circuit may sit unanswered before
// CloseExpiredCircuits reclaims it. At 14.167ms/slot, 10s is ~706
// timeslots.
const expiryTimeout = 706

// firstTrafficTimeslot and lastTrafficTimeslot bound the timeslots
// CircuitMgr may hand out for traffic; timeslot 1 carries the common
// control channel and is never allocated here.
const (
	firstTrafficTimeslot = 2
	lastTrafficTimeslot  = 4
)

// Direction is which side(s) of a circuit carry traffic.
type Direction int

const (
	DirectionDl Direction = iota
	DirectionUl
	DirectionBoth
)

// Allocation errors, returned by AllocateCircuit and the timeslot queue
// operations.
var (
	ErrNoCircuitFree       = errors.New("cmce: no circuit free")
	ErrCircuitAlreadyInUse = errors.New("cmce: circuit already in use")
	ErrCircuitNotActive    = errors.New("cmce: circuit not active")
)

// CircuitState is the lifecycle stage of a Circuit.
type CircuitState int

const (
	CircuitSetup CircuitState = iota
	CircuitConnected
	CircuitReleasing
)

// Circuit is one in-progress or established call, bound to a timeslot.
type Circuit struct {
	CallIdentifier uint16
	UsageNumber    uint8
	Caller         addr.Address
	Called         addr.Address
	Direction      Direction
	Timeslot       uint8
	State          CircuitState
	CreatedAt      tdma.Time
	LastAnnounce   tdma.Time
}

// CircuitMgr owns the call-identifier/usage-number counters and the
// per-timeslot circuit tables. dl holds any Dl-only or Dl+Ul circuit per
// timeslot; ulOnly holds a Ul-only circuit with no downlink recipient on
// this cell. Both are indexed directly by timeslot number, so index 0
// and 1 are never populated.
type CircuitMgr struct {
	dl     [lastTrafficTimeslot + 1]*Circuit
	ulOnly [lastTrafficTimeslot + 1]*Circuit

	byCallID map[uint16]*Circuit

	nextCallID   uint16
	nextUsageNum uint8
}

func NewCircuitMgr() *CircuitMgr {
	return &CircuitMgr{byCallID: make(map[uint16]*Circuit), nextCallID: 1, nextUsageNum: 1}
}

// isActive reports whether a Dl and/or Ul circuit occupies ts.
func (m *CircuitMgr) isActive(ts uint8) (dlActive, ulActive bool) {
	if c := m.dl[ts]; c != nil {
		if c.Direction == DirectionBoth {
			return true, true
		}
		return true, m.ulOnly[ts] != nil
	}
	return false, m.ulOnly[ts] != nil
}

// freeTimeslot scans the traffic timeslots for one compatible with dir:
// a Dl request needs no active Dl circuit on that slot; a Ul request
// needs either nothing active, or a Dl-only circuit it can ride
// alongside (a Dl+Ul circuit already claims the uplink); Both needs
// both sides free.
func (m *CircuitMgr) freeTimeslot(dir Direction) (uint8, error) {
	for ts := uint8(firstTrafficTimeslot); ts <= lastTrafficTimeslot; ts++ {
		dlActive, ulActive := m.isActive(ts)
		switch {
		case dir == DirectionDl && !dlActive:
			return ts, nil
		case dir == DirectionUl && !dlActive && !ulActive:
			return ts, nil
		case dir == DirectionUl && dlActive && !ulActive:
			if m.dl[ts].Direction != DirectionBoth {
				return ts, nil
			}
		case dir == DirectionBoth && !dlActive && !ulActive:
			return ts, nil
		}
	}
	return 0, ErrNoCircuitFree
}

// AllocateCircuit finds a timeslot compatible with dir and registers a
// new circuit there between caller and called. Returns ErrNoCircuitFree
// once every traffic timeslot is incompatible with dir, and
// ErrCircuitAlreadyInUse if the chosen slot is occupied by the time the
// circuit is opened.
func (m *CircuitMgr) AllocateCircuit(caller, called addr.Address, dir Direction, now tdma.Time) (*Circuit, error) {
	ts, err := m.freeTimeslot(dir)
	if err != nil {
		return nil, err
	}

	c := &Circuit{
		CallIdentifier: m.nextCallID,
		UsageNumber:    m.nextUsageNum,
		Caller:         caller,
		Called:         called,
		Direction:      dir,
		Timeslot:       ts,
		State:          CircuitSetup,
		CreatedAt:      now,
		LastAnnounce:   now,
	}
	if err := m.openCircuit(c); err != nil {
		return nil, err
	}

	m.nextCallID = (m.nextCallID + 1) & 0x3FFF
	if m.nextCallID == 0 {
		m.nextCallID = 1
	}
	m.nextUsageNum = (m.nextUsageNum + 1) & 0x3F
	if m.nextUsageNum == 0 {
		m.nextUsageNum = 1
	}

	m.byCallID[c.CallIdentifier] = c
	return c, nil
}

// openCircuit registers c in the per-timeslot tables, re-checking that
// the slot is still free for c.Direction.
func (m *CircuitMgr) openCircuit(c *Circuit) error {
	dlActive, ulActive := m.isActive(c.Timeslot)
	if (c.Direction == DirectionDl || c.Direction == DirectionBoth) && dlActive {
		return ErrCircuitAlreadyInUse
	}
	if (c.Direction == DirectionUl || c.Direction == DirectionBoth) && ulActive {
		return ErrCircuitAlreadyInUse
	}

	switch c.Direction {
	case DirectionDl, DirectionBoth:
		m.dl[c.Timeslot] = c
	case DirectionUl:
		m.ulOnly[c.Timeslot] = c
	}
	return nil
}

// removeCircuit clears c from whichever timeslot table holds it and
// from the call-identifier index.
func (m *CircuitMgr) removeCircuit(c *Circuit) {
	switch c.Direction {
	case DirectionDl, DirectionBoth:
		m.dl[c.Timeslot] = nil
	case DirectionUl:
		m.ulOnly[c.Timeslot] = nil
	}
	delete(m.byCallID, c.CallIdentifier)
}

func (m *CircuitMgr) Circuit(callID uint16) (*Circuit, bool) {
	c, ok := m.byCallID[callID]
	return c, ok
}

// CloseCircuit removes the circuit for callID, if any.
func (m *CircuitMgr) CloseCircuit(callID uint16) {
	if c, ok := m.byCallID[callID]; ok {
		m.removeCircuit(c)
	}
}

// CloseCircuitByCaller removes the circuit whose Caller matches from, if
// any. U-DISCONNECT/U-RELEASE carry no call identifier, only the
// originator's address.
func (m *CircuitMgr) CloseCircuitByCaller(from addr.Address) {
	for _, c := range m.byCallID {
		if c.Caller.Equal(from) {
			m.removeCircuit(c)
			return
		}
	}
}

func (m *CircuitMgr) Connect(callID uint16) {
	if c, ok := m.byCallID[callID]; ok {
		c.State = CircuitConnected
	}
}

// DueForReannounce lists circuits still in CircuitSetup whose last D-SETUP
// announcement is at least reannounceInterval timeslots old.
func (m *CircuitMgr) DueForReannounce(now tdma.Time) []*Circuit {
	var due []*Circuit
	for _, c := range m.byCallID {
		if c.State != CircuitSetup {
			continue
		}
		if c.LastAnnounce.Age(now) >= reannounceInterval {
			due = append(due, c)
		}
	}
	return due
}

func (m *CircuitMgr) MarkAnnounced(callID uint16, now tdma.Time) {
	if c, ok := m.byCallID[callID]; ok {
		c.LastAnnounce = now
	}
}

// CloseExpiredCircuits removes every circuit still in CircuitSetup whose
// age has reached expiryTimeout timeslots, returning the call identifiers
// removed.
func (m *CircuitMgr) CloseExpiredCircuits(now tdma.Time) []uint16 {
	var expired []*Circuit
	for _, c := range m.byCallID {
		if c.State == CircuitSetup && c.CreatedAt.Age(now) >= expiryTimeout {
			expired = append(expired, c)
		}
	}
	ids := make([]uint16, 0, len(expired))
	for _, c := range expired {
		ids = append(ids, c.CallIdentifier)
		m.removeCircuit(c)
	}
	return ids
}

func (m *CircuitMgr) Len() int { return len(m.byCallID) }
