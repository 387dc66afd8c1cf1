package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// DefragBufferMaxLen bounds a single reassembly buffer; a fragment
// sequence that would exceed it is dropped rather than grown without
// bound.
const DefragBufferMaxLen = 4096

// DefragTsBeforeTimeout is how many timeslots an Active buffer may sit
// without a new fragment before it is considered abandoned.
const DefragTsBeforeTimeout = 10 * 4

type DefragBufferState int

const (
	DefragInactive DefragBufferState = iota
	DefragActive
	DefragComplete
)

// DefragBuffer accumulates the fragments of one in-flight MAC SDU.
type DefragBuffer struct {
	State    DefragBufferState
	Addr     addr.Address
	TFirst   tdma.Time
	TLast    tdma.Time
	NumFrags int
	Buffer   *bitbuf.BitBuffer
	AieInfo  any
}

func NewDefragBuffer() *DefragBuffer {
	return &DefragBuffer{Buffer: bitbuf.NewAutoexpand(DefragBufferMaxLen)}
}

func (d *DefragBuffer) Reset() {
	*d = *NewDefragBuffer()
}
