package umac

import (
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// MsDefrag reassembles downlink fragment sequences on the mobile side: one
// buffer per timeslot, since only the SwMI ever fragments to an MS.
type MsDefrag struct {
	Buffers [4]*DefragBuffer
}

func NewMsDefrag() *MsDefrag {
	d := &MsDefrag{}
	for i := range d.Buffers {
		d.Buffers[i] = NewDefragBuffer()
	}
	return d
}

func (d *MsDefrag) Reset() {
	for _, b := range d.Buffers {
		b.Reset()
	}
}

// AgeBuffers drops any buffer that is not Inactive (Active, or Complete
// but not yet taken) once it has gone too long without a new fragment.
func (d *MsDefrag) AgeBuffers(t tdma.Time) {
	for _, b := range d.Buffers {
		if b.State != DefragInactive && b.TLast.Diff(t) > DefragTsBeforeTimeout {
			slog.Warn("defrag buffer timed out", "t_last", b.TLast.String())
			b.Reset()
		}
	}
}

// InsertFirst seeds a fresh reassembly for the timeslot in t, discarding
// (with a warning) any buffer left over from a previous, incomplete
// sequence.
func (d *MsDefrag) InsertFirst(bitbuffer *bitbuf.BitBuffer, t tdma.Time, a addr.Address, aieInfo any) {
	ts := t.T - 1
	buf := d.Buffers[ts]
	if buf.State != DefragInactive {
		slog.Warn("defrag buffer not inactive", "ts", ts, "state", buf.State)
		buf.Reset()
	}

	buf.State = DefragActive
	buf.Addr = a
	buf.TFirst = t
	buf.TLast = t
	buf.NumFrags = 1
	buf.AieInfo = aieInfo

	buf.Buffer.CopyBits(bitbuffer, bitbuffer.GetLenRemaining())
}

func (d *MsDefrag) InsertNext(bitbuffer *bitbuf.BitBuffer, t tdma.Time) {
	ts := t.T - 1
	buf := d.Buffers[ts]
	if buf.State != DefragActive {
		slog.Warn("defrag buffer is not active", "ts", ts)
		return
	}
	if buf.Buffer.GetLen()+bitbuffer.GetLenRemaining() > DefragBufferMaxLen {
		slog.Warn("defrag buffer would exceed max len", "ts", ts)
		d.Buffers[ts] = NewDefragBuffer()
		return
	}

	buf.TLast = t
	buf.NumFrags++
	buf.Buffer.CopyBits(bitbuffer, bitbuffer.GetLenRemaining())
}

func (d *MsDefrag) InsertLast(bitbuffer *bitbuf.BitBuffer, t tdma.Time) {
	ts := t.T - 1
	buf := d.Buffers[ts]
	if buf.State != DefragActive {
		slog.Warn("defrag buffer is not active", "ts", ts)
		return
	}
	if buf.Buffer.GetLen()+bitbuffer.GetLenRemaining() > DefragBufferMaxLen {
		slog.Warn("defrag buffer would exceed max len", "ts", ts)
		d.Buffers[ts] = NewDefragBuffer()
		return
	}

	buf.State = DefragComplete
	buf.TLast = t
	buf.NumFrags++
	buf.Buffer.CopyBits(bitbuffer, bitbuffer.GetLenRemaining())
}

// GetAieInfo returns the AIE info recorded by InsertFirst for the
// timeslot's active buffer, if any.
func (d *MsDefrag) GetAieInfo(t tdma.Time) any {
	ts := t.T - 1
	buf := d.Buffers[ts]
	if buf.State != DefragActive {
		slog.Warn("defrag buffer is not active", "ts", ts)
		return nil
	}
	return buf.AieInfo
}

// TakeDefraggedBuf hands back a completed reassembly, rewinding its cursor
// to the start, and resets the slot for reuse.
func (d *MsDefrag) TakeDefraggedBuf(t tdma.Time) *DefragBuffer {
	ts := t.T - 1
	buf := d.Buffers[ts]
	if buf.State != DefragComplete {
		slog.Warn("defrag buffer is not complete", "ts", ts)
		return nil
	}

	d.Buffers[ts] = NewDefragBuffer()
	buf.Buffer.SetRawEnd(buf.Buffer.GetRawPos())
	buf.Buffer.Seek(0)
	return buf
}
