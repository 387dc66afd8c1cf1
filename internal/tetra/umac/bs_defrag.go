package umac

import (
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// BsDefrag reassembles uplink fragment sequences on the base-station
// side: a single buffer, since the simplified access scheme in this
// stack admits only one mobile fragmenting on the common uplink at a
// time (no slotted multi-MS MAC-ACCESS multiplexing).
type BsDefrag struct {
	buf *DefragBuffer
}

func NewBsDefrag() *BsDefrag {
	return &BsDefrag{buf: NewDefragBuffer()}
}

func (d *BsDefrag) InsertFirst(bitbuffer *bitbuf.BitBuffer, t tdma.Time, a addr.Address) {
	if d.buf.State != DefragInactive {
		slog.Warn("bs_defrag: buffer not inactive, discarding previous sequence")
		d.buf.Reset()
	}
	d.buf.State = DefragActive
	d.buf.Addr = a
	d.buf.TFirst = t
	d.buf.TLast = t
	d.buf.NumFrags = 1
	d.buf.Buffer.CopyBits(bitbuffer, bitbuffer.GetLenRemaining())
}

func (d *BsDefrag) InsertNext(bitbuffer *bitbuf.BitBuffer, t tdma.Time) {
	if d.buf.State != DefragActive {
		slog.Warn("bs_defrag: buffer is not active")
		return
	}
	if d.buf.Buffer.GetLen()+bitbuffer.GetLenRemaining() > DefragBufferMaxLen {
		slog.Warn("bs_defrag: buffer would exceed max len")
		d.buf.Reset()
		return
	}
	d.buf.TLast = t
	d.buf.NumFrags++
	d.buf.Buffer.CopyBits(bitbuffer, bitbuffer.GetLenRemaining())
}

func (d *BsDefrag) InsertLast(bitbuffer *bitbuf.BitBuffer, t tdma.Time) {
	if d.buf.State != DefragActive {
		slog.Warn("bs_defrag: buffer is not active")
		return
	}
	d.buf.State = DefragComplete
	d.buf.TLast = t
	d.buf.NumFrags++
	d.buf.Buffer.CopyBits(bitbuffer, bitbuffer.GetLenRemaining())
}

// AgeAndExpire drops the buffer if it has sat Active too long without a
// new fragment, mirroring MsDefrag.AgeBuffers.
func (d *BsDefrag) AgeAndExpire(t tdma.Time) {
	if d.buf.State == DefragActive && d.buf.TLast.Diff(t) > DefragTsBeforeTimeout {
		slog.Warn("bs_defrag: buffer timed out", "t_last", d.buf.TLast.String())
		d.buf.Reset()
	}
}

// TakeDefraggedBuf hands back the completed reassembly and resets the
// buffer for reuse, or returns nil if not complete.
func (d *BsDefrag) TakeDefraggedBuf() *DefragBuffer {
	if d.buf.State != DefragComplete {
		return nil
	}
	out := d.buf
	d.buf = NewDefragBuffer()
	out.Buffer.SetRawEnd(out.Buffer.GetRawPos())
	out.Buffer.Seek(0)
	return out
}
