package umac

import (
	"container/list"
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	pduumac "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/umac"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/stackcfg"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
)

// SlotPayloadBits is the type-1 payload budget this scheduler plans
// fragmentation against: the SCH/F logical channel capacity after
// channel coding overhead is stripped away (lmac.ChanSchF).
const SlotPayloadBits = 124

// TmSduReq is a downlink TM-SDU submission, handed down from LLC to be
// scheduled onto the next free slot.
type TmSduReq struct {
	To  addr.Address
	Sdu *bitbuf.BitBuffer
}

// TmSduInd is a reassembled uplink TM-SDU delivered up to LLC.
type TmSduInd struct {
	From addr.Address
	Sdu  *bitbuf.BitBuffer
}

// LmacTxReq is a channel-coded-ready type-1 bitstring handed down to
// LMAC for transmission on the current downlink slot.
type LmacTxReq struct {
	Bits *bitbuf.BitBuffer
}

// LmacRxInd is a decoded type-1 bitstring LMAC hands up from the current
// uplink slot.
type LmacRxInd struct {
	From addr.Address
	Bits *bitbuf.BitBuffer
}

type pendingJob struct {
	to  addr.Address
	sdu *bitbuf.BitBuffer
}

// Scheduler is the BS-side UMAC router entity: it multiplexes queued
// downlink TM-SDUs onto slots via BsFragger, reassembles uplink
// transmissions via BsDefrag, and broadcasts MAC-SYSINFO on BNCH
// (frame 18, slot 1).
type Scheduler struct {
	cfg     stackcfg.StackConfig
	sysinfo pduumac.MacSysinfo

	queue   *list.List // of pendingJob
	active  *BsFragger

	defrag *BsDefrag
	now    tdma.Time
}

func NewScheduler(cfg stackcfg.StackConfig, sysinfo pduumac.MacSysinfo) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		sysinfo: sysinfo,
		queue:   list.New(),
		defrag:  NewBsDefrag(),
	}
}

func (s *Scheduler) EntityID() router.EntityID { return router.EntityUmac }

func (s *Scheduler) TickStart(q *router.Queue, t tdma.Time) { s.now = t }

func (s *Scheduler) RxPrim(q *router.Queue, msg router.Message) {
	switch m := msg.Payload.(type) {
	case TmSduReq:
		s.queue.PushBack(pendingJob{to: m.To, sdu: m.Sdu})
	case LmacRxInd:
		s.handleUplink(q, m)
	default:
		slog.Warn("umac: unrecognised message payload dropped", "src", msg.Src.String())
	}
}

func (s *Scheduler) handleUplink(q *router.Queue, m LmacRxInd) {
	t, err := m.Bits.PeekField(2, "mac_pdu_type")
	if err != nil {
		slog.Warn("umac: uplink burst too short for PDU type", "err", err)
		return
	}

	switch pduumac.MacPduType(t) {
	case pduumac.MacPduResourceOrFrag:
		access, err := pduumac.ParseMacAccess(m.Bits)
		if err != nil {
			slog.Warn("umac: malformed MAC-ACCESS dropped", "err", err)
			return
		}
		payload := bitbuf.NewAutoexpand(m.Bits.GetLenRemaining())
		payload.CopyBits(m.Bits, m.Bits.GetLenRemaining())
		payload.Seek(0)
		s.defrag.InsertFirst(payload, s.now, m.From)
		_ = access
	case pduumac.MacPduSupplementary:
		frag, err := pduumac.ParseMacFragUl(m.Bits)
		if err != nil {
			slog.Warn("umac: malformed MAC-FRAG dropped", "err", err)
			return
		}
		_ = frag
		payload := bitbuf.NewAutoexpand(m.Bits.GetLenRemaining())
		payload.CopyBits(m.Bits, m.Bits.GetLenRemaining())
		payload.Seek(0)
		s.defrag.InsertNext(payload, s.now)
	case pduumac.MacPduEndOrNotify:
		end, err := pduumac.ParseMacEndUl(m.Bits)
		if err != nil {
			slog.Warn("umac: malformed MAC-END dropped", "err", err)
			return
		}
		_ = end
		payload := bitbuf.NewAutoexpand(m.Bits.GetLenRemaining())
		payload.CopyBits(m.Bits, m.Bits.GetLenRemaining())
		payload.Seek(0)
		s.defrag.InsertLast(payload, s.now)

		done := s.defrag.TakeDefraggedBuf()
		if done == nil {
			return
		}
		q.Push(router.Message{Src: router.EntityUmac, Dest: router.EntityLlc, Payload: TmSduInd{From: done.Addr, Sdu: done.Buffer}}, router.Normal)
	default:
		slog.Warn("umac: unexpected uplink PDU type on common channel", "type", t)
	}
}

// TickEnd is where the slot scheduling happens: BNCH on frame 18 slot 1,
// otherwise the active BsFragger job (if any) gets the next chunk.
func (s *Scheduler) TickEnd(q *router.Queue, t tdma.Time) {
	s.defrag.AgeAndExpire(t)

	if t.F == tdma.ControlFrame && t.T == 1 {
		s.broadcastSysinfo(q)
		return
	}

	if s.active == nil {
		if s.queue.Len() == 0 {
			return
		}
		front := s.queue.Front()
		s.queue.Remove(front)
		job := front.Value.(pendingJob)
		to := job.to
		s.active = NewBsFragger(&pduumac.MacResource{Addr: &to}, job.sdu)
	}

	block := bitbuf.NewAutoexpand(SlotPayloadBits)
	done := s.active.GetNextChunk(block)
	block.Seek(0)
	q.Push(router.Message{Src: router.EntityUmac, Dest: router.EntityLmac, Payload: LmacTxReq{Bits: block}}, router.Normal)
	if done {
		s.active = nil
	}
}

func (s *Scheduler) broadcastSysinfo(q *router.Queue) {
	out := bitbuf.NewAutoexpand(SlotPayloadBits)
	s.sysinfo.Write(out, false)
	out.Seek(0)
	q.Push(router.Message{Src: router.EntityUmac, Dest: router.EntityLmac, Payload: LmacTxReq{Bits: out}}, router.Normal)
}
