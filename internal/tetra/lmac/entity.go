package lmac

import (
	"log/slog"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	umacpdu "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/umac"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/phy"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/stackcfg"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/umac"
)

// slotPayloadBits is the type-1 payload width LMAC channel-codes each
// tick: matches umac.SlotPayloadBits, the SCH/F budget after coding
// overhead is accounted for.
const slotPayloadBits = umac.SlotPayloadBits

// commonUplinkSentinel tags an uplink reception whose transmitter LMAC
// cannot itself identify: the physical/MAC framing of a random- or
// reserved-access burst carries no subscriber address, so this stack
// relies on the upper-layer PDU the burst eventually carries (e.g.
// ULocationUpdateDemand's own embedded SSI) to supply genuine identity.
var commonUplinkSentinel = addr.Address{SsiType: addr.Ssi, Ssi: 0}

// Entity is the LMAC router entity. It channel-codes UMAC's per-slot
// type-1 bitstrings, shapes the result into a full normal continuous
// downlink burst, and hands that to the Device; on the uplink it
// disassembles whatever burst the Device reports back, decodes it, and
// drops anything that fails its CRC.
//
// Every downlink slot is currently announced on AACH as common control
// (AaHeaderCommon): nothing above this layer yet assigns a timeslot to
// a traffic circuit and hands LMAC the resulting usage marker, so a
// traffic-carrying ACCESS-ASSIGN can't honestly be built yet. SDB
// framing for frame 18's BNCH broadcast is left to the Device backend.
type Entity struct {
	cfg    stackcfg.StackConfig
	device phy.Device

	pending *bitbuf.BitBuffer
}

func New(cfg stackcfg.StackConfig, device phy.Device) *Entity {
	return &Entity{cfg: cfg, device: device}
}

func (e *Entity) EntityID() router.EntityID { return router.EntityLmac }

func (e *Entity) TickStart(q *router.Queue, t tdma.Time) {}

func (e *Entity) RxPrim(q *router.Queue, msg router.Message) {
	m, ok := msg.Payload.(umac.LmacTxReq)
	if !ok {
		slog.Warn("lmac: unrecognised message payload dropped", "src", msg.Src.String())
		return
	}
	e.pending = m.Bits
}

// TickEnd runs the slot exchange: encode whatever UMAC queued this tick
// (or an idle-filled slot if nothing was queued), assemble it into a
// full normal continuous downlink burst, hand that to the Device
// alongside the uplink capture window, then disassemble, decode, and
// forward anything the Device reports back.
func (e *Entity) TickEnd(q *router.Queue, t tdma.Time) {
	typeOne := e.typeOneBits()
	e.pending = nil

	seed := e.cfg.ScramblingCode()
	coded := Encode(ChanSchF, typeOne, seed)
	burst := e.assembleBurst(coded, seed)

	rx, err := e.device.RxTxTimeslot([][]byte{burst})
	if err != nil {
		slog.Warn("lmac: device exchange failed", "err", err)
		return
	}

	for _, slot := range rx {
		if slot.TrainType == phy.TrainNotFound {
			continue
		}
		received := slot.Bits
		if len(received) == phy.TimeslotType4Bits {
			blk1, _, _, blk2 := phy.DisassembleNdb(received)
			received = append(append([]byte{}, blk1...), blk2...)[:len(coded)]
		}
		payload, ok := Decode(ChanSchF, slotPayloadBits, toSoft(received), seed)
		if !ok {
			slog.Warn("lmac: uplink burst failed CRC, dropped")
			continue
		}
		bits := bitbuf.NewAutoexpand(len(payload))
		for _, b := range payload {
			bits.WriteBits(uint64(b), 1)
		}
		bits.Seek(0)
		q.Push(router.Message{Src: router.EntityLmac, Dest: router.EntityUmac, Payload: umac.LmacRxInd{
			From: commonUplinkSentinel,
			Bits: bits,
		}}, router.Normal)
	}
}

// assembleBurst fits coded (the rate-matched, interleaved, scrambled
// SCH/F payload) into a full normal continuous downlink burst: coded
// splits across BLK1/BLK2, zero-padded to fill them out, Q is left at
// zero for lack of any cross-burst phase-continuity tracking, and the
// BBK carries this slot's ACCESS-ASSIGN marker Reed-Muller coded and
// scrambled the same way the control channel itself is.
func (e *Entity) assembleBurst(coded []byte, seed uint32) []byte {
	blk1 := phy.PadBlock(coded, phy.BlkBits)
	var blk2src []byte
	if len(coded) > phy.BlkBits {
		blk2src = coded[phy.BlkBits:]
	}
	blk2 := phy.PadBlock(blk2src, phy.BlkBits)

	aa := umacpdu.AccessAssign{Header: umacpdu.AaHeaderCommon}
	aaBuf := bitbuf.New(14)
	aa.Write(aaBuf)
	aaBuf.Seek(0)
	aaBits := make([]byte, 14)
	for i := range aaBits {
		v, _ := aaBuf.ReadField(1, "bit")
		aaBits[i] = byte(v)
	}
	bbk := EncodeAach(aaBits, seed)

	q := make([]byte, 2*phy.QBits)
	return phy.AssembleNdb(q, blk1, bbk, phy.TsNormal, blk2)
}

func (e *Entity) typeOneBits() []byte {
	out := make([]byte, slotPayloadBits)
	if e.pending == nil {
		return out
	}
	n := e.pending.GetLenRemaining()
	if n > slotPayloadBits {
		n = slotPayloadBits
	}
	for i := 0; i < n; i++ {
		v, err := e.pending.ReadField(1, "bit")
		if err != nil {
			break
		}
		out[i] = byte(v)
	}
	return out
}

func toSoft(hard []byte) []int8 {
	soft := make([]int8, len(hard))
	for i, b := range hard {
		if b == 1 {
			soft[i] = 1
		} else {
			soft[i] = -1
		}
	}
	return soft
}
