package lmac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/phy"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/stackcfg"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/umac"
)

type capturingEntity struct {
	id       router.EntityID
	received []router.Message
}

func (c *capturingEntity) EntityID() router.EntityID              { return c.id }
func (c *capturingEntity) TickStart(q *router.Queue, t tdma.Time) {}
func (c *capturingEntity) TickEnd(q *router.Queue, t tdma.Time)   {}
func (c *capturingEntity) RxPrim(q *router.Queue, msg router.Message) {
	c.received = append(c.received, msg)
}

type loopbackDevice struct {
	lastTx [][]byte
}

func (d *loopbackDevice) RxTxTimeslot(txSlots [][]byte) ([]phy.RxSlot, error) {
	d.lastTx = txSlots
	return []phy.RxSlot{{TrainType: phy.TrainNormal, Bits: txSlots[0]}}, nil
}

func TestTickEndEncodesPendingSlotAndDecodesLoopback(t *testing.T) {
	cfg := stackcfg.StackConfig{}
	dev := &loopbackDevice{}
	e := New(cfg, dev)
	umacOut := &capturingEntity{id: router.EntityUmac}

	r := router.New()
	r.Register(e)
	r.Register(umacOut)

	r.Tick(tdma.Default())

	require.NotNil(t, dev.lastTx)
	require.NotEmpty(t, dev.lastTx[0])
}

func TestTickEndShapesAFullBurstNotRawCodedPayload(t *testing.T) {
	cfg := stackcfg.StackConfig{}
	dev := &loopbackDevice{}
	e := New(cfg, dev)
	umacOut := &capturingEntity{id: router.EntityUmac}

	r := router.New()
	r.Register(e)
	r.Register(umacOut)

	r.Tick(tdma.Default())

	require.Len(t, dev.lastTx[0], phy.TimeslotType4Bits)
}

func TestIdleSlotStillDrivesDeviceExchange(t *testing.T) {
	cfg := stackcfg.StackConfig{}
	dev := &loopbackDevice{}
	e := New(cfg, dev)
	umacOut := &capturingEntity{id: router.EntityUmac}

	r := router.New()
	r.Register(e)
	r.Register(umacOut)

	r.Tick(tdma.Default())
	require.Len(t, umacOut.received, 1)

	got := umacOut.received[0].Payload.(umac.LmacRxInd)
	require.Equal(t, slotPayloadBits, got.Bits.GetLenRemaining())
}
