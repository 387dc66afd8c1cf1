package llc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/mle"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/umac"
)

type injector struct {
	id    router.EntityID
	msg   router.Message
	fired bool
}

func (i *injector) EntityID() router.EntityID { return i.id }
func (i *injector) TickStart(q *router.Queue, t tdma.Time) {
	if !i.fired {
		q.Push(i.msg, router.Normal)
		i.fired = true
	}
}
func (i *injector) TickEnd(q *router.Queue, t tdma.Time)       {}
func (i *injector) RxPrim(q *router.Queue, msg router.Message) {}

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

func TestUplinkStripsBasicLinkFramingAndForwardsToMle(t *testing.T) {
	from := addr.Address{SsiType: addr.Issi, Ssi: 7}

	sdu := bitbuf.NewAutoexpand(8)
	sdu.WriteBits(0b11001010, 8)
	sdu.Seek(0)

	frame := &BasicLinkFrame{Type: PduBlUdata, Sdu: sdu}
	buf := bitbuf.NewAutoexpand(10)
	frame.Write(buf)
	buf.Seek(0)

	e := New()
	mleOut := &capturingEntity{id: router.EntityMle}
	inj := &injector{
		id:  router.EntityUmac,
		msg: router.Message{Src: router.EntityUmac, Dest: router.EntityLlc, Payload: umac.TmSduInd{From: from, Sdu: buf}},
	}

	r := router.New()
	r.Register(e)
	r.Register(mleOut)
	r.Register(inj)
	r.Tick(tdma.Default())

	require.Len(t, mleOut.received, 1)
	ind := mleOut.received[0].Payload.(mle.LlcSduInd)
	require.True(t, ind.From.Equal(from))

	got, err := ind.Sdu.PeekField(8, "sdu")
	require.NoError(t, err)
	require.Equal(t, uint64(0b11001010), got)
}

func TestDownlinkAppliesBasicLinkFramingAndForwardsToUmac(t *testing.T) {
	to := addr.Address{SsiType: addr.Issi, Ssi: 3}

	sdu := bitbuf.NewAutoexpand(8)
	sdu.WriteBits(0b01010101, 8)
	sdu.Seek(0)

	e := New()
	umacOut := &capturingEntity{id: router.EntityUmac}
	inj := &injector{
		id:  router.EntityMle,
		msg: router.Message{Src: router.EntityMle, Dest: router.EntityLlc, Payload: mle.LlcSduReq{To: to, Sdu: sdu}},
	}

	r := router.New()
	r.Register(e)
	r.Register(umacOut)
	r.Register(inj)
	r.Tick(tdma.Default())

	require.Len(t, umacOut.received, 1)
	req := umacOut.received[0].Payload.(umac.TmSduReq)
	require.True(t, req.To.Equal(to))

	got, err := ParseBasicLinkFrame(req.Sdu)
	require.NoError(t, err)
	require.Equal(t, PduBlUdata, got.Type)
	v, err := got.Sdu.PeekField(8, "sdu")
	require.NoError(t, err)
	require.Equal(t, uint64(0b01010101), v)
}
