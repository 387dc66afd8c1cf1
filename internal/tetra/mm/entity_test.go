package mm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/mle"
	mmpdu "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/mm"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
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

func locationUpdateSdu(mcc, mnc, lai uint16) *bitbuf.BitBuffer {
	demand := &mmpdu.ULocationUpdateDemand{
		LocationUpdateType: mmpdu.LocationUpdateRoaming,
		Mcc:                mcc,
		Mnc:                mnc,
		LocationAreaIdent:  lai,
	}
	buf := bitbuf.NewAutoexpand(64)
	demand.Write(buf)
	buf.Seek(0)
	return buf
}

func TestRegisterClientOnLocationUpdateDemand(t *testing.T) {
	from := addr.Address{SsiType: addr.Issi, Ssi: 7001}
	e := New(901, 1, 10)
	mleOut := &capturingEntity{id: router.EntityMle}
	inj := &injector{
		id:  router.EntityLlc,
		msg: router.Message{Src: router.EntityMle, Dest: router.EntityMm, Payload: mle.SduInd{From: from, Sdu: locationUpdateSdu(901, 1, 10)}},
	}

	r := router.New()
	r.Register(e)
	r.Register(mleOut)
	r.Register(inj)
	r.Tick(tdma.Default())

	_, ok := e.Registry.Client(7001)
	require.True(t, ok)
	require.Len(t, mleOut.received, 1)
	req, ok := mleOut.received[0].Payload.(mle.SduReq)
	require.True(t, ok)
	req.Sdu.Seek(0)
	accept, err := mmpdu.ParseDLocationUpdateAccept(req.Sdu)
	require.NoError(t, err)
	require.Equal(t, uint16(901), accept.Mcc)
}

func TestGroupAttachRequiresPriorRegistration(t *testing.T) {
	from := addr.Address{SsiType: addr.Issi, Ssi: 7002}
	e := New(901, 1, 10)

	attach := &mmpdu.UAttachDetachGroupIdentity{Type: mmpdu.GroupIdentityAttach, Gssi: 5000}
	buf := bitbuf.NewAutoexpand(32)
	attach.Write(buf)
	buf.Seek(0)

	mleOut := &capturingEntity{id: router.EntityMle}
	inj := &injector{
		id:  router.EntityLlc,
		msg: router.Message{Src: router.EntityMle, Dest: router.EntityMm, Payload: mle.SduInd{From: from, Sdu: buf}},
	}
	r := router.New()
	r.Register(e)
	r.Register(mleOut)
	r.Register(inj)
	r.Tick(tdma.Default())

	require.Len(t, mleOut.received, 1)
	req := mleOut.received[0].Payload.(mle.SduReq)
	req.Sdu.Seek(0)
	ack, err := mmpdu.ParseDAttachDetachGroupIdentityAck(req.Sdu)
	require.NoError(t, err)
	require.False(t, ack.Accept)
}

func TestGroupAttachSucceedsAfterRegistration(t *testing.T) {
	from := addr.Address{SsiType: addr.Issi, Ssi: 7003}
	e := New(901, 1, 10)
	e.Registry.RegisterClient(from, tdma.Default())

	require.True(t, e.Registry.ClientGroupAttach(7003, 5000))
	c, _ := e.Registry.Client(7003)
	_, has := c.Groups[5000]
	require.True(t, has)
}
