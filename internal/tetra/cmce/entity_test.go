package cmce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/mle"
	cmcepdu "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/cmce"
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

func TestUSetupAllocatesCircuitAndSendsDSetup(t *testing.T) {
	caller := addr.Address{SsiType: addr.Issi, Ssi: 11}
	called := uint64(22)
	setup := &cmcepdu.USetup{
		BasicServiceInformation: cmcepdu.BasicServiceInformation{CircuitModeType: cmcepdu.CircuitModeTchS, CommunicationType: cmcepdu.CommunicationTypeP2P},
		CalledPartyAddressSsi:   &called,
	}
	buf := bitbuf.NewAutoexpand(64)
	setup.Write(buf)
	buf.Seek(0)

	e := New()
	mleOut := &capturingEntity{id: router.EntityMle}
	inj := &injector{
		id:  router.EntityLlc,
		msg: router.Message{Src: router.EntityMle, Dest: router.EntityCmce, Payload: mle.SduInd{From: caller, Sdu: buf}},
	}

	r := router.New()
	r.Register(e)
	r.Register(mleOut)
	r.Register(inj)
	r.Tick(tdma.Default())

	require.Equal(t, 1, e.Mgr.Len())
	require.Len(t, mleOut.received, 1)

	req := mleOut.received[0].Payload.(mle.SduReq)
	req.Sdu.Seek(0)
	d, err := cmcepdu.ParseDSetup(req.Sdu)
	require.NoError(t, err)
	require.Equal(t, cmcepdu.TransmissionGrantGranted, d.TransmissionGrant)
}

func TestUSetupRejectsWithReleaseWhenNoCircuitFree(t *testing.T) {
	e := New()
	caller := addr.Address{SsiType: addr.Issi, Ssi: 1}
	called := addr.Address{SsiType: addr.Issi, Ssi: 2}
	now := tdma.Default()
	for i := 0; i < 3; i++ {
		_, err := e.Mgr.AllocateCircuit(caller, called, DirectionBoth, now)
		require.NoError(t, err)
	}

	fourthCaller := addr.Address{SsiType: addr.Issi, Ssi: 99}
	fourthCalledSsi := uint64(2)
	setup := &cmcepdu.USetup{
		BasicServiceInformation: cmcepdu.BasicServiceInformation{CircuitModeType: cmcepdu.CircuitModeTchS, CommunicationType: cmcepdu.CommunicationTypeP2P},
		CalledPartyAddressSsi:   &fourthCalledSsi,
	}
	buf := bitbuf.NewAutoexpand(64)
	setup.Write(buf)
	buf.Seek(0)

	mleOut := &capturingEntity{id: router.EntityMle}
	inj := &injector{
		id:  router.EntityLlc,
		msg: router.Message{Src: router.EntityMle, Dest: router.EntityCmce, Payload: mle.SduInd{From: fourthCaller, Sdu: buf}},
	}

	r := router.New()
	r.Register(e)
	r.Register(mleOut)
	r.Register(inj)
	r.Tick(now)

	require.Equal(t, 3, e.Mgr.Len())
	require.Len(t, mleOut.received, 1)

	req := mleOut.received[0].Payload.(mle.SduReq)
	req.Sdu.Seek(0)
	rel, err := cmcepdu.ParseDReleaseRelease(req.Sdu)
	require.NoError(t, err)
	require.Equal(t, cmcepdu.DisconnectCauseNoResources, rel.DisconnectCause)
}

func TestReannounceFiresOnTickEndAfterInterval(t *testing.T) {
	e := New()
	caller := addr.Address{SsiType: addr.Issi, Ssi: 1}
	called := addr.Address{SsiType: addr.Issi, Ssi: 2}
	c, err := e.Mgr.AllocateCircuit(caller, called, DirectionBoth, tdma.Default())
	require.NoError(t, err)

	mleOut := &capturingEntity{id: router.EntityMle}
	r := router.New()
	r.Register(e)
	r.Register(mleOut)

	t0 := tdma.Default()
	tn := t0
	for i := 0; i < reannounceInterval+1; i++ {
		tn = r.Tick(tn)
	}

	require.NotEmpty(t, mleOut.received)
	req := mleOut.received[len(mleOut.received)-1].Payload.(mle.SduReq)
	req.Sdu.Seek(0)
	d, err := cmcepdu.ParseDSetup(req.Sdu)
	require.NoError(t, err)
	require.Equal(t, c.CallIdentifier, d.CallIdentifier)
}
