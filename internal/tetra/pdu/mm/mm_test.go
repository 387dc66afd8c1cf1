package mm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

func TestULocationUpdateDemandRoundTripMinimal(t *testing.T) {
	in := &ULocationUpdateDemand{
		LocationUpdateType: LocationUpdateRoaming,
		Mcc:                901,
		Mnc:                1,
		LocationAreaIdent:  42,
	}
	buf := bitbuf.NewAutoexpand(64)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseULocationUpdateDemand(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestULocationUpdateDemandRoundTripWithOptionals(t *testing.T) {
	cksn := uint64(3)
	ssi := uint64(789123)
	in := &ULocationUpdateDemand{
		LocationUpdateType: LocationUpdatePeriodic,
		Mcc:                901,
		Mnc:                1,
		LocationAreaIdent:  42,
		CkSn:               &cksn,
		Ssi:                &ssi,
	}
	buf := bitbuf.NewAutoexpand(64)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseULocationUpdateDemand(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestDLocationUpdateAcceptRoundTrip(t *testing.T) {
	ssi := uint64(1001)
	in := &DLocationUpdateAccept{
		LocationUpdateAcceptType: LocationUpdateAcceptRoamingLocation,
		Mcc:                      901,
		Mnc:                      1,
		LocationAreaIdent:        42,
		Ssi:                      &ssi,
	}
	buf := bitbuf.NewAutoexpand(64)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseDLocationUpdateAccept(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestAttachDetachGroupIdentityRoundTrip(t *testing.T) {
	u := &UAttachDetachGroupIdentity{Type: GroupIdentityAttach, AttachLifetime: AttachLifetimeUntilDetach, Gssi: 500500}
	buf := bitbuf.NewAutoexpand(32)
	u.Write(buf)
	buf.Seek(0)
	gotU, err := ParseUAttachDetachGroupIdentity(buf)
	require.NoError(t, err)
	require.Equal(t, u, gotU)

	d := &DAttachDetachGroupIdentityAck{Type: GroupIdentityAttach, Gssi: 500500, Accept: true}
	buf2 := bitbuf.NewAutoexpand(32)
	d.Write(buf2)
	buf2.Seek(0)
	gotD, err := ParseDAttachDetachGroupIdentityAck(buf2)
	require.NoError(t, err)
	require.Equal(t, d, gotD)
}

func TestDFunctionNotSupportedRoundTrip(t *testing.T) {
	in := &DFunctionNotSupported{PduType: uint8(PduTypeUOtar.Raw())}
	buf := bitbuf.NewAutoexpand(8)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseDFunctionNotSupported(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}
