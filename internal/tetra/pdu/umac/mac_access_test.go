package umac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

func TestMacAccessRoundTripNoReservation(t *testing.T) {
	m := &MacAccess{FillBits: false, LengthInd: 12}
	buf := bitbuf.NewAutoexpand(16)
	m.Write(buf)
	buf.Seek(0)

	got, err := ParseMacAccess(buf)
	require.NoError(t, err)
	require.Equal(t, m.FillBits, got.FillBits)
	require.Equal(t, m.LengthInd, got.LengthInd)
	require.Nil(t, got.SlotsToFollow)
}

func TestMacAccessRoundTripWithReservation(t *testing.T) {
	req := ReqReq1Subslot
	m := &MacAccess{FillBits: true, LengthInd: 5, SlotsToFollow: &req}
	buf := bitbuf.NewAutoexpand(16)
	m.Write(buf)
	buf.Seek(0)

	got, err := ParseMacAccess(buf)
	require.NoError(t, err)
	require.NotNil(t, got.SlotsToFollow)
	require.Equal(t, req, *got.SlotsToFollow)
}

func TestMacEndUlRoundTrip(t *testing.T) {
	m := &MacEndUl{FillBits: true, LengthInd: 40}
	buf := bitbuf.NewAutoexpand(16)
	m.Write(buf)
	buf.Seek(0)

	got, err := ParseMacEndUl(buf)
	require.NoError(t, err)
	require.Equal(t, m.FillBits, got.FillBits)
	require.Equal(t, m.LengthInd, got.LengthInd)
}
