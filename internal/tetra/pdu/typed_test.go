package pdu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

func TestType2GenericRoundTripAbsent(t *testing.T) {
	buf := bitbuf.NewAutoexpand(8)
	WriteType2Generic(true, buf, nil, 12)
	buf.Seek(0)
	got, err := ParseType2Generic(true, buf, 12, "f")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestType2GenericRoundTripPresent(t *testing.T) {
	buf := bitbuf.NewAutoexpand(16)
	v := uint64(910001)
	WriteType2Generic(true, buf, &v, 24)
	buf.Seek(0)
	got, err := ParseType2Generic(true, buf, 24, "f")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, v, *got)
}

func TestType2GenericClosedChainConsumesNothing(t *testing.T) {
	buf := bitbuf.NewAutoexpand(8)
	buf.WriteBits(0b10110, 5)
	buf.Seek(0)
	got, err := ParseType2Generic(false, buf, 12, "f")
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, 0, buf.GetPos())
}

func TestType3GenericRoundTrip(t *testing.T) {
	payload := bitbuf.NewAutoexpand(20)
	payload.WriteBits(0xABCD, 16)
	payload.Seek(0)
	field := &Type3FieldGeneric{ElemID: 0x02, Payload: payload}

	buf := bitbuf.NewAutoexpand(64)
	require.NoError(t, WriteType3Generic(true, buf, field, 0x02))
	buf.Seek(0)

	got, err := ParseType3Generic(true, buf, 0x02)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, uint8(0x02), got.ElemID)
	v, err := got.Payload.ReadField(16, "v")
	require.NoError(t, err)
	require.Equal(t, uint64(0xABCD), v)
}

func TestType3GenericMismatchedTagIsAbsent(t *testing.T) {
	buf := bitbuf.NewAutoexpand(32)
	buf.WriteBits(0x1F, 8)
	buf.WriteBits(3, 11)
	buf.WriteBits(0b101, 3)
	buf.Seek(0)

	got, err := ParseType3Generic(true, buf, 0x02)
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, 0, buf.GetPos())
}
