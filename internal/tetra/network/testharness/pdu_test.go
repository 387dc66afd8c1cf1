package testharness_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/network/testharness"
)

func TestHeartbeatRoundTrip(t *testing.T) {
	raw, err := testharness.Encode(testharness.PDU{Tick: &testharness.HeartbeatTick{Handle: 42}})
	require.NoError(t, err)

	got, err := testharness.Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, got.Tick)
	require.Equal(t, uint64(42), got.Tick.Handle)
}

func TestRequestResponseRoundTrip(t *testing.T) {
	raw, err := testharness.Encode(testharness.PDU{Request: &testharness.TestRequest{Handle: 7, SSI: 910001}})
	require.NoError(t, err)

	got, err := testharness.Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, got.Request)
	require.Equal(t, uint64(7), got.Request.Handle)
	require.Equal(t, uint32(910001), got.Request.SSI)

	resp, err := testharness.Encode(testharness.PDU{Response: &testharness.TestResponse{
		Handle: got.Request.Handle,
		SSI:    got.Request.SSI,
		Data:   0x1234ABCD,
	}})
	require.NoError(t, err)

	gotResp, err := testharness.Decode(resp)
	require.NoError(t, err)
	require.NotNil(t, gotResp.Response)
	require.Equal(t, uint32(0x1234ABCD), gotResp.Response.Data)
}

func TestDecodeRejectsServiceIDMismatch(t *testing.T) {
	raw, err := testharness.Encode(testharness.PDU{Tick: &testharness.HeartbeatTick{Handle: 1}})
	require.NoError(t, err)
	raw[0] ^= 0xff

	_, err = testharness.Decode(raw)
	require.ErrorIs(t, err, testharness.ErrServiceIDMismatch)
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	raw, err := testharness.Encode(testharness.PDU{Tick: &testharness.HeartbeatTick{Handle: 1}})
	require.NoError(t, err)
	raw[4] = 99

	_, err = testharness.Decode(raw)
	require.ErrorIs(t, err, testharness.ErrVersionMismatch)
}

func TestDecodeRejectsShortPdu(t *testing.T) {
	_, err := testharness.Decode([]byte{0, 0})
	require.ErrorIs(t, err, testharness.ErrTooShort)
}
