package brew

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSubscriberRegisterRoundTrip(t *testing.T) {
	raw := BuildSubscriberRegister(910001, 1700000000, 123456789)
	msg, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, msg.Subscriber)
	require.Equal(t, uint32(910001), msg.Subscriber.Number)
	require.Equal(t, uint64(1700000000), msg.Subscriber.Time)
	require.Equal(t, uint32(123456789), msg.Subscriber.Fraction)
	require.Empty(t, msg.Subscriber.Groups)
}

func TestFrameMessageRoundTrip(t *testing.T) {
	id := uuid.New()
	raw := BuildFrame(FrameTypeTrafficChannel, id, 432, []byte{1, 2, 3, 4})
	msg, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, msg.Frame)
	require.Equal(t, id, msg.Frame.Identifier)
	require.Equal(t, uint16(432), msg.Frame.LengthBits)
	require.Equal(t, []byte{1, 2, 3, 4}, msg.Frame.Data)
}

func TestServiceMessageNullTerminated(t *testing.T) {
	raw := BuildService(1, `{"ok":true}`)
	msg, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, msg.Service)
	require.Equal(t, `{"ok":true}`, msg.Service.JSON)
}

func TestCallControlCauseCodes(t *testing.T) {
	id := uuid.New()
	raw := make([]byte, 19)
	raw[0], raw[1] = ClassCallControl, CallStateCallRelease
	copy(raw[2:18], id[:])
	raw[18] = 7 // cause
	msg, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, msg.CallControl)
	require.NotNil(t, msg.CallControl.Cause)
	require.Equal(t, byte(7), *msg.CallControl.Cause)
}

func TestParseRejectsShortFrame(t *testing.T) {
	_, err := Parse([]byte{ClassSubscriber})
	require.Error(t, err)
}

func TestParseRejectsUnknownClass(t *testing.T) {
	_, err := Parse([]byte{0x00, 0x00, 0x00, 0x00})
	require.ErrorIs(t, err, ErrUnknownClass)
}

func TestFrameLengthPrefixRoundTrip(t *testing.T) {
	payload := BuildService(2, "hello")
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, payload))

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
