package llc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

func TestBasicLinkFrameRoundTrip(t *testing.T) {
	sdu := bitbuf.FromBitstr("1011001101")
	f := &BasicLinkFrame{Type: PduBlUdata, Sdu: sdu}

	buf := bitbuf.NewAutoexpand(16)
	f.Write(buf)
	buf.Seek(0)

	got, err := ParseBasicLinkFrame(buf)
	require.NoError(t, err)
	require.Equal(t, PduBlUdata, got.Type)
	require.Equal(t, "1011001101", got.Sdu.ToBitstr())
}

func TestAdvancedLinkFrameRoundTrip(t *testing.T) {
	sdu := bitbuf.FromBitstr("110010101100")
	f := &AdvancedLinkFrame{Type: PduAlData, Link: 3, Ns: 1, Nr: 2, Sdu: sdu}

	buf := bitbuf.NewAutoexpand(64)
	f.Write(buf)
	buf.Seek(0)

	got, err := ParseAdvancedLinkFrame(buf)
	require.NoError(t, err)
	require.Equal(t, PduAlData, got.Type)
	require.Equal(t, LinkId(3), got.Link)
	require.Equal(t, uint8(1), got.Ns)
	require.Equal(t, uint8(2), got.Nr)
	require.Equal(t, "110010101100", got.Sdu.ToBitstr())
}
