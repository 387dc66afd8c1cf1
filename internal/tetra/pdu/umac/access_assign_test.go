package umac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

func TestAccessAssignRoundTrip(t *testing.T) {
	a := AccessAssign{Header: AaHeaderTraffic, Field1: 0x15, Field2: 0x2A}
	buf := bitbuf.NewAutoexpand(16)
	a.Write(buf)
	buf.Seek(0)

	got, err := ParseAccessAssign(buf)
	require.NoError(t, err)
	require.Equal(t, a, *got)
}

func TestNewAccessAssignCommonControl(t *testing.T) {
	a := NewAccessAssign(DlUsageCommonControl(), UlUsageFromMarker(0))
	require.True(t, a.DlUsage().CommonControl)
	require.Equal(t, UlUsageCommonAndAssigned, a.UlUsage().Kind)
}

func TestNewAccessAssignTrafficMarker(t *testing.T) {
	dl := DlUsageFromMarker(7)
	ul := UlUsageFromMarker(9)
	a := NewAccessAssign(dl, ul)
	require.False(t, a.DlUsage().CommonControl)
	require.Equal(t, uint8(7), a.DlUsage().ToUsageMarker())
	require.True(t, a.UlUsage().IsTraffic())
	require.Equal(t, uint8(9), a.UlUsage().UsageMarker)
}
