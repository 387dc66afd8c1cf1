package umac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

func TestChanAllocReplaceLab(t *testing.T) {
	bitstr := "0001001110001111101001011"
	buffer := bitbuf.FromBitstr(bitstr)
	result, err := ParseChanAllocElement(buffer)
	require.NoError(t, err)
	require.Equal(t, 0, buffer.GetLenRemaining())
	require.Equal(t, uint16(1001), result.CarrierNum)
	require.Equal(t, ChanAllocReplace, result.AllocType)

	out := bitbuf.NewAutoexpand(30)
	require.NoError(t, result.Write(out))
	require.Equal(t, bitstr, out.ToBitstr())
	require.Equal(t, len(bitstr), result.ComputeLen())
}

func TestChanAllocAdditional(t *testing.T) {
	bitstr := "0100101100010111111000011"
	buffer := bitbuf.FromBitstr(bitstr)
	result, err := ParseChanAllocElement(buffer)
	require.NoError(t, err)
	require.Equal(t, 0, buffer.GetLenRemaining())
	require.Equal(t, uint16(1528), result.CarrierNum)
	require.Equal(t, ChanAllocAdditional, result.AllocType)

	out := bitbuf.NewAutoexpand(30)
	require.NoError(t, result.Write(out))
	require.Equal(t, bitstr, out.ToBitstr())
	require.Equal(t, len(bitstr), result.ComputeLen())
}

func TestChanAllocReplace(t *testing.T) {
	bitstr := "0000101100010111111000011"
	buffer := bitbuf.FromBitstr(bitstr)
	result, err := ParseChanAllocElement(buffer)
	require.NoError(t, err)
	require.Equal(t, 0, buffer.GetLenRemaining())
	require.Equal(t, uint16(1528), result.CarrierNum)
	require.Equal(t, ChanAllocReplace, result.AllocType)

	out := bitbuf.NewAutoexpand(30)
	require.NoError(t, result.Write(out))
	require.Equal(t, bitstr, out.ToBitstr())
	require.Equal(t, len(bitstr), result.ComputeLen())
}

func TestChanAllocQuitAndGo(t *testing.T) {
	bitstr := "1000001100010111111000011"
	buffer := bitbuf.FromBitstr(bitstr)
	result, err := ParseChanAllocElement(buffer)
	require.NoError(t, err)
	require.Equal(t, 0, buffer.GetLenRemaining())
	require.Equal(t, uint16(1528), result.CarrierNum)
	require.Equal(t, ChanAllocQuitAndGo, result.AllocType)

	out := bitbuf.NewAutoexpand(30)
	require.NoError(t, result.Write(out))
	require.Equal(t, bitstr, out.ToBitstr())
	require.Equal(t, len(bitstr), result.ComputeLen())
}
