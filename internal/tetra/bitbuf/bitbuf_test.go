package bitbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteDuality(t *testing.T) {
	for n := 1; n <= 64; n++ {
		var maxV uint64
		if n == 64 {
			maxV = ^uint64(0)
		} else {
			maxV = (uint64(1) << uint(n)) - 1
		}
		for _, v := range []uint64{0, 1, maxV, maxV / 2} {
			buf := NewAutoexpand(n)
			buf.WriteBits(v, n)
			buf.Seek(0)
			got, err := buf.ReadField(n, "v")
			require.NoError(t, err)
			assert.Equalf(t, v, got, "n=%d v=%d", n, v)
		}
	}
}

func TestFromBitstrToBitstrRoundTrip(t *testing.T) {
	s := "00111000000000001000111000000010011"
	buf := FromBitstr(s)
	assert.Equal(t, s, buf.ToBitstr())
}

func TestCopyBits(t *testing.T) {
	src := FromBitstr("1100")
	dst := NewAutoexpand(4)
	dst.CopyBits(src, 4)
	assert.Equal(t, "1100", dst.ToBitstr())
	assert.Equal(t, 0, src.GetLenRemaining())
}

func TestOutOfBounds(t *testing.T) {
	buf := New(4)
	_, err := buf.ReadField(5, "x")
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestGetLenRemaining(t *testing.T) {
	buf := FromBitstr("101010")
	_, err := buf.ReadField(2, "x")
	require.NoError(t, err)
	assert.Equal(t, 4, buf.GetLenRemaining())
	assert.Equal(t, 2, buf.GetLen())
}
