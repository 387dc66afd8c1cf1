package umac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/addr"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	pumac "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/umac"
)

func defaultResource() *pumac.MacResource {
	return &pumac.MacResource{
		Addr: &addr.Address{SsiType: addr.Ssi, Ssi: 1234},
	}
}

func TestBsFraggerSingleChunk(t *testing.T) {
	sdu := bitbuf.FromBitstr("111000111")
	macBlock := bitbuf.New(256)

	fragger := NewBsFragger(defaultResource(), sdu)
	done := fragger.GetNextChunk(macBlock)
	require.True(t, done, "should fit in a single chunk")
}

func TestBsFraggerSpansMultipleSlotsThenFinishes(t *testing.T) {
	sdu := "01010110010011000010101010010010110101010110010011001011111110101011001010010110111001011111111111100010011000000011010011001110010111110010100100010111010110000010010001101000011000000111101011010001001111001110110100000101010111110100010000100101001100011110010111001010101001110110111010001001101101111100111001000001111100101010000010111"
	sduBuf := bitbuf.FromBitstr(sdu)

	fragger := NewBsFragger(defaultResource(), sduBuf)

	// Small per-slot capacity forces the message across several fragments.
	const slotCap = 64

	done := false
	chunks := 0
	firstKind := ""
	for !done {
		macBlock := bitbuf.New(slotCap)
		done = fragger.GetNextChunk(macBlock)
		macBlock.Seek(0)
		chunks++

		if chunks == 1 {
			res, err := pumac.ParseMacResource(macBlock)
			require.NoError(t, err)
			if res.LengthInd == pumac.LengthIndFragStart {
				firstKind = "frag_start"
			} else {
				firstKind = "single"
			}
		} else if done {
			_, err := pumac.ParseMacEndDl(macBlock)
			require.NoError(t, err)
		} else {
			_, err := pumac.ParseMacFragDl(macBlock)
			require.NoError(t, err)
		}
		require.Less(t, chunks, 64, "fragmentation should terminate")
	}

	require.Equal(t, "frag_start", firstKind, "long SDU over a small slot must fragment")
	require.Greater(t, chunks, 1)
}
