// Package umac implements the upper MAC: downlink fragmentation, uplink
// defragmentation, and the BS slot scheduler that drives them.
package umac

import "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"

// ComputeRequiredFillBits returns how many zero-padding bits (plus the
// leading '1' stop bit) are needed to carry totalBits up to the next octet
// boundary: the naive addition-of-fill-bits rule used throughout the MAC.
func ComputeRequiredFillBits(totalBits int) int {
	return (8 - (totalBits % 8)) % 8
}

// WriteFillBits appends n fill bits to buf: a single '1' stop bit followed
// by zeroes, or nothing if n == 0.
func WriteFillBits(buf *bitbuf.BitBuffer, n int) {
	if n == 0 {
		return
	}
	buf.WriteBit(1)
	buf.WriteZeroes(n - 1)
}
