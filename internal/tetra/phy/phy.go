// Package phy implements the physical-layer burst assembly/disassembly:
// SDB/NDB framing, training-sequence selection, and the phase-adjustment
// dibit computation.
package phy

// TimeslotType4Bits is the full coded bit count of one TDMA timeslot.
const TimeslotType4Bits = 510

// TrainType distinguishes the training sequence reported for a detected
// uplink burst.
type TrainType int

const (
	TrainNotFound TrainType = iota
	TrainNormal             // "n": full-slot normal training sequence
	TrainExtended           // "p": two half-slot (control/normal) training sequences
)

// BurstKind selects which downlink burst shape PHY assembles.
type BurstKind int

const (
	BurstSdb BurstKind = iota // synchronization downlink burst
	BurstNdb                  // normal continuous downlink burst
)

// fixed burst-shape field widths, clause 9.
const (
	qBits   = 10
	hBits   = 2 // HA/HB/HC/HD: 1 phase-adjust dibit each, expressed as 2 bits
	fBits   = 80
	sb1Bits = 120
	yBits   = 38
	bbkBits = 30
	sb2Bits = 216
	blkBits = 216
	tsBits  = 22
)

// Exported field widths, for callers assembling a BLK/BBK payload before
// handing it to AssembleNdb.
const (
	QBits   = qBits
	BlkBits = blkBits
	BbkBits = bbkBits
	TsBits  = tsBits
)

// PadBlock right-pads bits with zeros to exactly n bits, truncating if
// bits is already longer. Used to fit a channel-coded payload shorter
// than a burst field (e.g. SCH/F's coded length against BLK1+BLK2's
// combined capacity) into that field.
func PadBlock(bits []byte, n int) []byte {
	if len(bits) >= n {
		return bits[:n]
	}
	out := make([]byte, n)
	copy(out, bits)
	return out
}

// AssembleSdb builds the 510-bit synchronization downlink burst:
// Q[10..] HC F(80) SB1(120) Y(38) BBK(30) SB2(216) HD Q[..10].
func AssembleSdb(q []byte, f, sb1, y, bbk, sb2 []byte) []byte {
	mustLen("q", q, 2*qBits)
	mustLen("f", f, fBits)
	mustLen("sb1", sb1, sb1Bits)
	mustLen("y", y, yBits)
	mustLen("bbk", bbk, bbkBits)
	mustLen("sb2", sb2, sb2Bits)

	out := make([]byte, 0, TimeslotType4Bits)
	out = append(out, q[qBits:]...)
	out = append(out, phaseAdjDibit(windowSumQHC(q, f))...)
	out = append(out, f...)
	out = append(out, sb1...)
	out = append(out, y...)
	out = append(out, bbk...)
	out = append(out, sb2...)
	out = append(out, phaseAdjDibit(windowSumSB2Q(sb2, q))...)
	out = append(out, q[:qBits]...)
	return out
}

// AssembleNdb builds the 510-bit normal continuous downlink burst:
// Q[10..] HA BLK1(216) BBK[0..14] TS(22) BBK[14..30] BLK2(216) HB Q[..10].
// ts is the 22-bit training sequence, either the full-slot normal
// sequence ("n") or the concatenation of two half-slot sequences ("p").
func AssembleNdb(q []byte, blk1, bbk, ts, blk2 []byte) []byte {
	mustLen("q", q, 2*qBits)
	mustLen("blk1", blk1, blkBits)
	mustLen("bbk", bbk, bbkBits)
	mustLen("ts", ts, tsBits)
	mustLen("blk2", blk2, blkBits)

	out := make([]byte, 0, TimeslotType4Bits)
	out = append(out, q[qBits:]...)
	out = append(out, phaseAdjDibit(windowSumQHA(q, blk1))...)
	out = append(out, blk1...)
	out = append(out, bbk[:14]...)
	out = append(out, ts...)
	out = append(out, bbk[14:]...)
	out = append(out, blk2...)
	out = append(out, phaseAdjDibit(windowSumBlk2Q(blk2, q))...)
	out = append(out, q[:qBits]...)
	return out
}

// DisassembleNdb splits a 510-bit normal continuous burst back into its
// constituent fields, the inverse of AssembleNdb. The two phase-adjust
// dibits are discarded.
func DisassembleNdb(burst []byte) (blk1, bbk, ts, blk2 []byte) {
	mustLen("burst", burst, TimeslotType4Bits)

	i := qBits + hBits
	blk1 = burst[i : i+blkBits]
	i += blkBits

	bbkFirst := burst[i : i+14]
	i += 14
	ts = burst[i : i+tsBits]
	i += tsBits
	bbkSecond := burst[i : i+(bbkBits-14)]
	i += bbkBits - 14
	bbk = append(append([]byte{}, bbkFirst...), bbkSecond...)

	blk2 = burst[i : i+blkBits]
	return blk1, bbk, ts, blk2
}

func mustLen(name string, b []byte, want int) {
	if len(b) != want {
		panic("phy: field " + name + " has wrong length")
	}
}
