package phy

// Training-sequence bit patterns (clause 9.4.2). TsNormal is used for a
// full-slot continuous burst; TsExtended is the concatenation of the two
// half-slot training sequences used when the second half of the slot
// carries a different logical channel.
var (
	TsNormal   = mustBits("1111010101001111110000")
	TsExtended = mustBits("0001101111111111110011")
)

func mustBits(s string) []byte {
	out := make([]byte, len(s))
	for i, c := range s {
		if c == '1' {
			out[i] = 1
		}
	}
	return out
}

// Device is the PHY device interface consumed by the stack: an external
// SDR/IO backend that clocks out the requested downlink bursts and
// reports what was demodulated on the uplink. The only implementation in
// this build is FileDevice (file-based capture/replay); NewSoapySdrDevice
// always fails with ErrUnsupportedBackend.
type Device interface {
	// RxTxTimeslot blocks until txSlots have been queued for
	// transmission and the corresponding uplink sample window has been
	// captured and demodulated, returning up to one full-slot and two
	// half-slot detections.
	RxTxTimeslot(txSlots [][]byte) ([]RxSlot, error)
}

// RxSlot is one demodulated uplink detection: a full burst, or one half
// of a split uplink slot.
type RxSlot struct {
	TrainType TrainType
	Bits      []byte
}
