// Package tdma models TETRA's hyperframe/multiframe/frame/timeslot time
// base and the slot arithmetic every layer schedules against.
package tdma

import "fmt"

const (
	FramesPerMultiframe = 18
	SlotsPerFrame       = 4
	// ControlFrame is the special, control-plane-only frame of a multiframe.
	ControlFrame = 18
)

// Time is a TDMA timepoint: hyperframe (H), multiframe (M), frame (F) and
// timeslot (T). H and M range 0-59, F ranges 1-18, T ranges 1-4.
type Time struct {
	H int
	M int
	F int
	T int
}

// Default returns the epoch timepoint H=0 M=0 F=1 T=1.
func Default() Time {
	return Time{H: 0, M: 0, F: 1, T: 1}
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%d", t.H, t.M, t.F, t.T)
}

// toSlots converts a timepoint to an absolute slot count since hyperframe 0.
func (t Time) toSlots() int64 {
	return ((int64(t.H)*60+int64(t.M))*FramesPerMultiframe+int64(t.F-1))*SlotsPerFrame + int64(t.T-1)
}

// fromSlots is the inverse of toSlots, wrapping the combined H:M counter
// at 60*60 and decomposing it back into H (0-59) and M (0-59).
func fromSlots(slots int64) Time {
	const hmRange = 60 * 60
	const slotsPerHyperframe = hmRange * FramesPerMultiframe * SlotsPerFrame
	slots = ((slots % slotsPerHyperframe) + slotsPerHyperframe) % slotsPerHyperframe
	t := slots % SlotsPerFrame
	rest := slots / SlotsPerFrame
	f := rest % FramesPerMultiframe
	rest /= FramesPerMultiframe
	hm := rest % hmRange
	return Time{H: int(hm / 60), M: int(hm % 60), F: int(f) + 1, T: int(t) + 1}
}

// AddTimeslots returns the timepoint i timeslots after (or, if negative,
// before) t, wrapping across frame/multiframe/hyperframe boundaries.
func (t Time) AddTimeslots(i int32) Time {
	return fromSlots(t.toSlots() + int64(i))
}

// Age returns the signed number of timeslots from t to now (now - t).
func (t Time) Age(now Time) int32 {
	return int32(now.toSlots() - t.toSlots())
}

// Diff is an alias of Age used by code ported from the UMAC defragmenter,
// where the comparison reads "how old is t relative to now".
func (t Time) Diff(now Time) int32 {
	return t.Age(now)
}

// UplinkSlot returns the uplink timepoint corresponding to a downlink slot:
// two timeslots behind.
func (t Time) UplinkSlot() Time {
	return t.AddTimeslots(-2)
}

// Equal reports whether two timepoints denote the same slot.
func (t Time) Equal(o Time) bool {
	return t.toSlots() == o.toSlots()
}
