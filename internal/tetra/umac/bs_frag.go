package umac

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/umac"
)

// We won't start fragmentation if fewer than this many bits are free in
// the slot: a MAC-RESOURCE header alone barely fits otherwise.
const MinSlotCapForResFragStart = 32

// We won't insert a MAC-FRAG/MAC-END fragment if fewer than this many
// bits are free in the slot.
const MinSlotCapForFrag = 16

// BsFragger drives a TM-SDU across as many downlink slots as it takes:
// one MAC-RESOURCE (possibly marked as a fragment start), zero or more
// MAC-FRAGs, and a closing MAC-END.
type BsFragger struct {
	resource        *umac.MacResource
	macHdrIsWritten bool
	done            bool
	sdu             *bitbuf.BitBuffer
}

// NewBsFragger starts a fragmentation sequence for sdu (cursor must be at
// position 0) addressed by resource.
func NewBsFragger(resource *umac.MacResource, sdu *bitbuf.BitBuffer) *BsFragger {
	if sdu.GetPos() != 0 {
		panic("umac: SDU must be at the start of the buffer")
	}
	return &BsFragger{resource: resource, sdu: sdu}
}

func (f *BsFragger) getResourceChunk(macBlock *bitbuf.BitBuffer) bool {
	if f.sdu.GetPos() != 0 {
		panic("umac: SDU must be at the start of the buffer")
	}
	if f.macHdrIsWritten {
		panic("umac: MAC header should not be written yet")
	}
	if f.resource.IsNullPdu() && f.sdu.GetLenRemaining() > 0 {
		panic("umac: null PDU cannot carry SDU data")
	}

	hdrLenBits := f.resource.ComputeHeaderLen()
	sduLenBits := f.sdu.GetLenRemaining()
	numFillBits := ComputeRequiredFillBits(hdrLenBits + sduLenBits)
	totalLenBits := hdrLenBits + sduLenBits + numFillBits
	totalLenBytes := totalLenBits / 8
	slotCapBits := macBlock.GetLenRemaining()

	if totalLenBits <= slotCapBits {
		f.resource.LengthInd = uint8(totalLenBytes)
		f.resource.FillBits = numFillBits > 0

		_ = f.resource.Write(macBlock)
		macBlock.CopyBits(f.sdu, sduLenBits)
		WriteFillBits(macBlock, numFillBits)

		f.macHdrIsWritten = true
		return true
	}

	if slotCapBits < MinSlotCapForResFragStart {
		return false
	}

	f.resource.LengthInd = umac.LengthIndFragStart
	f.resource.FillBits = false
	sduBits := slotCapBits - hdrLenBits

	_ = f.resource.Write(macBlock)
	macBlock.CopyBits(f.sdu, sduBits)

	f.macHdrIsWritten = true
	return false
}

func (f *BsFragger) getFragOrEndChunk(macBlock *bitbuf.BitBuffer) bool {
	if !f.macHdrIsWritten {
		panic("umac: MAC header should be previously written")
	}

	sduBits := f.sdu.GetLenRemaining()
	macEndLenBits := umac.ComputeMacEndHdrLen(false, false) + sduBits
	macEndLenBytes := (macEndLenBits + 7) / 8
	slotCapBits := macBlock.GetLenRemaining()

	if macEndLenBytes*8 <= slotCapBits {
		numFillBits := ComputeRequiredFillBits(macEndLenBits)
		end := &umac.MacEndDl{
			FillBits:  numFillBits > 0,
			LengthInd: uint8(macEndLenBytes),
		}
		_ = end.Write(macBlock)
		macBlock.CopyBits(f.sdu, sduBits)
		WriteFillBits(macBlock, numFillBits)
		return true
	}

	if slotCapBits < MinSlotCapForFrag {
		return false
	}

	sduBitsInFrag := slotCapBits - MacFragHdrLenBits
	if sduBitsInFrag > sduBits {
		sduBitsInFrag = sduBits
	}
	numFillBits := slotCapBits - MacFragHdrLenBits - sduBitsInFrag

	frag := &umac.MacFragDl{FillBits: numFillBits > 0}
	frag.Write(macBlock)
	macBlock.CopyBits(f.sdu, sduBitsInFrag)
	WriteFillBits(macBlock, numFillBits)

	return false
}

// MacFragHdrLenBits mirrors umac.MacFragHdrLen, named locally to read
// naturally alongside the slot-capacity arithmetic above.
const MacFragHdrLenBits = umac.MacFragHdrLen

// GetNextChunk writes the next chunk into macBlock, returning true once
// the SDU has been fully delivered (a MAC-END was written).
func (f *BsFragger) GetNextChunk(macBlock *bitbuf.BitBuffer) bool {
	if f.done {
		panic("umac: all fragments have already been produced")
	}
	if !f.macHdrIsWritten {
		f.done = f.getResourceChunk(macBlock)
	} else {
		f.done = f.getFragOrEndChunk(macBlock)
	}
	return f.done
}
