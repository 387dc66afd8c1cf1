package cmce

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// BasicServiceInformation is the fixed 8-bit type-1 element carried by
// D-SETUP and U-SETUP: circuit mode, point-to-point/point-to-multipoint
// selection, air-interface encryption, and either the slots-per-frame or
// speech-service sub-field depending on circuit mode.
type BasicServiceInformation struct {
	CircuitModeType   CircuitModeType
	CommunicationType CommunicationType
	EncryptionFlag    bool
	// Service holds SlotsPerFrame when CircuitModeType != CircuitModeTchS,
	// and the speech-service codec identifier otherwise.
	Service uint8
}

func (b BasicServiceInformation) SlotsPerFrame() (uint8, bool) {
	if b.CircuitModeType == CircuitModeTchS {
		return 0, false
	}
	return b.Service, true
}

func (b BasicServiceInformation) SpeechService() (uint8, bool) {
	if b.CircuitModeType != CircuitModeTchS {
		return 0, false
	}
	return b.Service, true
}

func ParseBasicServiceInformation(buf *bitbuf.BitBuffer) (BasicServiceInformation, error) {
	cmt, err := buf.ReadField(2, "circuit_mode_type")
	if err != nil {
		return BasicServiceInformation{}, pdu.OutOfBounds("circuit_mode_type", err)
	}
	ct, err := buf.ReadField(2, "communication_type")
	if err != nil {
		return BasicServiceInformation{}, pdu.OutOfBounds("communication_type", err)
	}
	enc, err := buf.ReadField(1, "encryption_flag")
	if err != nil {
		return BasicServiceInformation{}, pdu.OutOfBounds("encryption_flag", err)
	}
	svc, err := buf.ReadField(3, "service")
	if err != nil {
		return BasicServiceInformation{}, pdu.OutOfBounds("service", err)
	}
	return BasicServiceInformation{
		CircuitModeType:   CircuitModeType(cmt),
		CommunicationType: CommunicationType(ct),
		EncryptionFlag:    enc == 1,
		Service:           uint8(svc),
	}, nil
}

func (b BasicServiceInformation) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(uint64(b.CircuitModeType), 2)
	buf.WriteBits(uint64(b.CommunicationType), 2)
	if b.EncryptionFlag {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
	buf.WriteBits(uint64(b.Service), 3)
}
