// Package mle holds the Mobile Link Entity's own small PDU set: the
// protocol-discriminator demultiplex header plus the MLE-level PDUs that
// are not themselves owned by MM/CMCE/SNDCP.
package mle

// ProtocolDiscriminator is the 3-bit field every LLC SDU starts with,
// selecting which upper service entity owns the remaining bits.
type ProtocolDiscriminator uint8

const (
	PdReserved ProtocolDiscriminator = iota
	PdMm
	PdCmce
	PdTetraManagement3 // reserved, unused in this stack
	PdSndcp
	PdMle
	PdTetraManagementEntity
	PdTestPdu
)

func (p ProtocolDiscriminator) String() string {
	switch p {
	case PdMm:
		return "MM"
	case PdCmce:
		return "CMCE"
	case PdSndcp:
		return "SNDCP"
	case PdMle:
		return "MLE"
	case PdTetraManagementEntity:
		return "TetraManagementEntity"
	default:
		return "Reserved"
	}
}
