// Package cmce holds the Circuit-Mode Control Entity PDU library: call
// set-up/release messages exchanged between the switch and a mobile.
package cmce

// PduTypeDl enumerates the downlink CMCE PDU discriminators (5-bit prefix).
type PduTypeDl uint64

const (
	PduTypeDAlert PduTypeDl = iota
	PduTypeDCallProceeding
	PduTypeDConnect
	PduTypeDConnectAck
	PduTypeDDisconnect
	PduTypeDInfo
	PduTypeDReleaseRelease
	PduTypeDSetup
	PduTypeDStatus
	PduTypeDTxCeased
	PduTypeDTxContinue
	PduTypeDTxGranted
	PduTypeDTxInterrupt
	PduTypeDTxWait
	PduTypeDSdsData
	PduTypeDFacility
	PduTypeDCallRestore
	PduTypeDFunctionNotSupported PduTypeDl = 30
)

func (t PduTypeDl) Raw() uint64 { return uint64(t) }

// PduTypeUl enumerates the uplink CMCE PDU discriminators.
type PduTypeUl uint64

const (
	PduTypeUAlert PduTypeUl = iota
	PduTypeUCallRestore
	PduTypeUConnect
	PduTypeUDisconnect
	PduTypeUInfo
	PduTypeURelease
	PduTypeUSetup
	PduTypeUStatus
	PduTypeUTxCeased
	PduTypeUTxDemand
	PduTypeUSdsData
	PduTypeUFacility
)

func (t PduTypeUl) Raw() uint64 { return uint64(t) }

// CallTimeout is the 4-bit "call time-out" element of D-SETUP (clause
// 14.8.15): the grace period after a call grant before it is reclaimed.
type CallTimeout uint8

const (
	CallTimeoutT1s CallTimeout = iota
	CallTimeoutT2s
	CallTimeoutT5s
	CallTimeoutT10s
	CallTimeoutT20s
	CallTimeoutT30s
	CallTimeoutT1m
	CallTimeoutT2m
	CallTimeoutT5m
	CallTimeoutT10m
	CallTimeoutT20m
	CallTimeoutT30m
	CallTimeoutT1h
	CallTimeoutInfinite
	CallTimeoutReserved14
	CallTimeoutReserved15
)

// TransmissionGrant is the 2-bit transmission-grant element of D-SETUP.
type TransmissionGrant uint8

const (
	TransmissionGrantNotGranted TransmissionGrant = iota
	TransmissionGrantGranted
	TransmissionGrantGrantedToOtherUser
	TransmissionGrantQueued
)

// CircuitModeType is the circuit-mode type sub-field of BasicServiceInformation.
type CircuitModeType uint8

const (
	CircuitModeTchS CircuitModeType = iota
	CircuitModeTch24
	CircuitModeTch48
	CircuitModeTch72
)

// CommunicationType is the communication-type sub-field of BasicServiceInformation.
type CommunicationType uint8

const (
	CommunicationTypeP2P CommunicationType = iota
	CommunicationTypeP2Mp
	CommunicationTypeP2MpAck
	CommunicationTypeP2MpReserved
)

// Type3ElemID tags the catch-all type-3 elements carried by several CMCE
// PDUs (D-SETUP, D-CONNECT, ...).
type Type3ElemID uint8

const (
	Type3ElemExtSubscriberNum Type3ElemID = 0x01
	Type3ElemFacility         Type3ElemID = 0x02
	Type3ElemDmMsAddr         Type3ElemID = 0x03
	Type3ElemProprietary      Type3ElemID = 0x1F
)

// DisconnectCause is the cause value carried by D-DISCONNECT/D-RELEASE.
type DisconnectCause uint8

const (
	DisconnectCauseUnknown DisconnectCause = iota
	DisconnectCauseUserRequest
	DisconnectCauseCongestion
	DisconnectCauseNoResources
	DisconnectCauseNoUserResponding
	DisconnectCauseCallTimeout
	DisconnectCauseNetworkReject
)
