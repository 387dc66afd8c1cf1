// Package mm holds the Mobility Management PDU library: registration and
// group-membership messages exchanged between a mobile and the switch's
// client registry.
package mm

// PduTypeDl enumerates the downlink MM PDU discriminators (4-bit prefix).
type PduTypeDl uint64

const (
	PduTypeDOtar PduTypeDl = iota
	PduTypeDAuthentication
	PduTypeDAttachDetachGroupIdentity
	PduTypeDAttachDetachGroupIdentityAck
	PduTypeDTmsiReallocation
	PduTypeDLocationUpdateAccept
	PduTypeDLocationUpdateCommand
	PduTypeDLocationUpdateReject
	PduTypeDLocationUpdateProceeding
	PduTypeDFunctionNotSupported PduTypeDl = 14
)

func (t PduTypeDl) Raw() uint64 { return uint64(t) }

// PduTypeUl enumerates the uplink MM PDU discriminators.
type PduTypeUl uint64

const (
	PduTypeUAuthentication PduTypeUl = iota
	PduTypeUOtar
	PduTypeUAttachDetachGroupIdentity
	PduTypeUAttachDetachGroupIdentityAck
	PduTypeUTmsiReallocationComplete
	PduTypeULocationUpdateDemand
	PduTypeUMmStatus
)

func (t PduTypeUl) Raw() uint64 { return uint64(t) }

// LocationUpdateType is the 3-bit reason field of U-LOCATION-UPDATE-DEMAND.
type LocationUpdateType uint8

const (
	LocationUpdateRoaming LocationUpdateType = iota
	LocationUpdatePeriodic
	LocationUpdateItsi
	LocationUpdateDisabledMs
	LocationUpdateMigrating
	LocationUpdateDemand
	LocationUpdateCellReselection
)

// LocationUpdateAcceptType is the 2-bit acceptance disposition of
// D-LOCATION-UPDATE-ACCEPT.
type LocationUpdateAcceptType uint8

const (
	LocationUpdateAcceptRoamingLocation LocationUpdateAcceptType = iota
	LocationUpdateAcceptTemporaryRegistration
	LocationUpdateAcceptMigrating
	LocationUpdateAcceptDemand
)

// AttachLifetime is the 3-bit group-attachment lifetime element.
type AttachLifetime uint8

const (
	AttachLifetimeUntilDetach AttachLifetime = iota
	AttachLifetimeDayDefined
	AttachLifetimeWeekDefined
	AttachLifetimeOnInterruption
)
