// Package addr models the TETRA short subscriber identity address.
package addr

// SsiType distinguishes the kind of short subscriber identity an Address
// carries.
type SsiType int

const (
	Ssi SsiType = iota
	Gssi
	Issi
	Ussi
	Smi
)

func (t SsiType) String() string {
	switch t {
	case Ssi:
		return "Ssi"
	case Gssi:
		return "Gssi"
	case Issi:
		return "Issi"
	case Ussi:
		return "Ussi"
	case Smi:
		return "Smi"
	default:
		return "Unknown"
	}
}

// Address is a TETRA short subscriber identity: a 24-bit SSI tagged with
// its kind and an encryption flag. Equality respects SsiType.
type Address struct {
	SsiType   SsiType
	Ssi       uint32
	Encrypted bool
}

// Equal compares two addresses, including SsiType.
func (a Address) Equal(o Address) bool {
	return a.SsiType == o.SsiType && a.Ssi == o.Ssi && a.Encrypted == o.Encrypted
}
