package mm

import (
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu"
)

// GroupIdentityAttachDetachType is the 2-bit operation a
// U-ATTACH-DETACH-GROUP-IDENTITY performs.
type GroupIdentityAttachDetachType uint8

const (
	GroupIdentityAttach GroupIdentityAttachDetachType = iota
	GroupIdentityDetach
	GroupIdentityDetachAll
)

// UAttachDetachGroupIdentity is U-ATTACH/DETACH-GROUP-IDENTITY: a mobile
// asking the client registry to attach or detach it from a talkgroup
// address (clause 16.9.33).
type UAttachDetachGroupIdentity struct {
	Type           GroupIdentityAttachDetachType
	AttachLifetime AttachLifetime
	Gssi           uint32 // 24-bit
}

func ParseUAttachDetachGroupIdentity(buf *bitbuf.BitBuffer) (*UAttachDetachGroupIdentity, error) {
	t, err := buf.ReadField(4, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeUAttachDetachGroupIdentity.Raw()); err != nil {
		return nil, err
	}
	typ, err := buf.ReadField(2, "type")
	if err != nil {
		return nil, pdu.OutOfBounds("type", err)
	}
	lifetime, err := buf.ReadField(3, "attach_lifetime")
	if err != nil {
		return nil, pdu.OutOfBounds("attach_lifetime", err)
	}
	gssi, err := buf.ReadField(24, "gssi")
	if err != nil {
		return nil, pdu.OutOfBounds("gssi", err)
	}
	return &UAttachDetachGroupIdentity{
		Type:           GroupIdentityAttachDetachType(typ),
		AttachLifetime: AttachLifetime(lifetime),
		Gssi:           uint32(gssi),
	}, nil
}

func (u *UAttachDetachGroupIdentity) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeUAttachDetachGroupIdentity.Raw(), 4)
	buf.WriteBits(uint64(u.Type), 2)
	buf.WriteBits(uint64(u.AttachLifetime), 3)
	buf.WriteBits(uint64(u.Gssi), 24)
}

// DAttachDetachGroupIdentityAck is D-ATTACH/DETACH-GROUP-IDENTITY-ACK:
// the switch's confirmation of a group attach/detach operation.
type DAttachDetachGroupIdentityAck struct {
	Type   GroupIdentityAttachDetachType
	Gssi   uint32 // 24-bit
	Accept bool
}

func ParseDAttachDetachGroupIdentityAck(buf *bitbuf.BitBuffer) (*DAttachDetachGroupIdentityAck, error) {
	t, err := buf.ReadField(4, "pdu_type")
	if err != nil {
		return nil, pdu.OutOfBounds("pdu_type", err)
	}
	if err := pdu.ExpectPduType(t, PduTypeDAttachDetachGroupIdentityAck.Raw()); err != nil {
		return nil, err
	}
	typ, err := buf.ReadField(2, "type")
	if err != nil {
		return nil, pdu.OutOfBounds("type", err)
	}
	gssi, err := buf.ReadField(24, "gssi")
	if err != nil {
		return nil, pdu.OutOfBounds("gssi", err)
	}
	accept, err := buf.ReadField(1, "accept")
	if err != nil {
		return nil, pdu.OutOfBounds("accept", err)
	}
	return &DAttachDetachGroupIdentityAck{
		Type:   GroupIdentityAttachDetachType(typ),
		Gssi:   uint32(gssi),
		Accept: accept == 1,
	}, nil
}

func (d *DAttachDetachGroupIdentityAck) Write(buf *bitbuf.BitBuffer) {
	buf.WriteBits(PduTypeDAttachDetachGroupIdentityAck.Raw(), 4)
	buf.WriteBits(uint64(d.Type), 2)
	buf.WriteBits(uint64(d.Gssi), 24)
	if d.Accept {
		buf.WriteBits(1, 1)
	} else {
		buf.WriteBits(0, 1)
	}
}
