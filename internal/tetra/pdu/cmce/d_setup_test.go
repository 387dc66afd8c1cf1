package cmce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

func TestDSetupRoundTripMinimal(t *testing.T) {
	ssi := uint64(910001)
	typeID := uint64(1)
	in := &DSetup{
		CallIdentifier:         4,
		CallTimeOut:            CallTimeoutT5m,
		HookMethodSelection:    false,
		SimplexDuplexSelection: true,
		BasicServiceInformation: BasicServiceInformation{
			CircuitModeType:   CircuitModeTchS,
			CommunicationType: CommunicationTypeP2Mp,
			EncryptionFlag:    false,
			Service:           0,
		},
		TransmissionGrant:             TransmissionGrantGranted,
		TransmissionRequestPermission: false,
		CallPriority:                  0,
		CallingPartyTypeIdentifier:    &typeID,
		CallingPartyAddressSsi:        &ssi,
	}

	buf := bitbuf.NewAutoexpand(128)
	require.NoError(t, in.Write(buf))
	buf.Seek(0)

	out, err := ParseDSetup(buf)
	require.NoError(t, err)
	require.Equal(t, in.CallIdentifier, out.CallIdentifier)
	require.Equal(t, in.CallTimeOut, out.CallTimeOut)
	require.Equal(t, in.BasicServiceInformation, out.BasicServiceInformation)
	require.Equal(t, in.TransmissionGrant, out.TransmissionGrant)
	require.NotNil(t, out.CallingPartyAddressSsi)
	require.Equal(t, ssi, *out.CallingPartyAddressSsi)
	require.Nil(t, out.CallingPartyAddressExtension)
	require.Equal(t, 0, buf.GetLenRemaining())
}

func TestDSetupRoundTripNoOptionalFields(t *testing.T) {
	in := &DSetup{
		CallIdentifier: 195,
		CallTimeOut:    CallTimeoutInfinite,
		BasicServiceInformation: BasicServiceInformation{
			CircuitModeType:   CircuitModeTch24,
			CommunicationType: CommunicationTypeP2P,
			EncryptionFlag:    true,
			Service:           2,
		},
		TransmissionGrant: TransmissionGrantQueued,
		CallPriority:      3,
	}

	buf := bitbuf.NewAutoexpand(128)
	require.NoError(t, in.Write(buf))
	buf.Seek(0)

	out, err := ParseDSetup(buf)
	require.NoError(t, err)
	require.Equal(t, in.CallIdentifier, out.CallIdentifier)
	require.Equal(t, in.CallTimeOut, out.CallTimeOut)
	require.Nil(t, out.CallingPartyAddressSsi)
	require.Nil(t, out.Facility)
	require.Equal(t, 0, buf.GetLenRemaining())
}

func TestDSetupWrongPduTypeRejected(t *testing.T) {
	buf := bitbuf.NewAutoexpand(64)
	buf.WriteBits(PduTypeDAlert.Raw(), 5)
	buf.WriteZeroes(40)
	buf.Seek(0)

	_, err := ParseDSetup(buf)
	require.Error(t, err)
}
