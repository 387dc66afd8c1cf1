package cmce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/bitbuf"
)

func bsi() BasicServiceInformation {
	return BasicServiceInformation{
		CircuitModeType:   CircuitModeTchS,
		CommunicationType: CommunicationTypeP2P,
		EncryptionFlag:    false,
		Service:           2,
	}
}

func TestDDisconnectRoundTrip(t *testing.T) {
	in := &DDisconnect{DisconnectCause: DisconnectCauseUserRequest}
	buf := bitbuf.NewAutoexpand(16)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseDDisconnect(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestDReleaseReleaseRoundTrip(t *testing.T) {
	in := &DReleaseRelease{DisconnectCause: DisconnectCauseCongestion}
	buf := bitbuf.NewAutoexpand(16)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseDReleaseRelease(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestDConnectRoundTrip(t *testing.T) {
	in := &DConnect{
		CallIdentifier:          77,
		CallTimeOut:             CallTimeoutT1m,
		CallTimeOutSetupPhase:   true,
		HookMethodSelection:     true,
		SimplexDuplexSelection:  false,
		TransmissionGrant:       TransmissionGrantGranted,
		TransmissionRequestPermission: true,
		CallPriority:            3,
		BasicServiceInformation: bsi(),
	}
	buf := bitbuf.NewAutoexpand(64)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseDConnect(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestUSetupRoundTripMinimal(t *testing.T) {
	in := &USetup{
		HookMethodSelection:    true,
		SimplexDuplexSelection: false,
		BasicServiceInformation: bsi(),
		CallPriority:           1,
	}
	buf := bitbuf.NewAutoexpand(32)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseUSetup(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestUSetupRoundTripWithCalledParty(t *testing.T) {
	ssi := uint64(123456)
	in := &USetup{
		BasicServiceInformation:    bsi(),
		CalledPartyAddressSsi:      &ssi,
	}
	buf := bitbuf.NewAutoexpand(64)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseUSetup(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestUAlertRoundTrip(t *testing.T) {
	in := &UAlert{}
	buf := bitbuf.NewAutoexpand(8)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseUAlert(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestUDisconnectRoundTrip(t *testing.T) {
	in := &UDisconnect{DisconnectCause: DisconnectCauseUserRequest}
	buf := bitbuf.NewAutoexpand(16)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseUDisconnect(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestUReleaseRoundTrip(t *testing.T) {
	in := &URelease{DisconnectCause: DisconnectCauseUserRequest}
	buf := bitbuf.NewAutoexpand(16)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseURelease(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestCallRestoreRoundTrip(t *testing.T) {
	u := &UCallRestore{CallIdentifier: 99, CallOwnership: true}
	buf := bitbuf.NewAutoexpand(32)
	u.Write(buf)
	buf.Seek(0)
	gotU, err := ParseUCallRestore(buf)
	require.NoError(t, err)
	require.Equal(t, u, gotU)

	d := &DCallRestore{CallIdentifier: 99, Restored: true, TransmissionGrant: TransmissionGrantGranted}
	buf2 := bitbuf.NewAutoexpand(32)
	d.Write(buf2)
	buf2.Seek(0)
	gotD, err := ParseDCallRestore(buf2)
	require.NoError(t, err)
	require.Equal(t, d, gotD)
}

func TestDCallProceedingRoundTrip(t *testing.T) {
	in := &DCallProceeding{CallIdentifier: 5, BasicServiceInformation: bsi()}
	buf := bitbuf.NewAutoexpand(32)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseDCallProceeding(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestDFunctionNotSupportedRoundTrip(t *testing.T) {
	in := &DFunctionNotSupported{Protocol1: uint8(PduTypeUSetup.Raw()), Protocol2: 0}
	buf := bitbuf.NewAutoexpand(16)
	in.Write(buf)
	buf.Seek(0)
	got, err := ParseDFunctionNotSupported(buf)
	require.NoError(t, err)
	require.Equal(t, in, got)
}
