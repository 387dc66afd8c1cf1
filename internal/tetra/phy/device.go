package phy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnsupportedBackend is returned by NewSoapySdrDevice: no SDR driver
// binding is wired into this build, only file-based replay/capture.
var ErrUnsupportedBackend = errors.New("phy: soapysdr backend not wired into this build")

// FileDevice is the phy_io.backend = "None" Device: instead of talking to
// real RF hardware it optionally records every downlink slot it is
// handed to dlTxFile and optionally replays recorded uplink bursts from
// ulInputFile, one RxSlot per call, looping once exhausted. With neither
// file configured it reports silence (no detections) every slot, which
// is enough to drive the tick loop end-to-end without hardware.
type FileDevice struct {
	dlTx *bufio.Writer
	dlTxFile *os.File

	ulIn     *bufio.Reader
	ulInFile *os.File
}

// NewFileDevice opens dlTxFile for append (if non-empty) and ulInputFile
// for read (if non-empty).
func NewFileDevice(dlTxFile, ulInputFile string) (*FileDevice, error) {
	d := &FileDevice{}

	if dlTxFile != "" {
		f, err := os.OpenFile(dlTxFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("phy: opening dl_tx_file: %w", err)
		}
		d.dlTxFile = f
		d.dlTx = bufio.NewWriter(f)
	}

	if ulInputFile != "" {
		f, err := os.Open(ulInputFile)
		if err != nil {
			return nil, fmt.Errorf("phy: opening ul_input_file: %w", err)
		}
		d.ulInFile = f
		d.ulIn = bufio.NewReader(f)
	}

	return d, nil
}

// RxTxTimeslot implements Device: it records txSlots (if configured) and
// replays one recorded uplink burst per call (if configured).
func (d *FileDevice) RxTxTimeslot(txSlots [][]byte) ([]RxSlot, error) {
	if d.dlTx != nil {
		for _, slot := range txSlots {
			if _, err := d.dlTx.Write(slot); err != nil {
				return nil, fmt.Errorf("phy: writing dl_tx_file: %w", err)
			}
		}
		if err := d.dlTx.Flush(); err != nil {
			return nil, fmt.Errorf("phy: flushing dl_tx_file: %w", err)
		}
	}

	if d.ulIn == nil {
		return nil, nil
	}

	bits := make([]byte, TimeslotType4Bits)
	n, err := d.ulIn.Read(bits)
	if n == 0 && errors.Is(err, io.EOF) {
		if _, serr := d.ulInFile.Seek(0, io.SeekStart); serr != nil {
			return nil, nil
		}
		d.ulIn.Reset(d.ulInFile)
		n, err = d.ulIn.Read(bits)
	}
	if n == 0 || err != nil {
		return nil, nil
	}
	return []RxSlot{{TrainType: TrainNormal, Bits: bits[:n]}}, nil
}

// Close releases any open files.
func (d *FileDevice) Close() error {
	if d.dlTxFile != nil {
		if err := d.dlTxFile.Close(); err != nil {
			return err
		}
	}
	if d.ulInFile != nil {
		return d.ulInFile.Close()
	}
	return nil
}

// NewSoapySdrDevice is a placeholder for the phy_io.backend = "SoapySdr"
// path: no SoapySDR driver binding is available to this build, so it
// always fails fast rather than silently falling back to file replay.
func NewSoapySdrDevice() (Device, error) {
	return nil, ErrUnsupportedBackend
}
