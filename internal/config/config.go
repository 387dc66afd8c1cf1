// SPDX-License-Identifier: AGPL-3.0-or-later
// DMRHub - Run a DMR network server in a single binary
// Copyright (C) 2023-2024 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// The source code is available at <https://github.com/USA-RedDragon/DMRHub>

// Package config loads and validates the stack's TOML configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const ConfigVersion = "0.5"

// SoapySdr carries the radio-frontend parameters handed to SoapySDR when
// PhyIO.Backend is SoapySdr.
type SoapySdr struct {
	RxFreq uint64  `toml:"rx_freq"`
	TxFreq uint64  `toml:"tx_freq"`
	PPMErr float64 `toml:"ppm_err"`

	IocfgUsrpB2xx string `toml:"iocfg_usrpb2xx,omitempty"`
	IocfgLimeSdr  string `toml:"iocfg_limesdr,omitempty"`
	IocfgSxceiver string `toml:"iocfg_sxceiver,omitempty"`
}

// PhyIO selects and configures the PHY device backend.
type PhyIO struct {
	Backend PhyBackend `toml:"backend"`

	DlTxFile    string `toml:"dl_tx_file,omitempty"`
	UlRxFile    string `toml:"ul_rx_file,omitempty"`
	UlInputFile string `toml:"ul_input_file,omitempty"`
	DlInputFile string `toml:"dl_input_file,omitempty"`

	SoapySdr *SoapySdr `toml:"soapysdr,omitempty"`
}

// NetInfo carries the network identity that feeds the LMAC scrambling
// code and appears in SYSINFO/SYNC broadcasts.
type NetInfo struct {
	Mcc uint16 `toml:"mcc"`
	Mnc uint16 `toml:"mnc"`
}

// CellInfo carries the cell's radio and identity parameters.
type CellInfo struct {
	MainCarrier         uint16  `toml:"main_carrier"`
	FreqBand            uint8   `toml:"freq_band"`
	FreqOffset          int16   `toml:"freq_offset"`
	DuplexSpacing       uint8   `toml:"duplex_spacing"`
	ReverseOperation    bool    `toml:"reverse_operation"`
	CustomDuplexSpacing *uint32 `toml:"custom_duplex_spacing,omitempty"`
	LocationArea        uint16  `toml:"location_area"`
	ColourCode          uint8   `toml:"colour_code"`
}

// Brew configures the backhaul link to the call-routing backend.
type Brew struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr,omitempty"`
	// Transport selects the wire between this stack and the backend;
	// "tcp" carries Brew frames over a reliable stream, "quic" splits
	// signalling and voice across QUIC's reliable/unreliable channels.
	Transport      string `toml:"transport,omitempty"`
	ConnectTimeout int    `toml:"connect_timeout_seconds,omitempty"`
}

// Config is the root of the TOML configuration file.
type Config struct {
	ConfigVersion string    `toml:"config_version"`
	StackMode     StackMode `toml:"stack_mode"`
	DebugLog      bool      `toml:"debug_log,omitempty"`
	LogLevel      LogLevel  `toml:"log_level"`

	PhyIO    PhyIO    `toml:"phy_io"`
	NetInfo  NetInfo  `toml:"net_info"`
	CellInfo CellInfo `toml:"cell_info"`
	Brew     Brew     `toml:"brew,omitempty"`
}

// bandBaseHz and duplexSpacingHz are a representative TETRA frequency
// band table (ETSI EN 300 392-2 clause 5): each band_id selects a base
// downlink frequency, and each duplex_spacing_id selects the uplink
// offset below it. Channels are spaced 25 kHz apart and freq_offset
// steps the carrier by 6.25 kHz sub-channels.
var bandBaseHz = map[uint8]uint64{
	0: 380_000_000,
	1: 390_000_000,
	2: 410_000_000,
	3: 420_000_000,
	4: 450_000_000,
	5: 870_000_000,
	6: 915_000_000,
}

var duplexSpacingHz = map[uint8]uint64{
	0: 1_600_000,
	1: 10_000_000,
	2: 4_500_000,
	3: 4_400_000,
	4: 5_000_000,
	5: 4_900_000,
	6: 3_800_000,
	7: 0, // custom: see CustomDuplexSpacing
}

// Frequencies computes the downlink and uplink carrier frequencies in Hz
// from the cell's band/carrier/offset/duplex-spacing parameters, so the
// result can be cross-checked against the SDR's configured frequencies.
// If ReverseOperation is set, the
// roles of the computed pair are swapped (mobile transmits on the
// nominal downlink channel), matching ETSI's reverse-operation cell
// convention.
func (c CellInfo) Frequencies() (dl, ul uint64) {
	base, ok := bandBaseHz[c.FreqBand]
	if !ok {
		base = bandBaseHz[0]
	}

	const channelSpacingHz = 25_000
	const offsetStepHz = 6_250

	dlSigned := int64(base) + int64(c.MainCarrier)*channelSpacingHz + int64(c.FreqOffset)*offsetStepHz
	dl = uint64(dlSigned)

	spacing, ok := duplexSpacingHz[c.DuplexSpacing]
	if !ok || (c.DuplexSpacing == 7 && c.CustomDuplexSpacing != nil) {
		if c.CustomDuplexSpacing != nil {
			spacing = uint64(*c.CustomDuplexSpacing)
		}
	}

	ul = dl - spacing
	if c.ReverseOperation {
		dl, ul = ul, dl
	}
	return dl, ul
}

// Load reads and strictly decodes the TOML file at path: any key not
// recognised by Config (or its nested structs) is a hard parse error,
// matching the original's HashMap-based unknown-field rejection.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &c, nil
}
