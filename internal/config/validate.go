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

package config

import "errors"

var (
	// ErrInvalidConfigVersion indicates the config_version field is missing or unsupported.
	ErrInvalidConfigVersion = errors.New("invalid or missing config_version, expected \"0.5\"")
	// ErrInvalidStackMode indicates stack_mode is not one of Bs, Ms, Mon.
	ErrInvalidStackMode = errors.New("invalid stack_mode provided, must be one of Bs, Ms, Mon")
	// ErrInvalidLogLevel indicates log_level is not a recognised level.
	ErrInvalidLogLevel = errors.New("invalid log_level provided")
	// ErrInvalidPhyBackend indicates phy_io.backend is not one of None, SoapySdr.
	ErrInvalidPhyBackend = errors.New("invalid phy_io.backend provided, must be one of None, SoapySdr")
	// ErrSoapySdrConfigRequired indicates phy_io.soapysdr is missing when backend is SoapySdr.
	ErrSoapySdrConfigRequired = errors.New("phy_io.soapysdr is required when phy_io.backend is SoapySdr")
	// ErrSoapySdrIocfgCount indicates zero or more than one iocfg_* field was set.
	ErrSoapySdrIocfgCount = errors.New("exactly one of soapysdr.iocfg_usrpb2xx, iocfg_limesdr, iocfg_sxceiver must be set")
	// ErrInvalidMcc indicates net_info.mcc is out of its 10-bit range.
	ErrInvalidMcc = errors.New("net_info.mcc must fit in 10 bits (0-1023)")
	// ErrInvalidMnc indicates net_info.mnc is out of its 14-bit range.
	ErrInvalidMnc = errors.New("net_info.mnc must fit in 14 bits (0-16383)")
	// ErrInvalidFreqBand indicates cell_info.freq_band is out of its 4-bit range.
	ErrInvalidFreqBand = errors.New("cell_info.freq_band must fit in 4 bits (0-15)")
	// ErrInvalidDuplexSpacing indicates cell_info.duplex_spacing is out of its 3-bit range.
	ErrInvalidDuplexSpacing = errors.New("cell_info.duplex_spacing must fit in 3 bits (0-7)")
	// ErrFrequencyMismatch indicates the DL/UL frequencies computed from cell_info
	// do not match the frequencies configured for the SDR.
	ErrFrequencyMismatch = errors.New("cell_info frequency parameters do not match phy_io.soapysdr rx_freq/tx_freq")
	// ErrInvalidBrewTransport indicates brew.transport is not tcp or quic.
	ErrInvalidBrewTransport = errors.New("invalid brew.transport provided, must be tcp or quic")
	// ErrBrewAddrRequired indicates brew.addr is missing while brew.enabled is true.
	ErrBrewAddrRequired = errors.New("brew.addr is required when brew.enabled is true")
)

func (p PhyIO) Validate() error {
	if p.Backend != PhyBackendNone && p.Backend != PhyBackendSoapySdr {
		return ErrInvalidPhyBackend
	}
	if p.Backend == PhyBackendSoapySdr {
		if p.SoapySdr == nil {
			return ErrSoapySdrConfigRequired
		}
		return p.SoapySdr.Validate()
	}
	return nil
}

func (s SoapySdr) Validate() error {
	count := 0
	if s.IocfgUsrpB2xx != "" {
		count++
	}
	if s.IocfgLimeSdr != "" {
		count++
	}
	if s.IocfgSxceiver != "" {
		count++
	}
	if count != 1 {
		return ErrSoapySdrIocfgCount
	}
	return nil
}

func (n NetInfo) Validate() error {
	const mccMax = 1 << 10
	const mncMax = 1 << 14
	if n.Mcc >= mccMax {
		return ErrInvalidMcc
	}
	if n.Mnc >= mncMax {
		return ErrInvalidMnc
	}
	return nil
}

func (c CellInfo) Validate() error {
	const freqBandMax = 1 << 4
	const duplexSpacingMax = 1 << 3
	if c.FreqBand >= freqBandMax {
		return ErrInvalidFreqBand
	}
	if c.DuplexSpacing >= duplexSpacingMax {
		return ErrInvalidDuplexSpacing
	}
	return nil
}

func (b Brew) Validate() error {
	if !b.Enabled {
		return nil
	}
	if b.Addr == "" {
		return ErrBrewAddrRequired
	}
	if b.Transport != "" && b.Transport != "tcp" && b.Transport != "quic" {
		return ErrInvalidBrewTransport
	}
	return nil
}

// Validate checks the config for internal consistency, including the
// frequency cross-check: the DL/UL frequencies
// computed from (freq_band, main_carrier, freq_offset, duplex_spacing)
// must equal those configured for the SDR.
func (c Config) Validate() error {
	if c.ConfigVersion != ConfigVersion {
		return ErrInvalidConfigVersion
	}
	if c.StackMode != StackModeBs && c.StackMode != StackModeMs && c.StackMode != StackModeMon {
		return ErrInvalidStackMode
	}
	if c.LogLevel != LogLevelDebug && c.LogLevel != LogLevelInfo &&
		c.LogLevel != LogLevelWarn && c.LogLevel != LogLevelError {
		return ErrInvalidLogLevel
	}

	if err := c.NetInfo.Validate(); err != nil {
		return err
	}
	if err := c.CellInfo.Validate(); err != nil {
		return err
	}
	if err := c.PhyIO.Validate(); err != nil {
		return err
	}
	if err := c.Brew.Validate(); err != nil {
		return err
	}

	if c.PhyIO.Backend == PhyBackendSoapySdr {
		dl, ul := c.CellInfo.Frequencies()
		if dl != c.PhyIO.SoapySdr.RxFreq || ul != c.PhyIO.SoapySdr.TxFreq {
			return ErrFrequencyMismatch
		}
	}

	return nil
}
