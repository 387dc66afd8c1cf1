// SPDX-License-Identifier: AGPL-3.0-or-later
// DMRHub - Run a DMR network server in a single binary
// Copyright (C) 2023-2026 Jacob McSwain
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

package config_test

import (
	"errors"
	"testing"

	"github.com/USA-RedDragon/configulator"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/config"
)

func makeValidConfig() config.Config {
	return config.Config{
		ConfigVersion: config.ConfigVersion,
		StackMode:     config.StackModeBs,
		LogLevel:      config.LogLevelInfo,
		PhyIO: config.PhyIO{
			Backend: config.PhyBackendNone,
		},
		NetInfo: config.NetInfo{Mcc: 420, Mnc: 555},
		CellInfo: config.CellInfo{
			MainCarrier:   1057,
			FreqBand:      0,
			DuplexSpacing: 0,
			ColourCode:    9,
		},
	}
}

// --- PhyIO validation ---

func TestPhyIOValidateInvalidBackend(t *testing.T) {
	t.Parallel()
	p := config.PhyIO{Backend: "bogus"}
	if !errors.Is(p.Validate(), config.ErrInvalidPhyBackend) {
		t.Errorf("expected ErrInvalidPhyBackend, got %v", p.Validate())
	}
}

func TestPhyIOValidateSoapySdrRequiresBlock(t *testing.T) {
	t.Parallel()
	p := config.PhyIO{Backend: config.PhyBackendSoapySdr}
	if !errors.Is(p.Validate(), config.ErrSoapySdrConfigRequired) {
		t.Errorf("expected ErrSoapySdrConfigRequired, got %v", p.Validate())
	}
}

func TestSoapySdrValidateRequiresExactlyOneIocfg(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  config.SoapySdr
		ok   bool
	}{
		{"none set", config.SoapySdr{}, false},
		{"one set", config.SoapySdr{IocfgLimeSdr: "driver=lime"}, true},
		{"two set", config.SoapySdr{IocfgLimeSdr: "driver=lime", IocfgUsrpB2xx: "driver=uhd"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected nil error, got %v", err)
			}
			if !tt.ok && !errors.Is(err, config.ErrSoapySdrIocfgCount) {
				t.Errorf("expected ErrSoapySdrIocfgCount, got %v", err)
			}
		})
	}
}

// --- NetInfo / CellInfo validation ---

func TestNetInfoValidateOutOfRange(t *testing.T) {
	t.Parallel()
	if !errors.Is(config.NetInfo{Mcc: 1024}.Validate(), config.ErrInvalidMcc) {
		t.Error("expected ErrInvalidMcc for a mcc above 10 bits")
	}
	if !errors.Is(config.NetInfo{Mnc: 16384}.Validate(), config.ErrInvalidMnc) {
		t.Error("expected ErrInvalidMnc for a mnc above 14 bits")
	}
}

func TestCellInfoValidateOutOfRange(t *testing.T) {
	t.Parallel()
	if !errors.Is(config.CellInfo{FreqBand: 16}.Validate(), config.ErrInvalidFreqBand) {
		t.Error("expected ErrInvalidFreqBand for a band above 4 bits")
	}
	if !errors.Is(config.CellInfo{DuplexSpacing: 8}.Validate(), config.ErrInvalidDuplexSpacing) {
		t.Error("expected ErrInvalidDuplexSpacing for a spacing above 3 bits")
	}
}

// --- Brew validation ---

func TestBrewValidateDisabled(t *testing.T) {
	t.Parallel()
	if err := (config.Brew{Enabled: false}).Validate(); err != nil {
		t.Errorf("expected nil error for disabled brew, got %v", err)
	}
}

func TestBrewValidateEnabledRequiresAddr(t *testing.T) {
	t.Parallel()
	if !errors.Is((config.Brew{Enabled: true}).Validate(), config.ErrBrewAddrRequired) {
		t.Error("expected ErrBrewAddrRequired")
	}
}

func TestBrewValidateInvalidTransport(t *testing.T) {
	t.Parallel()
	b := config.Brew{Enabled: true, Addr: "brew.example.com:8080", Transport: "carrier-pigeon"}
	if !errors.Is(b.Validate(), config.ErrInvalidBrewTransport) {
		t.Error("expected ErrInvalidBrewTransport")
	}
}

// --- Full config validation ---

func TestConfigValidateValid(t *testing.T) {
	t.Parallel()
	c := makeValidConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestConfigValidateBadVersion(t *testing.T) {
	t.Parallel()
	c := makeValidConfig()
	c.ConfigVersion = "0.1"
	if !errors.Is(c.Validate(), config.ErrInvalidConfigVersion) {
		t.Error("expected ErrInvalidConfigVersion")
	}
}

func TestConfigValidateBadStackMode(t *testing.T) {
	t.Parallel()
	c := makeValidConfig()
	c.StackMode = "Bogus"
	if !errors.Is(c.Validate(), config.ErrInvalidStackMode) {
		t.Error("expected ErrInvalidStackMode")
	}
}

func TestConfigValidateFrequencyMismatch(t *testing.T) {
	t.Parallel()
	c := makeValidConfig()
	c.PhyIO = config.PhyIO{
		Backend: config.PhyBackendSoapySdr,
		SoapySdr: &config.SoapySdr{
			RxFreq:        1,
			TxFreq:        1,
			IocfgLimeSdr:  "driver=lime",
		},
	}
	if !errors.Is(c.Validate(), config.ErrFrequencyMismatch) {
		t.Errorf("expected ErrFrequencyMismatch, got %v", c.Validate())
	}
}

func TestConfigValidateFrequencyMatch(t *testing.T) {
	t.Parallel()
	c := makeValidConfig()
	dl, ul := c.CellInfo.Frequencies()
	c.PhyIO = config.PhyIO{
		Backend: config.PhyBackendSoapySdr,
		SoapySdr: &config.SoapySdr{
			RxFreq:       dl,
			TxFreq:       ul,
			IocfgLimeSdr: "driver=lime",
		},
	}
	if err := c.Validate(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

// TestConfigDefaultIsZeroValue exercises configulator's generic default
// builder directly, since Config's defaults are otherwise only reached
// indirectly through file/env loading.
func TestConfigDefaultIsZeroValue(t *testing.T) {
	t.Parallel()
	c, err := configulator.New[config.Config]().Default()
	if err != nil {
		t.Fatalf("unexpected error building default config: %v", err)
	}
	if c.ConfigVersion != "" {
		t.Errorf("expected zero-value default, got config_version %q", c.ConfigVersion)
	}
}
