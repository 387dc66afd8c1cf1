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

// LogLevel represents the logging level for the application.
type LogLevel string

const (
	// LogLevelDebug is the debug logging level, providing detailed information.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the informational logging level, providing general information.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is the warning logging level, indicating potential issues.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is the error logging level, indicating serious issues.
	LogLevelError LogLevel = "error"
)

// StackMode selects whether this process behaves as a base station, a
// mobile station, or a passive monitor.
type StackMode string

const (
	// StackModeBs runs the full base-station entity set: UMAC scheduler,
	// SYSINFO/SYNC broadcast, CMCE circuit allocation.
	StackModeBs StackMode = "Bs"
	// StackModeMs runs the mobile-station entity set: cell search, random
	// access, registration.
	StackModeMs StackMode = "Ms"
	// StackModeMon runs a passive receive-only monitor.
	StackModeMon StackMode = "Mon"
)

// PhyBackend selects which PHY device implementation the launcher wires up.
type PhyBackend string

const (
	// PhyBackendNone runs with no physical radio; useful for file-replay
	// and test-harness operation.
	PhyBackendNone PhyBackend = "None"
	// PhyBackendSoapySdr drives an SDR through SoapySDR.
	PhyBackendSoapySdr PhyBackend = "SoapySdr"
)
