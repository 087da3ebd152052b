// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"github.com/rcrowley/go-metrics"
)

// evmReg is a private registry rather than metrics.DefaultRegistry so a
// host embedding this package doesn't have its own counters polluted by
// ours when Config.Metrics is off and these never increment.
var evmReg = metrics.NewRegistry()

var (
	metricSteps   = metrics.NewRegisteredCounter("evm/steps", evmReg)
	metricGasUsed = metrics.NewRegisteredCounter("evm/gas/used", evmReg)
	metricOOG     = metrics.NewRegisteredCounter("evm/oog", evmReg)
)

// recordStep is called once per opcode when Config.Metrics is set.
func recordStep(gasCost int64) {
	metricSteps.Inc(1)
	metricGasUsed.Inc(gasCost)
}

// recordOOG is called whenever a frame runs out of gas.
func recordOOG() {
	metricOOG.Inc(1)
}

// MetricsSnapshot is a point-in-time read of the counters above, for a
// host that wants to report them without importing go-metrics itself.
type MetricsSnapshot struct {
	Steps   int64
	GasUsed int64
	OOG     int64
}

// Metrics returns the current counter values.
func Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		Steps:   metricSteps.Count(),
		GasUsed: metricGasUsed.Count(),
		OOG:     metricOOG.Count(),
	}
}
