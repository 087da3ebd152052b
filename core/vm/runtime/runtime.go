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

// Package runtime is a convenience harness for running a single piece of
// EVM code outside of any block or transaction: cmd/evm's --code path, and
// this package's own tests, set up an EVM through Execute
// rather than wiring NewContract/NewEVM by hand.
package runtime

import (
	"math/big"
	"time"

	"github.com/coreweave-labs/evmcore/common"
	"github.com/coreweave-labs/evmcore/core/state"
	"github.com/coreweave-labs/evmcore/core/vm"
)

// Config holds every knob Execute exposes; a zero value runs with an
// all-forks-active ruleset, a fresh MemoryStateDB, a 4.7M block gas limit,
// and no tracer.
type Config struct {
	Origin      common.Address
	Coinbase    common.Address
	BlockNumber *big.Int
	Time        *big.Int
	Difficulty  *big.Int
	GasLimit    *big.Int
	GasPrice    *big.Int
	Value       *big.Int
	Debug       bool
	Tracer      vm.Tracer
	Metrics     bool
	// State is the world-state collaborator to run against; any
	// vm.Database works, so a caller can hand in a LevelDBStateDB to
	// run against a persistent store instead of the default in-memory
	// one.
	State     vm.Database
	GetHashFn func(uint64) common.Hash
}

// ruleSet is the all-forks-enabled default RuleSet: every fork the jump
// table recognizes is live from block zero, and gas prices match the
// Atlantis-era GasTable, the teacher's own later schedule.
type ruleSet struct{}

func (ruleSet) IsHomestead(*big.Int) bool { return true }
func (ruleSet) IsAtlantis(*big.Int) bool  { return true }
func (ruleSet) GasTable(*big.Int) *vm.GasTable {
	return &vm.GasTable{
		ExtcodeSize:     big.NewInt(700),
		ExtcodeCopy:     big.NewInt(700),
		Balance:         big.NewInt(400),
		SLoad:           big.NewInt(200),
		Calls:           big.NewInt(700),
		Suicide:         big.NewInt(5000),
		ExpByte:         big.NewInt(10),
		CreateBySuicide: big.NewInt(25000),
	}
}

func setDefaults(cfg *Config) {
	if cfg.BlockNumber == nil {
		cfg.BlockNumber = new(big.Int)
	}
	if cfg.Time == nil {
		cfg.Time = big.NewInt(time.Now().Unix())
	}
	if cfg.Difficulty == nil {
		cfg.Difficulty = new(big.Int)
	}
	if cfg.GasLimit == nil {
		cfg.GasLimit = big.NewInt(4712388)
	}
	if cfg.GasPrice == nil {
		cfg.GasPrice = new(big.Int)
	}
	if cfg.Value == nil {
		cfg.Value = new(big.Int)
	}
	if cfg.State == nil {
		cfg.State = state.NewMemoryStateDB()
	}
	if cfg.GetHashFn == nil {
		cfg.GetHashFn = placeholderBlockHash
	}
}

// placeholderBlockHash stands in for a real chain's block-hash lookup:
// deterministic so a harness run is reproducible. None of this package's
// own scenarios touch BLOCKHASH; a caller wiring in a real chain should
// set cfg.GetHashFn instead.
func placeholderBlockHash(n uint64) common.Hash {
	var h common.Hash
	for i := 0; i < 8; i++ {
		h[common.HashLength-1-i] = byte(n >> (8 * uint(i)))
	}
	return h
}

// Execute runs code with input against cfg (defaulted via setDefaults) and
// returns its return data, the gas left over, and any execution error.
// cfg.GasLimit is the gas given to the call; OutOfGasError and the other
// exceptional halts come back as err with leftover gas reported as zero.
// vm.ErrRevert is the
// one error that is not an exceptional halt: a REVERT keeps whatever gas
// the frame had left, so Execute reports it alongside the error instead of
// zeroing it out.
func Execute(code, input []byte, cfg *Config) (ret []byte, leftOverGas uint64, err error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	var (
		address = common.Address{}
		caller  = vm.AccountRef(cfg.Origin)
	)
	if !cfg.State.Exist(address) {
		cfg.State.CreateAccount(address)
	}
	cfg.State.SetCode(address, code)

	evm := vm.NewEVM(vm.Context{
		Origin:      cfg.Origin,
		GasPrice:    cfg.GasPrice,
		Coinbase:    cfg.Coinbase,
		BlockNumber: cfg.BlockNumber,
		Time:        cfg.Time,
		Difficulty:  cfg.Difficulty,
		GasLimit:    cfg.GasLimit,
		GetHash:     cfg.GetHashFn,
	}, cfg.State, ruleSet{}, vm.Config{Tracer: cfg.Tracer, Metrics: cfg.Metrics})

	gas := new(big.Int).Set(cfg.GasLimit)
	out, callErr := evm.Call(caller, address, input, gas, cfg.GasPrice, cfg.Value)
	if callErr != nil && callErr != vm.ErrRevert {
		// An exceptional halt forfeits whatever gas remained; only a
		// Normal-Halt or a Revert returns leftover gas to the caller.
		return out, 0, callErr
	}
	return out, gas.Uint64(), callErr
}
