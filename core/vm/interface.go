// Copyright 2014 The go-ethereum Authors
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
	"math/big"

	"github.com/coreweave-labs/evmcore/common"
)

// Type distinguishes EVM implementations a host might swap between; this
// module ships exactly one.
type Type byte

const (
	StdVmTy Type = iota
	MaxVmTy
)

// RuleSet reports which consensus-rule fork is active for a block number,
// gating both opcode availability (jump_table.go) and gas prices.
type RuleSet interface {
	IsHomestead(*big.Int) bool
	IsAtlantis(*big.Int) bool // REVERT, STATICCALL, RETURNDATA*
	GasTable(*big.Int) *GasTable
}

// GasTable holds the per-fork dynamic gas prices not baked into the
// static cost tiers in gas.go's _baseCheck table.
type GasTable struct {
	ExtcodeSize *big.Int
	ExtcodeCopy *big.Int
	Balance     *big.Int
	SLoad       *big.Int
	Calls       *big.Int
	Suicide     *big.Int
	ExpByte     *big.Int

	// CreateBySuicide is charged when a SUICIDE's beneficiary account does
	// not yet exist. Nil means not charged (pre-EIP150).
	CreateBySuicide *big.Int
}

// IsEmpty reports whether the table is the unset zero value (ExtcodeSize is
// nil).
func (g *GasTable) IsEmpty() bool {
	return g.ExtcodeSize == nil
}

// Database is the world-state collaborator the interpreter calls out to.
// It never appears outside this package's interface; a host fills this
// seam with its own trie/journal implementation (core/state does, for
// reference).
type Database interface {
	GetAccount(common.Address) Account
	CreateAccount(common.Address) Account

	AddBalance(common.Address, *big.Int)
	GetBalance(common.Address) *big.Int

	GetNonce(common.Address) uint64
	SetNonce(common.Address, uint64)

	GetCodeHash(common.Address) common.Hash
	GetCodeSize(common.Address) int
	GetCode(common.Address) []byte
	SetCode(common.Address, []byte)

	AddRefund(*big.Int)
	GetRefund() *big.Int

	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	AddLog(*Log)

	Suicide(common.Address) bool
	HasSuicided(common.Address) bool

	// Exist reports whether the given account exists in state, including
	// suicided accounts within the current transaction.
	Exist(common.Address) bool
	// Empty reports whether an account is, per EIP-161, empty (zero
	// balance, zero nonce, no code).
	Empty(common.Address) bool

	Snapshot() int
	RevertToSnapshot(int)
}

// Account represents a contract or basic externally-owned account.
type Account interface {
	SubBalance(amount *big.Int)
	AddBalance(amount *big.Int)
	SetBalance(*big.Int)
	SetNonce(uint64)
	Balance() *big.Int
	Address() common.Address
	ReturnGas(*big.Int, *big.Int)
	SetCode(common.Hash, []byte)
	ForEachStorage(cb func(key, value common.Hash) bool)
	Value() *big.Int
}

// Environment is everything an opcode implementation (instructions.go) or
// the dynamic gas calculator (interpreter.go's calculateGasAndSize) needs from the
// world outside the current frame. *EVM is the only implementation.
type Environment interface {
	RuleSet() RuleSet
	Db() Database

	SnapshotDatabase() int
	RevertToSnapshot(int)

	Origin() common.Address
	BlockNumber() *big.Int
	GetHash(uint64) common.Hash
	Coinbase() common.Address
	Time() *big.Int
	Difficulty() *big.Int
	GasLimit() *big.Int

	Depth() int
	SetDepth(int)

	AddLog(*Log)
	ReturnData() []byte

	Call(me ContractRef, addr common.Address, data []byte, gas, price, value *big.Int) ([]byte, error)
	CallCode(me ContractRef, addr common.Address, data []byte, gas, price, value *big.Int) ([]byte, error)
	DelegateCall(me ContractRef, addr common.Address, data []byte, gas, price *big.Int) ([]byte, error)
	StaticCall(me ContractRef, addr common.Address, data []byte, gas *big.Int) ([]byte, error)
	Create(me ContractRef, data []byte, gas, price, value *big.Int) ([]byte, common.Address, error)

	VmType() Type
}

// ContractRef is anything that can stand in as a call's message target or
// caller. *Contract implements it; so does AccountRef for frameless
// externally-owned-account callers (e.g. the outermost call of a
// transaction).
type ContractRef interface {
	Address() common.Address
}

// AccountRef is a lightweight ContractRef for addresses with no running
// Contract behind them.
type AccountRef common.Address

func (ar AccountRef) Address() common.Address { return common.Address(ar) }
