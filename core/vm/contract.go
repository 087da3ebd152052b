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

	lru "github.com/hashicorp/golang-lru"

	"github.com/coreweave-labs/evmcore/common"
	"github.com/coreweave-labs/evmcore/crypto"
)

func hashCode(code []byte) common.Hash {
	return crypto.Keccak256Hash(code)
}

// jumpdestCache memoizes the valid-JUMPDEST bitset per code hash so a
// process executing many calls into the same contract only scans its code
// once. Bounded (unlike a plain map) so a long-running host that sees many
// distinct contracts doesn't grow this without limit.
var jumpdestCache, _ = lru.New(4096)

// jumpdests computes a bitset with one bit set per PC that is a JUMPDEST,
// skipping over PUSH immediate-data bytes so they are never mistaken for
// opcodes.
func jumpdests(code []byte) []byte {
	m := make([]byte, len(code)/8+1)
	for pc := uint64(0); pc < uint64(len(code)); pc++ {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			m[pc/8] |= 1 << (pc % 8)
		} else if op.IsPush() {
			pc += uint64(op) - uint64(PUSH1) + 1
		}
	}
	return m
}

// validJumpdest reports whether code has a JUMPDEST at dest, using the
// memoized bitset for codehash.
func validJumpdest(codehash common.Hash, code []byte, dest *big.Int) bool {
	udest := dest.Uint64()
	if dest.BitLen() >= 63 || udest >= uint64(len(code)) {
		return false
	}

	var bitset []byte
	if v, ok := jumpdestCache.Get(codehash); ok {
		bitset = v.([]byte)
	} else {
		bitset = jumpdests(code)
		jumpdestCache.Add(codehash, bitset)
	}
	return (bitset[udest/8] & (1 << (udest % 8))) != 0
}

// Contract is the execution environment for one call frame: its code,
// calldata, remaining gas, and the caller/value/address triple the running
// code sees.
type Contract struct {
	caller ContractRef
	self   ContractRef

	Code     []byte
	CodeHash common.Hash
	CodeAddr *common.Address
	Input    []byte

	Gas   *big.Int
	Price *big.Int
	value *big.Int

	Args []byte

	DelegateCall bool
}

// NewContract returns a new frame for code running as self, called by
// caller, with value and gas as given. The frame does not own input; the
// interpreter sets it via the Run call.
func NewContract(caller, self ContractRef, value, gas, price *big.Int) *Contract {
	c := &Contract{caller: caller, self: self, Args: nil}

	if parent, ok := caller.(*Contract); ok {
		c.DelegateCall = parent.DelegateCall
	}
	c.Gas = gas
	c.Price = price
	c.value = value

	return c
}

func (c *Contract) AsDelegate() *Contract {
	c.DelegateCall = true
	// Delegate calls keep the value and caller from the parent frame.
	if parent, ok := c.caller.(*Contract); ok {
		c.caller = parent.caller
		c.value = parent.value
	}
	return c
}

// SetCallCode attaches the code to run (and its hash, used for jumpdest
// memoization) to an already-constructed frame.
func (c *Contract) SetCallCode(addr *common.Address, hash common.Hash, code []byte) {
	c.Code = code
	c.CodeHash = hash
	c.CodeAddr = addr
}

// GetOp returns the opcode byte at n, or STOP (0x00) past the end of code
// -- every EVM program is implicitly padded with STOPs.
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

func (c *Contract) isValidJump(pc *uint64, dest *big.Int) bool {
	codehash := c.CodeHash
	if codehash == (common.Hash{}) {
		codehash = hashCode(c.Code)
	}
	return validJumpdest(codehash, c.Code, dest)
}

// UseGas attempts to deduct gas; it reports whether the frame had enough.
func (c *Contract) UseGas(gas *big.Int) bool {
	return useGas(c.Gas, gas)
}

// ReturnGas hands back unused gas, used when a sub-call returns (its
// unused gas is refunded to this frame) or when a CREATE undershoots the
// gas it was given.
func (c *Contract) ReturnGas(gas *big.Int) {
	c.Gas.Add(c.Gas, gas)
}

func (c *Contract) Address() common.Address {
	return c.self.Address()
}

func (c *Contract) Caller() common.Address {
	return c.caller.Address()
}

func (c *Contract) Value() *big.Int {
	return c.value
}
