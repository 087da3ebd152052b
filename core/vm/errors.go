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

import "errors"

// Exceptional halts. Each one consumes all remaining gas in the frame and
// unwinds every state change the frame made.
var (
	OutOfGasError            = errors.New("out of gas")
	ErrStackUnderflow         = errors.New("stack underflow")
	ErrStackOverflow          = errors.New("stack limit reached 1024")
	ErrInvalidJumpDestination = errors.New("invalid jump destination")
	ErrInvalidOpCode          = errors.New("invalid opcode")
	ErrWriteProtection        = errors.New("write protection: state-modifying op in a read-only call")
	ErrDepth                  = errors.New("max call depth exceeded")
	ErrInsufficientBalance    = errors.New("insufficient balance for transfer")
	ErrContractAddressCollision = errors.New("contract address collision")
	ErrMaxCodeSizeExceeded    = errors.New("evm: max code size exceeded")

	// CodeStoreOutOfGasError fires when a CREATE's result code can't be
	// paid for at G_codedeposit per byte. Under Frontier rules this is
	// swallowed (the contract is created with empty code); Homestead
	// onward it is a hard failure of the CREATE (see opCreate).
	CodeStoreOutOfGasError = errors.New("contract creation code storage out of gas")

	// ErrRevert is REVERT: it is not an exceptional halt. The frame's
	// unused gas is preserved and the output is the revert reason.
	ErrRevert = errors.New("evm: execution reverted")
)
