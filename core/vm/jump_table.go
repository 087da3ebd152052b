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

import "math/big"

// operation is one opcode's dispatch metadata: the function the
// interpreter loop calls to run it, its mnemonic (for tracing and
// disassembly; dispatch itself always indexes by the raw OpCode byte,
// never this string), and its flags. Run consults halts, reverts, returns
// and writes to decide whether the frame should halt or roll back, return
// data should be overwritten, or the state DB may be written to; it does
// not read jumps, since it handles JUMP and JUMPI itself.
type operation struct {
	fn       instrFn
	mnemonic string
	valid    bool

	jumps   bool // indicates whether the program counter should not increment
	halts   bool // indicates whether the operation should halt further execution
	reverts bool // determines whether the operation reverts state (implicitly halts)
	returns bool // Indicates whether return data should be overwritten
	writes  bool // determines whether this a state modifying operation
}

// vmJumpTable is indexed directly by opcode byte; newJumpTable never
// leaves it sparse on purpose -- an unpopulated entry has valid == false
// and Run treats it as an invalid opcode.
type vmJumpTable [256]operation

// opEntry binds one opcode to the operation it runs under a given fork.
// Grouping entries this way, rather than assigning jumpTable[OP] = ...
// inline, keeps each fork's additions a self-contained list that
// newJumpTable folds onto the base table in order.
type opEntry struct {
	op   OpCode
	spec operation
}

func newJumpTable(ruleset RuleSet, blockNumber *big.Int) vmJumpTable {
	var table vmJumpTable
	apply(&table, frontierOps)

	// when initialising a new VM execution we must first check the
	// homestead changes.
	if ruleset.IsHomestead(blockNumber) {
		apply(&table, homesteadOps)
	}
	if ruleset.IsAtlantis(blockNumber) {
		apply(&table, atlantisOps)
	}
	return table
}

// apply stamps every entry's spec into table, filling in valid and
// mnemonic so callers building entries literals only need to spell out
// the fields that differ from an opcode's zero value.
func apply(table *vmJumpTable, entries []opEntry) {
	for _, e := range entries {
		spec := e.spec
		spec.valid = true
		spec.mnemonic = e.op.String()
		table[e.op] = spec
	}
}

// homesteadOps layers DELEGATECALL onto the Frontier base set.
var homesteadOps = []opEntry{
	{DELEGATECALL, operation{fn: opDelegateCall, returns: true}},
}

// atlantisOps layers REVERT, STATICCALL and the RETURNDATA* opcodes onto
// whatever base set is already in the table (the teacher's Byzantium
// equivalent).
var atlantisOps = []opEntry{
	{REVERT, operation{fn: opRevert, reverts: true, returns: true}},
	{RETURNDATASIZE, operation{fn: opReturnDataSize}},
	{RETURNDATACOPY, operation{fn: opReturnDataCopy}},
	{STATICCALL, operation{fn: opStaticCall, returns: true}},
}

// frontierOps is the opcode set live since the original ruleset: every
// arithmetic, comparison, bitwise, environment, memory, storage and
// control-flow opcode plus CREATE/CALL/CALLCODE and logging.
var frontierOps = []opEntry{
	{ADD, operation{fn: opAdd}},
	{SUB, operation{fn: opSub}},
	{MUL, operation{fn: opMul}},
	{DIV, operation{fn: opDiv}},
	{SDIV, operation{fn: opSdiv}},
	{MOD, operation{fn: opMod}},
	{SMOD, operation{fn: opSmod}},
	{EXP, operation{fn: opExp}},
	{SIGNEXTEND, operation{fn: opSignExtend}},
	{NOT, operation{fn: opNot}},
	{LT, operation{fn: opLt}},
	{GT, operation{fn: opGt}},
	{SLT, operation{fn: opSlt}},
	{SGT, operation{fn: opSgt}},
	{EQ, operation{fn: opEq}},
	{ISZERO, operation{fn: opIszero}},
	{AND, operation{fn: opAnd}},
	{OR, operation{fn: opOr}},
	{XOR, operation{fn: opXor}},
	{BYTE, operation{fn: opByte}},
	{ADDMOD, operation{fn: opAddmod}},
	{MULMOD, operation{fn: opMulmod}},
	{SHA3, operation{fn: opSha3}},

	{ADDRESS, operation{fn: opAddress}},
	{BALANCE, operation{fn: opBalance}},
	{ORIGIN, operation{fn: opOrigin}},
	{CALLER, operation{fn: opCaller}},
	{CALLVALUE, operation{fn: opCallValue}},
	{CALLDATALOAD, operation{fn: opCalldataLoad}},
	{CALLDATASIZE, operation{fn: opCalldataSize}},
	{CALLDATACOPY, operation{fn: opCalldataCopy}},
	{CODESIZE, operation{fn: opCodeSize}},
	{EXTCODESIZE, operation{fn: opExtCodeSize}},
	{CODECOPY, operation{fn: opCodeCopy}},
	{EXTCODECOPY, operation{fn: opExtCodeCopy}},
	{GASPRICE, operation{fn: opGasprice}},

	{BLOCKHASH, operation{fn: opBlockhash}},
	{COINBASE, operation{fn: opCoinbase}},
	{TIMESTAMP, operation{fn: opTimestamp}},
	{NUMBER, operation{fn: opNumber}},
	{DIFFICULTY, operation{fn: opDifficulty}},
	{GASLIMIT, operation{fn: opGasLimit}},

	{POP, operation{fn: opPop}},
	{MLOAD, operation{fn: opMload}},
	{MSTORE, operation{fn: opMstore}},
	{MSTORE8, operation{fn: opMstore8}},
	{SLOAD, operation{fn: opSload}},
	{SSTORE, operation{fn: opSstore, writes: true}},
	{JUMPDEST, operation{fn: opJumpdest}},
	{PC, operation{fn: opPc}},
	{MSIZE, operation{fn: opMsize}},
	{GAS, operation{fn: opGas}},

	{CREATE, operation{fn: opCreate, writes: true, returns: true}},
	{CALL, operation{fn: opCall, returns: true}},
	{CALLCODE, operation{fn: opCallCode, returns: true}},

	{LOG0, operation{fn: makeLog(0), writes: true}},
	{LOG1, operation{fn: makeLog(1), writes: true}},
	{LOG2, operation{fn: makeLog(2), writes: true}},
	{LOG3, operation{fn: makeLog(3), writes: true}},
	{LOG4, operation{fn: makeLog(4), writes: true}},

	{SWAP1, operation{fn: makeSwap(1)}},
	{SWAP2, operation{fn: makeSwap(2)}},
	{SWAP3, operation{fn: makeSwap(3)}},
	{SWAP4, operation{fn: makeSwap(4)}},
	{SWAP5, operation{fn: makeSwap(5)}},
	{SWAP6, operation{fn: makeSwap(6)}},
	{SWAP7, operation{fn: makeSwap(7)}},
	{SWAP8, operation{fn: makeSwap(8)}},
	{SWAP9, operation{fn: makeSwap(9)}},
	{SWAP10, operation{fn: makeSwap(10)}},
	{SWAP11, operation{fn: makeSwap(11)}},
	{SWAP12, operation{fn: makeSwap(12)}},
	{SWAP13, operation{fn: makeSwap(13)}},
	{SWAP14, operation{fn: makeSwap(14)}},
	{SWAP15, operation{fn: makeSwap(15)}},
	{SWAP16, operation{fn: makeSwap(16)}},

	{PUSH1, operation{fn: makePush(1, big.NewInt(1))}},
	{PUSH2, operation{fn: makePush(2, big.NewInt(2))}},
	{PUSH3, operation{fn: makePush(3, big.NewInt(3))}},
	{PUSH4, operation{fn: makePush(4, big.NewInt(4))}},
	{PUSH5, operation{fn: makePush(5, big.NewInt(5))}},
	{PUSH6, operation{fn: makePush(6, big.NewInt(6))}},
	{PUSH7, operation{fn: makePush(7, big.NewInt(7))}},
	{PUSH8, operation{fn: makePush(8, big.NewInt(8))}},
	{PUSH9, operation{fn: makePush(9, big.NewInt(9))}},
	{PUSH10, operation{fn: makePush(10, big.NewInt(10))}},
	{PUSH11, operation{fn: makePush(11, big.NewInt(11))}},
	{PUSH12, operation{fn: makePush(12, big.NewInt(12))}},
	{PUSH13, operation{fn: makePush(13, big.NewInt(13))}},
	{PUSH14, operation{fn: makePush(14, big.NewInt(14))}},
	{PUSH15, operation{fn: makePush(15, big.NewInt(15))}},
	{PUSH16, operation{fn: makePush(16, big.NewInt(16))}},
	{PUSH17, operation{fn: makePush(17, big.NewInt(17))}},
	{PUSH18, operation{fn: makePush(18, big.NewInt(18))}},
	{PUSH19, operation{fn: makePush(19, big.NewInt(19))}},
	{PUSH20, operation{fn: makePush(20, big.NewInt(20))}},
	{PUSH21, operation{fn: makePush(21, big.NewInt(21))}},
	{PUSH22, operation{fn: makePush(22, big.NewInt(22))}},
	{PUSH23, operation{fn: makePush(23, big.NewInt(23))}},
	{PUSH24, operation{fn: makePush(24, big.NewInt(24))}},
	{PUSH25, operation{fn: makePush(25, big.NewInt(25))}},
	{PUSH26, operation{fn: makePush(26, big.NewInt(26))}},
	{PUSH27, operation{fn: makePush(27, big.NewInt(27))}},
	{PUSH28, operation{fn: makePush(28, big.NewInt(28))}},
	{PUSH29, operation{fn: makePush(29, big.NewInt(29))}},
	{PUSH30, operation{fn: makePush(30, big.NewInt(30))}},
	{PUSH31, operation{fn: makePush(31, big.NewInt(31))}},
	{PUSH32, operation{fn: makePush(32, big.NewInt(32))}},

	{DUP1, operation{fn: makeDup(1)}},
	{DUP2, operation{fn: makeDup(2)}},
	{DUP3, operation{fn: makeDup(3)}},
	{DUP4, operation{fn: makeDup(4)}},
	{DUP5, operation{fn: makeDup(5)}},
	{DUP6, operation{fn: makeDup(6)}},
	{DUP7, operation{fn: makeDup(7)}},
	{DUP8, operation{fn: makeDup(8)}},
	{DUP9, operation{fn: makeDup(9)}},
	{DUP10, operation{fn: makeDup(10)}},
	{DUP11, operation{fn: makeDup(11)}},
	{DUP12, operation{fn: makeDup(12)}},
	{DUP13, operation{fn: makeDup(13)}},
	{DUP14, operation{fn: makeDup(14)}},
	{DUP15, operation{fn: makeDup(15)}},
	{DUP16, operation{fn: makeDup(16)}},

	{RETURN, operation{fn: opReturn, halts: true}},
	{SUICIDE, operation{fn: opSuicide, halts: true, writes: true}},
	{JUMP, operation{fn: opJump, jumps: true}},
	{JUMPI, operation{fn: opJumpi, jumps: true}},
	{STOP, operation{fn: opStop, halts: true}},
}
