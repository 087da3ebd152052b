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
	"time"

	"github.com/coreweave-labs/evmcore/common"
	"github.com/coreweave-labs/evmcore/crypto"
	"github.com/coreweave-labs/evmcore/logger"
	"github.com/coreweave-labs/evmcore/logger/glog"
)

// maxCallDepth bounds recursive Call/Create nesting.
const maxCallDepth = 1024

// Config tunes the interpreter's optional ambient behavior; a zero value
// carries no tracer and emits no metrics.
type Config struct {
	Tracer        Tracer
	Metrics       bool
	DisableJumpdestCache bool
}

// EVM is the call-stack owner: it holds the world-state database, block
// context, and ruleset for one transaction, and dispatches Call/Create for
// every frame within it. It is the sole implementation of Environment.
type EVM struct {
	db     Database
	ruleSet RuleSet
	cfg    Config

	origin      common.Address
	blockNumber *big.Int
	coinbase    common.Address
	time        *big.Int
	difficulty  *big.Int
	gasLimit    *big.Int
	getHash     func(uint64) common.Hash

	jumpTable vmJumpTable
	gasTable  GasTable

	depth      int
	returnData []byte

	// readOnly is set for the duration of a STATICCALL and any calls it
	// makes; state-modifying opcodes fail with ErrWriteProtection while
	// it is set.
	readOnly bool
}

// Context groups the block-level data a new EVM is constructed with.
type Context struct {
	Origin      common.Address
	GasPrice    *big.Int
	Coinbase    common.Address
	BlockNumber *big.Int
	Time        *big.Int
	Difficulty  *big.Int
	GasLimit    *big.Int
	GetHash     func(uint64) common.Hash
}

// NewEVM constructs an EVM bound to db for the duration of one transaction.
func NewEVM(ctx Context, db Database, rs RuleSet, cfg Config) *EVM {
	return &EVM{
		db:          db,
		ruleSet:     rs,
		cfg:         cfg,
		origin:      ctx.Origin,
		blockNumber: ctx.BlockNumber,
		coinbase:    ctx.Coinbase,
		time:        ctx.Time,
		difficulty:  ctx.Difficulty,
		gasLimit:    ctx.GasLimit,
		getHash:     ctx.GetHash,
		jumpTable:   newJumpTable(rs, ctx.BlockNumber),
		gasTable:    *rs.GasTable(ctx.BlockNumber),
	}
}

func (evm *EVM) RuleSet() RuleSet             { return evm.ruleSet }
func (evm *EVM) Db() Database                 { return evm.db }
func (evm *EVM) SnapshotDatabase() int         { return evm.db.Snapshot() }
func (evm *EVM) RevertToSnapshot(id int)       { evm.db.RevertToSnapshot(id) }
func (evm *EVM) Origin() common.Address       { return evm.origin }
func (evm *EVM) BlockNumber() *big.Int        { return evm.blockNumber }
func (evm *EVM) GetHash(n uint64) common.Hash { return evm.getHash(n) }
func (evm *EVM) Coinbase() common.Address     { return evm.coinbase }
func (evm *EVM) Time() *big.Int               { return evm.time }
func (evm *EVM) Difficulty() *big.Int         { return evm.difficulty }
func (evm *EVM) GasLimit() *big.Int           { return evm.gasLimit }
func (evm *EVM) Depth() int                   { return evm.depth }
func (evm *EVM) SetDepth(d int)               { evm.depth = d }
func (evm *EVM) ReturnData() []byte           { return evm.returnData }
func (evm *EVM) VmType() Type                 { return StdVmTy }

func (evm *EVM) AddLog(l *Log) {
	evm.db.AddLog(l)
}

// Run executes contract's code against input and returns its output. It is
// the fetch/decode/cost/execute/advance loop: every iteration reads one
// opcode, prices it against the pre-execution stack and memory state,
// deducts gas, only then mutates memory, dispatches, and advances pc.
func (evm *EVM) Run(contract *Contract, input []byte, readOnly bool) (ret []byte, err error) {
	if evm.depth > maxCallDepth {
		return nil, ErrDepth
	}

	prevReadOnly := evm.readOnly
	if readOnly && !evm.readOnly {
		evm.readOnly = true
		defer func() { evm.readOnly = prevReadOnly }()
	}

	contract.Input = input

	if len(contract.Code) == 0 {
		return nil, nil
	}

	codehash := contract.CodeHash
	if codehash == (common.Hash{}) {
		codehash = crypto.Keccak256Hash(contract.Code)
	}

	var (
		op         OpCode
		mem        = NewMemory()
		stack      = newstack()
		pc         = uint64(0)
		instrCount = 0

		jump = func(to *big.Int) error {
			if !validJumpdest(codehash, contract.Code, to) {
				return ErrInvalidJumpDestination
			}
			pc = to.Uint64()
			return nil
		}
	)
	defer stack.returnStack()

	if glog.V(logger.Debug) {
		glog.Infof("running evm %x\n", codehash[:4])
		tstart := time.Now()
		defer func() {
			glog.Infof("evm %x done. time: %v instrc: %v\n", codehash[:4], time.Since(tstart), instrCount)
		}()
	}

	for ; ; instrCount++ {
		op = contract.GetOp(pc)
		opPtr := evm.jumpTable[op]
		if !opPtr.valid {
			return nil, ErrInvalidOpCode
		}
		if evm.readOnly && opPtr.writes {
			return nil, ErrWriteProtection
		}
		if evm.readOnly && op == CALL && stack.len() > 2 && stack.Back(2).Sign() != 0 {
			return nil, ErrWriteProtection
		}

		newMemSize, cost, err := calculateGasAndSize(&evm.gasTable, evm, contract, op, evm.db, mem, stack)
		if err != nil {
			return nil, err
		}
		if evm.cfg.Tracer != nil {
			evm.cfg.Tracer.CaptureState(pc, op, contract.Gas, cost, mem, stack, contract, evm.depth, nil)
		}
		if !contract.UseGas(cost) {
			if evm.cfg.Metrics {
				recordOOG()
			}
			return nil, OutOfGasError
		}
		if evm.cfg.Metrics {
			recordStep(cost.Int64())
		}
		mem.Resize(newMemSize.Uint64())

		switch op {
		case JUMP:
			if err := jump(stack.pop()); err != nil {
				return nil, err
			}
			continue
		case JUMPI:
			pos, cond := stack.pop(), stack.pop()
			if cond.Sign() != 0 {
				if err := jump(pos); err != nil {
					return nil, err
				}
				continue
			}
		case PC:
			opPc(&pc, evm, contract, mem, stack)
		default:
			ret, err = opPtr.fn(&pc, evm, contract, mem, stack)
			if err != nil {
				return nil, err
			}
		}

		if opPtr.returns {
			evm.returnData = ret
		}
		if opPtr.reverts {
			return ret, ErrRevert
		}
		if opPtr.halts {
			if op == SUICIDE {
				return nil, nil
			}
			return ret, nil
		}

		pc++
	}
}

// calculateGasAndSize computes the cost of executing op against the
// current (pre-execution) stack and memory, and the memory size the
// operation will need -- all without mutating memory or deducting gas,
// per the ordering invariant that cost must be knowable before either
// happens.
func calculateGasAndSize(gasTable *GasTable, evm *EVM, contract *Contract, op OpCode, statedb Database, mem *Memory, stack *stack) (*big.Int, *big.Int, error) {
	var (
		gas        = new(big.Int)
		newMemSize = new(big.Int)
	)
	if err := baseCheck(op, stack, gas); err != nil {
		return nil, nil, err
	}

	switch op {
	case SUICIDE:
		if gasTable.CreateBySuicide != nil {
			gas.Set(gasTable.Suicide)
			if !statedb.Exist(common.BigToAddress(stack.data[len(stack.data)-1])) {
				gas.Add(gas, gasTable.CreateBySuicide)
			}
		}
		if !statedb.HasSuicided(contract.Address()) {
			statedb.AddRefund(big.NewInt(24000))
		}
	case EXTCODESIZE:
		gas.Set(gasTable.ExtcodeSize)
	case BALANCE:
		gas.Set(gasTable.Balance)
	case SLOAD:
		gas.Set(gasTable.SLoad)
	case SWAP1, SWAP2, SWAP3, SWAP4, SWAP5, SWAP6, SWAP7, SWAP8, SWAP9, SWAP10, SWAP11, SWAP12, SWAP13, SWAP14, SWAP15, SWAP16:
		n := int(op - SWAP1 + 2)
		if err := stack.require(n); err != nil {
			return nil, nil, err
		}
		gas.Set(GasFastestStep)
	case DUP1, DUP2, DUP3, DUP4, DUP5, DUP6, DUP7, DUP8, DUP9, DUP10, DUP11, DUP12, DUP13, DUP14, DUP15, DUP16:
		n := int(op - DUP1 + 1)
		if err := stack.require(n); err != nil {
			return nil, nil, err
		}
		gas.Set(GasFastestStep)
	case LOG0, LOG1, LOG2, LOG3, LOG4:
		n := int(op - LOG0)
		if err := stack.require(n + 2); err != nil {
			return nil, nil, err
		}
		mSize, mStart := stack.data[stack.len()-2], stack.data[stack.len()-1]
		gas.Add(gas, big.NewInt(375))
		gas.Add(gas, new(big.Int).Mul(big.NewInt(int64(n)), big.NewInt(375)))
		gas.Add(gas, new(big.Int).Mul(mSize, big.NewInt(8)))
		newMemSize = calcMemSize(mStart, mSize)
		quadMemGas(mem, newMemSize, gas)
	case EXP:
		expByteLen := int64(len(stack.data[stack.len()-2].Bytes()))
		gas.Add(gas, new(big.Int).Mul(big.NewInt(expByteLen), gasTable.ExpByte))
	case SSTORE:
		if err := stack.require(2); err != nil {
			return nil, nil, err
		}
		y, x := stack.data[stack.len()-2], stack.data[stack.len()-1]
		val := statedb.GetState(contract.Address(), common.BigToHash(x))

		var g *big.Int
		switch {
		case common.EmptyHash(val) && !common.EmptyHash(common.BigToHash(y)):
			g = big.NewInt(20000) // zero -> non-zero
		case !common.EmptyHash(val) && common.EmptyHash(common.BigToHash(y)):
			statedb.AddRefund(big.NewInt(15000)) // non-zero -> zero
			g = big.NewInt(5000)
		default:
			g = big.NewInt(5000) // non-zero -> non-zero (or 0 -> 0)
		}
		gas.Set(g)
	case MLOAD:
		newMemSize = calcMemSize(stack.peek(), u256(32))
		quadMemGas(mem, newMemSize, gas)
	case MSTORE8:
		newMemSize = calcMemSize(stack.peek(), u256(1))
		quadMemGas(mem, newMemSize, gas)
	case MSTORE:
		newMemSize = calcMemSize(stack.peek(), u256(32))
		quadMemGas(mem, newMemSize, gas)
	case RETURN, REVERT:
		newMemSize = calcMemSize(stack.peek(), stack.data[stack.len()-2])
		quadMemGas(mem, newMemSize, gas)
	case SHA3:
		newMemSize = calcMemSize(stack.peek(), stack.data[stack.len()-2])
		words := toWordSize(stack.data[stack.len()-2])
		gas.Add(gas, words.Mul(words, big.NewInt(6)))
		quadMemGas(mem, newMemSize, gas)
	case CALLDATACOPY, RETURNDATACOPY:
		newMemSize = calcMemSize(stack.peek(), stack.data[stack.len()-3])
		words := toWordSize(stack.data[stack.len()-3])
		gas.Add(gas, words.Mul(words, big.NewInt(3)))
		quadMemGas(mem, newMemSize, gas)
	case CODECOPY:
		newMemSize = calcMemSize(stack.peek(), stack.data[stack.len()-3])
		words := toWordSize(stack.data[stack.len()-3])
		gas.Add(gas, words.Mul(words, big.NewInt(3)))
		quadMemGas(mem, newMemSize, gas)
	case EXTCODECOPY:
		gas.Set(gasTable.ExtcodeCopy)
		newMemSize = calcMemSize(stack.data[stack.len()-2], stack.data[stack.len()-4])
		words := toWordSize(stack.data[stack.len()-4])
		gas.Add(gas, words.Mul(words, big.NewInt(3)))
		quadMemGas(mem, newMemSize, gas)
	case CREATE:
		newMemSize = calcMemSize(stack.data[stack.len()-2], stack.data[stack.len()-3])
		quadMemGas(mem, newMemSize, gas)
	case CALL, CALLCODE:
		gas.Set(gasTable.Calls)
		if op == CALL {
			if !statedb.Exist(common.BigToAddress(stack.data[stack.len()-2])) {
				gas.Add(gas, big.NewInt(25000))
			}
		}
		if len(stack.data[stack.len()-3].Bytes()) > 0 {
			gas.Add(gas, big.NewInt(9000))
		}
		x := calcMemSize(stack.data[stack.len()-6], stack.data[stack.len()-7])
		y := calcMemSize(stack.data[stack.len()-4], stack.data[stack.len()-5])
		newMemSize = common.BigMax(x, y)
		quadMemGas(mem, newMemSize, gas)

		cg := callGas(gasTable, contract.Gas, gas, stack.data[stack.len()-1])
		stack.data[stack.len()-1] = cg
		gas.Add(gas, cg)
	case DELEGATECALL, STATICCALL:
		gas.Set(gasTable.Calls)
		x := calcMemSize(stack.data[stack.len()-5], stack.data[stack.len()-6])
		y := calcMemSize(stack.data[stack.len()-3], stack.data[stack.len()-4])
		newMemSize = common.BigMax(x, y)
		quadMemGas(mem, newMemSize, gas)

		cg := callGas(gasTable, contract.Gas, gas, stack.data[stack.len()-1])
		stack.data[stack.len()-1] = cg
		gas.Add(gas, cg)
	}

	return newMemSize, gas, nil
}

// RunPrecompiled evaluates a precompiled contract's output.
func (evm *EVM) RunPrecompiled(p *PrecompiledAccount, input []byte, contract *Contract) (ret []byte, err error) {
	gas := p.Gas(input)
	if !contract.UseGas(gas) {
		return nil, OutOfGasError
	}
	return p.Call(input)
}
