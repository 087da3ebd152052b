// Copyright 2016 The go-ethereum Authors
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
	"fmt"
	"math/big"

	"github.com/robertkrimen/otto"
)

// JSTracer is a Tracer that hands every step to a user-supplied JavaScript
// function, `function step(log, db)`, evaluated once at construction time
// and then invoked per opcode. It exists for the same reason the console
// package embeds otto: ad-hoc inspection of execution without a Go rebuild.
type JSTracer struct {
	vm   *otto.Otto
	step otto.Value
	err  error
}

// NewJSTracer compiles script (expected to assign a `step` function, e.g.
// `function step(log, db) { ... }`) and returns a Tracer that calls it on
// every CaptureState.
func NewJSTracer(script string) (*JSTracer, error) {
	vm := otto.New()
	if _, err := vm.Run(script); err != nil {
		return nil, fmt.Errorf("jstracer: compiling script: %v", err)
	}
	step, err := vm.Get("step")
	if err != nil {
		return nil, fmt.Errorf("jstracer: reading step function: %v", err)
	}
	if !step.IsFunction() {
		return nil, fmt.Errorf("jstracer: script does not define a step function")
	}
	return &JSTracer{vm: vm, step: step}, nil
}

// Err returns the first error a step function call produced, if any; a
// script is expected to check this after a run completes rather than have
// every CaptureState call fail loudly mid-trace.
func (t *JSTracer) Err() error {
	return t.err
}

func (t *JSTracer) CaptureState(pc uint64, op OpCode, gas, cost *big.Int, memory *Memory, stack *stack, contract *Contract, depth int, err error) error {
	if t.err != nil {
		return nil
	}

	logObj, _ := t.vm.Object(`({})`)
	logObj.Set("pc", pc)
	logObj.Set("op", op.String())
	logObj.Set("gas", gas.String())
	logObj.Set("gasCost", cost.String())
	logObj.Set("depth", depth)
	if err != nil {
		logObj.Set("error", err.Error())
	}

	stackVals := make([]string, len(stack.data))
	for i, v := range stack.data {
		stackVals[i] = v.Text(16)
	}
	stackArr, _ := t.vm.ToValue(stackVals)
	logObj.Set("stack", stackArr)

	dbObj, _ := t.vm.Object(`({})`)
	dbObj.Set("address", contract.Address().Hex())

	if _, callErr := t.step.Call(otto.NullValue(), logObj.Value(), dbObj.Value()); callErr != nil {
		t.err = fmt.Errorf("jstracer: step() at pc %d: %v", pc, callErr)
	}
	return nil
}
