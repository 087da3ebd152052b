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
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"github.com/mailru/easyjson/jwriter"
)

// Tracer is notified of every step the interpreter takes. evm.Run calls
// CaptureState once per instruction, before the opcode executes, with the
// pre-execution stack/memory and the gas cost just computed for it. Run
// calls it before the step runs and always passes a nil err.
type Tracer interface {
	CaptureState(pc uint64, op OpCode, gas, cost *big.Int, memory *Memory, stack *stack, contract *Contract, depth int, err error) error
}

// StructLog is one CaptureState call flattened into a value cheap to
// marshal and compare; Stack and Memory are copied so later steps can't
// mutate a log already taken.
type StructLog struct {
	Pc      uint64   `json:"pc"`
	Op      OpCode   `json:"op"`
	Gas     uint64   `json:"gas"`
	GasCost uint64   `json:"gasCost"`
	Memory  []byte   `json:"memory"`
	Stack   []*big.Int `json:"stack"`
	Depth   int      `json:"depth"`
	Err     error    `json:"-"`
}

// MarshalEasyJSON writes the struct log as a single JSON object without
// reflection: op is written as its mnemonic, memory as a hex string and
// stack entries as hex strings.
func (s *StructLog) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"pc":`)
	w.Uint64(s.Pc)
	w.RawString(`,"op":`)
	w.String(s.Op.String())
	w.RawString(`,"gas":`)
	w.Uint64(s.Gas)
	w.RawString(`,"gasCost":`)
	w.Uint64(s.GasCost)
	w.RawString(`,"depth":`)
	w.Int(s.Depth)
	w.RawString(`,"memory":"`)
	w.RawString(hex.EncodeToString(s.Memory))
	w.RawByte('"')
	w.RawString(`,"stack":[`)
	for i, v := range s.Stack {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawByte('"')
		w.RawString(v.Text(16))
		w.RawByte('"')
	}
	w.RawString(`]}`)
}

// StructLogger is the reference Tracer: it accumulates every step into a
// slice, and can replay it either as newline-delimited JSON or as
// colorized text for a terminal.
type StructLogger struct {
	logs []StructLog
}

// NewStructLogger returns an empty logger ready to receive CaptureState
// calls from an EVM's Config.Tracer.
func NewStructLogger() *StructLogger {
	return &StructLogger{}
}

func (l *StructLogger) CaptureState(pc uint64, op OpCode, gas, cost *big.Int, memory *Memory, stack *stack, contract *Contract, depth int, err error) error {
	stackCopy := make([]*big.Int, len(stack.data))
	for i, v := range stack.data {
		stackCopy[i] = new(big.Int).Set(v)
	}
	memCopy := make([]byte, len(memory.Data()))
	copy(memCopy, memory.Data())

	l.logs = append(l.logs, StructLog{
		Pc:      pc,
		Op:      op,
		Gas:     gas.Uint64(),
		GasCost: cost.Uint64(),
		Memory:  memCopy,
		Stack:   stackCopy,
		Depth:   depth,
		Err:     err,
	})
	return nil
}

// StructLogs returns every step captured so far.
func (l *StructLogger) StructLogs() []StructLog {
	return l.logs
}

// WriteJSON writes one JSON object per captured step to w, newline
// delimited, using each StructLog's hand-written MarshalEasyJSON.
func (l *StructLogger) WriteJSON(w io.Writer) error {
	for i := range l.logs {
		jw := &jwriter.Writer{}
		l.logs[i].MarshalEasyJSON(jw)
		if _, err := jw.DumpTo(w); err != nil {
			return err
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrace writes a colorized, human-readable rendering of every
// captured step to w: one line per opcode, with the stack printed below
// it, errors highlighted in red.
func WriteTrace(w io.Writer, logs []StructLog) {
	for _, log := range logs {
		if log.Err != nil {
			fmt.Fprintf(w, "%s\n", color.RedString("%-16v  error: %v", log.Op, log.Err))
			continue
		}
		fmt.Fprintf(w, "%-16v gas: %-8d cost: %-8d depth: %d\n", log.Op, log.Gas, log.GasCost, log.Depth)
		for i := len(log.Stack) - 1; i >= 0; i-- {
			fmt.Fprintf(w, "%-6s%v\n", "", color.CyanString(log.Stack[i].Text(16)))
		}
	}
}
