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
	"fmt"
	"math/big"
)

// Memory is the EVM's byte-addressable, word-billed, lazily extended
// scratch space. It never shrinks within a frame.
type Memory struct {
	store       []byte
	lastGasCost *big.Int
}

func NewMemory() *Memory {
	return &Memory{lastGasCost: new(big.Int)}
}

// Resize grows the backing store to size bytes, zero-filling the new
// region. It never shrinks an already-larger store.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
}

// Set copies value into the memory region [offset, offset+size): at most
// size bytes of value are written, and if value is shorter the rest of the
// region keeps its old contents.
// The caller must have already Resize()d memory to cover the write.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size > 0 {
		if offset+size > uint64(len(m.store)) {
			panic("invalid memory: store empty")
		}
		copy(m.store[offset:offset+size], value)
	}
}

// Set32 writes val, left-padded/truncated to 32 bytes, at offset.
func (m *Memory) Set32(offset uint64, val *big.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	copy(m.store[offset:offset+32], make([]byte, 32))
	b := val.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(m.store[offset+32-uint64(len(b)):offset+32], b)
}

func (m *Memory) Resize2(size uint64) []byte {
	m.Resize(size)
	return m.store
}

// Get returns a fresh copy of size bytes starting at offset.
func (m *Memory) Get(offset, size int64) (cpy []byte) {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		cpy = make([]byte, size)
		copy(cpy, m.store[offset:offset+size])
		return
	}
	return
}

// GetPtr returns a slice aliasing the underlying store; callers must not
// retain it across a mutating memory op.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		return m.store[offset : offset+size]
	}
	return nil
}

func (m *Memory) Len() int {
	return len(m.store)
}

func (m *Memory) Data() []byte {
	return m.store
}

func (m *Memory) Print() {
	fmt.Printf("### mem %d bytes ###\n", len(m.store))
	if len(m.store) > 0 {
		addr := 0
		for i := 0; i+32 <= len(m.store); i += 32 {
			fmt.Printf("%03d: % x\n", addr, m.store[i:i+32])
			addr++
		}
	} else {
		fmt.Println("-- empty --")
	}
	fmt.Println("####################")
}
