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
	"sync"
)

// maxStackDepth is the hard 1024-slot limit imposed on every frame.
const maxStackDepth = 1024

var stackPool = sync.Pool{
	New: func() interface{} {
		return &stack{data: make([]*big.Int, 0, 16)}
	},
}

// stack is the EVM's last-in-first-out 256-bit word stack.
type stack struct {
	data []*big.Int
}

func newstack() *stack {
	return stackPool.Get().(*stack)
}

func (st *stack) returnStack() {
	st.data = st.data[:0]
	stackPool.Put(st)
}

func (st *stack) Data() []*big.Int {
	return st.data
}

func (st *stack) push(d *big.Int) {
	st.data = append(st.data, d)
}

func (st *stack) pushN(ds ...*big.Int) {
	st.data = append(st.data, ds...)
}

func (st *stack) pop() (ret *big.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

func (st *stack) len() int {
	return len(st.data)
}

func (st *stack) swap(n int) {
	st.data[st.len()-n], st.data[st.len()-1] = st.data[st.len()-1], st.data[st.len()-n]
}

func (st *stack) dup(n int) {
	st.push(new(big.Int).Set(st.data[st.len()-n]))
}

func (st *stack) peek() *big.Int {
	return st.data[st.len()-1]
}

// Back returns the n'th item from the top of the stack without removing it.
func (st *stack) Back(n int) *big.Int {
	return st.data[st.len()-n-1]
}

func (st *stack) require(n int) error {
	if st.len() < n {
		return ErrStackUnderflow
	}
	return nil
}

func (st *stack) Print() {
	fmt.Println("### stack ###")
	if len(st.data) > 0 {
		for i, val := range st.data {
			fmt.Printf("%-3d  %v\n", i, val)
		}
	} else {
		fmt.Println("-- empty --")
	}
	fmt.Println("#############")
}
