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

package state

import (
	"math/big"

	"github.com/coreweave-labs/evmcore/common"
)

// journalEntry is one undoable change recorded against a MemoryStateDB;
// revert restores the field it touched to its pre-change value.
type journalEntry interface {
	revert(*MemoryStateDB)
}

type (
	createAccountChange struct {
		address common.Address
	}
	balanceChange struct {
		address common.Address
		prev    *big.Int
	}
	nonceChange struct {
		address common.Address
		prev    uint64
	}
	codeChange struct {
		address          common.Address
		prevCode         []byte
		prevHash         common.Hash
	}
	storageChange struct {
		address  common.Address
		key      common.Hash
		prevalue common.Hash
	}
	suicideChange struct {
		address     common.Address
		prev        bool
		prevbalance *big.Int
	}
	refundChange struct {
		prev *big.Int
	}
	addLogChange struct{}
)

func (ch createAccountChange) revert(s *MemoryStateDB) {
	delete(s.accounts, ch.address)
}

func (ch balanceChange) revert(s *MemoryStateDB) {
	s.getAccount(ch.address).balance = ch.prev
}

func (ch nonceChange) revert(s *MemoryStateDB) {
	s.getAccount(ch.address).nonce = ch.prev
}

func (ch codeChange) revert(s *MemoryStateDB) {
	acc := s.getAccount(ch.address)
	acc.code = ch.prevCode
	acc.codeHash = ch.prevHash
}

func (ch storageChange) revert(s *MemoryStateDB) {
	s.getAccount(ch.address).storage[ch.key] = ch.prevalue
}

func (ch suicideChange) revert(s *MemoryStateDB) {
	acc := s.getAccount(ch.address)
	acc.suicided = ch.prev
	acc.balance = ch.prevbalance
}

func (ch refundChange) revert(s *MemoryStateDB) {
	s.refund = ch.prev
}

func (ch addLogChange) revert(s *MemoryStateDB) {
	s.logs = s.logs[:len(s.logs)-1]
}
