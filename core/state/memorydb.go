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

// Package state is a minimal world-state collaborator for core/vm: a
// plain in-memory map of accounts, journaled so Snapshot/RevertToSnapshot
// can undo everything since a given point without a trie underneath it.
package state

import (
	"math/big"

	"github.com/coreweave-labs/evmcore/common"
	"github.com/coreweave-labs/evmcore/core/vm"
	"github.com/coreweave-labs/evmcore/crypto"
)

// account is the stored representation of one address's state; it
// implements vm.Account directly so MemoryStateDB.GetAccount/CreateAccount
// can hand it straight to the interpreter.
type account struct {
	address  common.Address
	balance  *big.Int
	nonce    uint64
	codeHash common.Hash
	code     []byte
	storage  map[common.Hash]common.Hash
	suicided bool
}

func newAccount(addr common.Address) *account {
	return &account{
		address: addr,
		balance: new(big.Int),
		storage: make(map[common.Hash]common.Hash),
	}
}

func (a *account) SubBalance(amount *big.Int) { a.balance = new(big.Int).Sub(a.balance, amount) }
func (a *account) AddBalance(amount *big.Int) { a.balance = new(big.Int).Add(a.balance, amount) }
func (a *account) SetBalance(v *big.Int)      { a.balance = v }
func (a *account) SetNonce(n uint64)          { a.nonce = n }
func (a *account) Balance() *big.Int          { return a.balance }
func (a *account) Address() common.Address    { return a.address }
func (a *account) ReturnGas(*big.Int, *big.Int) {}
func (a *account) SetCode(hash common.Hash, code []byte) {
	a.codeHash = hash
	a.code = code
}
func (a *account) ForEachStorage(cb func(key, value common.Hash) bool) {
	for k, v := range a.storage {
		if !cb(k, v) {
			return
		}
	}
}
func (a *account) Value() *big.Int { return a.balance }

func (a *account) empty() bool {
	return a.nonce == 0 && a.balance.Sign() == 0 && len(a.code) == 0
}

// MemoryStateDB implements vm.Database over a plain map, journaling every
// mutation so a snapshot taken before a call frame can be unwound exactly
// if that frame reverts.
type MemoryStateDB struct {
	accounts map[common.Address]*account
	refund   *big.Int
	logs     []*vm.Log

	journal []journalEntry
}

// NewMemoryStateDB returns an empty world state, ready for CreateAccount
// calls (or direct population via SetBalance/SetNonce/SetCode/SetState for
// test fixtures).
func NewMemoryStateDB() *MemoryStateDB {
	return &MemoryStateDB{
		accounts: make(map[common.Address]*account),
		refund:   new(big.Int),
	}
}

func (s *MemoryStateDB) getAccount(addr common.Address) *account {
	if acc, ok := s.accounts[addr]; ok {
		return acc
	}
	acc := newAccount(addr)
	s.accounts[addr] = acc
	return acc
}

func (s *MemoryStateDB) append(entry journalEntry) {
	s.journal = append(s.journal, entry)
}

func (s *MemoryStateDB) GetAccount(addr common.Address) vm.Account {
	if acc, ok := s.accounts[addr]; ok {
		return acc
	}
	return nil
}

func (s *MemoryStateDB) CreateAccount(addr common.Address) vm.Account {
	s.append(createAccountChange{addr})
	acc := newAccount(addr)
	s.accounts[addr] = acc
	return acc
}

func (s *MemoryStateDB) AddBalance(addr common.Address, amount *big.Int) {
	acc := s.getAccount(addr)
	s.append(balanceChange{addr, new(big.Int).Set(acc.balance)})
	acc.balance = new(big.Int).Add(acc.balance, amount)
}

func (s *MemoryStateDB) GetBalance(addr common.Address) *big.Int {
	if acc, ok := s.accounts[addr]; ok {
		return acc.balance
	}
	return new(big.Int)
}

func (s *MemoryStateDB) GetNonce(addr common.Address) uint64 {
	if acc, ok := s.accounts[addr]; ok {
		return acc.nonce
	}
	return 0
}

func (s *MemoryStateDB) SetNonce(addr common.Address, nonce uint64) {
	acc := s.getAccount(addr)
	s.append(nonceChange{addr, acc.nonce})
	acc.nonce = nonce
}

func (s *MemoryStateDB) GetCodeHash(addr common.Address) common.Hash {
	if acc, ok := s.accounts[addr]; ok {
		return acc.codeHash
	}
	return common.Hash{}
}

func (s *MemoryStateDB) GetCodeSize(addr common.Address) int {
	if acc, ok := s.accounts[addr]; ok {
		return len(acc.code)
	}
	return 0
}

func (s *MemoryStateDB) GetCode(addr common.Address) []byte {
	if acc, ok := s.accounts[addr]; ok {
		return acc.code
	}
	return nil
}

func (s *MemoryStateDB) SetCode(addr common.Address, code []byte) {
	acc := s.getAccount(addr)
	s.append(codeChange{addr, acc.code, acc.codeHash})
	acc.codeHash = crypto.Keccak256Hash(code)
	acc.code = code
}

func (s *MemoryStateDB) AddRefund(gas *big.Int) {
	s.append(refundChange{new(big.Int).Set(s.refund)})
	s.refund = new(big.Int).Add(s.refund, gas)
}

func (s *MemoryStateDB) GetRefund() *big.Int {
	return s.refund
}

func (s *MemoryStateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if acc, ok := s.accounts[addr]; ok {
		return acc.storage[key]
	}
	return common.Hash{}
}

func (s *MemoryStateDB) SetState(addr common.Address, key, value common.Hash) {
	acc := s.getAccount(addr)
	s.append(storageChange{addr, key, acc.storage[key]})
	acc.storage[key] = value
}

func (s *MemoryStateDB) AddLog(l *vm.Log) {
	s.append(addLogChange{})
	s.logs = append(s.logs, l)
}

// Logs returns every log emitted so far; a host calls this once execution
// of the enclosing transaction completes.
func (s *MemoryStateDB) Logs() []*vm.Log {
	return s.logs
}

func (s *MemoryStateDB) Suicide(addr common.Address) bool {
	acc, ok := s.accounts[addr]
	if !ok {
		return false
	}
	s.append(suicideChange{addr, acc.suicided, new(big.Int).Set(acc.balance)})
	acc.suicided = true
	acc.balance = new(big.Int)
	return true
}

func (s *MemoryStateDB) HasSuicided(addr common.Address) bool {
	if acc, ok := s.accounts[addr]; ok {
		return acc.suicided
	}
	return false
}

func (s *MemoryStateDB) Exist(addr common.Address) bool {
	_, ok := s.accounts[addr]
	return ok
}

func (s *MemoryStateDB) Empty(addr common.Address) bool {
	acc, ok := s.accounts[addr]
	if !ok {
		return true
	}
	return acc.empty()
}

// Snapshot returns an id that RevertToSnapshot can later roll back to: the
// current length of the change journal.
func (s *MemoryStateDB) Snapshot() int {
	return len(s.journal)
}

// RevertToSnapshot undoes every journaled change recorded after id, most
// recent first.
func (s *MemoryStateDB) RevertToSnapshot(id int) {
	for i := len(s.journal) - 1; i >= id; i-- {
		s.journal[i].revert(s)
	}
	s.journal = s.journal[:id]
}
