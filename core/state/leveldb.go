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
	"encoding/json"
	"math/big"

	"github.com/syndtr/goleveldb/leveldb"
	"gopkg.in/fatih/set.v0"

	"github.com/coreweave-labs/evmcore/common"
	"github.com/coreweave-labs/evmcore/core/vm"
	"github.com/coreweave-labs/evmcore/crypto"
)

// accountRecord is the on-disk encoding of one account; storage is kept as
// a separate key range (accountKey/storage) rather than nested here so a
// single slot write doesn't require rewriting the whole account blob.
type accountRecord struct {
	Balance  *big.Int
	Nonce    uint64
	CodeHash common.Hash
	Suicided bool
}

// LevelDBStateDB implements vm.Database against a github.com/syndtr/goleveldb
// store on disk: every account read/write goes straight to the database,
// with no in-memory account cache; Snapshot/RevertToSnapshot work from an
// in-memory journal of undo closures. It trades MemoryStateDB's speed for
// being able to outlive the process, the way cmd/evm's --statedb flag
// expects.
type LevelDBStateDB struct {
	db *leveldb.DB

	refund *big.Int
	logs   []*vm.Log

	// touched/suicided record, for the current transaction, which accounts
	// were touched or suicided; HasSuicided reads the suicided set, and
	// RevertToSnapshot relies on the journal, not these sets. The teacher's eth/peer.go
	// keeps exactly this kind of "which hashes has this peer seen" set with
	// gopkg.in/fatih/set.v0.
	touched  *set.Set
	suicided *set.Set

	// journal holds one undo closure per mutation, rather than the typed
	// journalEntry MemoryStateDB uses: every record here already read the
	// prior on-disk value itself, so reverting just needs to call back in.
	journal []func()
}

// OpenLevelDBStateDB opens (creating if necessary) a goleveldb store at dir.
func OpenLevelDBStateDB(dir string) (*LevelDBStateDB, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStateDB{
		db:       db,
		refund:   new(big.Int),
		touched:  set.New(),
		suicided: set.New(),
	}, nil
}

func (s *LevelDBStateDB) Close() error {
	return s.db.Close()
}

func accountKey(addr common.Address) []byte {
	return append([]byte("a"), addr.Bytes()...)
}

func codeKey(hash common.Hash) []byte {
	return append([]byte("c"), hash.Bytes()...)
}

func storageKey(addr common.Address, key common.Hash) []byte {
	k := append([]byte("s"), addr.Bytes()...)
	return append(k, key.Bytes()...)
}

func (s *LevelDBStateDB) readAccount(addr common.Address) *accountRecord {
	raw, err := s.db.Get(accountKey(addr), nil)
	if err != nil || raw == nil {
		return nil
	}
	var rec accountRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	return &rec
}

func (s *LevelDBStateDB) writeAccount(addr common.Address, rec *accountRecord) {
	raw, err := json.Marshal(rec)
	if err != nil {
		panic(err)
	}
	if err := s.db.Put(accountKey(addr), raw, nil); err != nil {
		panic(err)
	}
	s.touched.Add(addr)
}

func (s *LevelDBStateDB) getOrCreate(addr common.Address) *accountRecord {
	if rec := s.readAccount(addr); rec != nil {
		return rec
	}
	rec := &accountRecord{Balance: new(big.Int)}
	s.writeAccount(addr, rec)
	return rec
}

func (s *LevelDBStateDB) append(undo func()) {
	s.journal = append(s.journal, undo)
}

// ldbAccount adapts one accountRecord read from disk into a vm.Account;
// mutating it and calling flush writes the change straight through.
type ldbAccount struct {
	addr  common.Address
	rec   *accountRecord
	store *LevelDBStateDB
}

func (a *ldbAccount) flush() { a.store.writeAccount(a.addr, a.rec) }

func (a *ldbAccount) SubBalance(amount *big.Int) {
	a.rec.Balance = new(big.Int).Sub(a.rec.Balance, amount)
	a.flush()
}
func (a *ldbAccount) AddBalance(amount *big.Int) {
	a.rec.Balance = new(big.Int).Add(a.rec.Balance, amount)
	a.flush()
}
func (a *ldbAccount) SetBalance(v *big.Int) { a.rec.Balance = v; a.flush() }
func (a *ldbAccount) SetNonce(n uint64)     { a.rec.Nonce = n; a.flush() }
func (a *ldbAccount) Balance() *big.Int     { return a.rec.Balance }
func (a *ldbAccount) Address() common.Address { return a.addr }
func (a *ldbAccount) ReturnGas(*big.Int, *big.Int) {}
func (a *ldbAccount) SetCode(hash common.Hash, code []byte) {
	a.rec.CodeHash = hash
	if err := a.store.db.Put(codeKey(hash), code, nil); err != nil {
		panic(err)
	}
	a.flush()
}
func (a *ldbAccount) ForEachStorage(cb func(key, value common.Hash) bool) {
	prefix := append([]byte("s"), a.addr.Bytes()...)
	iter := a.store.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		k := iter.Key()
		if len(k) < len(prefix) || string(k[:len(prefix)]) != string(prefix) {
			continue
		}
		key := common.BytesToHash(k[len(prefix):])
		value := common.BytesToHash(iter.Value())
		if !cb(key, value) {
			return
		}
	}
}
func (a *ldbAccount) Value() *big.Int { return a.rec.Balance }

func (s *LevelDBStateDB) GetAccount(addr common.Address) vm.Account {
	rec := s.readAccount(addr)
	if rec == nil {
		return nil
	}
	return &ldbAccount{addr: addr, rec: rec, store: s}
}

func (s *LevelDBStateDB) CreateAccount(addr common.Address) vm.Account {
	s.append(func() {
		if err := s.db.Delete(accountKey(addr), nil); err != nil {
			panic(err)
		}
	})
	rec := &accountRecord{Balance: new(big.Int)}
	s.writeAccount(addr, rec)
	return &ldbAccount{addr: addr, rec: rec, store: s}
}

func (s *LevelDBStateDB) AddBalance(addr common.Address, amount *big.Int) {
	rec := s.getOrCreate(addr)
	prev := new(big.Int).Set(rec.Balance)
	s.append(func() {
		r := s.getOrCreate(addr)
		r.Balance = prev
		s.writeAccount(addr, r)
	})
	rec.Balance = new(big.Int).Add(rec.Balance, amount)
	s.writeAccount(addr, rec)
}

func (s *LevelDBStateDB) GetBalance(addr common.Address) *big.Int {
	if rec := s.readAccount(addr); rec != nil {
		return rec.Balance
	}
	return new(big.Int)
}

func (s *LevelDBStateDB) GetNonce(addr common.Address) uint64 {
	if rec := s.readAccount(addr); rec != nil {
		return rec.Nonce
	}
	return 0
}

func (s *LevelDBStateDB) SetNonce(addr common.Address, nonce uint64) {
	rec := s.getOrCreate(addr)
	prev := rec.Nonce
	s.append(func() {
		r := s.getOrCreate(addr)
		r.Nonce = prev
		s.writeAccount(addr, r)
	})
	rec.Nonce = nonce
	s.writeAccount(addr, rec)
}

func (s *LevelDBStateDB) GetCodeHash(addr common.Address) common.Hash {
	if rec := s.readAccount(addr); rec != nil {
		return rec.CodeHash
	}
	return common.Hash{}
}

func (s *LevelDBStateDB) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

func (s *LevelDBStateDB) GetCode(addr common.Address) []byte {
	rec := s.readAccount(addr)
	if rec == nil {
		return nil
	}
	code, err := s.db.Get(codeKey(rec.CodeHash), nil)
	if err != nil {
		return nil
	}
	return code
}

func (s *LevelDBStateDB) SetCode(addr common.Address, code []byte) {
	rec := s.getOrCreate(addr)
	prevHash := rec.CodeHash
	s.append(func() {
		r := s.getOrCreate(addr)
		r.CodeHash = prevHash
		s.writeAccount(addr, r)
	})
	hash := crypto.Keccak256Hash(code)
	if err := s.db.Put(codeKey(hash), code, nil); err != nil {
		panic(err)
	}
	rec.CodeHash = hash
	s.writeAccount(addr, rec)
}

func (s *LevelDBStateDB) AddRefund(gas *big.Int) {
	prev := new(big.Int).Set(s.refund)
	s.append(func() { s.refund = prev })
	s.refund = new(big.Int).Add(s.refund, gas)
}

func (s *LevelDBStateDB) GetRefund() *big.Int { return s.refund }

func (s *LevelDBStateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	raw, err := s.db.Get(storageKey(addr, key), nil)
	if err != nil || raw == nil {
		return common.Hash{}
	}
	return common.BytesToHash(raw)
}

func (s *LevelDBStateDB) SetState(addr common.Address, key, value common.Hash) {
	prev := s.GetState(addr, key)
	s.append(func() {
		if err := s.db.Put(storageKey(addr, key), prev.Bytes(), nil); err != nil {
			panic(err)
		}
	})
	if err := s.db.Put(storageKey(addr, key), value.Bytes(), nil); err != nil {
		panic(err)
	}
}

func (s *LevelDBStateDB) AddLog(l *vm.Log) {
	s.append(func() {
		s.logs = s.logs[:len(s.logs)-1]
	})
	s.logs = append(s.logs, l)
}

func (s *LevelDBStateDB) Logs() []*vm.Log { return s.logs }

func (s *LevelDBStateDB) Suicide(addr common.Address) bool {
	rec := s.readAccount(addr)
	if rec == nil {
		return false
	}
	prevSuicided := rec.Suicided
	prevBalance := new(big.Int).Set(rec.Balance)
	s.append(func() {
		r := s.getOrCreate(addr)
		r.Suicided = prevSuicided
		r.Balance = prevBalance
		s.writeAccount(addr, r)
		if !prevSuicided {
			s.suicided.Remove(addr)
		}
	})
	rec.Suicided = true
	rec.Balance = new(big.Int)
	s.writeAccount(addr, rec)
	s.suicided.Add(addr)
	return true
}

func (s *LevelDBStateDB) HasSuicided(addr common.Address) bool {
	return s.suicided.Has(addr)
}

func (s *LevelDBStateDB) Exist(addr common.Address) bool {
	return s.readAccount(addr) != nil
}

func (s *LevelDBStateDB) Empty(addr common.Address) bool {
	rec := s.readAccount(addr)
	if rec == nil {
		return true
	}
	return rec.Nonce == 0 && rec.Balance.Sign() == 0 && rec.CodeHash == (common.Hash{})
}

func (s *LevelDBStateDB) Snapshot() int {
	return len(s.journal)
}

func (s *LevelDBStateDB) RevertToSnapshot(id int) {
	for i := len(s.journal) - 1; i >= id; i-- {
		s.journal[i]()
	}
	s.journal = s.journal[:id]
}
