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
	"io/ioutil"
	"math/big"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coreweave-labs/evmcore/common"
)

func newTestLevelDBStateDB(t *testing.T) *LevelDBStateDB {
	dir, err := ioutil.TempDir("", "evmcore-leveldb-state-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := OpenLevelDBStateDB(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLevelDBStateDBCreateAndBalance(t *testing.T) {
	s := newTestLevelDBStateDB(t)
	addr := common.BytesToAddress([]byte{0x01})

	require.False(t, s.Exist(addr))
	s.CreateAccount(addr)
	require.True(t, s.Exist(addr))

	s.AddBalance(addr, big.NewInt(100))
	require.Equal(t, big.NewInt(100), s.GetBalance(addr))
}

func TestLevelDBStateDBSnapshotRevert(t *testing.T) {
	s := newTestLevelDBStateDB(t)
	addr := common.BytesToAddress([]byte{0x02})
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(10))

	snap := s.Snapshot()
	s.AddBalance(addr, big.NewInt(90))
	s.SetNonce(addr, 3)
	require.Equal(t, big.NewInt(100), s.GetBalance(addr))
	require.Equal(t, uint64(3), s.GetNonce(addr))

	s.RevertToSnapshot(snap)
	require.Equal(t, big.NewInt(10), s.GetBalance(addr))
	require.Equal(t, uint64(0), s.GetNonce(addr))
}

func TestLevelDBStateDBStorage(t *testing.T) {
	s := newTestLevelDBStateDB(t)
	addr := common.BytesToAddress([]byte{0x03})
	key := common.BytesToHash([]byte{0x01})
	value := common.BytesToHash([]byte{0x2a})

	s.CreateAccount(addr)
	snap := s.Snapshot()
	s.SetState(addr, key, value)
	require.Equal(t, value, s.GetState(addr, key))

	s.RevertToSnapshot(snap)
	require.Equal(t, common.Hash{}, s.GetState(addr, key))
}

func TestLevelDBStateDBCode(t *testing.T) {
	s := newTestLevelDBStateDB(t)
	addr := common.BytesToAddress([]byte{0x04})
	code := []byte{0x60, 0x00, 0x60, 0x00, 0x00}

	s.CreateAccount(addr)
	s.SetCode(addr, code)
	require.Equal(t, code, s.GetCode(addr))
	require.Equal(t, len(code), s.GetCodeSize(addr))
}

func TestLevelDBStateDBSuicide(t *testing.T) {
	s := newTestLevelDBStateDB(t)
	addr := common.BytesToAddress([]byte{0x05})
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(42))

	snap := s.Snapshot()
	ok := s.Suicide(addr)
	require.True(t, ok)
	require.True(t, s.HasSuicided(addr))
	require.Equal(t, big.NewInt(0), s.GetBalance(addr))

	s.RevertToSnapshot(snap)
	require.False(t, s.HasSuicided(addr))
	require.Equal(t, big.NewInt(42), s.GetBalance(addr))
}
