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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coreweave-labs/evmcore/common"
	"github.com/coreweave-labs/evmcore/core/vm"
)

func TestMemoryStateDBCreateAndBalance(t *testing.T) {
	s := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{0x01})

	require.False(t, s.Exist(addr))
	s.CreateAccount(addr)
	require.True(t, s.Exist(addr))
	require.True(t, s.Empty(addr))

	s.AddBalance(addr, big.NewInt(100))
	require.Equal(t, big.NewInt(100), s.GetBalance(addr))
	require.False(t, s.Empty(addr))
}

func TestMemoryStateDBSnapshotRevert(t *testing.T) {
	s := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{0x02})
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(10))

	snap := s.Snapshot()
	s.AddBalance(addr, big.NewInt(90))
	s.SetNonce(addr, 7)
	require.Equal(t, big.NewInt(100), s.GetBalance(addr))
	require.Equal(t, uint64(7), s.GetNonce(addr))

	s.RevertToSnapshot(snap)
	require.Equal(t, big.NewInt(10), s.GetBalance(addr))
	require.Equal(t, uint64(0), s.GetNonce(addr))
}

func TestMemoryStateDBRevertAcrossCreateAccount(t *testing.T) {
	s := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{0x03})

	snap := s.Snapshot()
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(5))
	require.True(t, s.Exist(addr))

	s.RevertToSnapshot(snap)
	require.False(t, s.Exist(addr))
}

func TestMemoryStateDBStorage(t *testing.T) {
	s := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{0x04})
	key := common.BytesToHash([]byte{0x01})
	value := common.BytesToHash([]byte{0x2a})

	s.CreateAccount(addr)
	require.Equal(t, common.Hash{}, s.GetState(addr, key))

	snap := s.Snapshot()
	s.SetState(addr, key, value)
	require.Equal(t, value, s.GetState(addr, key))

	s.RevertToSnapshot(snap)
	require.Equal(t, common.Hash{}, s.GetState(addr, key))
}

func TestMemoryStateDBSuicide(t *testing.T) {
	s := NewMemoryStateDB()
	addr := common.BytesToAddress([]byte{0x05})
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(42))

	require.False(t, s.HasSuicided(addr))
	snap := s.Snapshot()
	ok := s.Suicide(addr)
	require.True(t, ok)
	require.True(t, s.HasSuicided(addr))
	require.Equal(t, big.NewInt(0), s.GetBalance(addr))

	s.RevertToSnapshot(snap)
	require.False(t, s.HasSuicided(addr))
	require.Equal(t, big.NewInt(42), s.GetBalance(addr))
}

func TestMemoryStateDBLogsRevert(t *testing.T) {
	s := NewMemoryStateDB()
	snap := s.Snapshot()
	s.AddLog(&vm.Log{})
	require.Len(t, s.Logs(), 1)

	s.RevertToSnapshot(snap)
	require.Len(t, s.Logs(), 0)
}
