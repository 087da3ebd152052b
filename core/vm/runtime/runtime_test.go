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

package runtime

import (
	"math/big"
	"testing"

	"github.com/coreweave-labs/evmcore/core/state"
	"github.com/coreweave-labs/evmcore/core/vm"
)

// PUSH1 3, PUSH1 5, ADD, STOP.
func TestExecuteArithmetic(t *testing.T) {
	code := []byte{0x60, 0x03, 0x60, 0x05, 0x01, 0x00}
	_, leftOver, err := Execute(code, nil, &Config{GasLimit: big.NewInt(100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := uint64(100 - 9); leftOver != want {
		t.Errorf("leftover gas = %d, want %d", leftOver, want)
	}
}

// PUSH1 1, PUSH1 2, ADD -- no STOP, but gas runs out before ADD completes.
func TestExecuteOutOfGas(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01}
	_, leftOver, err := Execute(code, nil, &Config{GasLimit: big.NewInt(5)})
	if err != vm.OutOfGasError {
		t.Fatalf("err = %v, want OutOfGasError", err)
	}
	if leftOver != 0 {
		t.Errorf("leftover gas = %d, want 0 on exceptional halt", leftOver)
	}
}

// PUSH1 5, JUMP, STOP, STOP, STOP -- byte 5 is STOP, not JUMPDEST.
func TestExecuteBadJump(t *testing.T) {
	code := []byte{0x60, 0x05, 0x56, 0x00, 0x00, 0x00}
	_, leftOver, err := Execute(code, nil, &Config{GasLimit: big.NewInt(100)})
	if err == nil {
		t.Fatal("expected an invalid jump destination error")
	}
	if leftOver != 0 {
		t.Errorf("leftover gas = %d, want 0 on exceptional halt", leftOver)
	}
}

// PUSH1 4, JUMP, STOP, JUMPDEST, STOP.
func TestExecuteValidJump(t *testing.T) {
	code := []byte{0x60, 0x04, 0x56, 0x00, 0x5b, 0x00}
	_, leftOver, err := Execute(code, nil, &Config{GasLimit: big.NewInt(100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := uint64(100 - 12); leftOver != want {
		t.Errorf("leftover gas = %d, want %d", leftOver, want)
	}
}

// PUSH1 0, PUSH1 0, MSTORE, STOP -- one word of memory expansion.
func TestExecuteMemoryExpansion(t *testing.T) {
	code := []byte{0x60, 0x00, 0x60, 0x00, 0x52, 0x00}
	_, leftOver, err := Execute(code, nil, &Config{GasLimit: big.NewInt(100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// two PUSH1 (3 each) + MSTORE (3 base + 3 memory expansion) + STOP (0).
	if want := uint64(100 - 12); leftOver != want {
		t.Errorf("leftover gas = %d, want %d", leftOver, want)
	}
}

func TestExecuteExpCost(t *testing.T) {
	cases := []struct {
		name     string
		code     []byte
		expExtra uint64
	}{
		// PUSH1 0 (exponent), PUSH1 2 (base), EXP, STOP.
		{"exponent zero", []byte{0x60, 0x00, 0x60, 0x02, 0x0a, 0x00}, 0},
		// PUSH1 1 (exponent), PUSH1 2 (base), EXP, STOP.
		{"exponent one", []byte{0x60, 0x01, 0x60, 0x02, 0x0a, 0x00}, 10},
		// PUSH2 0x0100 (exponent), PUSH1 2 (base), EXP, STOP.
		{"exponent 256", []byte{0x61, 0x01, 0x00, 0x60, 0x02, 0x0a, 0x00}, 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, leftOver, err := Execute(c.code, nil, &Config{GasLimit: big.NewInt(1000)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// both pushes cost 3 each regardless of PUSH1 vs PUSH2; EXP's
			// static cost is 10, plus 10 per exponent byte.
			used := uint64(1000) - leftOver
			want := uint64(3+3+10) + c.expExtra
			if used != want {
				t.Errorf("gas used = %d, want %d", used, want)
			}
		})
	}
}

// PUSH1 0, PUSH1 0, REVERT -- empty return data, no memory expansion, so
// the only cost is the two PUSH1s; REVERT itself is zero-gas. The unused
// gas must come back to the caller rather than being forfeited the way an
// exceptional halt's would be.
func TestExecuteRevert(t *testing.T) {
	code := []byte{0x60, 0x00, 0x60, 0x00, 0xfd}
	_, leftOver, err := Execute(code, nil, &Config{GasLimit: big.NewInt(100)})
	if err != vm.ErrRevert {
		t.Fatalf("err = %v, want ErrRevert", err)
	}
	if want := uint64(100 - (3 + 3)); leftOver != want {
		t.Errorf("leftover gas = %d, want %d (REVERT must preserve unused gas)", leftOver, want)
	}
}

// TestExecuteSstoreGas runs three SSTOREs to the same slot against one
// shared state, exercising all three of SSTORE's gas tiers: zero->non-zero
// (20000), non-zero->non-zero (5000), and non-zero->zero (5000, plus a
// 15000 refund recorded on the statedb but not reflected in leftover gas --
// applying refunds against the gas bill is a transaction-level concern this
// package's one-shot Execute doesn't implement).
func TestExecuteSstoreGas(t *testing.T) {
	db := state.NewMemoryStateDB()
	cfg := &Config{GasLimit: big.NewInt(100000), State: db}

	// PUSH1 0x2a, PUSH1 0x00, SSTORE, STOP -- slot 0 was empty, now non-zero.
	_, leftOver, err := Execute([]byte{0x60, 0x2a, 0x60, 0x00, 0x55, 0x00}, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := uint64(100000 - (3 + 3 + 20000)); leftOver != want {
		t.Errorf("leftover gas after zero->non-zero SSTORE = %d, want %d", leftOver, want)
	}

	// PUSH1 0x2b, PUSH1 0x00, SSTORE, STOP -- slot 0 was non-zero, still non-zero.
	_, leftOver, err = Execute([]byte{0x60, 0x2b, 0x60, 0x00, 0x55, 0x00}, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := uint64(100000 - (3 + 3 + 5000)); leftOver != want {
		t.Errorf("leftover gas after non-zero->non-zero SSTORE = %d, want %d", leftOver, want)
	}

	// PUSH1 0x00, PUSH1 0x00, SSTORE, STOP -- slot 0 was non-zero, cleared to zero.
	_, leftOver, err = Execute([]byte{0x60, 0x00, 0x60, 0x00, 0x55, 0x00}, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := uint64(100000 - (3 + 3 + 5000)); leftOver != want {
		t.Errorf("leftover gas after non-zero->zero SSTORE = %d, want %d", leftOver, want)
	}
	if got := db.GetRefund().Uint64(); got != 15000 {
		t.Errorf("refund recorded = %d, want 15000", got)
	}
}
