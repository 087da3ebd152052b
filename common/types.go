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

package common

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	HashLength    = 32
	AddressLength = 20
)

// Hash is a fixed 32-byte value, the output width of Keccak-256.
type Hash [HashLength]byte

func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

func BigToHash(b *big.Int) Hash {
	return BytesToHash(b.Bytes())
}

func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// EmptyHash reports whether h is the zero hash (used as the storage
// "no value set" sentinel).
func EmptyHash(h Hash) bool {
	return h == Hash{}
}

func (h Hash) Bytes() []byte   { return h[:] }
func (h Hash) Big() *big.Int   { return new(big.Int).SetBytes(h[:]) }
func (h Hash) Hex() string     { return "0x" + hex.EncodeToString(h[:]) }
func (h Hash) String() string {
	return h.Hex()
}

// Address is a fixed 20-byte account identifier.
type Address [AddressLength]byte

func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

func HexToAddress(s string) Address {
	return BytesToAddress(FromHex(s))
}

func BigToAddress(b *big.Int) Address {
	return BytesToAddress(b.Bytes())
}

func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

func (a Address) Bytes() []byte { return a[:] }
func (a Address) Hex() string   { return "0x" + hex.EncodeToString(a[:]) }
func (a Address) String() string {
	return a.Hex()
}

func (a Address) IsEmpty() bool {
	return a == Address{}
}

// FromHex decodes a 0x-prefixed or bare hex string, ignoring errors the way
// the rest of this package's helpers do (malformed input yields nil/short
// output rather than panicking).
func FromHex(s string) []byte {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

func Bytes2Hex(b []byte) string {
	return hex.EncodeToString(b)
}

func Hex2Bytes(s string) []byte {
	b, _ := hex.DecodeString(s)
	return b
}

func (a Address) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%"+string(c), a[:])
}
