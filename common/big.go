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

import "math/big"

var (
	tt255   = BigPow(2, 255)
	tt256   = BigPow(2, 256)
	tt256m1 = new(big.Int).Sub(tt256, big.NewInt(1))

	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)
	Big2 = big.NewInt(2)
	Big3 = big.NewInt(3)

	Big32  = big.NewInt(32)
	Big256 = big.NewInt(256)
	Big257 = big.NewInt(257)
)

// BitTest reports whether bit n of a is set.
func BitTest(a *big.Int, n int) bool {
	return a.Bit(n) == 1
}

// BigToBytes returns a's big-endian representation padded to nbits/8 bytes.
func BigToBytes(a *big.Int, nbits int) []byte {
	return PaddedBigBytes(a, nbits/8)
}

// BigPow returns a ** b as a big integer.
func BigPow(a, b int64) *big.Int {
	r := big.NewInt(a)
	return r.Exp(r, big.NewInt(b), nil)
}

// BigMax returns the larger of a or b, returning the original pointer of
// whichever argument wins rather than a copy.
func BigMax(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// BigMin returns the smaller of a or b, returning the original pointer.
func BigMin(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// U256 wraps x into the unsigned 256-bit range, mutating and returning x.
func U256(x *big.Int) *big.Int {
	return x.And(x, tt256m1)
}

// S256 interprets x (already reduced mod 2**256) as a two's-complement
// signed 256-bit integer.
func S256(x *big.Int) *big.Int {
	if x.Cmp(tt255) < 0 {
		return x
	}
	return new(big.Int).Sub(x, tt256)
}

// PaddedBigBytes returns the big-endian bytes of a, left-padded with zeros to
// n bytes; if a already needs n or more bytes, they are returned unpadded and
// never truncated.
func PaddedBigBytes(a *big.Int, n int) []byte {
	if a.BitLen()/8 >= n {
		return a.Bytes()
	}
	ret := make([]byte, n)
	ReadBits(a, ret)
	return ret
}

// ReadBits fills buf with the big-endian bytes of a, right-aligned.
func ReadBits(a *big.Int, buf []byte) {
	const wordBits = 32 << (uint64(^big.Word(0)) >> 63)
	i := len(buf)
	for _, d := range a.Bits() {
		for j := 0; j < wordBits/8 && i > 0; j++ {
			i--
			buf[i] = byte(d)
			d >>= 8
		}
	}
}

// LeftPadBytes zero-pads b on the left to length l.
func LeftPadBytes(b []byte, l int) []byte {
	if l <= len(b) {
		return b
	}
	padded := make([]byte, l)
	copy(padded[l-len(b):], b)
	return padded
}

// RightPadBytes zero-pads b on the right to length l.
func RightPadBytes(b []byte, l int) []byte {
	if l <= len(b) {
		return b
	}
	padded := make([]byte, l)
	copy(padded, b)
	return padded
}
