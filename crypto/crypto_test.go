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

package crypto

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/coreweave-labs/evmcore/common"
)

func checkhash(t *testing.T, name string, f func([]byte) []byte, msg, exp []byte) {
	sum := f(msg)
	if !bytes.Equal(exp, sum) {
		t.Fatalf("hash %s mismatch: want: %x have: %x", name, exp, sum)
	}
}

// These are sanity checks: they should catch e.g. accidentally using
// SHA3-256 (the NIST finalized variant) instead of the original Keccak-256
// permutation Ethereum actually uses.
func TestKeccak256(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	checkhash(t, "Keccak256", Keccak256, msg, exp)
}

func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	checkhash(t, "Keccak256Hash", func(in []byte) []byte { h := Keccak256Hash(in); return h[:] }, msg, exp)
}

func TestSha256(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	checkhash(t, "Sha256", Sha256, msg, exp)
}

func TestRipemd160(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("8eb208f7e05d987a9b044a8e98c6b087f15a0bfc")
	checkhash(t, "Ripemd160", Ripemd160, msg, exp)
}

func TestEcrecover(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	hash := Keccak256([]byte("test message"))

	sig, err := ecdsa.SignCompact(priv, hash, false)
	if err != nil {
		t.Fatal(err)
	}
	// ecdsa.SignCompact returns [recoveryID+27 || R || S]; convert to the
	// Ethereum [R || S || V] encoding Ecrecover expects.
	ethSig := make([]byte, 65)
	copy(ethSig, sig[1:])
	ethSig[64] = sig[0] - 27

	pub, err := Ecrecover(hash, ethSig)
	if err != nil {
		t.Fatalf("recover error: %s", err)
	}
	want := priv.PubKey().SerializeUncompressed()
	if !bytes.Equal(pub, want) {
		t.Errorf("pubkey mismatch: want: %x have: %x", want, pub)
	}
}

// Test vector: CREATE from sender
// 0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0 at nonce 0 derives
// 0xcd234a471b72ba2f1ccf0a70fcaba648a5eecd8d.
func TestCreateAddress(t *testing.T) {
	sender := common.HexToAddress("0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0")
	want := common.HexToAddress("0xcd234a471b72ba2f1ccf0a70fcaba648a5eecd8d")
	if got := CreateAddress(sender, 0); got != want {
		t.Errorf("CreateAddress = %x, want %x", got, want)
	}
}

func TestCreateAddress2(t *testing.T) {
	sender := common.Address{}
	salt := common.Hash{}
	addr1 := CreateAddress2(sender, salt, []byte{0x00})
	addr2 := CreateAddress2(sender, salt, []byte{0x01})
	if addr1 == addr2 {
		t.Error("CreateAddress2 produced the same address for different init code")
	}
}

func TestValidateSignatureValues(t *testing.T) {
	one := big.NewInt(1)
	if !ValidateSignatureValues(0, one, one, false) {
		t.Error("expected (1, 1, v=0) to validate")
	}
	if ValidateSignatureValues(2, one, one, false) {
		t.Error("v must be 0 or 1")
	}
	if ValidateSignatureValues(0, big.NewInt(0), one, false) {
		t.Error("r must be >= 1")
	}
	if ValidateSignatureValues(0, one, secp256k1N, false) {
		t.Error("s must be < the curve order")
	}
	// homestead rejects high-s even though it's otherwise in range.
	highS := new(big.Int).Add(secp256k1halfN, one)
	if ValidateSignatureValues(0, one, highS, true) {
		t.Error("homestead must reject s above half the curve order")
	}
	if !ValidateSignatureValues(0, one, highS, false) {
		t.Error("pre-homestead must accept s above half the curve order")
	}
}

func TestVerifySignature(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	hash := Keccak256([]byte("another message"))
	sig, err := ecdsa.SignCompact(priv, hash, false)
	if err != nil {
		t.Fatal(err)
	}
	rs := sig[1:] // drop the recovery id prefix
	if !VerifySignature(priv.PubKey().SerializeUncompressed(), hash, rs) {
		t.Fatal("expected signature to verify")
	}
}
