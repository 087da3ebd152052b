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
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/coreweave-labs/evmcore/common"
)

var (
	secp256k1N       = new(big.Int).SetBytes(common.FromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"))
	secp256k1halfN   = new(big.Int).Rsh(secp256k1N, 1)
)

// ValidateSignatureValues reports whether r, s and v (assumed normalized to
// 0 or 1) form a signature that the secp256k1 curve will accept. Under
// Homestead, s is additionally required to sit in the lower half of the
// curve order to reject the trivial signature-malleability transform.
func ValidateSignatureValues(v byte, r, s *big.Int, homestead bool) bool {
	if r.Cmp(common.Big1) < 0 || s.Cmp(common.Big1) < 0 {
		return false
	}
	if homestead && s.Cmp(secp256k1halfN) > 0 {
		return false
	}
	return r.Cmp(secp256k1N) < 0 && s.Cmp(secp256k1N) < 0 && (v == 0 || v == 1)
}

// Keccak256 hashes each arg in turn and returns the combined Keccak-256
// digest (the "legacy" SHA3 construction EVM's SHA3 opcode and Ethereum's
// address derivation both use, not NIST SHA3).
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

func Keccak256Hash(data ...[]byte) (h common.Hash) {
	h.SetBytes(Keccak256(data...))
	return h
}

func Sha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func Ripemd160(data []byte) []byte {
	d := ripemd160.New()
	d.Write(data)
	return d.Sum(nil)
}

// CreateAddress derives the address of a contract created via CREATE: the
// rightmost 20 bytes of keccak256(rlp([sender, nonce])).
func CreateAddress(b common.Address, nonce uint64) common.Address {
	return common.BytesToAddress(Keccak256(rlpEncodeAddrNonce(b, nonce))[12:])
}

// rlpEncodeAddrNonce RLP-encodes the two-element list [address, nonce].
// CREATE's address derivation is the only place this package needs RLP, so
// rather than pull in a general encoder it hand-rolls this one shape.
func rlpEncodeAddrNonce(addr common.Address, nonce uint64) []byte {
	addrItem := rlpEncodeBytes(addr.Bytes())
	nonceItem := rlpEncodeBytes(rlpUint(nonce))

	body := append(addrItem, nonceItem...)
	return append(rlpListHeader(len(body)), body...)
}

func rlpUint(n uint64) []byte {
	if n == 0 {
		return nil
	}
	b := big.NewInt(0).SetUint64(n).Bytes()
	return b
}

func rlpEncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	if len(b) < 56 {
		return append([]byte{0x80 + byte(len(b))}, b...)
	}
	lenBytes := big.NewInt(int64(len(b))).Bytes()
	header := append([]byte{0xb7 + byte(len(lenBytes))}, lenBytes...)
	return append(header, b...)
}

func rlpListHeader(bodyLen int) []byte {
	if bodyLen < 56 {
		return []byte{0xc0 + byte(bodyLen)}
	}
	lenBytes := big.NewInt(int64(bodyLen)).Bytes()
	return append([]byte{0xf7 + byte(len(lenBytes))}, lenBytes...)
}

func CreateAddress2(b common.Address, salt common.Hash, inithash []byte) common.Address {
	return common.BytesToAddress(Keccak256([]byte{0xff}, b.Bytes(), salt.Bytes(), inithash)[12:])
}

// Ecrecover returns the uncompressed secp256k1 public key that produced
// sig over hash. sig is the 65-byte [R || S || V] Ethereum signature
// encoding; V is 0 or 1 (already normalized, not the raw 27/28 value).
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := sigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// VerifySignature reports whether sig (the 64-byte [R || S] portion, V
// dropped) is a valid secp256k1 signature over hash for the given
// uncompressed or compressed public key.
func VerifySignature(pubkey, hash, sig []byte) bool {
	if len(sig) != 64 {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	r.SetByteSlice(sig[:32])
	s.SetByteSlice(sig[32:64])
	signature := ecdsa.NewSignature(&r, &s)
	return signature.Verify(hash, pub)
}

func sigToPub(hash, sig []byte) (*secp256k1.PublicKey, error) {
	if len(sig) != 65 {
		return nil, errors.New("crypto: invalid signature length")
	}
	// Ethereum encodes the signature as [R || S || V] with V in {0, 1};
	// decred's compact format wants [recoveryID+27 || R || S].
	compact := make([]byte, 65)
	compact[0] = sig[64] + 27
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, fmt.Errorf("crypto: recover failed: %w", err)
	}
	return pub, nil
}
