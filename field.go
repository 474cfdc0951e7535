// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"
)

// FieldVal implements optimized fixed-precision arithmetic over the
// secp256k1 base field, that is to say integers modulo the field prime
//
//	p = 2^256 - 2^32 - 977
//
// A FieldVal is always kept normalized, meaning the underlying value is
// stored in the half-open range [0, p).  Unlike the classic decred
// implementation, which packs the value into ten 26/22-bit limbs to get
// hand-tuned constant-ish-time reduction, this implementation keeps the
// value in a *big.Int and reduces after every operation.  Go already ships
// an arbitrary-precision integer package, so there is no need to hand-roll
// limb arithmetic the way a language without one would; see DESIGN.md for
// the full rationale, including the resulting timing caveat.
//
// The chained-method shape (Add, Add2, Negate, MulInt, Normalize, ...),
// including the "retained magnitude" argument accepted by Negate, mirrors
// the real field element type so call sites written against it need no
// changes; the magnitude bookkeeping itself is a no-op here since a
// normalized big.Int has no notion of limb overflow.
type FieldVal struct {
	val big.Int
}

// fieldPrimeBig is the secp256k1 base field prime,
// p = 2^256 - 2^32 - 977.
var fieldPrimeBig = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 256)
	p.Sub(p, new(big.Int).Lsh(big.NewInt(1), 32))
	p.Sub(p, big.NewInt(977))
	return p
}()

// reduce normalizes v into [0, p).
func (f *FieldVal) reduce() *FieldVal {
	f.val.Mod(&f.val, fieldPrimeBig)
	return f
}

// Normalize normalizes the internal representation.  It is a no-op for this
// big.Int backed implementation since every mutator already reduces, but it
// is retained for API parity with call sites that chain it.
func (f *FieldVal) Normalize() *FieldVal {
	return f.reduce()
}

// Set sets f equal to the passed field value and returns f for chaining.
func (f *FieldVal) Set(val *FieldVal) *FieldVal {
	f.val.Set(&val.val)
	return f
}

// SetInt sets f to the passed small, non-negative integer and returns f for
// chaining.
func (f *FieldVal) SetInt(ui uint16) *FieldVal {
	f.val.SetUint64(uint64(ui))
	return f
}

// SetBytes interprets the passed 32-byte big-endian array as an unsigned
// integer, reduces it modulo the field prime, stores the result in f, and
// returns f for chaining.
func (f *FieldVal) SetBytes(b *[32]byte) *FieldVal {
	f.val.SetBytes(b[:])
	return f.reduce()
}

// SetByteSlice interprets the passed slice as a big-endian unsigned integer,
// zero-padding or truncating from the left as needed, reduces it modulo the
// field prime, stores the result in f, and returns f for chaining.
//
// Note that truncation of a slice longer than 32 bytes means the caller
// must be mindful of the values for which this is an appropriate policy, as
// documented on the exported field/scalar parse functions that rely on it.
func (f *FieldVal) SetByteSlice(b []byte) *FieldVal {
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	f.val.SetBytes(b)
	return f.reduce()
}

// SetHex decodes the passed big-endian hex string into f, reduces it modulo
// the field prime, and returns f for chaining.  It panics if the string is
// not valid hex, as it is only intended for hard-coded constants.
func (f *FieldVal) SetHex(hexString string) *FieldVal {
	if len(hexString)%2 != 0 {
		hexString = "0" + hexString
	}
	b, ok := new(big.Int).SetString(hexString, 16)
	if !ok {
		panic("invalid hex in source file: " + hexString)
	}
	f.val.Set(b)
	return f.reduce()
}

// Zero sets f to zero.
func (f *FieldVal) Zero() {
	f.val.SetUint64(0)
}

// IsZero returns whether f is equal to zero.
func (f *FieldVal) IsZero() bool {
	return f.val.Sign() == 0
}

// IsOdd returns whether f, interpreted as an integer, is odd.
func (f *FieldVal) IsOdd() bool {
	return f.val.Bit(0) == 1
}

// IsOddBit returns 1 if f is odd and 0 otherwise, as a convenience for
// building recovery codes and parity bits without a bool-to-int conversion.
func (f *FieldVal) IsOddBit() uint32 {
	return uint32(f.val.Bit(0))
}

// Equals returns whether f and val are equal.
func (f *FieldVal) Equals(val *FieldVal) bool {
	return f.val.Cmp(&val.val) == 0
}

// Add adds val to f and returns f for chaining.
func (f *FieldVal) Add(val *FieldVal) *FieldVal {
	f.val.Add(&f.val, &val.val)
	return f.reduce()
}

// Add2 sets f = val1 + val2 and returns f for chaining.
func (f *FieldVal) Add2(val1, val2 *FieldVal) *FieldVal {
	f.val.Add(&val1.val, &val2.val)
	return f.reduce()
}

// Negate negates f modulo the field prime and returns f for chaining.  The
// magnitude argument is accepted only for call-site compatibility with the
// limb-tracking implementation this mirrors; it has no effect here.
func (f *FieldVal) Negate(_ uint32) *FieldVal {
	f.val.Neg(&f.val)
	return f.reduce()
}

// Mul multiplies f by val and returns f for chaining.
func (f *FieldVal) Mul(val *FieldVal) *FieldVal {
	f.val.Mul(&f.val, &val.val)
	return f.reduce()
}

// Mul2 sets f = val1 * val2 and returns f for chaining.
func (f *FieldVal) Mul2(val1, val2 *FieldVal) *FieldVal {
	f.val.Mul(&val1.val, &val2.val)
	return f.reduce()
}

// MulInt multiplies f by the passed small integer and returns f for
// chaining.
func (f *FieldVal) MulInt(val uint8) *FieldVal {
	f.val.Mul(&f.val, big.NewInt(int64(val)))
	return f.reduce()
}

// Square squares f and returns f for chaining.
func (f *FieldVal) Square() *FieldVal {
	f.val.Mul(&f.val, &f.val)
	return f.reduce()
}

// SquareVal sets f = val * val and returns f for chaining.
func (f *FieldVal) SquareVal(val *FieldVal) *FieldVal {
	f.val.Mul(&val.val, &val.val)
	return f.reduce()
}

// Inverse finds the modular multiplicative inverse of f and stores it in f,
// returning f for chaining.  It is computed via Fermat's little theorem
// (f^(p-2) mod p) rather than the extended Euclidean algorithm, so a secret
// field element (such as a nonce's z coordinate) never drives a
// variable-iteration-count GCD loop.  It returns a non-invertible error if
// f is zero.
func (f *FieldVal) Inverse() (*FieldVal, error) {
	if f.IsZero() {
		str := "cannot invert zero field value"
		return f, makeError(ErrFieldValNotInvertible, str)
	}
	exp := new(big.Int).Sub(fieldPrimeBig, big.NewInt(2))
	f.val.Exp(&f.val, exp, fieldPrimeBig)
	return f, nil
}

// InverseNonConst is the variable-time counterpart of Inverse, computed via
// the extended Euclidean algorithm instead of exponentiation.  It is
// appropriate for inversions whose input is not a secret (e.g. the
// projective-to-affine inversion of a public point).  It returns a
// non-invertible error if f is zero.
func (f *FieldVal) InverseNonConst() (*FieldVal, error) {
	if f.IsZero() {
		str := "cannot invert zero field value"
		return f, makeError(ErrFieldValNotInvertible, str)
	}
	f.val.ModInverse(&f.val, fieldPrimeBig)
	return f, nil
}

// sqrtExponent is (p+1)/4, used for the closed-form square root valid since
// p ≡ 3 (mod 4) for the secp256k1 prime.
var sqrtExponent = func() *big.Int {
	e := new(big.Int).Add(fieldPrimeBig, big.NewInt(1))
	return e.Rsh(e, 2)
}()

// Sqrt sets f to a square root of val and returns f for chaining along with
// an error if val is not a quadratic residue modulo the field prime.  The
// candidate root is verified by squaring it back and comparing to val,
// since the closed-form exponentiation does not itself detect
// non-residues.
func (f *FieldVal) Sqrt(val *FieldVal) (*FieldVal, error) {
	var candidate big.Int
	candidate.Exp(&val.val, sqrtExponent, fieldPrimeBig)

	var check big.Int
	check.Mul(&candidate, &candidate)
	check.Mod(&check, fieldPrimeBig)
	if check.Cmp(&val.val) != 0 {
		str := "value is not a quadratic residue"
		return f, makeError(ErrFieldValNoSquareRoot, str)
	}

	f.val.Set(&candidate)
	return f, nil
}

// Bytes returns the field value as a 32-byte big-endian array.
func (f *FieldVal) Bytes() [32]byte {
	var b [32]byte
	f.PutBytes(&b)
	return b
}

// PutBytes writes the field value as a 32-byte big-endian array into b.
func (f *FieldVal) PutBytes(b *[32]byte) {
	fv := new(big.Int).Mod(&f.val, fieldPrimeBig)
	fv.FillBytes(b[:])
}

// PutBytesUnchecked is the same as PutBytes.  It exists for parity with the
// limb-tracking implementation, where the "unchecked" variant skips a
// magnitude assertion that has no meaning against a big.Int backend.
func (f *FieldVal) PutBytesUnchecked(b []byte) {
	var full [32]byte
	f.PutBytes(&full)
	copy(b, full[:])
}

// String returns the field value as a normalized, zero-padded hex string.
func (f *FieldVal) String() string {
	b := f.Bytes()
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 64)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}

// IsGtOrEqPrimeMinusOrder returns whether f, interpreted as an integer in
// [0, p), is greater than or equal to p - N, where N is the secp256k1 group
// order.  This is used by the ECDSA verify/recover fast paths that avoid
// an affine inversion by reasoning about R.x mod N versus R.x mod P
// directly.
func (f *FieldVal) IsGtOrEqPrimeMinusOrder() bool {
	return f.val.Cmp(fieldPrimeMinusOrder) >= 0
}

var fieldPrimeMinusOrder = new(big.Int).Sub(fieldPrimeBig, curveOrderBig)
