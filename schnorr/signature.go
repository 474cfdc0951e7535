// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schnorr implements BIP-340-style Schnorr signatures over the
// secp256k1 curve, using x-only public keys and SHA-256 tagged hashing for
// nonce and challenge derivation.
package schnorr

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/curvekit/secp256k1"
)

const (
	// SignatureSize is the size of an encoded Schnorr signature.
	SignatureSize = 64

	// scalarSize is the size of an encoded big endian scalar or field
	// element.
	scalarSize = 32
)

// Signature is a type representing a BIP-340 Schnorr signature.
type Signature struct {
	r secp256k1.FieldVal
	s secp256k1.ModNScalar
}

// NewSignature instantiates a new signature given some r and s values.
func NewSignature(r *secp256k1.FieldVal, s *secp256k1.ModNScalar) *Signature {
	var sig Signature
	sig.r.Set(r).Normalize()
	sig.s.Set(s)
	return &sig
}

// Serialize returns the Schnorr signature as the 64-byte concatenation
// r(32) || s(32), per BIP-340.
func (sig Signature) Serialize() []byte {
	var b [SignatureSize]byte
	sig.r.PutBytes((*[32]byte)(b[0:32]))
	sig.s.PutBytes((*[32]byte)(b[32:64]))
	return b[:]
}

// ParseSignature parses a signature according to the BIP-340 encoding and
// enforces the following additional restrictions specific to secp256k1:
//
//   - The r component must be in the valid range for secp256k1 field
//     elements (r < p)
//   - The s component must be in the valid range for secp256k1 scalars
//     (s < n)
func ParseSignature(sig []byte) (*Signature, error) {
	sigLen := len(sig)
	if sigLen < SignatureSize {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", sigLen,
			SignatureSize)
		return nil, signatureError(ErrSigTooShort, str)
	}
	if sigLen > SignatureSize {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", sigLen,
			SignatureSize)
		return nil, signatureError(ErrSigTooLong, str)
	}

	var r secp256k1.FieldVal
	if new(big.Int).SetBytes(sig[0:32]).Cmp(secp256k1.Params().P) >= 0 {
		str := "invalid signature: r >= field prime"
		return nil, signatureError(ErrSigRTooBig, str)
	}
	r.SetByteSlice(sig[0:32])
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(sig[32:64]); overflow {
		str := "invalid signature: s >= group order"
		return nil, signatureError(ErrSigSTooBig, str)
	}

	return NewSignature(&r, &s), nil
}

// IsEqual compares this Signature instance to the one passed, returning true
// if both Signatures are equivalent.  A signature is equivalent to another
// if they both have the same value for R and S.
func (sig Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Equals(&otherSig.r) && sig.s.Equals(&otherSig.s)
}

// taggedHash computes SHA256(SHA256(tag) || SHA256(tag) || msg...) as
// defined by BIP-340, domain-separating nonce and challenge derivation from
// each other and from any other hash use under the same tag namespace.
func taggedHash(tag string, msgs ...[]byte) [sha256.Size]byte {
	tagHash := sha256.Sum256([]byte(tag))

	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, msg := range msgs {
		h.Write(msg)
	}

	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// liftX lifts a field element x to the unique point on the curve with that
// x-coordinate and an even y-coordinate, per BIP-340's lift_x, returning an
// error if x is not the x-coordinate of any curve point.
func liftX(x *secp256k1.FieldVal) (*secp256k1.JacobianPoint, error) {
	var y secp256k1.FieldVal
	if !secp256k1.DecompressY(x, false, &y) {
		str := "x coordinate is not valid for any point on the curve"
		return nil, signatureError(ErrPubKeyNotOnCurve, str)
	}

	var p secp256k1.JacobianPoint
	p.X.Set(x)
	p.Y.Set(&y)
	p.Z.SetInt(1)
	return &p, nil
}

// PublicKey is an x-only secp256k1 public key as used by BIP-340: the
// y-coordinate is not carried since verification always reconstructs the
// point with an even y.
type PublicKey struct {
	x secp256k1.FieldVal
}

// NewPublicKey instantiates a new x-only public key from a field value.
func NewPublicKey(x *secp256k1.FieldVal) *PublicKey {
	var pk PublicKey
	pk.x.Set(x).Normalize()
	return &pk
}

// ParsePubKey parses a 32-byte x-only public key, verifying it is the
// x-coordinate of a point on the curve.
func ParsePubKey(serialized []byte) (*PublicKey, error) {
	if len(serialized) != scalarSize {
		str := fmt.Sprintf("malformed public key: invalid length: %d",
			len(serialized))
		return nil, signatureError(ErrPubKeyInvalidLen, str)
	}

	var x secp256k1.FieldVal
	if new(big.Int).SetBytes(serialized).Cmp(secp256k1.Params().P) >= 0 {
		str := "invalid public key: x >= field prime"
		return nil, signatureError(ErrPubKeyXTooBig, str)
	}
	x.SetByteSlice(serialized)
	if _, err := liftX(&x); err != nil {
		return nil, err
	}

	return NewPublicKey(&x), nil
}

// SerializeCompressed returns the public key as its 32-byte x-only
// encoding.
func (p PublicKey) SerializeCompressed() []byte {
	b := p.x.Bytes()
	return b[:]
}

// challenge computes e = int(tagged_hash("BIP0340/challenge", R.x || P.x ||
// m)) mod n, the shared computation used by both signing and verification.
func challenge(rx, px *secp256k1.FieldVal, hash []byte) secp256k1.ModNScalar {
	rxBytes := rx.Bytes()
	pxBytes := px.Bytes()
	commitment := taggedHash("BIP0340/challenge", rxBytes[:], pxBytes[:], hash)

	var e secp256k1.ModNScalar
	e.SetByteSlice(commitment[:])
	return e
}

// schnorrSign implements the BIP-340 sign algorithm: it computes P = d*G,
// negates d if P has an odd y so the public key used by verification always
// has even y, derives a tagged deterministic nonce from d, P.x, and the
// message, and folds the nonce's own oddness the same way before computing
// s = k + e*d (mod n).
func schnorrSign(privKey *secp256k1.PrivateKey, hash []byte) (*Signature, error) {
	if len(hash) != scalarSize {
		str := fmt.Sprintf("wrong size for message (got %v, want %v)",
			len(hash), scalarSize)
		return nil, signatureError(ErrBadInputSize, str)
	}

	d := privKey.Key
	var P secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&d, &P)
	P.ToAffine()
	if P.Y.IsOdd() {
		d.Negate()
	}
	pxBytes := P.X.Bytes()

	dBytes := d.Bytes()
	defer zeroArray32(&dBytes)
	nonceCommitment := taggedHash("BIP0340/nonce", dBytes[:], pxBytes[:], hash)

	var k0 secp256k1.ModNScalar
	k0.SetByteSlice(nonceCommitment[:])
	if k0.IsZero() {
		str := "generated nonce is zero"
		return nil, signatureError(ErrSchnorrNonceZero, str)
	}

	var R secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k0, &R)
	R.ToAffine()
	k := k0
	if R.Y.IsOdd() {
		k.Negate()
	}

	e := challenge(&R.X, &P.X, hash)
	s := new(secp256k1.ModNScalar).Mul2(&e, &d).Add(&k)

	return NewSignature(&R.X, s), nil
}

// Sign generates a BIP-340 Schnorr signature for the provided hash (which
// should be the result of hashing a larger message) using the given private
// key.  Nonce generation is deterministic: the same key and hash always
// produce the same signature.
func Sign(privKey *secp256k1.PrivateKey, hash []byte) (*Signature, error) {
	return schnorrSign(privKey, hash)
}

// schnorrVerify implements the BIP-340 verify algorithm.
func schnorrVerify(sig *Signature, pubKey *PublicKey, hash []byte) error {
	if len(hash) != scalarSize {
		str := fmt.Sprintf("wrong size for message (got %v, want %v)",
			len(hash), scalarSize)
		return signatureError(ErrBadInputSize, str)
	}

	P, err := liftX(&pubKey.x)
	if err != nil {
		return err
	}

	e := challenge(&sig.r, &P.X, hash)

	// R' = s*G - e*P
	var sG, eP, negEP, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&sig.s, &sG)
	secp256k1.ScalarMultNonConst(&e, P, &eP)
	secp256k1.NegateNonConst(&eP, &negEP)
	secp256k1.AddNonConst(&sG, &negEP, &sum)

	if sum.IsInfinity() {
		str := "calculated R point is the point at infinity"
		return signatureError(ErrSigRNotOnCurve, str)
	}
	sum.ToAffine()
	if sum.Y.IsOdd() {
		str := "calculated R y-value is odd"
		return signatureError(ErrBadSigRYValue, str)
	}
	if !sum.X.Equals(&sig.r) {
		str := "calculated R point was not given R"
		return signatureError(ErrUnequalRValues, str)
	}

	return nil
}

// Verify reports whether sig is a valid BIP-340 Schnorr signature of hash
// under the x-only public key pubKey.
func (sig *Signature) Verify(hash []byte, pubKey *PublicKey) bool {
	return schnorrVerify(sig, pubKey, hash) == nil
}

// zeroArray32 zeroes the contents of a 32-byte array, used to clear
// sensitive private scalar material from memory as soon as it is no longer
// needed.
func zeroArray32(a *[32]byte) {
	for i := range a {
		a[i] = 0
	}
}
