// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"
)

const (
	// PubKeyBytesLenCompressed is the number of bytes of a serialized
	// compressed public key.
	PubKeyBytesLenCompressed = 33

	// PubKeyBytesLenUncompressed is the number of bytes of a serialized
	// uncompressed public key.
	PubKeyBytesLenUncompressed = 65

	pubkeyCompressed   byte = 0x2 // y_bit + x coord
	pubkeyUncompressed byte = 0x4 // x coord + y coord
	pubkeyHybrid       byte = 0x6 // y_bit + x coord + y coord
)

// PublicKey provides facilities for efficiently working with secp256k1
// public keys within this package and includes functionality such as
// serializing and parsing them as well as computing their curve point.
type PublicKey struct {
	x, y FieldVal
}

// NewPublicKey instantiates a new public key with the given x and y
// coordinates.
//
// It should be noted that, unlike ParsePubKey, since this accepts arbitrary
// x and y coordinates, it allows creation of public keys that are not valid
// points on the secp256k1 curve.  Use AsJacobian/IsOnCurve to validate the
// result when the coordinates come from an untrusted source.
func NewPublicKey(x, y *FieldVal) *PublicKey {
	var pubKey PublicKey
	pubKey.x.Set(x)
	pubKey.y.Set(y)
	return &pubKey
}

// ParsePubKey parses a secp256k1 public key encoded according to the format
// specified by ANSI X9.62-1998, i.e. byte sequences that are:
//   - 0x02<32-byte X coordinate> (compressed, even Y)
//   - 0x03<32-byte X coordinate> (compressed, odd Y)
//   - 0x04<32-byte X coordinate><32-byte Y coordinate> (uncompressed)
//   - 0x06 or 0x07, the hybrid format, behaving as uncompressed with an
//     additionally asserted Y oddness bit
func ParsePubKey(serialized []byte) (key *PublicKey, err error) {
	var x, y FieldVal
	switch len(serialized) {
	case PubKeyBytesLenUncompressed:
		b0 := serialized[0]
		isHybrid := b0 == pubkeyHybrid || b0 == pubkeyHybrid|0x1
		if b0 != pubkeyUncompressed && !isHybrid {
			str := "invalid public key: unsupported format"
			return nil, makeError(ErrPubKeyInvalidFormat, str)
		}

		if new(big.Int).SetBytes(serialized[1:33]).Cmp(fieldPrimeBig) >= 0 {
			str := "invalid public key: x >= field prime"
			return nil, makeError(ErrPubKeyXTooBig, str)
		}
		if new(big.Int).SetBytes(serialized[33:65]).Cmp(fieldPrimeBig) >= 0 {
			str := "invalid public key: y >= field prime"
			return nil, makeError(ErrPubKeyYTooBig, str)
		}
		x.SetByteSlice(serialized[1:33])
		y.SetByteSlice(serialized[33:65])
		if isHybrid && y.IsOdd() != (b0&0x1 == 1) {
			str := "invalid public key: hybrid oddness byte does not match " +
				"oddness of y coordinate"
			return nil, makeError(ErrPubKeyMismatchedOddness, str)
		}

		if !isOnCurve(&x, &y) {
			str := "invalid public key: not a point on the secp256k1 curve"
			return nil, makeError(ErrPubKeyNotOnCurve, str)
		}

	case PubKeyBytesLenCompressed:
		format := serialized[0]
		ybit := (format & 0x1) == 1
		format &= ^byte(0x1)
		if format != pubkeyCompressed {
			str := "invalid public key: unsupported format"
			return nil, makeError(ErrPubKeyInvalidFormat, str)
		}

		if new(big.Int).SetBytes(serialized[1:33]).Cmp(fieldPrimeBig) >= 0 {
			str := "invalid public key: x >= field prime"
			return nil, makeError(ErrPubKeyXTooBig, str)
		}
		x.SetByteSlice(serialized[1:33])
		if valid := DecompressY(&x, ybit, &y); !valid {
			str := "invalid public key: x coordinate is not on the curve"
			return nil, makeError(ErrPubKeyNotOnCurve, str)
		}
		y.Normalize()

	default:
		str := "invalid public key: malformed public key"
		return nil, makeError(ErrPubKeyInvalidLen, str)
	}

	return NewPublicKey(&x, &y), nil
}

// DecompressY attempts to calculate the Y coordinate for the given X
// coordinate such that the result pair is a point on the secp256k1 curve.
// It adjusts Y based on the desired oddness and returns whether or not it
// was successful since not all X coordinates are valid.  It decompresses
// via y = sqrt(x^3+7), flipping sign to match the requested parity.
func DecompressY(x *FieldVal, odd bool, resultY *FieldVal) bool {
	var x3PlusB FieldVal
	x3PlusB.SquareVal(x).Mul(x).Add(curveB)
	if _, err := resultY.Sqrt(&x3PlusB); err != nil {
		return false
	}
	if resultY.Normalize().IsOdd() != odd {
		resultY.Negate(1).Normalize()
	}
	return true
}

// X returns the x coordinate of the public key.
func (p PublicKey) X() *big.Int {
	xBytes := p.x.Bytes()
	return new(big.Int).SetBytes(xBytes[:])
}

// Y returns the y coordinate of the public key.
func (p PublicKey) Y() *big.Int {
	yBytes := p.y.Bytes()
	return new(big.Int).SetBytes(yBytes[:])
}

// AsJacobian converts the public key into a Jacobian point with Z=1 and
// stores the result in result.
func (p *PublicKey) AsJacobian(result *JacobianPoint) {
	result.X.Set(&p.x)
	result.Y.Set(&p.y)
	result.Z.SetInt(1)
}

// IsOnCurve returns whether the public key represents a point on the
// secp256k1 curve.
func (p *PublicKey) IsOnCurve() bool {
	return isOnCurve(&p.x, &p.y)
}

// SerializeUncompressed serializes the public key in the uncompressed
// format: 0x04 followed by the 32-byte X and 32-byte Y coordinates.
func (p PublicKey) SerializeUncompressed() []byte {
	var b [PubKeyBytesLenUncompressed]byte
	b[0] = pubkeyUncompressed
	p.x.Normalize().PutBytesUnchecked(b[1:33])
	p.y.Normalize().PutBytesUnchecked(b[33:65])
	return b[:]
}

// SerializeCompressed serializes the public key in the compressed format:
// a parity-tagged format byte (0x02 or 0x03) followed by the 32-byte X
// coordinate.
func (p PublicKey) SerializeCompressed() []byte {
	var b [PubKeyBytesLenCompressed]byte
	format := pubkeyCompressed
	if p.y.Normalize().IsOdd() {
		format |= 0x1
	}
	b[0] = format
	p.x.Normalize().PutBytesUnchecked(b[1:33])
	return b[:]
}

// IsEqual returns whether or not the two public keys are equal.
func (p *PublicKey) IsEqual(otherPubKey *PublicKey) bool {
	return p.x.Equals(&otherPubKey.x) && p.y.Equals(&otherPubKey.y)
}
