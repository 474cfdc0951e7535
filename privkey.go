// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/rand"
)

// PrivateKey provides facilities for working with secp256k1 private keys
// within this package and includes functionality such as serializing and
// parsing them as well as computing their associated public key.
type PrivateKey struct {
	Key ModNScalar
}

// NewPrivateKey instantiates a new private key from a scalar.
func NewPrivateKey(key *ModNScalar) *PrivateKey {
	return &PrivateKey{Key: *key}
}

// PrivKeyFromBytes returns a private key based on the provided byte slice,
// which is interpreted as an unsigned 256-bit big-endian integer in the
// range [0, N-1], where N is the order of the curve.
//
// Note that this means passing a slice with more than 32 bytes is
// truncated and that truncated value is reduced modulo N.  It is up to the
// caller to either provide a value in the appropriate range or accept the
// described behavior.  Typically callers should use GeneratePrivateKey
// when creating new private keys, which properly handles generation of an
// appropriate value.
func PrivKeyFromBytes(privKeyBytes []byte) *PrivateKey {
	var d ModNScalar
	d.SetByteSlice(privKeyBytes)
	return NewPrivateKey(&d)
}

// GeneratePrivateKey returns a private key suitable for use with
// secp256k1, generated using the platform CSPRNG and rejection-sampled so
// the result always falls in [1, N-1].
func GeneratePrivateKey() (*PrivateKey, error) {
	var buf [PrivKeyBytesLen]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			str := "failed to read random bytes from platform CSPRNG: " + err.Error()
			return nil, makeError(ErrRandomSourceFailure, str)
		}

		var d ModNScalar
		overflow := d.SetBytes(&buf)
		valid := overflow == 0 && !d.IsZero()
		zeroArray32(&buf)
		if valid {
			return NewPrivateKey(&d), nil
		}
	}
}

// PubKey computes and returns the PublicKey corresponding to this private
// key.
func (p *PrivateKey) PubKey() *PublicKey {
	var result JacobianPoint
	ScalarBaseMultNonConst(&p.Key, &result)
	result.ToAffine()
	return NewPublicKey(&result.X, &result.Y)
}

// Sign generates an ECDSA signature for the provided hash (which should be
// the result of hashing a larger message) using the private key.  The
// produced signature is deterministic (the same message and key yield the
// same signature) and canonical in accordance with RFC6979 and BIP0062.
func (p *PrivateKey) Sign(hash []byte) *Signature {
	return signRFC6979(p, hash)
}

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// Serialize returns the private key as a 256-bit big-endian binary-encoded
// number, padded to a length of 32 bytes.
func (p PrivateKey) Serialize() []byte {
	privKeyBytes := p.Key.Bytes()
	return privKeyBytes[:]
}
