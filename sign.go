// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto"
	"io"
)

// SignOptions implements crypto.SignerOpts for use with CryptoSigner.Sign; the
// digest passed to Sign is expected to already be a hash produced by Hash, so
// Sign never rehashes it.
type SignOptions struct {
	Hash crypto.Hash
}

// HashFunc returns the hash function used to produce the digest passed to
// CryptoSigner.Sign, satisfying crypto.SignerOpts.
func (s *SignOptions) HashFunc() crypto.Hash {
	return s.Hash
}

// CryptoSigner adapts a PrivateKey to the standard library's crypto.Signer
// interface, DER-encoding the resulting ECDSA signature. It is a separate
// type rather than a method directly on PrivateKey because crypto.Signer's
// Sign method signature would otherwise collide with PrivateKey.Sign's
// hash-only convenience signature.
type CryptoSigner struct {
	*PrivateKey
}

// Public returns the public key corresponding to the signer's private key,
// satisfying crypto.Signer.
func (s CryptoSigner) Public() crypto.PublicKey {
	return s.PrivateKey.PubKey().ToECDSA()
}

// Sign signs digest (which must already be the output of opts.HashFunc, or
// of any hash if opts is nil) and returns a DER-encoded ECDSA signature,
// satisfying crypto.Signer.
func (s CryptoSigner) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	sig := Sign(s.PrivateKey, digest)
	return sig.Serialize(), nil
}
