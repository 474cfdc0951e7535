// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// zeroArray32 zeroes the contents of a 32-byte array, used to clear
// sensitive private key and nonce material from memory as soon as it is no
// longer needed.
func zeroArray32(a *[32]byte) {
	for i := range a {
		a[i] = 0
	}
}

// IsValidPrivateKey returns whether the given raw, unreduced big-endian
// byte slice represents a value suitable for use as a secp256k1 private
// key, that is to say 1 <= d <= N-1.
//
// Unlike ModNScalar.SetByteSlice, this rejects an out-of-range value rather
// than silently reducing it, since a caller asking this specific question
// is asking about the raw input, not about its residue mod N.
func IsValidPrivateKey(b []byte) bool {
	if len(b) != PrivKeyBytesLen {
		return false
	}
	var s ModNScalar
	overflow := s.SetByteSlice(b)
	return !overflow && !s.IsZero()
}
