// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// rfc6979OctetLen is rlen from RFC 6979 section 2.3.3, the length in octets
// of the group order N for secp256k1's 256-bit curve.
const rfc6979OctetLen = 32

// int2octets implements RFC 6979 section 2.3.3: it left-pads v's minimal
// big-endian encoding with zeros, or drops v's most-significant octets, so
// the result is always exactly rfc6979OctetLen bytes long.  v is assumed to
// already be less than N, as is the case for a private key and for the
// reduced result of bits2int below.
func int2octets(v *big.Int) []byte {
	out := v.Bytes()
	octets := make([]byte, rfc6979OctetLen)
	if len(out) >= rfc6979OctetLen {
		copy(octets, out[len(out)-rfc6979OctetLen:])
	} else {
		copy(octets[rfc6979OctetLen-len(out):], out)
	}
	return octets
}

// bits2int implements RFC 6979 section 2.3.2 for secp256k1's 256-bit group
// order: it takes the leftmost rfc6979OctetLen*8 bits of in (truncating any
// excess trailing bits/bytes, left-padding implicitly via big.Int.SetBytes
// when in is shorter) and returns the resulting integer. Because the
// secp256k1 group order's bit length is an exact multiple of 8, no
// sub-byte shift is ever needed.
func bits2int(in []byte) *big.Int {
	if len(in) > rfc6979OctetLen {
		in = in[:rfc6979OctetLen]
	}
	return new(big.Int).SetBytes(in)
}

// bits2octets implements RFC 6979 section 2.3.4: it reduces bits2int(in)
// modulo N with a single conditional subtraction (valid since the result of
// bits2int is always less than 2*N for a 256-bit order) and re-encodes the
// result via int2octets.
func bits2octets(in []byte) []byte {
	z1 := bits2int(in)
	z2 := new(big.Int).Sub(z1, curveOrderBig)
	if z2.Sign() < 0 {
		return int2octets(z1)
	}
	return int2octets(z2)
}

// NonceRFC6979 generates a deterministic ECDSA/Schnorr nonce per RFC 6979
// section 3.2 using HMAC-SHA-256 as the PRF and the secp256k1 group order N
// as the modulus.
//
// extra is mixed into the seed only when it is exactly 32 bytes, and
// version only when it is exactly 16 bytes; a wrong-length extra or version
// is ignored entirely.  Passing a distinct version tag for each signing
// scheme that shares a private key (e.g. one tag for ECDSA, another for
// Schnorr) keeps their nonce streams from colliding for the same key and
// message. When version is present but extra is not (or is the wrong
// length), 32 zero bytes are mixed in in extra's place, so that appending a
// version tag never changes the byte offset of what follows it.
//
// extraIterations skips that many otherwise-valid candidate nonces before
// returning, which the ECDSA/Schnorr signing retry loops use to deterministically
// advance to the next candidate when a given nonce produces an invalid
// signature (e.g. r == 0).
func NonceRFC6979(privKey, hash, extra, version []byte, extraIterations uint32) *ModNScalar {
	// Step a.
	//
	// Process m through the hash function H to produce:
	//
	//   h1 = H(m)
	//
	// The caller is expected to pass the already-hashed value, so no hashing
	// is performed here.

	// int2octets(x) and bits2octets(h1) canonicalize the private key and
	// hash to exactly rfc6979OctetLen bytes regardless of the length the
	// caller happened to pass in; a longer private key is first truncated
	// to its leftmost rfc6979OctetLen bytes, as bits2int does for the hash.
	if len(privKey) > rfc6979OctetLen {
		privKey = privKey[:rfc6979OctetLen]
	}
	bx := int2octets(new(big.Int).SetBytes(privKey))
	bx = append(bx, bits2octets(hash)...)
	if len(extra) == 32 {
		bx = append(bx, extra...)
	} else if len(version) == 16 {
		var zeroExtra [32]byte
		bx = append(bx, zeroExtra[:]...)
	}
	if len(version) == 16 {
		bx = append(bx, version...)
	}

	// Step b.
	//
	// V = 0x01 0x01 0x01 ... 0x01 (32 bytes)
	const sha256Size = sha256.Size
	var v [sha256Size]byte
	for i := range v {
		v[i] = 0x01
	}

	// Step c.
	//
	// K = 0x00 0x00 0x00 ... 0x00 (32 bytes)
	var k [sha256Size]byte

	// Step d.
	//
	// K = HMAC_K(V || 0x00 || int2octets(x) || bits2octets(h1) || extra || version)
	mac := hmac.New(sha256.New, k[:])
	mac.Write(v[:])
	mac.Write([]byte{0x00})
	mac.Write(bx)
	k = sum256(mac)

	// Step e.
	//
	// V = HMAC_K(V)
	v = hmacSum(k[:], v[:])

	// Step f.
	//
	// K = HMAC_K(V || 0x01 || int2octets(x) || bits2octets(h1) || extra || version)
	mac = hmac.New(sha256.New, k[:])
	mac.Write(v[:])
	mac.Write([]byte{0x01})
	mac.Write(bx)
	k = sum256(mac)

	// Step g.
	//
	// V = HMAC_K(V)
	v = hmacSum(k[:], v[:])

	// Step h.
	//
	// Repeat until a valid, in-range value is generated, applying
	// extraIterations additional skips on top of that.  A valid-but-skipped
	// candidate advances K/V exactly the same way an out-of-range candidate
	// does, so the nth skip deterministically reaches the same nonce a call
	// with extraIterations = n-1 would have stopped one candidate short of.
	for {
		// Step h.1 and h.2.
		//
		// T = empty
		// While tlen < qlen, do:
		//   V = HMAC_K(V)
		//   T = T || V
		//
		// A single iteration of HMAC-SHA-256 already produces 32 bytes, which
		// is enough for the 256-bit secp256k1 group order, so T = V.
		v = hmacSum(k[:], v[:])

		// Step h.3.
		//
		// k = bits2int(T)
		// If k is within [1, N-1] and extraIterations candidates have
		// already been skipped, return k; otherwise advance K/V and try
		// again.
		var secret ModNScalar
		overflow := secret.SetByteSlice(v[:])
		if !overflow && !secret.IsZero() {
			if extraIterations == 0 {
				return &secret
			}
			extraIterations--
		}

		// K = HMAC_K(V || 0x00)
		// V = HMAC_K(V)
		mac = hmac.New(sha256.New, k[:])
		mac.Write(v[:])
		mac.Write([]byte{0x00})
		k = sum256(mac)
		v = hmacSum(k[:], v[:])
	}
}

// sum256 finalizes an in-progress HMAC and returns its 32-byte digest.
func sum256(mac interface {
	Sum([]byte) []byte
}) [sha256.Size]byte {
	var out [sha256.Size]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// hmacSum computes HMAC-SHA-256(key, msg) and returns the digest.
func hmacSum(key, msg []byte) [sha256.Size]byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return sum256(mac)
}
