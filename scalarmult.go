// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/subtle"
	"sync"
)

// scalarMultWindowBits is the width, in bits, of the fixed window used by
// ScalarMultNonConst.  The scan performs the same fixed sequence of
// doublings and additions for every window regardless of the scalar's
// value, never skipping the add for a zero digit.
const scalarMultWindowBits = 4

// buildMultiplesTable returns the Jacobian points {0*p, 1*p, 2*p, ...,
// (2^w-1)*p} used as the lookup table for windowed scalar multiplication
// with a window of w bits.  Index 0 is the point at infinity so that a
// zero digit can be folded into the same unconditional add as every other
// digit.
func buildMultiplesTable(p *JacobianPoint, w uint) []JacobianPoint {
	count := 1 << w
	table := make([]JacobianPoint, count)
	table[0].SetInfinity()
	if count > 1 {
		table[1].Set(p)
	}
	for i := 2; i < count; i++ {
		AddNonConst(&table[i-1], p, &table[i])
	}
	return table
}

// selectPoint obliviously copies table[digit] into dst.  Every entry in
// table is read and fed through crypto/subtle's constant-time copy exactly
// once regardless of digit, so the memory access pattern does not depend
// on digit the way a direct table[digit] load would.
func selectPoint(table []JacobianPoint, digit int, dst *JacobianPoint) {
	var x, y, z [32]byte
	for i := range table {
		choose := subtle.ConstantTimeEq(int32(i), int32(digit))
		ex := table[i].X.Bytes()
		ey := table[i].Y.Bytes()
		ez := table[i].Z.Bytes()
		subtle.ConstantTimeCopy(choose, x[:], ex[:])
		subtle.ConstantTimeCopy(choose, y[:], ey[:])
		subtle.ConstantTimeCopy(choose, z[:], ez[:])
	}
	dst.X.SetBytes(&x)
	dst.Y.SetBytes(&y)
	dst.Z.SetBytes(&z)
}

// extractWindow pulls out the w-bit digit starting at window index winIdx
// (0 is the least-significant window) from the given big-endian scalar
// encoding.
func extractWindow(b []byte, winIdx, w uint) int {
	bitOffset := winIdx * w
	byteOffset := len(b) - 1 - int(bitOffset/8)
	bitShift := bitOffset % 8

	// Collect up to 3 bytes (24 bits): enough to cover any window of up to
	// 16 bits starting at any bit shift within a byte.
	var val uint32
	for n := 0; n < 3 && byteOffset-n >= 0; n++ {
		val |= uint32(b[byteOffset-n]) << (8 * n)
	}
	val >>= bitShift
	mask := uint32(1<<w) - 1
	return int(val & mask)
}

// ScalarMultNonConst multiplies the passed point by the passed scalar and
// stores the result in result.  It makes a fixed number of DoubleNonConst
// and AddNonConst calls determined only by the bit length of N, never by
// the value of k: every window's digit, including zero, is passed to the
// same AddNonConst call against the precomputed table (index 0 of which is
// the point at infinity, the group identity).  AddNonConst returns early
// when that addend or the running result is the point at infinity, so the
// work done inside an addition still depends on whether a digit is zero.
func ScalarMultNonConst(k *ModNScalar, point, result *JacobianPoint) {
	const w = scalarMultWindowBits
	table := buildMultiplesTable(point, w)

	kBytes := k.Bytes()
	windows := (256 + w - 1) / w

	result.SetInfinity()
	var tmp JacobianPoint
	for i := windows - 1; i >= 0; i-- {
		for j := 0; j < w; j++ {
			DoubleNonConst(result, result)
		}

		digit := extractWindow(kBytes[:], uint(i), uint(w))
		var addend JacobianPoint
		selectPoint(table, digit, &addend)
		AddNonConst(result, &addend, &tmp)
		result.Set(&tmp)
	}
}

// basePointWindowBits is the window width used for the base-point comb
// table.  A wider window than ScalarMultNonConst's trades a larger
// one-time table build for fewer point additions per ScalarBaseMultNonConst
// call, which is the operation the library expects to be called most
// often (every signature and every public key derivation).
const basePointWindowBits = 8

var (
	basePointTableOnce sync.Once
	basePointTableData [][]JacobianPoint
)

// buildBasePointTable constructs the process-wide comb table for the base
// point G: one row per 8-bit window of the scalar, each row holding G's
// window-th-power-of-two multiple times every digit 0..255.  The table is
// built lazily at runtime on first use rather than decompressed from a
// compiled-in blob.
func buildBasePointTable() {
	windows := (256 + basePointWindowBits - 1) / basePointWindowBits
	table := make([][]JacobianPoint, windows)

	var cur JacobianPoint
	cur.X.Set(genX)
	cur.Y.Set(genY)
	cur.Z.SetInt(1)

	for w := 0; w < windows; w++ {
		table[w] = buildMultiplesTable(&cur, basePointWindowBits)

		for i := 0; i < basePointWindowBits; i++ {
			DoubleNonConst(&cur, &cur)
		}
	}
	basePointTableData = table
}

// getBasePointTable returns the shared base-point comb table, building it
// on the first call from any goroutine.
func getBasePointTable() [][]JacobianPoint {
	basePointTableOnce.Do(buildBasePointTable)
	return basePointTableData
}

// ScalarBaseMultNonConst multiplies the secp256k1 base point G by the
// passed scalar and stores the result in result, using the process-wide
// precomputed comb table so repeated calls never redo G's doublings.
func ScalarBaseMultNonConst(k *ModNScalar, result *JacobianPoint) {
	table := getBasePointTable()
	kBytes := k.Bytes()

	result.SetInfinity()
	var tmp JacobianPoint
	for w := len(table) - 1; w >= 0; w-- {
		digit := extractWindow(kBytes[:], uint(w), uint(basePointWindowBits))
		var addend JacobianPoint
		selectPoint(table[w], digit, &addend)
		AddNonConst(result, &addend, &tmp)
		result.Set(&tmp)
	}
}

// PrecomputedTable holds the full multiples table of a fixed point, built
// once and reused across repeated multiplications by that same point.
type PrecomputedTable struct {
	windowBits uint
	multiples  []JacobianPoint
}

// minPrecomputeWindow and maxPrecomputeWindow bound the supported
// precomputation window widths.
const (
	minPrecomputeWindow = 1
	maxPrecomputeWindow = 16
)

// Precompute builds a table of multiples of p suitable for accelerating
// repeated ScalarMult calls against the same point, using a window of w
// bits.  Re-priming with a different w simply returns a fresh table; the
// cache lives with whatever the caller stores the result in.
func Precompute(w uint, p *JacobianPoint) (*PrecomputedTable, error) {
	if w < minPrecomputeWindow || w > maxPrecomputeWindow {
		str := "precompute window width out of supported range"
		return nil, makeError(ErrInvalidPrecomputeWindow, str)
	}
	return &PrecomputedTable{
		windowBits: w,
		multiples:  buildMultiplesTable(p, w),
	}, nil
}

// Mult multiplies the table's base point by k and stores the result in
// result, reusing the table's precomputed multiples instead of
// recomputing them from scratch.
func (t *PrecomputedTable) Mult(k *ModNScalar, result *JacobianPoint) {
	w := t.windowBits
	kBytes := k.Bytes()
	windows := (256 + int(w) - 1) / int(w)

	result.SetInfinity()
	var tmp JacobianPoint
	for i := windows - 1; i >= 0; i-- {
		for j := uint(0); j < w; j++ {
			DoubleNonConst(result, result)
		}

		digit := extractWindow(kBytes[:], uint(i), w)
		var addend JacobianPoint
		selectPoint(t.multiples, digit, &addend)
		AddNonConst(result, &addend, &tmp)
		result.Set(&tmp)
	}
}
