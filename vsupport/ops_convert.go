// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vsupport

import (
	"encoding/binary"
	"math"
)

// intRange returns the inclusive lower bound and the exclusive upper bound
// of an integer element type, both exactly representable as float64.
func intRange(e ElementType) (lo, hi float64) {
	bits := e.Bits()
	if e.IsSigned() {
		return -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1)
	}
	return 0, math.Ldexp(1, bits)
}

// castLane converts one lane. Float to integer truncates toward zero and
// saturates at the bounds of T, with NaN mapping to 0. Every other
// conversion follows Go: integers wrap, floats round to nearest even.
func castLane[F, T Lanes](x F) T {
	from, to := ElementTypeOf[F](), ElementTypeOf[T]()
	if !from.IsFloat() || to.IsFloat() {
		return T(x)
	}
	f := float64(x)
	if math.IsNaN(f) {
		return 0
	}
	f = math.Trunc(f)
	lo, hi := intRange(to)
	switch {
	case f < lo:
		return FromBits[T](minBits(to))
	case f >= hi:
		return FromBits[T](maxBits(to))
	}
	return T(f)
}

func minBits(e ElementType) int64 {
	if e.IsSigned() {
		return -1 << (e.Bits() - 1)
	}
	return 0
}

func maxBits(e ElementType) int64 {
	if e.IsSigned() {
		return 1<<(e.Bits()-1) - 1
	}
	return int64(laneMask(e))
}

// castLanes converts lane by lane into a vector of s.Length() lanes; lanes
// past the end of v are zero.
func castLanes[F, T Lanes](v Vector[F], s Species[T]) Vector[T] {
	src := v.lanes()
	out := make([]T, s.Length())
	for i := range min(len(src), len(out)) {
		out[i] = castLane[F, T](src[i])
	}
	return Vector[T]{payload: out}
}

// appendLanesLE appends the little-endian bytes of every lane to dst.
func appendLanesLE[T Lanes](dst []byte, src []T) []byte {
	size := ElementTypeOf[T]().Size()
	var buf [8]byte
	for _, x := range src {
		binary.LittleEndian.PutUint64(buf[:], uint64(ToBits(x)))
		dst = append(dst, buf[:size]...)
	}
	return dst
}

// laneFromLE decodes one lane from up to Size() bytes of b. Missing bytes
// read as zero.
func laneFromLE[T Lanes](b []byte) T {
	var buf [8]byte
	copy(buf[:ElementTypeOf[T]().Size()], b)
	return FromBits[T](int64(binary.LittleEndian.Uint64(buf[:])))
}

// reinterpretLanes re-reads the little-endian bytes of v as lanes of T.
// Short input is zero-filled and long input is truncated.
func reinterpretLanes[F, T Lanes](v Vector[F], s Species[T]) Vector[T] {
	raw := appendLanesLE(nil, v.lanes())
	size := ElementTypeOf[T]().Size()
	out := make([]T, s.Length())
	for i := range out {
		off := i * size
		if off >= len(raw) {
			break
		}
		out[i] = laneFromLE[T](raw[off:min(off+size, len(raw))])
	}
	return Vector[T]{payload: out}
}
