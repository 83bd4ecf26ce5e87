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

import "math"

// This file contains the portable scalar fallbacks the convenience API
// passes to the dispatcher. They define the reference semantics every
// native kernel must reproduce bit for bit.

func mapLanes[T Lanes](a Vector[T], f func(T) T) Vector[T] {
	src := a.lanes()
	out := make([]T, len(src))
	for i, x := range src {
		out[i] = f(x)
	}
	return Vector[T]{payload: out}
}

func zipLanes[T Lanes](a, b Vector[T], f func(T, T) T) Vector[T] {
	x, y := a.lanes(), b.lanes()
	out := make([]T, len(x))
	for i := range x {
		out[i] = f(x[i], y[i])
	}
	return Vector[T]{payload: out}
}

func zipMask[T Lanes](a, b Mask[T], f func(bool, bool) bool) Mask[T] {
	x, y := a.lanes(), b.lanes()
	out := make([]bool, len(x))
	for i := range x {
		out[i] = f(x[i], y[i])
	}
	return Mask[T]{payload: out}
}

// bitwise applies f to the bit patterns of a and b. Float lanes are
// handled through their IEEE bits.
func bitwise[T Lanes](a, b T, f func(x, y uint64) uint64) T {
	return FromBits[T](int64(f(uint64(ToBits(a)), uint64(ToBits(b)))))
}

func absLane[T Lanes](x T) T {
	switch v := any(x).(type) {
	case float32:
		return any(math.Float32frombits(math.Float32bits(v) &^ (1 << 31))).(T)
	case float64:
		return any(math.Abs(v)).(T)
	}
	// MinInt stays MinInt; unsigned lanes are their own absolute value.
	if x < 0 {
		return -x
	}
	return x
}

func absLanes[T Lanes](a Vector[T]) Vector[T] { return mapLanes(a, absLane[T]) }

func negLanes[T Lanes](a Vector[T]) Vector[T] {
	return mapLanes(a, func(x T) T { return -x })
}

func sqrtLanes[T Floats](a Vector[T]) Vector[T] {
	return mapLanes(a, func(x T) T { return T(math.Sqrt(float64(x))) })
}

func notLanes[T Lanes](a Vector[T]) Vector[T] {
	return mapLanes(a, func(x T) T {
		return bitwise(x, x, func(u, _ uint64) uint64 { return ^u })
	})
}

func addLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T { return x + y })
}

func subLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T { return x - y })
}

func mulLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T { return x * y })
}

// divLanes divides lane-wise. Integer division truncates toward zero and
// panics on a zero divisor.
func divLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T { return x / y })
}

// minLanes and maxLanes use the builtins: a NaN lane propagates and -0 is
// ordered below +0.
func minLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T { return min(x, y) })
}

func maxLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T { return max(x, y) })
}

func andLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T {
		return bitwise(x, y, func(u, v uint64) uint64 { return u & v })
	})
}

func orLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T {
		return bitwise(x, y, func(u, v uint64) uint64 { return u | v })
	})
}

func xorLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T {
		return bitwise(x, y, func(u, v uint64) uint64 { return u ^ v })
	})
}

func andNotLanes[T Lanes](a, b Vector[T]) Vector[T] {
	return zipLanes(a, b, func(x, y T) T {
		return bitwise(x, y, func(u, v uint64) uint64 { return u &^ v })
	})
}

func fmaLane[T Lanes](x, y, z T) T {
	switch xv := any(x).(type) {
	case float32:
		return any(fma32(xv, any(y).(float32), any(z).(float32))).(T)
	case float64:
		return any(math.FMA(xv, any(y).(float64), any(z).(float64))).(T)
	}
	return x*y + z
}

// fma32 computes x*y+z with a single rounding to float32. The float64
// product of two float32 values is exact; the sum is rounded to odd so
// that the final narrowing cannot round a second time.
func fma32(x, y, z float32) float32 {
	p, c := float64(x)*float64(y), float64(z)
	s := p + c
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return float32(s)
	}
	// Two-sum error term: p + c == s + e exactly.
	bp := s - c
	e := (p - bp) + (c - (s - bp))
	if b := math.Float64bits(s); e != 0 && b&1 == 0 {
		if (e > 0) == (s > 0) {
			b++
		} else {
			b--
		}
		s = math.Float64frombits(b)
	}
	return float32(s)
}

func fmaLanes[T Lanes](a, b, c Vector[T]) Vector[T] {
	x, y, z := a.lanes(), b.lanes(), c.lanes()
	out := make([]T, len(x))
	for i := range x {
		out[i] = fmaLane(x[i], y[i], z[i])
	}
	return Vector[T]{payload: out}
}

func andMask[T Lanes](a, b Mask[T]) Mask[T] {
	return zipMask(a, b, func(x, y bool) bool { return x && y })
}

func orMask[T Lanes](a, b Mask[T]) Mask[T] {
	return zipMask(a, b, func(x, y bool) bool { return x || y })
}

func xorMask[T Lanes](a, b Mask[T]) Mask[T] {
	return zipMask(a, b, func(x, y bool) bool { return x != y })
}

func andNotMask[T Lanes](a, b Mask[T]) Mask[T] {
	return zipMask(a, b, func(x, y bool) bool { return x && !y })
}

func notMask[T Lanes](a Mask[T]) Mask[T] {
	src := a.lanes()
	out := make([]bool, len(src))
	for i, bit := range src {
		out[i] = !bit
	}
	return Mask[T]{payload: out}
}

// Shifts take the count modulo the lane width, so any n is valid.

func shiftCount[T Integers](n int) uint {
	return uint(n & (ElementTypeOf[T]().Bits() - 1))
}

func shiftLeftLanes[T Integers](v Vector[T], n int) Vector[T] {
	s := shiftCount[T](n)
	return mapLanes(v, func(x T) T { return x << s })
}

// shiftRightLanes is arithmetic for signed lanes and logical for unsigned
// lanes.
func shiftRightLanes[T Integers](v Vector[T], n int) Vector[T] {
	s := shiftCount[T](n)
	return mapLanes(v, func(x T) T { return x >> s })
}

// shiftRightUnsignedLanes is always logical: the lane bits are shifted as
// an unsigned value of the lane width.
func shiftRightUnsignedLanes[T Integers](v Vector[T], n int) Vector[T] {
	s := shiftCount[T](n)
	mask := laneMask(ElementTypeOf[T]())
	return mapLanes(v, func(x T) T {
		return FromBits[T](int64((uint64(ToBits(x)) & mask) >> s))
	})
}

func broadcastVector[T Lanes](bits int64, s Species[T]) Vector[T] {
	x := FromBits[T](bits)
	out := make([]T, s.Length())
	for i := range out {
		out[i] = x
	}
	return Vector[T]{payload: out}
}

func broadcastMask[T Lanes](bits int64, s Species[T]) Mask[T] {
	out := make([]bool, s.Length())
	for i := range out {
		out[i] = bits != 0
	}
	return Mask[T]{payload: out}
}

// indexLanes returns lane i = v[i] + step*i. Integer lanes wrap.
func indexLanes[T Lanes](v Vector[T], step int, s Species[T]) Vector[T] {
	src := v.lanes()
	out := make([]T, s.Length())
	for i := range out {
		out[i] = src[i] + T(step*i)
	}
	return Vector[T]{payload: out}
}

func iotaShuffle[T Lanes](s Species[T], start, step int, wrap WrapPolicy) (Shuffle[T], error) {
	n := s.Length()
	out := make([]int, n)
	for i := range out {
		idx, err := wrap.Apply(start+i*step, n)
		if err != nil {
			return Shuffle[T]{}, err
		}
		out[i] = idx
	}
	return Shuffle[T]{payload: out, policy: wrap}, nil
}

func shuffleLanes[T Lanes](sh Shuffle[T]) Vector[T] {
	src := sh.lanes()
	out := make([]T, len(src))
	for i, idx := range src {
		out[i] = T(idx)
	}
	return Vector[T]{payload: out}
}

func extractVector[T Lanes](v Vector[T], i int) int64 {
	return ToBits(v.lanes()[i])
}

func extractMask[T Lanes](m Mask[T], i int) int64 {
	if m.lanes()[i] {
		return 1
	}
	return 0
}

func insertVector[T Lanes](v Vector[T], i int, bits int64) Vector[T] {
	out := v.Lanes()
	out[i] = FromBits[T](bits)
	return Vector[T]{payload: out}
}

func insertMask[T Lanes](m Mask[T], i int, bits int64) Mask[T] {
	out := m.Bits()
	out[i] = bits != 0
	return Mask[T]{payload: out}
}

func blendLanes[T Lanes](a, b Vector[T], m Mask[T]) Vector[T] {
	x, y, sel := a.lanes(), b.lanes(), m.lanes()
	out := make([]T, len(x))
	for i := range x {
		if sel[i] {
			out[i] = y[i]
		} else {
			out[i] = x[i]
		}
	}
	return Vector[T]{payload: out}
}

func rearrangeLanes[T Lanes](v Vector[T], sh Shuffle[T]) Vector[T] {
	src, idx := v.lanes(), sh.lanes()
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return Vector[T]{payload: out}
}

// subOverflows reports whether a-b overflows the lane type: two's
// complement overflow for signed lanes, a borrow for unsigned lanes, and a
// non-finite difference of finite operands for float lanes.
func subOverflows[T Lanes](a, b T) bool {
	switch x := any(a).(type) {
	case int8, int16, int32:
		d := ToBits(a) - ToBits(b)
		return ToBits(FromBits[T](d)) != d
	case int64:
		y := any(b).(int64)
		d := x - y
		return (x^y)&(x^d) < 0
	case uint8, uint16, uint32, uint64:
		return a < b
	case float32:
		y := any(b).(float32)
		d := x - y
		return isFinite(float64(x)) && isFinite(float64(y)) && !isFinite(float64(d))
	case float64:
		y := any(b).(float64)
		return isFinite(x) && isFinite(y) && !isFinite(x-y)
	}
	return false
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func compareLane[T Lanes](cond BoolTest, a, b T) bool {
	switch cond {
	case BTEq:
		return a == b
	case BTNe:
		return a != b
	case BTLt:
		return a < b
	case BTLe:
		return a <= b
	case BTGt:
		return a > b
	case BTGe:
		return a >= b
	case BTOverflow:
		return subOverflows(a, b)
	case BTNoOverflow:
		return !subOverflows(a, b)
	}
	violate("Compare", "unknown condition %v", cond)
	return false
}

func compareLanes[T Lanes](cond BoolTest, a, b Vector[T]) Mask[T] {
	x, y := a.lanes(), b.lanes()
	out := make([]bool, len(x))
	for i := range x {
		out[i] = compareLane(cond, x[i], y[i])
	}
	return Mask[T]{payload: out}
}

func eqLanes[T Lanes](a, b Vector[T]) Mask[T]         { return compareLanes(BTEq, a, b) }
func neLanes[T Lanes](a, b Vector[T]) Mask[T]         { return compareLanes(BTNe, a, b) }
func ltLanes[T Lanes](a, b Vector[T]) Mask[T]         { return compareLanes(BTLt, a, b) }
func leLanes[T Lanes](a, b Vector[T]) Mask[T]         { return compareLanes(BTLe, a, b) }
func gtLanes[T Lanes](a, b Vector[T]) Mask[T]         { return compareLanes(BTGt, a, b) }
func geLanes[T Lanes](a, b Vector[T]) Mask[T]         { return compareLanes(BTGe, a, b) }
func overflowLanes[T Lanes](a, b Vector[T]) Mask[T]   { return compareLanes(BTOverflow, a, b) }
func noOverflowLanes[T Lanes](a, b Vector[T]) Mask[T] { return compareLanes(BTNoOverflow, a, b) }

// testAnyMasks reports whether some lane is set in both masks.
func testAnyMasks[T Lanes](m1, m2 Mask[T]) bool {
	x, y := m1.lanes(), m2.lanes()
	for i := range x {
		if x[i] && y[i] {
			return true
		}
	}
	return false
}

// testAllMasks reports whether every lane set in m2 is set in m1.
func testAllMasks[T Lanes](m1, m2 Mask[T]) bool {
	x, y := m1.lanes(), m2.lanes()
	for i := range x {
		if y[i] && !x[i] {
			return false
		}
	}
	return true
}

// Reductions fold left to right from lane 0.

func reduceLanes[T Lanes](v Vector[T], f func(T, T) T) int64 {
	src := v.lanes()
	acc := src[0]
	for _, x := range src[1:] {
		acc = f(acc, x)
	}
	return ToBits(acc)
}

func reduceAddLanes[T Lanes](v Vector[T]) int64 {
	return reduceLanes(v, func(x, y T) T { return x + y })
}

func reduceMulLanes[T Lanes](v Vector[T]) int64 {
	return reduceLanes(v, func(x, y T) T { return x * y })
}

func reduceMinLanes[T Lanes](v Vector[T]) int64 {
	return reduceLanes(v, func(x, y T) T { return min(x, y) })
}

func reduceMaxLanes[T Lanes](v Vector[T]) int64 {
	return reduceLanes(v, func(x, y T) T { return max(x, y) })
}

func reduceAndLanes[T Lanes](v Vector[T]) int64 {
	return reduceLanes(v, func(x, y T) T {
		return bitwise(x, y, func(u, w uint64) uint64 { return u & w })
	})
}

func reduceOrLanes[T Lanes](v Vector[T]) int64 {
	return reduceLanes(v, func(x, y T) T {
		return bitwise(x, y, func(u, w uint64) uint64 { return u | w })
	})
}

func reduceXorLanes[T Lanes](v Vector[T]) int64 {
	return reduceLanes(v, func(x, y T) T {
		return bitwise(x, y, func(u, w uint64) uint64 { return u ^ w })
	})
}
