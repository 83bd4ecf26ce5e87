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
	"math"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each property below is checked on random vectors of every element type
// against a plain scalar loop.

const propertyRounds = 50

var propertyRunners = map[ElementType]func(*testing.T, *rand.Rand){
	ElemInt8:    runIntegerProperties[int8],
	ElemInt16:   runIntegerProperties[int16],
	ElemInt32:   runIntegerProperties[int32],
	ElemInt64:   runIntegerProperties[int64],
	ElemUint8:   runIntegerProperties[uint8],
	ElemUint16:  runIntegerProperties[uint16],
	ElemUint32:  runIntegerProperties[uint32],
	ElemUint64:  runIntegerProperties[uint64],
	ElemFloat32: runLaneProperties[float32],
	ElemFloat64: runLaneProperties[float64],
}

func TestLaneProperties(t *testing.T) {
	for _, e := range AllElementTypes {
		run, ok := propertyRunners[e]
		require.True(t, ok, "no property runner for %s", e)
		t.Run(e.String(), func(t *testing.T) {
			run(t, rand.New(rand.NewPCG(1, uint64(e))))
		})
	}
}

// randLanes returns n random lanes drawn from random bit patterns. NaN
// patterns are replaced so that scalar references stay comparable.
func randLanes[T Lanes](r *rand.Rand, n int) []T {
	out := make([]T, n)
	for i := range out {
		x := FromBits[T](int64(r.Uint64()))
		if x != x {
			x = FromBits[T](int64(i))
		}
		out[i] = x
	}
	return out
}

// randPair returns two random operands that share roughly a quarter of
// their lanes, so equality predicates see both outcomes.
func randPair[T Lanes](r *rand.Rand, n int) ([]T, []T) {
	a, b := randLanes[T](r, n), randLanes[T](r, n)
	for i := range b {
		if r.IntN(4) == 0 {
			b[i] = a[i]
		}
	}
	return a, b
}

// laneBits returns the lane's bit pattern zero-extended to 64 bits.
func laneBits[T Lanes](x T) uint64 {
	b := uint64(ToBits(x))
	if w := ElementTypeOf[T]().Bits(); w < 64 {
		b &= 1<<w - 1
	}
	return b
}

func patterns[T Lanes](xs []T) []uint64 {
	out := make([]uint64, len(xs))
	for i, x := range xs {
		out[i] = laneBits(x)
	}
	return out
}

func zipRef[T Lanes](a, b []T, f func(x, y T) T) []T {
	out := make([]T, len(a))
	for i := range a {
		out[i] = f(a[i], b[i])
	}
	return out
}

func bitRef[T Lanes](f func(x, y int64) int64) func(x, y T) T {
	return func(x, y T) T { return FromBits[T](f(ToBits(x), ToBits(y))) }
}

func absRef[T Lanes](x T) T {
	if e := ElementTypeOf[T](); e.IsFloat() {
		return FromBits[T](ToBits(x) &^ (int64(-1) << (e.Bits() - 1)))
	}
	if x < 0 {
		return -x
	}
	return x
}

func runLaneProperties[T Lanes](t *testing.T, r *rand.Rand) {
	for range propertyRounds {
		n := 1 + r.IntN(17)
		s := SpeciesOf[T](n)
		a, b := randPair[T](r, n)
		va, vb := FromSlice(s, a), FromSlice(s, b)

		divisor := append([]T(nil), b...)
		for i, y := range divisor {
			if y == 0 {
				divisor[i] = 1
			}
		}

		binary := []struct {
			name string
			got  Vector[T]
			want []T
		}{
			{"add", Add(va, vb), zipRef(a, b, func(x, y T) T { return x + y })},
			{"sub", Sub(va, vb), zipRef(a, b, func(x, y T) T { return x - y })},
			{"mul", Mul(va, vb), zipRef(a, b, func(x, y T) T { return x * y })},
			{"div", Div(va, FromSlice(s, divisor)), zipRef(a, divisor, func(x, y T) T { return x / y })},
			{"min", Min(va, vb), zipRef(a, b, func(x, y T) T { return min(x, y) })},
			{"max", Max(va, vb), zipRef(a, b, func(x, y T) T { return max(x, y) })},
			{"and", And(va, vb), zipRef(a, b, bitRef[T](func(x, y int64) int64 { return x & y }))},
			{"or", Or(va, vb), zipRef(a, b, bitRef[T](func(x, y int64) int64 { return x | y }))},
			{"xor", Xor(va, vb), zipRef(a, b, bitRef[T](func(x, y int64) int64 { return x ^ y }))},
			{"andnot", AndNot(va, vb), zipRef(a, b, bitRef[T](func(x, y int64) int64 { return x &^ y }))},
			{"neg", Neg(va), zipRef(a, a, func(x, _ T) T { return -x })},
			{"abs", Abs(va), zipRef(a, a, func(x, _ T) T { return absRef(x) })},
			{"not", Not(va), zipRef(a, a, bitRef[T](func(x, _ int64) int64 { return ^x }))},
		}
		for _, tt := range binary {
			require.Equal(t, patterns(tt.want), patterns(tt.got.Lanes()), "%s(%v, %v)", tt.name, a, b)
		}

		compares := []struct {
			name string
			got  Mask[T]
			f    func(x, y T) bool
		}{
			{"eq", Equal(va, vb), func(x, y T) bool { return x == y }},
			{"ne", NotEqual(va, vb), func(x, y T) bool { return x != y }},
			{"lt", LessThan(va, vb), func(x, y T) bool { return x < y }},
			{"le", LessEqual(va, vb), func(x, y T) bool { return x <= y }},
			{"gt", GreaterThan(va, vb), func(x, y T) bool { return x > y }},
			{"ge", GreaterEqual(va, vb), func(x, y T) bool { return x >= y }},
		}
		for _, tt := range compares {
			want := make([]bool, n)
			for i := range want {
				want[i] = tt.f(a[i], b[i])
			}
			require.Equal(t, want, tt.got.Bits(), "%s(%v, %v)", tt.name, a, b)
		}

		reductions := []struct {
			name string
			got  T
			f    func(x, y T) T
		}{
			{"add", ReduceAdd(va), func(x, y T) T { return x + y }},
			{"mul", ReduceMul(va), func(x, y T) T { return x * y }},
			{"min", ReduceMin(va), func(x, y T) T { return min(x, y) }},
			{"max", ReduceMax(va), func(x, y T) T { return max(x, y) }},
			{"and", ReduceAnd(va), bitRef[T](func(x, y int64) int64 { return x & y })},
			{"or", ReduceOr(va), bitRef[T](func(x, y int64) int64 { return x | y })},
			{"xor", ReduceXor(va), bitRef[T](func(x, y int64) int64 { return x ^ y })},
		}
		for _, tt := range reductions {
			acc := a[0]
			for _, x := range a[1:] {
				acc = tt.f(acc, x)
			}
			require.Equal(t, laneBits(acc), laneBits(tt.got), "reduce %s(%v)", tt.name, a)
		}

		checkGatherScatter(t, r, s, a)
	}
}

func runIntegerProperties[T Integers](t *testing.T, r *rand.Rand) {
	runLaneProperties[T](t, r)

	w := ElementTypeOf[T]().Bits()
	for range propertyRounds {
		n := 1 + r.IntN(17)
		s := SpeciesOf[T](n)
		a := randLanes[T](r, n)
		b, c := randLanes[T](r, n), randLanes[T](r, n)
		va := FromSlice(s, a)
		shift := r.IntN(3*w) - w
		k := uint(shift & (w - 1))

		left, right, unsigned, fma := make([]T, n), make([]T, n), make([]T, n), make([]T, n)
		for i, x := range a {
			left[i] = x << k
			right[i] = x >> k
			unsigned[i] = FromBits[T](int64(laneBits(x) >> k))
			fma[i] = a[i]*b[i] + c[i]
		}
		require.Equal(t, left, ShiftLeft(va, shift).Lanes(), "shl %d", shift)
		require.Equal(t, right, ShiftRight(va, shift).Lanes(), "shr %d", shift)
		require.Equal(t, unsigned, ShiftRightUnsigned(va, shift).Lanes(), "ushr %d", shift)
		require.Equal(t, fma, FMA(va, FromSlice(s, b), FromSlice(s, c)).Lanes(), "fma")
	}
}

// checkGatherScatter scatters v through a random permutation and gathers it
// back, then gathers from src through a random map with an offset.
func checkGatherScatter[T Lanes](t *testing.T, r *rand.Rand, s Species[T], src []T) {
	n := s.Length()
	v := FromSlice(s, randLanes[T](r, n))
	index := r.IntN(4)
	perm := r.Perm(n)

	dst := make([]T, index+n)
	require.NoError(t, Scatter(v, dst, index, perm, 0))
	for i, p := range perm {
		require.Equal(t, laneBits(v.Lane(i)), laneBits(dst[index+p]), "scatter lane %d", i)
	}
	back, err := Gather(s, dst, index, perm, 0)
	require.NoError(t, err)
	require.Equal(t, patterns(v.Lanes()), patterns(back.Lanes()), "gather(scatter(v)) with map %v", perm)

	indexM := r.IntN(3)
	indexMap := make([]int, indexM+n)
	for i := range indexMap {
		indexMap[i] = r.IntN(len(src))
	}
	got, err := Gather(s, src, 0, indexMap, indexM)
	require.NoError(t, err)
	for i := range n {
		require.Equal(t, laneBits(src[indexMap[indexM+i]]), laneBits(got.Lane(i)), "gather lane %d", i)
	}
}

func TestReinterpretRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	pairs := []struct {
		name string
		run  func(*testing.T, *rand.Rand)
	}{
		{"int8/uint8", checkReinterpretPair[int8, uint8]},
		{"int16/uint16", checkReinterpretPair[int16, uint16]},
		{"int32/uint32", checkReinterpretPair[int32, uint32]},
		{"int32/float32", checkReinterpretPair[int32, float32]},
		{"uint32/float32", checkReinterpretPair[uint32, float32]},
		{"int64/uint64", checkReinterpretPair[int64, uint64]},
		{"int64/float64", checkReinterpretPair[int64, float64]},
		{"uint64/float64", checkReinterpretPair[uint64, float64]},
	}
	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) { tt.run(t, r) })
	}
}

// checkReinterpretPair checks that reinterpreting between two types of
// equal width keeps every lane's bits and that the reverse restores v.
func checkReinterpretPair[F, T Lanes](t *testing.T, r *rand.Rand) {
	require.Equal(t, ElementTypeOf[F]().Size(), ElementTypeOf[T]().Size())
	for range propertyRounds {
		n := 1 + r.IntN(17)
		v := FromSlice(SpeciesOf[F](n), randLanes[F](r, n))
		mid := Reinterpret(v, SpeciesOf[T](n))
		require.Equal(t, patterns(v.Lanes()), patterns(mid.Lanes()))
		back := Reinterpret(mid, SpeciesOf[F](n))
		require.Equal(t, patterns(v.Lanes()), patterns(back.Lanes()))

		w := FromSlice(SpeciesOf[T](n), randLanes[T](r, n))
		require.Equal(t, patterns(w.Lanes()), patterns(Reinterpret(Reinterpret(w, SpeciesOf[F](n)), SpeciesOf[T](n)).Lanes()))
	}
}

// exactFMA32 rounds x*y+z computed exactly to the nearest float32.
func exactFMA32(x, y, z float32) float32 {
	const prec = 1024
	acc := new(big.Float).SetPrec(prec).SetFloat64(float64(x))
	acc.Mul(acc, new(big.Float).SetPrec(prec).SetFloat64(float64(y)))
	acc.Add(acc, new(big.Float).SetPrec(prec).SetFloat64(float64(z)))
	f, _ := acc.Float32()
	return f
}

func randFinite32(r *rand.Rand) float32 {
	for {
		f := math.Float32frombits(r.Uint32())
		if !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0) {
			return f
		}
	}
}

// nearOne returns a float32 in [1, 2) with only the top 12 mantissa bits
// set, so products land on float32 rounding ties.
func nearOne(r *rand.Rand) float32 {
	return 1 + float32(r.IntN(1<<12))*float32(math.Ldexp(1, -12))
}

func TestFMAFloat32SingleRounding(t *testing.T) {
	a := 1 + float32(math.Ldexp(1, -12))
	c := float32(math.Ldexp(1, -80))
	got := FMA(vec(a), vec(a), vec(c)).Lane(0)
	assert.Equal(t, uint32(0x3f801001), math.Float32bits(got))

	r := rand.New(rand.NewPCG(3, 4))
	for range 2000 {
		var x, y, z float32
		if r.IntN(2) == 0 {
			x, y, z = randFinite32(r), randFinite32(r), randFinite32(r)
		} else {
			x, y = nearOne(r), nearOne(r)
			z = float32(math.Ldexp(1, -30-r.IntN(90)))
			if r.IntN(2) == 0 {
				z = -z
			}
		}
		want := exactFMA32(x, y, z)
		got := FMA(vec(x), vec(y), vec(z)).Lane(0)
		require.Equal(t, math.Float32bits(want), math.Float32bits(got), "fma(%g, %g, %g)", x, y, z)
	}
}
