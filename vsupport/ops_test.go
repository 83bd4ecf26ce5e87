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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec[T Lanes](xs ...T) Vector[T] {
	return FromSlice(SpeciesOf[T](len(xs)), xs)
}

func TestArithmetic(t *testing.T) {
	a := vec[int32](1, -2, 3, math.MaxInt32)
	b := vec[int32](4, 5, -6, 1)

	if diff := cmp.Diff([]int32{5, 3, -3, math.MinInt32}, Add(a, b).Lanes()); diff != "" {
		t.Errorf("Add mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{-3, -7, 9, math.MaxInt32 - 1}, Sub(a, b).Lanes()); diff != "" {
		t.Errorf("Sub mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{4, -10, -18, math.MaxInt32}, Mul(a, b).Lanes()); diff != "" {
		t.Errorf("Mul mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{1, -2, -6, 1}, Min(a, b).Lanes()); diff != "" {
		t.Errorf("Min mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{4, 5, 3, math.MaxInt32}, Max(a, b).Lanes()); diff != "" {
		t.Errorf("Max mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{-1, 2, -3, -math.MaxInt32}, Neg(a).Lanes()); diff != "" {
		t.Errorf("Neg mismatch (-want +got):\n%s", diff)
	}
}

func TestDiv(t *testing.T) {
	got := Div(vec[int16](7, -7, 100, -1), vec[int16](2, 2, -7, 1))
	assert.Equal(t, []int16{3, -3, -14, -1}, got.Lanes())

	f := Div(vec(1.0, -1.0, 0.0), vec(0.0, 0.0, 0.0))
	assert.True(t, math.IsInf(f.Lane(0), 1))
	assert.True(t, math.IsInf(f.Lane(1), -1))
	assert.True(t, math.IsNaN(f.Lane(2)))

	assert.Panics(t, func() { Div(vec[int32](1, 2), vec[int32](1, 0)) })
}

func TestAbs(t *testing.T) {
	assert.Equal(t, []int32{1, 0, math.MinInt32, 5}, Abs(vec[int32](-1, 0, math.MinInt32, 5)).Lanes())
	assert.Equal(t, []uint8{255, 0}, Abs(vec[uint8](255, 0)).Lanes())

	f := Abs(vec(float32(math.Copysign(0, -1)), -2.5, float32(math.NaN())))
	assert.Equal(t, uint32(0), math.Float32bits(f.Lane(0)))
	assert.Equal(t, float32(2.5), f.Lane(1))
	assert.True(t, math.IsNaN(float64(f.Lane(2))))
}

func TestSqrt(t *testing.T) {
	got := Sqrt(vec(4.0, 2.0, -1.0))
	assert.Equal(t, 2.0, got.Lane(0))
	assert.Equal(t, math.Sqrt2, got.Lane(1))
	assert.True(t, math.IsNaN(got.Lane(2)))

	assert.Equal(t, []float32{3, 0}, Sqrt(vec[float32](9, 0)).Lanes())
}

func TestFMA(t *testing.T) {
	x := 1 + math.Ldexp(1, -30)
	got := FMA(vec(x), vec(x), vec(-1.0))
	assert.Equal(t, math.Ldexp(1, -29)+math.Ldexp(1, -60), got.Lane(0), "single rounding")
	assert.NotEqual(t, float64(x*x)-1, got.Lane(0))

	assert.Equal(t, []int32{10, -2}, FMA(vec[int32](2, -1), vec[int32](3, 2), vec[int32](4, 0)).Lanes())
	assert.Equal(t, []uint8{4}, FMA(vec[uint8](16), vec[uint8](16), vec[uint8](4)).Lanes())
}

func TestMinMaxFloat(t *testing.T) {
	nan := math.NaN()
	negZero := math.Copysign(0, -1)

	mn := Min(vec(nan, 1.0, negZero), vec(1.0, nan, 0.0))
	assert.True(t, math.IsNaN(mn.Lane(0)))
	assert.True(t, math.IsNaN(mn.Lane(1)))
	assert.True(t, math.Signbit(mn.Lane(2)))

	mx := Max(vec(negZero), vec(0.0))
	assert.False(t, math.Signbit(mx.Lane(0)))
}

func TestBitwise(t *testing.T) {
	a := vec[uint8](0xF0, 0xAA, 0xFF)
	b := vec[uint8](0x3C, 0x55, 0x0F)

	assert.Equal(t, []uint8{0x30, 0x00, 0x0F}, And(a, b).Lanes())
	assert.Equal(t, []uint8{0xFC, 0xFF, 0xFF}, Or(a, b).Lanes())
	assert.Equal(t, []uint8{0xCC, 0xFF, 0xF0}, Xor(a, b).Lanes())
	assert.Equal(t, []uint8{0xC0, 0xAA, 0xF0}, AndNot(a, b).Lanes())
	assert.Equal(t, []uint8{0x0F, 0x55, 0x00}, Not(a).Lanes())

	// Float lanes operate on their IEEE bits.
	f := vec[float32](-1.5, 2)
	signMask := Broadcast(f.Species(), float32(math.Copysign(0, -1)))
	assert.Equal(t, []float32{1.5, 2}, AndNot(f, signMask).Lanes())
	assert.True(t, Not(Not(f)).Equal(f))
}

func TestShifts(t *testing.T) {
	v := vec[int32](1, -8, math.MaxInt32)

	assert.Equal(t, []int32{2, -16, -2}, ShiftLeft(v, 1).Lanes())
	assert.True(t, ShiftLeft(v, 33).Equal(ShiftLeft(v, 1)), "count is taken modulo 32")
	assert.True(t, ShiftLeft(v, 32).Equal(v))
	assert.Equal(t, []int32{math.MinInt32, 0, math.MinInt32}, ShiftLeft(v, -1).Lanes())

	assert.Equal(t, []int32{0, -4, math.MaxInt32 >> 1}, ShiftRight(v, 1).Lanes())
	assert.Equal(t, []int32{0, math.MaxInt32 - 3, math.MaxInt32 >> 1}, ShiftRightUnsigned(v, 1).Lanes())

	b := vec[int8](-128, 64)
	assert.Equal(t, []int8{-64, 32}, ShiftRight(b, 1).Lanes())
	assert.Equal(t, []int8{64, 32}, ShiftRightUnsigned(b, 1).Lanes())
	assert.Equal(t, []int8{64, 32}, ShiftRightUnsigned(b, 9).Lanes())

	u := vec[uint16](0x8000, 3)
	assert.Equal(t, []uint16{0x4000, 1}, ShiftRight(u, 1).Lanes())
	assert.Equal(t, []uint16{0x4000, 1}, ShiftRightUnsigned(u, 1).Lanes())

	w := vec[uint64](1 << 63)
	assert.Equal(t, []uint64{1}, ShiftRightUnsigned(w, 63).Lanes())
	assert.Equal(t, []int64{-1}, ShiftRight(vec[int64](math.MinInt64), 63).Lanes())
}

func TestComparisons(t *testing.T) {
	a := vec[float64](1, 2, math.NaN(), 4)
	b := vec[float64](1, 3, math.NaN(), 3)

	assert.Equal(t, []bool{true, false, false, false}, Equal(a, b).Bits())
	assert.Equal(t, []bool{false, true, true, true}, NotEqual(a, b).Bits())
	assert.Equal(t, []bool{false, true, false, false}, LessThan(a, b).Bits())
	assert.Equal(t, []bool{true, true, false, false}, LessEqual(a, b).Bits())
	assert.Equal(t, []bool{false, false, false, true}, GreaterThan(a, b).Bits())
	assert.Equal(t, []bool{true, false, false, true}, GreaterEqual(a, b).Bits())

	u := vec[uint32](0, math.MaxUint32)
	assert.Equal(t, []bool{true, false}, LessThan(u, vec[uint32](1, 0)).Bits())
}

func TestSubOverflows(t *testing.T) {
	tests := []struct {
		name string
		got  []bool
		want []bool
	}{
		{
			name: "int8",
			got:  SubOverflows(vec[int8](-128, 127, 5, -1), vec[int8](1, -1, 3, 127)).Bits(),
			want: []bool{true, true, false, false},
		},
		{
			name: "int32",
			got:  SubOverflows(vec[int32](math.MinInt32, 0), vec[int32](1, math.MinInt32)).Bits(),
			want: []bool{true, true},
		},
		{
			name: "int64",
			got:  SubOverflows(vec[int64](math.MinInt64, math.MaxInt64, 10), vec[int64](1, -1, 20)).Bits(),
			want: []bool{true, true, false},
		},
		{
			name: "uint32",
			got:  SubOverflows(vec[uint32](1, 2, 0), vec[uint32](2, 1, 0)).Bits(),
			want: []bool{true, false, false},
		},
		{
			name: "float64",
			got:  SubOverflows(vec(math.MaxFloat64, math.Inf(1), 1.0), vec(-math.MaxFloat64, 1.0, 2.0)).Bits(),
			want: []bool{true, false, false},
		},
		{
			name: "float32",
			got:  SubOverflows(vec[float32](math.MaxFloat32, 1), vec[float32](-math.MaxFloat32, 1)).Bits(),
			want: []bool{true, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	a := vec[int16](math.MinInt16, 7)
	b := vec[int16](1, 1)
	assert.True(t, MaskNot(SubOverflows(a, b)).Equal(SubNoOverflow(a, b)))
}

func TestMaskOps(t *testing.T) {
	s := SpeciesOf[int32](4)
	a, err := MaskFromBools(s, []bool{true, true, false, false})
	require.NoError(t, err)
	b, err := MaskFromBools(s, []bool{true, false, true, false})
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, false, false}, MaskAnd(a, b).Bits())
	assert.Equal(t, []bool{true, true, true, false}, MaskOr(a, b).Bits())
	assert.Equal(t, []bool{false, true, true, false}, MaskXor(a, b).Bits())
	assert.Equal(t, []bool{false, true, false, false}, MaskAndNot(a, b).Bits())
	assert.Equal(t, []bool{false, false, true, true}, MaskNot(a).Bits())

	assert.True(t, AnyTrue(a))
	assert.False(t, AllTrue(a))
	assert.True(t, AllTrue(MaskAll(s, true)))
	assert.False(t, AnyTrue(MaskAll(s, false)))
	assert.Equal(t, 2, a.CountTrue())
	assert.Equal(t, 2, MaskNot(a).FirstTrue())
	assert.Equal(t, -1, MaskAll(s, false).FirstTrue())

	// TestAny of two masks is true only when some lane is set in both.
	assert.False(t, Test(TestAny, s.MaskWitness(), a, MaskNot(a), builtin(testAnyMasks[int32])))
	// TestAll is true when every lane set in the second mask is set in the first.
	assert.True(t, Test(TestAll, s.MaskWitness(), MaskOr(a, b), a, builtin(testAllMasks[int32])))
}

func TestReductions(t *testing.T) {
	v := vec[int8](100, 100, -3, 1)
	assert.Equal(t, int8(-58), ReduceAdd(v), "sum wraps")
	assert.Equal(t, int8(-3), ReduceMin(v))
	assert.Equal(t, int8(100), ReduceMax(v))

	u := vec[uint16](0xFF0F, 0x0FF0, 0x00FF)
	assert.Equal(t, uint16(0x0000), ReduceAnd(u))
	assert.Equal(t, uint16(0xFFFF), ReduceOr(u))
	assert.Equal(t, uint16(0xF000), ReduceXor(u))
	assert.Equal(t, uint16(6), ReduceMul(vec[uint16](1, 2, 3)))

	f := vec[float32](0.5, 4, -2)
	assert.Equal(t, float32(2.5), ReduceAdd(f))
	assert.Equal(t, float32(-4), ReduceMul(f))
	assert.Equal(t, float32(-2), ReduceMin(f))

	// Float sums fold left to right from lane 0.
	g := vec(1e16, 1.0, -1e16, 1.0)
	assert.Equal(t, 1.0, ReduceAdd(g))

	assert.Equal(t, int64(7), ReduceAdd(vec[int64](7)))
}

func TestWrapPolicy(t *testing.T) {
	tests := []struct {
		policy  WrapPolicy
		in      int
		want    int
		wantErr bool
	}{
		{WrapModulo, 2, 2, false},
		{WrapModulo, 5, 1, false},
		{WrapModulo, -1, 3, false},
		{WrapModulo, -9, 3, false},
		{WrapClamp, 9, 3, false},
		{WrapClamp, -9, 0, false},
		{WrapClamp, 0, 0, false},
		{WrapReject, 3, 3, false},
		{WrapReject, 4, 0, true},
		{WrapReject, -1, 0, true},
	}
	for _, tt := range tests {
		got, err := tt.policy.Apply(tt.in, 4)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrIndexOutOfRange, "%v.Apply(%d)", tt.policy, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v.Apply(%d)", tt.policy, tt.in)
	}

	requireViolation(t, func() { WrapPolicy(9).Apply(7, 4) })
}

func TestShuffles(t *testing.T) {
	s := SpeciesOf[int16](4)
	v := FromSlice(s, []int16{10, 20, 30, 40})

	sh, err := IotaShuffle(s, 2, 1, WrapModulo)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 0, 1}, sh.Indices())
	assert.Equal(t, WrapModulo, sh.Policy())
	rot, err := Rearrange(v, sh)
	require.NoError(t, err)
	assert.Equal(t, []int16{30, 40, 10, 20}, rot.Lanes())

	sh, err = IotaShuffle(s, 0, 2, WrapClamp)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3, 3}, sh.Indices())

	_, err = IotaShuffle(s, 0, 2, WrapReject)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	sh, err = ShuffleFromIndices(s, []int{-1, 0, 5, 1}, WrapModulo)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 1, 1}, sh.Indices())
	dup, err := Rearrange(v, sh)
	require.NoError(t, err)
	assert.Equal(t, []int16{40, 10, 20, 20}, dup.Lanes())
}

func TestPayloadEquality(t *testing.T) {
	a := vec(1.0, math.NaN())
	b := vec(1.0, math.NaN())
	assert.True(t, a.Equal(b), "identical NaN bits compare equal")
	assert.Equal(t, a.Hash(), b.Hash())

	assert.False(t, vec(0.0).Equal(vec(math.Copysign(0, -1))))
	assert.False(t, vec[int32](1).Equal(vec[int32](1, 1)))

	m := MaskAll(SpeciesOf[int8](3), true)
	assert.True(t, m.Equal(MaskAll(SpeciesOf[int8](3), true)))
	assert.NotEqual(t, m.Hash(), MaskAll(SpeciesOf[int8](3), false).Hash())

	assert.Equal(t, "[1 2 3]", vec[uint8](1, 2, 3).String())
	assert.Equal(t, "[true false]", MaskWithLane(MaskAll(SpeciesOf[int8](2), false), 0, true).String())
}

func TestSpecies(t *testing.T) {
	assert.Equal(t, 4, Species128[int32]().Length())
	assert.Equal(t, 16, Species128[uint8]().Length())
	assert.Equal(t, 1, Species64[float64]().Length())
	assert.Equal(t, 8, Species512[float64]().Length())
	assert.Equal(t, 16, Species256[int16]().Length())

	s := SpeciesOf[float32](8)
	assert.Equal(t, 256, s.BitSize())
	assert.Equal(t, 32, s.ByteSize())
	assert.Equal(t, ElemFloat32, s.ElementType())
	assert.Equal(t, "Species[float32 x 8]", s.String())
	assert.True(t, s.Equal(Species256[float32]()))
	assert.False(t, s.Equal(SpeciesOf[int32](8)))
	assert.Equal(t, MaxLanes[float32](), PreferredSpecies[float32]().Length())

	assert.Equal(t, Witness{Kind: KindMask, Elem: ElemFloat32, Length: 8}, s.MaskWitness())
	assert.Equal(t, "Shuffle[float32 x 8]", s.ShuffleWitness().String())

	requireViolation(t, func() { SpeciesOf[int8](0) })
}

func TestElementTypes(t *testing.T) {
	tests := []struct {
		e        ElementType
		name     string
		size     int
		float    bool
		signed   bool
		unsigned bool
	}{
		{ElemInt8, "int8", 1, false, true, false},
		{ElemInt64, "int64", 8, false, true, false},
		{ElemUint16, "uint16", 2, false, false, true},
		{ElemUint32, "uint32", 4, false, false, true},
		{ElemFloat32, "float32", 4, true, false, false},
		{ElemFloat64, "float64", 8, true, false, false},
		{ElemInvalid, "ElementType(0)", 0, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.e.String())
			assert.Equal(t, tt.size, tt.e.Size())
			assert.Equal(t, tt.size*8, tt.e.Bits())
			assert.Equal(t, tt.float, tt.e.IsFloat())
			assert.Equal(t, tt.signed, tt.e.IsSigned())
			assert.Equal(t, tt.unsigned, tt.e.IsUnsigned())
		})
	}

	assert.Len(t, AllElementTypes, 10)
	assert.Equal(t, ElemUint64, ElementTypeOf[uint64]())
}

func TestBitsRoundTrip(t *testing.T) {
	assert.Equal(t, int64(-1), ToBits(int8(-1)))
	assert.Equal(t, int64(255), ToBits(uint8(255)))
	assert.Equal(t, int64(0x3FC00000), ToBits(float32(1.5)))
	assert.Equal(t, int8(-1), FromBits[int8](0x1FF))
	assert.Equal(t, uint64(math.MaxUint64), FromBits[uint64](-1))

	for _, x := range []float64{0, math.Copysign(0, -1), math.Inf(-1), math.MaxFloat64, math.SmallestNonzeroFloat64} {
		assert.Equal(t, math.Float64bits(x), math.Float64bits(FromBits[float64](ToBits(x))))
	}
	nan := math.Float32frombits(0x7FC00001)
	assert.Equal(t, uint32(0x7FC00001), math.Float32bits(FromBits[float32](ToBits(nan))))
}

func TestOpcodeStrings(t *testing.T) {
	assert.Equal(t, "ADD", OpAdd.String())
	assert.Equal(t, "URSHIFT", OpURShift.String())
	assert.Equal(t, "no_overflow", BTNoOverflow.String())
	assert.Equal(t, BTNe, TestAny)
	assert.Equal(t, BTOverflow, TestAll)
	assert.Equal(t, "clamp", WrapClamp.String())
	assert.Equal(t, "Vector", KindVector.String())
}
