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

import "fmt"

// This file provides the convenience API: each function is a single
// dispatcher call whose witnesses come from its operands and whose
// fallback is the matching scalar implementation in ops_base.go.
// Operands of the same class must have the same lane count; a mismatch
// panics with a *ContractViolation. This covers vector pairs and mask
// pairs, so MaskAnd or a mask Test on masks of different lengths
// panic. An operand of a different class (the mask of IfThenElse, the
// shuffle of Rearrange, a predicate slice) is caller data and a length
// mismatch there returns ErrShapeMismatch.

// Abs computes absolute value. The most negative integer maps to itself.
func Abs[T Lanes](v Vector[T]) Vector[T] {
	return UnaryOp[T](OpAbs, WitnessOf(v), v, builtin(absLanes[T]))
}

// Neg negates all lanes.
func Neg[T Lanes](v Vector[T]) Vector[T] {
	return UnaryOp[T](OpNeg, WitnessOf(v), v, builtin(negLanes[T]))
}

// Sqrt computes square root.
func Sqrt[T Floats](v Vector[T]) Vector[T] {
	return UnaryOp[T](OpSqrt, WitnessOf(v), v, builtin(sqrtLanes[T]))
}

// Not complements the bits of every lane.
func Not[T Lanes](v Vector[T]) Vector[T] {
	return UnaryOp[T](OpNot, WitnessOf(v), v, builtin(notLanes[T]))
}

// Add performs element-wise addition.
func Add[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpAdd, WitnessOf(a), a, b, builtin(addLanes[T]))
}

// Sub performs element-wise subtraction.
func Sub[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpSub, WitnessOf(a), a, b, builtin(subLanes[T]))
}

// Mul performs element-wise multiplication.
func Mul[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpMul, WitnessOf(a), a, b, builtin(mulLanes[T]))
}

// Div performs element-wise division. Integer lanes truncate toward zero
// and panic on a zero divisor.
func Div[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpDiv, WitnessOf(a), a, b, builtin(divLanes[T]))
}

// Min returns element-wise minimum.
func Min[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpMin, WitnessOf(a), a, b, builtin(minLanes[T]))
}

// Max returns element-wise maximum.
func Max[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpMax, WitnessOf(a), a, b, builtin(maxLanes[T]))
}

// And performs element-wise bitwise AND. Float lanes use their IEEE bits.
func And[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpAnd, WitnessOf(a), a, b, builtin(andLanes[T]))
}

// Or performs element-wise bitwise OR.
func Or[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpOr, WitnessOf(a), a, b, builtin(orLanes[T]))
}

// Xor performs element-wise bitwise XOR.
func Xor[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpXor, WitnessOf(a), a, b, builtin(xorLanes[T]))
}

// AndNot computes a &^ b.
func AndNot[T Lanes](a, b Vector[T]) Vector[T] {
	return BinaryOp[T](OpAndNot, WitnessOf(a), a, b, builtin(andNotLanes[T]))
}

// FMA performs fused multiply-add: a*b + c with a single rounding.
func FMA[T Lanes](a, b, c Vector[T]) Vector[T] {
	return TernaryOp[T](OpFMA, WitnessOf(a), a, b, c, builtin(fmaLanes[T]))
}

// ShiftLeft shifts every lane left by n modulo the lane width.
func ShiftLeft[T Integers](v Vector[T], n int) Vector[T] {
	return BroadcastInt(OpLShift, WitnessOf(v), v, n, builtin(shiftLeftLanes[T]))
}

// ShiftRight shifts every lane right by n modulo the lane width,
// arithmetically for signed lanes.
func ShiftRight[T Integers](v Vector[T], n int) Vector[T] {
	return BroadcastInt(OpRShift, WitnessOf(v), v, n, builtin(shiftRightLanes[T]))
}

// ShiftRightUnsigned shifts every lane right by n modulo the lane width,
// filling with zeros.
func ShiftRightUnsigned[T Integers](v Vector[T], n int) Vector[T] {
	return BroadcastInt(OpURShift, WitnessOf(v), v, n, builtin(shiftRightUnsignedLanes[T]))
}

// Equal performs element-wise equality comparison.
func Equal[T Lanes](a, b Vector[T]) Mask[T] {
	return Compare(BTEq, WitnessOf(a), a, b, builtin(eqLanes[T]))
}

// NotEqual performs element-wise inequality comparison.
func NotEqual[T Lanes](a, b Vector[T]) Mask[T] {
	return Compare(BTNe, WitnessOf(a), a, b, builtin(neLanes[T]))
}

// LessThan performs element-wise less-than comparison.
func LessThan[T Lanes](a, b Vector[T]) Mask[T] {
	return Compare(BTLt, WitnessOf(a), a, b, builtin(ltLanes[T]))
}

// LessEqual performs element-wise less-or-equal comparison.
func LessEqual[T Lanes](a, b Vector[T]) Mask[T] {
	return Compare(BTLe, WitnessOf(a), a, b, builtin(leLanes[T]))
}

// GreaterThan performs element-wise greater-than comparison.
func GreaterThan[T Lanes](a, b Vector[T]) Mask[T] {
	return Compare(BTGt, WitnessOf(a), a, b, builtin(gtLanes[T]))
}

// GreaterEqual performs element-wise greater-or-equal comparison.
func GreaterEqual[T Lanes](a, b Vector[T]) Mask[T] {
	return Compare(BTGe, WitnessOf(a), a, b, builtin(geLanes[T]))
}

// SubOverflows sets the lanes where a-b overflows the lane type.
func SubOverflows[T Lanes](a, b Vector[T]) Mask[T] {
	return Compare(BTOverflow, WitnessOf(a), a, b, builtin(overflowLanes[T]))
}

// SubNoOverflow sets the lanes where a-b does not overflow.
func SubNoOverflow[T Lanes](a, b Vector[T]) Mask[T] {
	return Compare(BTNoOverflow, WitnessOf(a), a, b, builtin(noOverflowLanes[T]))
}

// IfThenElse performs conditional selection: lane i is yes[i] where mask
// is set and no[i] elsewhere. A mask of another length is reported as
// ErrShapeMismatch.
func IfThenElse[T Lanes](mask Mask[T], yes, no Vector[T]) (Vector[T], error) {
	return Blend(WitnessOf(no), no, yes, mask, builtin(blendLanes[T]))
}

// Rearrange returns the vector whose lane i is v[sh[i]].
func Rearrange[T Lanes](v Vector[T], sh Shuffle[T]) (Vector[T], error) {
	return RearrangeOp(WitnessOf(v), v, sh, builtin(rearrangeLanes[T]))
}

// Broadcast creates a vector of species s with all lanes set to x.
func Broadcast[T Lanes](s Species[T], x T) Vector[T] {
	return BroadcastCoerced[T, Vector[T]](s.VectorWitness(), ToBits(x), s, builtin(broadcastVector[T]))
}

// Zero creates a vector of species s with all lanes set to zero.
func Zero[T Lanes](s Species[T]) Vector[T] {
	return Broadcast(s, 0)
}

// MaskAll creates a mask of species s with every lane set to bit.
func MaskAll[T Lanes](s Species[T], bit bool) Mask[T] {
	var bits int64
	if bit {
		bits = 1
	}
	return BroadcastCoerced[T, Mask[T]](s.MaskWitness(), bits, s, builtin(broadcastMask[T]))
}

// MaskFromBools creates a mask of species s from one predicate per lane.
func MaskFromBools[T Lanes](s Species[T], bits []bool) (Mask[T], error) {
	if len(bits) != s.Length() {
		return Mask[T]{}, fmt.Errorf("vsupport: mask of %d predicates for %v: %w", len(bits), s, ErrShapeMismatch)
	}
	out := make([]bool, len(bits))
	copy(out, bits)
	return Mask[T]{payload: out}, nil
}

// Index returns the vector whose lane i is v[i] + step*i.
func Index[T Lanes](v Vector[T], step int) Vector[T] {
	return IndexVector(WitnessOf(v), v, step, v.Species(), builtin(indexLanes[T]))
}

// Iota returns 0, 1, 2, ... in species s.
func Iota[T Lanes](s Species[T]) Vector[T] {
	return Index(Zero(s), 1)
}

// IotaShuffle returns the shuffle whose lane i selects start + i*step under
// wrap.
func IotaShuffle[T Lanes](s Species[T], start, step int, wrap WrapPolicy) (Shuffle[T], error) {
	return ShuffleIota(s.ShuffleWitness(), s, start, step, wrap, builtin(iotaShuffle[T]))
}

// ShuffleFromIndices builds a shuffle of species s from explicit source
// lane indices, resolved by wrap. A slice of the wrong length is reported as
// ErrShapeMismatch.
func ShuffleFromIndices[T Lanes](s Species[T], indices []int, wrap WrapPolicy) (Shuffle[T], error) {
	n := s.Length()
	if len(indices) != n {
		return Shuffle[T]{}, fmt.Errorf("vsupport: %d shuffle indices for %v: %w", len(indices), s, ErrShapeMismatch)
	}
	out := make([]int, n)
	for i, idx := range indices {
		r, err := wrap.Apply(idx, n)
		if err != nil {
			return Shuffle[T]{}, fmt.Errorf("vsupport: shuffle lane %d: %w", i, err)
		}
		out[i] = r
	}
	return Shuffle[T]{payload: out, policy: wrap}, nil
}

// ToVector converts the indices of sh to a vector of T.
func ToVector[T Lanes](sh Shuffle[T]) Vector[T] {
	s := SpeciesOf[T](sh.Len())
	return ShuffleToVector(s.VectorWitness(), sh, builtin(shuffleLanes[T]))
}

// GetLane returns lane i through the dispatcher. It panics if i is out of
// range.
func GetLane[T Lanes](v Vector[T], i int) T {
	return FromBits[T](Extract[T](WitnessOf(v), v, i, builtin(extractVector[T])))
}

// WithLane returns a copy of v with lane i set to x.
func WithLane[T Lanes](v Vector[T], i int, x T) Vector[T] {
	return Insert[T](WitnessOf(v), v, i, ToBits(x), builtin(insertVector[T]))
}

// MaskLane returns lane i of m through the dispatcher.
func MaskLane[T Lanes](m Mask[T], i int) bool {
	return Extract[T](WitnessOf(m), m, i, builtin(extractMask[T])) != 0
}

// MaskWithLane returns a copy of m with lane i set to bit.
func MaskWithLane[T Lanes](m Mask[T], i int, bit bool) Mask[T] {
	var bits int64
	if bit {
		bits = 1
	}
	return Insert[T](WitnessOf(m), m, i, bits, builtin(insertMask[T]))
}

// MaskAnd returns the lane-wise conjunction of two masks.
func MaskAnd[T Lanes](a, b Mask[T]) Mask[T] {
	return BinaryOp[T](OpAnd, WitnessOf(a), a, b, builtin(andMask[T]))
}

// MaskOr returns the lane-wise disjunction of two masks.
func MaskOr[T Lanes](a, b Mask[T]) Mask[T] {
	return BinaryOp[T](OpOr, WitnessOf(a), a, b, builtin(orMask[T]))
}

// MaskXor returns the lane-wise exclusive or of two masks.
func MaskXor[T Lanes](a, b Mask[T]) Mask[T] {
	return BinaryOp[T](OpXor, WitnessOf(a), a, b, builtin(xorMask[T]))
}

// MaskAndNot returns a && !b lane-wise.
func MaskAndNot[T Lanes](a, b Mask[T]) Mask[T] {
	return BinaryOp[T](OpAndNot, WitnessOf(a), a, b, builtin(andNotMask[T]))
}

// MaskNot complements every lane of m.
func MaskNot[T Lanes](m Mask[T]) Mask[T] {
	return UnaryOp[T](OpNot, WitnessOf(m), m, builtin(notMask[T]))
}

// AnyTrue returns true if at least one lane is set.
func AnyTrue[T Lanes](m Mask[T]) bool {
	return Test(TestAny, WitnessOf(m), m, m, builtin(testAnyMasks[T]))
}

// AllTrue returns true if every lane is set.
func AllTrue[T Lanes](m Mask[T]) bool {
	s := SpeciesOf[T](m.Len())
	return Test(TestAll, WitnessOf(m), m, MaskAll(s, true), builtin(testAllMasks[T]))
}

// ReduceAdd sums all lanes, left to right.
func ReduceAdd[T Lanes](v Vector[T]) T {
	return FromBits[T](ReductionCoerced(OpAdd, WitnessOf(v), v, builtin(reduceAddLanes[T])))
}

// ReduceMul multiplies all lanes, left to right.
func ReduceMul[T Lanes](v Vector[T]) T {
	return FromBits[T](ReductionCoerced(OpMul, WitnessOf(v), v, builtin(reduceMulLanes[T])))
}

// ReduceMin returns the smallest lane.
func ReduceMin[T Lanes](v Vector[T]) T {
	return FromBits[T](ReductionCoerced(OpMin, WitnessOf(v), v, builtin(reduceMinLanes[T])))
}

// ReduceMax returns the largest lane.
func ReduceMax[T Lanes](v Vector[T]) T {
	return FromBits[T](ReductionCoerced(OpMax, WitnessOf(v), v, builtin(reduceMaxLanes[T])))
}

// ReduceAnd folds all lanes with bitwise AND.
func ReduceAnd[T Lanes](v Vector[T]) T {
	return FromBits[T](ReductionCoerced(OpAnd, WitnessOf(v), v, builtin(reduceAndLanes[T])))
}

// ReduceOr folds all lanes with bitwise OR.
func ReduceOr[T Lanes](v Vector[T]) T {
	return FromBits[T](ReductionCoerced(OpOr, WitnessOf(v), v, builtin(reduceOrLanes[T])))
}

// ReduceXor folds all lanes with bitwise XOR.
func ReduceXor[T Lanes](v Vector[T]) T {
	return FromBits[T](ReductionCoerced(OpXor, WitnessOf(v), v, builtin(reduceXorLanes[T])))
}

// Cast converts every lane of v to T in species s.
func Cast[F, T Lanes](v Vector[F], s Species[T]) Vector[T] {
	return Convert(ConvCast, WitnessOf(v), s.VectorWitness(), v, s, builtin(castLanes[F, T]))
}

// Reinterpret reuses the little-endian bytes of v as lanes of T in
// species s.
func Reinterpret[F, T Lanes](v Vector[F], s Species[T]) Vector[T] {
	return Convert(ConvReinterpret, WitnessOf(v), s.VectorWitness(), v, s, builtin(reinterpretLanes[F, T]))
}

// MaskLoad loads the lanes of src starting at index where mask is set;
// other lanes are zero. The whole range must be in bounds.
func MaskLoad[T Lanes](mask Mask[T], src []T, index int) (Vector[T], error) {
	s := SpeciesOf[T](mask.Len())
	return IfThenElse(mask, LoadSlice(s, src, index), Zero(s))
}

// MaskStore stores the lanes of v where mask is set, leaving the other
// elements of dst unchanged.
func MaskStore[T Lanes](mask Mask[T], v Vector[T], dst []T, index int) error {
	merged, err := IfThenElse(mask, v, LoadSlice(v.Species(), dst, index))
	if err != nil {
		return err
	}
	StoreSlice(merged, dst, index)
	return nil
}
