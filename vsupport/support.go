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

// This file holds the dispatcher entry points for lane-wise computation,
// predicates and structural operations. Each entry point validates its
// witnesses, then either runs a recognized native kernel or calls its
// fallback exactly once.

func asPayload[T Lanes, VM PayloadValue[T]](v Vector[T]) VM {
	return any(v).(VM)
}

func checkNotShuffle[T Lanes, VM PayloadValue[T]](op string) {
	if payloadKind[T, VM]() == KindShuffle {
		violate(op, "shuffle payloads are not supported")
	}
}

// checkPaired panics unless p has the element type and lane count of w.
// It is used for operands of a different class than the witness (the
// shuffle of a rearrange, the vector of a shuffle-to-vector).
func checkPaired(op string, w Witness, p Payload) {
	if p.ElementType() != w.Elem || p.Len() != w.Length {
		violate(op, "%v does not pair with witness %v", WitnessOf(p), w)
	}
}

// UnaryOp applies a one-operand operation to a Vector or Mask.
func UnaryOp[T Lanes, VM PayloadValue[T]](op Op, w Witness, a VM, fallback Fallback[func(VM) VM]) VM {
	const name = "UnaryOp"
	checkNotShuffle[T, VM](name)
	checkWitness[T](name, w, payloadKind[T, VM]())
	checkOperands(name, w, a)
	fn := fallback.mustFn(name)

	if w.Kind == KindVector {
		if k, ok := lookup[UnaryKernel[T]](Intrinsic{Family: FamilyUnary, Op: op, Elem: w.Elem}, w.Length); ok {
			src, _ := vectorLanes[T](a)
			dst := make([]T, w.Length)
			k(dst, src)
			return asPayload[T, VM](Vector[T]{payload: dst})
		}
	}
	r := fn(a)
	checkResult(name, w, r)
	return r
}

// BinaryOp applies a two-operand operation to Vectors or Masks.
func BinaryOp[T Lanes, VM PayloadValue[T]](op Op, w Witness, a, b VM, fallback Fallback[func(VM, VM) VM]) VM {
	const name = "BinaryOp"
	checkNotShuffle[T, VM](name)
	checkWitness[T](name, w, payloadKind[T, VM]())
	checkOperands(name, w, a, b)
	fn := fallback.mustFn(name)

	if w.Kind == KindVector {
		if k, ok := lookup[BinaryKernel[T]](Intrinsic{Family: FamilyBinary, Op: op, Elem: w.Elem}, w.Length); ok {
			x, _ := vectorLanes[T](a)
			y, _ := vectorLanes[T](b)
			dst := make([]T, w.Length)
			k(dst, x, y)
			return asPayload[T, VM](Vector[T]{payload: dst})
		}
	}
	r := fn(a, b)
	checkResult(name, w, r)
	return r
}

// TernaryOp applies a three-operand operation to Vectors or Masks.
func TernaryOp[T Lanes, VM PayloadValue[T]](op Op, w Witness, a, b, c VM, fallback Fallback[func(VM, VM, VM) VM]) VM {
	const name = "TernaryOp"
	checkNotShuffle[T, VM](name)
	checkWitness[T](name, w, payloadKind[T, VM]())
	checkOperands(name, w, a, b, c)
	fn := fallback.mustFn(name)

	if w.Kind == KindVector {
		if k, ok := lookup[TernaryKernel[T]](Intrinsic{Family: FamilyTernary, Op: op, Elem: w.Elem}, w.Length); ok {
			x, _ := vectorLanes[T](a)
			y, _ := vectorLanes[T](b)
			z, _ := vectorLanes[T](c)
			dst := make([]T, w.Length)
			k(dst, x, y, z)
			return asPayload[T, VM](Vector[T]{payload: dst})
		}
	}
	r := fn(a, b, c)
	checkResult(name, w, r)
	return r
}

// BroadcastCoerced builds a Vector or Mask of species s with every lane set
// to the scalar encoded in bits (see FromBits). Mask lanes are set when
// bits is non-zero.
func BroadcastCoerced[T Lanes, VM PayloadValue[T]](w Witness, bits int64, s Species[T], fallback Fallback[func(int64, Species[T]) VM]) VM {
	const name = "BroadcastCoerced"
	checkNotShuffle[T, VM](name)
	checkWitness[T](name, w, payloadKind[T, VM]())
	checkSpecies(name, w, s)
	fn := fallback.mustFn(name)

	if w.Kind == KindVector {
		if k, ok := lookup[BroadcastKernel[T]](Intrinsic{Family: FamilyBroadcast, Op: OpNone, Elem: w.Elem}, w.Length); ok {
			dst := make([]T, w.Length)
			k(dst, FromBits[T](bits))
			return asPayload[T, VM](Vector[T]{payload: dst})
		}
	}
	r := fn(bits, s)
	checkResult(name, w, r)
	return r
}

// ShuffleIota builds the shuffle whose lane i selects start + i*step,
// resolved by wrap. Shuffle construction has no native form, so the
// fallback always runs.
func ShuffleIota[T Lanes](w Witness, s Species[T], start, step int, wrap WrapPolicy, fallback Fallback[func(Species[T], int, int, WrapPolicy) (Shuffle[T], error)]) (Shuffle[T], error) {
	const name = "ShuffleIota"
	checkWitness[T](name, w, KindShuffle)
	checkSpecies(name, w, s)
	fn := fallback.mustFn(name)

	r, err := fn(s, start, step, wrap)
	if err != nil {
		return Shuffle[T]{}, err
	}
	checkResult(name, w, r)
	return r, nil
}

// ShuffleToVector converts shuffle indices to a Vector of T. w is the
// witness of the result vector.
func ShuffleToVector[T Lanes](w Witness, sh Shuffle[T], fallback Fallback[func(Shuffle[T]) Vector[T]]) Vector[T] {
	const name = "ShuffleToVector"
	checkWitness[T](name, w, KindVector)
	checkPaired(name, w, sh)
	fn := fallback.mustFn(name)

	r := fn(sh)
	checkResult(name, w, r)
	return r
}

// IndexVector returns v + step*iota: lane i is v[i] + step*i.
func IndexVector[T Lanes](w Witness, v Vector[T], step int, s Species[T], fallback Fallback[func(Vector[T], int, Species[T]) Vector[T]]) Vector[T] {
	const name = "IndexVector"
	checkWitness[T](name, w, KindVector)
	checkOperands(name, w, v)
	checkSpecies(name, w, s)
	fn := fallback.mustFn(name)

	if k, ok := lookup[IndexKernel[T]](Intrinsic{Family: FamilyIndex, Op: OpNone, Elem: w.Elem}, w.Length); ok {
		dst := make([]T, w.Length)
		k(dst, v.lanes(), step)
		return Vector[T]{payload: dst}
	}
	r := fn(v, step, s)
	checkResult(name, w, r)
	return r
}

// Extract returns lane i of a Vector or Mask as a 64-bit pattern (see
// ToBits; mask lanes are 1 or 0). It panics if i is out of range.
func Extract[T Lanes, VM PayloadValue[T]](w Witness, v VM, i int, fallback Fallback[func(VM, int) int64]) int64 {
	const name = "Extract"
	checkNotShuffle[T, VM](name)
	checkWitness[T](name, w, payloadKind[T, VM]())
	checkOperands(name, w, v)
	checkLaneIndex(name, i, w.Length)
	fn := fallback.mustFn(name)

	if w.Kind == KindVector {
		if k, ok := lookup[ExtractKernel[T]](Intrinsic{Family: FamilyExtract, Op: OpNone, Elem: w.Elem}, w.Length); ok {
			src, _ := vectorLanes[T](v)
			return ToBits(k(src, i))
		}
	}
	return fn(v, i)
}

// Insert returns a copy of v with lane i replaced by the scalar encoded in
// bits. It panics if i is out of range.
func Insert[T Lanes, VM PayloadValue[T]](w Witness, v VM, i int, bits int64, fallback Fallback[func(VM, int, int64) VM]) VM {
	const name = "Insert"
	checkNotShuffle[T, VM](name)
	checkWitness[T](name, w, payloadKind[T, VM]())
	checkOperands(name, w, v)
	checkLaneIndex(name, i, w.Length)
	fn := fallback.mustFn(name)

	if w.Kind == KindVector {
		if k, ok := lookup[InsertKernel[T]](Intrinsic{Family: FamilyInsert, Op: OpNone, Elem: w.Elem}, w.Length); ok {
			src, _ := vectorLanes[T](v)
			dst := make([]T, w.Length)
			k(dst, src, i, FromBits[T](bits))
			return asPayload[T, VM](Vector[T]{payload: dst})
		}
	}
	r := fn(v, i, bits)
	checkResult(name, w, r)
	return r
}

// Compare evaluates cond lane-wise on a and b. w is the vector witness; the
// result is a Mask of the same shape.
func Compare[T Lanes](cond BoolTest, w Witness, a, b Vector[T], fallback Fallback[func(Vector[T], Vector[T]) Mask[T]]) Mask[T] {
	const name = "Compare"
	checkWitness[T](name, w, KindVector)
	checkOperands(name, w, a, b)
	if cond < BTEq || cond > BTGe {
		violate(name, "unknown condition %v", cond)
	}
	fn := fallback.mustFn(name)

	if k, ok := lookup[CompareKernel[T]](Intrinsic{Family: FamilyCompare, Op: Op(cond), Elem: w.Elem}, w.Length); ok {
		dst := make([]bool, w.Length)
		k(dst, a.lanes(), b.lanes())
		return Mask[T]{payload: dst}
	}
	r := fn(a, b)
	checkResult(name, Witness{Kind: KindMask, Elem: w.Elem, Length: w.Length}, r)
	return r
}

// Test reduces two masks to a boolean. cond is TestAny or TestAll.
func Test[T Lanes](cond BoolTest, w Witness, m1, m2 Mask[T], fallback Fallback[func(Mask[T], Mask[T]) bool]) bool {
	const name = "Test"
	checkWitness[T](name, w, KindMask)
	checkOperands(name, w, m1, m2)
	if cond != TestAny && cond != TestAll {
		violate(name, "condition %v is not a mask test", cond)
	}
	fn := fallback.mustFn(name)

	if k, ok := lookup[TestKernel](Intrinsic{Family: FamilyTest, Op: Op(cond), Elem: w.Elem}, w.Length); ok {
		return k(m1.lanes(), m2.lanes())
	}
	return fn(m1, m2)
}

// RearrangeOp returns the vector whose lane i is v[sh[i]]. A shuffle with a
// different lane count is reported as ErrShapeMismatch.
func RearrangeOp[T Lanes](w Witness, v Vector[T], sh Shuffle[T], fallback Fallback[func(Vector[T], Shuffle[T]) Vector[T]]) (Vector[T], error) {
	const name = "RearrangeOp"
	checkWitness[T](name, w, KindVector)
	checkOperands(name, w, v)
	if sh.Len() != w.Length {
		return Vector[T]{}, fmt.Errorf("vsupport: rearrange: shuffle has %d lanes, vector has %d: %w", sh.Len(), w.Length, ErrShapeMismatch)
	}
	fn := fallback.mustFn(name)

	if k, ok := lookup[RearrangeKernel[T]](Intrinsic{Family: FamilyRearrange, Op: OpNone, Elem: w.Elem}, w.Length); ok {
		dst := make([]T, w.Length)
		k(dst, v.lanes(), sh.lanes())
		return Vector[T]{payload: dst}, nil
	}
	r := fn(v, sh)
	checkResult(name, w, r)
	return r, nil
}

// Blend returns the vector whose lane i is b[i] where m[i] is set and a[i]
// elsewhere. A mask with a different lane count is reported as
// ErrShapeMismatch.
func Blend[T Lanes](w Witness, a, b Vector[T], m Mask[T], fallback Fallback[func(Vector[T], Vector[T], Mask[T]) Vector[T]]) (Vector[T], error) {
	const name = "Blend"
	checkWitness[T](name, w, KindVector)
	checkOperands(name, w, a, b)
	if m.Len() != w.Length {
		return Vector[T]{}, fmt.Errorf("vsupport: blend: mask has %d lanes, vector has %d: %w", m.Len(), w.Length, ErrShapeMismatch)
	}
	fn := fallback.mustFn(name)

	if k, ok := lookup[BlendKernel[T]](Intrinsic{Family: FamilyBlend, Op: OpNone, Elem: w.Elem}, w.Length); ok {
		dst := make([]T, w.Length)
		k(dst, a.lanes(), b.lanes(), m.lanes())
		return Vector[T]{payload: dst}, nil
	}
	r := fn(a, b, m)
	checkResult(name, w, r)
	return r, nil
}

// BroadcastInt shifts every lane of v by n. op is OpLShift, OpRShift
// (arithmetic for signed lanes) or OpURShift (logical). The shift count is
// n modulo the lane width in bits.
func BroadcastInt[T Integers](op Op, w Witness, v Vector[T], n int, fallback Fallback[func(Vector[T], int) Vector[T]]) Vector[T] {
	const name = "BroadcastInt"
	checkWitness[T](name, w, KindVector)
	checkOperands(name, w, v)
	if op != OpLShift && op != OpRShift && op != OpURShift {
		violate(name, "%v is not a shift", op)
	}
	fn := fallback.mustFn(name)

	if k, ok := lookup[BroadcastIntKernel[T]](Intrinsic{Family: FamilyBroadcastInt, Op: op, Elem: w.Elem}, w.Length); ok {
		dst := make([]T, w.Length)
		k(dst, v.lanes(), n)
		return Vector[T]{payload: dst}
	}
	r := fn(v, n)
	checkResult(name, w, r)
	return r
}

// ReductionCoerced folds the lanes of v with op, left to right from lane 0,
// and returns the result as a 64-bit pattern (see ToBits).
func ReductionCoerced[T Lanes](op Op, w Witness, v Vector[T], fallback Fallback[func(Vector[T]) int64]) int64 {
	const name = "ReductionCoerced"
	checkWitness[T](name, w, KindVector)
	checkOperands(name, w, v)
	switch op {
	case OpAdd, OpMul, OpMin, OpMax, OpAnd, OpOr, OpXor:
	default:
		violate(name, "%v is not a reduction", op)
	}
	fn := fallback.mustFn(name)

	if k, ok := lookup[ReductionKernel[T]](Intrinsic{Family: FamilyReduction, Op: op, Elem: w.Elem}, w.Length); ok {
		return ToBits(k(v.lanes()))
	}
	return fn(v)
}
