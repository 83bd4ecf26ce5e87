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
	"fmt"
	"hash/fnv"
)

// PayloadKind identifies the class of a payload value.
type PayloadKind uint8

const (
	KindInvalid PayloadKind = iota
	KindVector
	KindMask
	KindShuffle
)

func (k PayloadKind) String() string {
	switch k {
	case KindVector:
		return "Vector"
	case KindMask:
		return "Mask"
	case KindShuffle:
		return "Shuffle"
	default:
		return fmt.Sprintf("PayloadKind(%d)", uint8(k))
	}
}

// Payload is implemented by Vector, Mask and Shuffle. Each one owns exactly
// one lane block, reachable only through the fenced accessor.
type Payload interface {
	Kind() PayloadKind
	Len() int
	ElementType() ElementType
}

// PayloadValue is the constraint satisfied by the three payload classes of
// element type T.
type PayloadValue[T Lanes] interface {
	Vector[T] | Mask[T] | Shuffle[T]
	Payload
}

// Vector is an immutable value of Len() lanes of T.
//
// Vector instances should not be created directly; use FromSlice, Broadcast,
// LoadSlice or any operation that returns a Vector.
type Vector[T Lanes] struct {
	payload []T
}

func (v Vector[T]) Kind() PayloadKind { return KindVector }

// Len returns the number of lanes.
func (v Vector[T]) Len() int { return len(v.payload) }

// ElementType returns the lane element type.
func (v Vector[T]) ElementType() ElementType { return ElementTypeOf[T]() }

// Species returns the species describing v.
func (v Vector[T]) Species() Species[T] { return Species[T]{length: len(v.payload)} }

// lanes returns the backing lane block after a load fence. Callers must not
// modify the returned slice.
func (v Vector[T]) lanes() []T {
	loadFence()
	return v.payload
}

// Lanes returns a copy of the lane values.
func (v Vector[T]) Lanes() []T {
	src := v.lanes()
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// Lane returns lane i without going through the dispatcher.
// It panics if i is out of range.
func (v Vector[T]) Lane(i int) T {
	src := v.lanes()
	checkLaneIndex("Vector.Lane", i, len(src))
	return src[i]
}

// Equal reports whether v and o have the same lane count and bit-identical
// lanes. NaN lanes compare equal when their bits match; -0 and +0 do not.
func (v Vector[T]) Equal(o Vector[T]) bool {
	a, b := v.lanes(), o.lanes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if ToBits(a[i]) != ToBits(b[i]) {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a hash over the lanes' bit patterns.
func (v Vector[T]) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, x := range v.lanes() {
		binary.LittleEndian.PutUint64(buf[:], uint64(ToBits(x)))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (v Vector[T]) String() string {
	return fmt.Sprint(v.lanes())
}

// Mask holds one boolean predicate per lane. It pairs only with vectors of
// the same element type and lane count.
type Mask[T Lanes] struct {
	payload []bool
}

func (m Mask[T]) Kind() PayloadKind { return KindMask }

// Len returns the number of lanes.
func (m Mask[T]) Len() int { return len(m.payload) }

// ElementType returns the element type of the vectors this mask pairs with.
func (m Mask[T]) ElementType() ElementType { return ElementTypeOf[T]() }

func (m Mask[T]) lanes() []bool {
	loadFence()
	return m.payload
}

// Bits returns a copy of the lane predicates.
func (m Mask[T]) Bits() []bool {
	src := m.lanes()
	out := make([]bool, len(src))
	copy(out, src)
	return out
}

// Lane returns the predicate of lane i. It panics if i is out of range.
func (m Mask[T]) Lane(i int) bool {
	src := m.lanes()
	checkLaneIndex("Mask.Lane", i, len(src))
	return src[i]
}

// AnyTrue returns true if at least one lane is set.
func (m Mask[T]) AnyTrue() bool {
	return AnyTrue(m)
}

// AllTrue returns true if every lane is set.
func (m Mask[T]) AllTrue() bool {
	return AllTrue(m)
}

// CountTrue returns the number of set lanes.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.lanes() {
		if bit {
			count++
		}
	}
	return count
}

// FirstTrue returns the index of the first set lane, or -1.
func (m Mask[T]) FirstTrue() int {
	for i, bit := range m.lanes() {
		if bit {
			return i
		}
	}
	return -1
}

// Equal reports whether m and o have identical lanes.
func (m Mask[T]) Equal(o Mask[T]) bool {
	a, b := m.lanes(), o.lanes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a hash over the lane predicates.
func (m Mask[T]) Hash() uint64 {
	bits := m.lanes()
	h := fnv.New64a()
	buf := make([]byte, len(bits))
	for i, bit := range bits {
		if bit {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return h.Sum64()
}

func (m Mask[T]) String() string {
	return fmt.Sprint(m.lanes())
}

// Shuffle holds one source lane index per lane. Indices are always in
// [0, Len()); out-of-range requests were resolved by the wrap policy when
// the shuffle was constructed.
type Shuffle[T Lanes] struct {
	payload []int
	policy  WrapPolicy
}

func (s Shuffle[T]) Kind() PayloadKind { return KindShuffle }

// Len returns the number of lanes.
func (s Shuffle[T]) Len() int { return len(s.payload) }

// ElementType returns the element type of the vectors this shuffle applies to.
func (s Shuffle[T]) ElementType() ElementType { return ElementTypeOf[T]() }

// Policy returns the wrap policy the shuffle was built with.
func (s Shuffle[T]) Policy() WrapPolicy { return s.policy }

func (s Shuffle[T]) lanes() []int {
	loadFence()
	return s.payload
}

// Indices returns a copy of the source lane indices.
func (s Shuffle[T]) Indices() []int {
	src := s.lanes()
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// Equal reports whether s and o select the same lanes.
func (s Shuffle[T]) Equal(o Shuffle[T]) bool {
	a, b := s.lanes(), o.lanes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s Shuffle[T]) String() string {
	return fmt.Sprint(s.lanes())
}

// vectorLanes extracts the lane block of a payload known to be a Vector.
func vectorLanes[T Lanes, VM PayloadValue[T]](p VM) ([]T, bool) {
	v, ok := any(p).(Vector[T])
	if !ok {
		return nil, false
	}
	return v.lanes(), true
}

func payloadKind[T Lanes, VM PayloadValue[T]]() PayloadKind {
	var zero VM
	return zero.Kind()
}
