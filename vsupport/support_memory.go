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
	"fmt"
	"unsafe"
)

// Address is the raw location native memory kernels read or write. The
// dispatcher never computes or dereferences it; it is handed to kernels
// as-is. A zero Address makes the dispatcher use the fallback.
type Address struct {
	Base   unsafe.Pointer
	Offset uintptr
}

// IsZero reports whether a has no base pointer.
func (a Address) IsZero() bool {
	return a.Base == nil
}

// Pointer returns Base advanced by Offset bytes.
func (a Address) Pointer() unsafe.Pointer {
	return unsafe.Add(a.Base, a.Offset)
}

// Bytes returns a view of n bytes starting at off bytes from the address.
// off may be negative.
func (a Address) Bytes(off, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Add(a.Pointer(), off)), n)
}

// Containers are plain slices of a lane type. []byte containers hold lanes
// of any type, little-endian.

func layoutOf[E Lanes](s []E) (unsafe.Pointer, int, int) {
	return unsafe.Pointer(unsafe.SliceData(s)), len(s), ElementTypeOf[E]().Size()
}

// containerLayout returns the data pointer, element count and element size
// of a supported container.
func containerLayout(c any) (base unsafe.Pointer, n, size int, ok bool) {
	switch s := c.(type) {
	case []int8:
		base, n, size = layoutOf(s)
	case []int16:
		base, n, size = layoutOf(s)
	case []int32:
		base, n, size = layoutOf(s)
	case []int64:
		base, n, size = layoutOf(s)
	case []uint8:
		base, n, size = layoutOf(s)
	case []uint16:
		base, n, size = layoutOf(s)
	case []uint32:
		base, n, size = layoutOf(s)
	case []uint64:
		base, n, size = layoutOf(s)
	case []float32:
		base, n, size = layoutOf(s)
	case []float64:
		base, n, size = layoutOf(s)
	default:
		return nil, 0, 0, false
	}
	return base, n, size, true
}

// checkContainer panics unless nbytes bytes starting at element index lie
// inside c. It returns the container element size.
func checkContainer(op string, c any, index, nbytes int) int {
	_, n, size, ok := containerLayout(c)
	if !ok {
		violate(op, "unsupported container type %T", c)
	}
	if index < 0 || index > n || nbytes > (n-index)*size {
		violate(op, "%d bytes at index %d out of bounds for container of length %d", nbytes, index, n)
	}
	return size
}

// checkIndexMap validates a gather/scatter map. A map shorter than the
// witness is an input error; out-of-bounds positions and an index vector
// that disagrees with the map are contract violations.
func checkIndexMap(op string, w, idxW Witness, indexVector Vector[int32], c any, index int, indexMap []int, indexM int) error {
	checkWitness[int32](op, idxW, KindVector)
	checkOperands(op, idxW, indexVector)
	if idxW.Length != w.Length {
		violate(op, "index witness %v does not match %v", idxW, w)
	}
	if indexM < 0 || indexM > len(indexMap) {
		violate(op, "index map offset %d out of range [0, %d]", indexM, len(indexMap))
	}
	if len(indexMap)-indexM < w.Length {
		return fmt.Errorf("vsupport: %s: index map has %d entries from %d, need %d: %w",
			op, len(indexMap)-indexM, indexM, w.Length, ErrShapeMismatch)
	}
	m := indexMap[indexM : indexM+w.Length]

	_, n, size, ok := containerLayout(c)
	if !ok {
		violate(op, "unsupported container type %T", c)
	}
	laneBytes := w.Elem.Size()
	offsets := indexVector.lanes()
	for i, off := range m {
		pos := index + off
		if pos < 0 || pos > n || laneBytes > (n-pos)*size {
			violate(op, "lane %d maps to index %d, out of bounds for container of length %d", i, pos, n)
		}
		if int(offsets[i]) != off {
			violate(op, "index vector lane %d is %d, index map has %d", i, offsets[i], off)
		}
	}
	return nil
}

// Load reads w.Length lanes from container starting at element index.
// addr must locate container[index] for native kernels to be considered.
// An out-of-bounds range panics before any memory access.
func Load[T Lanes, C any](w Witness, addr Address, container C, index int, s Species[T], fallback Fallback[func(C, int, Species[T]) Vector[T]]) Vector[T] {
	const name = "Load"
	checkWitness[T](name, w, KindVector)
	checkSpecies(name, w, s)
	checkContainer(name, container, index, w.Length*w.Elem.Size())
	fn := fallback.mustFn(name)

	if !addr.IsZero() {
		if k, ok := lookup[LoadKernel[T]](Intrinsic{Family: FamilyLoad, Op: OpNone, Elem: w.Elem}, w.Length); ok {
			dst := make([]T, w.Length)
			k(dst, addr)
			return Vector[T]{payload: dst}
		}
	}
	r := fn(container, index, s)
	checkResult(name, w, r)
	return r
}

// Store writes the lanes of v to container starting at element index.
func Store[T Lanes, C any](w Witness, addr Address, v Vector[T], container C, index int, fallback Fallback[func(C, int, Vector[T])]) {
	const name = "Store"
	checkWitness[T](name, w, KindVector)
	checkOperands(name, w, v)
	checkContainer(name, container, index, w.Length*w.Elem.Size())
	fn := fallback.mustFn(name)

	if !addr.IsZero() {
		if k, ok := lookup[StoreKernel[T]](Intrinsic{Family: FamilyStore, Op: OpNone, Elem: w.Elem}, w.Length); ok {
			k(addr, v.lanes())
			loadFence()
			return
		}
	}
	fn(container, index, v)
}

// LoadWithMap gathers lane i from container element index +
// indexMap[indexM+i]. indexVector carries the same offsets for native
// kernels and is described by idxW.
func LoadWithMap[T Lanes, C any](w, idxW Witness, addr Address, indexVector Vector[int32], container C, index int, indexMap []int, indexM int, s Species[T], fallback Fallback[func(C, int, []int, int, Species[T]) Vector[T]]) (Vector[T], error) {
	const name = "LoadWithMap"
	checkWitness[T](name, w, KindVector)
	checkSpecies(name, w, s)
	if err := checkIndexMap(name, w, idxW, indexVector, container, index, indexMap, indexM); err != nil {
		return Vector[T]{}, err
	}
	fn := fallback.mustFn(name)

	if !addr.IsZero() {
		if k, ok := lookup[GatherKernel[T]](Intrinsic{Family: FamilyGather, Op: OpNone, Elem: w.Elem}, w.Length); ok {
			_, _, size, _ := containerLayout(container)
			dst := make([]T, w.Length)
			k(dst, addr, indexVector.lanes(), size)
			return Vector[T]{payload: dst}, nil
		}
	}
	r := fn(container, index, indexMap, indexM, s)
	checkResult(name, w, r)
	return r, nil
}

// StoreWithMap scatters lane i of v to container element index +
// indexMap[indexM+i]. Lanes are written in order, so the last lane wins
// when two lanes map to the same element.
func StoreWithMap[T Lanes, C any](w, idxW Witness, addr Address, indexVector Vector[int32], v Vector[T], container C, index int, indexMap []int, indexM int, fallback Fallback[func(C, int, Vector[T], []int, int)]) error {
	const name = "StoreWithMap"
	checkWitness[T](name, w, KindVector)
	checkOperands(name, w, v)
	if err := checkIndexMap(name, w, idxW, indexVector, container, index, indexMap, indexM); err != nil {
		return err
	}
	fn := fallback.mustFn(name)

	if !addr.IsZero() {
		if k, ok := lookup[ScatterKernel[T]](Intrinsic{Family: FamilyScatter, Op: OpNone, Elem: w.Elem}, w.Length); ok {
			_, _, size, _ := containerLayout(container)
			k(addr, v.lanes(), indexVector.lanes(), size)
			loadFence()
			return nil
		}
	}
	fn(container, index, v, indexMap, indexM)
	return nil
}
