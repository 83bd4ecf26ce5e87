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

// AddressOf returns the address of element index of container, for native
// memory kernels. It returns the zero Address when container is not a
// supported slice type or index does not name an element.
func AddressOf[C any](container C, index int) Address {
	base, n, size, ok := containerLayout(container)
	if !ok || index < 0 || index >= n {
		return Address{}
	}
	return Address{Base: base, Offset: uintptr(index * size)}
}

func loadLanes[T Lanes](c []T, index int, s Species[T]) Vector[T] {
	out := make([]T, s.Length())
	copy(out, c[index:])
	return Vector[T]{payload: out}
}

func storeLanes[T Lanes](c []T, index int, v Vector[T]) {
	copy(c[index:], v.lanes())
}

// loadLanesLE decodes lanes stored little-endian at byte offset off.
func loadLanesLE[T Lanes](c []byte, off int, s Species[T]) Vector[T] {
	size := ElementTypeOf[T]().Size()
	out := make([]T, s.Length())
	for i := range out {
		p := off + i*size
		out[i] = laneFromLE[T](c[p : p+size])
	}
	return Vector[T]{payload: out}
}

func storeLanesLE[T Lanes](c []byte, off int, v Vector[T]) {
	copy(c[off:], appendLanesLE(nil, v.lanes()))
}

func gatherLanes[T Lanes](c []T, index int, indexMap []int, indexM int, s Species[T]) Vector[T] {
	out := make([]T, s.Length())
	for i := range out {
		out[i] = c[index+indexMap[indexM+i]]
	}
	return Vector[T]{payload: out}
}

func scatterLanes[T Lanes](c []T, index int, v Vector[T], indexMap []int, indexM int) {
	for i, x := range v.lanes() {
		c[index+indexMap[indexM+i]] = x
	}
}

// LoadSlice loads s.Length() lanes from src starting at index. It panics
// if the range is out of bounds.
//
// Usage:
//
//	v := vsupport.LoadSlice(vsupport.SpeciesOf[float32](4), data, 8)
func LoadSlice[T Lanes](s Species[T], src []T, index int) Vector[T] {
	return Load(s.VectorWitness(), AddressOf(src, index), src, index, s, builtin(loadLanes[T]))
}

// FromSlice loads the first s.Length() lanes of src.
func FromSlice[T Lanes](s Species[T], src []T) Vector[T] {
	return LoadSlice(s, src, 0)
}

// StoreSlice stores the lanes of v into dst starting at index. It panics if
// the range is out of bounds.
func StoreSlice[T Lanes](v Vector[T], dst []T, index int) {
	Store(WitnessOf(v), AddressOf(dst, index), v, dst, index, builtin(storeLanes[T]))
}

// LoadBytes decodes s.Length() little-endian lanes from b at byte offset
// off.
func LoadBytes[T Lanes](s Species[T], b []byte, off int) Vector[T] {
	addr := Address{}
	if nativeLittleEndian {
		addr = AddressOf(b, off)
	}
	return Load(s.VectorWitness(), addr, b, off, s, builtin(loadLanesLE[T]))
}

// StoreBytes encodes the lanes of v little-endian into b at byte offset
// off.
func StoreBytes[T Lanes](v Vector[T], b []byte, off int) {
	addr := Address{}
	if nativeLittleEndian {
		addr = AddressOf(b, off)
	}
	Store(WitnessOf(v), addr, v, b, off, builtin(storeLanesLE[T]))
}

// indexVectorOf packs the active part of an index map into the int32
// vector handed to native gather and scatter kernels.
func indexVectorOf(op string, indexMap []int, indexM, n int) Vector[int32] {
	out := make([]int32, n)
	if indexM < 0 || len(indexMap)-indexM < n {
		// Left for the dispatcher to report.
		return Vector[int32]{payload: out}
	}
	for i := range out {
		off := indexMap[indexM+i]
		if off < math.MinInt32 || off > math.MaxInt32 {
			violate(op, "index map entry %d does not fit in 32 bits", off)
		}
		out[i] = int32(off)
	}
	return Vector[int32]{payload: out}
}

// Gather loads lane i from src[index+indexMap[indexM+i]]. An index map with
// fewer than s.Length() entries from indexM is reported as
// ErrShapeMismatch; positions outside src panic.
func Gather[T Lanes](s Species[T], src []T, index int, indexMap []int, indexM int) (Vector[T], error) {
	const name = "Gather"
	n := s.Length()
	idx := indexVectorOf(name, indexMap, indexM, n)
	return LoadWithMap(s.VectorWitness(), SpeciesOf[int32](n).VectorWitness(), AddressOf(src, index), idx,
		src, index, indexMap, indexM, s, builtin(gatherLanes[T]))
}

// Scatter stores lane i of v to dst[index+indexMap[indexM+i]].
func Scatter[T Lanes](v Vector[T], dst []T, index int, indexMap []int, indexM int) error {
	const name = "Scatter"
	n := v.Len()
	idx := indexVectorOf(name, indexMap, indexM, n)
	return StoreWithMap(WitnessOf(v), SpeciesOf[int32](n).VectorWitness(), AddressOf(dst, index), idx,
		v, dst, index, indexMap, indexM, builtin(scatterLanes[T]))
}

// Raw memory kernels only agree with the little-endian byte container
// format on little-endian hosts.
var nativeLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1
