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

// Species pairs an element type with a lane count. It carries no runtime
// state and is only used to describe and validate shapes.
//
// Two species are equal when they have the same element type and length,
// so the == operator works for a fixed T and Equal compares across types.
//
// Usage:
//
//	s := vsupport.SpeciesOf[float32](8)
//	w := s.VectorWitness()
type Species[T Lanes] struct {
	length int
}

// SpeciesOf returns the species of n lanes of T. It panics if n < 1.
func SpeciesOf[T Lanes](n int) Species[T] {
	if n < 1 {
		violate("SpeciesOf", "lane count %d must be positive", n)
	}
	return Species[T]{length: n}
}

// Species64 returns the species whose vectors are 64 bits wide.
func Species64[T Lanes]() Species[T] {
	return speciesForBytes[T](8)
}

// Species128 returns the species whose vectors are 128 bits wide (SSE, NEON).
func Species128[T Lanes]() Species[T] {
	return speciesForBytes[T](16)
}

// Species256 returns the species whose vectors are 256 bits wide (AVX2).
func Species256[T Lanes]() Species[T] {
	return speciesForBytes[T](32)
}

// Species512 returns the species whose vectors are 512 bits wide (AVX-512).
func Species512[T Lanes]() Species[T] {
	return speciesForBytes[T](64)
}

// PreferredSpecies returns the widest species the current dispatch level
// supports for T.
func PreferredSpecies[T Lanes]() Species[T] {
	return Species[T]{length: MaxLanes[T]()}
}

func speciesForBytes[T Lanes](width int) Species[T] {
	n := width / ElementTypeOf[T]().Size()
	return Species[T]{length: max(n, 1)}
}

// Length returns the number of lanes.
func (s Species[T]) Length() int {
	return s.length
}

// ElementType returns the lane element type.
func (s Species[T]) ElementType() ElementType {
	return ElementTypeOf[T]()
}

// BitSize returns the total vector width in bits.
func (s Species[T]) BitSize() int {
	return s.length * ElementTypeOf[T]().Bits()
}

// ByteSize returns the total vector width in bytes.
func (s Species[T]) ByteSize() int {
	return s.length * ElementTypeOf[T]().Size()
}

// Equal reports whether other describes the same element type and length.
func (s Species[T]) Equal(other interface {
	Length() int
	ElementType() ElementType
}) bool {
	return other != nil && other.Length() == s.length && other.ElementType() == s.ElementType()
}

// VectorWitness returns the witness for vectors of this species.
func (s Species[T]) VectorWitness() Witness {
	return Witness{Kind: KindVector, Elem: s.ElementType(), Length: s.length}
}

// MaskWitness returns the witness for masks of this species.
func (s Species[T]) MaskWitness() Witness {
	return Witness{Kind: KindMask, Elem: s.ElementType(), Length: s.length}
}

// ShuffleWitness returns the witness for shuffles of this species.
func (s Species[T]) ShuffleWitness() Witness {
	return Witness{Kind: KindShuffle, Elem: s.ElementType(), Length: s.length}
}

func (s Species[T]) String() string {
	return fmt.Sprintf("Species[%s x %d]", s.ElementType(), s.length)
}
