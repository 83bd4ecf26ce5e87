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

// Conversion kinds accepted by Convert. They share the Op code space.
const (
	// ConvCast converts each lane's numeric value.
	ConvCast = OpCast
	// ConvReinterpret reuses the lane bytes, little-endian, as lanes of the
	// target type.
	ConvReinterpret = OpReinterpret
)

// Convert changes the element type, and possibly the lane count, of v.
// from describes v, to describes the result of species s.
//
// For ConvCast the result has to.Length lanes: lanes past the end of v are
// zero and surplus input lanes are dropped. For ConvReinterpret the input
// bytes are zero-filled or truncated to the output size.
func Convert[F, T Lanes](op Op, from, to Witness, v Vector[F], s Species[T], fallback Fallback[func(Vector[F], Species[T]) Vector[T]]) Vector[T] {
	const name = "Convert"
	checkWitness[F](name, from, KindVector)
	checkWitness[T](name, to, KindVector)
	checkOperands(name, from, v)
	checkSpecies(name, to, s)
	if op != ConvCast && op != ConvReinterpret {
		violate(name, "%v is not a conversion", op)
	}
	fn := fallback.mustFn(name)

	if to.Length <= GetMaxLaneCount(to.Elem) {
		in := Intrinsic{Family: FamilyConvert, Op: op, Elem: from.Elem, To: to.Elem}
		if k, ok := lookup[ConvertKernel[F, T]](in, from.Length); ok {
			dst := make([]T, to.Length)
			k(dst, v.lanes())
			return Vector[T]{payload: dst}
		}
	}
	r := fn(v, s)
	checkResult(name, to, r)
	return r
}

// MaskCast relabels the lanes of m as a mask for element type T. Masks
// carry no element bits, so only the lane count must agree; a mismatch
// panics.
func MaskCast[F, T Lanes](m Mask[F], s Species[T]) Mask[T] {
	if m.Len() != s.Length() {
		violate("MaskCast", "mask has %d lanes, species %v", m.Len(), s)
	}
	return Mask[T]{payload: m.Bits()}
}
