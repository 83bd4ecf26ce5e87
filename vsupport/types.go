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

// Package vsupport provides fixed-width lane-wise vector values and the
// dispatch layer that runs operations on them.
//
// Every operation has a single entry point that takes type witnesses, the
// operands and a portable fallback. A registered native kernel may be
// substituted for the fallback; when none is recognized, the fallback runs
// exactly once. Both paths produce bit-identical results.
//
// Basic usage:
//
//	import "github.com/ajroetker/vecsupport/vsupport"
//
//	s := vsupport.SpeciesOf[int32](4)
//	a := vsupport.FromSlice(s, []int32{1, 2, 3, 4})
//	b := vsupport.Broadcast(s, 10)
//
//	sum := vsupport.Add(a, b)       // [11 12 13 14]
//	total := vsupport.ReduceAdd(a) // 10
//
// Native kernels are contributed by provider packages and frozen into the
// recognition table by a single call to Register at startup:
//
//	import _ "github.com/ajroetker/vecsupport/vsupport/accel"
//
//	func main() {
//	    vsupport.Register()
//	    ...
//	}
package vsupport

import (
	"fmt"
	"math"
)

// Floats is a constraint for floating-point lane types.
type Floats interface {
	float32 | float64
}

// SignedInts is a constraint for signed integer lane types.
type SignedInts interface {
	int8 | int16 | int32 | int64
}

// UnsignedInts is a constraint for unsigned integer lane types.
type UnsignedInts interface {
	uint8 | uint16 | uint32 | uint64
}

// Integers is a constraint for all integer lane types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Floats | Integers
}

// ElementType identifies the primitive type held in each lane.
type ElementType uint8

const (
	ElemInvalid ElementType = iota
	ElemInt8
	ElemInt16
	ElemInt32
	ElemInt64
	ElemUint8
	ElemUint16
	ElemUint32
	ElemUint64
	ElemFloat32
	ElemFloat64
)

// AllElementTypes lists every valid element type in declaration order.
var AllElementTypes = []ElementType{
	ElemInt8, ElemInt16, ElemInt32, ElemInt64,
	ElemUint8, ElemUint16, ElemUint32, ElemUint64,
	ElemFloat32, ElemFloat64,
}

// String returns the Go name of the element type.
func (e ElementType) String() string {
	switch e {
	case ElemInt8:
		return "int8"
	case ElemInt16:
		return "int16"
	case ElemInt32:
		return "int32"
	case ElemInt64:
		return "int64"
	case ElemUint8:
		return "uint8"
	case ElemUint16:
		return "uint16"
	case ElemUint32:
		return "uint32"
	case ElemUint64:
		return "uint64"
	case ElemFloat32:
		return "float32"
	case ElemFloat64:
		return "float64"
	default:
		return fmt.Sprintf("ElementType(%d)", uint8(e))
	}
}

// Size returns the lane width in bytes, or 0 for an invalid type.
func (e ElementType) Size() int {
	switch e {
	case ElemInt8, ElemUint8:
		return 1
	case ElemInt16, ElemUint16:
		return 2
	case ElemInt32, ElemUint32, ElemFloat32:
		return 4
	case ElemInt64, ElemUint64, ElemFloat64:
		return 8
	default:
		return 0
	}
}

// Bits returns the lane width in bits.
func (e ElementType) Bits() int {
	return e.Size() * 8
}

// IsFloat reports whether lanes of this type are floating point.
func (e ElementType) IsFloat() bool {
	return e == ElemFloat32 || e == ElemFloat64
}

// IsSigned reports whether lanes of this type are signed integers.
func (e ElementType) IsSigned() bool {
	return e >= ElemInt8 && e <= ElemInt64
}

// IsUnsigned reports whether lanes of this type are unsigned integers.
func (e ElementType) IsUnsigned() bool {
	return e >= ElemUint8 && e <= ElemUint64
}

// ElementTypeOf returns the element type code for T.
func ElementTypeOf[T Lanes]() ElementType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return ElemInt8
	case int16:
		return ElemInt16
	case int32:
		return ElemInt32
	case int64:
		return ElemInt64
	case uint8:
		return ElemUint8
	case uint16:
		return ElemUint16
	case uint32:
		return ElemUint32
	case uint64:
		return ElemUint64
	case float32:
		return ElemFloat32
	case float64:
		return ElemFloat64
	default:
		return ElemInvalid
	}
}

// ToBits widens a lane value to a 64-bit pattern.
//
// Integers are widened by Go conversion (sign extension for signed types,
// zero extension for unsigned types). Floats are carried as their raw IEEE
// bits, zero extended.
func ToBits[T Lanes](x T) int64 {
	switch v := any(x).(type) {
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(math.Float32bits(v))
	case float64:
		return int64(math.Float64bits(v))
	default:
		return 0
	}
}

// FromBits narrows a 64-bit pattern to a lane value, keeping the low
// Size() bytes. It is the inverse of ToBits.
func FromBits[T Lanes](bits int64) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(bits)).(T)
	case int16:
		return any(int16(bits)).(T)
	case int32:
		return any(int32(bits)).(T)
	case int64:
		return any(bits).(T)
	case uint8:
		return any(uint8(bits)).(T)
	case uint16:
		return any(uint16(bits)).(T)
	case uint32:
		return any(uint32(bits)).(T)
	case uint64:
		return any(uint64(bits)).(T)
	case float32:
		return any(math.Float32frombits(uint32(bits))).(T)
	case float64:
		return any(math.Float64frombits(uint64(bits))).(T)
	default:
		return zero
	}
}

// laneMask returns a mask covering the low Bits() bits of e.
func laneMask(e ElementType) uint64 {
	if e.Size() == 8 {
		return ^uint64(0)
	}
	return (uint64(1) << e.Bits()) - 1
}
