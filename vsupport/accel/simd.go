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

package accel

import (
	"runtime"

	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"

	"github.com/ajroetker/vecsupport/vsupport"
)

// simdLevel is the baseline the simd library needs; it picks wider code
// paths itself.
func simdLevel() vsupport.DispatchLevel {
	switch runtime.GOARCH {
	case "amd64":
		return vsupport.DispatchSSE2
	case "arm64":
		return vsupport.DispatchNEON
	default:
		return vsupport.DispatchScalar
	}
}

// newSIMDProvider registers the lane-wise float kernels of
// github.com/tphakala/simd. Division is left out: reciprocal-based
// division is not guaranteed to round like the scalar quotient.
func newSIMDProvider() *provider {
	p := newProvider("simd", simdLevel(), prioritySIMD)

	p.add(vsupport.FamilyBinary, vsupport.OpAdd, vsupport.ElemFloat32, vsupport.BinaryKernel[float32](f32.Add))
	p.add(vsupport.FamilyBinary, vsupport.OpSub, vsupport.ElemFloat32, vsupport.BinaryKernel[float32](f32.Sub))
	p.add(vsupport.FamilyBinary, vsupport.OpMul, vsupport.ElemFloat32, vsupport.BinaryKernel[float32](f32.Mul))

	p.add(vsupport.FamilyBinary, vsupport.OpAdd, vsupport.ElemFloat64, vsupport.BinaryKernel[float64](f64.Add))
	p.add(vsupport.FamilyBinary, vsupport.OpSub, vsupport.ElemFloat64, vsupport.BinaryKernel[float64](f64.Sub))
	p.add(vsupport.FamilyBinary, vsupport.OpMul, vsupport.ElemFloat64, vsupport.BinaryKernel[float64](f64.Mul))

	return p
}
