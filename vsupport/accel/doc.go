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

// Package accel contributes native kernels to the vsupport recognition
// table. Importing it queues three providers; they take effect at the next
// vsupport.Register call.
//
// # Providers
//
//   - simd (priority 20): float32/float64 ADD, SUB and MUL through
//     github.com/tphakala/simd, which selects AVX/NEON code paths at runtime.
//   - swar (priority 10): word-parallel AND, OR, XOR, ANDNOT and NOT for
//     every lane type, the matching bitwise reductions, and raw-address
//     load, store, gather and scatter kernels.
//   - gonum (priority 5): float64 ADD, SUB, MUL and DIV through
//     gonum.org/v1/gonum/floats.
//
// Every kernel is bit-identical to the scalar fallback it replaces. Kernels
// whose results depend on summation order (dot products, sums) are
// deliberately not registered.
//
// # Example Usage
//
//	import (
//	    "github.com/ajroetker/vecsupport/vsupport"
//	    _ "github.com/ajroetker/vecsupport/vsupport/accel"
//	)
//
//	func main() {
//	    vsupport.Register()
//	    ...
//	}
package accel
