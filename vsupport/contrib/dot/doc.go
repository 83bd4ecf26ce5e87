// Package dot provides dot products built on vsupport vectors.
//
// # Dot Product Functions
//
//   - Dot(a, b []float32) float32 - Single dot product for float32
//   - Dot64(a, b []float64) float64 - Single dot product for float64
//   - DotBatch(queries, keys [][]float32) []float32 - Batch dot products
//
// # Algorithm
//
//  1. Load both inputs in chunks of vsupport.PreferredSpecies lanes
//  2. Multiply the chunks and add them into a vector accumulator
//  3. Reduce the accumulator left to right to a scalar
//  4. Handle tail elements with scalar code
//
// Each step is a vsupport dispatcher call, so the multiplies and adds run on
// whatever kernels are registered (see package accel). The summation order
// differs from a sequential loop, so results may differ from it in the last
// bits; they do not depend on which kernels are registered.
//
// # Example Usage
//
//	import "github.com/ajroetker/vecsupport/vsupport/contrib/dot"
//
//	a := []float32{1, 2, 3, 4, 5, 6, 7, 8}
//	b := []float32{8, 7, 6, 5, 4, 3, 2, 1}
//	result := dot.Dot(a, b)  // 120.0
package dot
