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
	"encoding/binary"
	"unsafe"

	"github.com/ajroetker/vecsupport/vsupport"
)

// SWAR ("SIMD within a register") kernels treat the lane block as raw
// bytes and process eight of them per 64-bit word. Bitwise operations do
// not care about lane boundaries or byte order, so they are exact for every
// lane type. Reductions and memory kernels interpret bytes as lanes and are
// only registered on little-endian hosts.

var littleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// bytesOf returns the memory of s as bytes.
func bytesOf[T vsupport.Lanes](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
}

func and64(x, y uint64) uint64    { return x & y }
func or64(x, y uint64) uint64     { return x | y }
func xor64(x, y uint64) uint64    { return x ^ y }
func andNot64(x, y uint64) uint64 { return x &^ y }

// wordOp computes dst = f(a, b) over len(dst) bytes, a word at a time.
func wordOp(dst, a, b []byte, f func(x, y uint64) uint64) {
	n := len(dst)
	i := 0
	for ; i+8 <= n; i += 8 {
		binary.LittleEndian.PutUint64(dst[i:], f(binary.LittleEndian.Uint64(a[i:]), binary.LittleEndian.Uint64(b[i:])))
	}
	for ; i < n; i++ {
		dst[i] = byte(f(uint64(a[i]), uint64(b[i])))
	}
}

func swarAnd[T vsupport.Lanes](dst, a, b []T) { wordOp(bytesOf(dst), bytesOf(a), bytesOf(b), and64) }
func swarOr[T vsupport.Lanes](dst, a, b []T)  { wordOp(bytesOf(dst), bytesOf(a), bytesOf(b), or64) }
func swarXor[T vsupport.Lanes](dst, a, b []T) { wordOp(bytesOf(dst), bytesOf(a), bytesOf(b), xor64) }

func swarAndNot[T vsupport.Lanes](dst, a, b []T) {
	wordOp(bytesOf(dst), bytesOf(a), bytesOf(b), andNot64)
}

func swarNot[T vsupport.Lanes](dst, a []T) {
	src := bytesOf(a)
	wordOp(bytesOf(dst), src, src, func(x, _ uint64) uint64 { return ^x })
}

// collapse folds the lanes packed in one little-endian word down to a
// single lane of size bytes.
func collapse(acc uint64, size int, f func(x, y uint64) uint64) uint64 {
	for width := 32; width >= size*8; width /= 2 {
		acc = f(acc, acc>>width)
	}
	if size == 8 {
		return acc
	}
	return acc & (1<<(size*8) - 1)
}

// swarReduce folds all lanes of a with f, whose identity element is ident.
// f must be associative and commutative.
func swarReduce[T vsupport.Lanes](a []T, ident uint64, f func(x, y uint64) uint64) T {
	raw := bytesOf(a)
	size := vsupport.ElementTypeOf[T]().Size()
	acc := ident
	i := 0
	for ; i+8 <= len(raw); i += 8 {
		acc = f(acc, binary.LittleEndian.Uint64(raw[i:]))
	}
	acc = collapse(acc, size, f)
	for ; i < len(raw); i += size {
		var buf [8]byte
		copy(buf[:size], raw[i:i+size])
		acc = f(acc, binary.LittleEndian.Uint64(buf[:]))
	}
	return vsupport.FromBits[T](int64(acc))
}

func swarReduceAnd[T vsupport.Lanes](a []T) T { return swarReduce(a, ^uint64(0), and64) }
func swarReduceOr[T vsupport.Lanes](a []T) T  { return swarReduce(a, 0, or64) }
func swarReduceXor[T vsupport.Lanes](a []T) T { return swarReduce(a, 0, xor64) }

func swarLoad[T vsupport.Lanes](dst []T, addr vsupport.Address) {
	out := bytesOf(dst)
	copy(out, addr.Bytes(0, len(out)))
}

func swarStore[T vsupport.Lanes](addr vsupport.Address, src []T) {
	in := bytesOf(src)
	copy(addr.Bytes(0, len(in)), in)
}

func swarGather[T vsupport.Lanes](dst []T, addr vsupport.Address, offsets []int32, scale int) {
	size := vsupport.ElementTypeOf[T]().Size()
	out := bytesOf(dst)
	for i, off := range offsets {
		copy(out[i*size:(i+1)*size], addr.Bytes(int(off)*scale, size))
	}
}

func swarScatter[T vsupport.Lanes](addr vsupport.Address, src []T, offsets []int32, scale int) {
	size := vsupport.ElementTypeOf[T]().Size()
	in := bytesOf(src)
	for i, off := range offsets {
		copy(addr.Bytes(int(off)*scale, size), in[i*size:(i+1)*size])
	}
}

// addTyped registers the kernels of one lane type.
func addTyped[T vsupport.Lanes](p *provider) {
	e := vsupport.ElementTypeOf[T]()

	p.add(vsupport.FamilyBinary, vsupport.OpAnd, e, vsupport.BinaryKernel[T](swarAnd[T]))
	p.add(vsupport.FamilyBinary, vsupport.OpOr, e, vsupport.BinaryKernel[T](swarOr[T]))
	p.add(vsupport.FamilyBinary, vsupport.OpXor, e, vsupport.BinaryKernel[T](swarXor[T]))
	p.add(vsupport.FamilyBinary, vsupport.OpAndNot, e, vsupport.BinaryKernel[T](swarAndNot[T]))
	p.add(vsupport.FamilyUnary, vsupport.OpNot, e, vsupport.UnaryKernel[T](swarNot[T]))

	if !littleEndian {
		return
	}
	p.add(vsupport.FamilyReduction, vsupport.OpAnd, e, vsupport.ReductionKernel[T](swarReduceAnd[T]))
	p.add(vsupport.FamilyReduction, vsupport.OpOr, e, vsupport.ReductionKernel[T](swarReduceOr[T]))
	p.add(vsupport.FamilyReduction, vsupport.OpXor, e, vsupport.ReductionKernel[T](swarReduceXor[T]))

	p.add(vsupport.FamilyLoad, vsupport.OpNone, e, vsupport.LoadKernel[T](swarLoad[T]))
	p.add(vsupport.FamilyStore, vsupport.OpNone, e, vsupport.StoreKernel[T](swarStore[T]))
	p.add(vsupport.FamilyGather, vsupport.OpNone, e, vsupport.GatherKernel[T](swarGather[T]))
	p.add(vsupport.FamilyScatter, vsupport.OpNone, e, vsupport.ScatterKernel[T](swarScatter[T]))
}

func newSWARProvider() *provider {
	p := newProvider("swar", vsupport.DispatchScalar, prioritySWAR)
	addTyped[int8](p)
	addTyped[int16](p)
	addTyped[int32](p)
	addTyped[int64](p)
	addTyped[uint8](p)
	addTyped[uint16](p)
	addTyped[uint32](p)
	addTyped[uint64](p)
	addTyped[float32](p)
	addTyped[float64](p)
	return p
}
