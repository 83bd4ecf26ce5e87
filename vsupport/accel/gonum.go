package accel

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ajroetker/vecsupport/vsupport"
)

func addTo64(dst, a, b []float64) { floats.AddTo(dst, a, b) }
func subTo64(dst, a, b []float64) { floats.SubTo(dst, a, b) }
func mulTo64(dst, a, b []float64) { floats.MulTo(dst, a, b) }
func divTo64(dst, a, b []float64) { floats.DivTo(dst, a, b) }

// newGonumProvider registers gonum's element-wise float64 routines. They
// are portable Go (with assembly on some platforms) and run at any level.
func newGonumProvider() *provider {
	p := newProvider("gonum", vsupport.DispatchScalar, priorityGonum)

	p.add(vsupport.FamilyBinary, vsupport.OpAdd, vsupport.ElemFloat64, vsupport.BinaryKernel[float64](addTo64))
	p.add(vsupport.FamilyBinary, vsupport.OpSub, vsupport.ElemFloat64, vsupport.BinaryKernel[float64](subTo64))
	p.add(vsupport.FamilyBinary, vsupport.OpMul, vsupport.ElemFloat64, vsupport.BinaryKernel[float64](mulTo64))
	p.add(vsupport.FamilyBinary, vsupport.OpDiv, vsupport.ElemFloat64, vsupport.BinaryKernel[float64](divTo64))

	return p
}
