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

// Witness declares the shape a dispatcher call expects: payload class,
// element type and lane count. Every entry point checks its operands
// against the witnesses before any kernel lookup.
type Witness struct {
	Kind   PayloadKind
	Elem   ElementType
	Length int
}

func (w Witness) String() string {
	return fmt.Sprintf("%s[%s x %d]", w.Kind, w.Elem, w.Length)
}

// WitnessOf returns the witness describing p.
func WitnessOf(p Payload) Witness {
	return Witness{Kind: p.Kind(), Elem: p.ElementType(), Length: p.Len()}
}

// checkWitness panics unless w declares kind and element type T.
func checkWitness[T Lanes](op string, w Witness, kind PayloadKind) {
	if w.Kind != kind {
		violate(op, "witness %v declares class %v, operation expects %v", w, w.Kind, kind)
	}
	if e := ElementTypeOf[T](); w.Elem != e {
		violate(op, "witness %v declares element type %v, operand element type is %v", w, w.Elem, e)
	}
	if w.Length < 1 {
		violate(op, "witness %v declares non-positive length", w)
	}
}

// checkOperands panics unless every operand matches w.
func checkOperands(op string, w Witness, operands ...Payload) {
	for i, p := range operands {
		if p.Kind() != w.Kind || p.ElementType() != w.Elem || p.Len() != w.Length {
			violate(op, "operand %d is %v, witness declares %v", i, WitnessOf(p), w)
		}
	}
}

// checkSpecies panics unless s has the witnessed lane count.
func checkSpecies[T Lanes](op string, w Witness, s Species[T]) {
	if s.length != w.Length {
		violate(op, "species %v does not match witness %v", s, w)
	}
}

// checkResult panics if a fallback produced a payload of the wrong shape.
func checkResult(op string, w Witness, p Payload) {
	if p.Kind() != w.Kind || p.ElementType() != w.Elem || p.Len() != w.Length {
		violate(op, "fallback returned %v, expected %v", WitnessOf(p), w)
	}
}
