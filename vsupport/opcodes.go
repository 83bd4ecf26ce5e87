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

// Op is an operation code. Codes are stable: new operations get new codes,
// an existing code never changes meaning.
type Op int

const (
	// Unary
	OpAbs  Op = 0
	OpNeg  Op = 1
	OpSqrt Op = 2

	// Binary
	OpAdd Op = 4
	OpSub Op = 5
	OpMul Op = 6
	OpDiv Op = 7
	OpMin Op = 8
	OpMax Op = 9

	OpAnd Op = 10
	OpOr  Op = 11
	OpXor Op = 12

	// Ternary
	OpFMA Op = 13

	// Broadcast int
	OpLShift  Op = 14
	OpRShift  Op = 15
	OpURShift Op = 16

	OpCast        Op = 17
	OpReinterpret Op = 18

	// Extensions
	OpAndNot Op = 19
	OpNot    Op = 20
)

// OpNone is used as the op code of intrinsic families that have a single
// operation (load, store, blend, ...).
const OpNone Op = -1

var opNames = map[Op]string{
	OpAbs:         "ABS",
	OpNeg:         "NEG",
	OpSqrt:        "SQRT",
	OpAdd:         "ADD",
	OpSub:         "SUB",
	OpMul:         "MUL",
	OpDiv:         "DIV",
	OpMin:         "MIN",
	OpMax:         "MAX",
	OpAnd:         "AND",
	OpOr:          "OR",
	OpXor:         "XOR",
	OpFMA:         "FMA",
	OpLShift:      "LSHIFT",
	OpRShift:      "RSHIFT",
	OpURShift:     "URSHIFT",
	OpCast:        "CAST",
	OpReinterpret: "REINTERPRET",
	OpAndNot:      "ANDNOT",
	OpNot:         "NOT",
	OpNone:        "-",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// BoolTest selects the lane predicate of Compare and the reduction of Test.
type BoolTest int

const (
	BTEq         BoolTest = 0
	BTGt         BoolTest = 1
	BTOverflow   BoolTest = 2
	BTLt         BoolTest = 3
	BTNe         BoolTest = 4
	BTLe         BoolTest = 5
	BTNoOverflow BoolTest = 6
	BTGe         BoolTest = 7
)

// Test reductions share the BoolTest code space.
const (
	// TestAny: some lane has both masks set.
	TestAny = BTNe
	// TestAll: every lane set in the second mask is set in the first.
	TestAll = BTOverflow
)

func (bt BoolTest) String() string {
	switch bt {
	case BTEq:
		return "eq"
	case BTGt:
		return "gt"
	case BTOverflow:
		return "overflow"
	case BTLt:
		return "lt"
	case BTNe:
		return "ne"
	case BTLe:
		return "le"
	case BTNoOverflow:
		return "no_overflow"
	case BTGe:
		return "ge"
	default:
		return fmt.Sprintf("BoolTest(%d)", int(bt))
	}
}

// WrapPolicy decides what happens to shuffle indices outside [0, length).
type WrapPolicy uint8

const (
	// WrapModulo maps index i to i mod length (always non-negative).
	WrapModulo WrapPolicy = iota
	// WrapClamp maps negative indices to 0 and large ones to length-1.
	WrapClamp
	// WrapReject refuses out-of-range indices with ErrIndexOutOfRange.
	WrapReject
)

func (p WrapPolicy) String() string {
	switch p {
	case WrapModulo:
		return "modulo"
	case WrapClamp:
		return "clamp"
	case WrapReject:
		return "reject"
	default:
		return fmt.Sprintf("WrapPolicy(%d)", uint8(p))
	}
}

// Apply resolves index i for a shuffle of n lanes.
func (p WrapPolicy) Apply(i, n int) (int, error) {
	if i >= 0 && i < n {
		return i, nil
	}
	switch p {
	case WrapModulo:
		r := i % n
		if r < 0 {
			r += n
		}
		return r, nil
	case WrapClamp:
		if i < 0 {
			return 0, nil
		}
		return n - 1, nil
	case WrapReject:
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
	default:
		violate("WrapPolicy.Apply", "unknown policy %v", p)
		return 0, nil
	}
}
