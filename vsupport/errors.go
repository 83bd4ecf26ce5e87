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

import (
	"errors"
	"fmt"
)

// Input validation failures. Operations wrap these with context, so test
// for them with errors.Is.
var (
	// ErrShapeMismatch reports a Mask, Shuffle or index map whose lane count
	// does not match the vector it is paired with.
	ErrShapeMismatch = errors.New("vsupport: lane count mismatch")

	// ErrIndexOutOfRange reports a shuffle index outside [0, length) under
	// WrapReject.
	ErrIndexOutOfRange = errors.New("vsupport: shuffle index out of range")
)

// ContractViolation is the panic value raised when a caller breaks the
// dispatch contract: witnesses that do not match the operands, a stateful
// fallback, or an out-of-range lane or container index. These are
// programmer defects and are never returned as errors.
type ContractViolation struct {
	Op  string
	Msg string
}

func (e *ContractViolation) Error() string {
	return "vsupport: " + e.Op + ": " + e.Msg
}

func violate(op, format string, args ...any) {
	panic(&ContractViolation{Op: op, Msg: fmt.Sprintf(format, args...)})
}

func checkLaneIndex(op string, i, n int) {
	if i < 0 || i >= n {
		violate(op, "lane index %d out of range [0, %d)", i, n)
	}
}
