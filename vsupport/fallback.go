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
	"reflect"
	"regexp"
	"runtime"
	"sync"
)

// Fallback is a verified portable implementation passed to a dispatcher
// entry point. The dispatcher either substitutes a native kernel or calls
// the fallback exactly once with the operands it was given.
//
// A Fallback can only be built by Impl, which accepts declared functions
// and rejects function literals and method values. A declared function
// carries no captured state, so the engine may skip it or run it in place of
// a kernel without any observable difference.
type Fallback[F any] struct {
	fn F
	ok bool
}

// closureName matches the symbol names the compiler gives to function
// literals ("pkg.Outer.func1", "pkg.Outer.func1.2"), range-over-func bodies
// ("pkg.Outer-range1") and bound method values ("pkg.T.M-fm").
var closureName = regexp.MustCompile(`(\.func\d+(\.\d+)*|-range\d+(\.\d+)*|-fm)$`)

// verified caches the entry PCs already accepted by Impl.
var verified sync.Map // uintptr -> struct{}

// Impl wraps fn as a Fallback after checking that it is a declared
// function. It panics with a *ContractViolation if fn is nil, not a
// function, a function literal or a method value. The check runs once per
// function; later calls hit a cache.
//
// Usage:
//
//	func addInt32(a, b vsupport.Vector[int32]) vsupport.Vector[int32] { ... }
//
//	sum := vsupport.BinaryOp(vsupport.OpAdd, w, a, b, vsupport.Impl(addInt32))
func Impl[F any](fn F) Fallback[F] {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		violate("Impl", "fallback must be a non-nil function, got %T", fn)
	}
	pc := v.Pointer()
	if _, ok := verified.Load(pc); ok {
		return Fallback[F]{fn: fn, ok: true}
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		violate("Impl", "cannot resolve fallback %T", fn)
	}
	name := f.Name()
	if closureName.MatchString(name) {
		violate("Impl", "fallback %s captures state; pass a declared function", name)
	}
	verified.Store(pc, struct{}{})
	return Fallback[F]{fn: fn, ok: true}
}

// builtin wraps one of this package's own fallbacks. They are declared
// functions, but generic instantiations taken inside generic code are
// compiled as dictionary closures, so they bypass the name check.
func builtin[F any](fn F) Fallback[F] {
	return Fallback[F]{fn: fn, ok: true}
}

// Name returns the symbol name of the wrapped function.
func (f Fallback[F]) Name() string {
	if !f.ok {
		return ""
	}
	if fn := runtime.FuncForPC(reflect.ValueOf(f.fn).Pointer()); fn != nil {
		return fn.Name()
	}
	return ""
}

// mustFn returns the wrapped function, panicking for a zero Fallback.
func (f Fallback[F]) mustFn(op string) F {
	if !f.ok {
		violate(op, "missing fallback; build one with Impl")
	}
	return f.fn
}
