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

import "sync/atomic"

// fenceWord is never written. Loading it atomically gives acquire ordering:
// no later memory access may be moved before the load.
var fenceWord atomic.Uint32

// loadFence orders every subsequent load after all earlier accesses made
// through another view of the same memory (scalar stores into a container
// followed by a vector read, or the reverse).
func loadFence() {
	fenceWord.Load()
}

// MaybeRebox returns p after issuing a load fence. Use it when a payload
// crosses between scalar and vector views of aliased memory outside this
// package, e.g. after a native kernel wrote through a raw Address.
func MaybeRebox[P Payload](p P) P {
	loadFence()
	return p
}
