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
	"github.com/ajroetker/vecsupport/vsupport"
)

// Priorities; higher wins when two providers register the same intrinsic.
const (
	prioritySIMD  = 20
	prioritySWAR  = 10
	priorityGonum = 5
)

// provider is a fixed set of kernels at one dispatch level.
type provider struct {
	name     string
	level    vsupport.DispatchLevel
	priority int
	kernels  map[vsupport.Intrinsic]any
}

func (p *provider) Name() string                        { return p.name }
func (p *provider) Level() vsupport.DispatchLevel       { return p.level }
func (p *provider) Priority() int                       { return p.priority }
func (p *provider) Kernels() map[vsupport.Intrinsic]any { return p.kernels }

func (p *provider) add(fam vsupport.Family, op vsupport.Op, e vsupport.ElementType, k any) {
	p.kernels[vsupport.Intrinsic{Family: fam, Op: op, Elem: e}] = k
}

func newProvider(name string, level vsupport.DispatchLevel, priority int) *provider {
	return &provider{
		name:     name,
		level:    level,
		priority: priority,
		kernels:  make(map[vsupport.Intrinsic]any),
	}
}

// Providers returns the providers of this package, highest priority first.
func Providers() []vsupport.Provider {
	return []vsupport.Provider{
		newSIMDProvider(),
		newSWARProvider(),
		newGonumProvider(),
	}
}

func init() {
	for _, p := range Providers() {
		vsupport.AddProvider(p)
	}
}
