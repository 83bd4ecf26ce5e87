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
	"cmp"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Family groups intrinsics that share an entry point and kernel signature.
type Family uint8

const (
	FamilyUnary Family = iota
	FamilyBinary
	FamilyTernary
	FamilyBroadcastInt
	FamilyReduction
	FamilyCompare
	FamilyTest
	FamilyBlend
	FamilyRearrange
	FamilyBroadcast
	FamilyLoad
	FamilyStore
	FamilyGather
	FamilyScatter
	FamilyExtract
	FamilyInsert
	FamilyIndex
	FamilyConvert
)

var familyNames = [...]string{
	FamilyUnary:        "unary",
	FamilyBinary:       "binary",
	FamilyTernary:      "ternary",
	FamilyBroadcastInt: "broadcast int",
	FamilyReduction:    "reduction",
	FamilyCompare:      "compare",
	FamilyTest:         "test",
	FamilyBlend:        "blend",
	FamilyRearrange:    "rearrange",
	FamilyBroadcast:    "broadcast",
	FamilyLoad:         "load",
	FamilyStore:        "store",
	FamilyGather:       "gather",
	FamilyScatter:      "scatter",
	FamilyExtract:      "extract",
	FamilyInsert:       "insert",
	FamilyIndex:        "index",
	FamilyConvert:      "convert",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

// Intrinsic is the key of the recognition table. Op holds the operation
// code, the BoolTest code for FamilyCompare and FamilyTest, or OpNone.
// To is only set for FamilyConvert.
type Intrinsic struct {
	Family Family
	Op     Op
	Elem   ElementType
	To     ElementType
}

func (in Intrinsic) String() string {
	op := in.Op.String()
	if in.Family == FamilyCompare || in.Family == FamilyTest {
		op = BoolTest(in.Op).String()
	}
	if in.Family == FamilyConvert {
		return fmt.Sprintf("%s/%s/%s->%s", in.Family, op, in.Elem, in.To)
	}
	return fmt.Sprintf("%s/%s/%s", in.Family, op, in.Elem)
}

// Kernel signatures, one per family. A kernel writes exactly len(dst)
// lanes; the engine sizes dst from the witness and never passes aliased
// slices. Providers store kernels in the map returned by Kernels as values
// of these types; a kernel of any other type is never called.
type (
	UnaryKernel[T Lanes]        = func(dst, a []T)
	BinaryKernel[T Lanes]       = func(dst, a, b []T)
	TernaryKernel[T Lanes]      = func(dst, a, b, c []T)
	BroadcastIntKernel[T Lanes] = func(dst, a []T, n int)
	ReductionKernel[T Lanes]    = func(a []T) T
	CompareKernel[T Lanes]      = func(dst []bool, a, b []T)
	TestKernel                  = func(a, b []bool) bool
	BlendKernel[T Lanes]        = func(dst, a, b []T, m []bool)
	RearrangeKernel[T Lanes]    = func(dst, a []T, idx []int)
	BroadcastKernel[T Lanes]    = func(dst []T, x T)
	LoadKernel[T Lanes]         = func(dst []T, addr Address)
	StoreKernel[T Lanes]        = func(addr Address, src []T)
	GatherKernel[T Lanes]       = func(dst []T, addr Address, offsets []int32, scale int)
	ScatterKernel[T Lanes]      = func(addr Address, src []T, offsets []int32, scale int)
	ExtractKernel[T Lanes]      = func(a []T, i int) T
	InsertKernel[T Lanes]       = func(dst, a []T, i int, x T)
	IndexKernel[T Lanes]        = func(dst, a []T, step int)
	ConvertKernel[F, T Lanes]   = func(dst []T, src []F)
)

// Provider contributes native kernels to the recognition table.
//
// Kernels must produce lanes bit-identical to the package's portable
// fallbacks for every input they accept. Providers whose Level is not
// supported on the running CPU are skipped. When two providers register
// the same Intrinsic, the higher Priority wins.
type Provider interface {
	Name() string
	Level() DispatchLevel
	Priority() int
	Kernels() map[Intrinsic]any
}

// Recognition describes one entry of the frozen recognition table.
type Recognition struct {
	Intrinsic Intrinsic
	Provider  string
	Level     DispatchLevel
}

type tableEntry struct {
	kernel   any
	provider string
	level    DispatchLevel
}

type table struct {
	kernels map[Intrinsic]tableEntry
}

var (
	providersMu  sync.Mutex
	providers    []Provider
	registerOnce sync.Once
	frozen       atomic.Pointer[table]
)

// AddProvider queues p for the next Register call. It returns false, and p
// is ignored, once the table has been frozen.
func AddProvider(p Provider) bool {
	providersMu.Lock()
	defer providersMu.Unlock()
	if frozen.Load() != nil {
		Logger().Warn("vsupport: provider added after Register, ignored", "provider", p.Name())
		return false
	}
	providers = append(providers, p)
	return true
}

// Register freezes the recognition table from the queued providers. It is
// idempotent: only the first call has any effect. Until Register runs,
// every entry point calls its fallback.
func Register() {
	registerOnce.Do(func() {
		providersMu.Lock()
		defer providersMu.Unlock()
		frozen.Store(buildTable(providers))
	})
}

// Registered reports whether Register has run.
func Registered() bool {
	return frozen.Load() != nil
}

func buildTable(queued []Provider) *table {
	t := &table{kernels: make(map[Intrinsic]tableEntry)}
	log := Logger()
	if NoSimdEnv() {
		log.Info("vsupport: native kernels disabled", "env", NoSimdEnvVar, "skipped", len(queued))
		return t
	}

	ordered := slices.Clone(queued)
	slices.SortStableFunc(ordered, func(a, b Provider) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})

	for _, p := range ordered {
		if !Supports(p.Level()) {
			log.Debug("vsupport: provider skipped", "provider", p.Name(), "level", p.Level(), "current", currentLevel)
			continue
		}
		added := 0
		for in, k := range p.Kernels() {
			if k == nil {
				continue
			}
			if _, taken := t.kernels[in]; taken {
				continue
			}
			t.kernels[in] = tableEntry{kernel: k, provider: p.Name(), level: p.Level()}
			added++
		}
		log.Debug("vsupport: provider registered", "provider", p.Name(), "kernels", added)
	}
	log.Info("vsupport: recognition table frozen", "level", currentName, "width", currentWidth, "kernels", len(t.kernels))
	return t
}

// Recognized lists the frozen recognition table, ordered by family, op and
// element type. It is empty before Register.
func Recognized() []Recognition {
	t := frozen.Load()
	if t == nil {
		return nil
	}
	out := make([]Recognition, 0, len(t.kernels))
	for in, e := range t.kernels {
		out = append(out, Recognition{Intrinsic: in, Provider: e.provider, Level: e.level})
	}
	slices.SortFunc(out, func(a, b Recognition) int {
		x, y := a.Intrinsic, b.Intrinsic
		return cmp.Or(
			cmp.Compare(x.Family, y.Family),
			cmp.Compare(x.Op, y.Op),
			cmp.Compare(x.Elem, y.Elem),
			cmp.Compare(x.To, y.To),
		)
	})
	return out
}

// lookup returns the kernel recognized for in, provided it has type K and
// length lanes fit in one native vector of in.Elem. A false result means the
// caller must run its fallback.
func lookup[K any](in Intrinsic, length int) (K, bool) {
	var zero K
	t := frozen.Load()
	if t == nil {
		return zero, false
	}
	e, ok := t.kernels[in]
	if !ok {
		return zero, false
	}
	if length > GetMaxLaneCount(in.Elem) {
		return zero, false
	}
	k, ok := e.kernel.(K)
	return k, ok
}
