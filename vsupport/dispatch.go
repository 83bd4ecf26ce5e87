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
	"os"
	"strconv"
)

// DispatchLevel identifies the vector instruction family selected at startup.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota
	DispatchSSE2
	DispatchAVX2
	DispatchAVX512
	DispatchNEON
	DispatchSVE
)

func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// Environment switches read once at startup.
const (
	// NoSimdEnvVar forces scalar mode: no native kernel is ever recognized.
	NoSimdEnvVar = "VSUPPORT_NO_SIMD"
	// MaxWidthEnvVar caps the dispatch width in bytes (16, 32 or 64).
	MaxWidthEnvVar = "VSUPPORT_MAX_WIDTH"
)

var (
	currentLevel DispatchLevel
	currentWidth int
	currentName  string
)

func init() {
	if NoSimdEnv() {
		setScalarMode()
	} else {
		detectCPUFeatures()
	}
	applyWidthCap(os.Getenv(MaxWidthEnvVar))
}

// NoSimdEnv reports whether VSUPPORT_NO_SIMD is set to a non-empty value.
func NoSimdEnv() bool {
	return os.Getenv(NoSimdEnvVar) != ""
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
	currentName = "scalar"
}

// applyWidthCap lowers the dispatch width to the value of VSUPPORT_MAX_WIDTH.
// Values that are not one of 16, 32 or 64, or that would widen, are ignored.
func applyWidthCap(v string) {
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || (n != 16 && n != 32 && n != 64) {
		Logger().Warn("vsupport: ignoring invalid width cap", "env", MaxWidthEnvVar, "value", v)
		return
	}
	if n >= currentWidth {
		return
	}
	currentWidth = n
	switch {
	case n == 16 && (currentLevel == DispatchAVX2 || currentLevel == DispatchAVX512):
		currentLevel = DispatchSSE2
		currentName = "sse2"
	case n == 32 && currentLevel == DispatchAVX512:
		currentLevel = DispatchAVX2
		currentName = "avx2"
	}
}

// CurrentLevel returns the dispatch level selected at startup.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the vector width in bytes of the current level.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns the name of the current dispatch level.
func CurrentName() string {
	return currentName
}

// Supports reports whether kernels written for level may run here.
// Scalar kernels run everywhere; other levels need the same instruction
// family at an equal or lower tier than the detected one.
func Supports(level DispatchLevel) bool {
	if level == DispatchScalar {
		return true
	}
	if currentLevel == DispatchScalar {
		return false
	}
	if isARM(level) != isARM(currentLevel) {
		return false
	}
	return level <= currentLevel
}

func isARM(l DispatchLevel) bool {
	return l == DispatchNEON || l == DispatchSVE
}

// GetMaxLaneCount returns how many lanes of e fit in one native vector at
// the current dispatch level. The answer does not change after startup.
func GetMaxLaneCount(e ElementType) int {
	size := e.Size()
	if size == 0 {
		return 0
	}
	return currentWidth / size
}

// MaxLanes returns GetMaxLaneCount for the element type of T.
func MaxLanes[T Lanes]() int {
	return GetMaxLaneCount(ElementTypeOf[T]())
}
