//go:build amd64

package vsupport

import "golang.org/x/sys/cpu"

func detectCPUFeatures() {
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL {
		currentLevel = DispatchAVX512
		currentWidth = 64
		currentName = "avx512"
	} else if cpu.X86.HasAVX2 {
		currentLevel = DispatchAVX2
		currentWidth = 32
		currentName = "avx2"
	} else {
		// SSE2 is baseline for amd64
		currentLevel = DispatchSSE2
		currentWidth = 16
		currentName = "sse2"
	}
}
