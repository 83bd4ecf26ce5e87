//go:build arm64

package vsupport

import "golang.org/x/sys/cpu"

func detectCPUFeatures() {
	// SVE vector length is implementation defined; kernels here are written
	// for 128-bit registers, so SVE is reported but dispatched as NEON width.
	switch {
	case cpu.ARM64.HasSVE:
		currentLevel = DispatchSVE
		currentName = "sve"
	case cpu.ARM64.HasASIMD:
		currentLevel = DispatchNEON
		currentName = "neon"
	default:
		setScalarMode()
		return
	}
	currentWidth = 16
}
