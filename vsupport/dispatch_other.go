//go:build !amd64 && !arm64

package vsupport

func detectCPUFeatures() {
	// Non-amd64/arm64 architectures fall back to scalar mode for now.
	setScalarMode()
}
