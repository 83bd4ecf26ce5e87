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

// Package main provides a diagnostic tool that prints the CPU features
// detected by Go, the vsupport dispatch level and the frozen recognition
// table.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	simdcpu "github.com/tphakala/simd/cpu"
	"golang.org/x/sys/cpu"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/vecsupport/vsupport"
	_ "github.com/ajroetker/vecsupport/vsupport/accel"
)

func main() {
	if os.Getenv("VSUPPORT_DEBUG") != "" {
		vsupport.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	vsupport.Register()

	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("vsupport dispatch level: %s\n", vsupport.CurrentLevel())
	fmt.Printf("vsupport dispatch width: %d bytes\n", vsupport.CurrentWidth())
	fmt.Printf("vsupport dispatch name: %s\n", vsupport.CurrentName())
	fmt.Printf("vsupport scalar forced: %v (%s)\n", vsupport.NoSimdEnv(), vsupport.NoSimdEnvVar)
	fmt.Printf("simd library: %s\n", simdcpu.Info())
	fmt.Println()

	printLaneCounts()
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}

	fmt.Println()
	printRecognized()
}

func printLaneCounts() {
	fmt.Println("=== Max lanes per element type ===")
	for _, e := range vsupport.AllElementTypes {
		fmt.Printf("  %-8s %d\n", e, vsupport.GetMaxLaneCount(e))
	}
}

func printRecognized() {
	title := cases.Title(language.English)
	recognized := vsupport.Recognized()
	fmt.Printf("=== Recognized intrinsics (%d) ===\n", len(recognized))
	for _, r := range recognized {
		fmt.Printf("  %-40s %s (%s)\n", r.Intrinsic, title.String(r.Provider), r.Level)
	}
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD:    %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasFP:       %v (Floating point)\n", cpu.ARM64.HasFP)
	fmt.Printf("  HasASIMDHP:  %v (FP16 NEON, ARMv8.2-A)\n", cpu.ARM64.HasASIMDHP)
	fmt.Printf("  HasSVE:      %v (Scalable Vector Extension)\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasSVE2:     %v (SVE2)\n", cpu.ARM64.HasSVE2)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasAVX:      %v\n", cpu.X86.HasAVX)
	fmt.Printf("  HasAVX2:     %v\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasAVX512F:  %v\n", cpu.X86.HasAVX512F)
	fmt.Printf("  HasAVX512BW: %v\n", cpu.X86.HasAVX512BW)
	fmt.Printf("  HasAVX512VL: %v\n", cpu.X86.HasAVX512VL)
	fmt.Printf("  HasFMA:      %v\n", cpu.X86.HasFMA)
	fmt.Printf("  HasSSE2:     %v\n", cpu.X86.HasSSE2)
	fmt.Printf("  HasSSE41:    %v\n", cpu.X86.HasSSE41)
}
