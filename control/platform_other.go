//go:build !windows

// control/platform_other.go
// Author: momentics <momentics@gmail.com>
//
// Platform probes where no native completion port exists.

package control

import (
	"runtime"
)

// RegisterPlatformProbes sets platform debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.completion", func() any {
		return "memport"
	})
}
