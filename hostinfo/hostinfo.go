// Package hostinfo gathers the host environment facts recorded on sync
// events: CPU, memory and operating system.
package hostinfo

import (
	"context"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Facts describes the host running the IDE. CPUName is nil when the
// platform does not report a model name.
type Facts struct {
	CPUName       *string
	CPUCores      int64
	TotalMemoryMB int64
	OSName        string
	OSArch        string
}

// Collect never fails: when platform probes error out it falls back to the
// runtime facts, so event construction cannot be blocked by a flaky probe.
func Collect(ctx context.Context) Facts {
	facts := Facts{
		OSName:   runtime.GOOS,
		OSArch:   runtime.GOARCH,
		CPUCores: int64(runtime.NumCPU()),
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		if name := strings.TrimSpace(infos[0].ModelName); name != "" {
			facts.CPUName = &name
		}
	}
	if count, err := cpu.CountsWithContext(ctx, true); err == nil && count > 0 {
		facts.CPUCores = int64(count)
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm.Total > 0 {
		facts.TotalMemoryMB = int64(vm.Total / (1024 * 1024))
	}
	return facts
}
