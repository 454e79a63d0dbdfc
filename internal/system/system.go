// Package system sizes the pipeline against the host it runs on.
package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// workerFootprint is the headroom budgeted per ingest worker: a decoded
// 2048px RGBA frame is 16 MiB, doubled for the scaled copy held during
// resampling.
const workerFootprint = 2 * 2048 * 2048 * 4

// Workers picks the ingest worker count. A positive override wins;
// otherwise the count is the number of logical CPUs, capped by available
// memory so concurrent decodes cannot exhaust RAM.
func Workers(override int) int {
	if override > 0 {
		return override
	}

	workers := runtime.NumCPU()
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		workers = n
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm.Available > 0 {
		byMem := int(vm.Available / workerFootprint)
		if byMem < workers {
			workers = byMem
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}
