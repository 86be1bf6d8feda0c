// Package system reports process-level resource usage for the status
// endpoint.
package system

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// MemoryStats is the process memory footprint in bytes.
type MemoryStats struct {
	RSSBytes   uint64  `json:"rss_bytes"`
	VMSBytes   uint64  `json:"vms_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
}

// Collect gathers stats for the current process. Errors leave the
// corresponding fields zero; status reporting never fails a request.
func Collect() MemoryStats {
	var stats MemoryStats

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats
	}

	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		stats.RSSBytes = mem.RSS
		stats.VMSBytes = mem.VMS
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	return stats
}
