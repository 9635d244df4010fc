// Package observability renders what a player process is doing for a human:
// process stats, start banners and end-of-run summaries.
package observability

import (
	"fmt"
	"player-lab/domain"

	"github.com/shirou/gopsutil/process"
)

// CollectProcessStats snapshots memory, CPU and OS state of the given process.
func CollectProcessStats(pid int) (domain.ProcessStats, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return domain.ProcessStats{}, fmt.Errorf("process %d: %w", pid, err)
	}

	memInfo, err := p.MemoryInfo()
	if err != nil {
		return domain.ProcessStats{}, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return domain.ProcessStats{}, err
	}

	status, err := p.Status()
	if err != nil {
		return domain.ProcessStats{}, err
	}

	ram, err := p.MemoryPercent()
	if err != nil {
		return domain.ProcessStats{}, err
	}

	return domain.ProcessStats{
		PID:    domain.PID(pid),
		Status: domain.ToStatus(status),
		CPU:    cpuPercent,
		RSS:    memInfo.RSS,
		RAM:    ram,
	}, nil
}
