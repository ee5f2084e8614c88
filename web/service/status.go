package service

import (
	"time"

	"github.com/ecocart/ecocart/config"
	"github.com/ecocart/ecocart/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Status is a point-in-time snapshot of host and process health.
type Status struct {
	AppVersion string  `json:"appVersion"`
	Uptime     uint64  `json:"uptime"`
	Cpu        float64 `json:"cpu"`
	Mem        struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
}

// StatusService reports host health for the status endpoint.
type StatusService struct{}

func (s *StatusService) GetStatus() *Status {
	status := &Status{AppVersion: config.GetVersion()}

	if uptime, err := host.Uptime(); err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = uptime
	}

	if percents, err := cpu.Percent(100*time.Millisecond, false); err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	return status
}
