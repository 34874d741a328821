package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// healthHandler reports database pool state plus a snapshot of the host.
// It answers 503 when the database is down.
func (s *Server) healthHandler(c echo.Context) error {
	dbStats := s.db.Health()

	status := http.StatusOK
	if dbStats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]interface{}{
		"database": dbStats,
		"runtime":  s.runtimeStats(),
	})
}

// runtimeStats gathers host metrics. Collection errors leave fields out
// rather than failing the health check.
func (s *Server) runtimeStats() map[string]interface{} {
	stats := map[string]interface{}{
		"uptime":     time.Since(s.startedAt).Round(time.Second).String(),
		"start_time": s.startedAt.Format(time.RFC3339),
	}

	if hInfo, err := host.Info(); err == nil {
		stats["os"] = hInfo.OS
		stats["platform"] = hInfo.Platform
		stats["arch"] = hInfo.KernelArch
		stats["hostname"] = hInfo.Hostname
	}

	// Interval 0 compares against the previous call instead of blocking.
	if cpuPercent, err := cpu.Percent(0, false); err == nil && len(cpuPercent) > 0 {
		stats["cpu_usage"] = fmt.Sprintf("%.2f%%", cpuPercent[0])
	}

	if v, err := mem.VirtualMemory(); err == nil {
		stats["ram_usage"] = fmt.Sprintf("%.2f%%", v.UsedPercent)
		stats["ram_used_gb"] = fmt.Sprintf("%.2f GB", float64(v.Used)/1024/1024/1024)
	}

	return stats
}
