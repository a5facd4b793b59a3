// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"net/http"
)

const unknownUsage = "unknown"

func usage(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

func health(c *gin.Context) {
	resp := healthResponse{
		Status:      "healthy",
		MemoryUsage: unknownUsage,
		CpuUsage:    unknownUsage,
		DiskUsage:   unknownUsage,
	}

	if m, err := mem.VirtualMemoryWithContext(c.Request.Context()); err == nil {
		resp.MemoryUsage = usage(m.UsedPercent)
	}
	// 0 interval compares against the previous call, no blocking
	if p, err := cpu.PercentWithContext(c.Request.Context(), 0, false); err == nil && len(p) > 0 {
		resp.CpuUsage = usage(p[0])
	}
	if d, err := disk.UsageWithContext(c.Request.Context(), "/"); err == nil {
		resp.DiskUsage = usage(d.UsedPercent)
	}

	c.JSON(http.StatusOK, resp)
}

func RegisterHealthApi(group *gin.RouterGroup) {
	group.GET("/health", health)
}
