package controllers

import (
	"net/http"

	"seriesapi/models"
	"seriesapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"gorm.io/gorm"
)

type SystemController struct {
	DB *gorm.DB
}

func NewSystemController(db *gorm.DB) *SystemController {
	return &SystemController{DB: db}
}

// SystemStats 目录数据统计
type SystemStats struct {
	TotalPlatforms int64 `json:"total_platforms"`
	TotalGenders   int64 `json:"total_genders"`
	TotalSeries    int64 `json:"total_series"`
	TotalSeasons   int64 `json:"total_seasons"`
	TotalEpisodes  int64 `json:"total_episodes"`
	TotalUsers     int64 `json:"total_users"`
}

type SystemStatus struct {
	CPUUsage      float64        `json:"cpuUsage"`
	MemoryTotal   uint64         `json:"memoryTotal"`
	MemoryUsed    uint64         `json:"memoryUsed"`
	MemoryUsage   float64        `json:"memoryUsage"`
	DiskTotal     uint64         `json:"diskTotal"`
	DiskUsed      uint64         `json:"diskUsed"`
	DiskUsage     float64        `json:"diskUsage"`
	NetworkStatus NetworkMetrics `json:"networkStatus"`
	Uptime        uint64         `json:"uptime"`
}

type NetworkMetrics struct {
	RxBytes     uint64 `json:"rxBytes"`
	TxBytes     uint64 `json:"txBytes"`
	Connections int    `json:"connections"`
}

// GetSystemStats godoc
// @Summary      获取目录统计信息
// @Description  统计平台、类型、剧集、季、单集和用户数量
// @Tags         系统管理
// @Produce      json
// @Success      200  {object}  Response{data=SystemStats}
// @Security     Bearer
// @Router       /admin/stats [get]
func (sc *SystemController) GetSystemStats(c *gin.Context) {
	var stats SystemStats
	db := sc.DB.WithContext(c.Request.Context())

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Platform{}, &stats.TotalPlatforms},
		{&models.Gender{}, &stats.TotalGenders},
		{&models.Serie{}, &stats.TotalSeries},
		{&models.Season{}, &stats.TotalSeasons},
		{&models.Episode{}, &stats.TotalEpisodes},
		{&models.User{}, &stats.TotalUsers},
	}
	for _, item := range counts {
		if err := db.Model(item.model).Count(item.dest).Error; err != nil {
			utils.LogError("统计数据失败", err)
			c.JSON(http.StatusInternalServerError, Response{Error: "Failed to load statistics"})
			return
		}
	}

	c.JSON(http.StatusOK, Response{Data: stats})
}

// GetSystemStatus godoc
// @Summary      获取主机运行状态
// @Description  CPU、内存、磁盘、网络和运行时间
// @Tags         系统管理
// @Produce      json
// @Success      200  {object}  Response{data=SystemStatus}
// @Security     Bearer
// @Router       /admin/system/status [get]
func (sc *SystemController) GetSystemStatus(c *gin.Context) {
	ctx := c.Request.Context()
	var status SystemStatus

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		status.CPUUsage = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.MemoryTotal = vm.Total
		status.MemoryUsed = vm.Used
		status.MemoryUsage = vm.UsedPercent
	}
	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		status.DiskTotal = usage.Total
		status.DiskUsed = usage.Used
		status.DiskUsage = usage.UsedPercent
	}
	if counters, err := net.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		status.NetworkStatus.RxBytes = counters[0].BytesRecv
		status.NetworkStatus.TxBytes = counters[0].BytesSent
	}
	if conns, err := net.ConnectionsWithContext(ctx, "tcp"); err == nil {
		status.NetworkStatus.Connections = len(conns)
	}
	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		status.Uptime = uptime
	}

	c.JSON(http.StatusOK, Response{Data: status})
}
