package controller

import (
	"github.com/gofiber/fiber/v2"
)

type DashboardController struct{}

func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

type DashboardStats struct {
	TotalVerifications int64   `json:"total_verifications"`
	AvgLatencyMs       float64 `json:"avg_latency_ms"`
	SpamBlocked        int64   `json:"spam_blocked"`
}

type TimeSeriesPoint struct {
	Label    string `json:"label"`
	Requests int64  `json:"requests"`
}

// GetDashboardStats returns display-only figures for the dashboard cards.
// Usage tracking is not implemented; these are static mock values.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stats": DashboardStats{
			TotalVerifications: 24592,
			AvgLatencyMs:       142,
			SpamBlocked:        8203,
		},
		"requests_over_time": []TimeSeriesPoint{
			{Label: "Mon", Requests: 4000},
			{Label: "Tue", Requests: 3000},
			{Label: "Wed", Requests: 2000},
			{Label: "Thu", Requests: 2780},
			{Label: "Fri", Requests: 1890},
			{Label: "Sat", Requests: 2390},
			{Label: "Sun", Requests: 3490},
		},
	})
}
