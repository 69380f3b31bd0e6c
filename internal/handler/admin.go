package handler

import (
	"net/http"
	"runtime"
	"time"

	"talenthub-api/internal/repository"
	"talenthub-api/internal/service"
	"talenthub-api/pkg/response"
)

// AdminHandler serves operational statistics to admin-role users.
type AdminHandler struct {
	investments repository.InvestmentRepository
	showcases   repository.ShowcaseRepository
	sweeper     *service.PendingSweeper
	userDBType  string
	startTime   time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	investments repository.InvestmentRepository,
	showcases repository.ShowcaseRepository,
	sweeper *service.PendingSweeper,
	userDBType string,
) *AdminHandler {
	return &AdminHandler{
		investments: investments,
		showcases:   showcases,
		sweeper:     sweeper,
		userDBType:  userDBType,
		startTime:   time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make(map[string]interface{})

	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["user_db_type"] = h.userDBType

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":   float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":     float64(memStats.Sys) / 1024 / 1024,
		"num_gc":     memStats.NumGC,
		"goroutines": runtime.NumGoroutine(),
	}

	if h.investments != nil {
		counts, err := h.investments.CountByStatus(ctx)
		if err == nil {
			stats["investments"] = counts
		} else {
			stats["investments"] = map[string]interface{}{"error": err.Error()}
		}
	}

	if h.showcases != nil {
		count, err := h.showcases.Count(ctx)
		if err == nil {
			stats["showcases"] = count
		}
	}

	response.OK(w, stats)
}

// RunSweep handles POST /api/v1/admin/sweep - trigger an immediate
// pending-investment sweep.
func (h *AdminHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	if h.sweeper == nil {
		response.OK(w, map[string]interface{}{"expired": 0, "enabled": false})
		return
	}

	expired, err := h.sweeper.RunNow()
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"expired": expired, "enabled": true})
}
