package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/hypewire/hypewire/internal/events"
	"github.com/hypewire/hypewire/internal/queue"
)

// SystemHandlers answers operational status queries for the dashboard
// footer: process stats plus the depth of the generation queue.
type SystemHandlers struct {
	queue       *queue.RequestQueue
	bus         *events.Bus
	startupTime time.Time
	log         zerolog.Logger
}

// SystemStatus is the GET /api/system/status response.
type SystemStatus struct {
	Status           string  `json:"status"`
	UptimeSeconds    int64   `json:"uptimeSeconds"`
	CPUPercent       float64 `json:"cpuPercent"`
	RAMPercent       float64 `json:"ramPercent"`
	Goroutines       int     `json:"goroutines"`
	QueueDepth       int     `json:"queueDepth"`
	EventSubscribers int     `json:"eventSubscribers"`
}

// NewSystemHandlers creates new system handlers
func NewSystemHandlers(log zerolog.Logger, q *queue.RequestQueue, bus *events.Bus) *SystemHandlers {
	return &SystemHandlers{
		queue:       q,
		bus:         bus,
		startupTime: time.Now(),
		log:         log.With().Str("component", "system").Logger(),
	}
}

// HandleStatus handles GET /api/system/status
func (h *SystemHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	status := SystemStatus{
		Status:           "ok",
		UptimeSeconds:    int64(time.Since(h.startupTime).Seconds()),
		CPUPercent:       cpuPercent,
		RAMPercent:       ramPercent,
		Goroutines:       runtime.NumGoroutine(),
		EventSubscribers: 0,
	}
	if h.queue != nil {
		status.QueueDepth = h.queue.Depth()
	}
	if h.bus != nil {
		status.EventSubscribers = h.bus.SubscriberCount()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// getSystemStats samples CPU and memory usage. Failures degrade to zero
// values rather than failing the status endpoint.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to sample CPU usage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to sample memory usage")
		return cpuPercent[0], 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}
