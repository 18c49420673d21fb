package application

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// Snapshot is a point-in-time view of process health.
type Snapshot struct {
	Uptime     time.Duration
	CPUPercent float64
	HeapMB     float64
	Goroutines int
	GoVersion  string
}

// StatsInteractor collects process statistics.
type StatsInteractor struct {
	startedAt time.Time
}

// NewStatsInteractor creates a new StatsInteractor.
func NewStatsInteractor() *StatsInteractor {
	return &StatsInteractor{startedAt: time.Now()}
}

// Execute gathers a snapshot. CPU sampling is best-effort; an error leaves
// the field at zero.
func (s *StatsInteractor) Execute(ctx context.Context) Snapshot {
	snap := Snapshot{
		Uptime:     time.Since(s.startedAt).Round(time.Second),
		Goroutines: runtime.NumGoroutine(),
		GoVersion:  runtime.Version(),
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	snap.HeapMB = float64(mem.HeapAlloc) / (1 << 20)

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}

	return snap
}
