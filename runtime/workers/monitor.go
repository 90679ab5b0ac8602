package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"messenger-lab/observability"
)

// MonitorWorker periodically logs bus traffic counters together with
// process self-stats (RSS, CPU). Telemetry only: it never synthesizes
// presence or sync events, so a stale online entry stays visible in the
// logs rather than being papered over.
type MonitorWorker struct {
	log      *slog.Logger
	monitor  *observability.Monitor
	interval time.Duration
}

func NewMonitorWorker(log *slog.Logger, monitor *observability.Monitor, interval time.Duration) *MonitorWorker {
	return &MonitorWorker{log: log, monitor: monitor, interval: interval}
}

func (w *MonitorWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats := w.monitor.Snapshot()
			rss, cpu := selfStats(p)
			w.log.Info("Bus stats",
				"published", stats.Published,
				"delivered", stats.Delivered,
				"dropped", stats.Dropped,
				"ram_bytes", rss,
				"cpu_percent", cpu,
			)
		}
	}
}

// selfStats collects process memory and CPU; failures degrade to zeros
// since telemetry must never take a worker down.
func selfStats(p *process.Process) (uint64, float64) {
	var rss uint64
	var cpu float64
	if memInfo, err := p.MemoryInfo(); err == nil {
		rss = memInfo.RSS
	}
	if cpuPercent, err := p.CPUPercent(); err == nil {
		cpu = cpuPercent
	}
	return rss, cpu
}
