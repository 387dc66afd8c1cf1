// Package cron runs the stack's wall-clock housekeeping: work that has
// no TDMA-time dependency and so does not belong on the hot tick path.
// Defrag-buffer aging and circuit expiry are deliberately NOT here: both
// are driven against TDMA time and are called directly from the tick
// handlers instead: the UMAC scheduler ages defrag buffers on every tick,
// and CMCE checks circuit expiry on the slot-1 tick only.
package cron

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/stackcfg"
)

// Housekeeper owns the gocron scheduler that runs the stack's
// wall-clock-cadence jobs.
type Housekeeper struct {
	scheduler gocron.Scheduler
}

// New creates a Housekeeper with a fresh gocron scheduler.
func New() (*Housekeeper, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating housekeeping scheduler: %w", err)
	}
	return &Housekeeper{scheduler: s}, nil
}

// RegisterCellLoadHeartbeat logs the current cell-load indicator every
// interval, giving operators a wall-clock-cadence view into the
// tick-driven StackState without coupling logging to the tick path.
func (h *Housekeeper) RegisterCellLoadHeartbeat(state *stackcfg.StackState, interval time.Duration) error {
	_, err := h.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			slog.Info("stack heartbeat", "cell_load", state.CellLoad())
		}),
		gocron.WithName("cell-load-heartbeat"),
	)
	if err != nil {
		return fmt.Errorf("registering cell-load heartbeat job: %w", err)
	}
	return nil
}

// Start starts the underlying gocron scheduler.
func (h *Housekeeper) Start() {
	h.scheduler.Start()
}

// Stop shuts the scheduler down.
func (h *Housekeeper) Stop() {
	if err := h.scheduler.StopJobs(); err != nil {
		slog.Error("failed to stop housekeeping jobs", "error", err)
	}
	if err := h.scheduler.Shutdown(); err != nil {
		slog.Error("failed to shut down housekeeping scheduler", "error", err)
	}
}
