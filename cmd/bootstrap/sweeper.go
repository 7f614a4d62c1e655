package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"parking-reserve/internal/pkg/config"
	"parking-reserve/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(startSweeper),
)

// startSweeper runs the booking lifecycle sweep on a fixed interval for the
// lifetime of the application. Each tick completes expired bookings, releases
// idle slots and marks slots with an in-progress booking as occupied.
func startSweeper(lc fx.Lifecycle, cfg config.Config, lifecycle commands.LifecycleCommands, logger *slog.Logger) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.Sweep.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						ctx, cancel := context.WithTimeout(context.Background(), cfg.Sweep.Interval)
						result, err := lifecycle.Sweep(ctx)
						cancel()
						if err != nil {
							logger.Error("booking lifecycle sweep failed", "error", err)
							continue
						}
						if result.CompletedBookings > 0 || result.ReleasedSlots > 0 || result.DemotedSlots > 0 || result.OccupiedSlots > 0 {
							logger.Info("booking lifecycle sweep finished",
								"completed_bookings", result.CompletedBookings,
								"released_slots", result.ReleasedSlots,
								"demoted_slots", result.DemotedSlots,
								"occupied_slots", result.OccupiedSlots,
							)
						}
					}
				}
			}()
			logger.Info("booking lifecycle sweeper started", "interval", cfg.Sweep.Interval.String())
			return nil
		},
		OnStop: func(_ context.Context) error {
			close(done)
			logger.Info("booking lifecycle sweeper stopped")
			return nil
		},
	})
}
