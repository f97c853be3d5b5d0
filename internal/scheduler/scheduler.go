package scheduler

import (
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/cart"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/service"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the background sweeps: expiring pending reservations whose
// date has passed, and shrinking the in-process cart cache.
type Scheduler struct {
	cron               *cron.Cron
	reservationService service.ReservationService
	carts              *cart.Manager
}

func New(reservationService service.ReservationService, carts *cart.Manager) *Scheduler {
	return &Scheduler{
		cron:               cron.New(),
		reservationService: reservationService,
		carts:              carts,
	}
}

// Start registers the sweep jobs. Reservations are swept every hour on the
// hour; the cart cache is pruned nightly.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		count, err := s.reservationService.ExpireStale()
		if err != nil {
			logger.Error("Failed to expire stale reservations from scheduler", err)
			return
		}
		if count > 0 {
			logger.Info("Reservation sweep completed", map[string]interface{}{
				"expired": count,
			})
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for reservation sweep", err)
		return err
	}

	// Persisted carts age out with their storage TTL; this only drops the
	// in-process cache entries for carts that emptied.
	_, err = s.cron.AddFunc("30 3 * * *", func() {
		pruned := s.carts.PruneEmpty()
		if pruned > 0 {
			logger.Info("Cart cache prune completed", map[string]interface{}{
				"pruned": pruned,
			})
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cache prune", err)
		return err
	}

	s.cron.Start()
	logger.Info("Background scheduler started successfully", nil)

	return nil
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	logger.Info("Stopping background scheduler...", nil)
	s.cron.Stop()
	logger.Info("Background scheduler stopped", nil)
}
