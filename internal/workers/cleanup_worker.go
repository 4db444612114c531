package workers

import (
	"context"
	"time"

	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/repositories"
)

// CleanupWorker purges expired reset codes and revoked tokens whose
// natural expiry has passed.
type CleanupWorker struct {
	resetRepo     repositories.PasswordResetRepository
	blacklistRepo repositories.TokenBlacklistRepository
	interval      time.Duration
}

func NewCleanupWorker(
	resetRepo repositories.PasswordResetRepository,
	blacklistRepo repositories.TokenBlacklistRepository,
	interval time.Duration,
) *CleanupWorker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CleanupWorker{
		resetRepo:     resetRepo,
		blacklistRepo: blacklistRepo,
		interval:      interval,
	}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *CleanupWorker) sweep() {
	now := time.Now()

	if n, err := w.resetRepo.DeleteExpired(now); err != nil {
		logger.Error("failed to purge expired reset codes", "error", err)
	} else if n > 0 {
		logger.Info("purged expired reset codes", "count", n)
	}

	if n, err := w.blacklistRepo.DeleteExpired(now); err != nil {
		logger.Error("failed to purge expired blacklisted tokens", "error", err)
	} else if n > 0 {
		logger.Info("purged expired blacklisted tokens", "count", n)
	}
}
