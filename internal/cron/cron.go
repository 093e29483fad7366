package cron

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prezlink/prezlink/internal/config"
	"github.com/prezlink/prezlink/pkg/repository"
	"go.uber.org/zap"
)

// CronService runs the best-effort periodic sweeps. Correctness never
// depends on them: expired shares are rejected at read time regardless.
type CronService struct {
	shares repository.ShareRepository
	logger *zap.SugaredLogger
}

func StartCronJobs(ctx context.Context, scheduler *gocron.Scheduler, shares repository.ShareRepository, cnf *config.ServerCmdConfig, logger *zap.Logger) {
	if !cnf.CronJobs.Enable {
		return
	}

	cron := CronService{shares: shares, logger: logger.Sugar()}

	scheduler.Every(cnf.CronJobs.CleanSharesInterval).Do(cron.CleanExpiredShares, ctx)

	scheduler.StartAsync()
}

func (c *CronService) CleanExpiredShares(ctx context.Context) {
	count, err := c.shares.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		c.logger.Errorw("failed to clean expired shares", "err", err)
		return
	}
	if count > 0 {
		c.logger.Infow("cleaned expired shares", "count", count)
	}
}
