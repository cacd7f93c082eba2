package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/internal/repository"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
)

const processAllJob = "process-all"

type UnprocessedLister interface {
	ListUnprocessedIDs(ctx context.Context) ([]int64, error)
}

type EmailProcessor interface {
	Process(ctx context.Context, emailID int64) (*model.Email, error)
}

// BatchGuard keeps two batches from running at once.
type BatchGuard interface {
	AcquireOnce(ctx context.Context, job string) bool
	Release(ctx context.Context, job string)
}

type BatchService struct {
	emails      UnprocessedLister
	processor   EmailProcessor
	guard       BatchGuard
	concurrency int
	logger      *zap.Logger
}

// NewBatchService creates the batch runner. guard may be nil.
func NewBatchService(emails UnprocessedLister, processor EmailProcessor, guard BatchGuard, concurrency int, log *zap.Logger) *BatchService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchService{
		emails:      emails,
		processor:   processor,
		guard:       guard,
		concurrency: concurrency,
		logger:      log,
	}
}

// ProcessAll processes every unprocessed email and returns how many were
// processed. Emails deleted while the batch runs are skipped; any other
// error stops the batch.
func (s *BatchService) ProcessAll(ctx context.Context) (int, error) {
	log := logger.WithTrace(ctx, s.logger)

	if s.guard != nil {
		if !s.guard.AcquireOnce(ctx, processAllJob) {
			return 0, ErrBatchInProgress
		}
		defer s.guard.Release(context.WithoutCancel(ctx), processAllJob)
	}

	ids, err := s.emails.ListUnprocessedIDs(ctx)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	var processed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			if _, err := s.processor.Process(gctx, id); err != nil {
				if errors.Is(err, repository.ErrEmailNotFound) {
					log.Info("Email vanished during batch, skipping", zap.Int64("email_id", id))
					return nil
				}
				return err
			}
			processed.Add(1)
			return nil
		})
	}
	err = g.Wait()

	log.Info("Batch processing finished",
		zap.Int("candidates", len(ids)),
		zap.Int64("processed", processed.Load()),
		zap.Int("concurrency", s.concurrency),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	return int(processed.Load()), err
}
