package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/internal/repository"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
)

type Result struct {
	Emails  int
	Prompts int
}

type Seeder struct {
	db      *pgxpool.Pool
	emails  *repository.EmailRepository
	prompts *repository.PromptRepository
	logger  *zap.Logger
}

func NewSeeder(db *pgxpool.Pool, log *zap.Logger) *Seeder {
	return &Seeder{
		db:      db,
		emails:  repository.NewEmailRepository(db),
		prompts: repository.NewPromptRepository(db),
		logger:  log,
	}
}

// Run replaces every stored email with emails and adds prompts when no
// template exists yet. Existing templates are never touched. Everything
// happens in one transaction.
func (s *Seeder) Run(ctx context.Context, emails []model.NewEmail, prompts []PromptSeed) (Result, error) {
	log := logger.WithTrace(ctx, s.logger)
	var res Result

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.emails.DeleteAllTx(ctx, tx); err != nil {
		return res, err
	}
	for _, e := range emails {
		if _, err := s.emails.CreateTx(ctx, tx, e); err != nil {
			return res, err
		}
		res.Emails++
	}

	n, err := s.prompts.CountTx(ctx, tx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		res.Prompts, err = s.insertPrompts(ctx, tx, prompts)
		if err != nil {
			return res, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Database seeded",
		zap.Int("emails", res.Emails),
		zap.Int("prompts", res.Prompts),
	)
	return res, nil
}

func (s *Seeder) insertPrompts(ctx context.Context, tx pgx.Tx, prompts []PromptSeed) (int, error) {
	for _, p := range prompts {
		if err := s.prompts.CreateTx(ctx, tx, p.Name, p.Type, p.Content); err != nil {
			return 0, err
		}
	}
	return len(prompts), nil
}
