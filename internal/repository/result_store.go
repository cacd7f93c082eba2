package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	mqcontracts "github.com/mukheshvadlamudi/MailFlow/contracts/mq"
	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/pkg/mq"
	"github.com/mukheshvadlamudi/MailFlow/pkg/outbox"
	"github.com/mukheshvadlamudi/MailFlow/pkg/trace"
)

// ResultStore writes generation results together with their outbox events,
// each in a single transaction.
type ResultStore struct {
	db         *pgxpool.Pool
	emailRepo  *EmailRepository
	actionRepo *ActionItemRepository
	draftRepo  *DraftRepository
	outboxRepo *outbox.Repository
}

func NewResultStore(db *pgxpool.Pool) *ResultStore {
	return &ResultStore{
		db:         db,
		emailRepo:  NewEmailRepository(db),
		actionRepo: NewActionItemRepository(db),
		draftRepo:  NewDraftRepository(db),
		outboxRepo: outbox.NewRepository(db),
	}
}

// ApplyProcessingResult replaces the action items of an email, sets its
// category and marks it processed. The email row stays locked for the
// whole transaction, so concurrent runs on the same email serialize and
// readers see either the old or the new item set.
func (s *ResultStore) ApplyProcessingResult(
	ctx context.Context,
	emailID int64,
	category string,
	items []model.ExtractedAction,
) (*model.Email, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.emailRepo.LockByIDTx(ctx, tx, emailID); err != nil {
		return nil, err
	}
	if err := s.actionRepo.DeleteByEmailTx(ctx, tx, emailID); err != nil {
		return nil, err
	}
	if err := s.actionRepo.InsertBatchTx(ctx, tx, emailID, items); err != nil {
		return nil, err
	}

	email, err := s.emailRepo.MarkProcessedTx(ctx, tx, emailID, category)
	if err != nil {
		return nil, err
	}

	payload := mqcontracts.EmailProcessedPayload{
		EmailID:     emailID,
		Category:    category,
		ActionItems: len(items),
		ProcessedAt: time.Now().UTC(),
		TraceID:     trace.FromContext(ctx),
	}
	if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "email", &emailID, mq.RoutingKeyEmailProcessed, payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return email, nil
}

// SaveGeneratedDraft stores a generated draft and its draft.generated event.
func (s *ResultStore) SaveGeneratedDraft(ctx context.Context, d *model.Draft) (*model.Draft, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created, err := s.draftRepo.CreateTx(ctx, tx, d)
	if err != nil {
		return nil, err
	}

	var emailID int64
	if created.EmailID != nil {
		emailID = *created.EmailID
	}
	payload := mqcontracts.DraftGeneratedPayload{
		DraftID:     created.ID,
		EmailID:     emailID,
		Recipient:   created.Recipient,
		GeneratedAt: created.CreatedAt,
		TraceID:     trace.FromContext(ctx),
	}
	if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "draft", &created.ID, mq.RoutingKeyDraftGenerated, payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

// GetByID loads an email through the store's email repository.
func (s *ResultStore) GetByID(ctx context.Context, id int64) (*model.Email, error) {
	return s.emailRepo.GetByID(ctx, id)
}
