package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

type ActionItemRepository struct {
	db *pgxpool.Pool
}

func NewActionItemRepository(db *pgxpool.Pool) *ActionItemRepository {
	return &ActionItemRepository{db: db}
}

const actionItemColumns = `id, email_id, task, deadline, status, created_at`

func collectActionItems(rows pgx.Rows) ([]model.ActionItem, error) {
	defer rows.Close()

	items := []model.ActionItem{}
	for rows.Next() {
		var a model.ActionItem
		if err := rows.Scan(&a.ID, &a.EmailID, &a.Task, &a.Deadline, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// ListByEmail returns the live action items of one email in extraction order.
func (r *ActionItemRepository) ListByEmail(ctx context.Context, emailID int64) ([]model.ActionItem, error) {
	query := `SELECT ` + actionItemColumns + ` FROM action_items WHERE email_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, emailID)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items for email %d: %w", emailID, err)
	}
	return collectActionItems(rows)
}

// ListAll returns every action item across all emails.
func (r *ActionItemRepository) ListAll(ctx context.Context) ([]model.ActionItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+actionItemColumns+` FROM action_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	return collectActionItems(rows)
}

// DeleteByEmailTx removes all action items of an email inside tx.
func (r *ActionItemRepository) DeleteByEmailTx(ctx context.Context, tx pgx.Tx, emailID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM action_items WHERE email_id = $1`, emailID); err != nil {
		return fmt.Errorf("failed to delete action items for email %d: %w", emailID, err)
	}
	return nil
}

// InsertBatchTx inserts items in order inside tx.
func (r *ActionItemRepository) InsertBatchTx(ctx context.Context, tx pgx.Tx, emailID int64, items []model.ExtractedAction) error {
	if len(items) == 0 {
		return nil
	}

	query := `
        INSERT INTO action_items (email_id, task, deadline, status)
        VALUES ($1, $2, $3, $4)
    `
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query, emailID, it.Task, it.Deadline, model.ActionStatusPending)
	}

	br := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert action item for email %d: %w", emailID, err)
		}
	}
	return br.Close()
}
