package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

type EmailRepository struct {
	db *pgxpool.Pool
}

func NewEmailRepository(db *pgxpool.Pool) *EmailRepository {
	return &EmailRepository{db: db}
}

const emailColumns = `id, sender, recipient, subject, body, received_at, category, priority, processed, created_at`

func scanEmail(row pgx.Row) (*model.Email, error) {
	var e model.Email
	err := row.Scan(
		&e.ID,
		&e.Sender,
		&e.Recipient,
		&e.Subject,
		&e.Body,
		&e.ReceivedAt,
		&e.Category,
		&e.Priority,
		&e.Processed,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEmails(rows pgx.Rows) ([]model.Email, error) {
	defer rows.Close()

	emails := []model.Email{}
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *e)
	}
	return emails, rows.Err()
}

// Create inserts an email. Priority defaults to medium and received_at to now.
func (r *EmailRepository) Create(ctx context.Context, in model.NewEmail) (*model.Email, error) {
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	query := `
        INSERT INTO emails (sender, recipient, subject, body, priority, received_at)
        VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
        RETURNING ` + emailColumns

	e, err := scanEmail(r.db.QueryRow(ctx, query, in.Sender, in.Recipient, in.Subject, in.Body, priority, in.ReceivedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert email: %w", err)
	}
	return e, nil
}

// GetByID returns ErrEmailNotFound when no row matches.
func (r *EmailRepository) GetByID(ctx context.Context, id int64) (*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = $1`

	e, err := scanEmail(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to get email %d: %w", id, err)
	}
	return e, nil
}

// List returns every email in insertion order.
func (r *EmailRepository) List(ctx context.Context) ([]model.Email, error) {
	rows, err := r.db.Query(ctx, `SELECT `+emailColumns+` FROM emails ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	return collectEmails(rows)
}

// ListRecent returns the limit most recently received emails in insertion
// order. limit <= 0 returns every email.
func (r *EmailRepository) ListRecent(ctx context.Context, limit int) ([]model.Email, error) {
	if limit <= 0 {
		return r.List(ctx)
	}

	query := `
        SELECT ` + emailColumns + `
        FROM (
            SELECT ` + emailColumns + `
            FROM emails
            ORDER BY received_at DESC, id DESC
            LIMIT $1
        ) recent
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent emails: %w", err)
	}
	return collectEmails(rows)
}

// Count returns the number of stored emails.
func (r *EmailRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM emails`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count emails: %w", err)
	}
	return n, nil
}

// ListUnprocessedIDs returns the ids of emails with processed = false.
func (r *EmailRepository) ListUnprocessedIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM emails WHERE processed = FALSE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed emails: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes the email together with its action items and drafts.
func (r *EmailRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM emails WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete email %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmailNotFound
	}
	return nil
}

// DeleteAllTx removes every email inside tx.
func (r *EmailRepository) DeleteAllTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM emails`); err != nil {
		return fmt.Errorf("failed to clear emails: %w", err)
	}
	return nil
}

// CreateTx inserts an email inside tx.
func (r *EmailRepository) CreateTx(ctx context.Context, tx pgx.Tx, in model.NewEmail) (int64, error) {
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	query := `
        INSERT INTO emails (sender, recipient, subject, body, priority, received_at)
        VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
        RETURNING id
    `
	var id int64
	if err := tx.QueryRow(ctx, query, in.Sender, in.Recipient, in.Subject, in.Body, priority, in.ReceivedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert email: %w", err)
	}
	return id, nil
}

// LockByIDTx loads the email and holds a row lock until tx ends.
func (r *EmailRepository) LockByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = $1 FOR UPDATE`

	e, err := scanEmail(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to lock email %d: %w", id, err)
	}
	return e, nil
}

// MarkProcessedTx sets the category and processed flag inside tx.
func (r *EmailRepository) MarkProcessedTx(ctx context.Context, tx pgx.Tx, id int64, category string) (*model.Email, error) {
	query := `
        UPDATE emails
        SET category = $1, processed = TRUE
        WHERE id = $2
        RETURNING ` + emailColumns

	e, err := scanEmail(tx.QueryRow(ctx, query, category, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to update email %d: %w", id, err)
	}
	return e, nil
}
