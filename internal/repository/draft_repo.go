package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

type DraftRepository struct {
	db *pgxpool.Pool
}

func NewDraftRepository(db *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{db: db}
}

const foreignKeyViolation = "23503"

const draftColumns = `id, email_id, subject, body, recipient, metadata, created_at, updated_at`

func scanDraft(row pgx.Row) (*model.Draft, error) {
	var d model.Draft
	err := row.Scan(&d.ID, &d.EmailID, &d.Subject, &d.Body, &d.Recipient, &d.Metadata, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DraftRepository) List(ctx context.Context) ([]model.Draft, error) {
	rows, err := r.db.Query(ctx, `SELECT `+draftColumns+` FROM drafts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := []model.Draft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *d)
	}
	return drafts, rows.Err()
}

func (r *DraftRepository) GetByID(ctx context.Context, id int64) (*model.Draft, error) {
	d, err := scanDraft(r.db.QueryRow(ctx, `SELECT `+draftColumns+` FROM drafts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft %d: %w", id, err)
	}
	return d, nil
}

func (r *DraftRepository) Create(ctx context.Context, d *model.Draft) (*model.Draft, error) {
	return r.create(ctx, r.db, d)
}

// CreateTx inserts the draft inside tx.
func (r *DraftRepository) CreateTx(ctx context.Context, tx pgx.Tx, d *model.Draft) (*model.Draft, error) {
	return r.create(ctx, tx, d)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *DraftRepository) create(ctx context.Context, q queryRower, d *model.Draft) (*model.Draft, error) {
	query := `
        INSERT INTO drafts (email_id, subject, body, recipient, metadata)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + draftColumns

	created, err := scanDraft(q.QueryRow(ctx, query, d.EmailID, d.Subject, d.Body, d.Recipient, d.Metadata))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to insert draft: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of patch and bumps updated_at.
func (r *DraftRepository) Update(ctx context.Context, id int64, patch model.DraftPatch) (*model.Draft, error) {
	query := `
        UPDATE drafts
        SET subject = COALESCE($1, subject),
            body = COALESCE($2, body),
            recipient = COALESCE($3, recipient),
            metadata = COALESCE($4, metadata),
            updated_at = clock_timestamp()
        WHERE id = $5
        RETURNING ` + draftColumns

	d, err := scanDraft(r.db.QueryRow(ctx, query, patch.Subject, patch.Body, patch.Recipient, patch.Metadata, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to update draft %d: %w", id, err)
	}
	return d, nil
}

func (r *DraftRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDraftNotFound
	}
	return nil
}
