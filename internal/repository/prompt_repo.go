package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

type PromptRepository struct {
	db *pgxpool.Pool
}

func NewPromptRepository(db *pgxpool.Pool) *PromptRepository {
	return &PromptRepository{db: db}
}

const promptColumns = `id, name, type, content, is_active, created_at, updated_at`

func scanPrompt(row pgx.Row) (*model.PromptTemplate, error) {
	var p model.PromptTemplate
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Content, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromptRepository) List(ctx context.Context) ([]model.PromptTemplate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+promptColumns+` FROM prompt_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	prompts := []model.PromptTemplate{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, *p)
	}
	return prompts, rows.Err()
}

func (r *PromptRepository) GetByID(ctx context.Context, id int64) (*model.PromptTemplate, error) {
	p, err := scanPrompt(r.db.QueryRow(ctx, `SELECT `+promptColumns+` FROM prompt_templates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to get prompt %d: %w", id, err)
	}
	return p, nil
}

// FindActiveByType returns the most recently updated active template of a
// type, or nil when there is none.
func (r *PromptRepository) FindActiveByType(ctx context.Context, promptType string) (*model.PromptTemplate, error) {
	query := `
        SELECT ` + promptColumns + `
        FROM prompt_templates
        WHERE type = $1 AND is_active
        ORDER BY updated_at DESC, id DESC
        LIMIT 1
    `
	p, err := scanPrompt(r.db.QueryRow(ctx, query, promptType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active %s prompt: %w", promptType, err)
	}
	return p, nil
}

func (r *PromptRepository) Create(ctx context.Context, name, promptType, content string, isActive bool) (*model.PromptTemplate, error) {
	query := `
        INSERT INTO prompt_templates (name, type, content, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + promptColumns

	p, err := scanPrompt(r.db.QueryRow(ctx, query, name, promptType, content, isActive))
	if err != nil {
		return nil, fmt.Errorf("failed to insert prompt: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of patch and bumps updated_at.
func (r *PromptRepository) Update(ctx context.Context, id int64, patch model.PromptPatch) (*model.PromptTemplate, error) {
	query := `
        UPDATE prompt_templates
        SET name = COALESCE($1, name),
            type = COALESCE($2, type),
            content = COALESCE($3, content),
            is_active = COALESCE($4, is_active),
            updated_at = clock_timestamp()
        WHERE id = $5
        RETURNING ` + promptColumns

	p, err := scanPrompt(r.db.QueryRow(ctx, query, patch.Name, patch.Type, patch.Content, patch.IsActive, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to update prompt %d: %w", id, err)
	}
	return p, nil
}

func (r *PromptRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM prompt_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prompt %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPromptNotFound
	}
	return nil
}

// CountTx returns the number of templates inside tx.
func (r *PromptRepository) CountTx(ctx context.Context, tx pgx.Tx) (int, error) {
	var n int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM prompt_templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count prompts: %w", err)
	}
	return n, nil
}

// CreateTx inserts an active template inside tx.
func (r *PromptRepository) CreateTx(ctx context.Context, tx pgx.Tx, name, promptType, content string) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO prompt_templates (name, type, content, is_active)
        VALUES ($1, $2, $3, TRUE)
    `, name, promptType, content)
	if err != nil {
		return fmt.Errorf("failed to insert prompt %q: %w", name, err)
	}
	return nil
}
