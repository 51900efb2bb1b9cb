package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wordwise.app/server/core/db"
	"wordwise.app/server/internal/model"
)

const suggestionColumns = `id, document_id, user_id, type, original, suggestion, explanation,
	confidence, position_start, position_end, severity, status, rule_id, category,
	is_processed, created_at, updated_at`

type suggestionStore struct {
	db *db.DB
}

func newSuggestionStore(database *db.DB) SuggestionStore {
	return &suggestionStore{db: database}
}

// CreateBatch inserts a processed batch atomically. A batch is the unit the
// pipeline produces; partial batches would break the stats the client
// received alongside it.
func (s *suggestionStore) CreateBatch(ctx context.Context, suggestions []model.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, sg := range suggestions {
		batch.Queue(`
			INSERT INTO suggestions (`+suggestionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			sg.ID, sg.DocumentID, sg.UserID, sg.Type, sg.Original, sg.Suggestion,
			sg.Explanation, sg.Confidence, sg.Position.Start, sg.Position.End,
			sg.Severity, sg.Status, sg.RuleID, sg.Category, sg.IsProcessed,
			sg.CreatedAt, sg.UpdatedAt)
	}

	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		defer results.Close() //nolint:errcheck

		for range suggestions {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("insert suggestion batch: %w", err)
			}
		}
		return results.Close()
	})
}

func (s *suggestionStore) GetByID(ctx context.Context, id int64) (*model.Suggestion, error) {
	row := s.db.Pool().QueryRow(ctx, `
		SELECT `+suggestionColumns+`
		FROM suggestions
		WHERE id = $1`, id)

	sg, err := scanSuggestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sg, nil
}

func (s *suggestionStore) ListByDocument(ctx context.Context, documentID string, filter ListFilter) ([]model.Suggestion, error) {
	query := `
		SELECT ` + suggestionColumns + `
		FROM suggestions
		WHERE document_id = $1`
	args := []any{documentID}

	if filter.Status != nil {
		query += ` AND status = $2`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suggestions := []model.Suggestion{}
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, *sg)
	}
	return suggestions, rows.Err()
}

func (s *suggestionStore) Update(ctx context.Context, id int64, params UpdateParams) (*model.Suggestion, error) {
	row := s.db.Pool().QueryRow(ctx, `
		UPDATE suggestions
		SET status       = COALESCE($2, status),
		    is_processed = COALESCE($3, is_processed),
		    updated_at   = now()
		WHERE id = $1
		RETURNING `+suggestionColumns, id, params.Status, params.IsProcessed)

	sg, err := scanSuggestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sg, nil
}

func (s *suggestionStore) DeleteByDocument(ctx context.Context, documentID string) (int64, error) {
	tag, err := s.db.Pool().Exec(ctx, `DELETE FROM suggestions WHERE document_id = $1`, documentID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanSuggestion(row pgx.Row) (*model.Suggestion, error) {
	var sg model.Suggestion
	err := row.Scan(
		&sg.ID, &sg.DocumentID, &sg.UserID, &sg.Type, &sg.Original, &sg.Suggestion,
		&sg.Explanation, &sg.Confidence, &sg.Position.Start, &sg.Position.End,
		&sg.Severity, &sg.Status, &sg.RuleID, &sg.Category, &sg.IsProcessed,
		&sg.CreatedAt, &sg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sg, nil
}
