package store

import (
	"context"
	"errors"

	"wordwise.app/server/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ListFilter narrows ListByDocument at the database level. Finer-grained
// filtering and sorting happens in memory on the returned slice.
type ListFilter struct {
	Status *model.SuggestionStatus
}

// UpdateParams carries the mutable fields of a persisted suggestion.
// Nil fields are left untouched. Any update bumps updated_at.
type UpdateParams struct {
	Status      *model.SuggestionStatus
	IsProcessed *bool
}

// SuggestionStore defines the contract for suggestion data access
type SuggestionStore interface {
	CreateBatch(ctx context.Context, suggestions []model.Suggestion) error
	GetByID(ctx context.Context, id int64) (*model.Suggestion, error)
	ListByDocument(ctx context.Context, documentID string, filter ListFilter) ([]model.Suggestion, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*model.Suggestion, error)
	DeleteByDocument(ctx context.Context, documentID string) (int64, error)
}
