package store

import (
	"wordwise.app/server/core/db"
)

type Stores struct {
	db *db.DB
}

func NewStores(database *db.DB) *Stores {
	return &Stores{db: database}
}

func (s *Stores) Suggestions() SuggestionStore {
	return newSuggestionStore(s.db)
}
