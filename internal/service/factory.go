package service

import (
	"time"

	"wordwise.app/server/common/id"
	"wordwise.app/server/internal/ai"
	"wordwise.app/server/internal/grammar"
	"wordwise.app/server/internal/store"
	"wordwise.app/server/internal/suggestion"
)

type Services struct {
	stores    *store.Stores
	checker   grammar.Checker
	generator *ai.Generator
	processor *suggestion.Processor
}

func NewServices(stores *store.Stores, checker grammar.Checker, source ai.Source) *Services {
	processor := suggestion.NewProcessor(time.Now, id.New)
	return &Services{
		stores:    stores,
		checker:   checker,
		generator: ai.NewGenerator(source, processor),
		processor: processor,
	}
}

func (s *Services) Suggestions() SuggestionService {
	return NewSuggestionService(s.stores.Suggestions(), s.checker, s.generator, s.processor)
}
