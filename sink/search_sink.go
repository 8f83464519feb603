package sink

import (
	"context"
	"log/slog"
	"qa-board/contract"
	"qa-board/domain"
)

// SearchSink keeps the full-text index in step with question events.
// Answers are not indexed.
type SearchSink struct {
	searcher contract.ISearcher
	log      *slog.Logger
}

func NewSearchSink(searcher contract.ISearcher, log *slog.Logger) *SearchSink {
	return &SearchSink{searcher: searcher, log: log}
}

func (s *SearchSink) Consume(ctx context.Context, e domain.Event) error {
	var question domain.Question
	switch evt := e.(type) {
	case domain.NewQuestion:
		question = evt.Question
	case domain.QuestionUpdated:
		question = evt.Question
	default:
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.searcher.Index(question); err != nil {
		return err
	}
	s.log.Debug("Question indexed", "id", question.ID, "type", e.Type())
	return nil
}
