//go:generate go run go.uber.org/mock/mockgen -source=question_service.go -destination=../mocks/mock_question_service.go -package=mocks
package services

import (
	"context"
	goerrors "errors"
	"log/slog"
	"qa-board/contract"
	"qa-board/domain"
	"qa-board/errors"
	"qa-board/moderation"
	"qa-board/repositories"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"
)

type IQuestionService interface {
	CreateQuestion(ctx context.Context, cmd domain.CreateQuestionCommand) (domain.Question, error)
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	GetQuestion(ctx context.Context, id int64) (domain.Question, error)
	SearchQuestions(ctx context.Context, query string) ([]domain.Question, error)
	MarkAnswered(ctx context.Context, id int64) (domain.Question, error)
	Escalate(ctx context.Context, id int64) (domain.Question, error)
	AddAnswer(ctx context.Context, cmd domain.AddAnswerCommand) (domain.Answer, error)
}

// Reviewer moderates user text before it is stored.
type Reviewer interface {
	Review(text string) moderation.Review
}

// QuestionService commits changes then announces them.
//
// Writes are serialized and the announcement happens before the lock is
// released, so clients receive events in commit order. When announcing fails
// the change is already committed: the result is returned with the error.
type QuestionService struct {
	mu          sync.Mutex
	repository  repositories.IQuestionRepository
	broadcaster contract.IBroadcaster
	searcher    contract.ISearcher
	reviewer    Reviewer
	clock       clockwork.Clock
	log         *slog.Logger
	searchLimit int
}

func NewQuestionService(
	repository repositories.IQuestionRepository,
	broadcaster contract.IBroadcaster,
	searcher contract.ISearcher,
	reviewer Reviewer,
	clock clockwork.Clock,
	log *slog.Logger,
	searchLimit int,
) *QuestionService {
	return &QuestionService{
		repository:  repository,
		broadcaster: broadcaster,
		searcher:    searcher,
		reviewer:    reviewer,
		clock:       clock,
		log:         log,
		searchLimit: searchLimit,
	}
}

func (s *QuestionService) CreateQuestion(ctx context.Context, cmd domain.CreateQuestionCommand) (domain.Question, error) {
	if strings.TrimSpace(cmd.Message) == "" {
		return domain.Question{}, errors.ErrEmptyMessage
	}
	review := s.review(ctx, cmd.Message)

	s.mu.Lock()
	defer s.mu.Unlock()

	question, err := s.repository.CreateQuestion(review.Content, s.clock.Now().UTC())
	if err != nil {
		return domain.Question{}, err
	}
	s.log.InfoContext(ctx, "Question created", "id", question.ID, "language", review.Language)
	return question, s.broadcaster.Announce(ctx, domain.NewQuestion{Question: question})
}

func (s *QuestionService) ListQuestions(_ context.Context) ([]domain.Question, error) {
	return s.repository.ListQuestions()
}

func (s *QuestionService) GetQuestion(_ context.Context, id int64) (domain.Question, error) {
	return s.repository.GetQuestion(id)
}

// SearchQuestions resolves index hits against the repository. Hits whose
// question no longer exists are dropped.
func (s *QuestionService) SearchQuestions(ctx context.Context, query string) ([]domain.Question, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.ErrEmptySearchQuery
	}
	ids, err := s.searcher.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(ids))
	for _, id := range lo.Uniq(ids) {
		question, err := s.repository.GetQuestion(id)
		if goerrors.Is(err, errors.ErrQuestionNotFound) {
			s.log.DebugContext(ctx, "Stale search hit", "id", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, nil
}

func (s *QuestionService) MarkAnswered(ctx context.Context, id int64) (domain.Question, error) {
	return s.update(ctx, id, (*domain.Question).MarkAnswered)
}

func (s *QuestionService) Escalate(ctx context.Context, id int64) (domain.Question, error) {
	return s.update(ctx, id, (*domain.Question).Escalate)
}

func (s *QuestionService) update(ctx context.Context, id int64, mutate func(q *domain.Question)) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, err := s.repository.UpdateQuestion(id, mutate)
	if err != nil {
		return domain.Question{}, err
	}
	s.log.InfoContext(ctx, "Question updated", "id", question.ID, "status", question.Status)
	return question, s.broadcaster.Announce(ctx, domain.QuestionUpdated{Question: question})
}

// AddAnswer checks the question exists before validating the message.
func (s *QuestionService) AddAnswer(ctx context.Context, cmd domain.AddAnswerCommand) (domain.Answer, error) {
	if _, err := s.repository.GetQuestion(cmd.QuestionID); err != nil {
		return domain.Answer{}, err
	}
	if strings.TrimSpace(cmd.Message) == "" {
		return domain.Answer{}, errors.ErrEmptyAnswer
	}
	review := s.review(ctx, cmd.Message)

	s.mu.Lock()
	defer s.mu.Unlock()

	answer, err := s.repository.AddAnswer(cmd.QuestionID, cmd.UserName, review.Content, s.clock.Now().UTC())
	if err != nil {
		return domain.Answer{}, err
	}
	s.log.InfoContext(ctx, "Answer added", "question_id", answer.QuestionID, "id", answer.ID)
	return answer, s.broadcaster.Announce(ctx, domain.NewAnswer{Answer: answer})
}

func (s *QuestionService) review(ctx context.Context, text string) moderation.Review {
	review := s.reviewer.Review(text)
	if len(review.CensoredWords) > 0 {
		s.log.InfoContext(ctx, "Censored submission", "words", len(review.CensoredWords))
	}
	return review
}
