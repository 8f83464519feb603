//go:generate go run go.uber.org/mock/mockgen -source=question.go -destination=../mocks/mock_question_repository.go -package=mocks
package repositories

import (
	"cmp"
	goerrors "errors"
	"fmt"
	"log/slog"
	"qa-board/domain"
	"qa-board/errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

const (
	questionPrefix    = "question:"
	answerPrefix      = "answer:"
	questionSequence  = "seq:question"
	answerSequence    = "seq:answer"
	sequenceBandwidth = 100
)

type IQuestionRepository interface {
	CreateQuestion(message string, at time.Time) (domain.Question, error)
	GetQuestion(id int64) (domain.Question, error)
	ListQuestions() ([]domain.Question, error)
	UpdateQuestion(id int64, mutate func(q *domain.Question)) (domain.Question, error)
	AddAnswer(questionID int64, userName, message string, at time.Time) (domain.Answer, error)
}

// QuestionRepository stores questions and answers in BadgerDB.
// Keys are zero padded so a prefix scan returns them in id order:
//
//	question:{id}
//	answer:{question_id}:{answer_id}
type QuestionRepository struct {
	db          *badger.DB
	log         *slog.Logger
	questionSeq *badger.Sequence
	answerSeq   *badger.Sequence
}

func NewQuestionRepository(db *badger.DB, log *slog.Logger) (*QuestionRepository, error) {
	questionSeq, err := db.GetSequence([]byte(questionSequence), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("cannot open question sequence: %w", err)
	}
	answerSeq, err := db.GetSequence([]byte(answerSequence), sequenceBandwidth)
	if err != nil {
		_ = questionSeq.Release()
		return nil, fmt.Errorf("cannot open answer sequence: %w", err)
	}
	return &QuestionRepository{db: db, log: log, questionSeq: questionSeq, answerSeq: answerSeq}, nil
}

type DiskQuestion struct {
	ID           int64         `json:"id"`
	Message      string        `json:"message"`
	Status       domain.Status `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	WasEscalated bool          `json:"was_escalated"`
}

type DiskAnswer struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	UserName   string    `json:"user_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func questionKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", questionPrefix, id))
}

func answersPrefix(questionID int64) []byte {
	return []byte(fmt.Sprintf("%s%020d:", answerPrefix, questionID))
}

func answerKey(questionID, id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d:%020d", answerPrefix, questionID, id))
}

func nextID(seq *badger.Sequence) (int64, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	// badger sequences start at 0, ids start at 1
	return int64(n) + 1, nil
}

func (r *QuestionRepository) CreateQuestion(message string, at time.Time) (domain.Question, error) {
	id, err := nextID(r.questionSeq)
	if err != nil {
		return domain.Question{}, fmt.Errorf("cannot allocate question id: %w", err)
	}
	question := domain.NewPendingQuestion(id, message, at)
	bytes, err := json.Marshal(fromQuestion(question))
	if err != nil {
		return domain.Question{}, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(questionKey(id), bytes)
	})
	if err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (r *QuestionRepository) GetQuestion(id int64) (domain.Question, error) {
	var question domain.Question
	err := r.db.View(func(txn *badger.Txn) error {
		q, err := getQuestion(txn, id)
		if err != nil {
			return err
		}
		answers, err := scanAnswers(txn, answersPrefix(id))
		if err != nil {
			return err
		}
		q.Answers = answers
		question = q
		return nil
	})
	return question, err
}

// ListQuestions returns every question with its answers, escalated ones
// first, then newest first.
func (r *QuestionRepository) ListQuestions() ([]domain.Question, error) {
	var questions []domain.Question
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		if questions, err = scanQuestions(txn); err != nil {
			return err
		}

		answers, err := scanAnswers(txn, []byte(answerPrefix))
		if err != nil {
			return err
		}
		byQuestion := lo.GroupBy(answers, func(a domain.Answer) int64 { return a.QuestionID })
		for i := range questions {
			if a, ok := byQuestion[questions[i].ID]; ok {
				questions[i].Answers = a
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortQuestions(questions)
	return questions, nil
}

// SortQuestions orders escalated questions first, then by creation time
// descending. Ties fall back to the higher id.
func SortQuestions(questions []domain.Question) {
	slices.SortStableFunc(questions, func(a, b domain.Question) int {
		aEsc, bEsc := a.Status == domain.StatusEscalated, b.Status == domain.StatusEscalated
		if aEsc != bEsc {
			if aEsc {
				return -1
			}
			return 1
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

// UpdateQuestion applies mutate to the stored question inside a single
// transaction and returns the result with its answers.
func (r *QuestionRepository) UpdateQuestion(id int64, mutate func(q *domain.Question)) (domain.Question, error) {
	var question domain.Question
	err := r.db.Update(func(txn *badger.Txn) error {
		q, err := getQuestion(txn, id)
		if err != nil {
			return err
		}
		mutate(&q)
		bytes, err := json.Marshal(fromQuestion(q))
		if err != nil {
			return err
		}
		if err = txn.Set(questionKey(id), bytes); err != nil {
			return err
		}
		answers, err := scanAnswers(txn, answersPrefix(id))
		if err != nil {
			return err
		}
		q.Answers = answers
		question = q
		return nil
	})
	return question, err
}

func (r *QuestionRepository) AddAnswer(questionID int64, userName, message string, at time.Time) (domain.Answer, error) {
	var answer domain.Answer
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := getQuestion(txn, questionID); err != nil {
			return err
		}
		id, err := nextID(r.answerSeq)
		if err != nil {
			return fmt.Errorf("cannot allocate answer id: %w", err)
		}
		answer = domain.Answer{
			ID:         id,
			QuestionID: questionID,
			UserName:   userName,
			Message:    message,
			CreatedAt:  at,
		}
		bytes, err := json.Marshal(fromAnswer(answer))
		if err != nil {
			return err
		}
		return txn.Set(answerKey(questionID, id), bytes)
	})
	if err != nil {
		return domain.Answer{}, err
	}
	return answer, nil
}

// Close hands back the leased sequence ranges.
func (r *QuestionRepository) Close() error {
	return goerrors.Join(r.questionSeq.Release(), r.answerSeq.Release())
}

func getQuestion(txn *badger.Txn, id int64) (domain.Question, error) {
	item, err := txn.Get(questionKey(id))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Question{}, errors.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, err
	}
	var disk DiskQuestion
	if err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &disk)
	}); err != nil {
		return domain.Question{}, err
	}
	return toQuestion(disk), nil
}

func scanQuestions(txn *badger.Txn) ([]domain.Question, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	questions := []domain.Question{}
	prefix := []byte(questionPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var disk DiskQuestion
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &disk)
		}); err != nil {
			return nil, err
		}
		questions = append(questions, toQuestion(disk))
	}
	return questions, nil
}

func scanAnswers(txn *badger.Txn, prefix []byte) ([]domain.Answer, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	answers := []domain.Answer{}
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var disk DiskAnswer
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &disk)
		}); err != nil {
			return nil, err
		}
		answers = append(answers, toAnswer(disk))
	}
	return answers, nil
}

func fromQuestion(q domain.Question) DiskQuestion {
	return DiskQuestion{
		ID:           q.ID,
		Message:      q.Message,
		Status:       q.Status,
		CreatedAt:    q.CreatedAt,
		WasEscalated: q.WasEscalated,
	}
}

func toQuestion(d DiskQuestion) domain.Question {
	return domain.Question{
		ID:           d.ID,
		Message:      d.Message,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt.UTC(),
		WasEscalated: d.WasEscalated,
		Answers:      []domain.Answer{},
	}
}

func fromAnswer(a domain.Answer) DiskAnswer {
	return DiskAnswer{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		UserName:   a.UserName,
		Message:    a.Message,
		CreatedAt:  a.CreatedAt,
	}
}

func toAnswer(d DiskAnswer) domain.Answer {
	return domain.Answer{
		ID:         d.ID,
		QuestionID: d.QuestionID,
		UserName:   d.UserName,
		Message:    d.Message,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}
