// Package domain contains core concepts of the Q&A board.
// This file defines Question and Answer entities and their lifecycle.
// No runtime, network, or storage logic should be added here.
package domain

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAnswered  Status = "answered"
	StatusEscalated Status = "escalated"
)

// Question is the read model shared by the HTTP layer and broadcast events.
// Answers are always inlined so a client never needs a follow-up fetch.
type Question struct {
	ID           int64     `json:"id"`
	Message      string    `json:"message"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	WasEscalated bool      `json:"was_escalated"`
	Answers      []Answer  `json:"answers"`
}

// Answer belongs to exactly one question.
type Answer struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"-"`
	UserName   string    `json:"user_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewPendingQuestion(id int64, message string, at time.Time) Question {
	return Question{
		ID:        id,
		Message:   message,
		Status:    StatusPending,
		CreatedAt: at,
		Answers:   []Answer{},
	}
}

// MarkAnswered keeps WasEscalated untouched: an escalation stays on record.
func (q *Question) MarkAnswered() {
	q.Status = StatusAnswered
}

func (q *Question) Escalate() {
	q.Status = StatusEscalated
	q.WasEscalated = true
}

// Normalize replaces a nil answer list with an empty one so the wire shape
// is always an array.
func (q Question) Normalize() Question {
	if q.Answers == nil {
		q.Answers = []Answer{}
	}
	return q
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAnswered, StatusEscalated:
		return true
	}
	return false
}
