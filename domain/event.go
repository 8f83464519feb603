package domain

import "time"

type EventType string

const (
	EventNewQuestion     EventType = "NEW_QUESTION"
	EventQuestionUpdated EventType = "QUESTION_UPDATED"
	EventNewAnswer       EventType = "NEW_ANSWER"
)

// Event is a closed set: only the three types below implement it.
type Event interface {
	Type() EventType
	Payload() any
	isEvent()
}

type NewQuestion struct {
	Question Question
}

type QuestionUpdated struct {
	Question Question
}

type NewAnswer struct {
	Answer Answer
}

// AnswerPayload is the NEW_ANSWER wire shape: an answer plus its question id.
type AnswerPayload struct {
	QuestionID int64     `json:"question_id"`
	ID         int64     `json:"id"`
	UserName   string    `json:"user_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func (NewQuestion) Type() EventType     { return EventNewQuestion }
func (QuestionUpdated) Type() EventType { return EventQuestionUpdated }
func (NewAnswer) Type() EventType       { return EventNewAnswer }

func (e NewQuestion) Payload() any     { return e.Question.Normalize() }
func (e QuestionUpdated) Payload() any { return e.Question.Normalize() }
func (e NewAnswer) Payload() any {
	return AnswerPayload{
		QuestionID: e.Answer.QuestionID,
		ID:         e.Answer.ID,
		UserName:   e.Answer.UserName,
		Message:    e.Answer.Message,
		CreatedAt:  e.Answer.CreatedAt,
	}
}

func (NewQuestion) isEvent()     {}
func (QuestionUpdated) isEvent() {}
func (NewAnswer) isEvent()       {}

// Envelope is the frame pushed to every connected client.
type Envelope struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

func NewEnvelope(e Event) Envelope {
	return Envelope{Type: e.Type(), Payload: e.Payload()}
}
