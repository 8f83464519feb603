package e2e

import (
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testQuestionLifecycleSuite struct {
	BaseHTTPSuite
}

func TestQuestionLifecycleSuite(t *testing.T) {
	suite.Run(t, &testQuestionLifecycleSuite{})
}

type question struct {
	ID           int64  `json:"id"`
	Message      string `json:"message"`
	Status       string `json:"status"`
	WasEscalated bool   `json:"was_escalated"`
	Answers      []struct {
		ID       int64  `json:"id"`
		UserName string `json:"user_name"`
		Message  string `json:"message"`
	} `json:"answers"`
}

func (s *testQuestionLifecycleSuite) TestFullQuestionLifecycle() {
	// Unique text so the scenario can run against a shared server
	message := "How do I rotate the signing key? " + uuid.NewString()
	var created question

	s.WithFeed("Subscribe to the question feed", func(feed *Feed) {
		s.Run("Step 1: Ask a question and receive NEW_QUESTION", func() {
			s.Step("POST /questions")
			status := s.DoJSON(http.MethodPost, "/questions", map[string]string{"message": message}, nil, &created)
			s.Require().Equal(http.StatusOK, status)
			s.Require().Equal("pending", created.Status)

			for {
				evt := feed.Next("NEW_QUESTION", 5*time.Second)
				var pushed question
				s.Require().NoError(json.Unmarshal(evt.Payload, &pushed))
				if pushed.ID == created.ID {
					s.Require().Equal(message, pushed.Message)
					break
				}
			}
		})

		s.Run("Step 2: Answer it and receive NEW_ANSWER", func() {
			s.Step("POST /questions/:id/answers")
			status, _ := s.Do(http.MethodPost, "/questions/"+itoa(created.ID)+"/answers",
				map[string]string{"user_name": "e2e", "message": "Use the admin rotation endpoint"}, nil)
			s.Require().Equal(http.StatusOK, status)

			for {
				evt := feed.Next("NEW_ANSWER", 5*time.Second)
				var answer struct {
					QuestionID int64 `json:"question_id"`
				}
				s.Require().NoError(json.Unmarshal(evt.Payload, &answer))
				if answer.QuestionID == created.ID {
					break
				}
			}
		})

		s.Run("Step 3: Escalate as admin and receive QUESTION_UPDATED", func() {
			if s.Config.AdminToken == "" {
				s.T().Skip("E2E_ADMIN_TOKEN not set")
			}
			s.Step("PATCH /questions/:id/escalate")
			var escalated question
			status := s.DoJSON(http.MethodPatch, "/questions/"+itoa(created.ID)+"/escalate", nil,
				map[string]string{"X-Admin-Token": s.Config.AdminToken}, &escalated)
			s.Require().Equal(http.StatusOK, status)
			s.Require().Equal("escalated", escalated.Status)
			s.Require().True(escalated.WasEscalated)

			for {
				evt := feed.Next("QUESTION_UPDATED", 5*time.Second)
				var pushed question
				s.Require().NoError(json.Unmarshal(evt.Payload, &pushed))
				if pushed.ID == created.ID {
					s.Require().Len(pushed.Answers, 1)
					break
				}
			}
		})
	})

	s.Run("Step 4: Read it back with its answers", func() {
		var fetched question
		status := s.DoJSON(http.MethodGet, "/questions/"+itoa(created.ID), nil, nil, &fetched)
		s.Require().Equal(http.StatusOK, status)
		s.Require().Len(fetched.Answers, 1)
		s.Require().Equal("e2e", fetched.Answers[0].UserName)
	})
}

func (s *testQuestionLifecycleSuite) TestAdminRoutesRejectAnonymousCalls() {
	status, _ := s.Do(http.MethodPatch, "/questions/1/answer", nil, nil)
	s.Require().Equal(http.StatusUnauthorized, status)
}
