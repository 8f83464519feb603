package server

import (
	"net/http"
	"qa-board/domain"
	"qa-board/errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

type questionRequest struct {
	UserName string `json:"user_name" validate:"max=64"`
	Message  string `json:"message"`
}

type answerRequest struct {
	UserName string `json:"user_name" validate:"required,max=64"`
	Message  string `json:"message"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateQuestion(c echo.Context) error {
	var body questionRequest
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}
	question, err := s.questions.CreateQuestion(c.Request().Context(), domain.CreateQuestionCommand{
		UserName: body.UserName,
		Message:  body.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, question.Normalize())
}

func (s *Server) handleListQuestions(c echo.Context) error {
	questions, err := s.questions.ListQuestions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, normalizeAll(questions))
}

func (s *Server) handleGetQuestion(c echo.Context) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	question, err := s.questions.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, question.Normalize())
}

func (s *Server) handleSearchQuestions(c echo.Context) error {
	questions, err := s.questions.SearchQuestions(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, normalizeAll(questions))
}

func (s *Server) handleMarkAnswered(c echo.Context) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	question, err := s.questions.MarkAnswered(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, question.Normalize())
}

func (s *Server) handleEscalate(c echo.Context) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	question, err := s.questions.Escalate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, question.Normalize())
}

func (s *Server) handleAddAnswer(c echo.Context) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	var body answerRequest
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}
	answer, err := s.questions.AddAnswer(c.Request().Context(), domain.AddAnswerCommand{
		QuestionID: id,
		UserName:   body.UserName,
		Message:    body.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answer)
}

func questionID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.ErrInvalidQuestionID
	}
	return id, nil
}

func bindAndValidate(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return err
	}
	return c.Validate(body)
}

func normalizeAll(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	for i, q := range questions {
		out[i] = q.Normalize()
	}
	return out
}
