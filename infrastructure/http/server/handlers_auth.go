package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var body registerRequest
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}
	token, err := s.auth.Register(body.Username, body.Email, body.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token.String(), TokenType: "bearer"})
}

func (s *Server) handleLogin(c echo.Context) error {
	var body loginRequest
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}
	token, err := s.auth.Login(body.Email, body.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token.String(), TokenType: "bearer"})
}
