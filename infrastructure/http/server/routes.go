package server

import (
	"qa-board/auth"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	limited := s.writeRateLimiter()
	admin := auth.AdminInterceptor(s.auth)

	s.echo.GET("/", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	s.echo.POST("/register", s.handleRegister, limited)
	s.echo.POST("/login", s.handleLogin, limited)

	s.echo.GET("/questions", s.handleListQuestions)
	s.echo.POST("/questions", s.handleCreateQuestion, limited)
	s.echo.GET("/questions/search", s.handleSearchQuestions)
	s.echo.GET("/questions/:id", s.handleGetQuestion)
	s.echo.PATCH("/questions/:id/answer", s.handleMarkAnswered, admin)
	s.echo.PATCH("/questions/:id/escalate", s.handleEscalate, admin)
	s.echo.POST("/questions/:id/answers", s.handleAddAnswer, limited)

	s.echo.GET("/ws/questions", echo.WrapHandler(s.websocket))
}
