package server

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"qa-board/auth"
	"qa-board/errors"
	"qa-board/services"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

type Config struct {
	Host               string
	Port               int
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

type Server struct {
	echo      *echo.Echo
	config    Config
	log       *slog.Logger
	questions services.IQuestionService
	auth      services.IAuthService
	websocket http.Handler
	gatherer  prometheus.Gatherer
}

func NewServer(
	config Config,
	questions services.IQuestionService,
	authService services.IAuthService,
	websocket http.Handler,
	gatherer prometheus.Gatherer,
	log *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.JSONSerializer = jsonSerializer{}

	s := &Server{
		echo:      e,
		config:    config,
		log:       log,
		questions: questions,
		auth:      authService,
		websocket: websocket,
		gatherer:  gatherer,
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			s.log.LogAttrs(c.Request().Context(), levelFor(v.Status), "Request", slog.Group("http", attrs...))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, auth.AdminTokenHeader},
		AllowCredentials: true,
	}))

	s.registerRoutes()
	return s
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// writeRateLimiter throttles mutating routes per client IP.
func (s *Server) writeRateLimiter() echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.config.RateLimitPerSecond),
		Burst:     s.config.RateLimitBurst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}

// handleError renders every failure as {"detail": "..."}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	httpErr := errors.MapToHTTPError(err)
	if httpErr.Code >= http.StatusInternalServerError {
		s.log.Error("Request failed", "path", c.Path(), "error", err)
	}

	detail := fmt.Sprint(httpErr.Message)
	if httpErr.Message == nil {
		detail = http.StatusText(httpErr.Code)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.Code)
	} else {
		writeErr = c.JSON(httpErr.Code, errors.Detail{Detail: detail})
	}
	if writeErr != nil {
		s.log.Debug("Cannot write error response", "error", writeErr)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	address := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	s.log.Info("HTTP server listening", "address", address)
	if err := s.echo.Start(address); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	}
	return nil
}
