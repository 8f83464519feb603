//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"crypto/subtle"
	goerrors "errors"
	"fmt"
	"log/slog"
	"qa-board/auth"
	"qa-board/errors"
	"qa-board/repositories"
)

type IAuthService interface {
	Login(email, password string) (Token, error)
	Register(username, email, password string) (Token, error)
	VerifyAdmin(adminToken, authorization string) error
}

type Token string

func (t Token) String() string {
	return string(t)
}

type AuthService struct {
	userRepository repositories.IUserRepository
	issuer         *auth.TokenIssuer
	adminToken     string
	log            *slog.Logger
}

func NewAuthService(repo repositories.IUserRepository, issuer *auth.TokenIssuer, adminToken string, log *slog.Logger) *AuthService {
	return &AuthService{userRepository: repo, issuer: issuer, adminToken: adminToken, log: log}
}

func (s *AuthService) Register(username, email, password string) (Token, error) {
	// Validation runs before any expensive hashing.
	if err := auth.ValidateRegister(auth.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}); err != nil {
		return "", err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	userID, err := s.userRepository.CreateUser(username, email, hashedPassword)
	if err != nil {
		return "", err
	}
	s.log.Info("User registered", "id", userID)

	token, err := s.issuer.Issue(userID, []string{"user"})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	return Token(token), nil
}

// Login answers the same error for an unknown email and a wrong password.
func (s *AuthService) Login(email, password string) (Token, error) {
	user, err := s.userRepository.GetUserByEmail(email)
	if goerrors.Is(err, errors.ErrUserNotFound) {
		return "", errors.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Roles)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	return Token(token), nil
}

// VerifyAdmin accepts the shared admin token, or a valid bearer token whose
// subject is a registered user.
func (s *AuthService) VerifyAdmin(adminToken, authorization string) error {
	if s.adminToken != "" && adminToken != "" &&
		subtle.ConstantTimeCompare([]byte(adminToken), []byte(s.adminToken)) == 1 {
		return nil
	}

	token, ok := auth.BearerToken(authorization)
	if !ok {
		return errors.ErrUnauthorized
	}
	claims, err := s.issuer.Validate(token)
	if err != nil {
		s.log.Debug("Rejected bearer token", "error", err)
		return errors.ErrUnauthorized
	}
	if _, err = s.userRepository.GetUserByID(claims.Subject); err != nil {
		s.log.Debug("Bearer token for unknown user", "sub", claims.Subject, "error", err)
		return errors.ErrUnauthorized
	}
	return nil
}
