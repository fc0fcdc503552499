package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qlpapp/qlp-server/internal/auth"
	"github.com/qlpapp/qlp-server/internal/domain"
	domainerrors "github.com/qlpapp/qlp-server/internal/errors"
	"github.com/qlpapp/qlp-server/internal/logger"
	"github.com/qlpapp/qlp-server/internal/metrics"
	"github.com/qlpapp/qlp-server/internal/normalize"
	"github.com/qlpapp/qlp-server/internal/store"
)

// Login outcomes recorded in metrics.
const (
	loginFixed    = "fixed"
	loginRoster   = "roster"
	loginRejected = "rejected"
)

// LoginRequest carries the credentials typed on the login screen.
type LoginRequest struct {
	CPF      string `json:"cpf" validate:"required"`
	Password string `json:"senha" validate:"required,max=1024"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// AuthService checks credentials and issues access tokens.
type AuthService struct {
	store           store.Store
	credentials     *auth.CredentialTable
	tokenService    *auth.TokenService
	defaultPassword string
	logger          *slog.Logger
}

// NewAuthService creates an authentication service. defaultPassword is the
// password accepted for any CPF present in the roster.
func NewAuthService(
	store store.Store,
	credentials *auth.CredentialTable,
	tokenService *auth.TokenService,
	defaultPassword string,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:           store,
		credentials:     credentials,
		tokenService:    tokenService,
		defaultPassword: defaultPassword,
		logger:          orDiscard(logger),
	}
}

// Login authenticates a CPF. The fixed credential table is consulted first;
// otherwise the CPF must exist in the roster and the password must equal the
// default password, which yields a user profile.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cpf := DigitsOnly(req.CPF)
	if cpf == "" || req.Password == "" {
		metrics.LoginAttempts.WithLabelValues(loginRejected).Inc()
		return nil, domainerrors.Validation("cpf and password are required")
	}

	user, source, err := s.authenticate(ctx, cpf, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		metrics.LoginAttempts.WithLabelValues(loginRejected).Inc()
		s.logger.Info("login rejected", logger.CPF("cpf", cpf))
		return nil, domainerrors.InvalidCredentials("CPF ou senha incorretos")
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues(source).Inc()
	s.logger.Info("login succeeded", logger.CPF("cpf", cpf), "profile", user.Profile, "source", source)

	return &LoginResponse{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// authenticate returns a nil user when the credentials do not match.
func (s *AuthService) authenticate(ctx context.Context, cpf, password string) (*domain.User, string, error) {
	if user, ok := s.credentials.Authenticate(cpf, password); ok {
		return user, loginFixed, nil
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.defaultPassword)) != 1 {
		return nil, "", nil
	}

	employee, err := s.store.GetEmployee(ctx, cpf)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup employee: %w", err)
	}

	name := normalize.Text(employee.Name)
	if name != employee.Name {
		metrics.TextRepairs.WithLabelValues(repairSourceLogin).Inc()
	}

	return &domain.User{CPF: cpf, Name: name, Profile: domain.ProfileUser}, loginRoster, nil
}

// VerifyToken returns the user an access token was issued to.
func (s *AuthService) VerifyToken(token string) (*domain.User, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}
	return claims.User(), nil
}
