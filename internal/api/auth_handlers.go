package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:  "login",
		Method:       http.MethodPost,
		Path:         "/api/login",
		Summary:      "User login",
		Description:  "Authenticates by CPF and password and returns an access token",
		Tags:         []string{"Authentication"},
		MaxBodyBytes: DefaultMaxBodyBytes,
		Middlewares:  huma.Middlewares{s.rateLimit(s.loginLimiter)},
	}, s.handleLogin)
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	CPF      string `json:"cpf" maxLength:"20" doc:"User CPF, punctuation allowed"`
	Password string `json:"senha" maxLength:"1024" doc:"User password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	User        *domain.User `json:"user" doc:"Authenticated user"`
	AccessToken string       `json:"access_token" doc:"PASETO access token"`
	TokenType   string       `json:"token_type" doc:"Always Bearer"`
	ExpiresAt   time.Time    `json:"expires_at" doc:"Access token expiry"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         AuthResponse
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		CPF:      input.Body.CPF,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		CacheControl: CacheNoStore,
		Body: AuthResponse{
			User:        resp.User,
			AccessToken: resp.AccessToken,
			TokenType:   "Bearer",
			ExpiresAt:   resp.ExpiresAt,
		},
	}, nil
}
