package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/id"
)

const (
	tokenIssuer   = "qlp-server"
	tokenAudience = "qlp-client"
)

// AccessClaims are the claims carried by an access token.
// v4.local tokens are encrypted, so the claims are opaque to clients.
type AccessClaims struct {
	CPF     string         `json:"cpf"`
	Name    string         `json:"name"`
	Profile domain.Profile `json:"profile"`

	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// User returns the identity the claims describe.
func (c *AccessClaims) User() *domain.User {
	return &domain.User{CPF: c.CPF, Name: c.Name, Profile: c.Profile}
}

// TokenService handles PASETO token generation and verification.
type TokenService struct {
	symmetricKey        paseto.V4SymmetricKey
	accessTokenDuration time.Duration
	now                 func() time.Time
}

// NewTokenService creates a token service from a raw 32-byte key.
func NewTokenService(key []byte, accessDuration time.Duration) (*TokenService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyLength, len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:        symmetricKey,
		accessTokenDuration: accessDuration,
		now:                 time.Now,
	}, nil
}

// GenerateAccessToken creates an encrypted v4.local token for the user and
// returns it with its expiry.
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTokenDuration)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(user.CPF)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expiresAt)

	tokenID, err := id.Generate(id.PrefixToken)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	//nolint:errcheck // Token.Set only errors on values that cannot be marshaled
	_ = token.Set("cpf", user.CPF)
	//nolint:errcheck // see above
	_ = token.Set("name", user.Name)
	//nolint:errcheck // see above
	_ = token.Set("profile", user.Profile)

	return token.V4Encrypt(s.symmetricKey, nil), expiresAt, nil
}

// VerifyAccessToken decrypts the token and checks issuer, audience and validity window.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	return &claims, nil
}
