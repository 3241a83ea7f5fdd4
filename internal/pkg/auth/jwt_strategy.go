package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

// identityClaims is the JWT body; the role travels as a custom claim.
type identityClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	DisplayName string `json:"name,omitempty"`
	Role        string `json:"role"`
}

// JWTStrategy issues HS256 signed identity tokens.
type JWTStrategy struct {
	secret []byte
	opts   Options
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	return &JWTStrategy{secret: []byte(secret), opts: opts.withDefaults()}
}

// IssueToken signs the identity claims.
func (s *JWTStrategy) IssueToken(claims Claims) (string, error) {
	if strings.TrimSpace(claims.UserID) == "" || !claims.Role.Valid() {
		return "", ErrInvalidToken
	}
	now := s.opts.Now()
	body := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.opts.Issuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TTL)),
		},
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        string(claims.Role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, body).SignedString(s.secret)
}

// ParseToken verifies signature, issuer and expiry and returns the identity.
func (s *JWTStrategy) ParseToken(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalidToken
	}

	var parsed identityClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.opts.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	role, err := model.ParseRole(parsed.Role)
	if err != nil || parsed.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID:      parsed.Subject,
		Email:       parsed.Email,
		DisplayName: parsed.DisplayName,
		Role:        role,
	}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
