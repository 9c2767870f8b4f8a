package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingEmail = errors.New("email is required")

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret []byte) *Service {
	return &Service{secret: secret, ttl: time.Hour}
}

func (s *Service) Secret() []byte { return s.secret }

// IssueToken signs a short-lived HS256 token for the given identity.
// The frontend calls this right after sign-in and sends the token back
// as a Bearer header on every request.
func (s *Service) IssueToken(email, role string) (string, error) {
	if email == "" {
		return "", ErrMissingEmail
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"role": role,
		"exp":  time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}
