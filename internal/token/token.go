package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("signing secret is empty")
	ErrInvalidToken = errors.New("invalid token")
)

// Service issues and verifies the bearer credentials used by every
// protected route. Tokens carry a single "account" claim and no expiry;
// rotating the secret is the only way to invalidate them.
type Service struct {
	secret []byte
}

func NewService(secret string) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Service{secret: []byte(secret)}, nil
}

// Issue signs {account} with HS256.
func (s *Service) Issue(account string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account": account,
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the signature and returns the account claim. Malformed
// tokens, wrong keys and non-HMAC algorithms all come back as
// ErrInvalidToken.
func (s *Service) Verify(tokenStr string) (string, error) {
	t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	account, ok := claims["account"].(string)
	if !ok || account == "" {
		return "", ErrInvalidToken
	}
	return account, nil
}
