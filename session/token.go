// Package session issues and verifies the signed token that identifies a
// signed-in user, and moves it in and out of HTTP cookies.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"sick-fits/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New(constants.ErrInvalidSession)

// Token is a freshly issued session credential.
type Token struct {
	Value     string
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

// Claims is the verified content of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"userId"`
}

type Signer interface {
	Sign(userID uint) (Token, error)
	Verify(raw string) (*Claims, error)
	TTL() time.Duration
}

// JWTSigner signs HS256 tokens.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTSigner(secret string, ttl time.Duration) *JWTSigner {
	return &JWTSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (s *JWTSigner) WithClock(now func() time.Time) *JWTSigner {
	s.now = now
	return s
}

func (s *JWTSigner) TTL() time.Duration {
	return s.ttl
}

func (s *JWTSigner) Sign(userID uint) (Token, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	id := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})

	value, err := token.SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign session token: %w", err)
	}
	return Token{Value: value, ID: id, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *JWTSigner) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
