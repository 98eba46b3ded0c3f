package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sick-fits/constants"
	"sick-fits/dto"
	"sick-fits/logging"
	"sick-fits/mail"
	"sick-fits/models"
	"sick-fits/repositories"
	"sick-fits/session"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordHashCost = 10
	resetTokenBytes  = 20
)

// AuthResult is a signed-in user together with the session the transport
// must hand to the client.
type AuthResult struct {
	User    *models.User
	Session session.Token
}

type IAuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (*AuthResult, error)
	Signin(ctx context.Context, email string, password string) (*AuthResult, error)
	Signout(ctx context.Context, rawToken string) (string, error)
	RequestReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, input dto.ResetPasswordInput) (*AuthResult, error)
	Authenticate(ctx context.Context, rawToken string) (*models.User, error)
}

type AuthService struct {
	users       repositories.IUserRepository
	sessions    repositories.ISessionRepository
	signer      session.Signer
	mailer      mail.Mailer
	frontendURL string
	resetTTL    time.Duration
	now         func() time.Time
	newToken    func() (string, error)
	logger      *slog.Logger
}

type AuthOption func(*AuthService)

// WithClock replaces the time source used for reset token expiry.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithResetTTL overrides the one hour reset token lifetime.
func WithResetTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) { s.resetTTL = ttl }
}

func NewAuthService(
	users repositories.IUserRepository,
	sessions repositories.ISessionRepository,
	signer session.Signer,
	mailer mail.Mailer,
	frontendURL string,
	opts ...AuthOption,
) IAuthService {
	s := &AuthService{
		users:       users,
		sessions:    sessions,
		signer:      signer,
		mailer:      mailer,
		frontendURL: frontendURL,
		resetTTL:    time.Hour,
		now:         func() time.Time { return time.Now().UTC() },
		newToken:    randomHex,
		logger:      logging.New("auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func randomHex() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func noSuchUser(email string) error {
	return fmt.Errorf("%w for email %s", ErrNoSuchUser, email)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	tok, err := s.signer.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Session: tok}, nil
}

func (s *AuthService) Signup(ctx context.Context, input dto.SignupInput) (*AuthResult, error) {
	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Password:    hashedPassword,
		Permissions: models.Permissions{models.PermissionUser},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return s.issue(user)
}

func (s *AuthService) Signin(ctx context.Context, email string, password string) (*AuthResult, error) {
	foundUser, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, noSuchUser(email)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return s.issue(foundUser)
}

// Signout revokes rawToken when it is a valid session token. An absent or
// unreadable token still signs the caller out.
func (s *AuthService) Signout(ctx context.Context, rawToken string) (string, error) {
	if rawToken == "" {
		return constants.MsgGoodbye, nil
	}
	claims, err := s.signer.Verify(rawToken)
	if err != nil {
		return constants.MsgGoodbye, nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return "", err
	}
	return constants.MsgGoodbye, nil
}

func (s *AuthService) RequestReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", noSuchUser(email)
		}
		return "", err
	}

	resetToken, err := s.newToken()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.users.SetResetToken(ctx, user.ID, resetToken, s.now().Add(s.resetTTL)); err != nil {
		return "", err
	}

	msg, err := mail.PasswordResetEmail(user.Email, constants.MsgResetSubject, mail.ResetLink(s.frontendURL, resetToken))
	if err != nil {
		return "", err
	}
	// The caller is told the same thing whether or not delivery worked.
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "reset email delivery failed", "user_id", user.ID, "error", err)
	}
	return constants.MsgResetThanks, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) (*AuthResult, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordsDontMatch
	}

	user, err := s.users.FindByResetToken(ctx, input.ResetToken, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	if err := s.users.ConsumeResetToken(ctx, user.ID, input.ResetToken, hashedPassword); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}

	updated, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "password reset", "user_id", updated.ID)
	return s.issue(updated)
}

// Authenticate resolves a session token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*models.User, error) {
	claims, err := s.signer.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, session.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
