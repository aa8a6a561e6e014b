package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitlog/fitlog/internal/auth"
	"github.com/fitlog/fitlog/internal/metrics"
	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/repository"
)

// CredentialService handles registration, authentication, and account
// maintenance.
type CredentialService struct {
	users       UserStore
	sessions    SessionStore
	activity    ActivityPublisher
	secret      []byte
	sessionTTL  time.Duration
	rememberTTL time.Duration
	metrics     metrics.Recorder
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(
	users UserStore,
	sessions SessionStore,
	activity ActivityPublisher,
	secret []byte,
	sessionTTL, rememberTTL time.Duration,
	recorder metrics.Recorder,
) *CredentialService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CredentialService{
		users:       users,
		sessions:    sessions,
		activity:    activity,
		secret:      secret,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		metrics:     recorder,
	}
}

// Session is an established authenticated session. RememberToken is empty
// unless the caller asked for one.
type Session struct {
	Token         string
	RememberToken string
	Principal     model.Principal
	TTL           time.Duration
	RememberTTL   time.Duration
}

// RegisterInput defines input for Register.
type RegisterInput struct {
	Email    string
	Password string
	Confirm  string
	Remember bool
}

// Register creates a new account and returns an established session.
// The store-level unique constraint on email is the authoritative duplicate
// check; there is no separate pre-query, so racing registrations cannot
// both succeed.
func (s *CredentialService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if input.Email == "" || input.Password == "" || input.Confirm == "" {
		return nil, ErrFieldsMissing
	}
	if !auth.ValidPassword(input.Password) {
		return nil, ErrWeakPassword
	}
	if input.Password != input.Confirm {
		return nil, ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()
	if s.activity != nil {
		s.activity.PublishAsync(user.ID, model.ActivityUserRegistered, "")
	}

	return s.establishSession(ctx, user, input.Remember)
}

// AuthenticateInput defines input for Authenticate.
type AuthenticateInput struct {
	Email    string
	Password string
	Remember bool
}

// Authenticate verifies the credentials and returns an established session.
// The user row fetched for verification is reused for the session; no second
// lookup happens between verify and login.
func (s *CredentialService) Authenticate(ctx context.Context, input AuthenticateInput) (*Session, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrFieldsMissing
	}

	user, err := s.users.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrNoSuchAccount
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.metrics.IncLoginFailure()
		return nil, ErrBadCredentials
	}

	s.metrics.IncLoginSuccess()
	if s.activity != nil {
		s.activity.PublishAsync(user.ID, model.ActivityUserLogin, "")
	}

	return s.establishSession(ctx, user, input.Remember)
}

// ResumeSession exchanges a valid remember-me token for a fresh session.
// Used by the session middleware when the server-side session has expired.
func (s *CredentialService) ResumeSession(ctx context.Context, rememberToken string) (*Session, error) {
	userID, err := auth.VerifyRememberToken(rememberToken, s.secret)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Account deleted since the token was minted.
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.establishSession(ctx, user, false)
}

// CurrentPrincipal resolves a session token to its principal.
func (s *CredentialService) CurrentPrincipal(ctx context.Context, token string) (*model.Principal, error) {
	p, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return p, nil
}

// Logout tears down the session for the given token. Unknown tokens are not
// an error; logout is idempotent.
func (s *CredentialService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// ChangeEmail updates the principal's email address. Rejects with
// ErrEmailInUse when the address belongs to a different account.
func (s *CredentialService) ChangeEmail(ctx context.Context, principal *model.Principal, newEmail string) error {
	if newEmail == "" {
		return ErrFieldsMissing
	}

	if err := s.users.UpdateUserEmail(ctx, principal.UserID, newEmail); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return ErrEmailInUse
		}
		return fmt.Errorf("update email: %w", err)
	}

	if s.activity != nil {
		s.activity.PublishAsync(principal.UserID, model.ActivityEmailChanged, "")
	}

	// Sessions carry the email; force re-issue on next request.
	if err := s.sessions.DeleteUserSessions(ctx, principal.UserID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// ChangePasswordInput defines input for ChangePassword.
type ChangePasswordInput struct {
	Current  string
	Password string
	Confirm  string
}

// ChangePassword replaces the principal's password after re-verifying the
// current one. Other sessions of the user are revoked.
func (s *CredentialService) ChangePassword(ctx context.Context, principal *model.Principal, input ChangePasswordInput) error {
	if input.Current == "" || input.Password == "" || input.Confirm == "" {
		return ErrFieldsMissing
	}

	user, err := s.users.GetUserByID(ctx, principal.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	ok, err := auth.VerifyPassword(input.Current, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return ErrBadCredentials
	}

	if !auth.ValidPassword(input.Password) {
		return ErrWeakPassword
	}
	if input.Password != input.Confirm {
		return ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdateUserPassword(ctx, principal.UserID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if s.activity != nil {
		s.activity.PublishAsync(principal.UserID, model.ActivityPasswordChanged, "")
	}

	if err := s.sessions.DeleteUserSessions(ctx, principal.UserID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// DeleteAccount destroys the principal's account. Owned measurements and
// activity cascade at the store level; all sessions are revoked.
func (s *CredentialService) DeleteAccount(ctx context.Context, principal *model.Principal) error {
	if err := s.users.DeleteUser(ctx, principal.UserID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.sessions.DeleteUserSessions(ctx, principal.UserID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// establishSession saves a new session for the user and optionally mints a
// remember-me token.
func (s *CredentialService) establishSession(ctx context.Context, user *model.User, remember bool) (*Session, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}

	principal := model.Principal{UserID: user.ID, Email: user.Email}
	if err := s.sessions.SaveSession(ctx, token, &principal, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	session := &Session{
		Token:       token,
		Principal:   principal,
		TTL:         s.sessionTTL,
		RememberTTL: s.rememberTTL,
	}

	if remember {
		rt, err := auth.NewRememberToken(user.ID, s.secret, s.rememberTTL)
		if err != nil {
			return nil, err
		}
		session.RememberToken = rt
	}

	return session, nil
}
