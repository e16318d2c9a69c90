package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultSessionTTL      = 24 * time.Hour
	defaultMaxSessionCount = 1024
)

// WelcomeTracker remembers which emails have logged in before.
type WelcomeTracker interface {
	// FirstVisit records email and reports whether it had not been seen.
	FirstVisit(ctx context.Context, email string) (bool, error)
}

// MemoryWelcomeTracker is a process-local WelcomeTracker.
type MemoryWelcomeTracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryWelcomeTracker returns an empty tracker.
func NewMemoryWelcomeTracker() *MemoryWelcomeTracker {
	return &MemoryWelcomeTracker{seen: make(map[string]struct{})}
}

// FirstVisit implements WelcomeTracker.
func (t *MemoryWelcomeTracker) FirstVisit(_ context.Context, email string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.seen[email]; ok {
		return false, nil
	}
	t.seen[email] = struct{}{}
	return true, nil
}

// AuthService issues and checks demo login sessions. Any non-empty email and
// password pair is accepted; no credentials are stored.
type AuthService struct {
	sessions       *expirable.LRU[string, Session]
	welcome        WelcomeTracker
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(welcome WelcomeTracker, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration) *AuthService {
	return NewAuthServiceWithLogger(welcome, tokenGenerator, now, sessionTTL, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(welcome WelcomeTracker, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if welcome == nil {
		welcome = NewMemoryWelcomeTracker()
	}
	if tokenGenerator == nil {
		tokenGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		sessions:       expirable.NewLRU[string, Session](defaultMaxSessionCount, nil, sessionTTL),
		welcome:        welcome,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Authenticate accepts any non-empty email and password and issues a session.
// Welcome is true on the first login of an email; tracker failures are logged
// and reported as Welcome=false.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthenticateResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))

	logger := s.loggerWith(ctx, "Authenticate",
		"email", email,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("welcome", result.Welcome).InfoContext(ctx, "authentication succeeded")
	}()

	if email == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	token := strings.TrimSpace(s.tokenGenerator())
	if token == "" {
		err = fmt.Errorf("token generator returned an empty token")
		return
	}

	now := s.now()
	session := Session{
		Token:     token,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	s.sessions.Add(token, session)

	welcome, trackErr := s.welcome.FirstVisit(ctx, email)
	if trackErr != nil {
		logger.WarnContext(ctx, "welcome tracker unavailable", "error", trackErr)
		welcome = false
	}

	result = AuthenticateResult{
		Principal: Principal{Email: email},
		Session:   session,
		Welcome:   welcome,
	}
	return
}

// RevokeSession invalidates an existing session token.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "RevokeSession", "token_provided", trimmed != "")
	if !s.sessions.Remove(trimmed) {
		logger.ErrorContext(ctx, "failed to revoke session", "error", ErrUnauthorized, "error_kind", ErrorKind(ErrUnauthorized))
		return ErrUnauthorized
	}
	logger.InfoContext(ctx, "session revoked")
	return nil
}

// ValidateSession verifies that the provided token corresponds to an active session and returns its principal.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (principal Principal, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "ValidateSession", "token_provided", trimmed != "")
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "session validation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("email", principal.Email).DebugContext(ctx, "session validated")
	}()

	if trimmed == "" {
		err = ErrUnauthorized
		return
	}

	session, ok := s.sessions.Get(trimmed)
	if !ok {
		err = ErrUnauthorized
		return
	}
	if !session.ExpiresAt.After(s.now()) {
		s.sessions.Remove(trimmed)
		err = ErrUnauthorized
		return
	}

	principal = Principal{Email: session.Email}
	return
}
