package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/store"
	"github.com/garasiku/garasiku-server/pkg/async"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
	"github.com/garasiku/garasiku-server/pkg/google"
)

const sessionSweepInterval = 5 * time.Minute

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService owns the login session state. The in-memory session set is the
// single source of truth; the auth cookie carries a copy of the token and is
// never trusted on its own; every request revalidates against the set.
type AuthService struct {
	store  *store.Store
	google *google.Client
	secret []byte
	ttl    time.Duration
	log    *zap.SugaredLogger

	mu       sync.Mutex
	sessions map[string]models.Session

	sweepStop chan struct{}
	sweepOnce sync.Once
}

func NewAuthService(st *store.Store, googleClient *google.Client, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		store:     st,
		google:    googleClient,
		secret:    []byte(secret),
		ttl:       ttl,
		log:       zap.S().Named("auth_service"),
		sessions:  make(map[string]models.Session),
		sweepStop: make(chan struct{}),
	}
}

// Login verifies the password and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	if email == "" {
		return nil, nil, srvErrors.NewMissingFieldError("email")
	}
	if password == "" {
		return nil, nil, srvErrors.NewMissingFieldError("password")
	}

	user, err := s.store.User().GetByEmail(ctx, email)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			return nil, nil, srvErrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, srvErrors.NewUnauthorizedError("invalid credentials")
	}

	session, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// LoginWithGoogle exchanges the OAuth authorization code, looks the Google
// account up among the pre-registered users by email, and opens a session.
// Unknown emails are rejected; the server never self-registers users.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code, redirectURI string) (*models.Session, *models.User, error) {
	if code == "" {
		return nil, nil, srvErrors.NewMissingFieldError("code")
	}
	if redirectURI == "" {
		return nil, nil, srvErrors.NewMissingFieldError("redirectUri")
	}

	token, err := s.google.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, nil, err
	}
	info, err := s.google.FetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.store.User().GetByEmail(ctx, info.Email)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			return nil, nil, srvErrors.NewUserNotRegisteredError(info.Email)
		}
		return nil, nil, err
	}

	session, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}
	s.log.Infow("google login", "user", user.ID, "email", user.Email)
	return session, user, nil
}

func (s *AuthService) openSession(user *models.User) (*models.Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Token:     signed,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}

	s.mu.Lock()
	s.sessions[signed] = session
	s.mu.Unlock()

	return &session, nil
}

// Validate checks a token against the session set and its signature/expiry.
func (s *AuthService) Validate(token string) (*models.Session, error) {
	if token == "" {
		return nil, srvErrors.NewUnauthorizedError("missing token")
	}

	s.mu.Lock()
	session, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok {
		return nil, srvErrors.NewUnauthorizedError("unknown or revoked session")
	}
	if session.Expired(time.Now()) {
		s.Logout(token)
		return nil, srvErrors.NewUnauthorizedError("session expired")
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, srvErrors.NewUnauthorizedError("invalid token")
	}

	return &session, nil
}

// CurrentUser returns the user behind a validated token.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	session, err := s.Validate(token)
	if err != nil {
		return nil, err
	}
	return s.store.User().Get(ctx, session.UserID)
}

// Logout revokes the session; the cookie copy becomes worthless immediately.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// StartSweeper periodically drops expired sessions through the worker pool.
// It returns after Close.
func (s *AuthService) StartSweeper(pool *async.Pool) {
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.sweepStop:
				return
			case <-ticker.C:
				future := pool.Submit(func(ctx context.Context) (any, error) {
					s.sweep()
					return nil, nil
				})
				<-future.C()
			}
		}
	}()
}

func (s *AuthService) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
		}
	}
}

func (s *AuthService) Close() {
	s.sweepOnce.Do(func() {
		close(s.sweepStop)
	})
}
