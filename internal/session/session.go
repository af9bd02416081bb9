package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionerrors"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/repository"
)

// Credentials maps account emails to their demo passwords. The marketplace
// ships with a fixed directory of two accounts; there is no registration.
type Credentials map[string]string

// Service issues and verifies stateless session tokens against the user
// directory. The current user is always resolved from the presented token;
// nothing is held in package state.
type Service struct {
	dir    repository.UserDirectory
	creds  Credentials
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

type sessionClaims struct {
	Role models.Role `json:"role"`
	Name string      `json:"name"`
	jwt.RegisteredClaims
}

// NewService creates a new session Service instance
func NewService(dir repository.UserDirectory, creds Credentials, secret []byte, ttl time.Duration, clock clockwork.Clock) *Service {
	return &Service{
		dir:    dir,
		creds:  creds,
		secret: secret,
		ttl:    ttl,
		clock:  clock,
	}
}

// Login checks the email/password pair against the demo directory and,
// on success, returns a signed session token and the user record.
func (s *Service) Login(email, password string) (string, models.User, error) {
	if email == "" || password == "" {
		return "", models.User{}, fmt.Errorf("session: %w - missing email or password", auctionerrors.ErrInvalidInput)
	}

	expected, ok := s.creds[email]
	if !ok || expected != password {
		return "", models.User{}, fmt.Errorf("session: %w", auctionerrors.ErrBadCredentials)
	}

	user, err := s.dir.GetUserByEmail(email)
	if err != nil {
		return "", models.User{}, fmt.Errorf("session: failed to load user %s: %w", email, err)
	}

	now := s.clock.Now()
	claims := sessionClaims{
		Role: user.Role,
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", models.User{}, fmt.Errorf("session: failed to sign token for user %s: %w", user.UserID, err)
	}

	return token, user, nil
}

// Verify parses a session token and resolves its subject from the user
// directory. Expired or tampered tokens fail with ErrBadCredentials.
func (s *Service) Verify(tokenString string) (models.User, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("session: %w: %s", auctionerrors.ErrBadCredentials, err)
	}

	user, err := s.dir.GetUser(claims.Subject)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("session: %w - unknown subject", auctionerrors.ErrBadCredentials)
		}
		return models.User{}, fmt.Errorf("session: failed to load user %s: %w", claims.Subject, err)
	}

	return user, nil
}
