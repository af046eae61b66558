// Package session holds the authenticated user's token and the small amount
// of client state that outlives a command: remembered email and theme.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyToken is returned when a login response carries no token.
var ErrEmptyToken = errors.New("session: empty token")

// Session is the authenticated state handed to views that call the backend.
type Session struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// FromToken builds a session from a bearer token. JWT claims are read without
// verification, the backend owns the signing key; opaque tokens yield a
// session without subject or expiry.
func FromToken(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrEmptyToken
	}
	s := Session{Token: token}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return s, nil
	}
	s.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// LoggedIn reports whether the session has a token that has not expired at
// now. Tokens without an expiry stay valid until the backend rejects them.
func (s Session) LoggedIn(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Store persists the session and client preferences.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error

	RememberedEmail(ctx context.Context) (string, error)
	SetRememberedEmail(ctx context.Context, email string) error
	ForgetEmail(ctx context.Context) error

	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error

	Close() error
}

const (
	keyToken = "token"
	keyEmail = "rememberedEmail"
	keyTheme = "theme"
)

// kv is the storage primitive both stores implement.
type kv interface {
	get(ctx context.Context, key string) (string, bool, error)
	put(ctx context.Context, key, value string) error
	del(ctx context.Context, key string) error
}

// kvStore implements Store over any kv.
type kvStore struct {
	kv kv
}

func (s kvStore) Load(ctx context.Context) (Session, error) {
	token, ok, err := s.kv.get(ctx, keyToken)
	if err != nil || !ok {
		return Session{}, err
	}
	return FromToken(token)
}

func (s kvStore) Save(ctx context.Context, sess Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return ErrEmptyToken
	}
	return s.kv.put(ctx, keyToken, sess.Token)
}

func (s kvStore) Clear(ctx context.Context) error {
	return s.kv.del(ctx, keyToken)
}

func (s kvStore) RememberedEmail(ctx context.Context) (string, error) {
	email, _, err := s.kv.get(ctx, keyEmail)
	return email, err
}

func (s kvStore) SetRememberedEmail(ctx context.Context, email string) error {
	return s.kv.put(ctx, keyEmail, strings.TrimSpace(email))
}

func (s kvStore) ForgetEmail(ctx context.Context) error {
	return s.kv.del(ctx, keyEmail)
}

func (s kvStore) Theme(ctx context.Context) (string, error) {
	theme, _, err := s.kv.get(ctx, keyTheme)
	return theme, err
}

func (s kvStore) SetTheme(ctx context.Context, theme string) error {
	return s.kv.put(ctx, keyTheme, theme)
}
