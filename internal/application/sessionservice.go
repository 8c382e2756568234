package application

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/notty/internal/domain/model"
	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

// SessionService manages the locally stored login session. It depends only on
// port interfaces.
type SessionService struct {
	api    driven.NotesAPI
	tokens driven.TokenStore
	now    func() time.Time
}

// NewSessionService creates a new SessionService with the required dependencies.
func NewSessionService(api driven.NotesAPI, tokens driven.TokenStore) *SessionService {
	return &SessionService{
		api:    api,
		tokens: tokens,
		now:    time.Now,
	}
}

// Login authenticates against the API and returns the resulting session.
func (s *SessionService) Login(ctx context.Context, creds model.LoginCredentials) (*model.Session, error) {
	if _, err := s.api.Login(ctx, creds); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

// Refresh trades the stored refresh token for a new access token and returns
// the resulting session.
func (s *SessionService) Refresh(ctx context.Context) (*model.Session, error) {
	if _, err := s.api.RefreshAccessToken(ctx); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

// Status describes the stored tokens. The access token's claims are decoded
// without signature verification; they are informational only. Tokens that
// are not JWTs report an unknown expiry.
func (s *SessionService) Status(ctx context.Context) (*model.Session, error) {
	access, err := s.tokens.Get(ctx, driven.AccessTokenKey)
	if err != nil {
		return nil, fmt.Errorf("reading access token: %w", err)
	}
	refresh, err := s.tokens.Get(ctx, driven.RefreshTokenKey)
	if err != nil {
		return nil, fmt.Errorf("reading refresh token: %w", err)
	}

	session := &model.Session{
		LoggedIn:   access != "",
		HasRefresh: refresh != "",
	}
	if access == "" {
		return session, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return session, nil
	}

	// SimpleJWT puts the user's primary key in "user_id"; fall back to "sub".
	if uid, ok := claims["user_id"]; ok {
		session.UserID = fmt.Sprint(uid)
	} else if sub, err := claims.GetSubject(); err == nil {
		session.UserID = sub
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
		session.Expired = !s.now().Before(exp.Time)
	}

	return session, nil
}
