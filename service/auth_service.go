package service

import (
	"context"
	"errors"
	"time"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/pkg/security"
	"taxipark/pkg/session"
	"taxipark/storage"
)

type LoginResult struct {
	Token     string
	Driver    *models.Driver
	ExpiresAt time.Time
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Authenticate resolves a cookie token to the logged in driver, or ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*models.Driver, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	drivers  storage.IDriverStorage
	sessions session.Store
	tokens   *security.TokenManager
	log      logger.ILogger
}

func NewAuthService(stg storage.IStorage, sessions session.Store, tokens *security.TokenManager, log logger.ILogger) AuthService {
	return &authService{
		drivers:  stg.Driver(),
		sessions: sessions,
		tokens:   tokens,
		log:      log,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	d, err := s.drivers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !security.CheckPassword(d.PasswordHash, password) {
		s.log.Warning("failed login", logger.String("username", username))
		return nil, ErrInvalidCredentials
	}

	sess := &session.Session{
		ID:        security.NewSessionID(),
		DriverID:  d.ID,
		ExpiresAt: time.Now().Add(s.tokens.TTL()),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.Error("failed to save session", logger.Error(err))
		return nil, err
	}

	token, err := s.tokens.Generate(sess.ID, d.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("driver logged in", logger.Int64("driver_id", d.ID))
	return &LoginResult{Token: token, Driver: d, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.Driver, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if sess.DriverID != claims.DriverID {
		return nil, ErrUnauthenticated
	}

	d, err := s.drivers.GetByID(ctx, sess.DriverID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = s.sessions.Delete(ctx, sess.ID)
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return d, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID())
}
