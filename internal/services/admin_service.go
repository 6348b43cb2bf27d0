package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nwptourism/internal/models/db_models"
	"nwptourism/internal/repositories"
	mem "nwptourism/pkg/memcache"
	"nwptourism/pkg/metrics"
	"nwptourism/pkg/utils"
)

type SessionConfig struct {
	Secret []byte
	TTL    time.Duration
}

type AdminServiceInterface interface {
	// Login verifies the credentials and opens a session. The returned token
	// is the cookie value.
	Login(ctx context.Context, username, password string) (string, *mem.Session, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*mem.Session, error)
	CreateAdmin(ctx context.Context, username, password string) error
}

type AdminService struct {
	users     repositories.AdminUserRepository
	sessions  mem.SessionStore
	cfg       SessionConfig
	dummyHash string
	log       *zap.Logger
}

func NewAdminService(
	users repositories.AdminUserRepository,
	sessions mem.SessionStore,
	cfg SessionConfig,
	log *zap.Logger,
) (AdminServiceInterface, error) {
	dummy, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &AdminService{
		users:     users,
		sessions:  sessions,
		cfg:       cfg,
		dummyHash: dummy,
		log:       log.Named("admin"),
	}, nil
}

func (s *AdminService) Login(ctx context.Context, username, password string) (string, *mem.Session, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("error finding admin user", zap.Error(err))
		return "", nil, utils.ErrDatabaseError
	}

	// Unknown users still pay for one bcrypt comparison.
	hash := s.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	if err := utils.ComparePasswords(hash, password); err != nil || user == nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		s.log.Info("admin login failed", zap.String("username", username))
		return "", nil, utils.ErrInvalidCredentials
	}

	sessionID, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", nil, err
	}
	now := time.Now()
	sess := mem.Session{
		ID:        sessionID,
		Username:  user.Username,
		Admin:     true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.Error("error saving session", zap.Error(err))
		return "", nil, utils.ErrDatabaseError
	}

	token, err := utils.CreateSessionToken(s.cfg.Secret, sessionID, s.cfg.TTL)
	if err != nil {
		_ = s.sessions.Delete(ctx, sessionID)
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info("admin logged in", zap.String("username", user.Username))
	return token, &sess, nil
}

// Logout removes the server-side session behind token. Unknown or forged
// tokens are ignored.
func (s *AdminService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sessionID, err := utils.ParseSessionToken(s.cfg.Secret, token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.Error("error deleting session", zap.Error(err))
		return err
	}
	return nil
}

// Resolve maps a cookie token to its live session. A token that fails
// verification resolves to no session without touching the store.
func (s *AdminService) Resolve(ctx context.Context, token string) (*mem.Session, error) {
	sessionID, err := utils.ParseSessionToken(s.cfg.Secret, token)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidSessionToken) {
			return nil, nil
		}
		return nil, err
	}
	return s.sessions.Get(ctx, sessionID)
}

// CreateAdmin provisions an operator account, replacing the password when
// the username already exists.
func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return utils.ErrValidation
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.Upsert(ctx, &db_models.AdminUser{Username: username, PasswordHash: hash}); err != nil {
		s.log.Error("error saving admin user", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
