package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/auth"
	"github.com/FleetGate/FleetGate/internal/common/config"
	"github.com/FleetGate/FleetGate/internal/common/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 用户名或密码错误（对外不区分两种情况）。
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service 账号与登录用例。
type Service struct {
	repo *Repo
	cfg  config.AuthConfig
}

func NewService(repo *Repo, cfg config.AuthConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// LoginResult 登录成功后的返回。
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// Login 校验用户名密码并签发 access token。
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(password, u.PasswordSalt, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.TokenTTLHours) * time.Hour
	token, expiresAt, err := auth.GenerateAccessToken(s.cfg, u.ID, u.Name, u.RolesSlice(), ttl)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// Bootstrap users 表为空时创建初始管理员（角色 hr+admin）。
func (s *Service) Bootstrap(ctx context.Context, log logger.Logger) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if s.cfg.BootstrapUsername == "" || s.cfg.BootstrapPassword == "" {
		return nil
	}

	salt, err := GenerateSaltHex()
	if err != nil {
		return err
	}
	hash, err := HashPassword(s.cfg.BootstrapPassword, salt)
	if err != nil {
		return err
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     s.cfg.BootstrapUsername,
		PasswordHash: hash,
		PasswordSalt: salt,
		Name:         s.cfg.BootstrapName,
		Roles:        RolesJoin([]string{"hr", "admin"}),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return err
	}
	if log != nil {
		log.Infof("bootstrap admin user created: %s", u.Username)
	}
	return nil
}
