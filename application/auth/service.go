/*
Package auth 登录、登出与注册。

The session is always an explicit handle passed in by the caller; this
package keeps no session state of its own.
*/
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"github.com/gin-contrib/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SessionUserKey session 中保存登录用户 id 的键
const SessionUserKey = "user_id"

type Service struct {
	userRepo    user.Repository
	uow         shared.UnitOfWork
	landingPath string
}

func NewService(userRepo user.Repository, uow shared.UnitOfWork, landingPath string) *Service {
	if landingPath == "" {
		landingPath = "/"
	}
	return &Service{userRepo: userRepo, uow: uow, landingPath: landingPath}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	ID       string `json:"id" form:"id" binding:"required"`
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required,min=4"`
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	email, err := user.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &user.User{
		ID:           strings.TrimSpace(req.ID),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.userRepo.Insert(ctx, u)
	}); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 校验密码并把用户 id 写入 session
func (s *Service) Login(ctx context.Context, session sessions.Session, id, password string) (*user.User, error) {
	var u *user.User
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.userRepo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, user.NewInvalidCredentialsError()
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, user.NewInvalidCredentialsError()
	}

	session.Set(SessionUserKey, u.ID)
	if err := session.Save(); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("User logged in", zap.String("user_id", u.ID))
	return u, nil
}

// Logout 无条件清空 session 并返回跳转目标
func (s *Service) Logout(ctx context.Context, session sessions.Session) (string, error) {
	userID := CurrentUserID(session)

	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		return "", err
	}
	if userID != "" {
		logger.FromContext(ctx).Info("User logged out", zap.String("user_id", userID))
	}
	return s.landingPath, nil
}

// CurrentUserID 未登录时返回空串
func CurrentUserID(session sessions.Session) string {
	if session == nil {
		return ""
	}
	id, _ := session.Get(SessionUserKey).(string)
	return id
}
