package service

import (
	"context"
	"errors"
	"strings"

	"ansxtra/internal/catalog"
	"ansxtra/internal/model"
	"ansxtra/internal/pkg"
	"ansxtra/internal/repository"
)

// StudentEmailSuffix 校内学生邮箱固定后缀
const StudentEmailSuffix = "@student.amnuaysilpa.ac.th"

var (
	ErrEmailRequired   = errors.New("email required")
	ErrInvalidDomain   = errors.New("email must end with " + StudentEmailSuffix)
	ErrStudentNotFound = errors.New("student not found")
)

// AuthService 会话门面：没有真实凭证校验，只有域名闸门加名册查询
type AuthService struct {
	sessions      *repository.SessionRepository
	catalog       *catalog.Catalog
	requireRoster bool
}

func NewAuthService(sessions *repository.SessionRepository, cat *catalog.Catalog, requireRoster bool) *AuthService {
	return &AuthService{
		sessions:      sessions,
		catalog:       cat,
		requireRoster: requireRoster,
	}
}

type LoginResult struct {
	Session *model.Session
	Tokens  *pkg.Pair
}

// Login 非法输入一律走错误返回，不 panic；重复登录直接覆盖旧会话
func (s *AuthService) Login(ctx context.Context, email string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !strings.HasSuffix(email, StudentEmailSuffix) {
		return nil, ErrInvalidDomain
	}

	session := &model.Session{Email: email, IsAuthenticated: true}
	if student, ok := s.catalog.StudentByEmail(email); ok {
		session.StudentID = student.StudentID
		session.FullName = student.FullName
		session.Grade = student.Grade
	} else {
		if s.requireRoster {
			return nil, ErrStudentNotFound
		}
		// 名册之外的邮箱：用本地部分推导身份
		local, _, _ := strings.Cut(email, "@")
		session.StudentID = local
		session.FullName = pkg.DisplayNameFromEmail(email)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	tokens, err := pkg.GeneratePair(session.StudentID, session.Email)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.AddToken(ctx, session.StudentID, tokens.AccessToken); err != nil {
		return nil, err
	}

	return &LoginResult{Session: session, Tokens: tokens}, nil
}

// Logout 幂等：没有活动会话时也是成功
func (s *AuthService) Logout(ctx context.Context, studentID, email string) error {
	if err := s.sessions.DeleteToken(ctx, studentID); err != nil {
		return err
	}
	return s.sessions.Clear(ctx, email)
}

// Restore 启动时恢复会话，缺失或损坏都按未登录处理
func (s *AuthService) Restore(ctx context.Context, email string) (*model.Session, error) {
	return s.sessions.Load(ctx, email)
}

// Refresh 换新 token 对并替换存储的 access，旧 token 随之失效
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	tokens, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(tokens.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.AddToken(ctx, claims.StudentID, tokens.AccessToken); err != nil {
		return nil, err
	}
	return tokens, nil
}
