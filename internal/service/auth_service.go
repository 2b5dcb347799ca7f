package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/repository"
	"github.com/d60-Lab/instalite/pkg/password"
	"github.com/d60-Lab/instalite/pkg/token"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// AuthService 注册、登录与身份解析
type AuthService interface {
	Register(ctx context.Context, username, email, plainPassword string) (*model.User, error)
	Login(ctx context.Context, username, plainPassword string) (string, *model.User, error)
	ResolveSubject(ctx context.Context, rawToken string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	validate *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, validate: validator.New()}
}

// Register 用户名区分大小写，email 统一小写入库
func (s *authService) Register(ctx context.Context, username, email, plainPassword string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if !usernameRe.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-32 chars of [a-zA-Z0-9_]", errs.ErrValidation)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email", errs.ErrValidation)
	}
	if len(plainPassword) < 8 || len(plainPassword) > 128 {
		return nil, fmt.Errorf("%w: password must be 8-128 chars", errs.ErrValidation)
	}

	hashed, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{Username: username, Email: email, HashedPassword: hashed}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验口令并签发令牌；用户不存在与口令错误不作区分
func (s *authService) Login(ctx context.Context, username, plainPassword string) (string, *model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil || !password.Verify(plainPassword, user.HashedPassword) {
		return "", nil, fmt.Errorf("%w: incorrect username or password", errs.ErrUnauthenticated)
	}
	tok, err := s.tokens.Issue(strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		return "", nil, err
	}
	return tok, user, nil
}

// ResolveSubject 校验令牌并加载对应用户；任何失败都归为 Unauthenticated
func (s *authService) ResolveSubject(ctx context.Context, rawToken string) (*model.User, error) {
	subject, err := s.tokens.Validate(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthenticated)
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthenticated)
	}
	user, err := s.userRepo.GetByID(ctx, uint(id))
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", errs.ErrUnauthenticated)
	}
	return user, nil
}
