package service

import (
	"context"

	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/repository"
)

// UserService 用户查询与管理员操作
type UserService interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListAll(ctx context.Context) ([]UserPublic, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *userService) ListAll(ctx context.Context) ([]UserPublic, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserPublic, len(users))
	for i, u := range users {
		out[i] = NewUserPublic(u)
	}
	return out, nil
}

// Delete 级联删除用户及其全部内容
func (s *userService) Delete(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}
