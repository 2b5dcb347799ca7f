package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/instalite/internal/cache"
	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/repository"
)

// ErrFollowSelf 自关注在应用层拦截，存储层不做保证
var ErrFollowSelf = fmt.Errorf("%w: cannot follow yourself", errs.ErrValidation)

// RelationshipService 关系链服务（按用户名寻址）
type RelationshipService interface {
	Follow(ctx context.Context, me *model.User, targetUsername string) error
	Unfollow(ctx context.Context, me *model.User, targetUsername string) error
	Profile(ctx context.Context, username string, viewer *model.User) (*Profile, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	counts     cache.ProfileCounterCache
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository, counts cache.ProfileCounterCache) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo, counts: counts}
}

// Follow 幂等；目标不存在返回 NotFound
func (s *relationshipService) Follow(ctx context.Context, me *model.User, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if target.ID == me.ID {
		return ErrFollowSelf
	}
	if err := s.followRepo.Create(ctx, me.ID, target.ID); err != nil {
		return err
	}
	s.counts.Invalidate(ctx, me.ID, target.ID)
	return nil
}

// Unfollow 幂等；目标不存在返回 NotFound
func (s *relationshipService) Unfollow(ctx context.Context, me *model.User, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if err := s.followRepo.Delete(ctx, me.ID, target.ID); err != nil {
		return err
	}
	s.counts.Invalidate(ctx, me.ID, target.ID)
	return nil
}

// Profile 公开信息 + 关注统计；viewer 可为 nil（匿名访问）
func (s *relationshipService) Profile(ctx context.Context, username string, viewer *model.User) (*Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.counts.Counts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	p := &Profile{
		User:           NewUserPublic(user),
		FollowerCount:  followers,
		FollowingCount: following,
	}
	if viewer != nil && viewer.ID != user.ID {
		followed, err := s.followRepo.Exists(ctx, viewer.ID, user.ID)
		if err != nil {
			return nil, err
		}
		p.FollowedByMe = followed
	}
	return p, nil
}
