package services

import (
	"context"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id uint64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// UpdateMeInput limits self-service updates to profile fields. Password
// changes go through the auth service so they always rehash and bump
// PasswordChangedAt.
type UpdateMeInput struct {
	Username string
	Email    string
	Address  string
}

func (s *UserService) UpdateMe(ctx context.Context, userID uint64, in UpdateMeInput) (*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteMe soft-deletes the account. The user stays in storage but becomes
// invisible to lookups until an Admin reactivates it.
func (s *UserService) DeleteMe(ctx context.Context, userID uint64) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.Active = false
	return s.users.Update(ctx, user)
}

func (s *UserService) List(ctx context.Context, q repository.ListQuery) ([]domain.User, error) {
	return s.users.List(ctx, q)
}

// AdminUpdateInput is the Admin-only mutation surface; it may flip roles and
// active state in addition to profile fields.
type AdminUpdateInput struct {
	Username string
	Email    string
	Address  string
	Role     domain.Role
	Active   *bool
}

func (s *UserService) AdminUpdate(ctx context.Context, id uint64, in AdminUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.Role != "" {
		if !in.Role.Valid() {
			return nil, apperr.Invalid("role must be one of Consumer, Seller, Admin")
		}
		user.Role = in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) AdminDelete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
