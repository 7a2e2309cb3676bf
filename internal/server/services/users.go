package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/cryptox"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
)

func (s *Inventory) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	u := &models.User{
		Username:     in.Username,
		PasswordHash: hash,
		FullName:     in.FullName,
		Email:        in.Email,
		Role:         role,
		IsActive:     true,
		CreatedAt:    s.timestamp(),
	}
	if _, err := s.repos().Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user %q: %w", in.Username, err)
	}
	return u, nil
}

func (s *Inventory) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repos().Users.GetByID(ctx, id)
	if err != nil {
		return nil, named(err, "user", id)
	}
	return u, nil
}

func (s *Inventory) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.repos().Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, named(err, "user", username)
	}
	return u, nil
}

func (s *Inventory) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repos().Users.List(ctx)
}

func (s *Inventory) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*models.User, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := s.repos().Users.Update(ctx, u); err != nil {
		return nil, named(err, "user", id)
	}
	return u, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *Inventory) ChangePassword(ctx context.Context, id int64, in ChangePasswordInput) error {
	if err := s.validate.Validate(in); err != nil {
		return err
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	ok, err := cryptox.VerifyPassword(u.PasswordHash, in.CurrentPassword)
	if err != nil {
		return fmt.Errorf("%w: stored hash of user %d: %w", common.ErrorInternal, id, err)
	}
	if !ok {
		return invalid("current password does not match")
	}

	hash, err := cryptox.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	if err := s.repos().Users.Update(ctx, u); err != nil {
		return named(err, "user", id)
	}
	return nil
}

// DeleteUser removes a user. An actor cannot delete their own account.
func (s *Inventory) DeleteUser(ctx context.Context, actorID, id int64) (bool, error) {
	if actorID == id {
		return false, invalid("users cannot delete their own account")
	}
	return s.repos().Users.Delete(ctx, id)
}

// SeedDefaults creates the bootstrap administrator when there are no users
// at all. It returns the created user, or nil when users already exist.
func (s *Inventory) SeedDefaults(ctx context.Context, username, password string) (*models.User, error) {
	var admin *models.User
	err := s.tx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		n, err := r.Users.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		hash, err := cryptox.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		admin = &models.User{
			Username:     username,
			PasswordHash: hash,
			FullName:     "Administrator",
			Role:         models.RoleAdmin,
			IsActive:     true,
			CreatedAt:    s.timestamp(),
		}
		_, err = r.Users.Create(ctx, admin)
		return err
	})
	if err != nil {
		return nil, err
	}

	if admin != nil {
		s.logger.Warn(ctx, "bootstrap admin created, change its password", "username", username)
	}
	return admin, nil
}
