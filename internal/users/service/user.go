package service

import (
	"context"
	"errors"
	"sync"

	usererrors "turfbook/internal/users/errors"
	"turfbook/internal/users/repository"
	"turfbook/internal/users/validator"
	"turfbook/pkg/config"
	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/model"
	"turfbook/pkg/sanitizer"
)

type UserService interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error)
	Update(ctx context.Context, id string, updates *model.UserUpdate) error
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) Create(ctx context.Context, u *model.User) error {
	s.sanitize(u)

	if err := s.validator.Validate(u); err != nil {
		s.cfg.Log.Warn("User validation failed",
			"name", u.Name,
			"error", err,
		)
		return apperrors.Validation("User validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, usererrors.ErrDuplicate) {
			return apperrors.Conflict("A user with this phone number already exists")
		}
		s.cfg.Log.Error("Failed to create user",
			"name", u.Name,
			"error", err,
		)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully",
		"id", u.ID,
		"name", u.Name,
		"role", u.Role,
	)
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to get user by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return u, nil
}

func (s *userService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var users []*model.User
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count users", "error", err)
			errCount = apperrors.Internal("Failed to count users", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		users, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all users",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve users", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return users, count, nil
}

func (s *userService) Update(ctx context.Context, id string, updates *model.UserUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		return apperrors.Internal("Failed to check user existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeUserUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("User validation failed",
			"id", id,
			"error", err,
		)
		return apperrors.Validation("User validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrDuplicate) {
			return apperrors.Conflict("A user with this phone number already exists")
		}
		s.cfg.Log.Error("Failed to update user",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update user", err)
	}

	s.cfg.Log.Info("User updated successfully", "id", id)
	return nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to delete user",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted successfully", "id", id)
	return nil
}

func (s *userService) sanitize(u *model.User) {
	u.Name = sanitizer.NormalizeName(u.Name)
	u.Email = sanitizer.TrimAndNormalize(u.Email)
	if u.Phone != "" {
		u.Phone = sanitizer.NormalizePhone(u.Phone)
	}
}

func (s *userService) sanitizeUpdate(updates *model.UserUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Email != "" {
		updates.Email = sanitizer.TrimAndNormalize(updates.Email)
	}
	if updates.Phone != "" {
		updates.Phone = sanitizer.NormalizePhone(updates.Phone)
	}
}

func (s *userService) mergeUserUpdates(existing *model.User, updates *model.UserUpdate) *model.User {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.Email != "" {
		merged.Email = updates.Email
	}
	if updates.Role != "" {
		merged.Role = updates.Role
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
