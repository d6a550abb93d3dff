package service

import (
	"context"
	"errors"
	"sync"

	turferrors "turfbook/internal/turfs/errors"
	"turfbook/internal/turfs/repository"
	"turfbook/internal/turfs/validator"
	"turfbook/pkg/config"
	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/model"
	"turfbook/pkg/sanitizer"
)

type TurfService interface {
	Create(ctx context.Context, t *model.Turf) error
	GetByID(ctx context.Context, id string) (*model.Turf, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Turf, int64, error)
	GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Turf, error)
	Update(ctx context.Context, id string, updates *model.TurfUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, location string, sport string) ([]*model.Turf, error)
}

type turfService struct {
	repo      repository.TurfRepository
	validator *validator.TurfValidator
	cfg       *config.Config
}

func NewTurfService(
	repo repository.TurfRepository,
	validator *validator.TurfValidator,
	cfg *config.Config,
) TurfService {
	return &turfService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *turfService) Create(ctx context.Context, t *model.Turf) error {
	s.sanitize(t)

	if err := s.validator.Validate(t); err != nil {
		s.cfg.Log.Warn("Turf validation failed",
			"name", t.Name,
			"owner_id", t.OwnerID,
			"error", err,
		)
		return apperrors.Validation("Turf validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.cfg.Log.Error("Failed to create turf",
			"name", t.Name,
			"owner_id", t.OwnerID,
			"error", err,
		)
		return apperrors.Internal("Failed to create turf", err)
	}

	s.cfg.Log.Info("Turf created successfully",
		"id", t.ID,
		"name", t.Name,
		"owner_id", t.OwnerID,
		"sport", t.Sport,
	)
	return nil
}

func (s *turfService) GetByID(ctx context.Context, id string) (*model.Turf, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Turf ID cannot be empty")
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, turferrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Turf", id)
		}
		if errors.Is(err, turferrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid turf ID format")
		}
		s.cfg.Log.Error("Failed to get turf by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve turf", err)
	}

	return t, nil
}

func (s *turfService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Turf, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var turfs []*model.Turf
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count turfs", "error", err)
			errCount = apperrors.Internal("Failed to count turfs", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		turfs, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all turfs",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve turfs", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return turfs, count, nil
}

func (s *turfService) GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Turf, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	turfs, err := s.repo.FindByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to get turfs by owner",
			"owner_id", ownerID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve turfs", err)
	}

	return turfs, nil
}

func (s *turfService) Update(ctx context.Context, id string, updates *model.TurfUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Turf ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, turferrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Turf", id)
		}
		if errors.Is(err, turferrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid turf ID format")
		}
		return apperrors.Internal("Failed to check turf existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeTurfUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Turf validation failed",
			"name", merged.Name,
			"id", id,
			"error", err,
		)
		return apperrors.Validation("Turf validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, turferrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Turf", id)
		}
		s.cfg.Log.Error("Failed to update turf",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update turf", err)
	}

	s.cfg.Log.Info("Turf updated successfully", "id", id, "name", merged.Name)
	return nil
}

func (s *turfService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Turf ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, turferrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Turf", id)
		}
		if errors.Is(err, turferrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid turf ID format")
		}
		s.cfg.Log.Error("Failed to delete turf",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete turf", err)
	}

	s.cfg.Log.Info("Turf deleted successfully", "id", id)
	return nil
}

func (s *turfService) Search(ctx context.Context, location string, sport string) ([]*model.Turf, error) {
	location = sanitizer.NormalizeLocation(location)
	sport = sanitizer.NormalizeSport(sport)

	turfs, err := s.repo.Search(ctx, location, sport)
	if err != nil {
		s.cfg.Log.Error("Failed to search turfs",
			"location", location,
			"sport", sport,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to search turfs", err)
	}

	s.cfg.Log.Debug("Turf search completed",
		"location", location,
		"sport", sport,
		"results_count", len(turfs),
	)

	return turfs, nil
}

func (s *turfService) sanitize(t *model.Turf) {
	t.Name = sanitizer.NormalizeName(t.Name)
	t.Location = sanitizer.NormalizeLocation(t.Location)
	t.Sport = sanitizer.NormalizeSport(t.Sport)
	t.Description = sanitizer.TrimAndNormalize(t.Description)
	if t.Phone != "" {
		t.Phone = sanitizer.NormalizePhone(t.Phone)
	}
}

func (s *turfService) sanitizeUpdate(updates *model.TurfUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Location != "" {
		updates.Location = sanitizer.NormalizeLocation(updates.Location)
	}
	if updates.Sport != "" {
		updates.Sport = sanitizer.NormalizeSport(updates.Sport)
	}
	if updates.Phone != "" {
		updates.Phone = sanitizer.NormalizePhone(updates.Phone)
	}
	if updates.Description != nil {
		normalized := sanitizer.TrimAndNormalize(*updates.Description)
		updates.Description = &normalized
	}
}

func (s *turfService) mergeTurfUpdates(existing *model.Turf, updates *model.TurfUpdate) *model.Turf {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.Location != "" {
		merged.Location = updates.Location
	}
	if updates.Sport != "" {
		merged.Sport = updates.Sport
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.RatePerHour != nil {
		merged.RatePerHour = *updates.RatePerHour
	}
	if updates.OpenTime != "" {
		merged.OpenTime = updates.OpenTime
	}
	if updates.CloseTime != "" {
		merged.CloseTime = updates.CloseTime
	}

	merged.ID = existing.ID
	merged.OwnerID = existing.OwnerID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
