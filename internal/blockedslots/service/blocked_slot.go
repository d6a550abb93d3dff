package service

import (
	"context"
	"errors"

	blockedsloterrors "turfbook/internal/blockedslots/errors"
	"turfbook/internal/blockedslots/repository"
	"turfbook/internal/blockedslots/validator"
	"turfbook/pkg/config"
	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/model"
	"turfbook/pkg/sanitizer"
	"turfbook/pkg/timeslot"
)

// TurfDirectory is the slice of the turf context this service needs.
type TurfDirectory interface {
	GetByID(ctx context.Context, id string) (*model.Turf, error)
}

type BlockedSlotService interface {
	Create(ctx context.Context, b *model.BlockedSlot) error
	GetAll(ctx context.Context, turfID string, date string, limit int, offset int64) ([]*model.BlockedSlot, int64, error)
	Delete(ctx context.Context, id string) error
	PurgeBefore(ctx context.Context, date string) (int64, error)
}

type blockedSlotService struct {
	repo      repository.BlockedSlotRepository
	turfs     TurfDirectory
	validator *validator.BlockedSlotValidator
	cfg       *config.Config
}

func NewBlockedSlotService(
	repo repository.BlockedSlotRepository,
	turfs TurfDirectory,
	validator *validator.BlockedSlotValidator,
	cfg *config.Config,
) BlockedSlotService {
	return &blockedSlotService{
		repo:      repo,
		turfs:     turfs,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *blockedSlotService) Create(ctx context.Context, b *model.BlockedSlot) error {
	b.Reason = sanitizer.TrimAndNormalize(b.Reason)

	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Blocked slot validation failed",
			"turf_id", b.TurfID,
			"error", err,
		)
		return apperrors.Validation("Blocked slot validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	turf, err := s.turfs.GetByID(ctx, b.TurfID)
	if err != nil {
		return err
	}

	// The blackout must nest inside the turf's operating window.
	hours, err := timeslot.NewInterval(turf.OpenTime, turf.CloseTime)
	if err != nil {
		return apperrors.Internal("Turf has invalid operating hours", err)
	}
	block, err := timeslot.NewInterval(b.StartTime, b.EndTime)
	if err != nil {
		return apperrors.InvalidInterval("end_time must be after start_time")
	}
	if !block.Within(hours) {
		return apperrors.InvalidInterval("blocked slot must be within the turf's operating hours")
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.cfg.Log.Error("Failed to create blocked slot",
			"turf_id", b.TurfID,
			"date", b.Date,
			"error", err,
		)
		return apperrors.Internal("Failed to create blocked slot", err)
	}

	s.cfg.Log.Info("Blocked slot created successfully",
		"id", b.ID,
		"turf_id", b.TurfID,
		"date", b.Date,
		"start_time", b.StartTime,
		"end_time", b.EndTime,
	)
	return nil
}

func (s *blockedSlotService) GetAll(ctx context.Context, turfID string, date string, limit int, offset int64) ([]*model.BlockedSlot, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	slots, err := s.repo.FindAll(ctx, turfID, date, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list blocked slots",
			"turf_id", turfID,
			"date", date,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve blocked slots", err)
	}

	count, err := s.repo.Count(ctx, turfID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to count blocked slots", "error", err)
		return nil, 0, apperrors.Internal("Failed to count blocked slots", err)
	}

	return slots, count, nil
}

func (s *blockedSlotService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Blocked slot ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedsloterrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Blocked slot", id)
		}
		if errors.Is(err, blockedsloterrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid blocked slot ID format")
		}
		s.cfg.Log.Error("Failed to delete blocked slot",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete blocked slot", err)
	}

	s.cfg.Log.Info("Blocked slot deleted successfully", "id", id)
	return nil
}

// PurgeBefore deletes blackouts for days that have already passed.
func (s *blockedSlotService) PurgeBefore(ctx context.Context, date string) (int64, error) {
	if _, err := timeslot.ParseDate(date); err != nil {
		return 0, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}

	deleted, err := s.repo.DeleteBefore(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to purge old blocked slots",
			"before", date,
			"error", err,
		)
		return 0, apperrors.Internal("Failed to purge old blocked slots", err)
	}

	s.cfg.Log.Info("Purged old blocked slots", "before", date, "deleted", deleted)
	return deleted, nil
}
