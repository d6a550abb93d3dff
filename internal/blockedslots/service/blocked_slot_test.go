package service

import (
	"context"
	"testing"
	"time"

	"turfbook/internal/blockedslots/validator"
	"turfbook/pkg/config"
	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/logger"
	"turfbook/pkg/model"
)

type mockBlockedSlotRepository struct {
	createFunc            func(ctx context.Context, b *model.BlockedSlot) error
	findByIDFunc          func(ctx context.Context, id string) (*model.BlockedSlot, error)
	findByTurfAndDateFunc func(ctx context.Context, turfID string, date string) ([]*model.BlockedSlot, error)
	findAllFunc           func(ctx context.Context, turfID string, date string, limit int, offset int64) ([]*model.BlockedSlot, error)
	deleteFunc            func(ctx context.Context, id string) error
	deleteBeforeFunc      func(ctx context.Context, date string) (int64, error)
	countFunc             func(ctx context.Context, turfID string, date string) (int64, error)
}

func (m *mockBlockedSlotRepository) Create(ctx context.Context, b *model.BlockedSlot) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	return nil
}

func (m *mockBlockedSlotRepository) FindByID(ctx context.Context, id string) (*model.BlockedSlot, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBlockedSlotRepository) FindByTurfAndDate(ctx context.Context, turfID string, date string) ([]*model.BlockedSlot, error) {
	if m.findByTurfAndDateFunc != nil {
		return m.findByTurfAndDateFunc(ctx, turfID, date)
	}
	return []*model.BlockedSlot{}, nil
}

func (m *mockBlockedSlotRepository) FindAll(ctx context.Context, turfID string, date string, limit int, offset int64) ([]*model.BlockedSlot, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, turfID, date, limit, offset)
	}
	return []*model.BlockedSlot{}, nil
}

func (m *mockBlockedSlotRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBlockedSlotRepository) DeleteBefore(ctx context.Context, date string) (int64, error) {
	if m.deleteBeforeFunc != nil {
		return m.deleteBeforeFunc(ctx, date)
	}
	return 0, nil
}

func (m *mockBlockedSlotRepository) Count(ctx context.Context, turfID string, date string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, turfID, date)
	}
	return 0, nil
}

type mockTurfDirectory struct {
	getByIDFunc func(ctx context.Context, id string) (*model.Turf, error)
}

func (m *mockTurfDirectory) GetByID(ctx context.Context, id string) (*model.Turf, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Turf{
		ID:        id,
		Name:      "Greenfield Arena",
		OpenTime:  "08:00",
		CloseTime: "22:00",
	}, nil
}

func newTestService(repo *mockBlockedSlotRepository, turfs *mockTurfDirectory) *blockedSlotService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return &blockedSlotService{
		repo:      repo,
		turfs:     turfs,
		validator: validator.NewBlockedSlotValidator(log),
		cfg:       cfg,
	}
}

func TestCreate_WithinOperatingHours(t *testing.T) {
	var created *model.BlockedSlot
	repo := &mockBlockedSlotRepository{
		createFunc: func(ctx context.Context, b *model.BlockedSlot) error {
			created = b
			return nil
		},
	}
	svc := newTestService(repo, &mockTurfDirectory{})

	b := &model.BlockedSlot{
		TurfID:    "64a0000000000000000000a1",
		Date:      "2026-09-15",
		StartTime: "12:00",
		EndTime:   "14:00",
		Reason:    "maintenance",
	}

	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected blocked slot to be created")
	}
}

func TestCreate_OutsideOperatingHoursRejected(t *testing.T) {
	svc := newTestService(&mockBlockedSlotRepository{}, &mockTurfDirectory{})

	b := &model.BlockedSlot{
		TurfID:    "64a0000000000000000000a1",
		Date:      "2026-09-15",
		StartTime: "21:00",
		EndTime:   "23:00",
	}

	err := svc.Create(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeInvalidInterval) {
		t.Fatalf("expected invalid interval error, got %v", err)
	}
}

func TestCreate_BlackoutMayTouchClosingTime(t *testing.T) {
	svc := newTestService(&mockBlockedSlotRepository{}, &mockTurfDirectory{})

	// [20:00, 22:00) ends exactly at close and still nests.
	b := &model.BlockedSlot{
		TurfID:    "64a0000000000000000000a1",
		Date:      "2026-09-15",
		StartTime: "20:00",
		EndTime:   "22:00",
	}

	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_InvertedIntervalRejected(t *testing.T) {
	svc := newTestService(&mockBlockedSlotRepository{}, &mockTurfDirectory{})

	b := &model.BlockedSlot{
		TurfID:    "64a0000000000000000000a1",
		Date:      "2026-09-15",
		StartTime: "14:00",
		EndTime:   "12:00",
	}

	err := svc.Create(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPurgeBefore_RejectsMalformedDate(t *testing.T) {
	svc := newTestService(&mockBlockedSlotRepository{}, &mockTurfDirectory{})

	_, err := svc.PurgeBefore(context.Background(), "15-09-2026")
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestPurgeBefore_ReportsDeletedCount(t *testing.T) {
	repo := &mockBlockedSlotRepository{
		deleteBeforeFunc: func(ctx context.Context, date string) (int64, error) {
			return 7, nil
		},
	}
	svc := newTestService(repo, &mockTurfDirectory{})

	deleted, err := svc.PurgeBefore(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 7 {
		t.Errorf("expected 7 deleted, got %d", deleted)
	}
}
