package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	usererrors "turfbook/internal/users/errors"
	"turfbook/internal/users/validator"
	"turfbook/pkg/config"
	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/logger"
	"turfbook/pkg/model"
)

type mockUserRepository struct {
	createFunc      func(ctx context.Context, u *model.User) error
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByPhoneFunc func(ctx context.Context, phone string) (*model.User, error)
	findAllFunc     func(ctx context.Context, limit int, offset int64) ([]*model.User, error)
	updateFunc      func(ctx context.Context, id string, u *model.User) (*mongo.UpdateResult, error)
	deleteFunc      func(ctx context.Context, id string) error
	countFunc       func(ctx context.Context) (int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	if m.findByPhoneFunc != nil {
		return m.findByPhoneFunc(ctx, phone)
	}
	return nil, nil
}

func (m *mockUserRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.User{}, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id string, u *model.User) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, u)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func newTestService(repo *mockUserRepository) *userService {
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
	return &userService{
		repo:      repo,
		validator: validator.NewUserValidator(log),
		cfg:       cfg,
	}
}

func TestCreate_DuplicatePhoneConflicts(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, u *model.User) error {
			return usererrors.ErrDuplicate
		},
	}
	svc := newTestService(repo)

	u := &model.User{
		Name:  "Asha Rao",
		Phone: "+919876543210",
		Role:  "player",
	}

	err := svc.Create(context.Background(), u)
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreate_NormalizesPhone(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, u *model.User) error {
			created = u
			return nil
		},
	}
	svc := newTestService(repo)

	u := &model.User{
		Name:  "Asha Rao",
		Phone: "98765 43210",
		Role:  "player",
	}

	if err := svc.Create(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected user to be created")
	}
	if created.Phone != "+919876543210" {
		t.Errorf("expected normalized phone +919876543210, got %s", created.Phone)
	}
}

func TestCreate_InvalidRoleRejected(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	u := &model.User{
		Name:  "Asha Rao",
		Phone: "+919876543210",
		Role:  "superuser",
	}

	err := svc.Create(context.Background(), u)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByID_EmptyIDRejected(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	_, err := svc.GetByID(context.Background(), "")
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}
