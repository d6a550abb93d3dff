package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"turfbook/internal/bookings/validator"
	"turfbook/pkg/config"
	mongotx "turfbook/pkg/db/mongo"
	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/kafka"
	"turfbook/pkg/logger"
	"turfbook/pkg/model"
	"turfbook/pkg/timeslot"
)

const (
	testTurfID  = "64a0000000000000000000a1"
	testUserID  = "64a0000000000000000000b1"
	testUser2ID = "64a0000000000000000000b2"
	testBookID  = "64a0000000000000000000c1"
	testBook2ID = "64a0000000000000000000c2"
)

// Mock repository for testing
type mockBookingRepository struct {
	createFunc              func(ctx context.Context, b *model.Booking) error
	findByIDFunc            func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc             func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	findActiveFunc          func(ctx context.Context, turfID string, date string) ([]*model.Booking, error)
	existsActiveExactFunc   func(ctx context.Context, userID, turfID, date, startTime, endTime, excludeID string) (bool, error)
	updateIntervalFunc      func(ctx context.Context, id string, date, startTime, endTime string, totalPrice int64) (*mongo.UpdateResult, error)
	updateStatusFunc        func(ctx context.Context, id string, status model.BookingStatus) (*mongo.UpdateResult, error)
	findByUserFunc          func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	findUpcomingByUserFunc  func(ctx context.Context, userID string, fromDate string, fromTime string, limit int, offset int64) ([]*model.Booking, error)
	findByTurfFunc          func(ctx context.Context, turfID string, limit int, offset int64) ([]*model.Booking, error)
	findUpcomingByTurfFunc  func(ctx context.Context, turfID string, fromDate string, fromTime string, limit int, offset int64) ([]*model.Booking, error)
	searchFunc              func(ctx context.Context, search model.BookingSearch, limit int, offset int64) ([]*model.Booking, error)
	countFunc               func(ctx context.Context) (int64, error)
	countBySearchFunc       func(ctx context.Context, search model.BookingSearch) (int64, error)
	executeTransactionFunc  func(ctx context.Context, fn mongotx.TransactionFunc) error
}

func (m *mockBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindActiveByTurfAndDate(ctx context.Context, turfID string, date string) ([]*model.Booking, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, turfID, date)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) ExistsActiveExact(ctx context.Context, userID, turfID, date, startTime, endTime, excludeID string) (bool, error) {
	if m.existsActiveExactFunc != nil {
		return m.existsActiveExactFunc(ctx, userID, turfID, date, startTime, endTime, excludeID)
	}
	return false, nil
}

func (m *mockBookingRepository) UpdateInterval(ctx context.Context, id string, date, startTime, endTime string, totalPrice int64) (*mongo.UpdateResult, error) {
	if m.updateIntervalFunc != nil {
		return m.updateIntervalFunc(ctx, id, date, startTime, endTime, totalPrice)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*mongo.UpdateResult, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindUpcomingByUser(ctx context.Context, userID string, fromDate string, fromTime string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findUpcomingByUserFunc != nil {
		return m.findUpcomingByUserFunc(ctx, userID, fromDate, fromTime, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByTurf(ctx context.Context, turfID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByTurfFunc != nil {
		return m.findByTurfFunc(ctx, turfID, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindUpcomingByTurf(ctx context.Context, turfID string, fromDate string, fromTime string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findUpcomingByTurfFunc != nil {
		return m.findUpcomingByTurfFunc(ctx, turfID, fromDate, fromTime, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Search(ctx context.Context, search model.BookingSearch, limit int, offset int64) ([]*model.Booking, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, search, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) CountBySearch(ctx context.Context, search model.BookingSearch) (int64, error) {
	if m.countBySearchFunc != nil {
		return m.countBySearchFunc(ctx, search)
	}
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	if m.executeTransactionFunc != nil {
		return m.executeTransactionFunc(ctx, fn)
	}
	return fn(nil)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleteFunc func(ctx context.Context, lockID string) error
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lockID)
	}
	return nil
}

type mockTurfDirectory struct {
	getByIDFunc func(ctx context.Context, id string) (*model.Turf, error)
}

func (m *mockTurfDirectory) GetByID(ctx context.Context, id string) (*model.Turf, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Turf{
		ID:          testTurfID,
		Name:        "Greenfield Arena",
		OpenTime:    "08:00",
		CloseTime:   "22:00",
		RatePerHour: 500,
	}, nil
}

type mockUserDirectory struct {
	getByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.User{ID: id, Name: "Test User"}, nil
}

type mockBlackoutSource struct {
	findByTurfAndDateFunc func(ctx context.Context, turfID string, date string) ([]*model.BlockedSlot, error)
}

func (m *mockBlackoutSource) FindByTurfAndDate(ctx context.Context, turfID string, date string) ([]*model.BlockedSlot, error) {
	if m.findByTurfAndDateFunc != nil {
		return m.findByTurfAndDateFunc(ctx, turfID, date)
	}
	return []*model.BlockedSlot{}, nil
}

type mockEventPublisher struct {
	published []kafka.Message
}

func (m *mockEventPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:              log,
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     5 * time.Second,
		SlotWidthMinutes: 60,
		SlotLockTTL:      30 * time.Second,
	}
}

func newTestService(repo *mockBookingRepository, locks *mockSlotLockRepository, turfs *mockTurfDirectory, blackouts *mockBlackoutSource) (*bookingService, *mockEventPublisher) {
	cfg := testConfig()
	events := &mockEventPublisher{}
	return &bookingService{
		repo:      repo,
		lockRepo:  locks,
		turfs:     turfs,
		users:     &mockUserDirectory{},
		blackouts: blackouts,
		events:    events,
		validator: validator.NewBookingValidator(cfg.Log),
		cfg:       cfg,
	}, events
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestReserve_PricesPartialHoursAsFull(t *testing.T) {
	var created *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) error {
			created = b
			return nil
		},
	}
	svc, events := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      futureDate(),
		StartTime: "09:00",
		EndTime:   "10:30",
	}

	if err := svc.Reserve(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected booking to be created")
	}
	// 90 minutes at 500/hour bills as 2 hours.
	if b.TotalPrice != 1000 {
		t.Errorf("expected total price 1000, got %d", b.TotalPrice)
	}
	if b.Status != model.BookingActive {
		t.Errorf("expected status active, got %s", b.Status)
	}
	if len(events.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.published))
	}
	if got := events.published[0].GetEventType(); got != kafka.EventBookingConfirmed {
		t.Errorf("expected event type %s, got %s", kafka.EventBookingConfirmed, got)
	}
}

func TestReserve_OverlappingSlotConflicts(t *testing.T) {
	date := futureDate()
	repo := &mockBookingRepository{
		findActiveFunc: func(ctx context.Context, turfID string, d string) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: testBookID, TurfID: turfID, UserID: testUserID, Date: d, StartTime: "09:00", EndTime: "10:30", Status: model.BookingActive},
			}, nil
		},
	}
	svc, events := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUser2ID,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "11:00",
	}

	err := svc.Reserve(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(events.published) != 0 {
		t.Errorf("expected no events on rejected admission, got %d", len(events.published))
	}
}

func TestReserve_BackToBackSlotsDoNotConflict(t *testing.T) {
	date := futureDate()
	repo := &mockBookingRepository{
		findActiveFunc: func(ctx context.Context, turfID string, d string) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: testBookID, TurfID: turfID, UserID: testUserID, Date: d, StartTime: "09:00", EndTime: "10:30", Status: model.BookingActive},
			}, nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	// Starts exactly where the existing booking ends.
	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUser2ID,
		Date:      date,
		StartTime: "10:30",
		EndTime:   "11:30",
	}

	if err := svc.Reserve(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.TotalPrice != 500 {
		t.Errorf("expected total price 500, got %d", b.TotalPrice)
	}
}

func TestReserve_CancelledBookingFreesSlot(t *testing.T) {
	date := futureDate()
	// The repository only surfaces active bookings, so a cancelled
	// booking on the same slot never reaches the overlap check.
	repo := &mockBookingRepository{
		findActiveFunc: func(ctx context.Context, turfID string, d string) ([]*model.Booking, error) {
			return []*model.Booking{}, nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUser2ID,
		Date:      date,
		StartTime: "09:00",
		EndTime:   "10:30",
	}

	if err := svc.Reserve(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReserve_ExactRepeatIsDuplicateRequest(t *testing.T) {
	repo := &mockBookingRepository{
		existsActiveExactFunc: func(ctx context.Context, userID, turfID, date, startTime, endTime, excludeID string) (bool, error) {
			return true, nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      futureDate(),
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	err := svc.Reserve(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeDuplicateRequest) {
		t.Fatalf("expected duplicate request error, got %v", err)
	}
}

func TestReserve_StoresZeroPaddedDateAndTimes(t *testing.T) {
	var created *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) error {
			created = b
			return nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	day := time.Now().UTC().AddDate(0, 1, 0)
	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      day.Format("2006-1-2"),
		StartTime: "9:00",
		EndTime:   "10:00",
	}

	if err := svc.Reserve(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected booking to be created")
	}
	if want := day.Format("2006-01-02"); created.Date != want {
		t.Errorf("expected stored date %q, got %q", want, created.Date)
	}
	if created.StartTime != "09:00" {
		t.Errorf("expected stored start time %q, got %q", "09:00", created.StartTime)
	}
	if created.EndTime != "10:00" {
		t.Errorf("expected stored end time %q, got %q", "10:00", created.EndTime)
	}
}

func TestReserve_UnpaddedRepeatIsDuplicateRequest(t *testing.T) {
	// The stored booking holds "09:00"; the repeat arrives as "9:00".
	// Canonicalization must make the string comparison still match.
	repo := &mockBookingRepository{
		existsActiveExactFunc: func(ctx context.Context, userID, turfID, date, startTime, endTime, excludeID string) (bool, error) {
			return startTime == "09:00" && endTime == "10:00", nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      futureDate(),
		StartTime: "9:00",
		EndTime:   "10:00",
	}

	err := svc.Reserve(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeDuplicateRequest) {
		t.Fatalf("expected duplicate request error, got %v", err)
	}
}

func TestReserve_BlackoutConflicts(t *testing.T) {
	blackouts := &mockBlackoutSource{
		findByTurfAndDateFunc: func(ctx context.Context, turfID string, date string) ([]*model.BlockedSlot, error) {
			return []*model.BlockedSlot{
				{ID: testBook2ID, TurfID: turfID, Date: date, StartTime: "12:00", EndTime: "14:00", Reason: "maintenance"},
			}, nil
		},
	}
	svc, _ := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockTurfDirectory{}, blackouts)

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      futureDate(),
		StartTime: "13:00",
		EndTime:   "15:00",
	}

	err := svc.Reserve(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestReserve_OutsideOperatingHoursRejected(t *testing.T) {
	svc, _ := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      futureDate(),
		StartTime: "07:00",
		EndTime:   "09:00",
	}

	err := svc.Reserve(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeInvalidInterval) {
		t.Fatalf("expected invalid interval error, got %v", err)
	}
}

func TestReserve_PastDateRejected(t *testing.T) {
	svc, _ := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      "2020-01-01",
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	err := svc.Reserve(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeInvalidInterval) {
		t.Fatalf("expected invalid interval error, got %v", err)
	}
}

func TestReserve_InvertedIntervalRejected(t *testing.T) {
	svc, _ := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      futureDate(),
		StartTime: "11:00",
		EndTime:   "10:00",
	}

	err := svc.Reserve(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReserve_HeldSlotLockConflicts(t *testing.T) {
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		},
	}
	svc, _ := newTestService(&mockBookingRepository{}, locks, &mockTurfDirectory{}, &mockBlackoutSource{})

	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      futureDate(),
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	err := svc.Reserve(context.Background(), b)
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestReserve_ReleasesSlotLock(t *testing.T) {
	var deletedLockID string
	locks := &mockSlotLockRepository{
		deleteFunc: func(ctx context.Context, lockID string) error {
			deletedLockID = lockID
			return nil
		},
	}
	svc, _ := newTestService(&mockBookingRepository{}, locks, &mockTurfDirectory{}, &mockBlackoutSource{})

	date := futureDate()
	b := &model.Booking{
		TurfID:    testTurfID,
		UserID:    testUserID,
		Date:      date,
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	if err := svc.Reserve(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "slot_lock_" + testTurfID + "_" + date
	if deletedLockID != expected {
		t.Errorf("expected lock %s to be released, got %s", expected, deletedLockID)
	}
}

func TestCancel_TransitionsToCancelled(t *testing.T) {
	var updatedStatus model.BookingStatus
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, TurfID: testTurfID, UserID: testUserID, Status: model.BookingActive}, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status model.BookingStatus) (*mongo.UpdateResult, error) {
			updatedStatus = status
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	svc, events := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	if err := svc.Cancel(context.Background(), testBookID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updatedStatus != model.BookingCancelled {
		t.Errorf("expected status cancelled, got %s", updatedStatus)
	}
	if len(events.published) != 1 || events.published[0].GetEventType() != kafka.EventBookingCancelled {
		t.Error("expected a cancellation event")
	}
}

func TestCancel_AlreadyCancelledIsInvalidTransition(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.BookingCancelled}, nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	err := svc.Cancel(context.Background(), testBookID)
	if !apperrors.IsCode(err, apperrors.CodeInvalidTransition) {
		t.Fatalf("expected invalid transition error, got %v", err)
	}
}

func TestReschedule_ExcludesOwnInterval(t *testing.T) {
	date := futureDate()
	var newPrice int64
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:        id,
				TurfID:    testTurfID,
				UserID:    testUserID,
				Date:      date,
				StartTime: "09:00",
				EndTime:   "10:00",
				Status:    model.BookingActive,
			}, nil
		},
		findActiveFunc: func(ctx context.Context, turfID string, d string) ([]*model.Booking, error) {
			// Only the booking being moved occupies the day. The new
			// interval overlaps it, which must not count as a conflict.
			return []*model.Booking{
				{ID: testBookID, TurfID: turfID, UserID: testUserID, Date: d, StartTime: "09:00", EndTime: "10:00", Status: model.BookingActive},
			}, nil
		},
		updateIntervalFunc: func(ctx context.Context, id string, d, startTime, endTime string, totalPrice int64) (*mongo.UpdateResult, error) {
			newPrice = totalPrice
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	svc, events := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	updates := &model.BookingUpdate{StartTime: "09:30", EndTime: "11:30"}
	if err := svc.Reschedule(context.Background(), testBookID, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newPrice != 1000 {
		t.Errorf("expected recomputed price 1000, got %d", newPrice)
	}
	if len(events.published) != 1 || events.published[0].GetEventType() != kafka.EventBookingRescheduled {
		t.Error("expected a reschedule event")
	}
}

func TestReschedule_CancelledBookingIsInvalidTransition(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.BookingCancelled}, nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	err := svc.Reschedule(context.Background(), testBookID, &model.BookingUpdate{StartTime: "09:00", EndTime: "10:00"})
	if !apperrors.IsCode(err, apperrors.CodeInvalidTransition) {
		t.Fatalf("expected invalid transition error, got %v", err)
	}
}

func TestReschedule_EmptyUpdateRejected(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.BookingActive}, nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	err := svc.Reschedule(context.Background(), testBookID, &model.BookingUpdate{})
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestGetUpcomingByTurf_FiltersFromNow(t *testing.T) {
	var gotTurfID, gotFromDate, gotFromTime string
	repo := &mockBookingRepository{
		findUpcomingByTurfFunc: func(ctx context.Context, turfID string, fromDate string, fromTime string, limit int, offset int64) ([]*model.Booking, error) {
			gotTurfID, gotFromDate, gotFromTime = turfID, fromDate, fromTime
			return []*model.Booking{
				{ID: testBookID, TurfID: turfID, UserID: testUserID, Date: futureDate(), StartTime: "09:00", EndTime: "10:00", Status: model.BookingActive},
			}, nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	bookings, err := svc.GetUpcomingByTurf(context.Background(), testTurfID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}
	if gotTurfID != testTurfID {
		t.Errorf("expected turf ID %q, got %q", testTurfID, gotTurfID)
	}
	if gotFromDate != timeslot.Today() {
		t.Errorf("expected from date %q, got %q", timeslot.Today(), gotFromDate)
	}
	if _, err := timeslot.ParseClock(gotFromTime); err != nil {
		t.Errorf("expected parseable from time, got %q", gotFromTime)
	}
}

func TestGetUpcomingByTurf_EmptyIDRejected(t *testing.T) {
	svc, _ := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	_, err := svc.GetUpcomingByTurf(context.Background(), "", 10, 0)
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestCheckAvailability_OutsideHoursIsNotAvailable(t *testing.T) {
	svc, _ := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	available, err := svc.CheckAvailability(context.Background(), testTurfID, futureDate(), "06:00", "07:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if available {
		t.Error("expected slot outside operating hours to be unavailable")
	}
}

func TestCheckAvailability_FreeSlot(t *testing.T) {
	svc, _ := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	available, err := svc.CheckAvailability(context.Background(), testTurfID, futureDate(), "09:00", "10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("expected free slot to be available")
	}
}

func TestAvailableSlots_GridMarksBusyCells(t *testing.T) {
	date := futureDate()
	repo := &mockBookingRepository{
		findActiveFunc: func(ctx context.Context, turfID string, d string) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: testBookID, TurfID: turfID, UserID: testUserID, Date: d, StartTime: "09:30", EndTime: "10:30", Status: model.BookingActive},
			}, nil
		},
	}
	svc, _ := newTestService(repo, &mockSlotLockRepository{}, &mockTurfDirectory{}, &mockBlackoutSource{})

	slots, err := svc.AvailableSlots(context.Background(), testTurfID, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 08:00 to 22:00 at 60-minute width yields 14 cells.
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}

	byStart := make(map[string]Slot, len(slots))
	for _, s := range slots {
		byStart[s.StartTime] = s
	}

	if byStart["08:00"].Available != true {
		t.Error("expected 08:00 slot to be available")
	}
	// The 09:30-10:30 booking straddles both the 09:00 and 10:00 cells.
	if byStart["09:00"].Available {
		t.Error("expected 09:00 slot to be busy")
	}
	if byStart["10:00"].Available {
		t.Error("expected 10:00 slot to be busy")
	}
	if byStart["11:00"].Available != true {
		t.Error("expected 11:00 slot to be available")
	}
}

func TestAvailableSlots_DiscardsPartialTrailingSlot(t *testing.T) {
	turfs := &mockTurfDirectory{
		getByIDFunc: func(ctx context.Context, id string) (*model.Turf, error) {
			return &model.Turf{
				ID:          id,
				Name:        "Short Day Arena",
				OpenTime:    "08:00",
				CloseTime:   "10:30",
				RatePerHour: 500,
			}, nil
		},
	}
	svc, _ := newTestService(&mockBookingRepository{}, &mockSlotLockRepository{}, turfs, &mockBlackoutSource{})

	slots, err := svc.AvailableSlots(context.Background(), testTurfID, futureDate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 08:00-09:00 and 09:00-10:00 fit; the 10:00-10:30 remainder does not.
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1].EndTime != "10:00" {
		t.Errorf("expected last slot to end at 10:00, got %s", slots[1].EndTime)
	}
}
