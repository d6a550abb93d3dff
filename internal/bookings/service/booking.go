package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"turfbook/internal/bookings/repository"
	"turfbook/internal/bookings/validator"
	bookingserrors "turfbook/internal/bookings/errors"
	"turfbook/pkg/config"
	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/kafka"
	"turfbook/pkg/model"
	"turfbook/pkg/timeslot"
)

// TurfDirectory and UserDirectory are the narrow slices of the other
// contexts the admission path depends on.
type TurfDirectory interface {
	GetByID(ctx context.Context, id string) (*model.Turf, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// BlackoutSource reads administrative blackouts for one turf-day.
type BlackoutSource interface {
	FindByTurfAndDate(ctx context.Context, turfID string, date string) ([]*model.BlockedSlot, error)
}

// EventPublisher emits booking lifecycle events. Publishing is best
// effort and never blocks or fails an admission.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Reserve(ctx context.Context, b *model.Booking) error
	Reschedule(ctx context.Context, id string, updates *model.BookingUpdate) error
	Cancel(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	GetUpcomingByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	GetByTurf(ctx context.Context, turfID string, limit int, offset int64) ([]*model.Booking, error)
	GetUpcomingByTurf(ctx context.Context, turfID string, limit int, offset int64) ([]*model.Booking, error)
	Search(ctx context.Context, search model.BookingSearch, limit int, offset int64) ([]*model.Booking, int64, error)
	CheckAvailability(ctx context.Context, turfID string, date string, startTime string, endTime string) (bool, error)
	AvailableSlots(ctx context.Context, turfID string, date string) ([]Slot, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	turfs     TurfDirectory
	users     UserDirectory
	blackouts BlackoutSource
	events    EventPublisher
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	turfs TurfDirectory,
	users UserDirectory,
	blackouts BlackoutSource,
	events EventPublisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		turfs:     turfs,
		users:     users,
		blackouts: blackouts,
		events:    events,
		validator: validator,
		cfg:       cfg,
	}
}

// Reserve admits a booking: the slot must nest in the turf's operating
// hours and be free of active bookings and blackouts. Admission for a
// turf-day is serialized by an advisory lock plus a transaction, so at
// most one of two racing requests for overlapping slots wins.
func (s *bookingService) Reserve(ctx context.Context, b *model.Booking) error {
	b.Status = model.BookingActive

	if err := s.validate(b); err != nil {
		return err
	}
	s.canonicalize(b)

	if b.Date < timeslot.Today() {
		return apperrors.InvalidInterval("Cannot book a past date")
	}

	if _, err := s.users.GetByID(ctx, b.UserID); err != nil {
		return err
	}

	turf, err := s.turfs.GetByID(ctx, b.TurfID)
	if err != nil {
		return err
	}

	iv, err := s.requestedInterval(turf, b.StartTime, b.EndTime)
	if err != nil {
		return err
	}

	b.TotalPrice = quote(turf.RatePerHour, iv)

	lockID, err := s.acquireSlotLock(ctx, b.TurfID, b.Date)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.rejectDuplicate(sessCtx, b, ""); err != nil {
			return err
		}

		free, err := s.isSlotFree(sessCtx, b.TurfID, b.Date, iv, "")
		if err != nil {
			return err
		}
		if !free {
			return apperrors.Conflict("The requested slot overlaps an existing booking or blocked period")
		}

		if err := s.repo.Create(sessCtx, b); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to reserve booking",
			"turf_id", b.TurfID,
			"user_id", b.UserID,
			"date", b.Date,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Booking reserved successfully",
		"id", b.ID,
		"turf_id", b.TurfID,
		"user_id", b.UserID,
		"date", b.Date,
		"start_time", b.StartTime,
		"end_time", b.EndTime,
		"total_price", b.TotalPrice,
	)

	s.publishEvent(ctx, kafka.EventBookingConfirmed, b)
	return nil
}

// Reschedule moves an active booking to a new slot. The new slot passes
// the full admission check, with the booking's own interval excluded so
// it does not conflict with itself.
func (s *bookingService) Reschedule(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.Status != model.BookingActive {
		return apperrors.InvalidTransition("Only active bookings can be rescheduled")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}
	if updates.Empty() {
		return apperrors.InvalidInput("No changes requested")
	}

	merged := *existing
	if updates.Date != "" {
		merged.Date = updates.Date
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}

	if err := s.validate(&merged); err != nil {
		return err
	}
	s.canonicalize(&merged)

	if merged.Date < timeslot.Today() {
		return apperrors.InvalidInterval("Cannot reschedule to a past date")
	}

	turf, err := s.turfs.GetByID(ctx, merged.TurfID)
	if err != nil {
		return err
	}

	iv, err := s.requestedInterval(turf, merged.StartTime, merged.EndTime)
	if err != nil {
		return err
	}

	newPrice := quote(turf.RatePerHour, iv)

	lockID, err := s.acquireSlotLock(ctx, merged.TurfID, merged.Date)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.rejectDuplicate(sessCtx, &merged, id); err != nil {
			return err
		}

		free, err := s.isSlotFree(sessCtx, merged.TurfID, merged.Date, iv, id)
		if err != nil {
			return err
		}
		if !free {
			return apperrors.Conflict("The requested slot overlaps an existing booking or blocked period")
		}

		if _, err := s.repo.UpdateInterval(sessCtx, id, merged.Date, merged.StartTime, merged.EndTime, newPrice); err != nil {
			return apperrors.Internal("Failed to reschedule booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to reschedule booking", "id", id, "error", err)
		return err
	}

	merged.TotalPrice = newPrice

	s.cfg.Log.Info("Booking rescheduled successfully",
		"id", id,
		"date", merged.Date,
		"start_time", merged.StartTime,
		"end_time", merged.EndTime,
		"total_price", newPrice,
	)

	s.publishEvent(ctx, kafka.EventBookingRescheduled, &merged)
	return nil
}

// Cancel transitions an active booking to cancelled. Cancelling twice is
// an invalid transition; the slot is freed for new admissions.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.Status == model.BookingCancelled {
		return apperrors.InvalidTransition("Booking is already cancelled")
	}

	if _, err := s.repo.UpdateStatus(ctx, id, model.BookingCancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	existing.Status = model.BookingCancelled

	s.cfg.Log.Info("Booking cancelled successfully", "id", id)

	s.publishEvent(ctx, kafka.EventBookingCancelled, existing)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return b, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by user", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetUpcomingByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindUpcomingByUser(ctx, userID, timeslot.Today(), time.Now().UTC().Format("15:04"), limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list upcoming bookings", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve upcoming bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetByTurf(ctx context.Context, turfID string, limit int, offset int64) ([]*model.Booking, error) {
	if turfID == "" {
		return nil, apperrors.InvalidInput("Turf ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindByTurf(ctx, turfID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by turf", "turf_id", turfID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetUpcomingByTurf(ctx context.Context, turfID string, limit int, offset int64) ([]*model.Booking, error) {
	if turfID == "" {
		return nil, apperrors.InvalidInput("Turf ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindUpcomingByTurf(ctx, turfID, timeslot.Today(), time.Now().UTC().Format("15:04"), limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list upcoming bookings by turf", "turf_id", turfID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve upcoming bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Search(ctx context.Context, search model.BookingSearch, limit int, offset int64) ([]*model.Booking, int64, error) {
	if search.Status != "" && !search.Status.Valid() {
		return nil, 0, apperrors.InvalidInput("status must be 'active' or 'cancelled'")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountBySearch(ctx, search)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings by search", "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.Search(ctx, search, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search bookings", "error", err)
			errFind = apperrors.Internal("Failed to search bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// --- Helpers ---

func (s *bookingService) validate(b *model.Booking) error {
	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// canonicalize rewrites the date and slot bounds in zero-padded form.
// The duplicate check, the unique-index backstop and the upcoming
// projection all compare these fields as strings, so "9:00" must never
// reach storage alongside "09:00". Validation has already proven the
// fields parseable.
func (s *bookingService) canonicalize(b *model.Booking) {
	if d, err := timeslot.ParseDate(strings.TrimSpace(b.Date)); err == nil {
		b.Date = d.Format(timeslot.DateLayout)
	}
	if c, err := timeslot.ParseClock(strings.TrimSpace(b.StartTime)); err == nil {
		b.StartTime = c.String()
	}
	if c, err := timeslot.ParseClock(strings.TrimSpace(b.EndTime)); err == nil {
		b.EndTime = c.String()
	}
}

// requestedInterval parses the slot and checks it nests inside the
// turf's operating hours.
func (s *bookingService) requestedInterval(turf *model.Turf, startTime, endTime string) (timeslot.Interval, error) {
	iv, err := timeslot.NewInterval(startTime, endTime)
	if err != nil {
		return timeslot.Interval{}, apperrors.InvalidInterval("end_time must be after start_time")
	}

	hours, err := timeslot.NewInterval(turf.OpenTime, turf.CloseTime)
	if err != nil {
		return timeslot.Interval{}, apperrors.Internal("Turf has invalid operating hours", err)
	}
	if !iv.Within(hours) {
		return timeslot.Interval{}, apperrors.InvalidInterval(fmt.Sprintf(
			"The slot must be within the turf's operating hours (%s - %s)",
			turf.OpenTime, turf.CloseTime,
		))
	}

	return iv, nil
}

// rejectDuplicate distinguishes an exact repeat of an existing active
// booking from a mere overlap: the former is a duplicate request.
func (s *bookingService) rejectDuplicate(ctx context.Context, b *model.Booking, excludeID string) error {
	exists, err := s.repo.ExistsActiveExact(ctx, b.UserID, b.TurfID, b.Date, b.StartTime, b.EndTime, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check for duplicate booking", err)
	}
	if exists {
		return apperrors.DuplicateRequest("An identical active booking already exists")
	}
	return nil
}

// acquireSlotLock serializes admission for one turf-day. A held lock
// surfaces as a conflict so the client can simply retry.
func (s *bookingService) acquireSlotLock(ctx context.Context, turfID string, date string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s", turfID, date)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// publishEvent emits a lifecycle event keyed by booking ID. Failures are
// logged and swallowed; the booking outcome is already committed.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, b *model.Booking) {
	if s.events == nil {
		return
	}

	msg, err := kafka.NewJSONMessage(b.ID, eventType, b)
	if err != nil {
		s.cfg.Log.Warn("Failed to encode booking event", "event_type", eventType, "booking_id", b.ID, "error", err)
		return
	}

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "event_type", eventType, "booking_id", b.ID, "error", err)
	}
}
