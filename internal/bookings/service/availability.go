package service

import (
	"context"

	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/timeslot"
)

// isSlotFree reports whether the interval collides with any active booking
// or blackout on the turf-day. excludeID skips the caller's own booking so
// a reschedule does not conflict with itself. Both sides of every
// comparison use half-open semantics, so back-to-back slots never collide.
func (s *bookingService) isSlotFree(ctx context.Context, turfID string, date string, iv timeslot.Interval, excludeID string) (bool, error) {
	bookings, err := s.repo.FindActiveByTurfAndDate(ctx, turfID, date)
	if err != nil {
		return false, apperrors.Internal("Failed to load active bookings", err)
	}

	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		existing, err := timeslot.NewInterval(b.StartTime, b.EndTime)
		if err != nil {
			s.cfg.Log.Error("Stored booking has invalid interval",
				"booking_id", b.ID,
				"start_time", b.StartTime,
				"end_time", b.EndTime,
			)
			continue
		}
		if iv.Overlaps(existing) {
			return false, nil
		}
	}

	blackouts, err := s.blackouts.FindByTurfAndDate(ctx, turfID, date)
	if err != nil {
		return false, apperrors.Internal("Failed to load blocked slots", err)
	}

	for _, bl := range blackouts {
		blocked, err := timeslot.NewInterval(bl.StartTime, bl.EndTime)
		if err != nil {
			s.cfg.Log.Error("Stored blocked slot has invalid interval",
				"blocked_slot_id", bl.ID,
				"start_time", bl.StartTime,
				"end_time", bl.EndTime,
			)
			continue
		}
		if iv.Overlaps(blocked) {
			return false, nil
		}
	}

	return true, nil
}

// CheckAvailability answers the ad-hoc availability query. An interval
// outside the turf's operating hours is simply not available.
func (s *bookingService) CheckAvailability(ctx context.Context, turfID string, date string, startTime string, endTime string) (bool, error) {
	if _, err := timeslot.ParseDate(date); err != nil {
		return false, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}

	iv, err := timeslot.NewInterval(startTime, endTime)
	if err != nil {
		return false, apperrors.InvalidInterval("end_time must be after start_time and both must be in HH:MM format")
	}

	turf, err := s.turfs.GetByID(ctx, turfID)
	if err != nil {
		return false, err
	}

	hours, err := timeslot.NewInterval(turf.OpenTime, turf.CloseTime)
	if err != nil {
		return false, apperrors.Internal("Turf has invalid operating hours", err)
	}
	if !iv.Within(hours) {
		return false, nil
	}

	return s.isSlotFree(ctx, turfID, date, iv, "")
}
