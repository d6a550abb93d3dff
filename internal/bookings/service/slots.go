package service

import (
	"context"

	apperrors "turfbook/pkg/errors"
	"turfbook/pkg/timeslot"
)

// Slot is one grid cell of a turf-day with its availability flag.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// AvailableSlots lays the configured slot grid over the turf's operating
// hours and marks each cell free or busy. A trailing partial slot that
// would cross closing time is not emitted.
func (s *bookingService) AvailableSlots(ctx context.Context, turfID string, date string) ([]Slot, error) {
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}

	turf, err := s.turfs.GetByID(ctx, turfID)
	if err != nil {
		return nil, err
	}

	hours, err := timeslot.NewInterval(turf.OpenTime, turf.CloseTime)
	if err != nil {
		return nil, apperrors.Internal("Turf has invalid operating hours", err)
	}

	busy, err := s.busyIntervals(ctx, turfID, date)
	if err != nil {
		return nil, err
	}

	var slots []Slot
	for cell := range timeslot.Grid(hours, s.cfg.SlotWidthMinutes) {
		free := true
		for _, b := range busy {
			if cell.Overlaps(b) {
				free = false
				break
			}
		}
		slots = append(slots, Slot{
			StartTime: cell.Start.String(),
			EndTime:   cell.End.String(),
			Available: free,
		})
	}

	return slots, nil
}

func (s *bookingService) busyIntervals(ctx context.Context, turfID string, date string) ([]timeslot.Interval, error) {
	bookings, err := s.repo.FindActiveByTurfAndDate(ctx, turfID, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to load active bookings", err)
	}

	blackouts, err := s.blackouts.FindByTurfAndDate(ctx, turfID, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to load blocked slots", err)
	}

	busy := make([]timeslot.Interval, 0, len(bookings)+len(blackouts))
	for _, b := range bookings {
		iv, err := timeslot.NewInterval(b.StartTime, b.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, iv)
	}
	for _, bl := range blackouts {
		iv, err := timeslot.NewInterval(bl.StartTime, bl.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, iv)
	}

	return busy, nil
}
