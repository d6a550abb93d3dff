package model

import "time"

// BookingStatus is the closed set of lifecycle states. Only active bookings
// participate in overlap checks and upcoming projections.
type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	return s == BookingActive || s == BookingCancelled
}

// Booking is a committed reservation of a turf slot. The slot is the
// half-open interval [StartTime, EndTime) on Date. TotalPrice is attached at
// admission time in minor currency units.
type Booking struct {
	ID         string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TurfID     string        `json:"turf_id" bson:"turf_id" validate:"required,mongodb"`
	UserID     string        `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	Date       string        `json:"date" bson:"date" validate:"required,calendar_date"`
	StartTime  string        `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	EndTime    string        `json:"end_time" bson:"end_time" validate:"required,clock_time"`
	Status     BookingStatus `json:"status" bson:"status" validate:"omitempty,oneof=active cancelled"`
	TotalPrice int64         `json:"total_price" bson:"total_price" validate:"omitempty,min=0"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingUpdate carries the pre-admission-time edits a client may request.
// Any change to date or interval re-runs the full admission check.
type BookingUpdate struct {
	Date      string `json:"date,omitempty" validate:"omitempty,calendar_date"`
	StartTime string `json:"start_time,omitempty" validate:"omitempty,clock_time"`
	EndTime   string `json:"end_time,omitempty" validate:"omitempty,clock_time"`
}

// Empty reports whether the update changes nothing.
func (u *BookingUpdate) Empty() bool {
	return u.Date == "" && u.StartTime == "" && u.EndTime == ""
}

// BookingSearch is the multi-criteria filter for the search endpoint. Nil or
// zero fields are ignored.
type BookingSearch struct {
	UserID   string
	TurfID   string
	Status   BookingStatus
	FromDate string
	ToDate   string
}
