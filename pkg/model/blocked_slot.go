package model

import "time"

// BlockedSlot is an administrative withdrawal of a turf interval from
// availability, regardless of booking state. It must nest inside the turf's
// operating hours at creation time.
type BlockedSlot struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TurfID    string    `json:"turf_id" bson:"turf_id" validate:"required,mongodb"`
	Date      string    `json:"date" bson:"date" validate:"required,calendar_date"`
	StartTime string    `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	EndTime   string    `json:"end_time" bson:"end_time" validate:"required,clock_time"`
	Reason    string    `json:"reason,omitempty" bson:"reason" validate:"omitempty,max=200"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
