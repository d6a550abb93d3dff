package model

import "time"

// Turf is a bookable facility. OpenTime and CloseTime bound a half-open
// operating window [open, close); every booking and blocked slot for the
// turf must nest inside it.
type Turf struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID     string    `json:"owner_id" bson:"owner_id" validate:"required,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone       string    `json:"phone" bson:"phone" validate:"required,e164"`
	Location    string    `json:"location" bson:"location" validate:"required,min=2,max=200"`
	Sport       string    `json:"sport" bson:"sport" validate:"required,oneof=football cricket badminton tennis basketball"`
	Description string    `json:"description,omitempty" bson:"description" validate:"omitempty,max=500"`
	RatePerHour int64     `json:"rate_per_hour" bson:"rate_per_hour" validate:"required,gt=0"`
	OpenTime    string    `json:"open_time" bson:"open_time" validate:"required,clock_time"`
	CloseTime   string    `json:"close_time" bson:"close_time" validate:"required,clock_time"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type TurfUpdate struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone       string  `json:"phone,omitempty" validate:"omitempty,e164"`
	Location    string  `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	Sport       string  `json:"sport,omitempty" validate:"omitempty,oneof=football cricket badminton tennis basketball"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	RatePerHour *int64  `json:"rate_per_hour,omitempty" validate:"omitempty,gt=0"`
	OpenTime    string  `json:"open_time,omitempty" validate:"omitempty,clock_time"`
	CloseTime   string  `json:"close_time,omitempty" validate:"omitempty,clock_time"`
}
