package model

import "time"

// User is a requester or turf owner. Authentication lives in the request
// layer; the booking engine only checks existence.
type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,e164"`
	Email     string    `json:"email,omitempty" bson:"email" validate:"omitempty,email"`
	Role      string    `json:"role" bson:"role" validate:"required,oneof=player owner admin"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type UserUpdate struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone string `json:"phone,omitempty" validate:"omitempty,e164"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Role  string `json:"role,omitempty" validate:"omitempty,oneof=player owner admin"`
}
