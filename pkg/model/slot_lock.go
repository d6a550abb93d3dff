package model

import "time"

// SlotLock is an advisory lock serializing admission for one turf and date.
// The _id is derived from (turf_id, date), so a concurrent reserve for the
// same turf/date hits a duplicate-key error and loses the race. A TTL index
// on expires_at reaps locks leaked by crashed processes.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
