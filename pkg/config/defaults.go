package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "turfbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultSlotWidthMinutes is the grid step used when listing available
	// slots. One hour matches the pricing granularity; narrower widths are a
	// deployment choice, not a code change.
	DefaultSlotWidthMinutes = 60

	// DefaultSlotLockTTL bounds how long a crashed admission can keep a
	// turf/date serialized.
	DefaultSlotLockTTL = 10 * time.Second

	DefaultEventsEnabled = false
	DefaultEventsTopic   = "turfbook.bookings"
	DefaultEventsDLQ     = "turfbook.bookings.dlq"

	DefaultPaginationLimit = 100
)
