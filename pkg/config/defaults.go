package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "aeroclub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultStoreDriver = StoreDriverMongo

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultBookingWriteMode   = WriteModeLocked
	DefaultBookingLockBackend = LockBackendMongo
	DefaultBookingLockTTL     = 10 * time.Second
	DefaultBookingEventsTopic = "booking-events"
	DefaultBookingEventsDLQ   = "booking-events-dlq"

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultDefaultLocale    = "en"
	DefaultSupportedLocales = "en,fi,sv"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"

	// WriteModeLocked serializes guarded writes per resource.
	WriteModeLocked = "locked"
	// WriteModeCheckThenWrite runs the overlap check and the write without any
	// lock. Two concurrent writers can both pass the check.
	WriteModeCheckThenWrite = "check-then-write"

	LockBackendMongo = "mongo"
	LockBackendRedis = "redis"
)
