package api

import "time"

// EnvelopeVersion is the response envelope schema version sent as "v".
const EnvelopeVersion = 1

// Request limits.
const (
	// DefaultMaxBodyBytes bounds JSON request bodies other than photo uploads.
	DefaultMaxBodyBytes = 64 << 10

	// photoBodyOverhead covers the JSON wrapper and data URL prefix around
	// the base64 image.
	photoBodyOverhead = 4 << 10
)

// Cache-Control header values.
const (
	CacheNoStore = "no-store"
)

// healthTimeout bounds the store ping behind /health.
const healthTimeout = 2 * time.Second
