package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewID mints an opaque unique identifier for any entity.
func NewID() string {
	return uuid.NewString()
}

// NowMillis is the creation timestamp used across all entities.
// Epoch milliseconds, monotonically non-decreasing for practical purposes.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
