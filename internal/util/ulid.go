package util

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string.
func NewULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// NewRunID returns a lower-case ULID, suitable for file and directory names.
func NewRunID() string {
	return strings.ToLower(NewULID())
}
