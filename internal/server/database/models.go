package database

import (
	"time"

	"github.com/google/uuid"
)

// Conversion is one recorded conversion attempt. File contents are never
// stored, only metadata about the request and its outcome.
type Conversion struct {
	ID         uuid.UUID
	Operation  string
	InputName  string
	OutputName string
	InputSize  int64
	OutputSize int64
	Success    bool
	Message    string
	DurationMS int64
	CreatedAt  time.Time
}

// Stats holds aggregate conversion statistics.
type Stats struct {
	TotalConversions      int64
	SuccessfulConversions int64
	BytesIn               int64
	BytesOut              int64
}
