package types

import (
	"github.com/google/uuid"
)

// RecordID represents a remote record identifier (sys_id)
type RecordID string

// String returns the string representation
func (id RecordID) String() string {
	return string(id)
}

// FetchID identifies a single fetch attempt for diagnostics correlation
type FetchID string

// String returns the string representation
func (id FetchID) String() string {
	return string(id)
}

// NewFetchID creates a new FetchID
func NewFetchID() FetchID {
	return FetchID(uuid.New().String())
}

// EntityKind identifies which remote table a data source serves
type EntityKind string

const (
	EntityIncident EntityKind = "incident"
	EntityChange   EntityKind = "change"
	EntitySLA      EntityKind = "sla"
)

// String returns the string representation
func (k EntityKind) String() string {
	return string(k)
}

// Table returns the remote table name for the entity
func (k EntityKind) Table() string {
	switch k {
	case EntityIncident:
		return "incident"
	case EntityChange:
		return "change_request"
	case EntitySLA:
		return "task_sla"
	default:
		return string(k)
	}
}

// DataPath reports which path an accessor call resolved through
type DataPath string

const (
	// DataPathAPI means records came from the remote system
	DataPathAPI DataPath = "api"
	// DataPathMock means the call fell back to synthetic records
	DataPathMock DataPath = "mock"
)

// String returns the string representation
func (p DataPath) String() string {
	return string(p)
}

// Interval represents a calendar grouping granularity
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// String returns the string representation
func (i Interval) String() string {
	return string(i)
}

// IsValid checks whether the interval is a supported granularity
func (i Interval) IsValid() bool {
	switch i {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return true
	}
	return false
}
