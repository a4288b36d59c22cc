package types

import "strings"

// IncidentState represents an incident lifecycle state
type IncidentState string

const (
	IncidentStateNew        IncidentState = "New"
	IncidentStateInProgress IncidentState = "In Progress"
	IncidentStateOnHold     IncidentState = "On Hold"
	IncidentStateResolved   IncidentState = "Resolved"
	IncidentStateClosed     IncidentState = "Closed"
)

// String returns the string representation
func (s IncidentState) String() string {
	return string(s)
}

// IsOpen returns true when the incident still needs work
func (s IncidentState) IsOpen() bool {
	return s != IncidentStateResolved && s != IncidentStateClosed
}

// IncidentStates lists the valid lifecycle states
func IncidentStates() []IncidentState {
	return []IncidentState{
		IncidentStateNew,
		IncidentStateInProgress,
		IncidentStateOnHold,
		IncidentStateResolved,
		IncidentStateClosed,
	}
}

// ChangeState represents a change-request lifecycle state
type ChangeState string

const (
	ChangeStateNew       ChangeState = "New"
	ChangeStateAssess    ChangeState = "Assess"
	ChangeStateScheduled ChangeState = "Scheduled"
	ChangeStateCompleted ChangeState = "Completed"
	ChangeStateFailed    ChangeState = "Failed"
	ChangeStateCancelled ChangeState = "Cancelled"
	ChangeStateClosed    ChangeState = "Closed"
)

// String returns the string representation
func (s ChangeState) String() string {
	return string(s)
}

// IsTerminal reports whether the change has reached a verdict-bearing state
func (s ChangeState) IsTerminal() bool {
	switch s {
	case ChangeStateCompleted, ChangeStateFailed, ChangeStateCancelled, ChangeStateClosed:
		return true
	}
	return false
}

// IsSuccess reports whether a terminal change counts as successful.
// Completed and Closed are successes; failed and cancelled are not.
func (s ChangeState) IsSuccess() bool {
	return s == ChangeStateCompleted || s == ChangeStateClosed
}

// ParseChangeState maps a state label to a ChangeState,
// case-insensitively. Unknown labels come back as-is and read as
// non-terminal, so they never receive a success verdict.
func ParseChangeState(label string) ChangeState {
	for _, s := range []ChangeState{
		ChangeStateNew,
		ChangeStateAssess,
		ChangeStateScheduled,
		ChangeStateCompleted,
		ChangeStateFailed,
		ChangeStateCancelled,
		ChangeStateClosed,
	} {
		if strings.EqualFold(label, string(s)) {
			return s
		}
	}
	return ChangeState(label)
}

// ChangeType represents a change-request type
type ChangeType string

const (
	ChangeTypeStandard  ChangeType = "Standard"
	ChangeTypeNormal    ChangeType = "Normal"
	ChangeTypeEmergency ChangeType = "Emergency"
)

// String returns the string representation
func (t ChangeType) String() string {
	return string(t)
}

// ChangeTypes lists the valid change types
func ChangeTypes() []ChangeType {
	return []ChangeType{ChangeTypeStandard, ChangeTypeNormal, ChangeTypeEmergency}
}

// SLAStage represents an SLA tracking stage
type SLAStage string

const (
	SLAStageInProgress SLAStage = "In progress"
	SLAStageBreached   SLAStage = "Breached"
	SLAStageCompleted  SLAStage = "Completed"
	SLAStageCancelled  SLAStage = "Cancelled"
)

// String returns the string representation
func (s SLAStage) String() string {
	return string(s)
}
