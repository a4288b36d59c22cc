package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opslens/opslens/pkg/domain/types"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected types.Priority
	}{
		{"bare digit", "1", types.PriorityCritical},
		{"display form", "2 - High", types.PriorityHigh},
		{"whitespace", "  3 ", types.PriorityModerate},
		{"empty defaults to low", "", types.PriorityLow},
		{"non-numeric defaults to low", "high", types.PriorityLow},
		{"out of range defaults to low", "9", types.PriorityLow},
		{"zero defaults to low", "0", types.PriorityLow},
		{"negative defaults to low", "-1", types.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, types.ParsePriority(tt.input), tt.expected)
		})
	}
}

func TestPriorityLabel(t *testing.T) {
	gt.Equal(t, types.PriorityCritical.Label(), "P1")
	gt.Equal(t, types.PriorityLow.Label(), "P4")
	gt.Equal(t, len(types.Priorities()), 4)
}

func TestIncidentStateIsOpen(t *testing.T) {
	tests := []struct {
		state    types.IncidentState
		expected bool
	}{
		{types.IncidentStateNew, true},
		{types.IncidentStateInProgress, true},
		{types.IncidentStateOnHold, true},
		{types.IncidentStateResolved, false},
		{types.IncidentStateClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			gt.Equal(t, tt.state.IsOpen(), tt.expected)
		})
	}
}

func TestChangeStateClassification(t *testing.T) {
	tests := []struct {
		state    types.ChangeState
		terminal bool
		success  bool
	}{
		{types.ChangeStateNew, false, false},
		{types.ChangeStateAssess, false, false},
		{types.ChangeStateScheduled, false, false},
		{types.ChangeStateCompleted, true, true},
		{types.ChangeStateClosed, true, true},
		{types.ChangeStateFailed, true, false},
		{types.ChangeStateCancelled, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			gt.Equal(t, tt.state.IsTerminal(), tt.terminal)
			gt.Equal(t, tt.state.IsSuccess(), tt.success)
		})
	}
}

func TestParseChangeState(t *testing.T) {
	gt.Equal(t, types.ParseChangeState("completed"), types.ChangeStateCompleted)
	gt.Equal(t, types.ParseChangeState("FAILED"), types.ChangeStateFailed)

	unknown := types.ParseChangeState("Review")
	gt.False(t, unknown.IsTerminal())
}

func TestIntervalIsValid(t *testing.T) {
	gt.True(t, types.IntervalDay.IsValid())
	gt.True(t, types.IntervalWeek.IsValid())
	gt.True(t, types.IntervalMonth.IsValid())
	gt.False(t, types.Interval("hourly").IsValid())
	gt.False(t, types.Interval("").IsValid())
}

func TestNewFetchID(t *testing.T) {
	a := types.NewFetchID()
	b := types.NewFetchID()
	gt.True(t, a != b)
	gt.True(t, a.String() != "")
}
