package types

import (
	"strconv"
	"strings"
)

// Priority represents an incident priority, 1 is the most severe
type Priority int

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityModerate Priority = 3
	PriorityLow      Priority = 4
)

// IsValid checks whether the priority is in the 1-4 domain
func (p Priority) IsValid() bool {
	return p >= PriorityCritical && p <= PriorityLow
}

// Label returns the display bucket label (P1..P4)
func (p Priority) Label() string {
	return "P" + strconv.Itoa(int(p))
}

// ParsePriority parses a raw priority value. The value may be a bare
// digit or a display form like "1 - Critical"; only the leading digit
// run matters. Anything absent or unparseable maps to the lowest
// severity so counts stay total-preserving.
func ParsePriority(raw string) Priority {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return PriorityLow
	}
	p := Priority(n)
	if !p.IsValid() {
		return PriorityLow
	}
	return p
}

// Priorities lists all priorities in severity order
func Priorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityModerate, PriorityLow}
}
