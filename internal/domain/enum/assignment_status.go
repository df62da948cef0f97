package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AssignmentStatus represents the lifecycle state of a warehouse-to-store assignment
type AssignmentStatus int

const (
	AssignmentStatusProcess    AssignmentStatus = 0
	AssignmentStatusDispatched AssignmentStatus = 1
	AssignmentStatusDelivered  AssignmentStatus = 2
	AssignmentStatusCanceled   AssignmentStatus = 3
)

func (s AssignmentStatus) String() string {
	names := [...]string{"Process", "Dispatched", "Delivered", "Canceled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Unknown"
	}
	return names[s]
}

// IsValid checks if the status is a valid AssignmentStatus
func (s AssignmentStatus) IsValid() bool {
	return s >= AssignmentStatusProcess && s <= AssignmentStatusCanceled
}

// IsTerminal reports whether no further transitions are possible
func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentStatusDelivered || s == AssignmentStatusCanceled
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancel is allowed from Process or Dispatched, never after Delivered.
func (s AssignmentStatus) CanTransitionTo(target AssignmentStatus) bool {
	switch s {
	case AssignmentStatusProcess:
		return target == AssignmentStatusDispatched || target == AssignmentStatusCanceled
	case AssignmentStatusDispatched:
		return target == AssignmentStatusDelivered || target == AssignmentStatusCanceled
	}
	return false
}

func (s AssignmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AssignmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = AssignmentStatus(i)
		return nil
	}
	switch str {
	case "Process":
		*s = AssignmentStatusProcess
	case "Dispatched":
		*s = AssignmentStatusDispatched
	case "Delivered":
		*s = AssignmentStatusDelivered
	case "Canceled":
		*s = AssignmentStatusCanceled
	}
	return nil
}

// ParseAssignmentStatus maps a status name to its value, for query filters
func ParseAssignmentStatus(str string) (AssignmentStatus, bool) {
	switch str {
	case "Process":
		return AssignmentStatusProcess, true
	case "Dispatched":
		return AssignmentStatusDispatched, true
	case "Delivered":
		return AssignmentStatusDelivered, true
	case "Canceled":
		return AssignmentStatusCanceled, true
	}
	return AssignmentStatusProcess, false
}

func (s AssignmentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *AssignmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AssignmentStatusProcess
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = AssignmentStatus(v)
	case int:
		*s = AssignmentStatus(v)
	}
	return nil
}
