package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransferStatus represents the lifecycle state of an inter-store transfer request
type TransferStatus int

const (
	TransferStatusPending  TransferStatus = 0
	TransferStatusAccepted TransferStatus = 1
	TransferStatusReceived TransferStatus = 2
	TransferStatusCanceled TransferStatus = 3
	TransferStatusRejected TransferStatus = 4
)

func (s TransferStatus) String() string {
	names := [...]string{"Pending", "Accepted", "Received", "Canceled", "Rejected"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Unknown"
	}
	return names[s]
}

// IsValid checks if the status is a valid TransferStatus
func (s TransferStatus) IsValid() bool {
	return s >= TransferStatusPending && s <= TransferStatusRejected
}

// IsTerminal reports whether no further transitions are possible
func (s TransferStatus) IsTerminal() bool {
	return s == TransferStatusReceived || s == TransferStatusCanceled || s == TransferStatusRejected
}

// CanTransitionTo checks if the status can transition to the target status.
// Pending may be accepted or rejected; Accepted may be received or canceled.
// Received, Canceled and Rejected are terminal.
func (s TransferStatus) CanTransitionTo(target TransferStatus) bool {
	switch s {
	case TransferStatusPending:
		return target == TransferStatusAccepted || target == TransferStatusRejected
	case TransferStatusAccepted:
		return target == TransferStatusReceived || target == TransferStatusCanceled
	}
	return false
}

func (s TransferStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransferStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransferStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = TransferStatusPending
	case "Accepted":
		*s = TransferStatusAccepted
	case "Received":
		*s = TransferStatusReceived
	case "Canceled":
		*s = TransferStatusCanceled
	case "Rejected":
		*s = TransferStatusRejected
	}
	return nil
}

// ParseTransferStatus maps a status name to its value, for query filters
func ParseTransferStatus(str string) (TransferStatus, bool) {
	switch str {
	case "Pending":
		return TransferStatusPending, true
	case "Accepted":
		return TransferStatusAccepted, true
	case "Received":
		return TransferStatusReceived, true
	case "Canceled":
		return TransferStatusCanceled, true
	case "Rejected":
		return TransferStatusRejected, true
	}
	return TransferStatusPending, false
}

func (s TransferStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransferStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransferStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransferStatus(v)
	case int:
		*s = TransferStatus(v)
	}
	return nil
}
