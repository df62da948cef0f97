package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents whether a bill was settled at creation time
type PaymentStatus int

const (
	PaymentStatusUnpaid PaymentStatus = 0
	PaymentStatusPaid   PaymentStatus = 1
)

func (s PaymentStatus) String() string {
	if s == PaymentStatusPaid {
		return "paid"
	}
	return "unpaid"
}

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "paid":
		*s = PaymentStatusPaid
	case "unpaid":
		*s = PaymentStatusUnpaid
	}
	return nil
}

// ParsePaymentStatus maps a status name to its value, for query filters
func ParsePaymentStatus(str string) (PaymentStatus, bool) {
	switch str {
	case "paid":
		return PaymentStatusPaid, true
	case "unpaid":
		return PaymentStatusUnpaid, true
	}
	return PaymentStatusUnpaid, false
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
