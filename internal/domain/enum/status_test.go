package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferStatusTransitions(t *testing.T) {
	allowed := map[TransferStatus][]TransferStatus{
		TransferStatusPending:  {TransferStatusAccepted, TransferStatusRejected},
		TransferStatusAccepted: {TransferStatusReceived, TransferStatusCanceled},
		TransferStatusReceived: {},
		TransferStatusRejected: {},
		TransferStatusCanceled: {},
	}

	all := []TransferStatus{
		TransferStatusPending, TransferStatusAccepted, TransferStatusReceived,
		TransferStatusCanceled, TransferStatusRejected,
	}
	for from, targets := range allowed {
		ok := make(map[TransferStatus]bool, len(targets))
		for _, to := range targets {
			ok[to] = true
		}
		for _, to := range all {
			assert.Equal(t, ok[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTransferStatusTerminal(t *testing.T) {
	assert.False(t, TransferStatusPending.IsTerminal())
	assert.False(t, TransferStatusAccepted.IsTerminal())
	assert.True(t, TransferStatusReceived.IsTerminal())
	assert.True(t, TransferStatusRejected.IsTerminal())
	assert.True(t, TransferStatusCanceled.IsTerminal())
}

func TestParseTransferStatus(t *testing.T) {
	for _, s := range []TransferStatus{
		TransferStatusPending, TransferStatusAccepted, TransferStatusReceived,
		TransferStatusCanceled, TransferStatusRejected,
	} {
		parsed, ok := ParseTransferStatus(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	_, ok := ParseTransferStatus("Shipped")
	assert.False(t, ok)
}

func TestAssignmentStatusTransitions(t *testing.T) {
	allowed := map[AssignmentStatus][]AssignmentStatus{
		AssignmentStatusProcess:    {AssignmentStatusDispatched, AssignmentStatusCanceled},
		AssignmentStatusDispatched: {AssignmentStatusDelivered, AssignmentStatusCanceled},
		AssignmentStatusDelivered:  {},
		AssignmentStatusCanceled:   {},
	}

	all := []AssignmentStatus{
		AssignmentStatusProcess, AssignmentStatusDispatched,
		AssignmentStatusDelivered, AssignmentStatusCanceled,
	}
	for from, targets := range allowed {
		ok := make(map[AssignmentStatus]bool, len(targets))
		for _, to := range targets {
			ok[to] = true
		}
		for _, to := range all {
			assert.Equal(t, ok[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestParseAssignmentStatus(t *testing.T) {
	for _, s := range []AssignmentStatus{
		AssignmentStatusProcess, AssignmentStatusDispatched,
		AssignmentStatusDelivered, AssignmentStatusCanceled,
	} {
		parsed, ok := ParseAssignmentStatus(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	_, ok := ParseAssignmentStatus("Returned")
	assert.False(t, ok)
}

func TestParsePaymentStatus(t *testing.T) {
	paid, ok := ParsePaymentStatus("Paid")
	assert.True(t, ok)
	assert.Equal(t, PaymentStatusPaid, paid)

	unpaid, ok := ParsePaymentStatus("Unpaid")
	assert.True(t, ok)
	assert.Equal(t, PaymentStatusUnpaid, unpaid)

	_, ok = ParsePaymentStatus("Partial")
	assert.False(t, ok)
}
