package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecomputesDueAndFullyPaid(t *testing.T) {
	p := &ProjectRequest{
		Status: StatusAccepted,
		Payment: Payment{
			FinalBudget: 1000,
			PaidAmount:  400,
		},
	}

	p.Normalize(time.Now())
	assert.Equal(t, 600.0, p.Payment.DueAmount)
	assert.False(t, p.Payment.FullyPaid)

	p.Payment.PaidAmount = 1000
	p.Normalize(time.Now())
	assert.Equal(t, 0.0, p.Payment.DueAmount)
	assert.True(t, p.Payment.FullyPaid)
}

func TestNormalizeDerivesInvoiceStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	p := &ProjectRequest{
		Payment: Payment{FinalBudget: 1000},
		Invoices: []Invoice{
			{InvoiceNumber: "A", TotalAmount: 100, AmountPaid: 0, DueDate: &future},
			{InvoiceNumber: "B", TotalAmount: 100, AmountPaid: 40, DueDate: &future},
			{InvoiceNumber: "C", TotalAmount: 100, AmountPaid: 100},
			{InvoiceNumber: "D", TotalAmount: 100, AmountPaid: 0, DueDate: &past},
			{InvoiceNumber: "E", TotalAmount: 100, AmountPaid: 0, Status: InvoiceCancelled},
		},
	}
	p.Normalize(now)

	assert.Equal(t, InvoicePending, p.Invoices[0].Status)
	assert.Equal(t, 60.0, p.Invoices[1].BalanceDue)
	assert.Equal(t, InvoicePartial, p.Invoices[1].Status)
	assert.Equal(t, InvoicePaid, p.Invoices[2].Status)
	assert.Equal(t, InvoiceOverdue, p.Invoices[3].Status)
	// Cancelled invoices never get re-derived.
	assert.Equal(t, InvoiceCancelled, p.Invoices[4].Status)
}

func TestPaidInvoiceNeverOverdue(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	p := &ProjectRequest{
		Invoices: []Invoice{
			{InvoiceNumber: "X", TotalAmount: 100, AmountPaid: 100, DueDate: &past},
		},
	}
	p.Normalize(time.Now())
	assert.Equal(t, InvoicePaid, p.Invoices[0].Status)
}

func TestUnreadFlagProtocol(t *testing.T) {
	p := &ProjectRequest{}

	p.MarkUpdatedBy(UpdatedByAdmin)
	assert.True(t, p.HasUnreadUpdate)
	assert.Equal(t, UpdatedByAdmin, p.LastUpdatedBy)

	// The writer re-reading their own update clears nothing.
	assert.False(t, p.ClearUnreadFor(UpdatedByAdmin))
	assert.True(t, p.HasUnreadUpdate)

	// The counterpart reading it does.
	assert.True(t, p.ClearUnreadFor(UpdatedByClient))
	assert.False(t, p.HasUnreadUpdate)

	// Clearing twice is a no-op.
	assert.False(t, p.ClearUnreadFor(UpdatedByClient))
}

func TestFindInvoiceReturnsMutablePointer(t *testing.T) {
	p := &ProjectRequest{
		Invoices: []Invoice{{InvoiceNumber: "INV-1", TotalAmount: 50}},
	}

	inv := p.FindInvoice("INV-1")
	require.NotNil(t, inv)
	inv.AmountPaid = 50
	assert.Equal(t, 50.0, p.Invoices[0].AmountPaid)

	assert.Nil(t, p.FindInvoice("INV-missing"))
}

func TestPaymentProgress(t *testing.T) {
	p := &ProjectRequest{Payment: Payment{FinalBudget: 1000, PaidAmount: 250}}
	assert.Equal(t, 25, p.PaymentProgress())

	p.Payment.FinalBudget = 0
	assert.Equal(t, 0, p.PaymentProgress())
}

func TestHasCommitForWeek(t *testing.T) {
	p := &ProjectRequest{Commits: []Commit{{WeekNumber: 2}}}
	assert.True(t, p.HasCommitForWeek(2))
	assert.False(t, p.HasCommitForWeek(3))
}
