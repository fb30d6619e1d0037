package billing

import (
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

func newRequested(budget float64) *models.ProjectRequest {
	return &models.ProjectRequest{
		ProjectName: "Portfolio Site",
		Budget:      budget,
		Duration:    "4 weeks",
		Status:      models.StatusRequested,
	}
}

func newAccepted(t *testing.T, budget float64) *models.ProjectRequest {
	t.Helper()
	p := newRequested(budget)
	require.NoError(t, Accept(p, AcceptInput{FinalBudget: budget}))
	return p
}

func TestAcceptInitializesPayment(t *testing.T) {
	p := newRequested(1000)

	require.NoError(t, Accept(p, AcceptInput{FinalBudget: 1200}))

	assert.Equal(t, models.StatusAccepted, p.Status)
	assert.Equal(t, 1200.0, p.Payment.FinalBudget)
	assert.Equal(t, 0.0, p.Payment.PaidAmount)
	assert.Equal(t, 1200.0, p.Payment.DueAmount)
	assert.False(t, p.Payment.FullyPaid)
	assert.NotNil(t, p.Timeline.StartDate)
}

func TestAcceptFallsBackToRequestedBudget(t *testing.T) {
	p := newRequested(1000)
	require.NoError(t, Accept(p, AcceptInput{}))
	assert.Equal(t, 1000.0, p.Payment.FinalBudget)
}

func TestAcceptWithInitialDeposit(t *testing.T) {
	p := newRequested(1000)

	require.NoError(t, Accept(p, AcceptInput{InitialPayment: true}))

	assert.True(t, p.Payment.InitialPayment)
	assert.Equal(t, 500.0, p.Payment.PaidAmount)
	assert.Equal(t, 500.0, p.Payment.DueAmount)
	assert.False(t, p.Payment.FullyPaid)
	require.Len(t, p.Payment.PaymentHistory, 1)
	assert.True(t, p.Payment.PaymentHistory[0].IsInitialPayment)
}

func TestAcceptWithInvoiceAndDeposit(t *testing.T) {
	p := newRequested(1000)

	require.NoError(t, Accept(p, AcceptInput{InitialPayment: true, CreateInvoice: true}))

	require.Len(t, p.Invoices, 1)
	inv := p.Invoices[0]
	assert.Equal(t, models.InvoiceInitial, inv.InvoiceType)
	assert.Equal(t, 500.0, inv.Subtotal)
	assert.Equal(t, 500.0, inv.AmountPaid)
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assert.Equal(t, 500.0, p.Payment.PaidAmount)
}

func TestNegotiateDefaultsToRequestedTerms(t *testing.T) {
	p := newRequested(1000)
	Negotiate(p, 0, "", "let's talk")

	assert.Equal(t, models.StatusNegotiable, p.Status)
	require.NotNil(t, p.Negotiation)
	assert.Equal(t, 1000.0, p.Negotiation.ProposedBudget)
	assert.Equal(t, "4 weeks", p.Negotiation.ProposedDuration)
	assert.Equal(t, "let's talk", p.Negotiation.AdminNotes)
}

func TestRejectRequiresReason(t *testing.T) {
	p := newRequested(1000)
	assert.ErrorIs(t, Reject(p, "  "), ErrEmptyReason)
	assert.Equal(t, models.StatusRequested, p.Status)
	assert.Nil(t, p.Rejection)

	require.NoError(t, Reject(p, "out of scope"))
	assert.Equal(t, models.StatusRejected, p.Status)
	require.NotNil(t, p.Rejection)
	assert.Equal(t, "out of scope", p.Rejection.Reason)
}

func TestAddPayment(t *testing.T) {
	p := newAccepted(t, 1000)

	require.NoError(t, AddPayment(p, 400, "milestone 1", "bank"))
	assert.Equal(t, 400.0, p.Payment.PaidAmount)
	assert.Equal(t, 600.0, p.Payment.DueAmount)
	assert.False(t, p.Payment.FullyPaid)

	require.NoError(t, AddPayment(p, 600, "final", "bank"))
	assert.Equal(t, 0.0, p.Payment.DueAmount)
	assert.True(t, p.Payment.FullyPaid)
	assert.Len(t, p.Payment.PaymentHistory, 2)
}

func TestAddPaymentValidation(t *testing.T) {
	assert.ErrorIs(t, AddPayment(newRequested(1000), 100, "", ""), ErrNotAccepted)

	p := newAccepted(t, 1000)
	assert.ErrorIs(t, AddPayment(p, 0, "", ""), ErrInvalidAmount)
	assert.ErrorIs(t, AddPayment(p, -5, "", ""), ErrInvalidAmount)
}

func TestAddCommit(t *testing.T) {
	p := newAccepted(t, 1000)

	require.NoError(t, AddCommit(p, 1, "scaffolding done", []string{"setup"}))
	require.Len(t, p.Commits, 1)
	assert.Equal(t, 1, p.Commits[0].WeekNumber)

	err := AddCommit(p, 1, "again", nil)
	assert.ErrorIs(t, err, ErrDuplicateWeek)

	assert.ErrorIs(t, AddCommit(p, 2, "   ", nil), ErrEmptyDescription)
	assert.ErrorIs(t, AddCommit(newRequested(1000), 1, "x", nil), ErrNotAccepted)
}

func TestBuildInvoiceTemplates(t *testing.T) {
	cases := []struct {
		invType  models.InvoiceType
		subtotal float64
	}{
		{models.InvoiceInitial, 500},
		{models.InvoiceMilestone, 250},
		{models.InvoiceStandard, 1000},
	}
	for _, tc := range cases {
		p := newAccepted(t, 1000)
		inv, err := BuildInvoice(p, InvoiceInput{Type: tc.invType})
		require.NoError(t, err, tc.invType)
		assert.Equal(t, tc.subtotal, inv.Subtotal, tc.invType)
		assert.Equal(t, tc.subtotal, inv.TotalAmount, tc.invType)
		assert.Equal(t, models.InvoicePending, inv.Status)
		require.Len(t, inv.Items, 1)
		assert.Equal(t, 1, inv.Items[0].Quantity)
	}
}

func TestBuildFinalInvoiceUsesRemainingDue(t *testing.T) {
	p := newAccepted(t, 1000)
	require.NoError(t, AddPayment(p, 700, "", ""))

	inv, err := BuildInvoice(p, InvoiceInput{Type: models.InvoiceFinal})
	require.NoError(t, err)
	assert.Equal(t, 300.0, inv.Subtotal)
}

func TestBuildInvoiceTax(t *testing.T) {
	p := newAccepted(t, 1000)

	inv, err := BuildInvoice(p, InvoiceInput{Type: models.InvoiceStandard, TaxRate: 10})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, inv.Subtotal)
	assert.Equal(t, 100.0, inv.Tax)
	assert.Equal(t, 1100.0, inv.TotalAmount)
	assert.Equal(t, 1100.0, inv.BalanceDue)
}

func TestBuildInvoiceCustomItems(t *testing.T) {
	p := newAccepted(t, 1000)

	inv, err := BuildInvoice(p, InvoiceInput{
		Items: []models.InvoiceItem{
			{Description: "Design", Quantity: 2, UnitPrice: 150},
			{Description: "Hosting setup", UnitPrice: 50}, // quantity defaults to 1
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStandard, inv.InvoiceType)
	assert.Equal(t, 350.0, inv.Subtotal)
	assert.Equal(t, 300.0, inv.Items[0].Total)
	assert.Equal(t, 1, inv.Items[1].Quantity)
}

func TestBuildInvoiceGuards(t *testing.T) {
	_, err := BuildInvoice(newRequested(1000), InvoiceInput{})
	assert.ErrorIs(t, err, ErrNotAccepted)

	p := newAccepted(t, 1000)
	p.Payment.FinalBudget = 0
	_, err = BuildInvoice(p, InvoiceInput{})
	assert.ErrorIs(t, err, ErrNoPaymentSetup)

	deposited := newRequested(1000)
	require.NoError(t, Accept(deposited, AcceptInput{InitialPayment: true}))
	_, err = BuildInvoice(deposited, InvoiceInput{Type: models.InvoiceInitial})
	assert.ErrorIs(t, err, ErrInitialAlreadyPaid)

	settled := newAccepted(t, 1000)
	require.NoError(t, AddPayment(settled, 1000, "", ""))
	_, err = BuildInvoice(settled, InvoiceInput{Type: models.InvoiceFinal})
	assert.ErrorIs(t, err, ErrNoBalanceDue)
}

func TestBuildInvoiceDefaultsDueDate(t *testing.T) {
	p := newAccepted(t, 1000)
	inv, err := BuildInvoice(p, InvoiceInput{})
	require.NoError(t, err)
	require.NotNil(t, inv.DueDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *inv.DueDate, time.Minute)
}

func TestPayInvoiceMirrorsIntoProject(t *testing.T) {
	p := newAccepted(t, 1000)
	inv, err := BuildInvoice(p, InvoiceInput{Type: models.InvoiceInitial})
	require.NoError(t, err)

	paid, err := PayInvoice(p, inv.InvoiceNumber, 200, "bank", "", false)
	require.NoError(t, err)
	assert.Equal(t, 200.0, paid.AmountPaid)
	assert.Equal(t, 300.0, paid.BalanceDue)
	assert.Equal(t, models.InvoicePartial, paid.Status)
	assert.Equal(t, 200.0, p.Payment.PaidAmount)
	require.Len(t, p.Payment.PaymentHistory, 1)
	assert.Equal(t, inv.InvoiceNumber, p.Payment.PaymentHistory[0].InvoiceNumber)
}

func TestPayInvoiceZeroAmountSettlesBalance(t *testing.T) {
	p := newAccepted(t, 1000)
	inv, err := BuildInvoice(p, InvoiceInput{Type: models.InvoiceStandard})
	require.NoError(t, err)

	paid, err := PayInvoice(p, inv.InvoiceNumber, 0, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, paid.Status)
	assert.True(t, p.Payment.FullyPaid)
	require.NotNil(t, p.Timeline.CompletedDate)
}

func TestPayInvoiceUnknownNumber(t *testing.T) {
	p := newAccepted(t, 1000)
	_, err := PayInvoice(p, "INV-NOPE", 10, "", "", false)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestGenerateInvoiceNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^INV-[A-Z0-9]{1,3}-\d+-\d{3}$`)

	assert.Regexp(t, re, GenerateInvoiceNumber("Portfolio Site"))
	assert.True(t, len(GenerateInvoiceNumber("x")) > 0)

	// Empty name still yields a usable prefix.
	assert.Contains(t, GenerateInvoiceNumber(""), "INV-PRJ-")
}

func TestGenerateInvoiceNumberNonASCIIName(t *testing.T) {
	n := GenerateInvoiceNumber("Héllo Wörld")
	assert.True(t, utf8.ValidString(n))
	assert.True(t, strings.HasPrefix(n, "INV-HÉL-"))
}

func TestQuickOptionsFollowPaymentState(t *testing.T) {
	// Fresh accepted project: initial + custom.
	p := newAccepted(t, 1000)
	opts := QuickOptions(p)
	types := make([]models.InvoiceType, 0, len(opts))
	for _, o := range opts {
		types = append(types, o.Type)
	}
	assert.Contains(t, types, models.InvoiceInitial)
	assert.NotContains(t, types, models.InvoiceFinal)
	assert.Equal(t, models.InvoiceType("custom"), opts[len(opts)-1].Type)

	// After the deposit: milestone + final, no initial.
	deposited := newRequested(1000)
	require.NoError(t, Accept(deposited, AcceptInput{InitialPayment: true}))
	types = types[:0]
	for _, o := range QuickOptions(deposited) {
		types = append(types, o.Type)
	}
	assert.NotContains(t, types, models.InvoiceInitial)
	assert.Contains(t, types, models.InvoiceMilestone)
	assert.Contains(t, types, models.InvoiceFinal)
}
