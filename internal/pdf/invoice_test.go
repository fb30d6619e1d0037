package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

func TestRenderInvoiceProducesPDF(t *testing.T) {
	due := time.Now().AddDate(0, 0, 30)
	out, err := RenderInvoice(InvoiceData{
		Invoice: &models.Invoice{
			InvoiceNumber: "INV-POR-1-001",
			IssueDate:     time.Now(),
			DueDate:       &due,
			InvoiceType:   models.InvoiceInitial,
			Items: []models.InvoiceItem{
				{Description: "Initial Payment - Portfolio Site", Quantity: 1, UnitPrice: 500, Total: 500},
			},
			Subtotal:    500,
			TotalAmount: 500,
			BalanceDue:  500,
			Status:      models.InvoicePending,
			Notes:       "Thanks!",
		},
		ProjectName: "Portfolio Site",
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderInvoiceWithoutDueDate(t *testing.T) {
	out, err := RenderInvoice(InvoiceData{
		Invoice: &models.Invoice{
			InvoiceNumber: "INV-POR-2-002",
			IssueDate:     time.Now(),
			Items:         []models.InvoiceItem{{Description: "Work", Quantity: 1, UnitPrice: 100, Total: 100}},
			Subtotal:      100,
			TotalAmount:   100,
			BalanceDue:    100,
			Status:        models.InvoicePending,
		},
		ProjectName: "Portfolio Site",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
