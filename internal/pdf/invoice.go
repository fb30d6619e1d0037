// Package pdf renders invoices as downloadable PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

// InvoiceData bundles everything the invoice document shows.
type InvoiceData struct {
	Invoice     *models.Invoice
	ProjectName string
	ClientName  string
	ClientEmail string
}

const (
	issuerName  = "Aakash Portfolio Studio"
	issuerEmail = "billing@aakash.dev"
)

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// RenderInvoice writes the invoice as a single-page A4 PDF.
func RenderInvoice(data InvoiceData) ([]byte, error) {
	inv := data.Invoice
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Invoice "+inv.InvoiceNumber, false)
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 22)
	doc.SetTextColor(30, 41, 59)
	doc.Cell(0, 12, "INVOICE")
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 116, 139)
	doc.Cell(0, 5, issuerName)
	doc.Ln(5)
	doc.Cell(0, 5, issuerEmail)
	doc.Ln(12)

	// Invoice metadata on the left, billed-to on the right.
	top := doc.GetY()
	doc.SetTextColor(30, 41, 59)
	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(40, 6, "Invoice Number:")
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(60, 6, inv.InvoiceNumber)
	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(40, 6, "Issue Date:")
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(60, 6, inv.IssueDate.Format("Jan 2, 2006"))
	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(40, 6, "Due Date:")
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(60, 6, dateOrDash(inv.DueDate))
	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(40, 6, "Status:")
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(60, 6, string(inv.Status))

	doc.SetXY(120, top)
	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(0, 6, "Billed To:")
	doc.SetXY(120, top+6)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, data.ClientName)
	doc.SetXY(120, top+12)
	doc.Cell(0, 6, data.ClientEmail)
	doc.SetXY(120, top+18)
	doc.Cell(0, 6, "Project: "+data.ProjectName)

	doc.SetY(top + 32)

	// Items table
	doc.SetFillColor(241, 245, 249)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	doc.CellFormat(40, 8, "Unit Price", "1", 0, "R", true, 0, "")
	doc.CellFormat(40, 8, "Total", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		doc.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		doc.CellFormat(40, 8, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(40, 8, money(item.Total), "1", 1, "R", false, 0, "")
	}

	// Totals
	doc.Ln(4)
	totalsRow := func(label, value string, bold bool) {
		if bold {
			doc.SetFont("Helvetica", "B", 10)
		} else {
			doc.SetFont("Helvetica", "", 10)
		}
		doc.CellFormat(150, 7, label, "", 0, "R", false, 0, "")
		doc.CellFormat(40, 7, value, "", 1, "R", false, 0, "")
	}
	totalsRow("Subtotal:", money(inv.Subtotal), false)
	totalsRow("Tax:", money(inv.Tax), false)
	totalsRow("Total:", money(inv.TotalAmount), true)
	totalsRow("Amount Paid:", money(inv.AmountPaid), false)
	totalsRow("Balance Due:", money(inv.BalanceDue), true)

	if inv.PaymentMethod != "" {
		doc.Ln(6)
		doc.SetFont("Helvetica", "", 10)
		doc.Cell(0, 6, "Payment Method: "+inv.PaymentMethod)
		doc.Ln(6)
	}
	if inv.Notes != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "I", 9)
		doc.SetTextColor(100, 116, 139)
		doc.MultiCell(0, 5, "Notes: "+inv.Notes, "", "L", false)
	}

	doc.SetY(-30)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(148, 163, 184)
	doc.CellFormat(0, 6, "Thank you for your business.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
