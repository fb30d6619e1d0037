package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/pdf"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/services/billing"
)

// InvoiceHandler serves invoice issuing, payment and document download.
// Admins reach any project; clients only their own.
type InvoiceHandler struct {
	DB      *gorm.DB
	TaxRate float64
}

func NewInvoiceHandler(gdb *gorm.DB, taxRate float64) *InvoiceHandler {
	return &InvoiceHandler{DB: gdb, TaxRate: taxRate}
}

// loadScoped fetches the project, enforcing ownership for clients.
func (h *InvoiceHandler) loadScoped(c *fiber.Ctx, param string) (*models.ProjectRequest, error) {
	pid, err := uuid.Parse(c.Params(param))
	if err != nil {
		return nil, badRequest(c, "Invalid project ID")
	}

	var p models.ProjectRequest
	if err := h.DB.Preload("User").First(&p, "id = ?", pid).Error; err != nil {
		return nil, notFound(c, "Project")
	}

	if currentRole(c) != models.UpdatedByAdmin {
		uid, err := currentUserID(c)
		if err != nil || p.UserID != uid {
			return nil, forbidden(c, "Access denied")
		}
	}
	return &p, nil
}

type CreateInvoiceReq struct {
	InvoiceType   models.InvoiceType   `json:"invoice_type"`
	Items         []models.InvoiceItem `json:"items"`
	DueDate       *time.Time           `json:"due_date"`
	TaxRate       *float64             `json:"tax_rate"`
	PaymentMethod string               `json:"payment_method"`
	Notes         string               `json:"notes"`
	Version       *int64               `json:"version"`
}

func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	p, ferr := h.loadScoped(c, "projectId")
	if p == nil {
		return ferr
	}

	var req CreateInvoiceReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := checkVersion(p, req.Version); err != nil {
		return conflict(c)
	}

	taxRate := h.TaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	inv, err := billing.BuildInvoice(p, billing.InvoiceInput{
		Type:          req.InvoiceType,
		Items:         req.Items,
		DueDate:       req.DueDate,
		TaxRate:       taxRate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrNotAccepted):
			return badRequest(c, "Can only create invoices for accepted projects")
		case errors.Is(err, billing.ErrNoPaymentSetup):
			return badRequest(c, "Project payment details not configured")
		case errors.Is(err, billing.ErrInitialAlreadyPaid):
			return badRequest(c, "Initial payment already made for this project")
		case errors.Is(err, billing.ErrNoBalanceDue):
			return badRequest(c, "No balance due for final payment")
		case errors.Is(err, billing.ErrDuplicateInvoice):
			return conflict(c)
		default:
			return badRequest(c, err.Error())
		}
	}

	if err := saveProject(h.DB, p); err != nil {
		if err == ErrStaleProject {
			return conflict(c)
		}
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Invoice created successfully",
		"data":    inv,
	})
}

// Summary reports the project's payment position alongside its invoices.
func (h *InvoiceHandler) Summary(c *fiber.Ctx) error {
	p, ferr := h.loadScoped(c, "projectId")
	if p == nil {
		return ferr
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"projectName":     p.ProjectName,
			"payment":         p.Payment,
			"paymentProgress": p.PaymentProgress(),
			"timeline":        p.Timeline,
			"invoices":        p.Invoices,
			"invoiceCount":    len(p.Invoices),
		},
	})
}

func (h *InvoiceHandler) ProjectInvoices(c *fiber.Ctx) error {
	p, ferr := h.loadScoped(c, "projectId")
	if p == nil {
		return ferr
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"projectName": p.ProjectName,
			"invoices":    p.Invoices,
		},
	})
}

// QuickOptions suggests which invoice templates make sense right now.
func (h *InvoiceHandler) QuickOptions(c *fiber.Ctx) error {
	p, ferr := h.loadScoped(c, "projectId")
	if p == nil {
		return ferr
	}
	if p.Status != models.StatusAccepted {
		return badRequest(c, "Can only create invoices for accepted projects")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"payment": p.Payment,
			"options": billing.QuickOptions(p),
		},
	})
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	p, ferr := h.loadScoped(c, "projectId")
	if p == nil {
		return ferr
	}

	inv := p.FindInvoice(c.Params("invoiceNumber"))
	if inv == nil {
		return notFound(c, "Invoice")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"invoice":     inv,
			"projectName": p.ProjectName,
			"client":      p.User,
		},
	})
}

type MarkPaidReq struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Note          string  `json:"note"`
	Version       *int64  `json:"version"`
}

// MarkPaid records a payment against an invoice. Amount zero settles the
// remaining balance.
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	p, ferr := h.loadScoped(c, "projectId")
	if p == nil {
		return ferr
	}

	var req MarkPaidReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := checkVersion(p, req.Version); err != nil {
		return conflict(c)
	}

	isInitial := false
	if inv := p.FindInvoice(c.Params("invoiceNumber")); inv != nil {
		isInitial = inv.InvoiceType == models.InvoiceInitial
	}

	inv, err := billing.PayInvoice(p, c.Params("invoiceNumber"), req.Amount, req.PaymentMethod, req.Note, isInitial)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvoiceNotFound):
			return notFound(c, "Invoice")
		case errors.Is(err, billing.ErrInvalidAmount):
			return badRequest(c, "Valid payment amount is required")
		default:
			return badRequest(c, err.Error())
		}
	}
	p.MarkUpdatedBy(models.UpdatedByAdmin)

	if err := saveProject(h.DB, p); err != nil {
		if err == ErrStaleProject {
			return conflict(c)
		}
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment recorded successfully",
		"data": fiber.Map{
			"invoice": inv,
			"payment": p.Payment,
		},
	})
}

// Download streams the invoice as a PDF attachment.
func (h *InvoiceHandler) Download(c *fiber.Ctx) error {
	p, ferr := h.loadScoped(c, "projectId")
	if p == nil {
		return ferr
	}

	inv := p.FindInvoice(c.Params("invoiceNumber"))
	if inv == nil {
		return notFound(c, "Invoice")
	}

	data := pdf.InvoiceData{Invoice: inv, ProjectName: p.ProjectName}
	if p.User != nil {
		data.ClientName = p.User.Name
		data.ClientEmail = p.User.Email
	}

	out, err := pdf.RenderInvoice(data)
	if err != nil {
		return serverError(c)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+inv.InvoiceNumber+`.pdf"`)
	return c.Send(out)
}

// invoiceRow flattens an embedded invoice with its project context for the
// admin overview.
type invoiceRow struct {
	models.Invoice
	ProjectID   uuid.UUID `json:"project_id"`
	ProjectName string    `json:"project_name"`
	ClientName  string    `json:"client_name,omitempty"`
	ClientEmail string    `json:"client_email,omitempty"`
}

// AllInvoices lists every invoice across projects with optional status and
// type filters, plus aggregate totals.
func (h *InvoiceHandler) AllInvoices(c *fiber.Ctx) error {
	var projects []models.ProjectRequest
	if err := h.DB.Preload("User").Where("status = ?", models.StatusAccepted).Find(&projects).Error; err != nil {
		return serverError(c)
	}

	statusFilter := c.Query("status")
	typeFilter := c.Query("type")

	rows := []invoiceRow{}
	var totalInvoiced, totalPaid, totalOutstanding float64
	counts := map[models.InvoiceStatus]int{}

	for _, p := range projects {
		for _, inv := range p.Invoices {
			if statusFilter != "" && string(inv.Status) != statusFilter {
				continue
			}
			if typeFilter != "" && string(inv.InvoiceType) != typeFilter {
				continue
			}
			row := invoiceRow{Invoice: inv, ProjectID: p.ID, ProjectName: p.ProjectName}
			if p.User != nil {
				row.ClientName = p.User.Name
				row.ClientEmail = p.User.Email
			}
			rows = append(rows, row)

			totalInvoiced += inv.TotalAmount
			totalPaid += inv.AmountPaid
			if inv.Status != models.InvoiceCancelled {
				totalOutstanding += inv.BalanceDue
			}
			counts[inv.Status]++
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"invoices": rows,
			"summary": fiber.Map{
				"totalInvoices":    len(rows),
				"totalInvoiced":    totalInvoiced,
				"totalPaid":        totalPaid,
				"totalOutstanding": totalOutstanding,
				"byStatus":         counts,
			},
		},
	})
}
