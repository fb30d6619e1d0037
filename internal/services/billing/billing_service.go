// Package billing owns every transition of a project's payment, invoice and
// progress state. Handlers load the project document, call into here, then
// persist; nothing outside this package recomputes money fields.
package billing

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

var (
	ErrNotAccepted        = errors.New("project is not accepted")
	ErrInvalidAmount      = errors.New("payment amount must be greater than zero")
	ErrEmptyReason        = errors.New("rejection reason is required")
	ErrEmptyDescription   = errors.New("commit description is required")
	ErrDuplicateWeek      = errors.New("week already has a progress update")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrDuplicateInvoice   = errors.New("invoice number already exists on this project")
	ErrInitialAlreadyPaid = errors.New("initial payment already made for this project")
	ErrNoBalanceDue       = errors.New("no balance due for final payment")
	ErrNoPaymentSetup     = errors.New("project payment details not configured")
)

type AcceptInput struct {
	FinalBudget    float64
	StartDate      *time.Time
	Deadline       *time.Time
	InitialPayment bool
	CreateInvoice  bool
	TaxRate        float64
	PaymentMethod  string
}

// Accept moves a request into the accepted state and initializes payment
// tracking. When asked, it also seeds the customary 50% initial payment
// and/or an initial invoice.
func Accept(p *models.ProjectRequest, in AcceptInput) error {
	budget := in.FinalBudget
	if budget == 0 {
		budget = p.Budget
	}

	p.Status = models.StatusAccepted
	p.Payment = models.Payment{
		FinalBudget:    budget,
		PaidAmount:     0,
		DueAmount:      budget,
		PaymentHistory: []models.PaymentRecord{},
	}
	start := in.StartDate
	if start == nil {
		now := time.Now()
		start = &now
	}
	p.Timeline = models.Timeline{StartDate: start, Deadline: in.Deadline}

	var inv *models.Invoice
	if in.CreateInvoice {
		created, err := BuildInvoice(p, InvoiceInput{
			Type:          models.InvoiceInitial,
			TaxRate:       in.TaxRate,
			PaymentMethod: in.PaymentMethod,
		})
		if err != nil {
			return err
		}
		inv = created
	}

	if in.InitialPayment {
		deposit := budget * 0.5
		if inv != nil {
			if _, err := PayInvoice(p, inv.InvoiceNumber, deposit, in.PaymentMethod, "Initial deposit", true); err != nil {
				return err
			}
		} else {
			p.Payment.InitialPayment = true
			p.Payment.PaymentHistory = append(p.Payment.PaymentHistory, models.PaymentRecord{
				Amount:           deposit,
				Date:             time.Now(),
				Note:             "Initial deposit",
				PaymentMethod:    in.PaymentMethod,
				IsInitialPayment: true,
			})
			p.Payment.PaidAmount += deposit
		}
	}

	p.Normalize(time.Now())
	return nil
}

func Negotiate(p *models.ProjectRequest, proposedBudget float64, proposedDuration, adminNotes string) {
	if proposedBudget == 0 {
		proposedBudget = p.Budget
	}
	if proposedDuration == "" {
		proposedDuration = p.Duration
	}
	p.Status = models.StatusNegotiable
	p.Negotiation = &models.Negotiation{
		ProposedBudget:   proposedBudget,
		ProposedDuration: proposedDuration,
		AdminNotes:       adminNotes,
		NegotiatedAt:     time.Now(),
	}
}

func Reject(p *models.ProjectRequest, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyReason
	}
	p.Status = models.StatusRejected
	p.Rejection = &models.Rejection{Reason: reason, RejectedAt: time.Now()}
	return nil
}

// AddPayment records a direct payment against an accepted project and
// recomputes the due amount.
func AddPayment(p *models.ProjectRequest, amount float64, note, method string) error {
	if p.Status != models.StatusAccepted {
		return ErrNotAccepted
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	p.Payment.PaymentHistory = append(p.Payment.PaymentHistory, models.PaymentRecord{
		Amount:        amount,
		Date:          time.Now(),
		Note:          note,
		PaymentMethod: method,
	})
	p.Payment.PaidAmount += amount
	p.Normalize(time.Now())
	return nil
}

// AddCommit appends a weekly progress update. Week numbers are unique per
// project.
func AddCommit(p *models.ProjectRequest, week int, description string, completedTasks []string) error {
	if p.Status != models.StatusAccepted {
		return ErrNotAccepted
	}
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if p.HasCommitForWeek(week) {
		return fmt.Errorf("week %d: %w", week, ErrDuplicateWeek)
	}
	if completedTasks == nil {
		completedTasks = []string{}
	}
	p.Commits = append(p.Commits, models.Commit{
		WeekNumber:     week,
		Description:    description,
		CompletedTasks: completedTasks,
		Date:           time.Now(),
	})
	return nil
}

type InvoiceInput struct {
	Type          models.InvoiceType
	Items         []models.InvoiceItem
	DueDate       *time.Time
	TaxRate       float64
	PaymentMethod string
	Notes         string
}

// BuildInvoice derives line items either from the caller or from one of the
// canned templates, computes totals and appends the invoice to the project.
func BuildInvoice(p *models.ProjectRequest, in InvoiceInput) (*models.Invoice, error) {
	if p.Status != models.StatusAccepted {
		return nil, ErrNotAccepted
	}
	if p.Payment.FinalBudget == 0 {
		return nil, ErrNoPaymentSetup
	}

	invoiceType := in.Type
	if invoiceType == "" {
		invoiceType = models.InvoiceStandard
	}

	items := in.Items
	var subtotal float64
	if len(items) == 0 {
		budget := p.Payment.FinalBudget
		switch invoiceType {
		case models.InvoiceInitial:
			if p.Payment.InitialPayment {
				return nil, ErrInitialAlreadyPaid
			}
			subtotal = budget * 0.5
		case models.InvoiceFinal:
			if p.Payment.DueAmount <= 0 {
				return nil, ErrNoBalanceDue
			}
			subtotal = p.Payment.DueAmount
		case models.InvoiceMilestone:
			subtotal = budget * 0.25
		default:
			subtotal = budget
		}
		items = []models.InvoiceItem{{
			Description: fmt.Sprintf("%s Payment - %s", titleCase(string(invoiceType)), p.ProjectName),
			Quantity:    1,
			UnitPrice:   subtotal,
			Total:       subtotal,
		}}
	} else {
		for i := range items {
			if items[i].Quantity == 0 {
				items[i].Quantity = 1
			}
			items[i].Total = float64(items[i].Quantity) * items[i].UnitPrice
			subtotal += items[i].Total
		}
	}

	tax := subtotal * (in.TaxRate / 100)
	total := subtotal + tax

	number := GenerateInvoiceNumber(p.ProjectName)
	if p.FindInvoice(number) != nil {
		return nil, ErrDuplicateInvoice
	}

	dueDate := in.DueDate
	if dueDate == nil {
		d := time.Now().AddDate(0, 0, 30)
		dueDate = &d
	}

	notes := in.Notes
	if notes == "" {
		notes = fmt.Sprintf("Invoice for %s - %s payment", p.ProjectName, invoiceType)
	}

	inv := models.Invoice{
		InvoiceNumber: number,
		IssueDate:     time.Now(),
		DueDate:       dueDate,
		InvoiceType:   invoiceType,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		TotalAmount:   total,
		AmountPaid:    0,
		BalanceDue:    total,
		Status:        models.InvoicePending,
		PaymentMethod: in.PaymentMethod,
		Notes:         notes,
		CreatedAt:     time.Now(),
	}
	p.Invoices = append(p.Invoices, inv)
	return p.FindInvoice(number), nil
}

// PayInvoice records a payment against one invoice and mirrors it into the
// project's payment totals and history. A zero amount means the remaining
// balance.
func PayInvoice(p *models.ProjectRequest, invoiceNumber string, amount float64, method, note string, isInitial bool) (*models.Invoice, error) {
	inv := p.FindInvoice(invoiceNumber)
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}

	if amount == 0 {
		amount = inv.BalanceDue
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	inv.AmountPaid += amount
	if method != "" {
		inv.PaymentMethod = method
	}

	if isInitial {
		p.Payment.InitialPayment = true
	}
	if note == "" {
		note = "Payment for invoice " + invoiceNumber
	}
	p.Payment.PaymentHistory = append(p.Payment.PaymentHistory, models.PaymentRecord{
		Amount:           amount,
		Date:             time.Now(),
		Note:             note,
		InvoiceNumber:    invoiceNumber,
		PaymentMethod:    method,
		IsInitialPayment: isInitial,
	})
	p.Payment.PaidAmount += amount

	p.Normalize(time.Now())

	if p.Payment.FullyPaid && p.Timeline.CompletedDate == nil {
		now := time.Now()
		p.Timeline.CompletedDate = &now
	}
	return inv, nil
}

// GenerateInvoiceNumber builds a number from a project-name prefix, the
// current timestamp and a random suffix. Uniqueness is probabilistic;
// BuildInvoice rejects the rare collision within one project.
func GenerateInvoiceNumber(projectName string) string {
	prefix := strings.ToUpper(strings.ReplaceAll(projectName, " ", ""))
	if r := []rune(prefix); len(r) > 3 {
		prefix = string(r[:3])
	}
	if prefix == "" {
		prefix = "PRJ"
	}
	return fmt.Sprintf("INV-%s-%d-%03d", prefix, time.Now().UnixMilli(), rand.Intn(1000))
}

// QuickOption is one suggested invoice the admin can issue given the
// project's current payment state.
type QuickOption struct {
	Type        models.InvoiceType   `json:"type"`
	Label       string               `json:"label"`
	Description string               `json:"description"`
	Amount      float64              `json:"amount,omitempty"`
	Items       []models.InvoiceItem `json:"items,omitempty"`
	Custom      bool                 `json:"custom,omitempty"`
}

func QuickOptions(p *models.ProjectRequest) []QuickOption {
	budget := p.Payment.FinalBudget
	options := []QuickOption{}

	if !p.Payment.InitialPayment && budget > 0 {
		half := budget * 0.5
		options = append(options, QuickOption{
			Type:        models.InvoiceInitial,
			Label:       "Initial Payment",
			Description: "50% deposit to start the project",
			Amount:      half,
			Items: []models.InvoiceItem{{
				Description: "Initial Deposit - Project Kickoff",
				Quantity:    1, UnitPrice: half, Total: half,
			}},
		})
	}

	if p.Payment.PaidAmount > 0 && p.Payment.DueAmount > 0 {
		quarter := budget * 0.25
		options = append(options, QuickOption{
			Type:        models.InvoiceMilestone,
			Label:       "Milestone Payment",
			Description: "Progress payment for completed work",
			Amount:      quarter,
			Items: []models.InvoiceItem{{
				Description: "Milestone Payment - Progress Update",
				Quantity:    1, UnitPrice: quarter, Total: quarter,
			}},
		})
	}

	if p.Payment.DueAmount > 0 && p.Payment.InitialPayment {
		due := p.Payment.DueAmount
		options = append(options, QuickOption{
			Type:        models.InvoiceFinal,
			Label:       "Final Payment",
			Description: "Remaining balance payment",
			Amount:      due,
			Items: []models.InvoiceItem{{
				Description: "Final Payment - Project Completion",
				Quantity:    1, UnitPrice: due, Total: due,
			}},
		})
	}

	options = append(options, QuickOption{
		Type:        "custom",
		Label:       "Custom Invoice",
		Description: "Create an invoice with custom items and amounts",
		Custom:      true,
	})
	return options
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
