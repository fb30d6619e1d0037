package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	StatusRequested  ProjectStatus = "requested"
	StatusAccepted   ProjectStatus = "accepted"
	StatusNegotiable ProjectStatus = "negotiable"
	StatusRejected   ProjectStatus = "rejected"
)

type UpdatedBy string

const (
	UpdatedByClient UpdatedBy = "client"
	UpdatedByAdmin  UpdatedBy = "admin"
)

type InvoiceType string

const (
	InvoiceInitial   InvoiceType = "initial"
	InvoiceMilestone InvoiceType = "milestone"
	InvoiceFinal     InvoiceType = "final"
	InvoiceStandard  InvoiceType = "standard"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
	InvoicePartial   InvoiceStatus = "partial"
)

type PaymentRecord struct {
	Amount           float64   `json:"amount"`
	Date             time.Time `json:"date"`
	Note             string    `json:"note"`
	InvoiceNumber    string    `json:"invoice_number,omitempty"`
	PaymentMethod    string    `json:"payment_method,omitempty"`
	IsInitialPayment bool      `json:"is_initial_payment"`
}

type Payment struct {
	FinalBudget    float64         `json:"final_budget"`
	InitialPayment bool            `json:"initial_payment"`
	PaidAmount     float64         `json:"paid_amount"`
	DueAmount      float64         `json:"due_amount"`
	PaymentHistory []PaymentRecord `json:"payment_history"`
	FullyPaid      bool            `json:"fully_paid"`
}

type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type Invoice struct {
	InvoiceNumber string        `json:"invoice_number"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	InvoiceType   InvoiceType   `json:"invoice_type"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	TotalAmount   float64       `json:"total_amount"`
	AmountPaid    float64       `json:"amount_paid"`
	BalanceDue    float64       `json:"balance_due"`
	Status        InvoiceStatus `json:"status"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type Negotiation struct {
	ProposedBudget   float64   `json:"proposed_budget"`
	ProposedDuration string    `json:"proposed_duration"`
	AdminNotes       string    `json:"admin_notes"`
	NegotiatedAt     time.Time `json:"negotiated_at"`
}

type Rejection struct {
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

type Timeline struct {
	StartDate     *time.Time `json:"start_date,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}

type Commit struct {
	WeekNumber     int       `json:"week_number"`
	Description    string    `json:"description"`
	CompletedTasks []string  `json:"completed_tasks"`
	Date           time.Time `json:"date"`
}

// ProjectRequest is one client-submitted work proposal. Payment state,
// invoices and weekly commits are embedded in the row as JSONB, so every
// mutation rewrites the whole document; Version guards against two writers
// clobbering each other's recomputed totals.
type ProjectRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	ProjectName    string  `gorm:"not null" json:"project_name"`
	Duration       string  `gorm:"type:varchar(60)" json:"duration"`
	Budget         float64 `json:"budget"`
	Tools          string  `gorm:"type:text" json:"tools"`
	ProjectType    string  `gorm:"type:varchar(80)" json:"project_type"`
	Description    string  `gorm:"type:text" json:"description"`
	AttachmentLink string  `gorm:"type:text" json:"attachment_link"`

	Status ProjectStatus `gorm:"type:varchar(20);default:'requested';index" json:"status"`

	Negotiation *Negotiation `gorm:"type:jsonb;serializer:json" json:"negotiation,omitempty"`
	Rejection   *Rejection   `gorm:"type:jsonb;serializer:json" json:"rejection,omitempty"`

	Payment  Payment                        `gorm:"type:jsonb;serializer:json" json:"payment"`
	Invoices datatypes.JSONSlice[Invoice]   `json:"invoices"`
	Timeline Timeline                       `gorm:"type:jsonb;serializer:json" json:"timeline"`
	Commits  datatypes.JSONSlice[Commit]    `json:"commits"`

	HasUnreadUpdate bool      `gorm:"default:false" json:"has_unread_update"`
	LastUpdatedBy   UpdatedBy `gorm:"type:varchar(10);default:'client'" json:"last_updated_by"`

	Version int64 `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Normalize recomputes every derived field from its inputs. It is the single
// place where dueAmount, fullyPaid, invoice balances and invoice statuses are
// derived; callers must run it before persisting the document.
func (p *ProjectRequest) Normalize(now time.Time) {
	p.Payment.DueAmount = p.Payment.FinalBudget - p.Payment.PaidAmount
	p.Payment.FullyPaid = p.Payment.DueAmount <= 0

	for i := range p.Invoices {
		inv := &p.Invoices[i]
		if inv.Status == InvoiceCancelled {
			continue
		}
		inv.BalanceDue = inv.TotalAmount - inv.AmountPaid
		switch {
		case inv.BalanceDue <= 0:
			inv.Status = InvoicePaid
		case inv.AmountPaid > 0:
			inv.Status = InvoicePartial
		default:
			inv.Status = InvoicePending
		}
		if inv.Status != InvoicePaid && inv.DueDate != nil && now.After(*inv.DueDate) {
			inv.Status = InvoiceOverdue
		}
	}
}

// MarkUpdatedBy flags the document as carrying an update the counterpart
// role has not seen yet.
func (p *ProjectRequest) MarkUpdatedBy(role UpdatedBy) {
	p.HasUnreadUpdate = true
	p.LastUpdatedBy = role
}

// ClearUnreadFor clears the unread flag when the reader is the counterpart
// of whoever wrote last. Returns true when the flag actually changed.
func (p *ProjectRequest) ClearUnreadFor(reader UpdatedBy) bool {
	if p.HasUnreadUpdate && p.LastUpdatedBy != reader {
		p.HasUnreadUpdate = false
		return true
	}
	return false
}

func (p *ProjectRequest) FindInvoice(number string) *Invoice {
	for i := range p.Invoices {
		if p.Invoices[i].InvoiceNumber == number {
			return &p.Invoices[i]
		}
	}
	return nil
}

func (p *ProjectRequest) HasCommitForWeek(week int) bool {
	for _, c := range p.Commits {
		if c.WeekNumber == week {
			return true
		}
	}
	return false
}

// PaymentProgress is the paid share of the final budget in whole percents.
func (p *ProjectRequest) PaymentProgress() int {
	if p.Payment.FinalBudget == 0 {
		return 0
	}
	return int(p.Payment.PaidAmount/p.Payment.FinalBudget*100 + 0.5)
}
