package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/realtime"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/services/billing"
)

// AdminHandler serves the admin side of the request workflow: review,
// payments, progress commits and dashboard aggregates.
type AdminHandler struct {
	DB       *gorm.DB
	Notifier *realtime.Notifier
	TaxRate  float64
}

func NewAdminHandler(gdb *gorm.DB, notifier *realtime.Notifier, taxRate float64) *AdminHandler {
	return &AdminHandler{DB: gdb, Notifier: notifier, TaxRate: taxRate}
}

func (h *AdminHandler) notify(c *fiber.Ctx, p *models.ProjectRequest, event string) {
	if h.Notifier == nil {
		return
	}
	h.Notifier.Publish(c.Context(), realtime.ProjectEvent{
		ProjectID:   p.ID,
		UserID:      p.UserID,
		Event:       event,
		Status:      string(p.Status),
		ProjectName: p.ProjectName,
	})
}

func (h *AdminHandler) loadProject(c *fiber.Ctx) (*models.ProjectRequest, error) {
	pid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, badRequest(c, "Invalid project ID")
	}
	var p models.ProjectRequest
	if err := h.DB.First(&p, "id = ?", pid).Error; err != nil {
		return nil, notFound(c, "Project")
	}
	return &p, nil
}

type clientStats struct {
	TotalProjects      int64   `json:"totalProjects"`
	RequestedProjects  int64   `json:"requestedProjects"`
	AcceptedProjects   int64   `json:"acceptedProjects"`
	RejectedProjects   int64   `json:"rejectedProjects"`
	NegotiableProjects int64   `json:"negotiableProjects"`
	TotalPaid          float64 `json:"totalPaid"`
	TotalDue           float64 `json:"totalDue"`
}

func (h *AdminHandler) statsForClient(userID uuid.UUID) clientStats {
	var stats clientStats
	count := func(filter ...interface{}) int64 {
		var n int64
		q := h.DB.Model(&models.ProjectRequest{}).Where("user_id = ?", userID)
		if len(filter) > 0 {
			q = q.Where("status = ?", filter[0])
		}
		q.Count(&n)
		return n
	}
	stats.TotalProjects = count()
	stats.RequestedProjects = count(models.StatusRequested)
	stats.AcceptedProjects = count(models.StatusAccepted)
	stats.RejectedProjects = count(models.StatusRejected)
	stats.NegotiableProjects = count(models.StatusNegotiable)

	var accepted []models.ProjectRequest
	h.DB.Where("user_id = ? AND status = ?", userID, models.StatusAccepted).Find(&accepted)
	for _, p := range accepted {
		stats.TotalPaid += p.Payment.PaidAmount
		stats.TotalDue += p.Payment.DueAmount
	}
	return stats
}

func (h *AdminHandler) GetAllClients(c *fiber.Ctx) error {
	var clients []models.User
	if err := h.DB.Where("role = ?", models.RoleClient).Order("created_at DESC").Find(&clients).Error; err != nil {
		return serverError(c)
	}

	type clientWithStats struct {
		models.User
		Stats clientStats `json:"stats"`
	}
	out := make([]clientWithStats, 0, len(clients))
	for _, cl := range clients {
		out = append(out, clientWithStats{User: cl, Stats: h.statsForClient(cl.ID)})
	}

	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *AdminHandler) GetClientByID(c *fiber.Ctx) error {
	cid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid client ID")
	}

	var client models.User
	if err := h.DB.First(&client, "id = ?", cid).Error; err != nil {
		return notFound(c, "Client")
	}

	var projects []models.ProjectRequest
	if err := h.DB.Where("user_id = ?", cid).Order("created_at DESC").Find(&projects).Error; err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"client":   client,
			"projects": projects,
			"stats":    h.statsForClient(cid),
		},
	})
}

func (h *AdminHandler) ListProjects(c *fiber.Ctx) error {
	q := h.DB.Preload("User").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var projects []models.ProjectRequest
	if err := q.Find(&projects).Error; err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{"success": true, "data": projects})
}

// GetProject returns any project. An admin read acknowledges pending
// client updates, mirroring the client side.
func (h *AdminHandler) GetProject(c *fiber.Ctx) error {
	pid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	var p models.ProjectRequest
	if err := h.DB.Preload("User").First(&p, "id = ?", pid).Error; err != nil {
		return notFound(c, "Project")
	}

	if p.ClearUnreadFor(models.UpdatedByAdmin) {
		if err := saveProject(h.DB, &p); err != nil && err != ErrStaleProject {
			return serverError(c)
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": p})
}

type AcceptReq struct {
	FinalBudget    float64    `json:"final_budget"`
	StartDate      *time.Time `json:"start_date"`
	Deadline       *time.Time `json:"deadline"`
	InitialPayment bool       `json:"initial_payment"`
	CreateInvoice  bool       `json:"create_invoice"`
	PaymentMethod  string     `json:"payment_method"`
	Version        *int64     `json:"version"`
}

func (h *AdminHandler) Accept(c *fiber.Ctx) error {
	p, ferr := h.loadProject(c)
	if p == nil {
		return ferr
	}

	var req AcceptReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := checkVersion(p, req.Version); err != nil {
		return conflict(c)
	}

	if err := billing.Accept(p, billing.AcceptInput{
		FinalBudget:    req.FinalBudget,
		StartDate:      req.StartDate,
		Deadline:       req.Deadline,
		InitialPayment: req.InitialPayment,
		CreateInvoice:  req.CreateInvoice,
		TaxRate:        h.TaxRate,
		PaymentMethod:  req.PaymentMethod,
	}); err != nil {
		return badRequest(c, err.Error())
	}
	p.MarkUpdatedBy(models.UpdatedByAdmin)

	if err := saveProject(h.DB, p); err != nil {
		if err == ErrStaleProject {
			return conflict(c)
		}
		return serverError(c)
	}
	h.notify(c, p, "accepted")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project accepted successfully",
		"data":    p,
	})
}

type NegotiateReq struct {
	ProposedBudget   float64 `json:"proposed_budget"`
	ProposedDuration string  `json:"proposed_duration"`
	AdminNotes       string  `json:"admin_notes"`
	Version          *int64  `json:"version"`
}

func (h *AdminHandler) Negotiate(c *fiber.Ctx) error {
	p, ferr := h.loadProject(c)
	if p == nil {
		return ferr
	}

	var req NegotiateReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := checkVersion(p, req.Version); err != nil {
		return conflict(c)
	}

	billing.Negotiate(p, req.ProposedBudget, req.ProposedDuration, req.AdminNotes)
	p.MarkUpdatedBy(models.UpdatedByAdmin)

	if err := saveProject(h.DB, p); err != nil {
		if err == ErrStaleProject {
			return conflict(c)
		}
		return serverError(c)
	}
	h.notify(c, p, "negotiation")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Negotiation proposal sent successfully",
		"data":    p,
	})
}

type RejectReq struct {
	Reason  string `json:"reason"`
	Version *int64 `json:"version"`
}

func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	p, ferr := h.loadProject(c)
	if p == nil {
		return ferr
	}

	var req RejectReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := checkVersion(p, req.Version); err != nil {
		return conflict(c)
	}

	if err := billing.Reject(p, req.Reason); err != nil {
		return badRequest(c, "Rejection reason is required")
	}
	p.MarkUpdatedBy(models.UpdatedByAdmin)

	if err := saveProject(h.DB, p); err != nil {
		if err == ErrStaleProject {
			return conflict(c)
		}
		return serverError(c)
	}
	h.notify(c, p, "rejected")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project rejected successfully",
		"data":    p,
	})
}

type AddPaymentReq struct {
	Amount        float64 `json:"amount"`
	Note          string  `json:"note"`
	PaymentMethod string  `json:"payment_method"`
	Version       *int64  `json:"version"`
}

func (h *AdminHandler) AddPayment(c *fiber.Ctx) error {
	p, ferr := h.loadProject(c)
	if p == nil {
		return ferr
	}

	var req AddPaymentReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := checkVersion(p, req.Version); err != nil {
		return conflict(c)
	}

	if err := billing.AddPayment(p, req.Amount, req.Note, req.PaymentMethod); err != nil {
		switch {
		case errors.Is(err, billing.ErrNotAccepted):
			return badRequest(c, "Can only add payments to accepted projects")
		case errors.Is(err, billing.ErrInvalidAmount):
			return badRequest(c, "Valid payment amount is required")
		default:
			return serverError(c)
		}
	}
	p.MarkUpdatedBy(models.UpdatedByAdmin)

	if err := saveProject(h.DB, p); err != nil {
		if err == ErrStaleProject {
			return conflict(c)
		}
		return serverError(c)
	}
	h.notify(c, p, "payment")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment added successfully",
		"data":    p,
	})
}

type AddCommitReq struct {
	WeekNumber     int      `json:"week_number"`
	Description    string   `json:"description"`
	CompletedTasks []string `json:"completed_tasks"`
	Version        *int64   `json:"version"`
}

func (h *AdminHandler) AddCommit(c *fiber.Ctx) error {
	p, ferr := h.loadProject(c)
	if p == nil {
		return ferr
	}

	var req AddCommitReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if req.WeekNumber == 0 || req.Description == "" {
		return badRequest(c, "Week number and description are required")
	}
	if err := checkVersion(p, req.Version); err != nil {
		return conflict(c)
	}

	if err := billing.AddCommit(p, req.WeekNumber, req.Description, req.CompletedTasks); err != nil {
		switch {
		case errors.Is(err, billing.ErrNotAccepted):
			return badRequest(c, "Can only add commits to accepted projects")
		case errors.Is(err, billing.ErrDuplicateWeek):
			return badRequest(c, "Week "+strconv.Itoa(req.WeekNumber)+" already has a progress update")
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
	h.notify(c, p, "commit")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Progress update added successfully",
		"data":    p,
	})
}

type UpdateCommitReq struct {
	Description    string   `json:"description"`
	CompletedTasks []string `json:"completed_tasks"`
	Version        *int64   `json:"version"`
}

func (h *AdminHandler) UpdateCommit(c *fiber.Ctx) error {
	pid, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}
	week, err := strconv.Atoi(c.Params("weekNumber"))
	if err != nil {
		return badRequest(c, "Invalid week number")
	}

	var p models.ProjectRequest
	if err := h.DB.First(&p, "id = ?", pid).Error; err != nil {
		return notFound(c, "Project")
	}

	var req UpdateCommitReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := checkVersion(&p, req.Version); err != nil {
		return conflict(c)
	}

	idx := -1
	for i, cm := range p.Commits {
		if cm.WeekNumber == week {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFound(c, "Commit")
	}

	if req.Description != "" {
		p.Commits[idx].Description = req.Description
	}
	if req.CompletedTasks != nil {
		p.Commits[idx].CompletedTasks = req.CompletedTasks
	}
	p.MarkUpdatedBy(models.UpdatedByAdmin)

	if err := saveProject(h.DB, &p); err != nil {
		if err == ErrStaleProject {
			return conflict(c)
		}
		return serverError(c)
	}
	h.notify(c, &p, "commit")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Commit updated successfully",
		"data":    p.Commits[idx],
	})
}

func (h *AdminHandler) DeleteCommit(c *fiber.Ctx) error {
	pid, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}
	week, err := strconv.Atoi(c.Params("weekNumber"))
	if err != nil {
		return badRequest(c, "Invalid week number")
	}

	var p models.ProjectRequest
	if err := h.DB.First(&p, "id = ?", pid).Error; err != nil {
		return notFound(c, "Project")
	}

	idx := -1
	for i, cm := range p.Commits {
		if cm.WeekNumber == week {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFound(c, "Commit")
	}

	p.Commits = append(p.Commits[:idx], p.Commits[idx+1:]...)

	if err := saveProject(h.DB, &p); err != nil {
		if err == ErrStaleProject {
			return conflict(c)
		}
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Commit deleted successfully",
		"data":    p.Commits,
	})
}

// Statistics summarizes commit activity on accepted projects.
func (h *AdminHandler) Statistics(c *fiber.Ctx) error {
	var accepted []models.ProjectRequest
	if err := h.DB.Where("status = ?", models.StatusAccepted).Find(&accepted).Error; err != nil {
		return serverError(c)
	}

	type projectStats struct {
		ID             uuid.UUID       `json:"id"`
		ProjectName    string          `json:"projectName"`
		ClientID       uuid.UUID       `json:"clientId"`
		TotalCommits   int             `json:"totalCommits"`
		LastCommitDate *time.Time      `json:"lastCommitDate"`
		Payment        models.Payment  `json:"payment"`
		Timeline       models.Timeline `json:"timeline"`
	}

	out := make([]projectStats, 0, len(accepted))
	for _, p := range accepted {
		ps := projectStats{
			ID:           p.ID,
			ProjectName:  p.ProjectName,
			ClientID:     p.UserID,
			TotalCommits: len(p.Commits),
			Payment:      p.Payment,
			Timeline:     p.Timeline,
		}
		if n := len(p.Commits); n > 0 {
			d := p.Commits[n-1].Date
			ps.LastCommitDate = &d
		}
		out = append(out, ps)
	}

	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalClients int64
	h.DB.Model(&models.User{}).Where("role = ?", models.RoleClient).Count(&totalClients)

	countProjects := func(status ...models.ProjectStatus) int64 {
		var n int64
		q := h.DB.Model(&models.ProjectRequest{})
		if len(status) > 0 {
			q = q.Where("status = ?", status[0])
		}
		q.Count(&n)
		return n
	}

	var accepted []models.ProjectRequest
	if err := h.DB.Where("status = ?", models.StatusAccepted).Find(&accepted).Error; err != nil {
		return serverError(c)
	}

	var totalRevenue, totalPaid, totalDue float64
	for _, p := range accepted {
		totalRevenue += p.Payment.FinalBudget
		totalPaid += p.Payment.PaidAmount
		totalDue += p.Payment.DueAmount
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"totalClients":       totalClients,
			"totalProjects":      countProjects(),
			"requestedProjects":  countProjects(models.StatusRequested),
			"acceptedProjects":   countProjects(models.StatusAccepted),
			"negotiableProjects": countProjects(models.StatusNegotiable),
			"rejectedProjects":   countProjects(models.StatusRejected),
			"totalRevenue":       totalRevenue,
			"totalPaid":          totalPaid,
			"totalDue":           totalDue,
		},
	})
}
