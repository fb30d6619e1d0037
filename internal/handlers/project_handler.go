package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/realtime"
)

// ProjectHandler serves the client side of the request workflow.
type ProjectHandler struct {
	DB       *gorm.DB
	Notifier *realtime.Notifier
}

func NewProjectHandler(gdb *gorm.DB, notifier *realtime.Notifier) *ProjectHandler {
	return &ProjectHandler{DB: gdb, Notifier: notifier}
}

type SubmitProjectReq struct {
	ProjectName    string  `json:"project_name"`
	Duration       string  `json:"duration"`
	Budget         float64 `json:"budget"`
	Tools          string  `json:"tools"`
	ProjectType    string  `json:"project_type"`
	Description    string  `json:"description"`
	AttachmentLink string  `json:"attachment_link"`
}

func (h *ProjectHandler) Submit(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req SubmitProjectReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	// Either a document link or the full form, matching the submission UI.
	if req.AttachmentLink == "" &&
		(strings.TrimSpace(req.ProjectName) == "" || req.Duration == "" || req.Budget == 0 ||
			req.Tools == "" || req.ProjectType == "" || req.Description == "") {
		return badRequest(c, "Upload document or fill all fields")
	}

	p := models.ProjectRequest{
		UserID:         uid,
		ProjectName:    strings.TrimSpace(req.ProjectName),
		Duration:       req.Duration,
		Budget:         req.Budget,
		Tools:          req.Tools,
		ProjectType:    req.ProjectType,
		Description:    req.Description,
		AttachmentLink: req.AttachmentLink,
		Status:         models.StatusRequested,
		LastUpdatedBy:  models.UpdatedByClient,
	}
	if err := h.DB.Create(&p).Error; err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Project request submitted successfully",
		"data":    p,
	})
}

func (h *ProjectHandler) ListMine(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var projects []models.ProjectRequest
	if err := h.DB.Where("user_id = ?", uid).Order("created_at DESC").Find(&projects).Error; err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{"success": true, "data": projects})
}

// GetOne returns one of the client's projects. Reading it acknowledges any
// pending admin update.
func (h *ProjectHandler) GetOne(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	pid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	var p models.ProjectRequest
	if err := h.DB.Where("id = ? AND user_id = ?", pid, uid).First(&p).Error; err != nil {
		return notFound(c, "Project")
	}

	if p.ClearUnreadFor(models.UpdatedByClient) {
		if err := saveProject(h.DB, &p); err != nil && err != ErrStaleProject {
			return serverError(c)
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": p})
}

func (h *ProjectHandler) Work(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var projects []models.ProjectRequest
	if err := h.DB.Where("user_id = ? AND status = ?", uid, models.StatusAccepted).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{"success": true, "data": projects})
}

// Notifications counts projects with unseen admin updates per bucket.
func (h *ProjectHandler) Notifications(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	count := func(status models.ProjectStatus) int64 {
		var n int64
		h.DB.Model(&models.ProjectRequest{}).
			Where("user_id = ? AND status = ? AND has_unread_update = ? AND last_updated_by = ?",
				uid, status, true, models.UpdatedByAdmin).
			Count(&n)
		return n
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"newWorkProjects":    count(models.StatusAccepted),
			"negotiableProjects": count(models.StatusNegotiable),
			"rejectedProjects":   count(models.StatusRejected),
		},
	})
}

// GetCommits is shared: admins see any project, clients only their own.
// A client read acknowledges pending admin updates.
func (h *ProjectHandler) GetCommits(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	pid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	var p models.ProjectRequest
	if err := h.DB.First(&p, "id = ?", pid).Error; err != nil {
		return notFound(c, "Project")
	}

	role := currentRole(c)
	if role != models.UpdatedByAdmin && p.UserID != uid {
		return forbidden(c, "Access denied")
	}

	if role == models.UpdatedByClient && p.ClearUnreadFor(models.UpdatedByClient) {
		if err := saveProject(h.DB, &p); err != nil && err != ErrStaleProject {
			return serverError(c)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"commits":     p.Commits,
			"projectName": p.ProjectName,
		},
	})
}
