package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

// UpdateInfoHandler manages the site-wide announcement banner.
type UpdateInfoHandler struct {
	DB *gorm.DB
}

func NewUpdateInfoHandler(gdb *gorm.DB) *UpdateInfoHandler {
	return &UpdateInfoHandler{DB: gdb}
}

// Active returns the current banner, if any.
func (h *UpdateInfoHandler) Active(c *fiber.Ctx) error {
	var u models.UpdateInfo
	err := h.DB.Where("is_active = ?", true).Order("created_at DESC").First(&u).Error
	if err == gorm.ErrRecordNotFound {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"success": true, "data": u})
}

type UpdateInfoReq struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Importance string `json:"importance"`
}

// Create publishes a new banner and retires every earlier one.
func (h *UpdateInfoHandler) Create(c *fiber.Ctx) error {
	var req UpdateInfoReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "Title and message are required")
	}

	importance := req.Importance
	switch importance {
	case "low", "medium", "high":
	case "":
		importance = "medium"
	default:
		return badRequest(c, "Importance must be low, medium or high")
	}

	var created models.UpdateInfo
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UpdateInfo{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		created = models.UpdateInfo{
			Title:      strings.TrimSpace(req.Title),
			Message:    strings.TrimSpace(req.Message),
			Importance: importance,
			IsActive:   true,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Update published",
		"data":    created,
	})
}

func (h *UpdateInfoHandler) Deactivate(c *fiber.Ctx) error {
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid update ID")
	}

	res := h.DB.Model(&models.UpdateInfo{}).Where("id = ?", uid).Update("is_active", false)
	if res.Error != nil {
		return serverError(c)
	}
	if res.RowsAffected == 0 {
		return notFound(c, "Update")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Update deactivated"})
}

func (h *UpdateInfoHandler) List(c *fiber.Ctx) error {
	var updates []models.UpdateInfo
	if err := h.DB.Order("created_at DESC").Find(&updates).Error; err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"success": true, "data": updates})
}
