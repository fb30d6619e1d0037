package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

// VisitorHandler tracks the site-wide visit counter.
type VisitorHandler struct {
	DB *gorm.DB
}

func NewVisitorHandler(gdb *gorm.DB) *VisitorHandler {
	return &VisitorHandler{DB: gdb}
}

func (h *VisitorHandler) ensureCounter() (*models.Visitor, error) {
	var v models.Visitor
	if err := h.DB.FirstOrCreate(&v, models.Visitor{}).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Track counts one visit with its transport identity.
func (h *VisitorHandler) Track(c *fiber.Ctx) error {
	v, err := h.ensureCounter()
	if err != nil {
		return serverError(c)
	}

	d := device(c)
	v.Count++
	v.LastVisited = time.Now()
	v.Visits = append(v.Visits, models.VisitRecord{
		IP:        d.IP,
		UserAgent: d.UserAgent,
		Timestamp: time.Now(),
	})

	if err := h.DB.Save(v).Error; err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"count": v.Count},
	})
}

func (h *VisitorHandler) Count(c *fiber.Ctx) error {
	v, err := h.ensureCounter()
	if err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"count":       v.Count,
			"lastVisited": v.LastVisited,
		},
	})
}

// Unique reports distinct IPs alongside the raw counter.
func (h *VisitorHandler) Unique(c *fiber.Ctx) error {
	v, err := h.ensureCounter()
	if err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"count":       v.Count,
			"uniqueCount": v.UniqueIPCount(),
		},
	})
}
