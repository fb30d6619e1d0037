package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

// ErrStaleProject means the project row changed between read and write.
var ErrStaleProject = errors.New("project was modified by another request")

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	uid, _ := c.Locals("userId").(string)
	return uuid.Parse(uid)
}

func currentRole(c *fiber.Ctx) models.UpdatedBy {
	role, _ := c.Locals("role").(string)
	if role == string(models.RoleAdmin) {
		return models.UpdatedByAdmin
	}
	return models.UpdatedByClient
}

// saveProject normalizes derived fields and persists the whole document with
// a compare-and-swap on the version the caller read. Two concurrent writers
// cannot silently overwrite each other's recomputed totals; the loser gets
// ErrStaleProject.
func saveProject(gdb *gorm.DB, p *models.ProjectRequest) error {
	prev := p.Version
	p.Normalize(time.Now())
	p.Version = prev + 1
	p.UpdatedAt = time.Now()

	res := gdb.Model(&models.ProjectRequest{}).
		Where("id = ? AND version = ?", p.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleProject
	}
	return nil
}

// checkVersion rejects a write when the caller supplied the version they
// read and the document has moved on since.
func checkVersion(p *models.ProjectRequest, supplied *int64) error {
	if supplied != nil && *supplied != p.Version {
		return ErrStaleProject
	}
	return nil
}

func conflict(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"success": false,
		"message": "Project was modified by another request. Reload and retry.",
	})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": what + " not found",
	})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Server error",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

func forbidden(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}
