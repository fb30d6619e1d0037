package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/middleware"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

// BlogHandler serves blog authoring (admin) and the public feed with
// anonymous likes and comments.
type BlogHandler struct {
	DB *gorm.DB
}

func NewBlogHandler(gdb *gorm.DB) *BlogHandler {
	return &BlogHandler{DB: gdb}
}

func device(c *fiber.Ctx) middleware.DeviceInfo {
	d, _ := c.Locals("device").(middleware.DeviceInfo)
	return d
}

// makeSlug derives a URL slug from the title with a short random suffix so
// repeated titles never collide.
func makeSlug(title string) string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return slug.Make(title) + "-" + hex.EncodeToString(b)
}

type BlogReq struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"cover_image"`
	IsPublished *bool    `json:"is_published"`
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req BlogReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return badRequest(c, "Title and content are required")
	}

	b := models.Blog{
		Title:      title,
		Slug:       makeSlug(title),
		Content:    req.Content,
		Tags:       req.Tags,
		CoverImage: req.CoverImage,
		AuthorID:   uid,
	}
	if req.IsPublished != nil {
		b.IsPublished = *req.IsPublished
	}
	if err := h.DB.Create(&b).Error; err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Blog created successfully",
		"data":    b,
	})
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	bid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid blog ID")
	}

	var b models.Blog
	if err := h.DB.First(&b, "id = ?", bid).Error; err != nil {
		return notFound(c, "Blog")
	}

	var req BlogReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	if title := strings.TrimSpace(req.Title); title != "" && title != b.Title {
		b.Title = title
		b.Slug = makeSlug(title)
	}
	if strings.TrimSpace(req.Content) != "" {
		b.Content = req.Content
	}
	if req.Tags != nil {
		b.Tags = req.Tags
	}
	if req.CoverImage != "" {
		b.CoverImage = req.CoverImage
	}
	if req.IsPublished != nil {
		b.IsPublished = *req.IsPublished
	}

	if err := h.DB.Save(&b).Error; err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Blog updated successfully", "data": b})
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	bid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid blog ID")
	}

	res := h.DB.Delete(&models.Blog{}, "id = ?", bid)
	if res.Error != nil {
		return serverError(c)
	}
	if res.RowsAffected == 0 {
		return notFound(c, "Blog")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Blog deleted successfully"})
}

// AdminList returns every blog, drafts included.
func (h *BlogHandler) AdminList(c *fiber.Ctx) error {
	var blogs []models.Blog
	if err := h.DB.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{"success": true, "data": blogs})
}

// blogPreview is the public feed shape: no full content, engagement counts
// instead of raw like/comment records.
type blogPreview struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Preview      string    `json:"preview"`
	Tags         []string  `json:"tags"`
	CoverImage   string    `json:"cover_image,omitempty"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	Views        int64     `json:"views"`
	CreatedAt    string    `json:"created_at"`
}

func previewText(content string, n int) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func (h *BlogHandler) PublicFeed(c *fiber.Ctx) error {
	var blogs []models.Blog
	if err := h.DB.Where("is_published = ?", true).Order("created_at DESC").Find(&blogs).Error; err != nil {
		return serverError(c)
	}

	out := make([]blogPreview, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, blogPreview{
			ID:           b.ID,
			Title:        b.Title,
			Slug:         b.Slug,
			Preview:      previewText(b.Content, 200),
			Tags:         b.Tags,
			CoverImage:   b.CoverImage,
			LikeCount:    len(b.Likes),
			CommentCount: len(b.Comments),
			Views:        b.Views,
			CreatedAt:    b.CreatedAt.Format("2006-01-02"),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": out})
}

// GetBySlug returns one published post and counts the view.
func (h *BlogHandler) GetBySlug(c *fiber.Ctx) error {
	var b models.Blog
	if err := h.DB.Where("slug = ? AND is_published = ?", c.Params("slug"), true).First(&b).Error; err != nil {
		return notFound(c, "Blog")
	}

	b.Views++
	h.DB.Model(&models.Blog{}).Where("id = ?", b.ID).Update("views", b.Views)

	d := device(c)
	liked := false
	for _, l := range b.Likes {
		if (d.DeviceID != "" && l.DeviceID == d.DeviceID) || (d.DeviceID == "" && l.IP == d.IP) {
			liked = true
			break
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"blog":         b,
			"likeCount":    len(b.Likes),
			"commentCount": len(b.Comments),
			"likedByYou":   liked,
		},
	})
}

// ToggleLike likes the post for this device, or removes the earlier like.
// Engagement routes address the blog by id, not slug.
func (h *BlogHandler) ToggleLike(c *fiber.Ctx) error {
	bid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid blog ID")
	}

	var b models.Blog
	if err := h.DB.First(&b, "id = ?", bid).Error; err != nil {
		return notFound(c, "Blog")
	}

	d := device(c)
	liked := b.ToggleLike(d.DeviceID, d.IP, d.UserAgent)

	if err := h.DB.Model(&models.Blog{}).Where("id = ?", b.ID).Update("likes", b.Likes).Error; err != nil {
		return serverError(c)
	}

	msg := "Blog liked"
	if !liked {
		msg = "Like removed"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
		"data": fiber.Map{
			"liked":     liked,
			"likeCount": len(b.Likes),
		},
	})
}

type CommentReq struct {
	Text string `json:"text"`
}

func (h *BlogHandler) AddComment(c *fiber.Ctx) error {
	bid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid blog ID")
	}

	var b models.Blog
	if err := h.DB.First(&b, "id = ?", bid).Error; err != nil {
		return notFound(c, "Blog")
	}

	var req CommentReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	d := device(c)
	comment, err := b.AddComment(req.Text, d.DeviceID, d.IP, d.UserAgent)
	if err != nil {
		return badRequest(c, "Comment text is required")
	}

	if err := h.DB.Model(&models.Blog{}).Where("id = ?", b.ID).Update("comments", b.Comments).Error; err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Comment added",
		"data":    comment,
	})
}
