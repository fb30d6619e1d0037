package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

// ResumeHandler manages the single resume document: admin editing per
// section, public read gated on publication.
type ResumeHandler struct {
	DB *gorm.DB
}

func NewResumeHandler(gdb *gorm.DB) *ResumeHandler {
	return &ResumeHandler{DB: gdb}
}

// ensureResume loads the singleton, creating an empty one on first access.
func (h *ResumeHandler) ensureResume() (*models.Resume, error) {
	var r models.Resume
	err := h.DB.FirstOrCreate(&r, models.Resume{}).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (h *ResumeHandler) save(c *fiber.Ctx, r *models.Resume, msg string, data interface{}) error {
	r.LastUpdated = time.Now()
	if err := h.DB.Save(r).Error; err != nil {
		return serverError(c)
	}
	if data == nil {
		data = r
	}
	return c.JSON(fiber.Map{"success": true, "message": msg, "data": data})
}

// Public returns the resume only once it has been published.
func (h *ResumeHandler) Public(c *fiber.Ctx) error {
	var r models.Resume
	if err := h.DB.Where("is_published = ?", true).First(&r).Error; err != nil {
		return notFound(c, "Resume")
	}
	return c.JSON(fiber.Map{"success": true, "data": r})
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"success": true, "data": r})
}

type ResumeUpdateReq struct {
	FullName    *string `json:"full_name"`
	Title       *string `json:"title"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	Portfolio   *string `json:"portfolio"`
	Linkedin    *string `json:"linkedin"`
	Github      *string `json:"github"`
	Summary     *string `json:"summary"`
	IsPublished *bool   `json:"is_published"`
}

// Update patches the resume's scalar fields; sections have their own routes.
func (h *ResumeHandler) Update(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	var req ResumeUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&r.FullName, req.FullName)
	apply(&r.Title, req.Title)
	apply(&r.Email, req.Email)
	apply(&r.Phone, req.Phone)
	apply(&r.Location, req.Location)
	apply(&r.Portfolio, req.Portfolio)
	apply(&r.Linkedin, req.Linkedin)
	apply(&r.Github, req.Github)
	apply(&r.Summary, req.Summary)
	if req.IsPublished != nil {
		r.IsPublished = *req.IsPublished
	}

	return h.save(c, r, "Resume updated successfully", nil)
}

// Skills are addressed by position, unlike the other sections.

func (h *ResumeHandler) AddSkillGroup(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	var sg models.SkillGroup
	if err := c.BodyParser(&sg); err != nil {
		return badRequest(c, "Invalid body")
	}
	if sg.Category == "" {
		return badRequest(c, "Category is required")
	}
	if sg.Items == nil {
		sg.Items = []string{}
	}

	r.Skills = append(r.Skills, sg)
	return h.save(c, r, "Skill group added", r.Skills)
}

func (h *ResumeHandler) skillIndex(c *fiber.Ctx, r *models.Resume) (int, error) {
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil || idx < 0 || idx >= len(r.Skills) {
		return -1, notFound(c, "Skill group")
	}
	return idx, nil
}

func (h *ResumeHandler) UpdateSkillGroup(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}
	idx, ferr := h.skillIndex(c, r)
	if idx < 0 {
		return ferr
	}

	var sg models.SkillGroup
	if err := c.BodyParser(&sg); err != nil {
		return badRequest(c, "Invalid body")
	}
	if sg.Category != "" {
		r.Skills[idx].Category = sg.Category
	}
	if sg.Items != nil {
		r.Skills[idx].Items = sg.Items
	}

	return h.save(c, r, "Skill group updated", r.Skills[idx])
}

func (h *ResumeHandler) DeleteSkillGroup(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}
	idx, ferr := h.skillIndex(c, r)
	if idx < 0 {
		return ferr
	}

	r.Skills = append(r.Skills[:idx], r.Skills[idx+1:]...)
	return h.save(c, r, "Skill group deleted", r.Skills)
}

// Education

func (h *ResumeHandler) AddEducation(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	var e models.Education
	if err := c.BodyParser(&e); err != nil {
		return badRequest(c, "Invalid body")
	}
	e.ID = uuid.NewString()
	r.Education = append(r.Education, e)
	return h.save(c, r, "Education added", e)
}

func (h *ResumeHandler) UpdateEducation(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.Education {
		if r.Education[i].ID == id {
			var e models.Education
			if err := c.BodyParser(&e); err != nil {
				return badRequest(c, "Invalid body")
			}
			e.ID = id
			r.Education[i] = e
			return h.save(c, r, "Education updated", e)
		}
	}
	return notFound(c, "Education entry")
}

func (h *ResumeHandler) DeleteEducation(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.Education {
		if r.Education[i].ID == id {
			r.Education = append(r.Education[:i], r.Education[i+1:]...)
			return h.save(c, r, "Education deleted", r.Education)
		}
	}
	return notFound(c, "Education entry")
}

// Certifications

func (h *ResumeHandler) AddCertification(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	var cert models.Certification
	if err := c.BodyParser(&cert); err != nil {
		return badRequest(c, "Invalid body")
	}
	cert.ID = uuid.NewString()
	r.Certifications = append(r.Certifications, cert)
	return h.save(c, r, "Certification added", cert)
}

func (h *ResumeHandler) UpdateCertification(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.Certifications {
		if r.Certifications[i].ID == id {
			var cert models.Certification
			if err := c.BodyParser(&cert); err != nil {
				return badRequest(c, "Invalid body")
			}
			cert.ID = id
			r.Certifications[i] = cert
			return h.save(c, r, "Certification updated", cert)
		}
	}
	return notFound(c, "Certification")
}

func (h *ResumeHandler) DeleteCertification(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.Certifications {
		if r.Certifications[i].ID == id {
			r.Certifications = append(r.Certifications[:i], r.Certifications[i+1:]...)
			return h.save(c, r, "Certification deleted", r.Certifications)
		}
	}
	return notFound(c, "Certification")
}

// Projects

func (h *ResumeHandler) AddProject(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	var p models.ResumeProject
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "Invalid body")
	}
	p.ID = uuid.NewString()
	r.Projects = append(r.Projects, p)
	return h.save(c, r, "Project added", p)
}

func (h *ResumeHandler) UpdateProject(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.Projects {
		if r.Projects[i].ID == id {
			var p models.ResumeProject
			if err := c.BodyParser(&p); err != nil {
				return badRequest(c, "Invalid body")
			}
			p.ID = id
			r.Projects[i] = p
			return h.save(c, r, "Project updated", p)
		}
	}
	return notFound(c, "Project entry")
}

func (h *ResumeHandler) DeleteProject(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.Projects {
		if r.Projects[i].ID == id {
			r.Projects = append(r.Projects[:i], r.Projects[i+1:]...)
			return h.save(c, r, "Project deleted", r.Projects)
		}
	}
	return notFound(c, "Project entry")
}

// Extracurricular

func (h *ResumeHandler) AddExtracurricular(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	var e models.Extracurricular
	if err := c.BodyParser(&e); err != nil {
		return badRequest(c, "Invalid body")
	}
	e.ID = uuid.NewString()
	r.Extracurricular = append(r.Extracurricular, e)
	return h.save(c, r, "Extracurricular added", e)
}

func (h *ResumeHandler) UpdateExtracurricular(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.Extracurricular {
		if r.Extracurricular[i].ID == id {
			var e models.Extracurricular
			if err := c.BodyParser(&e); err != nil {
				return badRequest(c, "Invalid body")
			}
			e.ID = id
			r.Extracurricular[i] = e
			return h.save(c, r, "Extracurricular updated", e)
		}
	}
	return notFound(c, "Extracurricular entry")
}

func (h *ResumeHandler) DeleteExtracurricular(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.Extracurricular {
		if r.Extracurricular[i].ID == id {
			r.Extracurricular = append(r.Extracurricular[:i], r.Extracurricular[i+1:]...)
			return h.save(c, r, "Extracurricular deleted", r.Extracurricular)
		}
	}
	return notFound(c, "Extracurricular entry")
}

// Custom sections

func (h *ResumeHandler) AddCustomSection(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	var s models.CustomSection
	if err := c.BodyParser(&s); err != nil {
		return badRequest(c, "Invalid body")
	}
	if s.Heading == "" {
		return badRequest(c, "Heading is required")
	}
	s.ID = uuid.NewString()
	if s.Items == nil {
		s.Items = []models.CustomItem{}
	}
	r.CustomSections = append(r.CustomSections, s)
	return h.save(c, r, "Section added", s)
}

func (h *ResumeHandler) UpdateCustomSection(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.CustomSections {
		if r.CustomSections[i].ID == id {
			var s models.CustomSection
			if err := c.BodyParser(&s); err != nil {
				return badRequest(c, "Invalid body")
			}
			s.ID = id
			if s.Items == nil {
				s.Items = r.CustomSections[i].Items
			}
			r.CustomSections[i] = s
			return h.save(c, r, "Section updated", s)
		}
	}
	return notFound(c, "Section")
}

func (h *ResumeHandler) DeleteCustomSection(c *fiber.Ctx) error {
	r, err := h.ensureResume()
	if err != nil {
		return serverError(c)
	}

	id := c.Params("id")
	for i := range r.CustomSections {
		if r.CustomSections[i].ID == id {
			r.CustomSections = append(r.CustomSections[:i], r.CustomSections[i+1:]...)
			return h.save(c, r, "Section deleted", r.CustomSections)
		}
	}
	return notFound(c, "Section")
}
