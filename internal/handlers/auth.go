package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/utils"
)

type AuthHandler struct {
	DB          *gorm.DB
	JWTSecret   string
	Expires     int
	AdminSecret string
}

type SignupReq struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Contact     string `json:"contact"`
	AdminSecret string `json:"adminSecret"`
}

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func (h *AuthHandler) signup(c *fiber.Ctx, role models.Role) error {
	var req SignupReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Invalid email format")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		errs.Add("email", "Email already registered")
		return validationFail(c, errs)
	} else if err != gorm.ErrRecordNotFound {
		return serverError(c)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return serverError(c)
	}

	u := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Contact:  strings.TrimSpace(req.Contact),
		Role:     role,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		return serverError(c)
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Signup successful",
		"data": fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    u.ID,
				"name":  u.Name,
				"email": u.Email,
				"role":  u.Role,
			},
		},
	})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	return h.signup(c, models.RoleClient)
}

// AdminSignup creates an admin account, gated on the deployment's admin
// secret.
func (h *AuthHandler) AdminSignup(c *fiber.Ctx) error {
	var req SignupReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if h.AdminSecret == "" || req.AdminSecret != h.AdminSecret {
		return forbidden(c, "Invalid admin secret")
	}
	return h.signup(c, models.RoleAdmin)
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return badRequest(c, "Email and password are required")
	}

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}

	if !utils.CheckPassword(u.Password, password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    u.ID,
				"name":  u.Name,
				"email": u.Email,
				"role":  u.Role,
			},
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Tokens are stateless; the client just drops theirs.
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return notFound(c, "User")
	}

	return c.JSON(fiber.Map{"success": true, "data": u})
}

type UpdateProfileReq struct {
	Name              *string `json:"name"`
	Contact           *string `json:"contact"`
	Phone             *string `json:"phone"`
	Company           *string `json:"company"`
	Country           *string `json:"country"`
	City              *string `json:"city"`
	ProjectExperience *string `json:"project_experience"`
	ContactMethod     *string `json:"contact_method"`
	BudgetPreference  *string `json:"budget_preference"`
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return notFound(c, "User")
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&u.Name, req.Name)
	apply(&u.Contact, req.Contact)
	apply(&u.Phone, req.Phone)
	apply(&u.Company, req.Company)
	apply(&u.Country, req.Country)
	apply(&u.City, req.City)
	apply(&u.ProjectExperience, req.ProjectExperience)
	apply(&u.ContactMethod, req.ContactMethod)
	apply(&u.BudgetPreference, req.BudgetPreference)

	if err := h.DB.Save(&u).Error; err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile updated", "data": u})
}

// Verify lets the frontend confirm a stored token is still good.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	uid, _ := c.Locals("userId").(string)
	role, _ := c.Locals("role").(string)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": uid, "role": role},
	})
}
