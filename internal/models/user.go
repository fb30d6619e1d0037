package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index;default:'client'" json:"role"`

	Contact           string `gorm:"type:varchar(60)" json:"contact"`
	Phone             string `gorm:"type:varchar(30)" json:"phone"`
	Company           string `gorm:"type:varchar(120)" json:"company"`
	Country           string `gorm:"type:varchar(80)" json:"country"`
	City              string `gorm:"type:varchar(120)" json:"city"`
	ProjectExperience string `gorm:"type:text" json:"project_experience"`
	ContactMethod     string `gorm:"type:varchar(20);default:'email'" json:"contact_method"` // email | phone | whatsapp
	BudgetPreference  string `gorm:"type:varchar(60)" json:"budget_preference"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
