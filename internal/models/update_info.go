package models

import (
	"time"

	"github.com/google/uuid"
)

// UpdateInfo is a site-wide announcement banner. Only one is active at a
// time; creating a new one deactivates the rest.
type UpdateInfo struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Importance string    `gorm:"type:varchar(10);default:'medium'" json:"importance"` // low | medium | high
	IsActive   bool      `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
