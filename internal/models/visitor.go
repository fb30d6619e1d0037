package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VisitRecord struct {
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

// Visitor is the single site-wide visit counter.
type Visitor struct {
	ID          uuid.UUID                        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Count       int64                            `gorm:"not null;default:0" json:"count"`
	LastVisited time.Time                        `json:"last_visited"`
	Visits      datatypes.JSONSlice[VisitRecord] `json:"visits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Visitor) UniqueIPCount() int {
	seen := map[string]struct{}{}
	for _, r := range v.Visits {
		seen[r.IP] = struct{}{}
	}
	return len(seen)
}
