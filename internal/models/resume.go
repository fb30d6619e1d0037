package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Course      string `json:"course"`
	Location    string `json:"location"`
	StartYear   string `json:"start_year"`
	EndYear     string `json:"end_year"`
	CGPA        string `json:"cgpa"`
}

type Certification struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Issuer          string `json:"issuer"`
	Year            string `json:"year"`
	Description     string `json:"description"`
	CertificateLink string `json:"certificate_link"`
}

type ResumeProject struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	GithubLink   string `json:"github_link"`
	LiveLink     string `json:"live_link"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type Extracurricular struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Year         string `json:"year"`
	Description  string `json:"description"`
	Role         string `json:"role"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type CustomItem struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	AdditionalInfo string `json:"additional_info"`
}

type CustomSection struct {
	ID      string       `json:"id"`
	Heading string       `json:"heading"`
	Items   []CustomItem `json:"items"`
}

// Resume is a singleton per deployment, created lazily on first admin
// access. Sub-sections live in JSONB arrays; entries carry generated ids so
// they are individually addressable, except skills which the API addresses
// by index.
type Resume struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	FullName  string `gorm:"type:varchar(120)" json:"full_name"`
	Title     string `gorm:"type:varchar(120)" json:"title"`
	Email     string `gorm:"type:varchar(150)" json:"email"`
	Phone     string `gorm:"type:varchar(30)" json:"phone"`
	Location  string `gorm:"type:varchar(120)" json:"location"`
	Portfolio string `gorm:"type:text" json:"portfolio"`
	Linkedin  string `gorm:"type:text" json:"linkedin"`
	Github    string `gorm:"type:text" json:"github"`
	Summary   string `gorm:"type:text" json:"summary"`

	Skills          datatypes.JSONSlice[SkillGroup]      `json:"skills"`
	Education       datatypes.JSONSlice[Education]       `json:"education"`
	Certifications  datatypes.JSONSlice[Certification]   `json:"certifications"`
	Projects        datatypes.JSONSlice[ResumeProject]   `json:"projects"`
	Extracurricular datatypes.JSONSlice[Extracurricular] `json:"extracurricular"`
	CustomSections  datatypes.JSONSlice[CustomSection]   `json:"custom_sections"`

	IsPublished bool      `gorm:"default:false" json:"is_published"`
	LastUpdated time.Time `json:"last_updated"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
