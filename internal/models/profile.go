package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a custom type for handling string arrays in JSONB
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Education is an entry in the profile's education history. Entries are
// embedded in the profile document and have positional identity only.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Experience is an entry in the profile's work history.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Project is an entry in the profile's project list. Unlike education
// and experience entries, projects are individually addressable by id.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	GithubURL   string    `json:"githubUrl"`
	DemoURL     string    `json:"demoUrl"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EducationList is a JSONB column holding embedded education entries.
type EducationList []Education

func (l EducationList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *EducationList) Scan(value interface{}) error {
	return scanJSON(value, l, func() { *l = EducationList{} })
}

// ExperienceList is a JSONB column holding embedded experience entries.
type ExperienceList []Experience

func (l ExperienceList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *ExperienceList) Scan(value interface{}) error {
	return scanJSON(value, l, func() { *l = ExperienceList{} })
}

// ProjectList is a JSONB column holding embedded project entries in
// insertion order.
type ProjectList []Project

func (l ProjectList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *ProjectList) Scan(value interface{}) error {
	return scanJSON(value, l, func() { *l = ProjectList{} })
}

func scanJSON(value interface{}, dest interface{}, reset func()) error {
	if value == nil {
		reset()
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, dest)
}

// Profile is the single portfolio document owned by a user. Education,
// experience and project entries are embedded rather than stored in
// their own tables, so every profile read and write is one row.
type Profile struct {
	ID         uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedBy  uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"createdBy"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Name       string         `gorm:"not null" json:"name"`
	Email      string         `gorm:"not null" json:"email"`
	Bio        string         `gorm:"type:text" json:"bio"`
	Location   string         `json:"location"`
	Website    string         `gorm:"size:255" json:"website"`
	Github     string         `gorm:"size:255" json:"github"`
	Linkedin   string         `gorm:"size:255" json:"linkedin"`
	Skills     StringArray    `gorm:"type:jsonb;not null;default:'[]'" json:"skills"`
	Education  EducationList  `gorm:"type:jsonb;not null;default:'[]'" json:"education"`
	Experience ExperienceList `gorm:"type:jsonb;not null;default:'[]'" json:"experience"`
	Projects   ProjectList    `gorm:"type:jsonb;not null;default:'[]'" json:"projects"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
