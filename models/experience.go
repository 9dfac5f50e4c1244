package models

import (
	"time"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExperienceType string

const (
	ExperienceFullTime   ExperienceType = "full_time"
	ExperiencePartTime   ExperienceType = "part_time"
	ExperienceContract   ExperienceType = "contract"
	ExperienceFreelance  ExperienceType = "freelance"
	ExperienceInternship ExperienceType = "internship"
	ExperienceVolunteer  ExperienceType = "volunteer"
)

// Experience is a position held, shown on the about page and in resumes
type Experience struct {
	Base
	Position         string                      `json:"position" db:"position" gorm:"type:varchar(200);not null"`
	Company          string                      `json:"company" db:"company" gorm:"type:varchar(200);not null;index"`
	CompanyLogo      string                      `json:"company_logo" db:"company_logo" gorm:"type:varchar(255)"`
	CompanyWebsite   string                      `json:"company_website" db:"company_website" gorm:"type:varchar(500)"`
	Location         string                      `json:"location" db:"location" gorm:"type:varchar(200)"`
	ExperienceType   ExperienceType              `json:"experience_type" db:"experience_type" gorm:"type:varchar(20);not null;index"`
	StartDate        time.Time                   `json:"start_date" db:"start_date" gorm:"type:date;not null;index"`
	EndDate          *time.Time                  `json:"end_date" db:"end_date" gorm:"type:date"`
	IsCurrent        bool                        `json:"is_current" db:"is_current" gorm:"not null;index"`
	Description      string                      `json:"description" db:"description" gorm:"type:text"`
	Responsibilities datatypes.JSONSlice[string] `json:"responsibilities" db:"responsibilities"`
	SkillsGained     datatypes.JSONSlice[string] `json:"skills_gained" db:"skills_gained"`
	IsFeatured       bool                        `json:"is_featured" db:"is_featured" gorm:"not null;index"`
	Order            int                         `json:"order" db:"display_order" gorm:"column:display_order;not null"`
	UpdatedAt        time.Time                   `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	Technologies []Technology `json:"technologies,omitempty" gorm:"many2many:experience_technologies"`
	Projects     []Project    `json:"projects,omitempty" gorm:"many2many:experience_projects"`
}

// BeforeSave clears end_date on current positions and checks date order otherwise.
func (e *Experience) BeforeSave(tx *gorm.DB) error {
	if e.IsCurrent {
		e.EndDate = nil
	}
	if e.EndDate != nil && e.StartDate.After(*e.EndDate) {
		return errs.NewInvalidFieldError("end_date", "start date cannot be after end date")
	}
	return nil
}

// Duration is the human readable tenure, measured to now for current positions.
func (e Experience) Duration(now time.Time) string {
	switch {
	case e.IsCurrent:
		return HumanDuration(e.StartDate, now)
	case e.EndDate != nil:
		return HumanDuration(e.StartDate, *e.EndDate)
	default:
		return "Present"
	}
}

func (e Experience) DurationMonths(now time.Time) int {
	switch {
	case e.IsCurrent:
		return MonthsBetween(e.StartDate, now)
	case e.EndDate != nil:
		return MonthsBetween(e.StartDate, *e.EndDate)
	default:
		return 0
	}
}
