package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EducationType string

const (
	EducationBachelors     EducationType = "bachelors"
	EducationMasters       EducationType = "masters"
	EducationPhD           EducationType = "phd"
	EducationAssociate     EducationType = "associate"
	EducationDiploma       EducationType = "diploma"
	EducationCertification EducationType = "certification"
	EducationCourse        EducationType = "course"
	EducationBootcamp      EducationType = "bootcamp"
)

type GradeType string

const (
	GradeGPA        GradeType = "gpa"
	GradePercentage GradeType = "percentage"
	GradeCGPA       GradeType = "cgpa"
	GradeLetter     GradeType = "grade"
	GradeNone       GradeType = "none"
)

var gradeSuffixes = map[GradeType]string{
	GradeGPA:        "GPA",
	GradePercentage: "%",
	GradeCGPA:       "CGPA",
	GradeLetter:     "Grade",
	GradeNone:       "",
}

// Education is a degree, course or certification
type Education struct {
	Base
	Institution        string                      `json:"institution" db:"institution" gorm:"type:varchar(200);not null;index"`
	InstitutionLogo    string                      `json:"institution_logo" db:"institution_logo" gorm:"type:varchar(255)"`
	InstitutionWebsite string                      `json:"institution_website" db:"institution_website" gorm:"type:varchar(500)"`
	Location           string                      `json:"location" db:"location" gorm:"type:varchar(200)"`
	Degree             string                      `json:"degree" db:"degree" gorm:"type:varchar(200);not null"`
	FieldOfStudy       string                      `json:"field_of_study" db:"field_of_study" gorm:"type:varchar(200)"`
	EducationType      EducationType               `json:"education_type" db:"education_type" gorm:"type:varchar(20);not null;index"`
	StartDate          time.Time                   `json:"start_date" db:"start_date" gorm:"type:date;not null;index"`
	EndDate            *time.Time                  `json:"end_date" db:"end_date" gorm:"type:date"`
	IsCurrent          bool                        `json:"is_current" db:"is_current" gorm:"not null;index"`
	GradeType          GradeType                   `json:"grade_type" db:"grade_type" gorm:"type:varchar(20);not null"`
	GradeValue         *float64                    `json:"grade_value" db:"grade_value" gorm:"type:decimal(5,2)"`
	GradeScale         *float64                    `json:"grade_scale" db:"grade_scale" gorm:"type:decimal(5,2)"`
	GradeDisplay       string                      `json:"grade_display" db:"grade_display" gorm:"type:varchar(50)"`
	Description        string                      `json:"description" db:"description" gorm:"type:text"`
	Achievements       datatypes.JSONSlice[string] `json:"achievements" db:"achievements"`
	Courses            datatypes.JSONSlice[string] `json:"courses" db:"courses"`
	SkillsLearned      datatypes.JSONSlice[string] `json:"skills_learned" db:"skills_learned"`
	ThesisTitle        string                      `json:"thesis_title" db:"thesis_title" gorm:"type:varchar(300)"`
	ThesisDescription  string                      `json:"thesis_description" db:"thesis_description" gorm:"type:text"`
	Transcript         string                      `json:"transcript" db:"transcript" gorm:"type:varchar(255)"`
	IsFeatured         bool                        `json:"is_featured" db:"is_featured" gorm:"not null;index"`
	Order              int                         `json:"order" db:"display_order" gorm:"column:display_order;not null"`
	UpdatedAt          time.Time                   `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

func (Education) TableName() string {
	return "education"
}

func (e *Education) BeforeSave(tx *gorm.DB) error {
	if e.IsCurrent {
		e.EndDate = nil
	}
	if e.EndDate != nil && e.StartDate.After(*e.EndDate) {
		return errs.NewInvalidFieldError("end_date", "start date cannot be after end date")
	}
	if e.GradeValue != nil && e.GradeScale != nil && *e.GradeValue > *e.GradeScale {
		return errs.NewInvalidFieldError("grade_value", "grade value cannot be greater than grade scale")
	}
	return nil
}

// DurationYears is the number of completed years, or false when the record has no end and is not current.
func (e Education) DurationYears(now time.Time) (int, bool) {
	switch {
	case e.IsCurrent:
		return YearsBetween(e.StartDate, now), true
	case e.EndDate != nil:
		return YearsBetween(e.StartDate, *e.EndDate), true
	default:
		return 0, false
	}
}

// FormattedGrade prefers the free-text display and otherwise builds "value/scale SUFFIX".
func (e Education) FormattedGrade() *string {
	if e.GradeValue == nil {
		return nil
	}
	if e.GradeDisplay != "" {
		display := e.GradeDisplay
		return &display
	}

	var grade string
	if e.GradeScale != nil {
		grade = fmt.Sprintf("%.2f/%.2f %s", *e.GradeValue, *e.GradeScale, gradeSuffixes[e.GradeType])
	} else {
		grade = fmt.Sprintf("%.2f %s", *e.GradeValue, gradeSuffixes[e.GradeType])
	}
	grade = strings.TrimSpace(grade)
	return &grade
}
