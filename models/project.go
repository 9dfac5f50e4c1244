package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "completed"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectPlanned    ProjectStatus = "planned"
	ProjectArchived   ProjectStatus = "archived"
)

type DemoType string

const (
	DemoLive       DemoType = "live"
	DemoVideo      DemoType = "video"
	DemoScreenshot DemoType = "screenshot"
	DemoNone       DemoType = "none"
)

// Project represents a portfolio project with its metadata
type Project struct {
	Base
	Title             string                      `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	Slug              string                      `json:"slug" db:"slug" gorm:"type:varchar(200);not null;uniqueIndex"`
	ShortDescription  string                      `json:"short_description" db:"short_description" gorm:"type:varchar(300);not null"`
	LongDescription   string                      `json:"long_description" db:"long_description" gorm:"type:text"`
	CategoryID        *uuid.UUID                  `json:"category_id,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Status            ProjectStatus               `json:"status" db:"status" gorm:"type:varchar(20);not null;index"`
	DemoType          DemoType                    `json:"demo_type" db:"demo_type" gorm:"type:varchar(20);not null"`
	DemoURL           string                      `json:"demo_url" db:"demo_url" gorm:"type:varchar(500)"`
	GithubURL         string                      `json:"github_url" db:"github_url" gorm:"type:varchar(500)"`
	DocumentationURL  string                      `json:"documentation_url" db:"documentation_url" gorm:"type:varchar(500)"`
	FeaturedImage     string                      `json:"featured_image" db:"featured_image" gorm:"type:varchar(255)"`
	Tags              datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	Features          datatypes.JSONSlice[string] `json:"features" db:"features"`
	InstallationGuide string                      `json:"installation_guide" db:"installation_guide" gorm:"type:text"`
	IsFeatured        bool                        `json:"is_featured" db:"is_featured" gorm:"not null;index"`
	IsPublic          bool                        `json:"is_public" db:"is_public" gorm:"not null;index"`
	Order             int                         `json:"order" db:"display_order" gorm:"column:display_order;not null"`
	StartDate         *time.Time                  `json:"start_date,omitempty" db:"start_date" gorm:"type:date"`
	CompletionDate    *time.Time                  `json:"completion_date,omitempty" db:"completion_date" gorm:"type:date"`
	UpdatedAt         time.Time                   `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	Category     *ProjectCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Technologies []Technology     `json:"technologies,omitempty" gorm:"many2many:project_technologies"`
	Images       []ProjectImage   `json:"images,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	CodeSnippets []CodeSnippet    `json:"code_snippets,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	DemoInstance *DemoInstance    `json:"demo_instance,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	if p.StartDate != nil && p.CompletionDate != nil && p.StartDate.After(*p.CompletionDate) {
		return errs.NewInvalidFieldError("completion_date", "start date cannot be after completion date")
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return nil
}

// DurationDays is the number of days between start and completion, when both are known.
func (p Project) DurationDays() *int {
	if p.StartDate == nil || p.CompletionDate == nil {
		return nil
	}
	days := int(p.CompletionDate.Sub(*p.StartDate).Hours() / 24)
	return &days
}

// ProjectImage is a gallery image attached to a project
type ProjectImage struct {
	Base
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	Image     string    `json:"image" db:"image" gorm:"type:varchar(255);not null"`
	Caption   string    `json:"caption" db:"caption" gorm:"type:varchar(200)"`
	Order     int       `json:"order" db:"display_order" gorm:"column:display_order;not null"`
}

type CodeLanguage string

const (
	LanguagePython     CodeLanguage = "python"
	LanguageJavaScript CodeLanguage = "javascript"
	LanguageJava       CodeLanguage = "java"
	LanguageHTML       CodeLanguage = "html"
	LanguageCSS        CodeLanguage = "css"
	LanguageSQL        CodeLanguage = "sql"
	LanguageBash       CodeLanguage = "bash"
	LanguageOther      CodeLanguage = "other"
)

// CodeSnippet is a highlighted excerpt shown on a project page
type CodeSnippet struct {
	Base
	ProjectID   uuid.UUID    `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	Title       string       `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	Description string       `json:"description" db:"description" gorm:"type:text"`
	Code        string       `json:"code" db:"code" gorm:"type:text;not null"`
	Language    CodeLanguage `json:"language" db:"language" gorm:"type:varchar(20);not null"`
	LineCount   int          `json:"line_count" db:"line_count" gorm:"not null"`
	IsPublic    bool         `json:"is_public" db:"is_public" gorm:"not null"`
	Order       int          `json:"order" db:"display_order" gorm:"column:display_order;not null"`
}

// BeforeSave keeps line_count in step with the code body.
func (s *CodeSnippet) BeforeSave(tx *gorm.DB) error {
	s.LineCount = CountLines(s.Code)
	return nil
}

func CountLines(code string) int {
	return strings.Count(code, "\n") + 1
}
