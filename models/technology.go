package models

import (
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"gorm.io/gorm"
)

type TechnologyType string

const (
	TechnologyLanguage  TechnologyType = "language"
	TechnologyFramework TechnologyType = "framework"
	TechnologyTool      TechnologyType = "tool"
	TechnologyDatabase  TechnologyType = "database"
	TechnologyService   TechnologyType = "service"
)

// Technology is a language, framework or tool shown on the portfolio.
type Technology struct {
	Base
	Name        string         `json:"name" db:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug        string         `json:"slug" db:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`
	Type        TechnologyType `json:"type" db:"type" gorm:"type:varchar(20);not null;index"`
	Category    string         `json:"category" db:"category" gorm:"type:varchar(50);index"`
	Icon        string         `json:"icon" db:"icon" gorm:"type:text"`
	Color       string         `json:"color" db:"color" gorm:"type:varchar(50)"`
	Proficiency int            `json:"proficiency" db:"proficiency" gorm:"not null"`
	Description string         `json:"description" db:"description" gorm:"type:text"`
	WebsiteURL  string         `json:"website_url" db:"website_url" gorm:"type:varchar(500)"`
	IsFeatured  bool           `json:"is_featured" db:"is_featured" gorm:"not null;index"`
	Order       int            `json:"order" db:"display_order" gorm:"column:display_order;not null"`
}

func (t *Technology) BeforeSave(tx *gorm.DB) error {
	if t.Proficiency < 0 || t.Proficiency > 100 {
		return errs.NewInvalidFieldError("proficiency", "must be between 0 and 100")
	}
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
	return nil
}

// ProjectCategory groups projects on the public site.
type ProjectCategory struct {
	Base
	Name        string `json:"name" db:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug        string `json:"slug" db:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `json:"description" db:"description" gorm:"type:text"`
	Icon        string `json:"icon" db:"icon" gorm:"type:varchar(50)"`
	Color       string `json:"color" db:"color" gorm:"type:varchar(50)"`
	Order       int    `json:"order" db:"display_order" gorm:"column:display_order;not null"`
}

func (c *ProjectCategory) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}
