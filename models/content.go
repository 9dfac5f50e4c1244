package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"gorm.io/gorm"
)

type BlockType string

const (
	BlockHero         BlockType = "hero"
	BlockAbout        BlockType = "about"
	BlockFeatures     BlockType = "features"
	BlockTestimonials BlockType = "testimonials"
	BlockCTA          BlockType = "cta"
)

// ContentBlock is a reusable section of homepage copy
type ContentBlock struct {
	Base
	BlockType  BlockType `json:"block_type" db:"block_type" gorm:"type:varchar(20);not null;index"`
	Title      string    `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	Subtitle   string    `json:"subtitle" db:"subtitle" gorm:"type:varchar(300)"`
	Content    string    `json:"content" db:"content" gorm:"type:text"`
	Image      string    `json:"image" db:"image" gorm:"type:varchar(255)"`
	ButtonText string    `json:"button_text" db:"button_text" gorm:"type:varchar(50)"`
	ButtonURL  string    `json:"button_url" db:"button_url" gorm:"type:varchar(500)"`
	IsActive   bool      `json:"is_active" db:"is_active" gorm:"not null;index"`
	Order      int       `json:"order" db:"display_order" gorm:"column:display_order;not null"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// Testimonial is a client quote, optionally tied to a project
type Testimonial struct {
	Base
	ClientName  string     `json:"client_name" db:"client_name" gorm:"type:varchar(100);not null"`
	ClientRole  string     `json:"client_role" db:"client_role" gorm:"type:varchar(100)"`
	ClientImage string     `json:"client_image" db:"client_image" gorm:"type:varchar(255)"`
	Content     string     `json:"content" db:"content" gorm:"type:text;not null"`
	Rating      int        `json:"rating" db:"rating" gorm:"not null"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty" db:"project_id" gorm:"type:uuid;index"`
	IsFeatured  bool       `json:"is_featured" db:"is_featured" gorm:"not null"`
	IsApproved  bool       `json:"is_approved" db:"is_approved" gorm:"not null;index"`
	Order       int        `json:"order" db:"display_order" gorm:"column:display_order;not null"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:SET NULL"`
}

func (t *Testimonial) BeforeSave(tx *gorm.DB) error {
	if t.Rating < 1 || t.Rating > 5 {
		return errs.NewInvalidFieldError("rating", "must be between 1 and 5")
	}
	return nil
}

type TextType string

const (
	TextHero        TextType = "hero"
	TextTagline     TextType = "tagline"
	TextAchievement TextType = "achievement"
	TextFeature     TextType = "feature"
)

const (
	DefaultTypingSpeed  = 100
	DefaultDelaySeconds = 2.0
	MinTypingSpeed      = 50
	MinDelaySeconds     = 0.5
)

// RotatingText is one line of the animated hero copy
type RotatingText struct {
	Base
	Text         string    `json:"text" db:"text" gorm:"type:varchar(200);not null"`
	TextType     TextType  `json:"text_type" db:"text_type" gorm:"type:varchar(20);not null;index"`
	Order        int       `json:"order" db:"display_order" gorm:"column:display_order;not null"`
	IsActive     bool      `json:"is_active" db:"is_active" gorm:"not null;index"`
	DelaySeconds float64   `json:"delay_seconds" db:"delay_seconds" gorm:"not null"`
	TypingSpeed  int       `json:"typing_speed" db:"typing_speed" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

func (t *RotatingText) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}

// Validate rejects blank text and animation timings the frontend cannot play.
func (t RotatingText) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return errs.NewInvalidFieldError("text", "text cannot be empty")
	}
	if t.DelaySeconds < MinDelaySeconds {
		return errs.NewInvalidFieldError("delay_seconds", "delay must be at least 0.5 seconds")
	}
	if t.TypingSpeed < MinTypingSpeed {
		return errs.NewInvalidFieldError("typing_speed", "typing speed must be at least 50ms")
	}
	return nil
}
