package models

import (
	"time"

	"gorm.io/datatypes"
)

// SiteSettings is the single row of site-wide configuration
type SiteSettings struct {
	Base
	SiteName            string            `json:"site_name" db:"site_name" gorm:"type:varchar(100);not null"`
	SiteTagline         string            `json:"site_tagline" db:"site_tagline" gorm:"type:varchar(200)"`
	Logo                string            `json:"logo" db:"logo" gorm:"type:varchar(255)"`
	Favicon             string            `json:"favicon" db:"favicon" gorm:"type:varchar(255)"`
	MyImage             string            `json:"my_image" db:"my_image" gorm:"type:varchar(255)"`
	SelfDescription     string            `json:"self_description" db:"self_description" gorm:"type:text"`
	SelfLongDescription string            `json:"self_long_description" db:"self_long_description" gorm:"type:text"`
	AdminEmail          string            `json:"admin_email" db:"admin_email" gorm:"type:varchar(254)"`
	ContactEmail        string            `json:"contact_email" db:"contact_email" gorm:"type:varchar(254)"`
	ContactPhone        string            `json:"contact_phone" db:"contact_phone" gorm:"type:varchar(20)"`
	Location            string            `json:"location" db:"location" gorm:"type:varchar(200)"`
	PrimaryColor        string            `json:"primary_color" db:"primary_color" gorm:"type:varchar(7)"`
	SecondaryColor      string            `json:"secondary_color" db:"secondary_color" gorm:"type:varchar(7)"`
	DarkMode            bool              `json:"dark_mode" db:"dark_mode" gorm:"not null"`
	SocialLinks         datatypes.JSONMap `json:"social_links" db:"social_links"`
	AnalyticsCode       string            `json:"analytics_code" db:"analytics_code" gorm:"type:text"`
	SEODescription      string            `json:"seo_description" db:"seo_description" gorm:"type:text"`
	SEOKeywords         string            `json:"seo_keywords" db:"seo_keywords" gorm:"type:text"`
	MaintenanceMode     bool              `json:"maintenance_mode" db:"maintenance_mode" gorm:"not null"`
	MaintenanceMessage  string            `json:"maintenance_message" db:"maintenance_message" gorm:"type:text"`
	UpdatedAt           time.Time         `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}

// DefaultSiteSettings is the row created the first time settings are read.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:       "DevPortfolio",
		SiteTagline:    "Multi-Language Portfolio",
		AdminEmail:     "admin@example.com",
		ContactEmail:   "contact@example.com",
		PrimaryColor:   "#3b82f6",
		SecondaryColor: "#8b5cf6",
		DarkMode:       true,
		SocialLinks:    datatypes.JSONMap{},
	}
}

// SocialLink returns the named social link, or "" when absent.
func (s SiteSettings) SocialLink(name string) string {
	if s.SocialLinks == nil {
		return ""
	}
	v, ok := s.SocialLinks[name].(string)
	if !ok {
		return ""
	}
	return v
}
