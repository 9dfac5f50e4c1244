package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DemoStatus string

const (
	DemoOnline      DemoStatus = "online"
	DemoOffline     DemoStatus = "offline"
	DemoMaintenance DemoStatus = "maintenance"
)

const DefaultCheckInterval = 300

// DemoInstance is the live deployment behind a project demo
type DemoInstance struct {
	Base
	ProjectID     uuid.UUID  `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex"`
	Status        DemoStatus `json:"status" db:"status" gorm:"type:varchar(20);not null;index"`
	InstanceURL   string     `json:"instance_url" db:"instance_url" gorm:"type:varchar(500)"`
	AdminURL      string     `json:"admin_url" db:"admin_url" gorm:"type:varchar(500)"`
	AdminUsername string     `json:"admin_username" db:"admin_username" gorm:"type:varchar(100)"`
	AdminPassword string     `json:"-" db:"admin_password" gorm:"type:varchar(100)"`
	ContainerID   string     `json:"container_id" db:"container_id" gorm:"type:varchar(100)"`
	LastChecked   *time.Time `json:"last_checked" db:"last_checked"`
	CheckInterval int        `json:"check_interval" db:"check_interval" gorm:"not null"`
	IsPublic      bool       `json:"is_public" db:"is_public" gorm:"not null;index"`
	MaxUsers      int        `json:"max_users" db:"max_users" gorm:"not null"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	Project *Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
	Stats   []DemoStat `json:"stats,omitempty" gorm:"foreignKey:DemoID;references:ID;constraint:OnDelete:CASCADE"`
}

// DueForCheck reports whether the health monitor should probe the instance at now.
func (d DemoInstance) DueForCheck(now time.Time) bool {
	if d.InstanceURL == "" {
		return false
	}
	if d.LastChecked == nil {
		return true
	}
	interval := d.CheckInterval
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return !now.Before(d.LastChecked.Add(time.Duration(interval) * time.Second))
}

// DemoStat is a single visitor session on a demo
type DemoStat struct {
	Base
	DemoID       uuid.UUID  `json:"demo_id" db:"demo_id" gorm:"type:uuid;not null;index"`
	SessionID    string     `json:"session_id" db:"session_id" gorm:"type:varchar(100);not null;index"`
	IPAddress    string     `json:"ip_address" db:"ip_address" gorm:"type:varchar(45)"`
	UserAgent    string     `json:"user_agent" db:"user_agent" gorm:"type:text"`
	StartTime    time.Time  `json:"start_time" db:"start_time" gorm:"not null"`
	EndTime      *time.Time `json:"end_time" db:"end_time"`
	Duration     *int       `json:"duration" db:"duration"`
	ActionsCount int        `json:"actions_count" db:"actions_count" gorm:"not null"`
}

// BeforeSave derives the session length in seconds once the session has ended.
func (s *DemoStat) BeforeSave(tx *gorm.DB) error {
	if s.EndTime != nil {
		seconds := int(s.EndTime.Sub(s.StartTime).Seconds())
		s.Duration = &seconds
	}
	return nil
}
