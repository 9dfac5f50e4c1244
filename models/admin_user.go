package models

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

const MaxBioLength = 500

// AdminUser is an account allowed to use the admin API
type AdminUser struct {
	Base
	Username       string            `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex"`
	Email          string            `json:"email" db:"email" gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash   string            `json:"-" db:"password_hash" gorm:"type:varchar(128);not null"`
	FirstName      string            `json:"first_name" db:"first_name" gorm:"type:varchar(150)"`
	LastName       string            `json:"last_name" db:"last_name" gorm:"type:varchar(150)"`
	PhoneNumber    string            `json:"phone_number" db:"phone_number" gorm:"type:varchar(17)"`
	Department     string            `json:"department" db:"department" gorm:"type:varchar(100)"`
	IsSuperAdmin   bool              `json:"is_super_admin" db:"is_super_admin" gorm:"not null"`
	IsStaff        bool              `json:"is_staff" db:"is_staff" gorm:"not null"`
	IsSuperuser    bool              `json:"is_superuser" db:"is_superuser" gorm:"not null"`
	IsActive       bool              `json:"is_active" db:"is_active" gorm:"not null;index"`
	LastLogin      *time.Time        `json:"last_login" db:"last_login"`
	LastLoginIP    string            `json:"last_login_ip" db:"last_login_ip" gorm:"type:varchar(45)"`
	ProfilePicture string            `json:"profile_picture" db:"profile_picture" gorm:"type:varchar(255)"`
	Bio            string            `json:"bio" db:"bio" gorm:"type:text"`
	SocialLinks    datatypes.JSONMap `json:"social_links" db:"social_links"`
	DateJoined     time.Time         `json:"date_joined" db:"date_joined" gorm:"not null"`
}

// BeforeSave keeps the staff flags derived from is_super_admin and validates contact fields.
func (u *AdminUser) BeforeSave(tx *gorm.DB) error {
	u.IsStaff = true
	u.IsSuperuser = u.IsSuperAdmin
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	if u.PhoneNumber != "" && !phonePattern.MatchString(u.PhoneNumber) {
		return errs.NewInvalidFieldError("phone_number", "phone number must be entered in the format '+999999999'")
	}
	if utf8.RuneCountInString(u.Bio) > MaxBioLength {
		return errs.NewInvalidFieldError("bio", "bio cannot exceed 500 characters")
	}
	return nil
}
