package models

import "time"

type MessageStatus string

const (
	MessageNew      MessageStatus = "new"
	MessageRead     MessageStatus = "read"
	MessageReplied  MessageStatus = "replied"
	MessageArchived MessageStatus = "archived"
)

// ContactMessage is a submission from the public contact form
type ContactMessage struct {
	Base
	Name       string        `json:"name" db:"name" gorm:"type:varchar(100);not null"`
	Email      string        `json:"email" db:"email" gorm:"type:varchar(254);not null"`
	Subject    string        `json:"subject" db:"subject" gorm:"type:varchar(200);not null"`
	Message    string        `json:"message" db:"message" gorm:"type:text;not null"`
	Status     MessageStatus `json:"status" db:"status" gorm:"type:varchar(20);not null;index"`
	IPAddress  string        `json:"ip_address" db:"ip_address" gorm:"type:varchar(45)"`
	UserAgent  string        `json:"user_agent" db:"user_agent" gorm:"type:text"`
	IsSpam     bool          `json:"is_spam" db:"is_spam" gorm:"not null;index"`
	AdminNotes string        `json:"admin_notes" db:"admin_notes" gorm:"type:text"`
	RepliedAt  *time.Time    `json:"replied_at" db:"replied_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
