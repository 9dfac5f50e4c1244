package models

// VisitorAnalytics records one page visit. Rows are written and never processed here.
type VisitorAnalytics struct {
	Base
	SessionID   string `json:"session_id" db:"session_id" gorm:"type:varchar(100);not null;index"`
	IPAddress   string `json:"ip_address" db:"ip_address" gorm:"type:varchar(45)"`
	UserAgent   string `json:"user_agent" db:"user_agent" gorm:"type:text"`
	Referrer    string `json:"referrer" db:"referrer" gorm:"type:varchar(500)"`
	PageVisited string `json:"page_visited" db:"page_visited" gorm:"type:varchar(500);not null"`
	TimeOnPage  int    `json:"time_on_page" db:"time_on_page" gorm:"not null"`
	IsBounce    bool   `json:"is_bounce" db:"is_bounce" gorm:"not null"`
}

func (VisitorAnalytics) TableName() string {
	return "visitor_analytics"
}
