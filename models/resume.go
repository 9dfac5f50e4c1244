package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResumeType string

const (
	ResumeCurrent     ResumeType = "current"
	ResumeTechnical   ResumeType = "technical"
	ResumeCreative    ResumeType = "creative"
	ResumeAcademic    ResumeType = "academic"
	ResumeConcise     ResumeType = "concise"
	ResumeDetailed    ResumeType = "detailed"
	ResumeCoverLetter ResumeType = "cover_letter"
)

type FileType string

const (
	FilePDF  FileType = "pdf"
	FileDOCX FileType = "docx"
	FileTXT  FileType = "txt"
	FileHTML FileType = "html"
)

// Resume is an uploaded CV document with links to the records it covers
type Resume struct {
	Base
	Title         string            `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	File          string            `json:"file" db:"file" gorm:"type:varchar(255);not null"`
	FileType      FileType          `json:"file_type" db:"file_type" gorm:"type:varchar(10);not null"`
	ResumeType    ResumeType        `json:"resume_type" db:"resume_type" gorm:"type:varchar(20);not null;index"`
	Language      string            `json:"language" db:"language" gorm:"type:varchar(10);not null"`
	Version       string            `json:"version" db:"version" gorm:"type:varchar(20);not null"`
	IsPrimary     bool              `json:"is_primary" db:"is_primary" gorm:"not null;uniqueIndex:idx_resumes_single_primary,where:is_primary = true"`
	IsPublic      bool              `json:"is_public" db:"is_public" gorm:"not null;index"`
	LastUpdated   time.Time         `json:"last_updated" db:"last_updated" gorm:"autoUpdateTime"`
	FileSize      *int64            `json:"file_size" db:"file_size"`
	DownloadCount int               `json:"download_count" db:"download_count" gorm:"not null"`
	ViewCount     int               `json:"view_count" db:"view_count" gorm:"not null"`
	Description   string            `json:"description" db:"description" gorm:"type:text"`
	Metadata      datatypes.JSONMap `json:"metadata" db:"metadata"`

	Experiences  []Experience `json:"experiences,omitempty" gorm:"many2many:resume_experiences"`
	Education    []Education  `json:"education,omitempty" gorm:"many2many:resume_education"`
	Projects     []Project    `json:"projects,omitempty" gorm:"many2many:resume_projects"`
	Technologies []Technology `json:"technologies,omitempty" gorm:"many2many:resume_technologies"`
}

// BeforeSave checks that the stored file carries the extension of its declared type.
func (r *Resume) BeforeSave(tx *gorm.DB) error {
	if r.File == "" {
		return errs.NewMissingRequiredFieldError("file")
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(r.File)), ".")
	if ext != string(r.FileType) {
		return errs.NewInvalidFieldError("file", "file extension does not match selected file type "+string(r.FileType))
	}
	return nil
}

func (r Resume) FileSizeHuman() string {
	if r.FileSize == nil {
		return "Unknown"
	}
	return HumanFileSize(*r.FileSize)
}

// FileName is the base name used for downloads.
func (r Resume) FileName() string {
	return filepath.Base(r.File)
}
