package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResumeFilter struct {
	ResumeType string
	Language   string
	Public     *bool
	Search     string
}

// ResumeLinks are the records a resume covers. A nil slice leaves that link set untouched.
type ResumeLinks struct {
	Experiences  []models.Experience
	Education    []models.Education
	Projects     []models.Project
	Technologies []models.Technology
}

func (l ResumeLinks) associations() map[string]any {
	associations := map[string]any{}
	if l.Experiences != nil {
		associations["Experiences"] = l.Experiences
	}
	if l.Education != nil {
		associations["Education"] = l.Education
	}
	if l.Projects != nil {
		associations["Projects"] = l.Projects
	}
	if l.Technologies != nil {
		associations["Technologies"] = l.Technologies
	}
	return associations
}

type ResumeRepo struct {
	repo[models.Resume]
}

func NewResumeRepo(db *gorm.DB) *ResumeRepo {
	return &ResumeRepo{repo[models.Resume]{db}}
}

const resumeOrder = "is_primary DESC, last_updated DESC"

func withResumeRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Experiences", func(db *gorm.DB) *gorm.DB { return db.Order(timelineOrder) }).
		Preload("Education", func(db *gorm.DB) *gorm.DB { return db.Order(timelineOrder) }).
		Preload("Projects", func(db *gorm.DB) *gorm.DB { return db.Order(projectOrder) }).
		Preload("Technologies", func(db *gorm.DB) *gorm.DB { return db.Order("display_order, name") })
}

func (r *ResumeRepo) filtered(ctx context.Context, f ResumeFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Resume{})
	if f.ResumeType != "" {
		query = query.Where("resume_type = ?", f.ResumeType)
	}
	if f.Language != "" {
		query = query.Where("language = ?", f.Language)
	}
	if f.Public != nil {
		query = query.Where("is_public = ?", *f.Public)
	}
	if f.Search != "" {
		query = ilike(query, f.Search, "title", "description")
	}
	return query
}

// FindAll lists resumes with their related records, the primary first, then the most recently updated
func (r *ResumeRepo) FindAll(ctx context.Context, f ResumeFilter) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.filtered(ctx, f).Scopes(withResumeRelations).Order(resumeOrder).Find(&resumes).Error
	return resumes, err
}

func (r *ResumeRepo) FindPage(ctx context.Context, f ResumeFilter, req PageRequest) (Page[models.Resume], error) {
	return paginate[models.Resume](ctx, r.filtered(ctx, f), req, DefaultPageSize, resumeOrder)
}

func (r *ResumeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.WithContext(ctx).Scopes(withResumeRelations).Where("id = ?", id).First(&resume).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

// FindPublicByID returns the resume with its related records when it is public.
func (r *ResumeRepo) FindPublicByID(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).
		Scopes(withResumeRelations).
		Where("id = ? AND is_public = ?", id, true).
		First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// FindPrimaryPublic returns the public primary resume, or gorm.ErrRecordNotFound.
func (r *ResumeRepo) FindPrimaryPublic(ctx context.Context) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).
		Scopes(withResumeRelations).
		Where("is_primary = ? AND is_public = ?", true, true).
		First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// FindForCV prefers the public primary resume and falls back to the most recently updated public one.
func (r *ResumeRepo) FindForCV(ctx context.Context) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order(resumeOrder).
		First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// Save writes the resume and its links in one transaction. When the resume is primary every
// other resume is demoted first.
func (r *ResumeRepo) Save(ctx context.Context, resume *models.Resume, isNew bool, links ResumeLinks) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isNew && resume.ID == uuid.Nil {
			resume.ID = uuid.New()
		}
		if resume.IsPrimary {
			if err := demoteOtherResumes(tx, resume.ID); err != nil {
				return err
			}
		}

		var err error
		if isNew {
			err = tx.Omit(clause.Associations).Create(resume).Error
		} else {
			err = tx.Omit(clause.Associations).Save(resume).Error
		}
		if err != nil {
			return err
		}
		return replaceAssociations(tx, resume, links.associations())
	})
}

// SetPrimary makes id the only primary resume.
func (r *ResumeRepo) SetPrimary(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := demoteOtherResumes(tx, id); err != nil {
			return err
		}
		result := tx.Model(&models.Resume{}).Where("id = ?", id).UpdateColumn("is_primary", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func demoteOtherResumes(tx *gorm.DB, keep uuid.UUID) error {
	return tx.Model(&models.Resume{}).
		Where("is_primary = ? AND id <> ?", true, keep).
		UpdateColumn("is_primary", false).Error
}

// IncrementDownloadCount adds one download in a single UPDATE.
func (r *ResumeRepo) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "download_count")
}

// IncrementViewCount adds one view and returns the new total.
func (r *ResumeRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) (int, error) {
	if err := r.increment(ctx, id, "view_count"); err != nil {
		return 0, err
	}
	var resume models.Resume
	if err := r.db.WithContext(ctx).Select("id", "view_count").Where("id = ?", id).First(&resume).Error; err != nil {
		return 0, err
	}
	return resume.ViewCount, nil
}

func (r *ResumeRepo) increment(ctx context.Context, id uuid.UUID, column string) error {
	result := r.db.WithContext(ctx).Model(&models.Resume{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the resume and its links and returns the deleted row so the caller can remove
// the stored file.
func (r *ResumeRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&resume).Error; err != nil {
			return err
		}
		if err := clearJoinRows(tx, "resume_id", id,
			"resume_experiences", "resume_education", "resume_projects", "resume_technologies"); err != nil {
			return err
		}
		return deleteByID[models.Resume](tx, id)
	})
	if err != nil {
		return nil, err
	}
	return &resume, nil
}
