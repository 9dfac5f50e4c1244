package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type ExperienceFilter struct {
	ExperienceType string
	IsCurrent      *bool
	Featured       *bool
	Search         string
}

type ExperienceRepo struct {
	repo[models.Experience]
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{repo[models.Experience]{db}}
}

const timelineOrder = "start_date DESC, display_order"

func withExperienceRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Technologies", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order, name")
	}).Preload("Projects", func(db *gorm.DB) *gorm.DB {
		return db.Order(projectOrder)
	})
}

func (r *ExperienceRepo) filtered(ctx context.Context, f ExperienceFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Experience{})
	if f.ExperienceType != "" {
		query = query.Where("experience_type = ?", f.ExperienceType)
	}
	if f.IsCurrent != nil {
		query = query.Where("is_current = ?", *f.IsCurrent)
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		query = ilike(query, f.Search, "position", "company", "description")
	}
	return query
}

// FindPage lists experiences, most recent first
func (r *ExperienceRepo) FindPage(ctx context.Context, f ExperienceFilter, req PageRequest) (Page[models.Experience], error) {
	return paginate[models.Experience](ctx, r.filtered(ctx, f), req, DefaultPageSize, timelineOrder, withExperienceRelations)
}

func (r *ExperienceRepo) FindFeatured(ctx context.Context, limit int) ([]models.Experience, error) {
	var experiences []models.Experience
	err := r.db.WithContext(ctx).
		Scopes(withExperienceRelations).
		Where("is_featured = ?", true).
		Order(timelineOrder).
		Limit(limit).
		Find(&experiences).Error
	return experiences, err
}

func (r *ExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	var experience models.Experience
	err := r.db.WithContext(ctx).Scopes(withExperienceRelations).Where("id = ?", id).First(&experience).Error
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (r *ExperienceRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Experience, error) {
	return findByIDs[models.Experience](ctx, r.db, ids)
}

// Save creates or updates the experience. Nil slices leave the matching links untouched.
func (r *ExperienceRepo) Save(ctx context.Context, experience *models.Experience, isNew bool, technologies []models.Technology, projects []models.Project) error {
	associations := map[string]any{}
	if technologies != nil {
		associations["Technologies"] = technologies
	}
	if projects != nil {
		associations["Projects"] = projects
	}
	return saveWithAssociations(ctx, r.db, experience, isNew, associations)
}

func (r *ExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearJoinRows(tx, "experience_id", id,
			"experience_technologies", "experience_projects", "resume_experiences"); err != nil {
			return err
		}
		return deleteByID[models.Experience](tx, id)
	})
}
