package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type EducationFilter struct {
	EducationType string
	IsCurrent     *bool
	Featured      *bool
	Search        string
}

type EducationRepo struct {
	repo[models.Education]
}

func NewEducationRepo(db *gorm.DB) *EducationRepo {
	return &EducationRepo{repo[models.Education]{db}}
}

func (r *EducationRepo) filtered(ctx context.Context, f EducationFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Education{})
	if f.EducationType != "" {
		query = query.Where("education_type = ?", f.EducationType)
	}
	if f.IsCurrent != nil {
		query = query.Where("is_current = ?", *f.IsCurrent)
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		query = ilike(query, f.Search, "institution", "degree", "field_of_study")
	}
	return query
}

func (r *EducationRepo) FindPage(ctx context.Context, f EducationFilter, req PageRequest) (Page[models.Education], error) {
	return paginate[models.Education](ctx, r.filtered(ctx, f), req, DefaultPageSize, timelineOrder)
}

func (r *EducationRepo) FindFeatured(ctx context.Context, limit int) ([]models.Education, error) {
	var education []models.Education
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order(timelineOrder).
		Limit(limit).
		Find(&education).Error
	return education, err
}

func (r *EducationRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Education, error) {
	return findByIDs[models.Education](ctx, r.db, ids)
}

func (r *EducationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearJoinRows(tx, "education_id", id, "resume_education"); err != nil {
			return err
		}
		return deleteByID[models.Education](tx, id)
	})
}
