package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type TechnologyFilter struct {
	Category string
	Type     string
	Featured *bool
	Search   string
}

type TechnologyRepo struct {
	repo[models.Technology]
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{repo[models.Technology]{db}}
}

func (r *TechnologyRepo) filtered(ctx context.Context, f TechnologyFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Technology{})
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		query = ilike(query, f.Search, "name")
	}
	return query
}

// FindAll returns the technologies matching f, ordered for display
func (r *TechnologyRepo) FindAll(ctx context.Context, f TechnologyFilter) ([]models.Technology, error) {
	var technologies []models.Technology
	err := r.filtered(ctx, f).Order("display_order, name").Find(&technologies).Error
	return technologies, err
}

func (r *TechnologyRepo) FindPage(ctx context.Context, f TechnologyFilter, req PageRequest) (Page[models.Technology], error) {
	return paginate[models.Technology](ctx, r.filtered(ctx, f), req, DefaultPageSize, "display_order, name")
}

func (r *TechnologyRepo) FindFeatured(ctx context.Context, limit int) ([]models.Technology, error) {
	var technologies []models.Technology
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("display_order").
		Limit(limit).
		Find(&technologies).Error
	return technologies, err
}

func (r *TechnologyRepo) FindBySlug(ctx context.Context, slug string) (*models.Technology, error) {
	var technology models.Technology
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&technology).Error; err != nil {
		return nil, err
	}
	return &technology, nil
}

// FindByIDs loads the technologies with the given ids and fails when any id is unknown.
func (r *TechnologyRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Technology, error) {
	return findByIDs[models.Technology](ctx, r.db, ids)
}

// GetOrCreate returns the technology with t.Slug, inserting t when it does not exist yet.
func (r *TechnologyRepo) GetOrCreate(ctx context.Context, t *models.Technology) (bool, error) {
	if t.Slug == "" {
		t.Slug = models.Slugify(t.Name)
	}
	return getOrCreate(ctx, r.db, t, "slug = ?", t.Slug)
}

// Delete removes the technology and its links to projects, experiences and resumes.
func (r *TechnologyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearJoinRows(tx, "technology_id", id,
			"project_technologies", "experience_technologies", "resume_technologies"); err != nil {
			return err
		}
		return deleteByID[models.Technology](tx, id)
	})
}
