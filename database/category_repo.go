package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	repo[models.ProjectCategory]
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{repo[models.ProjectCategory]{db}}
}

// FindAll returns every category, optionally filtered by a name search
func (r *CategoryRepo) FindAll(ctx context.Context, search string) ([]models.ProjectCategory, error) {
	var categories []models.ProjectCategory
	query := r.db.WithContext(ctx)
	if search != "" {
		query = ilike(query, search, "name")
	}
	err := query.Order("display_order, name").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.ProjectCategory, error) {
	var category models.ProjectCategory
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepo) GetOrCreate(ctx context.Context, c *models.ProjectCategory) (bool, error) {
	if c.Slug == "" {
		c.Slug = models.Slugify(c.Name)
	}
	return getOrCreate(ctx, r.db, c, "slug = ?", c.Slug)
}

// Delete removes the category. Its projects stay and lose their category.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Project{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error
		if err != nil {
			return err
		}
		return deleteByID[models.ProjectCategory](tx, id)
	})
}
