package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type ContentBlockFilter struct {
	BlockType string
	Active    *bool
}

type ContentBlockRepo struct {
	repo[models.ContentBlock]
}

func NewContentBlockRepo(db *gorm.DB) *ContentBlockRepo {
	return &ContentBlockRepo{repo[models.ContentBlock]{db}}
}

func (r *ContentBlockRepo) FindAll(ctx context.Context, f ContentBlockFilter) ([]models.ContentBlock, error) {
	query := r.db.WithContext(ctx)
	if f.BlockType != "" {
		query = query.Where("block_type = ?", f.BlockType)
	}
	if f.Active != nil {
		query = query.Where("is_active = ?", *f.Active)
	}
	var blocks []models.ContentBlock
	err := query.Order("display_order").Find(&blocks).Error
	return blocks, err
}

// GetOrCreate returns the first block of b's type, inserting b when there is none.
func (r *ContentBlockRepo) GetOrCreate(ctx context.Context, b *models.ContentBlock) (bool, error) {
	return getOrCreate(ctx, r.db, b, "block_type = ?", b.BlockType)
}

type TestimonialFilter struct {
	Approved *bool
	Featured *bool
	Search   string
}

type TestimonialRepo struct {
	repo[models.Testimonial]
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{repo[models.Testimonial]{db}}
}

const testimonialOrder = "display_order, created_at DESC"

func (r *TestimonialRepo) FindApproved(ctx context.Context, limit int) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order(testimonialOrder).
		Limit(limit).
		Find(&testimonials).Error
	return testimonials, err
}

func (r *TestimonialRepo) FindPage(ctx context.Context, f TestimonialFilter, req PageRequest) (Page[models.Testimonial], error) {
	query := r.db.WithContext(ctx).Model(&models.Testimonial{})
	if f.Approved != nil {
		query = query.Where("is_approved = ?", *f.Approved)
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		query = ilike(query, f.Search, "client_name", "content")
	}
	return paginate[models.Testimonial](ctx, query, req, DefaultPageSize, testimonialOrder)
}

type RotatingTextFilter struct {
	TextType string
	Active   *bool
}

type RotatingTextRepo struct {
	repo[models.RotatingText]
}

func NewRotatingTextRepo(db *gorm.DB) *RotatingTextRepo {
	return &RotatingTextRepo{repo[models.RotatingText]{db}}
}

func (r *RotatingTextRepo) FindAll(ctx context.Context, f RotatingTextFilter) ([]models.RotatingText, error) {
	query := r.db.WithContext(ctx)
	if f.TextType != "" {
		query = query.Where("text_type = ?", f.TextType)
	}
	if f.Active != nil {
		query = query.Where("is_active = ?", *f.Active)
	}
	var texts []models.RotatingText
	err := query.Order("display_order, created_at").Find(&texts).Error
	return texts, err
}

// SetActive flips is_active on every id and returns how many rows changed.
func (r *RotatingTextRepo) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&models.RotatingText{}).
		Where("id IN ?", ids).
		UpdateColumn("is_active", active)
	return result.RowsAffected, result.Error
}
