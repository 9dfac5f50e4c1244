package database

import (
	"context"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type ContactMessageFilter struct {
	Status string
	IsSpam *bool
	Search string
}

type ContactMessageRepo struct {
	repo[models.ContactMessage]
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{repo[models.ContactMessage]{db}}
}

// FindPage lists messages newest first
func (r *ContactMessageRepo) FindPage(ctx context.Context, f ContactMessageFilter, req PageRequest) (Page[models.ContactMessage], error) {
	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.IsSpam != nil {
		query = query.Where("is_spam = ?", *f.IsSpam)
	}
	if f.Search != "" {
		query = ilike(query, f.Search, "name", "email", "subject")
	}
	return paginate[models.ContactMessage](ctx, query, req, DefaultPageSize, "created_at DESC")
}
