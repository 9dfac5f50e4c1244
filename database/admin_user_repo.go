package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type AdminUserRepo struct {
	repo[models.AdminUser]
}

func NewAdminUserRepo(db *gorm.DB) *AdminUserRepo {
	return &AdminUserRepo{repo[models.AdminUser]{db}}
}

func (r *AdminUserRepo) FindAll(ctx context.Context, search string) ([]models.AdminUser, error) {
	var users []models.AdminUser
	query := r.db.WithContext(ctx)
	if search != "" {
		query = ilike(query, search, "username", "email", "first_name", "last_name")
	}
	err := query.Order("date_joined DESC").Find(&users).Error
	return users, err
}

// FindByLogin matches either the username or the email address.
func (r *AdminUserRepo) FindByLogin(ctx context.Context, login string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).
		Where("username = ? OR LOWER(email) = LOWER(?)", login, login).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordLogin stores the time and address of a successful login.
func (r *AdminUserRepo) RecordLogin(ctx context.Context, id uuid.UUID, ip string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.AdminUser{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"last_login": at, "last_login_ip": ip}).Error
}
