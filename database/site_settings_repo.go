package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

// SiteSettingsRepo guards the single site_settings row.
type SiteSettingsRepo struct {
	db *gorm.DB
}

func NewSiteSettingsRepo(db *gorm.DB) *SiteSettingsRepo {
	return &SiteSettingsRepo{db}
}

// Get returns the settings row, creating it with defaults on first use.
func (r *SiteSettingsRepo) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Order("created_at").First(&settings).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		settings = models.DefaultSiteSettings()
		return tx.Create(&settings).Error
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save writes settings and deletes every other row in the same transaction, so the last
// writer wins and exactly one row remains.
func (r *SiteSettingsRepo) Save(ctx context.Context, settings *models.SiteSettings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if settings.ID == uuid.Nil {
			if err := tx.Create(settings).Error; err != nil {
				return err
			}
		} else if err := tx.Save(settings).Error; err != nil {
			return err
		}
		return tx.Where("id <> ?", settings.ID).Delete(&models.SiteSettings{}).Error
	})
}

func (r *SiteSettingsRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SiteSettings{}).Count(&count).Error
	return count, err
}
