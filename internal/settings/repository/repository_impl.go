package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/hazimzaman/new-invoices/internal/settings/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.BusinessSettings, error) {
	var settings domain.BusinessSettings
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM business_settings WHERE user_id = ?`,
		userID,
	).Scan(&settings).Error
	if err != nil {
		return nil, err
	}
	if settings.ID == 0 {
		return nil, nil
	}
	return &settings, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, settings *domain.BusinessSettings) error {
	return db.WithContext(ctx).Create(settings).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, settings *domain.BusinessSettings) error {
	return db.WithContext(ctx).
		Model(&domain.BusinessSettings{}).
		Where("user_id = ? AND id = ?", settings.UserID, settings.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(settings).Error
}

func (r *repo) AdvanceCounter(ctx context.Context, db *gorm.DB, userID snowflake.ID, value int64) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE business_settings
		 SET invoice_number = ?
		 WHERE user_id = ? AND invoice_number < ?`,
		value,
		userID,
		value,
	)
	return result.RowsAffected, result.Error
}

func (r *repo) IncrementCounter(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error) {
	var allocated int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			`UPDATE business_settings
			 SET invoice_number = invoice_number + 1
			 WHERE user_id = ?`,
			userID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Raw(
			`SELECT invoice_number FROM business_settings WHERE user_id = ?`,
			userID,
		).Scan(&allocated).Error
	})
	if err != nil {
		return 0, err
	}
	return allocated, nil
}
