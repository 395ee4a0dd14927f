package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*BusinessSettings, error)
	Insert(ctx context.Context, db *gorm.DB, settings *BusinessSettings) error
	Update(ctx context.Context, db *gorm.DB, settings *BusinessSettings) error

	// AdvanceCounter raises invoice_number to value if it is currently
	// lower. Returns the number of rows changed.
	AdvanceCounter(ctx context.Context, db *gorm.DB, userID snowflake.ID, value int64) (int64, error)

	// IncrementCounter performs a single atomic read-increment-return of
	// invoice_number.
	IncrementCounter(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error)
}
