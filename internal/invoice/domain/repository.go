package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertInvoice(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindInvoiceByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*Invoice, error)
	ListInvoices(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter ListInvoiceFilter) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	DeleteInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertItem(ctx context.Context, db *gorm.DB, item *InvoiceItem) error
	ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]InvoiceItem, error)
	DeleteItemsByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) error
}

type ListInvoiceFilter struct {
	ClientID snowflake.ID
}
