// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invoice references exactly one client of the same user. InvoiceNumber is
// assigned once at creation and immutable thereafter; it is not guaranteed
// globally unique across prefix changes. Total is currency-less; the display
// currency is inherited from the client at render time.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID `gorm:"not null;index" json:"user_id"`
	ClientID      snowflake.ID `gorm:"not null;index" json:"client_id"`
	InvoiceNumber string       `gorm:"column:invoice_number;not null" json:"invoice_number"`
	Total         float64      `gorm:"not null;default:0" json:"total"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []InvoiceItem `gorm:"-" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a line on an invoice. Price is stored as entered; totals are
// recomputed from it, never edited independently. Items are replaced
// wholesale on every invoice update.
type InvoiceItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID      snowflake.ID `gorm:"not null;index" json:"user_id"`
	InvoiceID   snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Price       string       `gorm:"not null" json:"price"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
