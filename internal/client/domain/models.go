// Package domain contains persistence models for clients.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a billable party owned by exactly one user. Currency is an opaque
// display symbol ("$", "€", "RM"), never validated or converted.
type Client struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID      snowflake.ID `gorm:"not null;index" json:"user_id"`
	Name        string       `gorm:"not null" json:"name"`
	CompanyName string       `gorm:"column:company_name" json:"company_name,omitempty"`
	Email       string       `gorm:"not null" json:"email"`
	Address     string       `gorm:"column:client_address" json:"client_address,omitempty"`
	TaxNumber   string       `gorm:"column:tax_number" json:"tax_number,omitempty"`
	TaxType     string       `gorm:"column:tax_type" json:"tax_type,omitempty"`
	Currency    string       `gorm:"column:currency" json:"currency,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
