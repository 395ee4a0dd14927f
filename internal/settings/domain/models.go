// Package domain contains persistence models for per-user business settings.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// BusinessSettings is a per-user singleton. InvoiceNumber is the last-used
// sequence value; it never decreases.
type BusinessSettings struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID `gorm:"not null;uniqueIndex" json:"user_id"`
	BusinessName  string       `gorm:"column:business_name" json:"business_name,omitempty"`
	Name          string       `gorm:"column:name" json:"name,omitempty"`
	Phone         string       `gorm:"column:phone" json:"phone,omitempty"`
	Email         string       `gorm:"column:email" json:"email,omitempty"`
	WiseEmail     string       `gorm:"column:wise_email" json:"wise_email,omitempty"`
	Address       string       `gorm:"column:address" json:"address,omitempty"`
	BankName      string       `gorm:"column:bank_name" json:"bank_name,omitempty"`
	AccountNumber string       `gorm:"column:account_number" json:"account_number,omitempty"`
	SwiftCode     string       `gorm:"column:swift_code" json:"swift_code,omitempty"`
	LogoURL       string       `gorm:"column:logo_url" json:"logo_url,omitempty"`

	InvoiceNumber int64  `gorm:"column:invoice_number;not null;default:0" json:"invoice_number"`
	InvoicePrefix string `gorm:"column:invoice_prefix" json:"invoice_prefix,omitempty"`

	EmailTemplate string `gorm:"column:email_template;type:text" json:"email_template,omitempty"`
	EmailSubject  string `gorm:"column:email_subject" json:"email_subject,omitempty"`

	SMTPHost     string `gorm:"column:smtp_host" json:"smtp_host,omitempty"`
	SMTPPort     int    `gorm:"column:smtp_port" json:"smtp_port,omitempty"`
	SMTPUsername string `gorm:"column:smtp_username" json:"smtp_username,omitempty"`
	SMTPPassword string `gorm:"column:smtp_password" json:"-"`
	SMTPFrom     string `gorm:"column:smtp_from" json:"smtp_from,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (BusinessSettings) TableName() string { return "business_settings" }

// HasSMTPOverride reports whether the user configured direct SMTP delivery.
func (s BusinessSettings) HasSMTPOverride() bool {
	return s.SMTPHost != "" && s.SMTPUsername != ""
}
