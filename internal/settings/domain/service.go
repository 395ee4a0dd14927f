package domain

import (
	"context"
	"errors"
)

type UpsertSettingsRequest struct {
	BusinessName  string
	Name          string
	Phone         string
	Email         string
	WiseEmail     string
	Address       string
	BankName      string
	AccountNumber string
	SwiftCode     string
	LogoURL       string
	InvoiceNumber int64
	InvoicePrefix string
	EmailTemplate string
	EmailSubject  string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
}

type Service interface {
	// Get returns the caller's settings, or ErrNotFound when the singleton
	// has not been created yet.
	Get(ctx context.Context) (BusinessSettings, error)
	Upsert(ctx context.Context, req UpsertSettingsRequest) (BusinessSettings, error)

	// AdvanceCounter moves the last-used counter up to value. It never
	// lowers the counter; a stale value is a silent no-op.
	AdvanceCounter(ctx context.Context, value int64) error

	// AllocateInvoiceNumber atomically increments the counter and returns
	// the new value. Single conditional update, safe under concurrency.
	AllocateInvoiceNumber(ctx context.Context) (int64, error)
}

var (
	ErrInvalidUser    = errors.New("invalid_user")
	ErrNotFound       = errors.New("not_found")
	ErrCounterLowered = errors.New("counter_lowered")
)
