package domain

import (
	"context"
	"errors"
	"fmt"
)

// ItemInput is one line as submitted from the editor.
type ItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type CreateInvoiceRequest struct {
	ClientID string
	Items    []ItemInput
}

type UpdateInvoiceRequest struct {
	ID       string
	ClientID string
	Items    []ItemInput
}

type ListInvoiceRequest struct {
	ClientID string
}

type ListInvoiceResponse struct {
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	// Create persists a new invoice, its items, and the advanced settings
	// counter. Numbering follows the naive read-then-increment sequence.
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)

	// CreateAtomic is the hardened variant: the number is taken from a
	// single atomic counter allocation, closing the duplicate-number race.
	CreateAtomic(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)

	Update(ctx context.Context, req UpdateInvoiceRequest) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
}

// Precondition failures are caller-fixable and never retried; no write has
// happened when one is returned.
var (
	ErrPreconditionFailed = errors.New("precondition_failed")

	ErrMissingClient    = fmt.Errorf("missing_client: %w", ErrPreconditionFailed)
	ErrEmptyItems       = fmt.Errorf("empty_items: %w", ErrPreconditionFailed)
	ErrMissingSettings  = fmt.Errorf("missing_settings: %w", ErrPreconditionFailed)
	ErrInvalidItemName  = fmt.Errorf("invalid_item_name: %w", ErrPreconditionFailed)
	ErrInvalidItemPrice = fmt.Errorf("invalid_item_price: %w", ErrPreconditionFailed)

	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")

	// ErrRecordStoreFailure matches any RecordStoreError via errors.Is.
	ErrRecordStoreFailure = errors.New("record_store_failure")
)

// RecordStoreError wraps an underlying store failure with the operation that
// produced it.
type RecordStoreError struct {
	Op  string
	Err error
}

func (e *RecordStoreError) Error() string {
	return fmt.Sprintf("record store failure (%s): %v", e.Op, e.Err)
}

func (e *RecordStoreError) Unwrap() error { return e.Err }

// Is lets callers match the taxonomy sentinel without knowing the operation.
func (e *RecordStoreError) Is(target error) bool {
	return target == ErrRecordStoreFailure
}

// StoreErr wraps err as a RecordStoreError, passing nil through.
func StoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RecordStoreError{Op: op, Err: err}
}
