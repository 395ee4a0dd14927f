package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	clientdomain "github.com/hazimzaman/new-invoices/internal/client/domain"
	invoicedomain "github.com/hazimzaman/new-invoices/internal/invoice/domain"
	settingsdomain "github.com/hazimzaman/new-invoices/internal/settings/domain"
)

func TestMapError_PreconditionFailed(t *testing.T) {
	status, payload := mapError(invoicedomain.ErrEmptyItems)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "precondition_failed", payload.Type)
	assert.Equal(t, "empty_items", payload.Message)
}

func TestMapError_RecordStoreFailure(t *testing.T) {
	err := invoicedomain.StoreErr("insert_items", errors.New("disk full"))
	status, payload := mapError(err)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "record_store_failure", payload.Type)
}

func TestMapError_NotFound(t *testing.T) {
	for _, err := range []error{
		clientdomain.ErrNotFound,
		settingsdomain.ErrNotFound,
		invoicedomain.ErrNotFound,
	} {
		status, payload := mapError(err)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not_found", payload.Type)
	}
}

func TestMapError_Unauthorized(t *testing.T) {
	for _, err := range []error{
		ErrUnauthorized,
		invoicedomain.ErrInvalidUser,
		settingsdomain.ErrInvalidUser,
		clientdomain.ErrInvalidUser,
	} {
		status, _ := mapError(err)
		assert.Equal(t, http.StatusUnauthorized, status)
	}
}

func TestMapError_ValidationSentinels(t *testing.T) {
	status, payload := mapError(settingsdomain.ErrCounterLowered)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)
	assert.Len(t, payload.Errors, 1)
	assert.Equal(t, "counter_lowered", payload.Errors[0].Code)
}

func TestMapError_UnknownDefaultsToInternal(t *testing.T) {
	status, payload := mapError(errors.New("surprise"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
}

func TestClassifyErrorForLog(t *testing.T) {
	typ, code := classifyErrorForLog(invoicedomain.StoreErr("insert_items", errors.New("disk full")))
	assert.Equal(t, "record_store_failure", typ)
	assert.Equal(t, "record_store_failure", code)

	typ, code = classifyErrorForLog(settingsdomain.ErrCounterLowered)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "counter_lowered", code)
}
