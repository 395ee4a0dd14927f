package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreErr_MatchesSentinel(t *testing.T) {
	underlying := errors.New("connection reset")
	err := StoreErr("insert_invoice", underlying)

	assert.ErrorIs(t, err, ErrRecordStoreFailure)
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "insert_invoice")
}

func TestStoreErr_NilPassesThrough(t *testing.T) {
	assert.NoError(t, StoreErr("insert_invoice", nil))
}

func TestPreconditionSentinels(t *testing.T) {
	for _, err := range []error{
		ErrMissingClient,
		ErrEmptyItems,
		ErrMissingSettings,
		ErrInvalidItemName,
		ErrInvalidItemPrice,
	} {
		assert.ErrorIs(t, err, ErrPreconditionFailed)
		assert.NotErrorIs(t, err, ErrRecordStoreFailure)
	}
}
