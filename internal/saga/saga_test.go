package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRun_AllStepsSucceed(t *testing.T) {
	var order []string
	steps := []Step{
		{Name: "a", Run: func(context.Context) error { order = append(order, "a"); return nil }},
		{Name: "b", Run: func(context.Context) error { order = append(order, "b"); return nil }},
	}

	err := Run(context.Background(), zap.NewNop(), steps)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestRun_CompensatesInReverseOrder(t *testing.T) {
	var compensated []string
	boom := errors.New("boom")

	steps := []Step{
		{
			Name:       "first",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { compensated = append(compensated, "first"); return nil },
		},
		{
			Name:       "second",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { compensated = append(compensated, "second"); return nil },
		},
		{
			Name: "third",
			Run:  func(context.Context) error { return boom },
		},
	}

	err := Run(context.Background(), zap.NewNop(), steps)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"second", "first"}, compensated)
}

func TestRun_NonFatalStepContinues(t *testing.T) {
	var reported error
	var ran bool

	steps := []Step{
		{
			Name:      "advance_counter",
			Run:       func(context.Context) error { return errors.New("update failed") },
			OnFailure: func(err error) { reported = err },
		},
		{
			Name: "insert_items",
			Run:  func(context.Context) error { ran = true; return nil },
		},
	}

	err := Run(context.Background(), zap.NewNop(), steps)
	assert.NoError(t, err)
	assert.Error(t, reported)
	assert.True(t, ran)
}

func TestRun_CompensationFailureDoesNotMaskPrimaryError(t *testing.T) {
	primary := errors.New("primary")

	steps := []Step{
		{
			Name:       "insert_invoice",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { return errors.New("delete failed") },
		},
		{
			Name: "insert_items",
			Run:  func(context.Context) error { return primary },
		},
	}

	err := Run(context.Background(), zap.NewNop(), steps)
	assert.ErrorIs(t, err, primary)
}
