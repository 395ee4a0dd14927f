package pdf

import (
	"context"
	"io"
)

// Provider renders a persisted invoice plus business settings into a PDF.
// It is consumed by the HTTP layer after the invoice exists; the sequencer
// never calls it.
type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error) {
	return nil, nil
}
