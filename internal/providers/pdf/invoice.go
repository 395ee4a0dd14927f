package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// InvoiceData is the flattened render input: invoice fields joined with the
// referenced client and the owner's business settings. All money values are
// pre-formatted strings so the renderer stays dumb about currency.
type InvoiceData struct {
	BusinessName  string
	ContactName   string
	BusinessEmail string
	BusinessPhone string
	Address       string

	InvoiceNumber string
	IssueDate     string

	BillToName    string
	BillToCompany string
	BillToAddress string
	BillToEmail   string
	TaxNumber     string
	TaxType       string

	BankName      string
	AccountNumber string
	SwiftCode     string

	Items []InvoiceLine
	Total string
}

// InvoiceLine is one rendered row of the item table.
type InvoiceLine struct {
	Name        string
	Description string
	Price       string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateInvoice(ctx context.Context, invoice InvoiceData) (io.Reader, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, invoice.BusinessName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "Invoice", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(18,
		col.New(6).Add(
			text.New(invoice.ContactName, props.Text{Top: 0}),
			text.New(invoice.Address, props.Text{Top: 4}),
			text.New(invoice.BusinessEmail, props.Text{Top: 8}),
			text.New(invoice.BusinessPhone, props.Text{Top: 12}),
		),
		col.New(6).Add(
			text.New("Invoice number: "+invoice.InvoiceNumber, props.Text{Top: 0, Align: align.Right}),
			text.New("Date of issue: "+invoice.IssueDate, props.Text{Top: 4, Align: align.Right}),
		),
	)

	m.AddRow(28,
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(invoice.BillToName, props.Text{Top: 5}),
			text.New(invoice.BillToCompany, props.Text{Top: 9}),
			text.New(invoice.BillToAddress, props.Text{Top: 13}),
			text.New(invoice.BillToEmail, props.Text{Top: 17}),
			text.New(taxLine(invoice), props.Text{Top: 21}),
		),
		col.New(6),
	)

	m.AddRow(10,
		text.NewCol(5, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range invoice.Items {
		m.AddRow(8,
			text.NewCol(5, item.Name, props.Text{Size: 9}),
			text.NewCol(5, item.Description, props.Text{Size: 9}),
			text.NewCol(2, item.Price, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, invoice.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	if invoice.BankName != "" || invoice.AccountNumber != "" {
		m.AddRow(20,
			col.New(12).Add(
				text.New("Payment details", props.Text{Style: fontstyle.Bold, Top: 4}),
				text.New("Bank: "+invoice.BankName, props.Text{Top: 9, Size: 9}),
				text.New("Account: "+invoice.AccountNumber, props.Text{Top: 13, Size: 9}),
				text.New("SWIFT: "+invoice.SwiftCode, props.Text{Top: 17, Size: 9}),
			),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func taxLine(invoice InvoiceData) string {
	if invoice.TaxNumber == "" {
		return ""
	}
	if invoice.TaxType != "" {
		return invoice.TaxType + ": " + invoice.TaxNumber
	}
	return "Tax ID: " + invoice.TaxNumber
}
