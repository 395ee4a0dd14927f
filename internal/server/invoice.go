package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/hazimzaman/new-invoices/internal/client/domain"
	invoicedomain "github.com/hazimzaman/new-invoices/internal/invoice/domain"
	"github.com/hazimzaman/new-invoices/internal/invoice/format"
	"github.com/hazimzaman/new-invoices/internal/providers/email"
	"github.com/hazimzaman/new-invoices/internal/providers/pdf"
	settingsdomain "github.com/hazimzaman/new-invoices/internal/settings/domain"
	"go.uber.org/zap"
)

type invoiceRequest struct {
	ClientID string                    `json:"client_id"`
	Items    []invoicedomain.ItemInput `json:"items"`
}

type sendInvoiceRequest struct {
	To      string `json:"to"`
	CC      string `json:"cc"`
	BCC     string `json:"bcc"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type previewTotalRequest struct {
	Items    []invoicedomain.ItemInput `json:"items"`
	Currency string                    `json:"currency"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	create := s.invoiceSvc.Create
	if c.Query("atomic") == "true" {
		create = s.invoiceSvc.CreateAtomic
	}

	invoice, err := create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		ClientID: req.ClientID,
		Items:    req.Items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": invoice})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		ClientID: c.Query("client_id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Invoices})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateInvoiceRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		ClientID: req.ClientID,
		Items:    req.Items,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	ctx := c.Request.Context()

	invoice, _, data, err := s.renderData(c, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdf.GenerateInvoice(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	raw, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := invoicePDFName(invoice.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", raw)
}

func (s *Server) SendInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	var req sendInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, client, data, err := s.renderData(c, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	to := strings.TrimSpace(req.To)
	if to == "" {
		to = client.Email
	}
	if to == "" {
		AbortWithError(c, newValidationError("to", "missing_recipient", "no recipient address"))
		return
	}

	doc, err := s.pdf.GenerateInvoice(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	raw, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	msg := email.Message{
		From:         s.cfg.Mail.From,
		To:           to,
		CC:           strings.TrimSpace(req.CC),
		BCC:          strings.TrimSpace(req.BCC),
		Subject:      mailSubject(req.Subject, settings, invoice),
		Text:         mailBody(req.Message, settings, client, invoice, data.Total),
		BusinessName: settings.BusinessName,
		Attachments: []email.Attachment{
			{Filename: invoicePDFName(invoice.InvoiceNumber), Content: raw},
		},
	}

	transport := s.mail
	if settings.HasSMTPOverride() {
		transport = email.NewSMTP(email.SMTPConfig{
			Host:     settings.SMTPHost,
			Port:     settings.SMTPPort,
			Username: settings.SMTPUsername,
			Password: settings.SMTPPassword,
			From:     settings.SMTPFrom,
		})
	}

	if err := transport.Send(ctx, msg); err != nil {
		s.metrics.RecordMailDelivery("failed")
		s.log.Error("invoice mail delivery failed",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordMailDelivery("delivered")
	c.JSON(http.StatusOK, gin.H{"status": "sent", "to": to})
}

// PreviewTotal mirrors the editor's running total so the client never
// reimplements the summing rules.
func (s *Server) PreviewTotal(c *gin.Context) {
	var req previewTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	total := format.Total(itemPrices(req.Items))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"total":     total,
		"formatted": format.FormatCurrency(total, req.Currency),
	}})
}

// renderData joins an invoice with its client and the owner's settings into
// the flat structure the PDF renderer takes.
func (s *Server) renderData(c *gin.Context, id string) (invoicedomain.Invoice, clientdomain.Client, pdf.InvoiceData, error) {
	ctx := c.Request.Context()

	invoice, err := s.invoiceSvc.GetByID(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, clientdomain.Client{}, pdf.InvoiceData{}, err
	}

	client, err := s.clientSvc.GetByID(ctx, invoice.ClientID.String())
	if err != nil {
		return invoicedomain.Invoice{}, clientdomain.Client{}, pdf.InvoiceData{}, err
	}

	var settings settingsdomain.BusinessSettings
	if loaded, err := s.settingsSvc.Get(ctx); err == nil {
		settings = loaded
	}

	lines := make([]pdf.InvoiceLine, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, pdf.InvoiceLine{
			Name:        item.Name,
			Description: item.Description,
			Price:       format.FormatCurrency(format.ParseNumber(item.Price), client.Currency),
		})
	}

	data := pdf.InvoiceData{
		BusinessName:  settings.BusinessName,
		ContactName:   settings.Name,
		BusinessEmail: settings.Email,
		BusinessPhone: settings.Phone,
		Address:       settings.Address,

		InvoiceNumber: invoice.InvoiceNumber,
		IssueDate:     invoice.CreatedAt.Format("Jan 2, 2006"),

		BillToName:    client.Name,
		BillToCompany: client.CompanyName,
		BillToAddress: client.Address,
		BillToEmail:   client.Email,
		TaxNumber:     client.TaxNumber,
		TaxType:       client.TaxType,

		BankName:      settings.BankName,
		AccountNumber: settings.AccountNumber,
		SwiftCode:     settings.SwiftCode,

		Items: lines,
		Total: format.FormatCurrency(invoice.Total, client.Currency),
	}

	return invoice, client, data, nil
}

func invoicePDFName(number string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, number)
	return "Invoice_" + safe + ".pdf"
}

func mailSubject(override string, settings settingsdomain.BusinessSettings, invoice invoicedomain.Invoice) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	if s := strings.TrimSpace(settings.EmailSubject); s != "" {
		return substituteTokens(s, settings.BusinessName, "", invoice.InvoiceNumber, "")
	}
	if settings.BusinessName != "" {
		return fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, settings.BusinessName)
	}
	return fmt.Sprintf("Invoice %s", invoice.InvoiceNumber)
}

func mailBody(override string, settings settingsdomain.BusinessSettings, client clientdomain.Client, invoice invoicedomain.Invoice, total string) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	if s := strings.TrimSpace(settings.EmailTemplate); s != "" {
		return substituteTokens(s, settings.BusinessName, client.Name, invoice.InvoiceNumber, total)
	}
	return fmt.Sprintf(
		"Dear %s,\n\nPlease find attached invoice %s for %s.\n\nBest regards,\n%s",
		client.Name, invoice.InvoiceNumber, total, settings.BusinessName,
	)
}

// substituteTokens fills the placeholders users may put in their saved
// subject and body templates.
func substituteTokens(template, businessName, clientName, invoiceNumber, total string) string {
	replacer := strings.NewReplacer(
		"{businessName}", businessName,
		"{clientName}", clientName,
		"{invoiceNumber}", invoiceNumber,
		"{amount}", total,
	)
	return replacer.Replace(template)
}

func itemPrices(items []invoicedomain.ItemInput) []string {
	prices := make([]string, 0, len(items))
	for _, item := range items {
		prices = append(prices, item.Price)
	}
	return prices
}
