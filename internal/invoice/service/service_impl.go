package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/hazimzaman/new-invoices/internal/invoice/domain"
	"github.com/hazimzaman/new-invoices/internal/invoice/format"
	"github.com/hazimzaman/new-invoices/internal/observability/metrics"
	"github.com/hazimzaman/new-invoices/internal/saga"
	settingsdomain "github.com/hazimzaman/new-invoices/internal/settings/domain"
	"github.com/hazimzaman/new-invoices/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        invoicedomain.Repository
	SettingsSvc settingsdomain.Service
	Metrics     *metrics.DomainMetrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        invoicedomain.Repository
	settingsSvc settingsdomain.Service
	metrics     *metrics.DomainMetrics
}

func New(p Params) invoicedomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("invoice.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		settingsSvc: p.SettingsSvc,
		metrics:     p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidUser
	}

	clientID, err := validateRequest(req.ClientID, req.Items)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	invoiceNumber := format.NextInvoiceNumber(&settings)
	nextCounter := settings.InvoiceNumber + 1

	invoice, items := s.buildInvoice(userID, clientID, invoiceNumber, req.Items)

	steps := []saga.Step{
		{
			Name: "insert_invoice",
			Run: func(ctx context.Context) error {
				return invoicedomain.StoreErr("insert_invoice", s.repo.InsertInvoice(ctx, s.db, &invoice))
			},
			Compensate: func(ctx context.Context) error {
				return s.repo.DeleteInvoice(ctx, s.db, invoice.ID)
			},
		},
		{
			// The invoice row already exists at this point; losing the
			// counter advance leaves it stale, so a later invoice can
			// collide in display number. Reported, never fatal.
			Name: "advance_counter",
			Run: func(ctx context.Context) error {
				return s.settingsSvc.AdvanceCounter(ctx, nextCounter)
			},
			OnFailure: func(err error) {
				s.metrics.RecordSequenceUpdateFailure()
				s.log.Warn("settings counter not advanced, sequence is stale",
					zap.String("invoice_number", invoiceNumber),
					zap.Int64("next_counter", nextCounter),
					zap.Error(err),
				)
			},
		},
		{
			Name: "insert_items",
			Run: func(ctx context.Context) error {
				return invoicedomain.StoreErr("insert_items", s.insertItems(ctx, items))
			},
		},
	}

	if err := saga.Run(ctx, s.log, steps); err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.metrics.RecordInvoiceCreated()
	invoice.Items = items
	return invoice, nil
}

func (s *Service) CreateAtomic(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidUser
	}

	clientID, err := validateRequest(req.ClientID, req.Items)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	// Counter first: the allocation is a single conditional update, so two
	// concurrent creates get distinct values. A failure after this point
	// skips a number; numbers are never reused.
	allocated, err := s.settingsSvc.AllocateInvoiceNumber(ctx)
	if err != nil {
		if errors.Is(err, settingsdomain.ErrNotFound) {
			return invoicedomain.Invoice{}, invoicedomain.ErrMissingSettings
		}
		return invoicedomain.Invoice{}, invoicedomain.StoreErr("allocate_number", err)
	}

	invoiceNumber := strconv.FormatInt(allocated, 10)
	if prefix := strings.TrimSpace(settings.InvoicePrefix); prefix != "" {
		invoiceNumber = prefix + invoiceNumber
	}

	invoice, items := s.buildInvoice(userID, clientID, invoiceNumber, req.Items)

	steps := []saga.Step{
		{
			Name: "insert_invoice",
			Run: func(ctx context.Context) error {
				return invoicedomain.StoreErr("insert_invoice", s.repo.InsertInvoice(ctx, s.db, &invoice))
			},
			Compensate: func(ctx context.Context) error {
				return s.repo.DeleteInvoice(ctx, s.db, invoice.ID)
			},
		},
		{
			Name: "insert_items",
			Run: func(ctx context.Context) error {
				return invoicedomain.StoreErr("insert_items", s.insertItems(ctx, items))
			},
		},
	}

	if err := saga.Run(ctx, s.log, steps); err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.metrics.RecordInvoiceCreated()
	invoice.Items = items
	return invoice, nil
}

func (s *Service) Update(ctx context.Context, req invoicedomain.UpdateInvoiceRequest) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.ErrInvalidUser
	}

	clientID, err := validateRequest(req.ClientID, req.Items)
	if err != nil {
		return err
	}

	invoiceID, err := parseID(req.ID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindInvoiceByID(ctx, s.db, userID, invoiceID)
	if err != nil {
		return invoicedomain.StoreErr("find_invoice", err)
	}
	if existing == nil {
		return invoicedomain.ErrNotFound
	}

	now := time.Now().UTC()
	existing.ClientID = clientID
	existing.Total = format.Total(itemPrices(req.Items))
	existing.UpdatedAt = now

	// Update is not compensated: a failure below leaves the invoice row
	// updated with items partially replaced. Numbering never changes here.
	if err := s.repo.UpdateInvoice(ctx, s.db, existing); err != nil {
		return invoicedomain.StoreErr("update_invoice", err)
	}
	if err := s.repo.DeleteItemsByInvoice(ctx, s.db, invoiceID); err != nil {
		return invoicedomain.StoreErr("delete_items", err)
	}

	items := s.buildItems(userID, invoiceID, req.Items, now)
	if err := s.insertItems(ctx, items); err != nil {
		return invoicedomain.StoreErr("insert_items", err)
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.ErrInvalidUser
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindInvoiceByID(ctx, s.db, userID, invoiceID)
	if err != nil {
		return invoicedomain.StoreErr("find_invoice", err)
	}
	if existing == nil {
		return invoicedomain.ErrNotFound
	}

	// Children before parent. If item deletion fails nothing was removed;
	// if invoice deletion fails afterwards no orphans remain either.
	if err := s.repo.DeleteItemsByInvoice(ctx, s.db, invoiceID); err != nil {
		return invoicedomain.StoreErr("delete_items", err)
	}
	if err := s.repo.DeleteInvoice(ctx, s.db, invoiceID); err != nil {
		return invoicedomain.StoreErr("delete_invoice", err)
	}

	s.metrics.RecordInvoiceDeleted()
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidUser
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	item, err := s.repo.FindInvoiceByID(ctx, s.db, userID, invoiceID)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.StoreErr("find_invoice", err)
	}
	if item == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.StoreErr("list_items", err)
	}
	item.Items = items

	return *item, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.ListInvoiceResponse{}, invoicedomain.ErrInvalidUser
	}

	filter := invoicedomain.ListInvoiceFilter{}
	if raw := strings.TrimSpace(req.ClientID); raw != "" {
		clientID, err := snowflake.ParseString(raw)
		if err != nil {
			return invoicedomain.ListInvoiceResponse{}, invoicedomain.ErrInvalidID
		}
		filter.ClientID = clientID
	}

	items, err := s.repo.ListInvoices(ctx, s.db, userID, filter)
	if err != nil {
		return invoicedomain.ListInvoiceResponse{}, invoicedomain.StoreErr("list_invoices", err)
	}

	invoices := make([]invoicedomain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		lines, err := s.repo.ListItems(ctx, s.db, item.ID)
		if err != nil {
			return invoicedomain.ListInvoiceResponse{}, invoicedomain.StoreErr("list_items", err)
		}
		item.Items = lines
		invoices = append(invoices, *item)
	}

	return invoicedomain.ListInvoiceResponse{Invoices: invoices}, nil
}

func (s *Service) loadSettings(ctx context.Context) (settingsdomain.BusinessSettings, error) {
	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsdomain.ErrNotFound) {
			// The counter cannot advance without a settings row to
			// write back to, so creation refuses the fallback path.
			return settingsdomain.BusinessSettings{}, invoicedomain.ErrMissingSettings
		}
		return settingsdomain.BusinessSettings{}, invoicedomain.StoreErr("load_settings", err)
	}
	return settings, nil
}

func (s *Service) buildInvoice(userID, clientID snowflake.ID, invoiceNumber string, inputs []invoicedomain.ItemInput) (invoicedomain.Invoice, []invoicedomain.InvoiceItem) {
	now := time.Now().UTC()
	invoice := invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		UserID:        userID,
		ClientID:      clientID,
		InvoiceNumber: invoiceNumber,
		Total:         format.Total(itemPrices(inputs)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return invoice, s.buildItems(userID, invoice.ID, inputs, now)
}

func (s *Service) buildItems(userID, invoiceID snowflake.ID, inputs []invoicedomain.ItemInput, now time.Time) []invoicedomain.InvoiceItem {
	items := make([]invoicedomain.InvoiceItem, 0, len(inputs))
	for _, input := range inputs {
		items = append(items, invoicedomain.InvoiceItem{
			ID:          s.genID.Generate(),
			UserID:      userID,
			InvoiceID:   invoiceID,
			Name:        strings.TrimSpace(input.Name),
			Description: strings.TrimSpace(input.Description),
			Price:       strings.TrimSpace(input.Price),
			CreatedAt:   now,
		})
	}
	return items
}

func (s *Service) insertItems(ctx context.Context, items []invoicedomain.InvoiceItem) error {
	for i := range items {
		if err := s.repo.InsertItem(ctx, s.db, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateRequest(rawClientID string, items []invoicedomain.ItemInput) (snowflake.ID, error) {
	rawClientID = strings.TrimSpace(rawClientID)
	if rawClientID == "" {
		return 0, invoicedomain.ErrMissingClient
	}
	clientID, err := snowflake.ParseString(rawClientID)
	if err != nil || clientID == 0 {
		return 0, invoicedomain.ErrMissingClient
	}

	if len(items) == 0 {
		return 0, invoicedomain.ErrEmptyItems
	}
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return 0, invoicedomain.ErrInvalidItemName
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(item.Price), 64)
		if err != nil || price < 0 {
			return 0, invoicedomain.ErrInvalidItemPrice
		}
	}

	return clientID, nil
}

func itemPrices(items []invoicedomain.ItemInput) []string {
	prices := make([]string, 0, len(items))
	for _, item := range items {
		prices = append(prices, item.Price)
	}
	return prices
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, invoicedomain.ErrInvalidID
	}
	return id, nil
}
