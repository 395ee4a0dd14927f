package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/hazimzaman/new-invoices/internal/settings/domain"
	"github.com/hazimzaman/new-invoices/internal/usercontext"
	"github.com/hazimzaman/new-invoices/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("settings.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.BusinessSettings, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.BusinessSettings{}, domain.ErrInvalidUser
	}

	item, err := s.repo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return domain.BusinessSettings{}, err
	}
	if item == nil {
		return domain.BusinessSettings{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertSettingsRequest) (domain.BusinessSettings, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.BusinessSettings{}, domain.ErrInvalidUser
	}

	existing, err := s.repo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return domain.BusinessSettings{}, err
	}

	now := time.Now().UTC()
	if existing == nil {
		settings := domain.BusinessSettings{
			ID:        s.genID.Generate(),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyRequest(&settings, req)
		if settings.InvoiceNumber < 0 {
			settings.InvoiceNumber = 0
		}
		if err := s.repo.Insert(ctx, s.db, &settings); err != nil {
			if db.IsDuplicateKeyErr(err) {
				// Two first-time saves raced on the user_id unique index;
				// the other writer created the row, retry as an update.
				return s.Upsert(ctx, req)
			}
			return domain.BusinessSettings{}, err
		}
		return settings, nil
	}

	if req.InvoiceNumber < existing.InvoiceNumber {
		return domain.BusinessSettings{}, domain.ErrCounterLowered
	}

	applyRequest(existing, req)
	existing.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.BusinessSettings{}, err
	}

	return *existing, nil
}

func (s *Service) AdvanceCounter(ctx context.Context, value int64) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.ErrInvalidUser
	}

	changed, err := s.repo.AdvanceCounter(ctx, s.db, userID, value)
	if err != nil {
		return err
	}
	if changed == 0 {
		s.log.Debug("counter advance was a no-op",
			zap.Int64("value", value),
			zap.String("user_id", userID.String()),
		)
	}
	return nil
}

func (s *Service) AllocateInvoiceNumber(ctx context.Context) (int64, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return 0, domain.ErrInvalidUser
	}

	return s.repo.IncrementCounter(ctx, s.db, userID)
}

func applyRequest(settings *domain.BusinessSettings, req domain.UpsertSettingsRequest) {
	settings.BusinessName = strings.TrimSpace(req.BusinessName)
	settings.Name = strings.TrimSpace(req.Name)
	settings.Phone = strings.TrimSpace(req.Phone)
	settings.Email = strings.TrimSpace(req.Email)
	settings.WiseEmail = strings.TrimSpace(req.WiseEmail)
	settings.Address = strings.TrimSpace(req.Address)
	settings.BankName = strings.TrimSpace(req.BankName)
	settings.AccountNumber = strings.TrimSpace(req.AccountNumber)
	settings.SwiftCode = strings.TrimSpace(req.SwiftCode)
	settings.LogoURL = strings.TrimSpace(req.LogoURL)
	settings.InvoiceNumber = req.InvoiceNumber
	settings.InvoicePrefix = strings.TrimSpace(req.InvoicePrefix)
	settings.EmailTemplate = req.EmailTemplate
	settings.EmailSubject = strings.TrimSpace(req.EmailSubject)
	settings.SMTPHost = strings.TrimSpace(req.SMTPHost)
	settings.SMTPPort = req.SMTPPort
	settings.SMTPUsername = strings.TrimSpace(req.SMTPUsername)
	settings.SMTPPassword = req.SMTPPassword
	settings.SMTPFrom = strings.TrimSpace(req.SMTPFrom)
}
