package migration

import (
	clientdomain "github.com/hazimzaman/new-invoices/internal/client/domain"
	"github.com/hazimzaman/new-invoices/internal/config"
	invoicedomain "github.com/hazimzaman/new-invoices/internal/invoice/domain"
	settingsdomain "github.com/hazimzaman/new-invoices/internal/settings/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite and mysql installs lean on the model tags instead of the
		// versioned postgres migrations.
		return conn.AutoMigrate(
			&clientdomain.Client{},
			&settingsdomain.BusinessSettings{},
			&invoicedomain.Invoice{},
			&invoicedomain.InvoiceItem{},
		)
	}),
)
