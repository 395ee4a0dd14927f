package email

import (
	"github.com/hazimzaman/new-invoices/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)

// NewFromConfig wires the default transport. Per-user SMTP overrides are
// constructed at call time from business settings by the HTTP layer.
func NewFromConfig(cfg config.Config) Provider {
	return NewRelay(cfg.Mail.RelayURL)
}
