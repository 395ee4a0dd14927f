package settings

import (
	"github.com/hazimzaman/new-invoices/internal/settings/repository"
	"github.com/hazimzaman/new-invoices/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
