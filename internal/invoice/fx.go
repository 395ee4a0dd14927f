package invoice

import (
	"github.com/hazimzaman/new-invoices/internal/invoice/repository"
	"github.com/hazimzaman/new-invoices/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
