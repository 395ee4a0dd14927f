package client

import (
	"github.com/hazimzaman/new-invoices/internal/client/repository"
	"github.com/hazimzaman/new-invoices/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
