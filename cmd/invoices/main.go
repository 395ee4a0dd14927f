package main

import (
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/hazimzaman/new-invoices/internal/client"
	"github.com/hazimzaman/new-invoices/internal/config"
	"github.com/hazimzaman/new-invoices/internal/invoice"
	"github.com/hazimzaman/new-invoices/internal/migration"
	"github.com/hazimzaman/new-invoices/internal/observability"
	"github.com/hazimzaman/new-invoices/internal/providers/email"
	"github.com/hazimzaman/new-invoices/internal/providers/pdf"
	"github.com/hazimzaman/new-invoices/internal/server"
	"github.com/hazimzaman/new-invoices/internal/settings"
	"github.com/hazimzaman/new-invoices/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		client.Module,
		settings.Module,
		invoice.Module,
		pdf.Module,
		email.Module,

		server.Module,
	)
	app.Run()
}

// RegisterSnowflake builds the shared ID generator. The node number is
// derived from the hostname so replicas do not collide.
func RegisterSnowflake() (*snowflake.Node, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "invoices"
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(hostname))
	nodeID := int64(h.Sum32() % 1024)

	return snowflake.NewNode(nodeID)
}
