package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hazimzaman/new-invoices/internal/client/domain"
	"github.com/hazimzaman/new-invoices/internal/client/repository"
	"github.com/hazimzaman/new-invoices/internal/usercontext"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, node
}

func userCtx(userID snowflake.ID) context.Context {
	return usercontext.WithUserID(context.Background(), userID)
}

func TestCreate_TrimsAndPersists(t *testing.T) {
	svc, node := newTestService(t)
	ctx := userCtx(node.Generate())

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:     "  Jane Doe  ",
		Email:    " jane@example.com ",
		Currency: "€",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, "€", created.Currency)

	loaded, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
}

func TestCreate_Validation(t *testing.T) {
	svc, node := newTestService(t)
	ctx := userCtx(node.Generate())

	_, err := svc.Create(ctx, domain.CreateClientRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateClientRequest{Name: "Jane", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(context.Background(), domain.CreateClientRequest{Name: "Jane", Email: "jane@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestUpdate_RoundTrip(t *testing.T) {
	svc, node := newTestService(t)
	ctx := userCtx(node.Generate())

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateClientRequest{
		ID:          created.ID.String(),
		Name:        "Jane Smith",
		CompanyName: "Smith LLC",
		Email:       "jane@smith.example",
		Currency:    "$",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, "Smith LLC", updated.CompanyName)

	loaded, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "jane@smith.example", loaded.Email)
}

func TestClients_ScopedToOwner(t *testing.T) {
	svc, node := newTestService(t)
	owner := node.Generate()
	stranger := node.Generate()

	created, err := svc.Create(userCtx(owner), domain.CreateClientRequest{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(userCtx(stranger), created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(userCtx(stranger), created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	resp, err := svc.List(userCtx(stranger), domain.ListClientRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Clients)
}

func TestList_FiltersByName(t *testing.T) {
	svc, node := newTestService(t)
	ctx := userCtx(node.Generate())

	for _, name := range []string{"Jane Doe", "John Roe"} {
		_, err := svc.Create(ctx, domain.CreateClientRequest{
			Name:  name,
			Email: "mail@example.com",
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListClientRequest{Name: "Jane Doe"})
	require.NoError(t, err)
	require.Len(t, resp.Clients, 1)
	assert.Equal(t, "Jane Doe", resp.Clients[0].Name)
}

func TestDelete_RemovesClient(t *testing.T) {
	svc, node := newTestService(t)
	ctx := userCtx(node.Generate())

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))

	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
