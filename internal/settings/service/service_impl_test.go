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

	"github.com/hazimzaman/new-invoices/internal/settings/domain"
	"github.com/hazimzaman/new-invoices/internal/settings/repository"
	"github.com/hazimzaman/new-invoices/internal/usercontext"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.BusinessSettings{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db, node
}

func userCtx(userID snowflake.ID) context.Context {
	return usercontext.WithUserID(context.Background(), userID)
}

func TestGet_NotFound(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.Get(userCtx(node.Generate()))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsert_CreatesSingleton(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := userCtx(node.Generate())

	created, err := svc.Upsert(ctx, domain.UpsertSettingsRequest{
		BusinessName:  "  Acme Studio  ",
		InvoiceNumber: 10,
		InvoicePrefix: " INV- ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Studio", created.BusinessName)
	assert.Equal(t, int64(10), created.InvoiceNumber)
	assert.Equal(t, "INV-", created.InvoicePrefix)

	loaded, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
}

func TestUpsert_NegativeCounterClampedOnCreate(t *testing.T) {
	svc, _, node := newTestService(t)

	created, err := svc.Upsert(userCtx(node.Generate()), domain.UpsertSettingsRequest{
		InvoiceNumber: -5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.InvoiceNumber)
}

func TestUpsert_RefusesToLowerCounter(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := userCtx(node.Generate())

	_, err := svc.Upsert(ctx, domain.UpsertSettingsRequest{InvoiceNumber: 10})
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, domain.UpsertSettingsRequest{InvoiceNumber: 5})
	assert.ErrorIs(t, err, domain.ErrCounterLowered)

	loaded, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), loaded.InvoiceNumber)
}

func TestUpsert_RaisingCounterIsAllowed(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := userCtx(node.Generate())

	_, err := svc.Upsert(ctx, domain.UpsertSettingsRequest{InvoiceNumber: 10})
	require.NoError(t, err)

	updated, err := svc.Upsert(ctx, domain.UpsertSettingsRequest{
		InvoiceNumber: 100,
		InvoicePrefix: "2026-",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), updated.InvoiceNumber)
	assert.Equal(t, "2026-", updated.InvoicePrefix)
}

func TestAdvanceCounter_MonotonicOnly(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := userCtx(node.Generate())

	_, err := svc.Upsert(ctx, domain.UpsertSettingsRequest{InvoiceNumber: 10})
	require.NoError(t, err)

	require.NoError(t, svc.AdvanceCounter(ctx, 12))
	loaded, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), loaded.InvoiceNumber)

	// Stale value: silent no-op, never a decrease.
	require.NoError(t, svc.AdvanceCounter(ctx, 8))
	loaded, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), loaded.InvoiceNumber)
}

func TestAllocateInvoiceNumber_SequentialValues(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := userCtx(node.Generate())

	_, err := svc.Upsert(ctx, domain.UpsertSettingsRequest{InvoiceNumber: 7})
	require.NoError(t, err)

	first, err := svc.AllocateInvoiceNumber(ctx)
	require.NoError(t, err)
	second, err := svc.AllocateInvoiceNumber(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(8), first)
	assert.Equal(t, int64(9), second)
}

func TestAllocateInvoiceNumber_RequiresSettingsRow(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.AllocateInvoiceNumber(userCtx(node.Generate()))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_RequiresUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = svc.Upsert(ctx, domain.UpsertSettingsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	err = svc.AdvanceCounter(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = svc.AllocateInvoiceNumber(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}
