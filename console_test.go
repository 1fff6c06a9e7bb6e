package console_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/inquiry"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/config"
)

func newClient(t *testing.T, opts ...console.Option) *console.Client {
	t.Helper()
	dir := t.TempDir()
	base := []console.Option{
		console.WithSQLite(filepath.Join(dir, "console.db")),
		console.WithDataDir(dir),
		console.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		console.WithAuthSecret("test-secret"),
		console.WithPasswordCost(bcrypt.MinCost),
	}
	client, err := console.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNew_RequiresDatabase(t *testing.T) {
	_, err := console.New(console.WithDataDir(t.TempDir()))
	assert.ErrorIs(t, err, console.ErrNoDatabase)
}

func TestNew_RejectsEmptyPostgresDSN(t *testing.T) {
	_, err := console.New(console.WithDataDir(t.TempDir()), console.WithPostgres(""))
	assert.Error(t, err)
}

func TestClient_EndToEnd(t *testing.T) {
	client := newClient(t)
	ctx := access.WithPrincipal(context.Background(), access.System())

	apt, err := client.Apartments.Create(ctx, service.ApartmentParams{Name: "Hanbit Tower", Code: "HBT"})
	require.NoError(t, err)

	building, err := client.Buildings.Create(ctx, apt.ID(), "101")
	require.NoError(t, err)

	added, err := client.Lines.Add(ctx, building.ID(), "1~2, 3~4, nope")
	require.NoError(t, err)
	require.Len(t, added.Lines, 2)
	assert.Equal(t, "1~2", added.Lines[0].Label())
	assert.Equal(t, "3~4", added.Lines[1].Label())
	assert.Equal(t, []string{"nope"}, added.Rejected)

	summary, err := client.Dashboard.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Apartments)
}

func TestClient_RecordsReadWithoutPrincipal(t *testing.T) {
	client := newClient(t)
	ctx := access.WithPrincipal(context.Background(), access.System())

	apt, err := client.Apartments.Create(ctx, service.ApartmentParams{Name: "Hanbit Tower", Code: "HBT"})
	require.NoError(t, err)
	_, err = client.Apartments.Create(ctx, service.ApartmentParams{Name: "Saebit Court", Code: "SBC"})
	require.NoError(t, err)

	resident, err := client.Residents.Create(ctx, service.ResidentParams{Name: "Kim", ApartmentID: apt.ID()})
	require.NoError(t, err)
	_, err = client.Inquiries.Create(ctx, service.InquiryParams{ResidentID: resident.ID(), Title: "Door", Content: "Lobby door sticks"})
	require.NoError(t, err)

	bare := context.Background()

	found, err := client.Records.Apartments.Find(bare, apartment.WithSearch("Hanbit"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "HBT", found[0].Code())

	got, err := client.Records.Apartments.Get(bare, repository.WithID(apt.ID()))
	require.NoError(t, err)
	assert.Equal(t, "Hanbit Tower", got.Name())

	open, err := client.Records.Inquiries.Find(bare,
		inquiry.WithStatus(inquiry.StatusOpen),
		repository.WithApartmentID(apt.ID()),
	)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Door", open[0].Title())
}

func TestClient_StaffTokensUseConfiguredSecret(t *testing.T) {
	client := newClient(t, console.WithTokenTTL(time.Minute))
	ctx := access.WithPrincipal(context.Background(), access.System())

	_, err := client.Staff.Create(ctx, service.StaffParams{
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: "correct-horse",
		Role:     string(access.RoleAdmin),
	})
	require.NoError(t, err)

	token, _, err := client.Staff.Login(context.Background(), "admin@example.com", "correct-horse")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), token.ExpiresAt, 5*time.Second)

	principal, err := client.Staff.Authenticate(context.Background(), token.Value)
	require.NoError(t, err)
	assert.Equal(t, access.RoleAdmin, principal.Role())
}

func TestClient_WithConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewAppConfigWithOptions(
		config.WithDataDir(dir),
		config.WithAPIKeys([]string{"k1", "k2"}),
		config.WithAuthSecret("from-config"),
	)

	client, err := console.New(
		console.WithConfig(cfg),
		console.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, dir, client.DataDir())
	assert.Equal(t, []string{"k1", "k2"}, client.APIKeys())
	assert.FileExists(t, filepath.Join(dir, config.DefaultDBFile))
}

func TestClient_CloseTwice(t *testing.T) {
	client, err := console.New(
		console.WithSQLite(":memory:"),
		console.WithDataDir(t.TempDir()),
		console.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), service.ErrClientClosed)
}
