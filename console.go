// Package console is the Wooldanji admin console as a library.
//
// The Client opens the database, applies migrations, and exposes the
// application services that the HTTP API, the MCP tools, and the CLI share.
//
// Basic usage:
//
//	client, err := console.New(
//	    console.WithSQLite(".wooldanji/wooldanji.db"),
//	    console.WithAuthSecret(os.Getenv("AUTH_SECRET")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx = access.WithPrincipal(ctx, access.System())
//	apt, err := client.Apartments.Create(ctx, service.ApartmentParams{
//	    Name: "Hanbit Tower",
//	    Code: "HBT",
//	})
//
//	added, err := client.Lines.Add(ctx, building.ID(), "1~2, 3~4")
package console

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/inquiry"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/infrastructure/persistence"
	"github.com/wooldanji/console/internal/config"
	"github.com/wooldanji/console/internal/database"
	"github.com/wooldanji/console/internal/log"
)

// ErrNoDatabase indicates no database option was given to New.
var ErrNoDatabase = errors.New("wooldanji: no database configured")

// Client is the main entry point for the console library.
//
// Access use cases via struct fields:
//
//	client.Apartments.List(ctx, "")
//	client.Lines.Preview("1~2, 3~4")
//	client.Residents.Approve(ctx, id)
type Client struct {
	Apartments *service.Apartments
	Buildings  *service.Buildings
	Lines      *service.Lines
	Devices    *service.Devices
	Residents  *service.Residents
	Inquiries  *service.Inquiries
	Home       *service.Home
	Staff      *service.Staff
	Dashboard  *service.Dashboard

	// Records gives unscoped read-only access to stored data for trusted
	// callers such as the MCP tools.
	Records Records

	db      database.Database
	logger  *slog.Logger
	dataDir string
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// Records holds read-only collections over the stores.
type Records struct {
	Apartments repository.Collection[apartment.Apartment]
	Inquiries  repository.Collection[inquiry.Inquiry]
}

// New creates a Client, opening and migrating the configured database.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.Default().Slog()
	}

	dataDir, err := config.PrepareDataDir(cfg.dataDir)
	if err != nil {
		return nil, err
	}

	dbURL, err := buildDatabaseURL(cfg, dataDir)
	if err != nil {
		return nil, fmt.Errorf("build database url: %w", err)
	}

	secret := cfg.authSecret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate auth secret: %w", err)
		}
		logger.Warn("no auth secret configured, tokens will not survive a restart")
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	apartmentStore := persistence.NewApartmentStore(db)
	buildingStore := persistence.NewBuildingStore(db)
	lineStore := persistence.NewLineStore(db)
	deviceStore := persistence.NewDeviceStore(db)
	staffStore := persistence.NewStaffStore(db)
	residentStore := persistence.NewResidentStore(db)
	inquiryStore := persistence.NewInquiryStore(db)
	headerStore := persistence.NewHeaderStore(db)
	noticeStore := persistence.NewNoticeStore(db)
	dialogStore := persistence.NewDialogStore(db)

	apartments := service.NewApartments(apartmentStore, residentStore, inquiryStore, logger)
	devices := service.NewDevices(apartmentStore, buildingStore, lineStore, deviceStore, logger)
	residents := service.NewResidents(residentStore, buildingStore, logger)
	inquiries := service.NewInquiries(inquiryStore, residentStore, logger)

	tokens := service.TokenConfig{
		Secret: secret,
		TTL:    cfg.tokenTTL,
		Cost:   cfg.passwordCost,
	}

	client := &Client{
		Apartments: apartments,
		Buildings:  service.NewBuildings(apartmentStore, buildingStore, logger),
		Lines:      service.NewLines(buildingStore, lineStore, logger),
		Devices:    devices,
		Residents:  residents,
		Inquiries:  inquiries,
		Home:       service.NewHome(headerStore, noticeStore, dialogStore, logger),
		Staff:      service.NewStaff(staffStore, apartmentStore, tokens, logger),
		Dashboard:  service.NewDashboard(apartments, devices, residents, inquiries),
		Records: Records{
			Apartments: repository.NewCollection[apartment.Apartment](apartmentStore),
			Inquiries:  repository.NewCollection[inquiry.Inquiry](inquiryStore),
		},
		db:         db,
		logger:     logger,
		dataDir:    dataDir,
		apiKeys:    slices.Clone(cfg.apiKeys),
	}

	logger.Debug("console client ready",
		slog.String("data_dir", dataDir),
		slog.Bool("postgres", db.IsPostgres()),
	)

	return client, nil
}

// Close releases the database connection.
// A second Close returns ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return service.ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// DataDir returns the prepared data directory.
func (c *Client) DataDir() string {
	return c.dataDir
}

// APIKeys returns a copy of the keys accepted in the X-API-KEY header.
func (c *Client) APIKeys() []string {
	return slices.Clone(c.apiKeys)
}

// buildDatabaseURL turns the configured database option into a DB_URL.
func buildDatabaseURL(cfg *clientConfig, dataDir string) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		path := cfg.dbPath
		if path == "" {
			path = filepath.Join(dataDir, config.DefaultDBFile)
		}
		return "sqlite:///" + path, nil
	case databasePostgres:
		if cfg.dbDSN == "" {
			return "", errors.New("postgres dsn is empty")
		}
		return cfg.dbDSN, nil
	case databaseURL:
		if cfg.dbURL == "" {
			return config.DefaultDBURL(dataDir), nil
		}
		return cfg.dbURL, nil
	default:
		return "", ErrNoDatabase
	}
}
