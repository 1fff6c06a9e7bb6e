package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/infrastructure/persistence"
	"github.com/wooldanji/console/internal/testdb"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	apartments *Apartments
	buildings  *Buildings
	lines      *Lines
	devices    *Devices
	residents  *Residents
	inquiries  *Inquiries
	home       *Home
	staff      *Staff
	dashboard  *Dashboard
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testdb.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	apartmentStore := persistence.NewApartmentStore(db)
	buildingStore := persistence.NewBuildingStore(db)
	lineStore := persistence.NewLineStore(db)
	deviceStore := persistence.NewDeviceStore(db)
	residentStore := persistence.NewResidentStore(db)
	inquiryStore := persistence.NewInquiryStore(db)

	f := fixture{
		apartments: NewApartments(apartmentStore, residentStore, inquiryStore, logger),
		buildings:  NewBuildings(apartmentStore, buildingStore, logger),
		lines:      NewLines(buildingStore, lineStore, logger),
		devices:    NewDevices(apartmentStore, buildingStore, lineStore, deviceStore, logger),
		residents:  NewResidents(residentStore, buildingStore, logger),
		inquiries:  NewInquiries(inquiryStore, residentStore, logger),
		home: NewHome(
			persistence.NewHeaderStore(db),
			persistence.NewNoticeStore(db),
			persistence.NewDialogStore(db),
			logger,
		),
		staff: NewStaff(
			persistence.NewStaffStore(db),
			apartmentStore,
			TokenConfig{Secret: []byte("test-secret"), TTL: time.Hour, Cost: bcrypt.MinCost},
			logger,
		),
	}
	f.dashboard = NewDashboard(f.apartments, f.devices, f.residents, f.inquiries)
	return f
}

func adminCtx() context.Context {
	return access.WithPrincipal(context.Background(), access.NewPrincipal(1, "Admin", access.RoleAdmin, nil))
}

func managerCtx(apartmentIDs ...int64) context.Context {
	return access.WithPrincipal(context.Background(), access.NewPrincipal(2, "Manager", access.RoleManager, apartmentIDs))
}

func (f fixture) apartment(t *testing.T, name, code string) apartment.Apartment {
	t.Helper()
	a, err := f.apartments.Create(adminCtx(), ApartmentParams{Name: name, Code: code})
	require.NoError(t, err)
	return a
}

func (f fixture) building(t *testing.T, apartmentID int64, name string) apartment.Building {
	t.Helper()
	b, err := f.buildings.Create(adminCtx(), apartmentID, name)
	require.NoError(t, err)
	return b
}
