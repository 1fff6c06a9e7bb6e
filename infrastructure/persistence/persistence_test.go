package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/home"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/infrastructure/persistence"
	"github.com/wooldanji/console/internal/database"
	"github.com/wooldanji/console/internal/testdb"
)

func TestAutoMigrate_ValidatesSchema(t *testing.T) {
	db := testdb.New(t)

	assert.NoError(t, persistence.ValidateSchema(db))
}

func TestValidateSchema_ReportsMissingColumns(t *testing.T) {
	db := testdb.NewPlain(t)
	require.NoError(t, db.Session(context.Background()).Exec("CREATE TABLE apartments (id INTEGER PRIMARY KEY)").Error)

	err := persistence.ValidateSchema(db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apartments.name")
}

func saveApartment(t *testing.T, db database.Database, name, code string) apartment.Apartment {
	t.Helper()
	a, err := apartment.NewApartment(name, "", code, "")
	require.NoError(t, err)
	saved, err := persistence.NewApartmentStore(db).Save(context.Background(), a)
	require.NoError(t, err)
	return saved
}

func TestLineStore_RoundTripsNumbers(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	a := saveApartment(t, db, "Hanbit", "HB")
	b, err := apartment.NewBuilding(a.ID(), "101")
	require.NoError(t, err)
	b, err = persistence.NewBuildingStore(db).Save(ctx, b)
	require.NoError(t, err)

	first, err := apartment.NewLine(b.ID(), []int{1, 2})
	require.NoError(t, err)
	second, err := apartment.NewLine(b.ID(), []int{3, 4, 5, 6, 7})
	require.NoError(t, err)

	store := persistence.NewLineStore(db)
	saved, err := store.SaveChecked(ctx, b.ID(), []apartment.Line{first, second}, nil)
	require.NoError(t, err)
	require.Len(t, saved, 2)

	found, err := store.Find(ctx, apartment.WithBuildingID(b.ID()), repository.WithOrderAsc("id"))
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, []int{1, 2}, found[0].Numbers())
	assert.Equal(t, "3~7", found[1].Label())
}

func TestLineStore_SaveCheckedSeesExistingLines(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	a := saveApartment(t, db, "Hanbit", "HB")
	b, err := apartment.NewBuilding(a.ID(), "101")
	require.NoError(t, err)
	b, err = persistence.NewBuildingStore(db).Save(ctx, b)
	require.NoError(t, err)

	store := persistence.NewLineStore(db)
	first, err := apartment.NewLine(b.ID(), []int{1, 2})
	require.NoError(t, err)
	_, err = store.SaveChecked(ctx, b.ID(), []apartment.Line{first}, nil)
	require.NoError(t, err)

	second, err := apartment.NewLine(b.ID(), []int{3, 4})
	require.NoError(t, err)
	refused := errors.New("refused")
	var seen []string
	_, err = store.SaveChecked(ctx, b.ID(), []apartment.Line{second}, func(existing []apartment.Line) error {
		for _, l := range existing {
			seen = append(seen, l.Label())
		}
		return refused
	})
	assert.ErrorIs(t, err, refused)
	assert.Equal(t, []string{"1~2"}, seen)

	count, err := store.Count(ctx, apartment.WithBuildingID(b.ID()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLineStore_SaveCheckedMissingBuilding(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)

	l, err := apartment.NewLine(404, []int{1})
	require.NoError(t, err)

	_, err = persistence.NewLineStore(db).SaveChecked(ctx, 404, []apartment.Line{l}, nil)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestApartmentStore_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	a := saveApartment(t, db, "Hanbit", "HB")
	other := saveApartment(t, db, "Saebit", "SB")

	buildings := persistence.NewBuildingStore(db)
	b, err := apartment.NewBuilding(a.ID(), "101")
	require.NoError(t, err)
	b, err = buildings.Save(ctx, b)
	require.NoError(t, err)
	l, err := apartment.NewLine(b.ID(), []int{1, 2})
	require.NoError(t, err)
	_, err = persistence.NewLineStore(db).Save(ctx, l)
	require.NoError(t, err)
	d, err := apartment.NewDevice(a.ID(), b.ID(), 0, "Lobby", "SN-1", apartment.DeviceKindLobby)
	require.NoError(t, err)
	_, err = persistence.NewDeviceStore(db).Save(ctx, d)
	require.NoError(t, err)
	n, err := home.NewNotice(a.ID(), "Hello", "", true, false)
	require.NoError(t, err)
	_, err = persistence.NewNoticeStore(db).Save(ctx, n)
	require.NoError(t, err)

	staff := persistence.NewStaffStore(db)
	s, err := account.NewStaff("m@wooldanji.kr", "Lee", "hash", access.RoleManager)
	require.NoError(t, err)
	s, err = staff.Save(ctx, s)
	require.NoError(t, err)
	require.NoError(t, staff.ReplaceAssignments(ctx, s.ID(), []int64{a.ID(), other.ID()}))

	require.NoError(t, persistence.NewApartmentStore(db).DeleteCascade(ctx, a))

	for _, check := range []struct {
		name  string
		count func() (int64, error)
	}{
		{"buildings", func() (int64, error) { return buildings.Count(ctx) }},
		{"lines", func() (int64, error) { return persistence.NewLineStore(db).Count(ctx) }},
		{"devices", func() (int64, error) { return persistence.NewDeviceStore(db).Count(ctx) }},
		{"notices", func() (int64, error) { return persistence.NewNoticeStore(db).Count(ctx) }},
		{"apartments", func() (int64, error) { return persistence.NewApartmentStore(db).Count(ctx, repository.WithID(a.ID())) }},
	} {
		count, err := check.count()
		require.NoError(t, err, check.name)
		assert.Zero(t, count, check.name)
	}

	assigned, err := staff.Assignments(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, []int64{other.ID()}, assigned)
}

func TestBuildingStore_DeleteCascadeUnbindsDevices(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	a := saveApartment(t, db, "Hanbit", "HB")
	b, err := apartment.NewBuilding(a.ID(), "101")
	require.NoError(t, err)
	b, err = persistence.NewBuildingStore(db).Save(ctx, b)
	require.NoError(t, err)
	l, err := apartment.NewLine(b.ID(), []int{1})
	require.NoError(t, err)
	l, err = persistence.NewLineStore(db).Save(ctx, l)
	require.NoError(t, err)
	d, err := apartment.NewDevice(a.ID(), b.ID(), l.ID(), "Elevator", "SN-2", apartment.DeviceKindElevator)
	require.NoError(t, err)
	devices := persistence.NewDeviceStore(db)
	d, err = devices.Save(ctx, d)
	require.NoError(t, err)

	require.NoError(t, persistence.NewBuildingStore(db).DeleteCascade(ctx, b))

	kept, err := devices.FindOne(ctx, repository.WithID(d.ID()))
	require.NoError(t, err)
	assert.Zero(t, kept.BuildingID())
	assert.Zero(t, kept.LineID())
}

func TestStaffStore_ReplaceAssignments(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	staff := persistence.NewStaffStore(db)
	s, err := account.NewStaff("m@wooldanji.kr", "Lee", "hash", access.RoleManager)
	require.NoError(t, err)
	s, err = staff.Save(ctx, s)
	require.NoError(t, err)

	require.NoError(t, staff.ReplaceAssignments(ctx, s.ID(), []int64{3, 1, 3}))
	ids, err := staff.Assignments(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)

	require.NoError(t, staff.ReplaceAssignments(ctx, s.ID(), nil))
	ids, err = staff.Assignments(ctx, s.ID())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestResidentStore_NullableFields(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	residents := persistence.NewResidentStore(db)
	r, err := account.NewResident("Choi", "", 1, 0, "1203")
	require.NoError(t, err)
	r, err = residents.Save(ctx, r)
	require.NoError(t, err)

	found, err := residents.FindOne(ctx, repository.WithID(r.ID()))
	require.NoError(t, err)
	assert.Zero(t, found.BuildingID())
	assert.True(t, found.ReviewedAt().IsZero())

	approved, err := found.Approve(9)
	require.NoError(t, err)
	_, err = residents.Save(ctx, approved)
	require.NoError(t, err)

	found, err = residents.FindOne(ctx, account.WithStatus(account.StatusApproved))
	require.NoError(t, err)
	assert.Equal(t, int64(9), found.ReviewedBy())
}

func TestHeaderStore_GlobalAndApartment(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	headers := persistence.NewHeaderStore(db)
	_, err := headers.Save(ctx, home.NewHeader(0, "Welcome"))
	require.NoError(t, err)
	_, err = headers.Save(ctx, home.NewHeader(4, "Hanbit residents"))
	require.NoError(t, err)

	global, err := headers.FindOne(ctx, home.WithApartment(0))
	require.NoError(t, err)
	assert.Equal(t, "Welcome", global.Text())
	assert.True(t, global.Global())

	local, err := headers.FindOne(ctx, home.WithApartment(4))
	require.NoError(t, err)
	assert.Equal(t, "Hanbit residents", local.Text())
}

func TestDeviceStore_DuplicateSerial(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	devices := persistence.NewDeviceStore(db)
	d, err := apartment.NewDevice(1, 0, 0, "Gate", "SN-9", apartment.DeviceKindGate)
	require.NoError(t, err)
	_, err = devices.Save(ctx, d)
	require.NoError(t, err)

	_, err = devices.Save(ctx, d)

	assert.ErrorIs(t, err, database.ErrDuplicate)
}
