package apartment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wooldanji/console/internal/domain"
)

var timeZero time.Time

func TestNewApartment(t *testing.T) {
	a, err := NewApartment("  Hanbit Village ", "12 Daehak-ro", "HB01", "")
	require.NoError(t, err)
	assert.Equal(t, "Hanbit Village", a.Name())
	assert.Equal(t, "HB01", a.Code())
	assert.Zero(t, a.ID())
	assert.False(t, a.CreatedAt().IsZero())

	_, err = NewApartment("", "addr", "X", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewApartment("Name", "addr", " ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApartment_WithDetails(t *testing.T) {
	a, err := NewApartment("Old", "", "C1", "")
	require.NoError(t, err)
	a = a.WithID(9)

	updated, err := a.WithDetails("New", "Addr", "C2", "memo")
	require.NoError(t, err)
	assert.Equal(t, int64(9), updated.ID())
	assert.Equal(t, "New", updated.Name())
	assert.Equal(t, a.CreatedAt(), updated.CreatedAt())
	assert.Equal(t, "Old", a.Name())
}

func TestBuilding_Rename(t *testing.T) {
	b, err := NewBuilding(1, "101")
	require.NoError(t, err)

	renamed, err := b.Rename(" 102 ")
	require.NoError(t, err)
	assert.Equal(t, "102", renamed.Name())

	_, err = b.Rename("")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewLine(t *testing.T) {
	l, err := NewLine(3, []int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, "1~4", l.Label())
	assert.Equal(t, []int{1, 2, 3, 4}, l.Numbers())

	_, err = NewLine(3, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewLine(3, []int{0, 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLine_NumbersAreCopied(t *testing.T) {
	numbers := []int{5, 6}
	l, err := NewLine(1, numbers)
	require.NoError(t, err)

	numbers[0] = 99
	got := l.Numbers()
	got[1] = 42

	assert.Equal(t, []int{5, 6}, l.Numbers())
}

func TestLine_WithNumbers(t *testing.T) {
	l := ReconstructLine(4, 2, []int{1, 2}, timeZero, timeZero)

	updated, err := l.WithNumbers([]int{1, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.ID())
	assert.Equal(t, int64(2), updated.BuildingID())
	assert.Equal(t, "1,3,5", updated.Label())
}

func TestUsedNumbers(t *testing.T) {
	lines := []Line{
		ReconstructLine(1, 1, []int{3, 4}, timeZero, timeZero),
		ReconstructLine(2, 1, []int{1, 2, 3}, timeZero, timeZero),
	}

	assert.Equal(t, []int{1, 2, 3, 4}, UsedNumbers(lines))
	assert.Empty(t, UsedNumbers(nil))
}

func TestParseDeviceKind(t *testing.T) {
	kind, err := ParseDeviceKind(" Elevator ")
	require.NoError(t, err)
	assert.Equal(t, DeviceKindElevator, kind)

	_, err = ParseDeviceKind("drone")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewDevice(t *testing.T) {
	d, err := NewDevice(1, 2, 3, "Lobby A", "SN-001", DeviceKindLobby)
	require.NoError(t, err)
	assert.True(t, d.Enabled())

	_, err = NewDevice(1, 0, 3, "Lobby A", "SN-001", DeviceKindLobby)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewDevice(1, 0, 0, "Lobby A", "", DeviceKindLobby)
	assert.ErrorIs(t, err, domain.ErrValidation)

	disabled, err := d.WithSettings("Lobby B", DeviceKindGate, false)
	require.NoError(t, err)
	assert.False(t, disabled.Enabled())
	assert.Equal(t, DeviceKindGate, disabled.Kind())
	assert.Equal(t, "SN-001", disabled.Serial())
}
