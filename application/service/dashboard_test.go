package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wooldanji/console/internal/domain"
)

func TestDashboard_Summary(t *testing.T) {
	f := newFixture(t)
	mine := f.apartment(t, "Hanbit", "HB")
	other := f.apartment(t, "Saebit", "SB")
	for i, apartmentID := range []int64{mine.ID(), mine.ID(), other.ID()} {
		r, err := f.residents.Create(adminCtx(), ResidentParams{Name: "R", ApartmentID: apartmentID})
		require.NoError(t, err)
		if i == 0 {
			_, err = f.residents.Approve(adminCtx(), r.ID())
			require.NoError(t, err)
		}
		_, err = f.inquiries.Create(adminCtx(), InquiryParams{ResidentID: r.ID(), Title: "Q"})
		require.NoError(t, err)
	}
	_, err := f.devices.Create(adminCtx(), DeviceParams{ApartmentID: mine.ID(), Name: "Lobby", Serial: "L-1", Kind: "lobby"})
	require.NoError(t, err)

	all, err := f.dashboard.Summary(adminCtx())
	require.NoError(t, err)
	assert.Equal(t, Summary{Apartments: 2, Devices: 1, PendingResidents: 2, OpenInquiries: 3}, all)

	scoped, err := f.dashboard.Summary(managerCtx(mine.ID()))
	require.NoError(t, err)
	assert.Equal(t, Summary{Apartments: 1, Devices: 1, PendingResidents: 1, OpenInquiries: 2}, scoped)

	empty, err := f.dashboard.Summary(managerCtx())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, empty)
}

func TestDashboard_Summary_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.dashboard.Summary(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
