package service

import (
	"context"
	"fmt"

	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/inquiry"
	"golang.org/x/sync/errgroup"
)

// Summary holds the dashboard counters for the caller's apartments.
type Summary struct {
	Apartments       int64
	Devices          int64
	PendingResidents int64
	OpenInquiries    int64
}

// Dashboard computes overview counters.
type Dashboard struct {
	apartments *Apartments
	devices    *Devices
	residents  *Residents
	inquiries  *Inquiries
}

// NewDashboard creates a new Dashboard service.
func NewDashboard(apartments *Apartments, devices *Devices, residents *Residents, inquiries *Inquiries) *Dashboard {
	return &Dashboard{apartments: apartments, devices: devices, residents: residents, inquiries: inquiries}
}

// Summary counts apartments, devices, pending residents and open inquiries
// in the caller's scope. The counts run concurrently; the first failure
// cancels the rest.
func (s *Dashboard) Summary(ctx context.Context) (Summary, error) {
	var summary Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.apartments.Count(ctx, "")
		summary.Apartments = n
		return wrapCount("apartments", err)
	})
	g.Go(func() error {
		n, err := s.devices.Count(ctx, DeviceFilter{})
		summary.Devices = n
		return wrapCount("devices", err)
	})
	g.Go(func() error {
		n, err := s.residents.Count(ctx, ResidentFilter{Status: account.StatusPending})
		summary.PendingResidents = n
		return wrapCount("pending residents", err)
	})
	g.Go(func() error {
		n, err := s.inquiries.Count(ctx, InquiryFilter{Status: inquiry.StatusOpen})
		summary.OpenInquiries = n
		return wrapCount("open inquiries", err)
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func wrapCount(what string, err error) error {
	if err != nil {
		return fmt.Errorf("count %s: %w", what, err)
	}
	return nil
}
