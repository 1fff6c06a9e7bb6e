package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/line"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/domain"
)

// LineAddResult is the outcome of adding line groups from text.
type LineAddResult struct {
	Lines    []apartment.Line
	Rejected []string
}

// LinePreview shows how text would be parsed without storing anything.
type LinePreview struct {
	Groups   [][]int
	Labels   []string
	Rejected []string
	// Set is the merged single-group reading used when replacing a group.
	Set []int
}

// Lines manages the line groups of buildings.
type Lines struct {
	buildings apartment.BuildingStore
	lines     apartment.LineStore
	logger    *slog.Logger
}

// NewLines creates a new Lines service.
func NewLines(buildings apartment.BuildingStore, lines apartment.LineStore, logger *slog.Logger) *Lines {
	return &Lines{buildings: buildings, lines: lines, logger: logger}
}

// ListByBuilding returns the line groups of a building in creation order.
func (s *Lines) ListByBuilding(ctx context.Context, buildingID int64) ([]apartment.Line, error) {
	if _, err := s.building(ctx, buildingID, access.ActionRead); err != nil {
		return nil, err
	}
	return s.siblings(ctx, buildingID)
}

// Get returns one line group.
func (s *Lines) Get(ctx context.Context, id int64) (apartment.Line, error) {
	return s.load(ctx, id, access.ActionRead)
}

// Add parses text such as "1~2, 3~7" into independent groups and stores one
// line per group. Unparseable tokens are skipped and reported in the result;
// text with no valid group at all is a validation error. A number already
// used by the building, or repeated across the new groups, is a conflict.
func (s *Lines) Add(ctx context.Context, buildingID int64, text string) (LineAddResult, error) {
	if _, err := s.building(ctx, buildingID, access.ActionAdminister); err != nil {
		return LineAddResult{}, err
	}

	parsed := line.Parse(text)
	if parsed.Empty() {
		if len(parsed.Rejected) > 0 {
			return LineAddResult{}, fmt.Errorf("%w: no valid line range in %q (rejected: %s)",
				domain.ErrValidation, text, strings.Join(parsed.Rejected, ", "))
		}
		return LineAddResult{}, fmt.Errorf("%w: line text is empty", domain.ErrValidation)
	}

	created := make([]apartment.Line, 0, len(parsed.Groups))
	for _, group := range parsed.Groups {
		l, err := apartment.NewLine(buildingID, group)
		if err != nil {
			return LineAddResult{}, err
		}
		created = append(created, l)
	}

	saved, err := s.lines.SaveChecked(ctx, buildingID, created, func(existing []apartment.Line) error {
		if clashes := clashingNumbers(apartment.UsedNumbers(existing), parsed.Groups); len(clashes) > 0 {
			return fmt.Errorf("%w: lines %s are already in use", domain.ErrConflict, joinInts(clashes))
		}
		return nil
	})
	if err != nil {
		return LineAddResult{}, fmt.Errorf("save lines: %w", err)
	}

	if len(parsed.Rejected) > 0 {
		s.logger.Warn("line tokens rejected",
			slog.Int64("building_id", buildingID),
			slog.Any("rejected", parsed.Rejected),
		)
	}
	s.logger.Info("lines added", slog.Int64("building_id", buildingID), slog.Int("groups", len(saved)))

	return LineAddResult{Lines: saved, Rejected: parsed.Rejected}, nil
}

// Replace reparses text as a single merged group and stores it in place of
// the existing group. The result must not overlap the building's other groups.
func (s *Lines) Replace(ctx context.Context, id int64, text string) (apartment.Line, error) {
	l, err := s.load(ctx, id, access.ActionAdminister)
	if err != nil {
		return apartment.Line{}, err
	}

	numbers := line.ParseSet(text)
	if !line.Valid(numbers) {
		return apartment.Line{}, fmt.Errorf("%w: no valid line numbers in %q", domain.ErrValidation, text)
	}

	updated, err := l.WithNumbers(numbers)
	if err != nil {
		return apartment.Line{}, err
	}
	saved, err := s.lines.SaveChecked(ctx, l.BuildingID(), []apartment.Line{updated}, func(existing []apartment.Line) error {
		siblings := slices.DeleteFunc(existing, func(other apartment.Line) bool { return other.ID() == l.ID() })
		if clashes := line.Overlap(apartment.UsedNumbers(siblings), numbers); len(clashes) > 0 {
			return fmt.Errorf("%w: lines %s are already in use", domain.ErrConflict, joinInts(clashes))
		}
		return nil
	})
	if err != nil {
		return apartment.Line{}, fmt.Errorf("save line: %w", err)
	}
	return saved[0], nil
}

// Delete removes a line group. Devices bound to it are unbound.
func (s *Lines) Delete(ctx context.Context, id int64) error {
	l, err := s.load(ctx, id, access.ActionAdminister)
	if err != nil {
		return err
	}
	if err := s.lines.DeleteUnbinding(ctx, l); err != nil {
		return fmt.Errorf("delete line: %w", err)
	}
	return nil
}

// Preview parses text both ways without storing anything.
func (s *Lines) Preview(text string) LinePreview {
	parsed := line.Parse(text)
	labels := make([]string, len(parsed.Groups))
	for i, g := range parsed.Groups {
		labels[i] = line.Format(g)
	}
	return LinePreview{
		Groups:   parsed.Groups,
		Labels:   labels,
		Rejected: parsed.Rejected,
		Set:      line.ParseSet(text),
	}
}

func (s *Lines) siblings(ctx context.Context, buildingID int64) ([]apartment.Line, error) {
	lines, err := s.lines.Find(ctx, apartment.WithBuildingID(buildingID), repository.WithOrderAsc("id"))
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	return lines, nil
}

func (s *Lines) building(ctx context.Context, id int64, action access.Action) (apartment.Building, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return apartment.Building{}, err
	}
	if err := p.Require(action); err != nil {
		return apartment.Building{}, err
	}
	b, err := s.buildings.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return apartment.Building{}, fmt.Errorf("get building: %w", err)
	}
	if err := p.RequireApartment(action, b.ApartmentID()); err != nil {
		return apartment.Building{}, err
	}
	return b, nil
}

func (s *Lines) load(ctx context.Context, id int64, action access.Action) (apartment.Line, error) {
	if _, err := access.MustFromContext(ctx); err != nil {
		return apartment.Line{}, err
	}
	l, err := s.lines.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return apartment.Line{}, fmt.Errorf("get line: %w", err)
	}
	if _, err := s.building(ctx, l.BuildingID(), action); err != nil {
		return apartment.Line{}, err
	}
	return l, nil
}

// clashingNumbers returns the numbers of groups that are already used, or
// that appear in more than one group, ascending and distinct.
func clashingNumbers(used []int, groups [][]int) []int {
	seen := make(map[int]struct{}, len(used))
	for _, n := range used {
		seen[n] = struct{}{}
	}
	var clashes []int
	for _, g := range groups {
		for _, n := range g {
			if _, ok := seen[n]; ok {
				clashes = append(clashes, n)
			}
		}
		for _, n := range g {
			seen[n] = struct{}{}
		}
	}
	slices.Sort(clashes)
	return slices.Compact(clashes)
}
