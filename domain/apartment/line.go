package apartment

import (
	"fmt"
	"slices"
	"time"

	"github.com/wooldanji/console/domain/line"
	"github.com/wooldanji/console/internal/domain"
)

// Line is one group of building line numbers, such as lines 1 through 4
// sharing an elevator bank.
type Line struct {
	id         int64
	buildingID int64
	numbers    []int
	createdAt  time.Time
	updatedAt  time.Time
}

// NewLine creates a new Line. The numbers must form a valid line array.
func NewLine(buildingID int64, numbers []int) (Line, error) {
	if !line.Valid(numbers) {
		return Line{}, fmt.Errorf("%w: line numbers must be between %d and %d", domain.ErrValidation, line.MinLine, line.MaxLine)
	}
	now := time.Now()
	return Line{
		buildingID: buildingID,
		numbers:    slices.Clone(numbers),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructLine reconstructs a Line from persistence.
func ReconstructLine(id, buildingID int64, numbers []int, createdAt, updatedAt time.Time) Line {
	return Line{
		id:         id,
		buildingID: buildingID,
		numbers:    slices.Clone(numbers),
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the line ID.
func (l Line) ID() int64 { return l.id }

// BuildingID returns the owning building ID.
func (l Line) BuildingID() int64 { return l.buildingID }

// Numbers returns the line numbers.
func (l Line) Numbers() []int { return slices.Clone(l.numbers) }

// Label returns the display form, e.g. "1~4".
func (l Line) Label() string { return line.Format(l.numbers) }

// CreatedAt returns the creation timestamp.
func (l Line) CreatedAt() time.Time { return l.createdAt }

// UpdatedAt returns the last update timestamp.
func (l Line) UpdatedAt() time.Time { return l.updatedAt }

// WithNumbers returns a copy holding new numbers.
func (l Line) WithNumbers(numbers []int) (Line, error) {
	updated, err := NewLine(l.buildingID, numbers)
	if err != nil {
		return Line{}, err
	}
	updated.id = l.id
	updated.createdAt = l.createdAt
	return updated, nil
}

// WithID returns a copy with the specified ID.
func (l Line) WithID(id int64) Line {
	l.id = id
	return l
}

// UsedNumbers returns every number held by the given lines, ascending and
// distinct.
func UsedNumbers(lines []Line) []int {
	var used []int
	for _, l := range lines {
		used = append(used, l.numbers...)
	}
	slices.Sort(used)
	return slices.Compact(used)
}
