// Package seed imports apartments, buildings and line groups from a YAML
// document.
//
// A document looks like:
//
//	apartments:
//	  - name: Hanbit
//	    code: HBT
//	    address: 12 River Rd
//	    buildings:
//	      - name: "101"
//	        lines: "1~2, 3~4"
//
// Apartments and buildings that already exist (matched by name) are reused.
// Line groups already present in a building are skipped, so importing the
// same document twice is a no-op.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/line"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/domain"
)

// Document is the root of a seed file.
type Document struct {
	Apartments []Apartment `yaml:"apartments"`
}

// Apartment describes one apartment complex and its buildings.
type Apartment struct {
	Name      string     `yaml:"name"`
	Address   string     `yaml:"address"`
	Code      string     `yaml:"code"`
	Memo      string     `yaml:"memo"`
	Buildings []Building `yaml:"buildings"`
}

// Building describes one building and its line text.
type Building struct {
	Name  string `yaml:"name"`
	Lines string `yaml:"lines"`
}

// Rejection is a line token that did not parse.
type Rejection struct {
	Apartment string
	Building  string
	Token     string
}

// Result counts what an import created and reused.
type Result struct {
	ApartmentsCreated int
	ApartmentsReused  int
	BuildingsCreated  int
	BuildingsReused   int
	LinesAdded        int
	LinesSkipped      int
	Rejected          []Rejection
}

// Parse decodes a seed document. Unknown fields are rejected.
func Parse(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("%w: decode seed: %v", domain.ErrValidation, err)
	}
	return doc, nil
}

// LoadFile reads and parses the seed document at path.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// ApartmentService is the part of the apartment service the importer uses.
type ApartmentService interface {
	List(ctx context.Context, search string, options ...repository.Option) ([]apartment.Apartment, error)
	Create(ctx context.Context, params service.ApartmentParams) (apartment.Apartment, error)
}

// BuildingService is the part of the building service the importer uses.
type BuildingService interface {
	ListByApartment(ctx context.Context, apartmentID int64) ([]apartment.Building, error)
	Create(ctx context.Context, apartmentID int64, name string) (apartment.Building, error)
}

// LineService is the part of the line service the importer uses.
type LineService interface {
	ListByBuilding(ctx context.Context, buildingID int64) ([]apartment.Line, error)
	Add(ctx context.Context, buildingID int64, text string) (service.LineAddResult, error)
}

// Importer writes seed documents through the application services. The
// caller's context must carry a principal allowed to administer.
type Importer struct {
	apartments ApartmentService
	buildings  BuildingService
	lines      LineService
	logger     *slog.Logger
}

// NewImporter creates a new Importer.
func NewImporter(apartments ApartmentService, buildings BuildingService, lines LineService, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{apartments: apartments, buildings: buildings, lines: lines, logger: logger}
}

// Import applies doc. It stops at the first service error; work done before
// the error stays committed and is reflected in the returned Result.
func (i *Importer) Import(ctx context.Context, doc Document) (Result, error) {
	var result Result
	for _, spec := range doc.Apartments {
		a, created, err := i.apartment(ctx, spec)
		if err != nil {
			return result, err
		}
		if created {
			result.ApartmentsCreated++
		} else {
			result.ApartmentsReused++
		}

		existing, err := i.buildings.ListByApartment(ctx, a.ID())
		if err != nil {
			return result, fmt.Errorf("list buildings of %s: %w", a.Name(), err)
		}

		for _, bspec := range spec.Buildings {
			b, created, err := i.building(ctx, a, existing, bspec.Name)
			if err != nil {
				return result, err
			}
			if created {
				result.BuildingsCreated++
				existing = append(existing, b)
			} else {
				result.BuildingsReused++
			}

			if err := i.addLines(ctx, a, b, bspec.Lines, &result); err != nil {
				return result, err
			}
		}
	}

	i.logger.Info("seed imported",
		slog.Int("apartments_created", result.ApartmentsCreated),
		slog.Int("buildings_created", result.BuildingsCreated),
		slog.Int("lines_added", result.LinesAdded),
		slog.Int("rejected", len(result.Rejected)),
	)
	return result, nil
}

func (i *Importer) apartment(ctx context.Context, spec Apartment) (apartment.Apartment, bool, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return apartment.Apartment{}, false, fmt.Errorf("%w: seed apartment without a name", domain.ErrValidation)
	}

	matches, err := i.apartments.List(ctx, name)
	if err != nil {
		return apartment.Apartment{}, false, fmt.Errorf("find apartment %s: %w", name, err)
	}
	for _, a := range matches {
		if a.Name() == name {
			return a, false, nil
		}
	}

	a, err := i.apartments.Create(ctx, service.ApartmentParams{
		Name:    name,
		Address: spec.Address,
		Code:    spec.Code,
		Memo:    spec.Memo,
	})
	if err != nil {
		return apartment.Apartment{}, false, fmt.Errorf("create apartment %s: %w", name, err)
	}
	return a, true, nil
}

func (i *Importer) building(ctx context.Context, a apartment.Apartment, existing []apartment.Building, name string) (apartment.Building, bool, error) {
	name = strings.TrimSpace(name)
	for _, b := range existing {
		if b.Name() == name {
			return b, false, nil
		}
	}
	b, err := i.buildings.Create(ctx, a.ID(), name)
	if err != nil {
		return apartment.Building{}, false, fmt.Errorf("create building %s/%s: %w", a.Name(), name, err)
	}
	return b, true, nil
}

func (i *Importer) addLines(ctx context.Context, a apartment.Apartment, b apartment.Building, text string, result *Result) error {
	parsed := line.Parse(text)
	for _, token := range parsed.Rejected {
		result.Rejected = append(result.Rejected, Rejection{Apartment: a.Name(), Building: b.Name(), Token: token})
	}
	if len(parsed.Groups) == 0 {
		return nil
	}

	current, err := i.lines.ListByBuilding(ctx, b.ID())
	if err != nil {
		return fmt.Errorf("list lines of %s/%s: %w", a.Name(), b.Name(), err)
	}
	present := make(map[string]bool, len(current))
	for _, l := range current {
		present[line.Format(l.Numbers())] = true
	}

	var missing []string
	for _, group := range parsed.Groups {
		label := line.Format(group)
		if present[label] {
			result.LinesSkipped++
			continue
		}
		missing = append(missing, label)
	}
	if len(missing) == 0 {
		return nil
	}

	added, err := i.lines.Add(ctx, b.ID(), strings.Join(missing, line.GroupSeparator))
	if err != nil {
		return fmt.Errorf("add lines to %s/%s: %w", a.Name(), b.Name(), err)
	}
	result.LinesAdded += len(added.Lines)
	return nil
}
