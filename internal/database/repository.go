package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/wooldanji/console/domain/repository"
	"gorm.io/gorm"
)

// ErrNotFound indicates the requested entity was not found.
var ErrNotFound = errors.New("entity not found")

// ErrDuplicate indicates a write violated a unique constraint.
var ErrDuplicate = errors.New("duplicate entity")

// EntityMapper defines the interface for mapping between domain and database model types.
type EntityMapper[D any, E any] interface {
	ToDomain(entity E) D
	ToModel(domain D) E
}

// Repository provides generic persistence operations for database entities
// using repository.Option-based queries. Embedding it gives a store the
// whole repository.Store contract.
type Repository[D any, E any] struct {
	db     Database
	mapper EntityMapper[D, E]
	label  string
}

// NewRepository creates a new Repository.
func NewRepository[D any, E any](db Database, mapper EntityMapper[D, E], label string) Repository[D, E] {
	return Repository[D, E]{
		db:     db,
		mapper: mapper,
		label:  label,
	}
}

// Find retrieves entities matching the given options.
func (r Repository[D, E]) Find(ctx context.Context, options ...repository.Option) ([]D, error) {
	var entities []E
	db := ApplyOptions(r.db.Session(ctx).Model(new(E)), options...)
	result := db.Find(&entities)
	if result.Error != nil {
		return nil, fmt.Errorf("find %s: %w", r.label, result.Error)
	}

	domains := make([]D, len(entities))
	for i, entity := range entities {
		domains[i] = r.mapper.ToDomain(entity)
	}
	return domains, nil
}

// FindOne retrieves a single entity matching the given options.
func (r Repository[D, E]) FindOne(ctx context.Context, options ...repository.Option) (D, error) {
	var entity E
	db := ApplyOptions(r.db.Session(ctx), options...)
	result := db.First(&entity)
	if result.Error != nil {
		var zero D
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, r.label)
		}
		return zero, fmt.Errorf("find one %s: %w", r.label, result.Error)
	}
	return r.mapper.ToDomain(entity), nil
}

// Exists checks if any entity matches the given options.
func (r Repository[D, E]) Exists(ctx context.Context, options ...repository.Option) (bool, error) {
	count, err := r.Count(ctx, options...)
	if err != nil {
		return false, fmt.Errorf("check %s exists: %w", r.label, err)
	}
	return count > 0, nil
}

// Count returns the number of entities matching the given options.
func (r Repository[D, E]) Count(ctx context.Context, options ...repository.Option) (int64, error) {
	var count int64
	db := ApplyConditions(r.db.Session(ctx).Model(new(E)), options...)
	if result := db.Count(&count); result.Error != nil {
		return 0, fmt.Errorf("count %s: %w", r.label, result.Error)
	}
	return count, nil
}

// Save creates the entity when it has no primary key yet, otherwise updates it.
func (r Repository[D, E]) Save(ctx context.Context, domain D) (D, error) {
	model := r.mapper.ToModel(domain)
	if result := r.db.Session(ctx).Save(&model); result.Error != nil {
		var zero D
		return zero, r.writeError("save", result.Error)
	}
	return r.mapper.ToDomain(model), nil
}

// Delete removes the entity by primary key.
func (r Repository[D, E]) Delete(ctx context.Context, domain D) error {
	model := r.mapper.ToModel(domain)
	if result := r.db.Session(ctx).Delete(&model); result.Error != nil {
		return fmt.Errorf("delete %s: %w", r.label, result.Error)
	}
	return nil
}

// DeleteBy removes entities matching the given options.
// Callers must pass at least one condition.
func (r Repository[D, E]) DeleteBy(ctx context.Context, options ...repository.Option) error {
	if len(repository.Build(options...).Conditions()) == 0 {
		return fmt.Errorf("delete %s: refusing unconditional delete", r.label)
	}
	db := ApplyConditions(r.db.Session(ctx), options...)
	if result := db.Delete(new(E)); result.Error != nil {
		return fmt.Errorf("delete %s: %w", r.label, result.Error)
	}
	return nil
}

func (r Repository[D, E]) writeError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s %s: %w", op, r.label, ErrDuplicate)
	}
	return fmt.Errorf("%s %s: %w", op, r.label, err)
}

// WriteError wraps a write failure, translating unique violations to ErrDuplicate.
func WriteError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// DB returns a GORM session for custom queries.
func (r Repository[D, E]) DB(ctx context.Context) *gorm.DB {
	return r.db.Session(ctx)
}

// Database returns the wrapped Database, used to open transactions.
func (r Repository[D, E]) Database() Database {
	return r.db
}

// Mapper returns the entity mapper for external use.
func (r Repository[D, E]) Mapper() EntityMapper[D, E] {
	return r.mapper
}
