package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/database"
	"github.com/wooldanji/console/internal/domain"
)

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("wooldanji: client is closed")

// scopeFilter restricts field to the apartments the principal may see.
// ok is false when the principal may see no apartment at all, in which case
// callers return an empty result without querying.
func scopeFilter(p access.Principal, field string) (opt repository.Option, ok bool) {
	scope := p.Scope()
	if !scope.Restricted() {
		return func(q repository.Query) repository.Query { return q }, true
	}
	if scope.Empty() {
		return nil, false
	}
	return repository.WithConditionIn(field, scope.ApartmentIDs()), true
}

// conflictOnDuplicate turns a unique-constraint failure into ErrConflict.
func conflictOnDuplicate(err error, what string) error {
	if errors.Is(err, database.ErrDuplicate) {
		return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
	}
	return err
}

func joinInts(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
