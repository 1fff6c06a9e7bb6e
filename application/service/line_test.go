package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wooldanji/console/internal/database"
	"github.com/wooldanji/console/internal/domain"
)

func TestLines_Add(t *testing.T) {
	f := newFixture(t)
	a := f.apartment(t, "Hanbit", "HB")
	b := f.building(t, a.ID(), "101")

	result, err := f.lines.Add(adminCtx(), b.ID(), "1~2, 3~7")
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, "1~2", result.Lines[0].Label())
	assert.Equal(t, []int{3, 4, 5, 6, 7}, result.Lines[1].Numbers())
	assert.Empty(t, result.Rejected)

	listed, err := f.lines.ListByBuilding(adminCtx(), b.ID())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestLines_Add_ReportsRejectedTokens(t *testing.T) {
	f := newFixture(t)
	b := f.building(t, f.apartment(t, "Hanbit", "HB").ID(), "101")

	result, err := f.lines.Add(adminCtx(), b.ID(), "1~2, abc, 9")
	require.NoError(t, err)
	assert.Len(t, result.Lines, 2)
	assert.Equal(t, []string{"abc"}, result.Rejected)
}

func TestLines_Add_Validation(t *testing.T) {
	f := newFixture(t)
	b := f.building(t, f.apartment(t, "Hanbit", "HB").ID(), "101")

	for _, text := range []string{"", "  ", "abc", "4~1", "0~5, 100"} {
		_, err := f.lines.Add(adminCtx(), b.ID(), text)
		assert.ErrorIs(t, err, domain.ErrValidation, text)
	}
}

func TestLines_Add_ConflictWithExisting(t *testing.T) {
	f := newFixture(t)
	b := f.building(t, f.apartment(t, "Hanbit", "HB").ID(), "101")
	_, err := f.lines.Add(adminCtx(), b.ID(), "1~4")
	require.NoError(t, err)

	_, err = f.lines.Add(adminCtx(), b.ID(), "3~5")

	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "3,4")

	listed, err := f.lines.ListByBuilding(adminCtx(), b.ID())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestLines_Add_ConflictWithinRequest(t *testing.T) {
	f := newFixture(t)
	b := f.building(t, f.apartment(t, "Hanbit", "HB").ID(), "101")

	_, err := f.lines.Add(adminCtx(), b.ID(), "1~2, 2~3")

	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "lines 2 ")
}

func TestLines_Add_ConcurrentOverlapKeepsOneGroup(t *testing.T) {
	f := newFixture(t)
	b := f.building(t, f.apartment(t, "Hanbit", "HB").ID(), "101")

	texts := []string{"1~3", "2~4"}
	errs := make(chan error, len(texts))
	var wg sync.WaitGroup
	for _, text := range texts {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			_, err := f.lines.Add(adminCtx(), b.ID(), text)
			errs <- err
		}(text)
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrConflict):
			conflicted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	listed, err := f.lines.ListByBuilding(adminCtx(), b.ID())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestLines_Add_Permissions(t *testing.T) {
	f := newFixture(t)
	a := f.apartment(t, "Hanbit", "HB")
	b := f.building(t, a.ID(), "101")

	_, err := f.lines.Add(managerCtx(a.ID()), b.ID(), "1~2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.lines.Add(context.Background(), b.ID(), "1~2")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.lines.Add(adminCtx(), 999, "1~2")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestLines_Replace(t *testing.T) {
	f := newFixture(t)
	b := f.building(t, f.apartment(t, "Hanbit", "HB").ID(), "101")
	added, err := f.lines.Add(adminCtx(), b.ID(), "1~2, 5~6")
	require.NoError(t, err)
	first := added.Lines[0]

	replaced, err := f.lines.Replace(adminCtx(), first.ID(), "1,2,3")
	require.NoError(t, err)
	assert.Equal(t, first.ID(), replaced.ID())
	assert.Equal(t, "1~3", replaced.Label())

	_, err = f.lines.Replace(adminCtx(), first.ID(), "4~5")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.lines.Replace(adminCtx(), first.ID(), "1~2, 3~4")
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Replacing a group with its own numbers is not a conflict.
	_, err = f.lines.Replace(adminCtx(), first.ID(), "1~3")
	assert.NoError(t, err)
}

func TestLines_Delete(t *testing.T) {
	f := newFixture(t)
	b := f.building(t, f.apartment(t, "Hanbit", "HB").ID(), "101")
	added, err := f.lines.Add(adminCtx(), b.ID(), "1~2")
	require.NoError(t, err)

	require.NoError(t, f.lines.Delete(adminCtx(), added.Lines[0].ID()))

	_, err = f.lines.Get(adminCtx(), added.Lines[0].ID())
	assert.ErrorIs(t, err, database.ErrNotFound)

	// The freed numbers can be used again.
	_, err = f.lines.Add(adminCtx(), b.ID(), "1~2")
	assert.NoError(t, err)
}

func TestLines_Preview(t *testing.T) {
	f := newFixture(t)

	preview := f.lines.Preview("1~2, 3~7, x")

	assert.Equal(t, [][]int{{1, 2}, {3, 4, 5, 6, 7}}, preview.Groups)
	assert.Equal(t, []string{"1~2", "3~7"}, preview.Labels)
	assert.Equal(t, []string{"x"}, preview.Rejected)
	assert.Nil(t, preview.Set)
}

func TestClashingNumbers(t *testing.T) {
	assert.Equal(t, []int{3, 4}, clashingNumbers([]int{1, 2, 3, 4}, [][]int{{3, 4, 5}}))
	assert.Equal(t, []int{2}, clashingNumbers(nil, [][]int{{1, 2}, {2, 3}}))
	assert.Empty(t, clashingNumbers([]int{1}, [][]int{{2}, {3}}))
}
