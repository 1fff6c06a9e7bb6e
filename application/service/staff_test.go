package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/internal/domain"
)

func TestStaff_Create(t *testing.T) {
	f := newFixture(t)

	st, err := f.staff.Create(adminCtx(), StaffParams{Email: "Kim@Example.com", Name: "Kim", Password: "hunter22", Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", st.Email())
	assert.Equal(t, access.RoleManager, st.Role())
	assert.NotEqual(t, "hunter22", st.PasswordHash())

	_, err = f.staff.Create(adminCtx(), StaffParams{Email: "kim@example.com", Name: "Kim 2", Password: "hunter22"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.staff.Create(adminCtx(), StaffParams{Email: "lee@example.com", Name: "Lee", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.staff.Create(adminCtx(), StaffParams{Email: "not-an-email", Name: "Lee", Password: "hunter22"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.staff.Create(managerCtx(), StaffParams{Email: "park@example.com", Name: "Park", Password: "hunter22"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestStaff_LoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	a := f.apartment(t, "Hanbit", "HB")
	st, err := f.staff.Create(adminCtx(), StaffParams{Email: "kim@example.com", Name: "Kim", Password: "hunter22", Role: "manager"})
	require.NoError(t, err)
	_, err = f.staff.Assign(adminCtx(), st.ID(), []int64{a.ID()})
	require.NoError(t, err)

	_, _, err = f.staff.Login(context.Background(), "kim@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = f.staff.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	token, loggedIn, err := f.staff.Login(context.Background(), " KIM@example.com ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, st.ID(), loggedIn.ID())
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)

	p, err := f.staff.Authenticate(context.Background(), token.Value)
	require.NoError(t, err)
	assert.Equal(t, st.ID(), p.StaffID())
	assert.Equal(t, access.RoleManager, p.Role())
	assert.Equal(t, []int64{a.ID()}, p.Scope().ApartmentIDs())
}

func TestStaff_Authenticate_RejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	st, err := f.staff.Create(adminCtx(), StaffParams{Email: "kim@example.com", Name: "Kim", Password: "hunter22"})
	require.NoError(t, err)

	_, err = f.staff.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = f.staff.Authenticate(context.Background(), forged)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = f.staff.Authenticate(context.Background(), expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	token, _, err := f.staff.Login(context.Background(), "kim@example.com", "hunter22")
	require.NoError(t, err)
	system := access.WithPrincipal(context.Background(), access.System())
	_, err = f.staff.Deactivate(system, st.ID())
	require.NoError(t, err)

	_, err = f.staff.Authenticate(context.Background(), token.Value)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = f.staff.Login(context.Background(), "kim@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestStaff_Assign(t *testing.T) {
	f := newFixture(t)
	a := f.apartment(t, "Hanbit", "HB")
	b := f.apartment(t, "Saebit", "SB")
	st, err := f.staff.Create(adminCtx(), StaffParams{Email: "kim@example.com", Name: "Kim", Password: "hunter22"})
	require.NoError(t, err)

	ids, err := f.staff.Assign(adminCtx(), st.ID(), []int64{b.ID(), a.ID(), b.ID()})
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID(), b.ID()}, ids)

	_, err = f.staff.Assign(adminCtx(), st.ID(), []int64{a.ID(), 999})
	assert.ErrorIs(t, err, domain.ErrValidation)

	self := access.WithPrincipal(context.Background(), access.NewPrincipal(st.ID(), "Kim", access.RoleManager, ids))
	assigned, err := f.staff.Assignments(self, st.ID())
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID(), b.ID()}, assigned)

	_, err = f.staff.Assignments(managerCtx(), st.ID())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	cleared, err := f.staff.Assign(adminCtx(), st.ID(), nil)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

func TestStaff_Deactivate_Self(t *testing.T) {
	f := newFixture(t)

	_, err := f.staff.Deactivate(adminCtx(), 1)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStaff_List(t *testing.T) {
	f := newFixture(t)
	for _, email := range []string{"lee@example.com", "kim@example.com"} {
		_, err := f.staff.Create(adminCtx(), StaffParams{Email: email, Name: "Staff", Password: "hunter22"})
		require.NoError(t, err)
	}

	listed, err := f.staff.List(adminCtx())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "kim@example.com", listed[0].Email())

	count, err := f.staff.Count(adminCtx())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = f.staff.List(managerCtx())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
