package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/internal/database"
	"github.com/wooldanji/console/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted staff password.
const MinPasswordLength = 8

const tokenIssuer = "wooldanji-console"

// StaffParams describes a new staff account.
type StaffParams struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// Token is a signed staff access token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenConfig configures token signing.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

type staffClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Staff manages console staff accounts and authentication.
type Staff struct {
	staff      account.StaffStore
	apartments apartment.ApartmentStore
	tokens     TokenConfig
	logger     *slog.Logger
}

// NewStaff creates a new Staff service.
func NewStaff(staff account.StaffStore, apartments apartment.ApartmentStore, tokens TokenConfig, logger *slog.Logger) *Staff {
	if tokens.Cost == 0 {
		tokens.Cost = bcrypt.DefaultCost
	}
	return &Staff{staff: staff, apartments: apartments, tokens: tokens, logger: logger}
}

// Create adds a staff account with a bcrypt-hashed password.
func (s *Staff) Create(ctx context.Context, params StaffParams) (account.Staff, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return account.Staff{}, err
	}
	if len(params.Password) < MinPasswordLength {
		return account.Staff{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.tokens.Cost)
	if err != nil {
		return account.Staff{}, fmt.Errorf("hash password: %w", err)
	}
	st, err := account.NewStaff(params.Email, params.Name, string(hash), access.Role(params.Role))
	if err != nil {
		return account.Staff{}, err
	}
	taken, err := s.staff.Exists(ctx, account.WithEmail(st.Email()))
	if err != nil {
		return account.Staff{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return account.Staff{}, fmt.Errorf("%w: staff %s already exists", domain.ErrConflict, st.Email())
	}
	saved, err := s.staff.Save(ctx, st)
	if err != nil {
		return account.Staff{}, conflictOnDuplicate(fmt.Errorf("save staff: %w", err), "staff email")
	}
	s.logger.Info("staff created", slog.Int64("staff_id", saved.ID()), slog.String("role", string(saved.Role())))
	return saved, nil
}

// Login checks credentials and issues a token. Unknown emails, wrong
// passwords and inactive accounts all fail with ErrUnauthorized.
func (s *Staff) Login(ctx context.Context, email, password string) (Token, account.Staff, error) {
	st, err := s.staff.FindOne(ctx, account.WithEmail(strings.ToLower(strings.TrimSpace(email))))
	if errors.Is(err, database.ErrNotFound) {
		return Token{}, account.Staff{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}
	if err != nil {
		return Token{}, account.Staff{}, fmt.Errorf("get staff: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash()), []byte(password)); err != nil {
		return Token{}, account.Staff{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}
	if !st.Active() {
		return Token{}, account.Staff{}, fmt.Errorf("%w: account is deactivated", domain.ErrUnauthorized)
	}

	token, err := s.issue(st)
	if err != nil {
		return Token{}, account.Staff{}, err
	}
	s.logger.Info("staff signed in", slog.Int64("staff_id", st.ID()))
	return token, st, nil
}

func (s *Staff) issue(st account.Staff) (Token, error) {
	now := time.Now()
	expires := now.Add(s.tokens.TTL)
	claims := staffClaims{
		Name: st.Name(),
		Role: string(st.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(st.ID(), 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokens.Secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: expires}, nil
}

// Authenticate verifies a token and returns the principal it stands for.
// Role and apartment assignments are read fresh, so changes apply to
// tokens already issued.
func (s *Staff) Authenticate(ctx context.Context, token string) (access.Principal, error) {
	var claims staffClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.tokens.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return access.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return access.Principal{}, fmt.Errorf("%w: invalid subject", domain.ErrUnauthorized)
	}
	st, err := s.staff.FindOne(ctx, repository.WithID(id))
	if errors.Is(err, database.ErrNotFound) {
		return access.Principal{}, fmt.Errorf("%w: unknown staff", domain.ErrUnauthorized)
	}
	if err != nil {
		return access.Principal{}, fmt.Errorf("get staff: %w", err)
	}
	if !st.Active() {
		return access.Principal{}, fmt.Errorf("%w: account is deactivated", domain.ErrUnauthorized)
	}
	assigned, err := s.staff.Assignments(ctx, st.ID())
	if err != nil {
		return access.Principal{}, fmt.Errorf("get assignments: %w", err)
	}
	return access.NewPrincipal(st.ID(), st.Name(), st.Role(), assigned), nil
}

// List returns staff accounts ordered by email.
func (s *Staff) List(ctx context.Context, options ...repository.Option) ([]account.Staff, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return nil, err
	}
	if len(options) == 0 {
		options = []repository.Option{repository.WithOrderAsc("email")}
	}
	return s.staff.Find(ctx, options...)
}

// Count returns the number of staff accounts.
func (s *Staff) Count(ctx context.Context) (int64, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return 0, err
	}
	return s.staff.Count(ctx)
}

// Get returns a staff account. Staff may always read their own account.
func (s *Staff) Get(ctx context.Context, id int64) (account.Staff, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return account.Staff{}, err
	}
	if p.StaffID() != id {
		if err := p.Require(access.ActionAdminister); err != nil {
			return account.Staff{}, err
		}
	}
	st, err := s.staff.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return account.Staff{}, fmt.Errorf("get staff: %w", err)
	}
	return st, nil
}

// Assignments returns the apartment IDs assigned to a staff member.
func (s *Staff) Assignments(ctx context.Context, id int64) ([]int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.staff.Assignments(ctx, id)
}

// Assign replaces the apartments a staff member manages.
func (s *Staff) Assign(ctx context.Context, id int64, apartmentIDs []int64) ([]int64, error) {
	if err := requireAction(ctx, access.ActionAdminister); err != nil {
		return nil, err
	}
	if _, err := s.staff.FindOne(ctx, repository.WithID(id)); err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	ids := slices.Clone(apartmentIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) > 0 {
		found, err := s.apartments.Count(ctx, repository.WithIDIn(ids))
		if err != nil {
			return nil, fmt.Errorf("check apartments: %w", err)
		}
		if found != int64(len(ids)) {
			return nil, fmt.Errorf("%w: unknown apartment in %v", domain.ErrValidation, ids)
		}
	}
	if err := s.staff.ReplaceAssignments(ctx, id, ids); err != nil {
		return nil, fmt.Errorf("assign apartments: %w", err)
	}
	s.logger.Info("staff assignments replaced", slog.Int64("staff_id", id), slog.Any("apartment_ids", ids))
	return ids, nil
}

// Deactivate disables a staff account. Staff cannot deactivate themselves.
func (s *Staff) Deactivate(ctx context.Context, id int64) (account.Staff, error) {
	p, err := access.MustFromContext(ctx)
	if err != nil {
		return account.Staff{}, err
	}
	if err := p.Require(access.ActionAdminister); err != nil {
		return account.Staff{}, err
	}
	if p.StaffID() == id {
		return account.Staff{}, fmt.Errorf("%w: cannot deactivate your own account", domain.ErrConflict)
	}
	st, err := s.staff.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return account.Staff{}, fmt.Errorf("get staff: %w", err)
	}
	saved, err := s.staff.Save(ctx, st.Deactivate())
	if err != nil {
		return account.Staff{}, fmt.Errorf("save staff: %w", err)
	}
	s.logger.Info("staff deactivated", slog.Int64("staff_id", id))
	return saved, nil
}
