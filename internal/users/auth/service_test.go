// Copyright (c) 2026 Ledgerline. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/platform/apperr"
	"github.com/ledgerline/ledgerline/internal/platform/sec"
	"github.com/ledgerline/ledgerline/internal/users/auth"
)

// # In-Memory Fakes

// fakeUserRepository implements auth.UserRepository over a map, mirroring
// the live-row filtering of the SQL implementation.
type fakeUserRepository struct {
	nextID int64
	users  map[int64]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{nextID: 1, users: make(map[int64]*auth.User)}
}

func (repo *fakeUserRepository) FindLiveByID(_ context.Context, id int64) (*auth.User, error) {
	user, found := repo.users[id]
	if !found || user.IsDeleted {
		return nil, apperr.NotFound("User")
	}
	snapshot := *user
	return &snapshot, nil
}

func (repo *fakeUserRepository) FindLiveByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email && !user.IsDeleted {
			snapshot := *user
			return &snapshot, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	user.ID = repo.nextID
	user.CreatedAt = time.Now()
	repo.nextID++
	stored := *user
	repo.users[stored.ID] = &stored
	return nil
}

func (repo *fakeUserRepository) ListLive(_ context.Context) ([]*auth.User, error) {
	live := make([]*auth.User, 0)
	for id := int64(1); id < repo.nextID; id++ {
		if user, found := repo.users[id]; found && !user.IsDeleted {
			snapshot := *user
			live = append(live, &snapshot)
		}
	}
	return live, nil
}

func (repo *fakeUserRepository) UpdateRole(_ context.Context, id int64, role sec.UserRole) error {
	user, found := repo.users[id]
	if !found || user.IsDeleted {
		return apperr.NotFound("User")
	}
	user.Role = role
	return nil
}

func (repo *fakeUserRepository) SoftDelete(_ context.Context, id int64) error {
	user, found := repo.users[id]
	if !found || user.IsDeleted {
		return apperr.NotFound("User")
	}
	user.IsDeleted = true
	return nil
}

// fakeLoginThrottle counts failures in memory; the window is ignored.
type fakeLoginThrottle struct {
	counts map[string]int64
}

func newFakeLoginThrottle() *fakeLoginThrottle {
	return &fakeLoginThrottle{counts: make(map[string]int64)}
}

func (throttle *fakeLoginThrottle) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	throttle.counts[key]++
	return throttle.counts[key], nil
}

func (throttle *fakeLoginThrottle) Clear(_ context.Context, key string) error {
	delete(throttle.counts, key)
	return nil
}

// newTestService wires a Service with fakes and a real HS256 token service
// so token round-trip properties are exercised end to end.
func newTestService(t *testing.T, ttl time.Duration) (*auth.Service, *fakeUserRepository, *fakeLoginThrottle) {
	t.Helper()
	repo := newFakeUserRepository()
	throttle := newFakeLoginThrottle()
	tokens := sec.NewTokenService("unit-test-secret", "ledgerline.test", ttl)
	return auth.NewService(repo, throttle, tokens), repo, throttle
}

// # Registration & Login

/*
TestService_RegisterLogin_RoundTrip walks the full happy path: register,
login with the same credentials, then resolve the issued token back to
the same live identity.
*/
func TestService_RegisterLogin_RoundTrip(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	result, err := service.Login(ctx, auth.LoginInput{
		Email:     "alice@example.com",
		Password:  "s3cret",
		IPAddress: "203.0.113.7",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", result.TokenType)
	require.NotEmpty(t, result.AccessToken)

	identity, err := service.ResolveIdentity(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, sec.RoleUser, identity.Role)
}

/*
TestService_Register_DuplicateEmail verifies a second registration with a
live account's email is rejected without touching storage.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, repo, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "bob@example.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{Email: "bob@example.com", Password: "pw2"})
	require.Error(t, err)
	assert.Equal(t, auth.ErrDuplicateEmail, err)
	assert.Len(t, repo.users, 1)
}

/*
TestService_Register_AfterSoftDelete confirms a soft-deleted account does
not block re-registration of its email.
*/
func TestService_Register_AfterSoftDelete(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	first, err := service.Register(ctx, auth.RegisterInput{Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = service.Delete(ctx, first.ID)
	require.NoError(t, err)

	second, err := service.Register(ctx, auth.RegisterInput{Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

/*
TestService_Login_IndistinguishableFailures asserts that an unknown email
and a wrong password produce the exact same error value, so the response
carries no account-existence signal.
*/
func TestService_Login_IndistinguishableFailures(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "dave@example.com", Password: "right"})
	require.NoError(t, err)

	_, unknownErr := service.Login(ctx, auth.LoginInput{
		Email: "nobody@example.com", Password: "whatever", IPAddress: "198.51.100.1",
	})
	_, wrongErr := service.Login(ctx, auth.LoginInput{
		Email: "dave@example.com", Password: "wrong", IPAddress: "198.51.100.1",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr, wrongErr)

	appError := apperr.As(unknownErr)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
}

/*
TestService_Login_Throttled verifies that repeated failures for the same
(email, ip) pair flip the response to 429 past the attempt limit.
*/
func TestService_Login_Throttled(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	input := auth.LoginInput{Email: "eve@example.com", Password: "guess", IPAddress: "192.0.2.9"}

	for i := int64(0); i < auth.LoginAttemptLimit; i++ {
		_, err := service.Login(ctx, input)
		require.Error(t, err)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 401, appError.HTTPStatus)
	}

	_, err := service.Login(ctx, input)
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 429, appError.HTTPStatus)
}

// # Identity Resolution

/*
TestService_ResolveIdentity_DeletedUser is the soft-delete cutoff: a
token that is still cryptographically valid must stop resolving the
moment its account is soft-deleted.
*/
func TestService_ResolveIdentity_DeletedUser(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{Email: "frank@example.com", Password: "pw"})
	require.NoError(t, err)

	result, err := service.Login(ctx, auth.LoginInput{
		Email: "frank@example.com", Password: "pw", IPAddress: "203.0.113.1",
	})
	require.NoError(t, err)

	// Token resolves while the account is live.
	_, err = service.ResolveIdentity(ctx, result.AccessToken)
	require.NoError(t, err)

	_, err = service.Delete(ctx, user.ID)
	require.NoError(t, err)

	// Same token, same signature, same expiry — rejected.
	_, err = service.ResolveIdentity(ctx, result.AccessToken)
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
}

/*
TestService_ResolveIdentity_ExpiredToken checks an expired token is
rejected no matter how valid its signature is.
*/
func TestService_ResolveIdentity_ExpiredToken(t *testing.T) {
	service, _, _ := newTestService(t, -time.Minute)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "grace@example.com", Password: "pw"})
	require.NoError(t, err)

	result, err := service.Login(ctx, auth.LoginInput{
		Email: "grace@example.com", Password: "pw", IPAddress: "203.0.113.2",
	})
	require.NoError(t, err)

	_, err = service.ResolveIdentity(ctx, result.AccessToken)
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
}

/*
TestService_ResolveIdentity_FailureShapes asserts every resolution
failure mode yields the identical error value.
*/
func TestService_ResolveIdentity_FailureShapes(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	garbageErrs := make([]error, 0, 2)

	_, err := service.ResolveIdentity(ctx, "not-a-token")
	require.Error(t, err)
	garbageErrs = append(garbageErrs, err)

	// Valid shape, unknown user id.
	tokens := sec.NewTokenService("unit-test-secret", "ledgerline.test", time.Hour)
	orphanToken, err := tokens.Issue(9999, sec.RoleUser)
	require.NoError(t, err)
	_, err = service.ResolveIdentity(ctx, orphanToken)
	require.Error(t, err)
	garbageErrs = append(garbageErrs, err)

	assert.Equal(t, garbageErrs[0], garbageErrs[1])
}

// # Account Administration

/*
TestService_Promote upgrades a user to admin and confirms the change is
visible on the next identity resolution without reissuing the token.
*/
func TestService_Promote(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{Email: "heidi@example.com", Password: "pw"})
	require.NoError(t, err)

	result, err := service.Login(ctx, auth.LoginInput{
		Email: "heidi@example.com", Password: "pw", IPAddress: "203.0.113.3",
	})
	require.NoError(t, err)

	identity, err := service.ResolveIdentity(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.False(t, identity.IsAdmin())

	promoted, err := service.Promote(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, promoted.Role)

	// Role checks run against the re-resolved identity, so promotion is
	// effective for the old token too.
	identity, err = service.ResolveIdentity(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())
}

/*
TestService_Promote_NotFound covers the missing and deleted account paths.
*/
func TestService_Promote_NotFound(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	_, err := service.Promote(ctx, 12345)
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

/*
TestService_ListUsers returns only live accounts.
*/
func TestService_ListUsers(t *testing.T) {
	service, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	first, err := service.Register(ctx, auth.RegisterInput{Email: "ivan@example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = service.Register(ctx, auth.RegisterInput{Email: "judy@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = service.Delete(ctx, first.ID)
	require.NoError(t, err)

	users, err := service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "judy@example.com", users[0].Email)
}
