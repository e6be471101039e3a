package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtook_backoffice/pkg/models"
)

type fakeDirectory struct {
	drafts map[models.RegistrationKind]map[string]*models.RegistrationRequest
	admins map[string]*models.DirectoryEntry
	staff  map[string]*models.DirectoryEntry
	users  map[string]*Account

	failUsers bool
	delay     time.Duration

	mu    sync.Mutex
	calls []string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		drafts: map[models.RegistrationKind]map[string]*models.RegistrationRequest{
			models.RegistrationRestaurant: {},
			models.RegistrationRider:      {},
		},
		admins: map[string]*models.DirectoryEntry{},
		staff:  map[string]*models.DirectoryEntry{},
		users:  map[string]*Account{},
	}
}

func (f *fakeDirectory) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeDirectory) DraftRequest(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error) {
	f.record("draft:" + string(kind))
	return f.drafts[kind][uid], nil
}

func (f *fakeDirectory) AdminByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error) {
	f.record("admin")
	return f.admins[email], nil
}

func (f *fakeDirectory) StaffByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error) {
	f.record("staff")
	return f.staff[email], nil
}

func (f *fakeDirectory) UserByID(ctx context.Context, uid string) (*Account, error) {
	f.record("users")
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failUsers {
		return nil, errors.New("unavailable")
	}
	return f.users[uid], nil
}

var ana = &Principal{UID: "uid-ana", Email: "ana@foodtook.mx", EmailVerified: true}

func TestResolveNoPrincipal(t *testing.T) {
	r := NewResolver(newFakeDirectory(), Options{})
	res := r.Resolve(context.Background(), nil, "/")
	assert.Equal(t, ModeNone, res.Mode)
	assert.Nil(t, res.User)
}

func TestRestaurantDraftWinsOverUsersDocument(t *testing.T) {
	dir := newFakeDirectory()
	dir.drafts[models.RegistrationRestaurant][ana.UID] = &models.RegistrationRequest{
		Kind: models.RegistrationRestaurant, Status: models.RequestStatusDraft, FirstName: "Ana",
	}
	dir.users[ana.UID] = &Account{User: models.User{Name: "Ana", Role: models.RoleUser}}

	for _, route := range []string{"/", "/admin", "/staff"} {
		res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, route)
		assert.Equal(t, ModeRestaurantRegistrationResume, res.Mode, route)
		require.NotNil(t, res.Draft)
		assert.Equal(t, "Ana", res.Draft.FirstName)
	}
}

func TestRiderDraftResume(t *testing.T) {
	dir := newFakeDirectory()
	dir.drafts[models.RegistrationRider][ana.UID] = &models.RegistrationRequest{
		Kind: models.RegistrationRider, Status: models.RequestStatusDraft, VehicleType: "car",
	}
	res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/")
	assert.Equal(t, ModeRiderRegistrationResume, res.Mode)
	assert.Equal(t, "car", res.Draft.VehicleType)
}

func TestSubmittedDraftDoesNotResume(t *testing.T) {
	dir := newFakeDirectory()
	dir.drafts[models.RegistrationRestaurant][ana.UID] = &models.RegistrationRequest{
		Status: models.RequestStatusSubmitted,
	}
	dir.users[ana.UID] = &Account{User: models.User{Name: "Ana", Role: models.RoleRestaurant}}

	res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/")
	assert.Equal(t, ModeRestaurant, res.Mode)
	assert.Nil(t, res.Draft)
}

func TestAdminEntryPathChecksMandar(t *testing.T) {
	dir := newFakeDirectory()
	dir.admins[ana.Email] = &models.DirectoryEntry{Email: ana.Email, Name: "Ana Admin"}
	dir.users[ana.UID] = &Account{User: models.User{Role: models.RoleUser}}

	res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/admin/users")
	assert.Equal(t, ModeAdmin, res.Mode)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
	assert.Equal(t, "Ana Admin", res.User.Name)

	// outside the entry path the users document wins
	res = NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/")
	assert.Equal(t, ModeUser, res.Mode)
	assert.False(t, res.Ghost)
}

func TestStaffEntryPath(t *testing.T) {
	dir := newFakeDirectory()
	dir.staff[ana.Email] = &models.DirectoryEntry{Email: ana.Email, StaffRole: "onboarding"}

	res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/staff")
	assert.Equal(t, ModeStaff, res.Mode)
	require.NotNil(t, res.User.StaffRole)
	assert.Equal(t, models.StaffRoleOnboarding, *res.User.StaffRole)

	dir.staff[ana.Email] = &models.DirectoryEntry{Email: ana.Email, Role: "admin"}
	res = NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/staff")
	assert.Equal(t, ModeAdmin, res.Mode)
}

func TestFallbackToDirectoryWithoutRouteGate(t *testing.T) {
	dir := newFakeDirectory()
	dir.admins[ana.Email] = &models.DirectoryEntry{Email: ana.Email}

	res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/")
	assert.Equal(t, ModeAdmin, res.Mode)
	assert.Equal(t, []string{"draft:restaurant", "draft:rider", "users", "staff", "admin"}, dir.calls)
}

func TestUnverifiedEmailSkipsDirectories(t *testing.T) {
	dir := newFakeDirectory()
	dir.admins[ana.Email] = &models.DirectoryEntry{Email: ana.Email}
	dir.staff[ana.Email] = &models.DirectoryEntry{Email: ana.Email, StaffRole: "support"}
	unverified := &Principal{UID: "uid-mallory", Email: ana.Email}

	for _, route := range []string{"/admin", "/staff", "/"} {
		res := NewResolver(dir, Options{}).Resolve(context.Background(), unverified, route)
		assert.Equal(t, ModeUser, res.Mode, route)
		assert.True(t, res.Ghost, route)
		assert.Equal(t, models.RoleUser, res.User.Role, route)
	}
	assert.NotContains(t, dir.calls, "admin")
	assert.NotContains(t, dir.calls, "staff")
}

func TestGhostUser(t *testing.T) {
	res := NewResolver(newFakeDirectory(), Options{}).Resolve(context.Background(), ana, "/")
	assert.Equal(t, ModeUser, res.Mode)
	assert.True(t, res.Ghost)
	assert.False(t, res.Degraded)
	assert.Equal(t, ana.UID, res.User.ID)
	assert.Equal(t, models.UserStatusActive, res.User.Status)
}

func TestLookupErrorDegradesToGhost(t *testing.T) {
	dir := newFakeDirectory()
	dir.failUsers = true
	res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/")
	assert.True(t, res.Ghost)
	assert.True(t, res.Degraded)
	assert.Equal(t, ModeUser, res.Mode)
}

func TestUnknownRoleIsNotSilentlyAccepted(t *testing.T) {
	dir := newFakeDirectory()
	dir.users[ana.UID] = &Account{User: models.User{Role: "superuser"}}
	res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/")
	assert.True(t, res.Degraded)

	dir.staff[ana.Email] = &models.DirectoryEntry{StaffRole: "janitor"}
	res = NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/staff")
	assert.True(t, res.Degraded)
}

func TestLookupTimeout(t *testing.T) {
	dir := newFakeDirectory()
	dir.delay = time.Second
	res := NewResolver(dir, Options{LookupTimeout: 10 * time.Millisecond}).Resolve(context.Background(), ana, "/")
	assert.True(t, res.Degraded)
}

func TestRestaurantAccountCarriesMetrics(t *testing.T) {
	dir := newFakeDirectory()
	dir.users[ana.UID] = &Account{
		User:       models.User{Name: "Tacos Ana", Role: models.RoleRestaurant},
		Restaurant: &models.Restaurant{GMV: 1200, Cuisine: "mexicana"},
	}
	res := NewResolver(dir, Options{}).Resolve(context.Background(), ana, "/")
	assert.Equal(t, ModeRestaurant, res.Mode)
	require.NotNil(t, res.Restaurant)
	assert.Equal(t, 1200.0, res.Restaurant.GMV)
	assert.Equal(t, ana.UID, res.Restaurant.ID)
}

func TestMatchesPath(t *testing.T) {
	assert.True(t, matchesPath("/admin", "/admin"))
	assert.True(t, matchesPath("/admin/", "/admin"))
	assert.True(t, matchesPath("/admin/users", "/admin"))
	assert.False(t, matchesPath("/administrator", "/admin"))
	assert.False(t, matchesPath("/", "/admin"))
}
