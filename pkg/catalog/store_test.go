package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtook_backoffice/pkg/database"
	"foodtook_backoffice/pkg/models"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open("sqlite", "file::memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, database.Migrate(db))
	seeded, err := SeedDemo(context.Background(), db)
	require.NoError(t, err)
	require.True(t, seeded)
	return NewStore(db)
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	s := newSeededStore(t)
	seeded, err := SeedDemo(context.Background(), s.db)
	require.NoError(t, err)
	assert.False(t, seeded)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 10)
}

func TestToggleBanRoundTrip(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	u, err := s.ToggleBan(ctx, "u-001")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, u.Status)

	u, err = s.ToggleBan(ctx, "u-001")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, u.Status)

	// inactive and pending accounts are banned, not activated
	u, err = s.ToggleBan(ctx, "u-004")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, u.Status)

	// restaurants share the toggle
	u, err = s.ToggleBan(ctx, "rest-04")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, u.Status)

	_, err = s.ToggleBan(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDishReview(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	d, err := s.ApproveDish(ctx, "d-004")
	require.NoError(t, err)
	assert.Equal(t, models.DishStatusActive, d.Status)

	_, err = s.ApproveDish(ctx, "d-004")
	assert.True(t, errors.Is(err, ErrInvalidState))

	_, err = s.RejectDish(ctx, "d-006", "  ")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	d, err = s.RejectDish(ctx, "d-006", "Precio fuera de rango")
	require.NoError(t, err)
	assert.Equal(t, models.DishStatusRejected, d.Status)
	require.NotNil(t, d.RejectReason)

	dishes, err := s.ListDishes(ctx)
	require.NoError(t, err)
	assert.Empty(t, PendingDishes(dishes))

	_, err = s.ApproveDish(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAddDishAndUser(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	d, err := s.AddDish(ctx, NewDish{RestaurantID: "rest-02", Name: "Gyozas", Price: 89})
	require.NoError(t, err)
	assert.Equal(t, models.DishStatusPending, d.Status)

	_, err = s.AddDish(ctx, NewDish{RestaurantID: "rest-99", Name: "Gyozas", Price: 89})
	assert.True(t, errors.Is(err, ErrNotFound))

	u, err := s.AddUser(ctx, NewUser{Name: "Nuevo", Email: " Nuevo@FoodTook.mx ", Role: models.RoleUser, Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@foodtook.mx", u.Email)
	require.NotNil(t, u.Password)
	assert.NotEqual(t, "secreto1", *u.Password)

	_, err = s.AddUser(ctx, NewUser{Name: "X", Email: "x@ft.mx", Role: models.RoleStaff})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = s.AddUser(ctx, NewUser{Name: "X", Email: "x@ft.mx", Role: "superadmin"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTicketFlow(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	msg, err := s.AddTicketMessage(ctx, "t-001", "Sofía Castillo", "Te reembolsamos el envío.", false)
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)

	tk, err := s.GetTicket(ctx, "t-001")
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusInProgress, tk.Status)
	require.Len(t, tk.Messages, 2)
	assert.Equal(t, "Te reembolsamos el envío.", tk.Messages[1].Body)

	tk, err = s.SetTicketStatus(ctx, "t-001", models.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusClosed, tk.Status)

	_, err = s.AddTicketMessage(ctx, "t-001", "Sofía Castillo", "otra", false)
	assert.True(t, errors.Is(err, ErrInvalidState))

	_, err = s.SetTicketStatus(ctx, "t-001", "archived")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = s.SetTicketStatus(ctx, "t-404", models.TicketStatusOpen)
	assert.True(t, errors.Is(err, ErrNotFound))
}

type recordingWriter struct {
	calls map[string]models.UserStatus
	err   error
}

func (w *recordingWriter) SetStatus(ctx context.Context, uid string, st models.UserStatus) error {
	if w.err != nil {
		return w.err
	}
	w.calls[uid] = st
	return nil
}

func TestModerationPersistsStatus(t *testing.T) {
	s := newSeededStore(t)
	w := &recordingWriter{calls: map[string]models.UserStatus{}}
	m := NewModeration(s, w)

	res, err := m.ToggleBan(context.Background(), "u-002")
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, models.UserStatusBanned, w.calls["u-002"])

	w.err = errors.New("firestore down")
	res, err = m.ToggleBan(context.Background(), "u-002")
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, models.UserStatusActive, res.User.Status)

	res, err = NewModeration(s, nil).ToggleBan(context.Background(), "u-002")
	require.NoError(t, err)
	assert.False(t, res.Persisted)
}
