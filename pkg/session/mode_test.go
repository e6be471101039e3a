package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtook_backoffice/pkg/models"
)

func TestMachineTransitions(t *testing.T) {
	m := NewMachine("")
	require.Equal(t, ModeNone, m.Mode())

	require.NoError(t, m.Apply(EventOpenRiderLogin))
	assert.Equal(t, ModeRiderLogin, m.Mode())

	require.NoError(t, m.Apply(EventStartRiderRegistration))
	assert.Equal(t, ModeRiderRegistration, m.Mode())

	require.NoError(t, m.Apply(EventBack))
	assert.Equal(t, ModeNone, m.Mode())
}

func TestInvalidTransitionListsValidEvents(t *testing.T) {
	m := NewMachine(ModeRiderLogin)
	err := m.Apply(EventOpenRestaurantLogin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Contains(t, err.Error(), "back, start-rider-registration")
	assert.Equal(t, ModeRiderLogin, m.Mode())

	_, err = Next(ModeAdmin, EventBack)
	assert.Contains(t, err.Error(), "valid events: logout")
}

func TestForceOverridesPendingState(t *testing.T) {
	m := NewMachine(ModeRestaurantLogin)
	m.Force(ModeRestaurantRegistrationResume)
	assert.Equal(t, ModeRestaurantRegistrationResume, m.Mode())
	require.NoError(t, m.Apply(EventLogout))
	assert.Equal(t, ModeNone, m.Mode())
}

func TestParseAuthMode(t *testing.T) {
	for _, m := range allModes {
		got, err := ParseAuthMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseAuthMode("superadmin")
	assert.Error(t, err)
}

func TestViewFor(t *testing.T) {
	onboarding := models.StaffRoleOnboarding
	cases := []struct {
		mode  AuthMode
		staff *models.StaffRole
		want  View
	}{
		{ModeNone, nil, ViewLanding},
		{ModeRiderLogin, nil, ViewRiderLogin},
		{ModeRestaurantRegistrationResume, nil, ViewRestaurantRegistrationResume},
		{ModeAdmin, nil, ViewAdminShell},
		{ModeStaff, &onboarding, ViewStaffOnboarding},
		{ModeRider, nil, ViewWelcome},
		{ModeUser, nil, ViewWelcome},
	}
	for _, tc := range cases {
		got, err := ViewFor(tc.mode, tc.staff)
		require.NoError(t, err, tc.mode)
		assert.Equal(t, tc.want, got, tc.mode)
	}

	_, err := ViewFor(ModeStaff, nil)
	assert.Error(t, err)
	bogus := models.StaffRole("janitor")
	_, err = ViewFor(ModeStaff, &bogus)
	assert.Error(t, err)
	_, err = ViewFor("superadmin", nil)
	assert.Error(t, err)

	v, err := ViewForResolution(Resolution{}, false)
	require.NoError(t, err)
	assert.Equal(t, ViewLoading, v)
}

func TestEveryModeHasAView(t *testing.T) {
	support := models.StaffRoleSupport
	for _, m := range allModes {
		_, err := ViewFor(m, &support)
		assert.NoError(t, err, m)
	}
}
