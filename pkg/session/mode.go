package session

import (
	"errors"
	"fmt"
	"strings"

	"foodtook_backoffice/pkg/models"
)

// AuthMode is the authentication UI state of one browser session
type AuthMode string

const (
	ModeNone                         AuthMode = "none"
	ModeUser                         AuthMode = "user"
	ModeAdmin                        AuthMode = "admin"
	ModeStaff                        AuthMode = "staff"
	ModeRider                        AuthMode = "rider"
	ModeRestaurant                   AuthMode = "restaurant"
	ModeRiderRegistration            AuthMode = "rider-registration"
	ModeRestaurantRegistration       AuthMode = "restaurant-registration"
	ModeRiderLogin                   AuthMode = "rider-login"
	ModeRestaurantLogin              AuthMode = "restaurant-login"
	ModeRiderRegistrationResume      AuthMode = "rider-registration-resume"
	ModeRestaurantRegistrationResume AuthMode = "restaurant-registration-resume"
)

var allModes = []AuthMode{
	ModeNone, ModeUser, ModeAdmin, ModeStaff, ModeRider, ModeRestaurant,
	ModeRiderRegistration, ModeRestaurantRegistration, ModeRiderLogin, ModeRestaurantLogin,
	ModeRiderRegistrationResume, ModeRestaurantRegistrationResume,
}

// ParseAuthMode maps a stored mode string onto the closed AuthMode set
func ParseAuthMode(s string) (AuthMode, error) {
	for _, m := range allModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown auth mode %q", s)
}

// ModeForRole is the post-authentication mode of a resolved role
func ModeForRole(r models.Role) (AuthMode, error) {
	switch r {
	case models.RoleAdmin:
		return ModeAdmin, nil
	case models.RoleStaff:
		return ModeStaff, nil
	case models.RoleRestaurant:
		return ModeRestaurant, nil
	case models.RoleRider:
		return ModeRider, nil
	case models.RoleUser:
		return ModeUser, nil
	}
	return "", fmt.Errorf("no auth mode for role %q", r)
}

// ResumeMode is the resume state entered when a draft of the given kind exists
func ResumeMode(k models.RegistrationKind) AuthMode {
	if k == models.RegistrationRider {
		return ModeRiderRegistrationResume
	}
	return ModeRestaurantRegistrationResume
}

// Event is a UI action that moves the auth mode
type Event string

const (
	EventOpenRestaurantLogin         Event = "open-restaurant-login"
	EventOpenRiderLogin              Event = "open-rider-login"
	EventStartRestaurantRegistration Event = "start-restaurant-registration"
	EventStartRiderRegistration      Event = "start-rider-registration"
	EventBack                        Event = "back"
	EventLogout                      Event = "logout"
)

// Transition is one edge of the auth-mode machine
type Transition struct {
	From  AuthMode `json:"from"`
	Event Event    `json:"event"`
	To    AuthMode `json:"to"`
}

var transitions = []Transition{
	{ModeNone, EventOpenRestaurantLogin, ModeRestaurantLogin},
	{ModeNone, EventOpenRiderLogin, ModeRiderLogin},
	{ModeNone, EventStartRestaurantRegistration, ModeRestaurantRegistration},
	{ModeNone, EventStartRiderRegistration, ModeRiderRegistration},

	{ModeRestaurantLogin, EventBack, ModeNone},
	{ModeRestaurantLogin, EventStartRestaurantRegistration, ModeRestaurantRegistration},
	{ModeRiderLogin, EventBack, ModeNone},
	{ModeRiderLogin, EventStartRiderRegistration, ModeRiderRegistration},

	{ModeRestaurantRegistration, EventBack, ModeNone},
	{ModeRestaurantRegistration, EventOpenRestaurantLogin, ModeRestaurantLogin},
	{ModeRiderRegistration, EventBack, ModeNone},
	{ModeRiderRegistration, EventOpenRiderLogin, ModeRiderLogin},

	{ModeRestaurantRegistrationResume, EventLogout, ModeNone},
	{ModeRiderRegistrationResume, EventLogout, ModeNone},
	{ModeUser, EventLogout, ModeNone},
	{ModeAdmin, EventLogout, ModeNone},
	{ModeStaff, EventLogout, ModeNone},
	{ModeRider, EventLogout, ModeNone},
	{ModeRestaurant, EventLogout, ModeNone},
}

type transitionKey struct {
	From  AuthMode
	Event Event
}

var transitionMap = func() map[transitionKey]AuthMode {
	m := make(map[transitionKey]AuthMode, len(transitions))
	for _, t := range transitions {
		m[transitionKey{t.From, t.Event}] = t.To
	}
	return m
}()

// ErrInvalidTransition is returned when an event is not accepted in the current mode
var ErrInvalidTransition = errors.New("invalid auth mode transition")

// ValidEvents returns the events accepted in a mode, in table order
func ValidEvents(from AuthMode) []Event {
	var evs []Event
	for _, t := range transitions {
		if t.From == from {
			evs = append(evs, t.Event)
		}
	}
	return evs
}

// Next returns the mode reached from `from` on `ev`
func Next(from AuthMode, ev Event) (AuthMode, error) {
	if to, ok := transitionMap[transitionKey{from, ev}]; ok {
		return to, nil
	}
	valid := "none"
	if evs := ValidEvents(from); len(evs) > 0 {
		names := make([]string, len(evs))
		for i, e := range evs {
			names[i] = string(e)
		}
		valid = strings.Join(names, ", ")
	}
	return from, fmt.Errorf("%w: %q from %s; valid events: %s", ErrInvalidTransition, ev, from, valid)
}

// GetAllTransitions returns the full machine for documentation endpoints
func GetAllTransitions() []Transition {
	return transitions
}

// Machine holds the current auth mode of one session
type Machine struct {
	mode AuthMode
}

// NewMachine starts a machine at mode, or at none when mode is empty
func NewMachine(mode AuthMode) *Machine {
	if mode == "" {
		mode = ModeNone
	}
	return &Machine{mode: mode}
}

func (m *Machine) Mode() AuthMode {
	return m.mode
}

// Apply moves the machine along a UI event; the mode is unchanged on error
func (m *Machine) Apply(ev Event) error {
	to, err := Next(m.mode, ev)
	if err != nil {
		return err
	}
	m.mode = to
	return nil
}

// Force sets the mode directly. Resolver outcomes use it and win over pending UI events.
func (m *Machine) Force(mode AuthMode) {
	m.mode = mode
}
