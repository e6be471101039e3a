package session

import (
	"fmt"

	"foodtook_backoffice/pkg/models"
)

// View names the screen a client renders for a session
type View string

const (
	ViewLoading                      View = "loading"
	ViewLanding                      View = "landing"
	ViewRestaurantLogin              View = "restaurant-login"
	ViewRiderLogin                   View = "rider-login"
	ViewRestaurantRegistration       View = "restaurant-registration"
	ViewRiderRegistration            View = "rider-registration"
	ViewRestaurantRegistrationResume View = "restaurant-registration-resume"
	ViewRiderRegistrationResume      View = "rider-registration-resume"
	ViewAdminShell                   View = "admin-shell"
	ViewStaffSupport                 View = "staff-support"
	ViewStaffOnboarding              View = "staff-onboarding"
	ViewStaffOperations              View = "staff-operations"
	ViewWelcome                      View = "welcome"
)

// ViewFor selects the view of a mode. Staff mode requires a staff sub-role.
func ViewFor(mode AuthMode, staffRole *models.StaffRole) (View, error) {
	switch mode {
	case ModeNone:
		return ViewLanding, nil
	case ModeRestaurantLogin:
		return ViewRestaurantLogin, nil
	case ModeRiderLogin:
		return ViewRiderLogin, nil
	case ModeRestaurantRegistration:
		return ViewRestaurantRegistration, nil
	case ModeRiderRegistration:
		return ViewRiderRegistration, nil
	case ModeRestaurantRegistrationResume:
		return ViewRestaurantRegistrationResume, nil
	case ModeRiderRegistrationResume:
		return ViewRiderRegistrationResume, nil
	case ModeAdmin:
		return ViewAdminShell, nil
	case ModeStaff:
		if staffRole == nil {
			return "", fmt.Errorf("staff mode without staff role")
		}
		return staffView(*staffRole)
	case ModeUser, ModeRider, ModeRestaurant:
		return ViewWelcome, nil
	}
	return "", fmt.Errorf("no view for auth mode %q", mode)
}

func staffView(r models.StaffRole) (View, error) {
	switch r {
	case models.StaffRoleSupport:
		return ViewStaffSupport, nil
	case models.StaffRoleOnboarding:
		return ViewStaffOnboarding, nil
	case models.StaffRoleOperations:
		return ViewStaffOperations, nil
	}
	return "", fmt.Errorf("no view for staff role %q", r)
}

// ViewForResolution selects the view of a committed resolution, or loading when none is committed
func ViewForResolution(res Resolution, committed bool) (View, error) {
	if !committed {
		return ViewLoading, nil
	}
	var sr *models.StaffRole
	if res.User != nil {
		sr = res.User.StaffRole
	}
	return ViewFor(res.Mode, sr)
}
