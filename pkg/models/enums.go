package models

import "fmt"

// Role enum
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleRestaurant Role = "restaurant"
	RoleStaff      Role = "staff"
	RoleRider      Role = "rider"
	RoleUser       Role = "user"
)

// ParseRole maps a stored role string onto the closed Role set
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleRestaurant, RoleStaff, RoleRider, RoleUser:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// UserStatus enum
type UserStatus string

const (
	UserStatusActive          UserStatus = "active"
	UserStatusInactive        UserStatus = "inactive"
	UserStatusBanned          UserStatus = "banned"
	UserStatusPendingApproval UserStatus = "pending_approval"
)

// ParseUserStatus maps a stored status string onto the closed UserStatus set
func ParseUserStatus(s string) (UserStatus, error) {
	switch st := UserStatus(s); st {
	case UserStatusActive, UserStatusInactive, UserStatusBanned, UserStatusPendingApproval:
		return st, nil
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

// StaffRole enum
type StaffRole string

const (
	StaffRoleSupport    StaffRole = "support"
	StaffRoleOnboarding StaffRole = "onboarding"
	StaffRoleOperations StaffRole = "operations"
)

// ParseStaffRole maps a stored staff sub-role onto the closed StaffRole set
func ParseStaffRole(s string) (StaffRole, error) {
	switch r := StaffRole(s); r {
	case StaffRoleSupport, StaffRoleOnboarding, StaffRoleOperations:
		return r, nil
	}
	return "", fmt.Errorf("unknown staff role %q", s)
}

// DishStatus enum
type DishStatus string

const (
	DishStatusActive   DishStatus = "active"
	DishStatusInactive DishStatus = "inactive"
	DishStatusPending  DishStatus = "pending"
	DishStatusRejected DishStatus = "rejected"
)

// RegistrationKind enum
type RegistrationKind string

const (
	RegistrationRestaurant RegistrationKind = "restaurant"
	RegistrationRider      RegistrationKind = "rider"
)

// ParseRegistrationKind maps a path segment onto the closed RegistrationKind set
func ParseRegistrationKind(s string) (RegistrationKind, error) {
	switch k := RegistrationKind(s); k {
	case RegistrationRestaurant, RegistrationRider:
		return k, nil
	}
	return "", fmt.Errorf("unknown registration kind %q", s)
}

// Collection is the Firestore collection holding requests of this kind
func (k RegistrationKind) Collection() string {
	if k == RegistrationRider {
		return "rider_requests"
	}
	return "restaurant_requests"
}

// RequestStatus enum
type RequestStatus string

const (
	RequestStatusDraft     RequestStatus = "draft"
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusSubmitted RequestStatus = "submitted"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
)

// Priority enum
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TicketStatus enum
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// ParseTicketStatus maps a request value onto the closed TicketStatus set
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch st := TicketStatus(s); st {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown ticket status %q", s)
}
