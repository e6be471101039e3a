package registration

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"foodtook_backoffice/pkg/models"
)

var (
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
	ErrMissingAddress   = errors.New("address is required")
	ErrMissingDocuments = errors.New("required documents are missing")
	ErrInvalidStep      = errors.New("invalid wizard step")
	ErrInvalidInput     = errors.New("invalid input")
)

// StepName identifies a wizard step
type StepName string

const (
	StepBasic     StepName = "basic"
	StepLocation  StepName = "location"
	StepVehicle   StepName = "vehicle"
	StepDocuments StepName = "documents"
)

// Document keys
const (
	DocIdentification      = "identification"
	DocProofOfAddress      = "proofOfAddress"
	DocBusinessLicense     = "businessLicense"
	DocDriverLicense       = "driverLicense"
	DocVehicleRegistration = "vehicleRegistration"
)

// Steps returns the ordered steps of a wizard
func Steps(kind models.RegistrationKind) []StepName {
	if kind == models.RegistrationRider {
		return []StepName{StepBasic, StepVehicle, StepDocuments}
	}
	return []StepName{StepBasic, StepLocation, StepDocuments}
}

// RequiredDocuments returns the documents a submission of kind must carry
func RequiredDocuments(kind models.RegistrationKind) []string {
	if kind == models.RegistrationRider {
		return []string{DocIdentification, DocDriverLicense, DocVehicleRegistration}
	}
	return []string{DocIdentification, DocProofOfAddress, DocBusinessLicense}
}

// Form is the accumulated input of a wizard. Clients send the whole form with every step.
type Form struct {
	Email           string  `json:"email" form:"email"`
	Password        string  `json:"password" form:"password"`
	ConfirmPassword string  `json:"confirmPassword" form:"confirmPassword"`
	FirstName       string  `json:"firstName" form:"firstName"`
	LastName        string  `json:"lastName" form:"lastName"`
	Phone           string  `json:"phone" form:"phone"`
	BusinessName    string  `json:"businessName" form:"businessName"`
	Cuisine         string  `json:"cuisine" form:"cuisine"`
	Address         string  `json:"address" form:"address"`
	Latitude        float64 `json:"latitude" form:"latitude"`
	Longitude       float64 `json:"longitude" form:"longitude"`
	VehicleType     string  `json:"vehicleType" form:"vehicleType"`
	VehiclePlate    string  `json:"vehiclePlate" form:"vehiclePlate"`
	LicenseNumber   string  `json:"licenseNumber" form:"licenseNumber"`
	FCMToken        string  `json:"fcmToken" form:"fcmToken"`
}

// StepOutcome reports where the wizard goes after validating a step
type StepOutcome struct {
	Step     int      `json:"step"`
	StepName StepName `json:"stepName"`
	Next     int      `json:"next"`
	Complete bool     `json:"complete"`
}

// ValidateStep checks step (1-based) of a wizard. On error the wizard stays on step.
// documents are the names of documents already uploaded or attached.
func ValidateStep(kind models.RegistrationKind, step int, f Form, documents []string) (StepOutcome, error) {
	steps := Steps(kind)
	if step < 1 || step > len(steps) {
		return StepOutcome{}, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	out := StepOutcome{Step: step, StepName: steps[step-1], Next: step}

	switch steps[step-1] {
	case StepBasic:
		if f.Password != f.ConfirmPassword {
			return out, ErrPasswordMismatch
		}
	case StepLocation:
		if strings.TrimSpace(f.Address) == "" {
			return out, ErrMissingAddress
		}
	case StepVehicle:
	case StepDocuments:
		if missing := MissingDocuments(kind, documents); len(missing) > 0 {
			return out, fmt.Errorf("%w: %s", ErrMissingDocuments, strings.Join(missing, ", "))
		}
	}

	if step == len(steps) {
		out.Complete = true
		return out, nil
	}
	out.Next = step + 1
	return out, nil
}

// MissingDocuments returns the required documents of kind absent from present, sorted
func MissingDocuments(kind models.RegistrationKind, present []string) []string {
	have := make(map[string]bool, len(present))
	for _, p := range present {
		have[p] = true
	}
	var missing []string
	for _, d := range RequiredDocuments(kind) {
		if !have[d] {
			missing = append(missing, d)
		}
	}
	sort.Strings(missing)
	return missing
}

// isKnownDocument reports whether name is a document kind collects
func isKnownDocument(kind models.RegistrationKind, name string) bool {
	for _, d := range RequiredDocuments(kind) {
		if d == name {
			return true
		}
	}
	return false
}

// ToRequest copies the form into a request of kind. Passwords are never stored.
func (f Form) ToRequest(kind models.RegistrationKind) *models.RegistrationRequest {
	req := &models.RegistrationRequest{
		Kind:      kind,
		Email:     strings.ToLower(strings.TrimSpace(f.Email)),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		FCMToken:  f.FCMToken,
	}
	switch kind {
	case models.RegistrationRestaurant:
		req.BusinessName = f.BusinessName
		req.Cuisine = f.Cuisine
		req.Address = f.Address
		req.Latitude = f.Latitude
		req.Longitude = f.Longitude
	case models.RegistrationRider:
		req.VehicleType = f.VehicleType
		req.VehiclePlate = f.VehiclePlate
		req.LicenseNumber = f.LicenseNumber
		req.Address = f.Address
	}
	return req
}

// FormFromRequest pre-populates a wizard form from a stored draft
func FormFromRequest(req *models.RegistrationRequest) Form {
	return Form{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		BusinessName:  req.BusinessName,
		Cuisine:       req.Cuisine,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		VehicleType:   req.VehicleType,
		VehiclePlate:  req.VehiclePlate,
		LicenseNumber: req.LicenseNumber,
		FCMToken:      req.FCMToken,
	}
}
