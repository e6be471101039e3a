package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/metrics"
	"foodtook_backoffice/pkg/models"
)

// Principal is an authenticated identity as reported by the auth provider
type Principal struct {
	UID   string
	Email string
	// EmailVerified gates the email-keyed admin and staff directories
	EmailVerified bool
}

// directoryEmail reports whether p may be matched against the email-keyed directories
func (p *Principal) directoryEmail() bool {
	return p.Email != "" && p.EmailVerified
}

// Account is a document of the users collection. Restaurant is set when the role is restaurant.
type Account struct {
	User       models.User
	Restaurant *models.Restaurant
}

// Directory is the set of lookups the resolver runs. Every method returns nil, nil when
// the record does not exist; an error means the lookup itself failed.
type Directory interface {
	DraftRequest(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error)
	AdminByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error)
	StaffByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error)
	UserByID(ctx context.Context, uid string) (*Account, error)
}

// Resolution is the outcome of resolving one principal
type Resolution struct {
	Mode       AuthMode                    `json:"mode"`
	User       *models.User                `json:"user,omitempty"`
	Restaurant *models.Restaurant          `json:"restaurant,omitempty"`
	Draft      *models.RegistrationRequest `json:"draft,omitempty"`
	Ghost      bool                        `json:"ghost,omitempty"`
	Degraded   bool                        `json:"degraded,omitempty"`
}

// Options configures a Resolver
type Options struct {
	AdminEntryPath string
	StaffEntryPath string
	LookupTimeout  time.Duration
}

// Resolver classifies a principal into a role or a draft-resume state
type Resolver struct {
	dir  Directory
	opts Options
}

func NewResolver(dir Directory, opts Options) *Resolver {
	if opts.AdminEntryPath == "" {
		opts.AdminEntryPath = "/admin"
	}
	if opts.StaffEntryPath == "" {
		opts.StaffEntryPath = "/staff"
	}
	return &Resolver{dir: dir, opts: opts}
}

// Resolve runs the ordered lookup for p on route. It never fails: a lookup error yields a
// ghost user flagged Degraded.
func (r *Resolver) Resolve(ctx context.Context, p *Principal, route string) Resolution {
	if p == nil || p.UID == "" {
		metrics.SessionResolutions.WithLabelValues(string(ModeNone)).Inc()
		return Resolution{Mode: ModeNone}
	}

	res, err := r.resolve(ctx, p, route)
	if err != nil {
		logger.FromContext(ctx).Warn("session resolution degraded to ghost user",
			zap.String("uid", p.UID),
			zap.String("route", route),
			zap.Error(err),
		)
		res = ghost(p)
		res.Degraded = true
		metrics.SessionResolutions.WithLabelValues("degraded").Inc()
		return res
	}
	metrics.SessionResolutions.WithLabelValues(string(res.Mode)).Inc()
	return res
}

func (r *Resolver) resolve(ctx context.Context, p *Principal, route string) (Resolution, error) {
	for _, kind := range []models.RegistrationKind{models.RegistrationRestaurant, models.RegistrationRider} {
		var draft *models.RegistrationRequest
		err := r.lookup(ctx, func(ctx context.Context) (err error) {
			draft, err = r.dir.DraftRequest(ctx, kind, p.UID)
			return err
		})
		if err != nil {
			return Resolution{}, fmt.Errorf("draft %s lookup: %w", kind, err)
		}
		if draft != nil && draft.Status == models.RequestStatusDraft {
			return Resolution{Mode: ResumeMode(kind), Draft: draft}, nil
		}
	}

	if matchesPath(route, r.opts.AdminEntryPath) {
		if res, ok, err := r.fromAdmin(ctx, p); err != nil || ok {
			return res, err
		}
	}
	if matchesPath(route, r.opts.StaffEntryPath) {
		if res, ok, err := r.fromStaff(ctx, p); err != nil || ok {
			return res, err
		}
	}

	var acc *Account
	err := r.lookup(ctx, func(ctx context.Context) (err error) {
		acc, err = r.dir.UserByID(ctx, p.UID)
		return err
	})
	if err != nil {
		return Resolution{}, fmt.Errorf("users lookup: %w", err)
	}
	if acc != nil {
		return fromAccount(p, acc)
	}

	if res, ok, err := r.fromStaff(ctx, p); err != nil || ok {
		return res, err
	}
	if res, ok, err := r.fromAdmin(ctx, p); err != nil || ok {
		return res, err
	}
	return ghost(p), nil
}

func (r *Resolver) fromAdmin(ctx context.Context, p *Principal) (Resolution, bool, error) {
	if !p.directoryEmail() {
		return Resolution{}, false, nil
	}
	var entry *models.DirectoryEntry
	err := r.lookup(ctx, func(ctx context.Context) (err error) {
		entry, err = r.dir.AdminByEmail(ctx, p.Email)
		return err
	})
	if err != nil {
		return Resolution{}, false, fmt.Errorf("admin lookup: %w", err)
	}
	if entry == nil {
		return Resolution{}, false, nil
	}
	u := directoryUser(p, entry)
	u.Role = models.RoleAdmin
	return Resolution{Mode: ModeAdmin, User: u}, true, nil
}

func (r *Resolver) fromStaff(ctx context.Context, p *Principal) (Resolution, bool, error) {
	if !p.directoryEmail() {
		return Resolution{}, false, nil
	}
	var entry *models.DirectoryEntry
	err := r.lookup(ctx, func(ctx context.Context) (err error) {
		entry, err = r.dir.StaffByEmail(ctx, p.Email)
		return err
	})
	if err != nil {
		return Resolution{}, false, fmt.Errorf("staff lookup: %w", err)
	}
	if entry == nil {
		return Resolution{}, false, nil
	}
	u := directoryUser(p, entry)
	if entry.Role == string(models.RoleAdmin) {
		u.Role = models.RoleAdmin
		return Resolution{Mode: ModeAdmin, User: u}, true, nil
	}
	sr, err := models.ParseStaffRole(entry.StaffRole)
	if err != nil {
		return Resolution{}, false, fmt.Errorf("staff entry %s: %w", p.Email, err)
	}
	u.Role = models.RoleStaff
	u.StaffRole = &sr
	return Resolution{Mode: ModeStaff, User: u}, true, nil
}

func (r *Resolver) lookup(ctx context.Context, fn func(context.Context) error) error {
	if r.opts.LookupTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, r.opts.LookupTimeout)
	defer cancel()
	return fn(ctx)
}

func fromAccount(p *Principal, acc *Account) (Resolution, error) {
	u := acc.User
	u.ID = p.UID
	if u.Email == "" {
		u.Email = p.Email
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	role, err := models.ParseRole(string(u.Role))
	if err != nil {
		return Resolution{}, fmt.Errorf("users/%s: %w", p.UID, err)
	}
	if u.Status == "" {
		u.Status = models.UserStatusActive
	}
	if _, err := models.ParseUserStatus(string(u.Status)); err != nil {
		return Resolution{}, fmt.Errorf("users/%s: %w", p.UID, err)
	}
	if role == models.RoleStaff {
		if u.StaffRole == nil {
			return Resolution{}, fmt.Errorf("users/%s: staff account without staffRole", p.UID)
		}
		if _, err := models.ParseStaffRole(string(*u.StaffRole)); err != nil {
			return Resolution{}, fmt.Errorf("users/%s: %w", p.UID, err)
		}
	}
	mode, err := ModeForRole(role)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{Mode: mode, User: &u}
	if role == models.RoleRestaurant && acc.Restaurant != nil {
		rest := *acc.Restaurant
		rest.User = u
		res.Restaurant = &rest
	}
	return res, nil
}

func directoryUser(p *Principal, e *models.DirectoryEntry) *models.User {
	return &models.User{
		ID:     p.UID,
		Name:   e.Name,
		Email:  p.Email,
		Phone:  e.Phone,
		Status: models.UserStatusActive,
	}
}

func ghost(p *Principal) Resolution {
	return Resolution{
		Mode: ModeUser,
		User: &models.User{
			ID:     p.UID,
			Email:  p.Email,
			Role:   models.RoleUser,
			Status: models.UserStatusActive,
		},
		Ghost: true,
	}
}

// matchesPath reports whether route is entry or below it
func matchesPath(route, entry string) bool {
	route = strings.TrimSuffix(route, "/")
	entry = strings.TrimSuffix(entry, "/")
	return route == entry || strings.HasPrefix(route, entry+"/")
}
