package directory

import (
	"context"

	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/session"
)

// Offline is the directory used when Firebase is not configured. Every lookup finds nothing,
// so principals resolve to ghost users.
type Offline struct{}

func (Offline) DraftRequest(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error) {
	return nil, nil
}

func (Offline) AdminByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error) {
	return nil, nil
}

func (Offline) StaffByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error) {
	return nil, nil
}

func (Offline) UserByID(ctx context.Context, uid string) (*session.Account, error) {
	return nil, nil
}

var _ session.Directory = Offline{}
