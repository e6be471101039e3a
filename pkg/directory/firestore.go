package directory

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/session"
)

// Collection names
const (
	UsersCollection = "users"
	StaffCollection = "staff"
	AdminCollection = "mandar"
)

// Firestore reads accounts from the users database and the staff/admin directory
// from the admin database
type Firestore struct {
	users *firestore.Client
	admin *firestore.Client
}

func NewFirestore(users, admin *firestore.Client) *Firestore {
	return &Firestore{users: users, admin: admin}
}

// DraftRequest returns the request document keyed by uid, whatever its status
func (f *Firestore) DraftRequest(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error) {
	snap, err := f.users.Collection(kind.Collection()).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", kind.Collection(), uid, err)
	}
	var req models.RegistrationRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", kind.Collection(), uid, err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

func (f *Firestore) AdminByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error) {
	return f.byEmail(ctx, AdminCollection, email)
}

func (f *Firestore) StaffByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error) {
	return f.byEmail(ctx, StaffCollection, email)
}

func (f *Firestore) byEmail(ctx context.Context, collection, email string) (*models.DirectoryEntry, error) {
	docs, err := f.admin.Collection(collection).Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query %s by email: %w", collection, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var entry models.DirectoryEntry
	if err := docs[0].DataTo(&entry); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, docs[0].Ref.ID, err)
	}
	return &entry, nil
}

// UserByID reads the users document with id uid
func (f *Firestore) UserByID(ctx context.Context, uid string) (*session.Account, error) {
	snap, err := f.users.Collection(UsersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get users/%s: %w", uid, err)
	}

	var rest models.Restaurant
	if err := snap.DataTo(&rest); err != nil {
		return nil, fmt.Errorf("decode users/%s: %w", uid, err)
	}
	rest.ID = snap.Ref.ID

	acc := &session.Account{User: rest.User}
	if rest.Role == models.RoleRestaurant {
		acc.Restaurant = &rest
	}
	return acc, nil
}

// SetStatus writes a user's status to its users document. The write is merged and
// creates the document when it does not exist.
func (f *Firestore) SetStatus(ctx context.Context, uid string, st models.UserStatus) error {
	_, err := f.users.Collection(UsersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"status":    string(st),
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("set users/%s status: %w", uid, err)
	}
	return nil
}

// Seed writes directory entries keyed by email into the staff and mandar collections
func (f *Firestore) Seed(ctx context.Context, staff, admins []models.DirectoryEntry) error {
	batch := f.admin.Batch()
	for _, e := range staff {
		batch.Set(f.admin.Collection(StaffCollection).Doc(e.Email), e)
	}
	for _, e := range admins {
		batch.Set(f.admin.Collection(AdminCollection).Doc(e.Email), e)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("seed directory: %w", err)
	}
	return nil
}
