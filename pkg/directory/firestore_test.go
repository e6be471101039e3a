package directory

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/session"
)

// newEmulatorDirectory connects to the Firestore emulator, or skips when none is running
func newEmulatorDirectory(t *testing.T) *Firestore {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "foodtook-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewFirestore(client, client)
}

func TestFirestoreLookups(t *testing.T) {
	dir := newEmulatorDirectory(t)
	ctx := context.Background()
	email := uuid.NewString() + "@foodtook.mx"

	entry, err := dir.StaffByEmail(ctx, email)
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, dir.Seed(ctx,
		[]models.DirectoryEntry{{Email: email, StaffRole: "support"}},
		[]models.DirectoryEntry{{Email: email, Name: "Root"}},
	))

	entry, err = dir.StaffByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "support", entry.StaffRole)

	entry, err = dir.AdminByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "Root", entry.Name)
}

func TestFirestoreUserAndDraft(t *testing.T) {
	dir := newEmulatorDirectory(t)
	ctx := context.Background()
	uid := uuid.NewString()

	acc, err := dir.UserByID(ctx, uid)
	require.NoError(t, err)
	assert.Nil(t, acc)

	_, err = dir.users.Collection(UsersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"name": "Tacos Ana", "email": "ana@foodtook.mx", "role": "restaurant", "gmv": 950.5,
	})
	require.NoError(t, err)

	acc, err = dir.UserByID(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, acc.Restaurant)
	assert.Equal(t, 950.5, acc.Restaurant.GMV)
	assert.Equal(t, uid, acc.User.ID)

	require.NoError(t, dir.SetStatus(ctx, uid, models.UserStatusBanned))
	acc, err = dir.UserByID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, acc.User.Status)

	_, err = dir.users.Collection(models.RegistrationRider.Collection()).Doc(uid).Set(ctx, models.RegistrationRequest{
		Kind: models.RegistrationRider, Status: models.RequestStatusDraft, FirstName: "Ana", VehicleType: "car",
	})
	require.NoError(t, err)

	res := session.NewResolver(dir, session.Options{}).Resolve(ctx, &session.Principal{UID: uid}, "/")
	assert.Equal(t, session.ModeRiderRegistrationResume, res.Mode)
	assert.Equal(t, "car", res.Draft.VehicleType)
}
