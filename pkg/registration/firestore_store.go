package registration

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodtook_backoffice/pkg/models"
)

// FirestoreStore keeps requests in the restaurant_requests and rider_requests collections
// of the users database. Drafts are keyed by account id, pending requests by a fresh id.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(kind models.RegistrationKind, id string) *firestore.DocumentRef {
	return s.client.Collection(kind.Collection()).Doc(id)
}

func decodeRequest(snap *firestore.DocumentSnapshot) (*models.RegistrationRequest, error) {
	var req models.RegistrationRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("decode %s: %w", snap.Ref.Path, err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

func (s *FirestoreStore) GetDraft(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error) {
	snap, err := s.doc(kind, uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", kind.Collection(), uid, err)
	}
	return decodeRequest(snap)
}

func (s *FirestoreStore) SaveDraft(ctx context.Context, req *models.RegistrationRequest) error {
	if _, err := s.doc(req.Kind, req.ID).Set(ctx, req); err != nil {
		return fmt.Errorf("save draft %s/%s: %w", req.Kind.Collection(), req.ID, err)
	}
	return nil
}

// Submit re-reads the owner's draft inside the transaction so two concurrent submits
// cannot both create a pending request
func (s *FirestoreStore) Submit(ctx context.Context, pending *models.RegistrationRequest) error {
	draftRef := s.doc(pending.Kind, pending.OwnerUID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(draftRef)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			st, _ := snap.DataAt("status")
			if v, ok := st.(string); ok && models.RequestStatus(v) != models.RequestStatusDraft {
				return ErrAlreadySubmitted
			}
		}
		if err := tx.Create(s.doc(pending.Kind, pending.ID), pending); err != nil {
			return err
		}
		return tx.Set(draftRef, map[string]interface{}{
			"kind":        string(pending.Kind),
			"ownerUid":    pending.OwnerUID,
			"email":       pending.Email,
			"status":      string(models.RequestStatusSubmitted),
			"requestId":   pending.ID,
			"submittedAt": pending.SubmittedAt,
			"updatedAt":   firestore.ServerTimestamp,
		}, firestore.MergeAll)
	})
	if errors.Is(err, ErrAlreadySubmitted) {
		return err
	}
	if err != nil {
		return fmt.Errorf("submit %s/%s: %w", pending.Kind.Collection(), pending.ID, err)
	}
	return nil
}

func (s *FirestoreStore) List(ctx context.Context, kind models.RegistrationKind, st models.RequestStatus) ([]models.RegistrationRequest, error) {
	q := s.client.Collection(kind.Collection()).Query
	if st != "" {
		q = q.Where("status", "==", string(st))
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []models.RegistrationRequest
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind.Collection(), err)
		}
		req, err := decodeRequest(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, nil
}

func (s *FirestoreStore) Get(ctx context.Context, kind models.RegistrationKind, id string) (*models.RegistrationRequest, error) {
	snap, err := s.doc(kind, id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", kind.Collection(), id, err)
	}
	return decodeRequest(snap)
}

func (s *FirestoreStore) Review(ctx context.Context, kind models.RegistrationKind, id string, to models.RequestStatus, note string) (*models.RegistrationRequest, error) {
	ref := s.doc(kind, id)
	var reviewed *models.RegistrationRequest
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		req, err := decodeRequest(snap)
		if err != nil {
			return err
		}
		if req.Status != models.RequestStatusPending {
			return fmt.Errorf("%w: %s", ErrInvalidState, req.Status)
		}
		req.Status = to
		req.ReviewNote = note
		reviewed = req
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(to)},
			{Path: "reviewNote", Value: note},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}
