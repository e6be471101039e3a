package registration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/metrics"
	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/services"
)

var (
	ErrNoDraft          = errors.New("no draft to resume")
	ErrAlreadySubmitted = errors.New("registration already submitted")
	ErrNotFound         = errors.New("registration request not found")
	ErrInvalidState     = errors.New("registration request is not pending")
)

// Accounts creates an auth account or signs into an existing one and returns its uid
type Accounts interface {
	EnsureAccount(ctx context.Context, email, password string) (string, error)
}

// BlobStore stores uploaded documents and returns their URL
type BlobStore interface {
	Upload(ctx context.Context, prefix, name, contentType string, r io.Reader) (string, error)
}

// Store persists drafts and requests
type Store interface {
	// GetDraft returns the document keyed by uid, or nil, nil when there is none
	GetDraft(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error)
	SaveDraft(ctx context.Context, req *models.RegistrationRequest) error
	// Submit writes pending under pending.ID and marks the draft of pending.OwnerUID
	// submitted, atomically. It returns ErrAlreadySubmitted when that draft is no longer a draft.
	Submit(ctx context.Context, pending *models.RegistrationRequest) error
	List(ctx context.Context, kind models.RegistrationKind, status models.RequestStatus) ([]models.RegistrationRequest, error)
	Get(ctx context.Context, kind models.RegistrationKind, id string) (*models.RegistrationRequest, error)
	// Review moves a pending request to approved or rejected; other statuses yield ErrInvalidState
	Review(ctx context.Context, kind models.RegistrationKind, id string, to models.RequestStatus, note string) (*models.RegistrationRequest, error)
}

type Notifier interface {
	Notify(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, req services.CaptchaRequest) error
}

type Geocoder interface {
	Locate(ctx context.Context, address string) (*services.Place, error)
}

// Upload is one document attached to a wizard request
type Upload struct {
	Document    string
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// Deps wires a Service. Notifier, Publisher, Captcha and Geocoder are optional.
type Deps struct {
	Accounts  Accounts
	Blobs     BlobStore
	Store     Store
	Notifier  Notifier
	Publisher Publisher
	Captcha   CaptchaVerifier
	Geocoder  Geocoder
	Now       func() time.Time
}

// Service runs the restaurant and rider registration wizards and the onboarding review
type Service struct {
	deps Deps
}

func NewService(d Deps) *Service {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{deps: d}
}

// Event is the payload published for registration lifecycle changes
type Event struct {
	RequestID string                  `json:"requestId"`
	Kind      models.RegistrationKind `json:"kind"`
	Status    models.RequestStatus    `json:"status"`
	OwnerUID  string                  `json:"ownerUid"`
	Email     string                  `json:"email"`
	Note      string                  `json:"note,omitempty"`
	At        time.Time               `json:"at"`
}

// Step validates one wizard step. On the location step a missing coordinate is filled by
// geocoding the address; geocoding failures leave the coordinates empty.
func (s *Service) Step(ctx context.Context, kind models.RegistrationKind, step int, f Form, documents []string) (StepOutcome, Form, error) {
	out, err := ValidateStep(kind, step, f, documents)
	if err != nil {
		return out, f, err
	}
	if out.StepName == StepLocation {
		f = s.geocode(ctx, f)
	}
	return out, f, nil
}

func (s *Service) geocode(ctx context.Context, f Form) Form {
	if s.deps.Geocoder == nil || strings.TrimSpace(f.Address) == "" || (f.Latitude != 0 && f.Longitude != 0) {
		return f
	}
	p, err := s.deps.Geocoder.Locate(ctx, f.Address)
	if err != nil {
		logger.FromContext(ctx).Info("address not geocoded", zap.String("address", f.Address), zap.Error(err))
		return f
	}
	f.Latitude, f.Longitude = p.Latitude, p.Longitude
	return f
}

// SaveDraft ensures the account, uploads the attached files one after another and upserts
// the draft keyed by the account id
func (s *Service) SaveDraft(ctx context.Context, kind models.RegistrationKind, f Form, uploads []Upload) (*models.RegistrationRequest, error) {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required to save a draft", ErrInvalidInput)
	}
	if f.Password != f.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	uid, err := s.deps.Accounts.EnsureAccount(ctx, f.Email, f.Password)
	if err != nil {
		return nil, err
	}

	existing, err := s.deps.Store.GetDraft(ctx, kind, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != models.RequestStatusDraft {
		return nil, ErrAlreadySubmitted
	}

	docs, err := s.uploadAll(ctx, kind, uid, existingDocs(existing), uploads)
	if err != nil {
		return nil, err
	}

	now := s.deps.Now()
	req := f.ToRequest(kind)
	req.ID = uid
	req.OwnerUID = uid
	req.Status = models.RequestStatusDraft
	req.Documents = docs
	req.CreatedAt = now
	if existing != nil && !existing.CreatedAt.IsZero() {
		req.CreatedAt = existing.CreatedAt
	}
	req.UpdatedAt = now

	if err := s.deps.Store.SaveDraft(ctx, req); err != nil {
		return nil, err
	}
	metrics.RegistrationSubmissions.WithLabelValues(string(kind), "draft").Inc()
	logger.FromContext(ctx).Info("registration draft saved",
		zap.String("kind", string(kind)), zap.String("uid", uid), zap.Int("documents", len(docs)))
	return req, nil
}

// ResumeData pre-populates a wizard from a saved draft
type ResumeData struct {
	Kind      models.RegistrationKind `json:"kind"`
	Step      int                     `json:"step"`
	Form      Form                    `json:"form"`
	Documents map[string]string       `json:"documents"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// Resume returns the draft of uid so the wizard re-enters at step 1
func (s *Service) Resume(ctx context.Context, kind models.RegistrationKind, uid string) (*ResumeData, error) {
	draft, err := s.deps.Store.GetDraft(ctx, kind, uid)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.Status != models.RequestStatusDraft {
		return nil, ErrNoDraft
	}
	return ResumeFromDraft(draft), nil
}

// ResumeFromDraft builds the resume payload of an already loaded draft
func ResumeFromDraft(draft *models.RegistrationRequest) *ResumeData {
	docs := draft.Documents
	if docs == nil {
		docs = map[string]string{}
	}
	return &ResumeData{
		Kind:      draft.Kind,
		Step:      1,
		Form:      FormFromRequest(draft),
		Documents: docs,
		UpdatedAt: draft.UpdatedAt,
	}
}

// Submit ensures the account, uploads remaining files and atomically writes a pending
// request while marking the draft submitted
func (s *Service) Submit(ctx context.Context, kind models.RegistrationKind, f Form, uploads []Upload, captcha services.CaptchaRequest) (*models.RegistrationRequest, error) {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if f.Password != f.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if kind == models.RegistrationRestaurant && strings.TrimSpace(f.Address) == "" {
		return nil, ErrMissingAddress
	}
	if s.deps.Captcha != nil {
		if err := s.deps.Captcha.Verify(ctx, captcha); err != nil {
			return nil, err
		}
	}

	uid, err := s.deps.Accounts.EnsureAccount(ctx, f.Email, f.Password)
	if err != nil {
		return nil, err
	}

	existing, err := s.deps.Store.GetDraft(ctx, kind, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != models.RequestStatusDraft {
		return nil, ErrAlreadySubmitted
	}

	docs := existingDocs(existing)
	present := make([]string, 0, len(docs)+len(uploads))
	for name := range docs {
		present = append(present, name)
	}
	for _, u := range uploads {
		present = append(present, u.Document)
	}
	if missing := MissingDocuments(kind, present); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingDocuments, strings.Join(missing, ", "))
	}

	if kind == models.RegistrationRestaurant {
		f = s.geocode(ctx, f)
	}

	docs, err = s.uploadAll(ctx, kind, uid, docs, uploads)
	if err != nil {
		return nil, err
	}

	now := s.deps.Now()
	pending := f.ToRequest(kind)
	pending.ID = uuid.NewString()
	pending.OwnerUID = uid
	pending.Status = models.RequestStatusPending
	pending.Documents = docs
	pending.CreatedAt = now
	pending.UpdatedAt = now
	pending.SubmittedAt = &now

	if err := s.deps.Store.Submit(ctx, pending); err != nil {
		return nil, err
	}

	metrics.RegistrationSubmissions.WithLabelValues(string(kind), "submit").Inc()
	logger.FromContext(ctx).Info("registration submitted",
		zap.String("kind", string(kind)), zap.String("uid", uid), zap.String("request_id", pending.ID))
	s.publish(ctx, "submitted", pending, "")
	return pending, nil
}

// List returns requests of kind with status, newest first
func (s *Service) List(ctx context.Context, kind models.RegistrationKind, status models.RequestStatus) ([]models.RegistrationRequest, error) {
	reqs, err := s.deps.Store.List(ctx, kind, status)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].UpdatedAt.After(reqs[j].UpdatedAt)
	})
	return reqs, nil
}

func (s *Service) Get(ctx context.Context, kind models.RegistrationKind, id string) (*models.RegistrationRequest, error) {
	return s.deps.Store.Get(ctx, kind, id)
}

func (s *Service) Approve(ctx context.Context, kind models.RegistrationKind, id, note string) (*models.RegistrationRequest, error) {
	return s.review(ctx, kind, id, models.RequestStatusApproved, note)
}

func (s *Service) Reject(ctx context.Context, kind models.RegistrationKind, id, note string) (*models.RegistrationRequest, error) {
	if strings.TrimSpace(note) == "" {
		return nil, fmt.Errorf("%w: a rejection note is required", ErrInvalidInput)
	}
	return s.review(ctx, kind, id, models.RequestStatusRejected, note)
}

func (s *Service) review(ctx context.Context, kind models.RegistrationKind, id string, to models.RequestStatus, note string) (*models.RegistrationRequest, error) {
	req, err := s.deps.Store.Review(ctx, kind, id, to, note)
	if err != nil {
		return nil, err
	}
	metrics.RegistrationSubmissions.WithLabelValues(string(kind), string(to)).Inc()
	logger.FromContext(ctx).Info("registration reviewed",
		zap.String("kind", string(kind)), zap.String("request_id", id), zap.String("status", string(to)))

	if s.deps.Notifier != nil && req.FCMToken != "" {
		title, body := reviewMessage(kind, to, note)
		err := s.deps.Notifier.Notify(ctx, req.FCMToken, title, body, map[string]string{
			"requestId": id,
			"kind":      string(kind),
			"status":    string(to),
		})
		if errors.Is(err, services.ErrStaleDeviceToken) {
			logger.FromContext(ctx).Info("applicant device no longer registered", zap.String("request_id", id))
		} else if err != nil {
			logger.FromContext(ctx).Warn("review notification failed", zap.String("request_id", id), zap.Error(err))
		}
	}
	s.publish(ctx, string(to), req, note)
	return req, nil
}

func reviewMessage(kind models.RegistrationKind, to models.RequestStatus, note string) (string, string) {
	who := "restaurante"
	if kind == models.RegistrationRider {
		who = "repartidor"
	}
	if to == models.RequestStatusApproved {
		return "¡Solicitud aprobada!", fmt.Sprintf("Tu registro como %s en FoodTook fue aprobado.", who)
	}
	body := fmt.Sprintf("Tu registro como %s en FoodTook fue rechazado.", who)
	if note != "" {
		body += " Motivo: " + note
	}
	return "Solicitud rechazada", body
}

func (s *Service) publish(ctx context.Context, action string, req *models.RegistrationRequest, note string) {
	if s.deps.Publisher == nil {
		return
	}
	key := fmt.Sprintf("registration.%s.%s", action, req.Kind)
	err := s.deps.Publisher.Publish(ctx, key, Event{
		RequestID: req.ID,
		Kind:      req.Kind,
		Status:    req.Status,
		OwnerUID:  req.OwnerUID,
		Email:     req.Email,
		Note:      note,
		At:        s.deps.Now(),
	})
	if err != nil {
		logger.FromContext(ctx).Warn("event publish failed", zap.String("routing_key", key), zap.Error(err))
	}
}

// uploadAll uploads files one at a time and returns docs extended with their URLs
func (s *Service) uploadAll(ctx context.Context, kind models.RegistrationKind, uid string, docs map[string]string, uploads []Upload) (map[string]string, error) {
	out := make(map[string]string, len(docs)+len(uploads))
	for k, v := range docs {
		out[k] = v
	}
	prefix := kind.Collection() + "/" + uid
	for _, u := range uploads {
		if !isKnownDocument(kind, u.Document) {
			return nil, fmt.Errorf("%w: unknown document %q", ErrInvalidInput, u.Document)
		}
		url, err := s.upload(ctx, prefix, u)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", u.Document, err)
		}
		out[u.Document] = url
	}
	return out, nil
}

func (s *Service) upload(ctx context.Context, prefix string, u Upload) (string, error) {
	r, err := u.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()
	return s.deps.Blobs.Upload(ctx, prefix, u.Document+"-"+u.Filename, u.ContentType, r)
}

func existingDocs(req *models.RegistrationRequest) map[string]string {
	if req == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(req.Documents))
	for k, v := range req.Documents {
		out[k] = v
	}
	return out
}
