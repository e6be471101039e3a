package onboarding

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtook_backoffice/pkg/models"
	reg "foodtook_backoffice/pkg/registration"
)

// requestStore keeps pending requests in memory
type requestStore struct {
	mu   sync.Mutex
	reqs map[string]*models.RegistrationRequest
}

func (s *requestStore) GetDraft(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error) {
	return nil, nil
}
func (s *requestStore) SaveDraft(ctx context.Context, req *models.RegistrationRequest) error {
	return nil
}
func (s *requestStore) Submit(ctx context.Context, pending *models.RegistrationRequest) error {
	return nil
}

func (s *requestStore) List(ctx context.Context, kind models.RegistrationKind, st models.RequestStatus) ([]models.RegistrationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.RegistrationRequest
	for _, r := range s.reqs {
		if r.Kind == kind && r.Status == st {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *requestStore) Get(ctx context.Context, kind models.RegistrationKind, id string) (*models.RegistrationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reqs[id]
	if !ok || r.Kind != kind {
		return nil, reg.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *requestStore) Review(ctx context.Context, kind models.RegistrationKind, id string, to models.RequestStatus, note string) (*models.RegistrationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reqs[id]
	if !ok || r.Kind != kind {
		return nil, reg.ErrNotFound
	}
	if r.Status != models.RequestStatusPending {
		return nil, reg.ErrInvalidState
	}
	r.Status = to
	r.ReviewNote = note
	cp := *r
	return &cp, nil
}

func newRouter(t *testing.T, svc *reg.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup(Deps{Service: svc})
	t.Cleanup(func() { Setup(Deps{}) })

	r := gin.New()
	g := r.Group("/requests/:kind")
	g.GET("", ListRequests)
	g.GET("/:id", GetRequest)
	g.POST("/:id/approve", ApproveRequest)
	g.POST("/:id/reject", RejectRequest)
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seededService() *reg.Service {
	store := &requestStore{reqs: map[string]*models.RegistrationRequest{
		"req-1": {ID: "req-1", Kind: models.RegistrationRider, Status: models.RequestStatusPending, OwnerUID: "uid-1", Email: "ana@mail.com"},
		"req-2": {ID: "req-2", Kind: models.RegistrationRider, Status: models.RequestStatusApproved, OwnerUID: "uid-2"},
		"req-3": {ID: "req-3", Kind: models.RegistrationRestaurant, Status: models.RequestStatusPending, OwnerUID: "uid-3"},
	}}
	return reg.NewService(reg.Deps{Store: store})
}

func TestListDefaultsToPending(t *testing.T) {
	r := newRouter(t, seededService())

	w := do(r, http.MethodGet, "/requests/rider", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Total    int                          `json:"total"`
		Requests []models.RegistrationRequest `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "req-1", resp.Requests[0].ID)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/requests/rider?status=draft", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/requests/courier", nil).Code)
}

func TestReviewFlow(t *testing.T) {
	r := newRouter(t, seededService())

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/requests/restaurant/req-1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/requests/rider/req-1/reject", gin.H{}).Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/requests/rider/req-1/approve", gin.H{"note": 5}).Code)

	w := do(r, http.MethodPost, "/requests/rider/req-1/approve", gin.H{"note": "Documentos completos"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"approved"`)

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/requests/rider/req-1/approve", nil).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/requests/rider/req-2/reject", gin.H{"note": "x"}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/requests/restaurant/req-3/reject", gin.H{"note": "Falta licencia"}).Code)
}

func TestUnconfiguredServiceIsUnavailable(t *testing.T) {
	r := newRouter(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/requests/rider", nil).Code)
}
