package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtook_backoffice/pkg/models"
	reg "foodtook_backoffice/pkg/registration"
)

type accounts struct{}

func (accounts) EnsureAccount(ctx context.Context, email, password string) (string, error) {
	return "uid-" + email, nil
}

type blobs struct{ names []string }

func (b *blobs) Upload(ctx context.Context, prefix, name, contentType string, r io.Reader) (string, error) {
	b.names = append(b.names, name)
	return "https://storage.test/" + prefix + "/" + name, nil
}

type store struct {
	drafts  map[string]*models.RegistrationRequest
	pending []*models.RegistrationRequest
}

func (s *store) GetDraft(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error) {
	return s.drafts[uid], nil
}

func (s *store) SaveDraft(ctx context.Context, req *models.RegistrationRequest) error {
	s.drafts[req.ID] = req
	return nil
}

func (s *store) Submit(ctx context.Context, pending *models.RegistrationRequest) error {
	s.pending = append(s.pending, pending)
	s.drafts[pending.OwnerUID] = &models.RegistrationRequest{ID: pending.OwnerUID, Status: models.RequestStatusSubmitted}
	return nil
}

func (s *store) List(ctx context.Context, kind models.RegistrationKind, st models.RequestStatus) ([]models.RegistrationRequest, error) {
	return nil, nil
}

func (s *store) Get(ctx context.Context, kind models.RegistrationKind, id string) (*models.RegistrationRequest, error) {
	return nil, reg.ErrNotFound
}

func (s *store) Review(ctx context.Context, kind models.RegistrationKind, id string, to models.RequestStatus, note string) (*models.RegistrationRequest, error) {
	return nil, reg.ErrNotFound
}

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/registration/:kind")
	g.POST("/steps", ValidateStep)
	g.POST("/draft", SaveDraft)
	g.POST("/submit", Submit)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateStepWithoutBackend(t *testing.T) {
	Setup(Deps{})
	r := router()

	w := postJSON(r, "/api/registration/rider/steps", gin.H{
		"step": 1, "form": gin.H{"password": "secreto1", "confirmPassword": "otra"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/registration/rider/steps", gin.H{
		"step": 1, "form": gin.H{"password": "secreto1", "confirmPassword": "secreto1"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Outcome reg.StepOutcome `json:"outcome"`
		Form    reg.Form        `json:"form"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Outcome.Next)
	assert.Empty(t, body.Form.Password, "passwords are not echoed")

	assert.Equal(t, http.StatusNotFound, postJSON(r, "/api/registration/driver/steps", gin.H{"step": 1}).Code)
	assert.Equal(t, http.StatusServiceUnavailable, postJSON(r, "/api/registration/rider/draft", gin.H{}).Code)
}

func TestMultipartSubmit(t *testing.T) {
	b := &blobs{}
	st := &store{drafts: map[string]*models.RegistrationRequest{}}
	Setup(Deps{Service: reg.NewService(reg.Deps{Accounts: accounts{}, Blobs: b, Store: st})})
	r := router()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"email": "ana@mail.com", "password": "secreto1", "confirmPassword": "secreto1",
		"firstName": "Ana", "vehicleType": "moto",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, doc := range reg.RequiredDocuments(models.RegistrationRider) {
		fw, err := mw.CreateFormFile(doc, doc+".jpg")
		require.NoError(t, err)
		_, _ = fw.Write([]byte("jpeg"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/registration/rider/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, st.pending, 1)
	assert.Equal(t, models.RequestStatusPending, st.pending[0].Status)
	assert.Equal(t, "moto", st.pending[0].VehicleType)
	assert.Len(t, b.names, 3)

	// the second submission finds the draft already submitted
	w = postJSON(r, "/api/registration/rider/submit", gin.H{
		"email": "ana@mail.com", "password": "secreto1", "confirmPassword": "secreto1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
