package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/middleware"
	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/services"
	"foodtook_backoffice/pkg/session"
)

type fakeAuth struct {
	users map[string]session.Principal
}

func (a fakeAuth) SignIn(ctx context.Context, email, password string) (*session.Principal, error) {
	p, ok := a.users[email]
	if !ok || password != "secreto1" {
		return nil, services.NewAuthError(services.AuthInvalidCredential, nil)
	}
	return &p, nil
}

func (a fakeAuth) VerifyIDToken(ctx context.Context, idToken string) (*session.Principal, error) {
	for _, p := range a.users {
		if "tok-"+p.UID == idToken {
			p := p
			return &p, nil
		}
	}
	return nil, services.NewAuthError(services.AuthInvalidToken, nil)
}

type directory struct {
	staff map[string]*models.DirectoryEntry
	draft map[string]*models.RegistrationRequest
}

func (d directory) DraftRequest(ctx context.Context, kind models.RegistrationKind, uid string) (*models.RegistrationRequest, error) {
	if r, ok := d.draft[string(kind)+"/"+uid]; ok {
		return r, nil
	}
	return nil, nil
}

func (d directory) AdminByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error) {
	return nil, nil
}

func (d directory) StaffByEmail(ctx context.Context, email string) (*models.DirectoryEntry, error) {
	return d.staff[email], nil
}

func (d directory) UserByID(ctx context.Context, uid string) (*session.Account, error) {
	return nil, nil
}

type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiresIn: "1h", CookieSecure: "false"}

	Setup(Deps{
		Auth: fakeAuth{users: map[string]session.Principal{
			"sofia@foodtook.mx": {UID: "s-1", Email: "sofia@foodtook.mx", EmailVerified: true},
			"sofia@mail.com":    {UID: "m-1", Email: "sofia@foodtook.mx"},
			"ana@mail.com":      {UID: "r-9", Email: "ana@mail.com"},
		}},
		Resolver: session.NewResolver(directory{
			staff: map[string]*models.DirectoryEntry{
				"sofia@foodtook.mx": {Email: "sofia@foodtook.mx", Name: "Sofía", Role: "staff", StaffRole: "support"},
			},
			draft: map[string]*models.RegistrationRequest{
				"rider/r-9": {ID: "r-9", Kind: models.RegistrationRider, Status: models.RequestStatusDraft, FirstName: "Ana"},
			},
		}, session.Options{}),
		Tracker: session.NewTracker(0),
	})

	r := gin.New()
	r.Use(sessions.Sessions("foodtook_session", cookie.NewStore([]byte("session-secret"))))
	g := r.Group("/api/auth")
	g.POST("/login", SignIn)
	g.POST("/session", CreateSession)
	g.GET("/me", middleware.AuthenticateToken(), Me)
	g.POST("/signout", SignOut)
	g.GET("/mode", GetMode)
	g.POST("/mode", ApplyModeEvent)
	g.GET("/mode/transitions", GetTransitions)
	return &client{t: t, r: r, cookies: map[string]*http.Cookie{}}
}

func (cl *client) do(method, path string, body interface{}) (int, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(cl.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(cl.cookies, ck.Name)
			continue
		}
		cl.cookies[ck.Name] = ck
	}
	out := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestLoginResolvesStaffView(t *testing.T) {
	cl := newClient(t)

	code, body := cl.do(http.MethodPost, "/api/auth/login", gin.H{"email": "sofia@foodtook.mx", "password": "secreto1", "route": "/staff"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "staff-support", body["view"])
	assert.Contains(t, cl.cookies, middleware.TokenCookie)

	code, body = cl.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "staff", body["role"])
	assert.Equal(t, "support", body["staffRole"])
	assert.Equal(t, "staff-support", body["view"])

	code, body = cl.do(http.MethodGet, "/api/auth/mode", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "staff", body["mode"])
	assert.Equal(t, "staff-support", body["view"])
}

func TestUnverifiedEmailIsNotStaff(t *testing.T) {
	cl := newClient(t)
	code, body := cl.do(http.MethodPost, "/api/auth/login", gin.H{"email": "sofia@mail.com", "password": "secreto1", "route": "/staff"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "welcome", body["view"])

	code, body = cl.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "user", body["role"])
	assert.Nil(t, body["staffRole"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	cl := newClient(t)
	code, body := cl.do(http.MethodPost, "/api/auth/login", gin.H{"email": "sofia@foodtook.mx", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Correo o contraseña incorrectos", body["message"])
	assert.Equal(t, services.AuthInvalidCredential, body["code"])
}

func TestSessionResumesDraft(t *testing.T) {
	cl := newClient(t)
	code, body := cl.do(http.MethodPost, "/api/auth/session", gin.H{"idToken": "tok-r-9"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "rider-registration-resume", body["view"])
	res := body["resolution"].(map[string]interface{})
	assert.Equal(t, "Ana", res["draft"].(map[string]interface{})["firstName"])

	code, _ = cl.do(http.MethodPost, "/api/auth/session", gin.H{"idToken": "bogus"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestModeMachineOverHTTP(t *testing.T) {
	cl := newClient(t)

	code, body := cl.do(http.MethodGet, "/api/auth/mode", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "none", body["mode"])
	assert.Equal(t, "landing", body["view"])

	code, body = cl.do(http.MethodPost, "/api/auth/mode", gin.H{"event": "open-rider-login"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "rider-login", body["view"])

	code, body = cl.do(http.MethodPost, "/api/auth/mode", gin.H{"event": "start-restaurant-registration"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body["message"], "valid events")

	code, body = cl.do(http.MethodPost, "/api/auth/mode", gin.H{"event": "start-rider-registration"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "rider-registration", body["mode"])

	code, body = cl.do(http.MethodPost, "/api/auth/mode", gin.H{"event": "back"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "none", body["mode"])

	code, body = cl.do(http.MethodGet, "/api/auth/mode/transitions", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["transitions"])
}

func TestSignOut(t *testing.T) {
	cl := newClient(t)
	code, _ := cl.do(http.MethodPost, "/api/auth/login", gin.H{"email": "sofia@foodtook.mx", "password": "secreto1"})
	require.Equal(t, http.StatusOK, code)

	code, _ = cl.do(http.MethodPost, "/api/auth/signout", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, cl.cookies, middleware.TokenCookie)

	code, _ = cl.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	_, body := cl.do(http.MethodGet, "/api/auth/mode", nil)
	assert.Equal(t, "none", body["mode"])
}

func TestSignOutWithoutSessionTracksNothing(t *testing.T) {
	cl := newClient(t)
	for i := 0; i < 3; i++ {
		code, _ := cl.do(http.MethodPost, "/api/auth/signout", nil)
		require.Equal(t, http.StatusOK, code)
		cl.cookies = map[string]*http.Cookie{}
	}
	code, _ := cl.do(http.MethodPost, "/api/auth/mode", gin.H{"event": "open-rider-login"})
	require.Equal(t, http.StatusOK, code)
	code, body := cl.do(http.MethodPost, "/api/auth/mode", gin.H{"event": "back"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "none", body["mode"])
	assert.Equal(t, 0, deps.Tracker.Len())
}

func TestSignInForcesModeOverPendingEvent(t *testing.T) {
	cl := newClient(t)
	code, body := cl.do(http.MethodPost, "/api/auth/mode", gin.H{"event": "open-rider-login"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "rider-login", body["view"])

	code, _ = cl.do(http.MethodPost, "/api/auth/login", gin.H{"email": "sofia@foodtook.mx", "password": "secreto1", "route": "/staff"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, deps.Tracker.Len())

	_, body = cl.do(http.MethodGet, "/api/auth/mode", nil)
	assert.Equal(t, "staff", body["mode"])
	assert.Equal(t, "staff-support", body["view"])
}
