package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/utils"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiresIn: "1h"}

	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware(), ErrorMiddleware())
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.GET("/admin", RestrictToAdmin(), ok)
	r.GET("/staff", RestrictToStaff(), ok)
	r.GET("/support", RestrictToStaffRole(models.StaffRoleSupport), ok)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(assert.AnError).SetMeta(http.StatusConflict) })
	r.NoRoute(NotFoundHandler())
	return r
}

func token(t *testing.T, role models.Role, staffRole *models.StaffRole) string {
	t.Helper()
	tok, err := utils.GenerateToken(utils.TokenClaims{UID: "u1", Email: "x@ft.mx", Role: role, StaffRole: staffRole})
	require.NoError(t, err)
	return tok
}

func do(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoleGates(t *testing.T) {
	r := setup(t)
	support := models.StaffRoleSupport
	ops := models.StaffRoleOperations

	admin := token(t, models.RoleAdmin, nil)
	staffSupport := token(t, models.RoleStaff, &support)
	staffOps := token(t, models.RoleStaff, &ops)
	user := token(t, models.RoleUser, nil)

	cases := []struct {
		path, tok string
		want      int
	}{
		{"/admin", "", http.StatusUnauthorized},
		{"/admin", "garbage", http.StatusUnauthorized},
		{"/admin", admin, http.StatusOK},
		{"/admin", staffSupport, http.StatusForbidden},
		{"/staff", staffOps, http.StatusOK},
		{"/staff", admin, http.StatusOK},
		{"/staff", user, http.StatusForbidden},
		{"/support", staffSupport, http.StatusOK},
		{"/support", staffOps, http.StatusForbidden},
		{"/support", admin, http.StatusOK},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, do(r, tc.path, tc.tok).Code, "%s", tc.path)
	}
}

func TestRejectedGateNeverRunsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiresIn: "1h"}
	support := models.StaffRoleSupport
	ops := models.StaffRoleOperations

	ran := 0
	handler := func(c *gin.Context) {
		ran++
		c.JSON(http.StatusOK, gin.H{"data": "secret"})
	}
	r := gin.New()
	r.GET("/admin", RestrictToAdmin(), handler)
	r.GET("/staff", RestrictToStaff(), handler)
	r.GET("/support", RestrictToStaffRole(models.StaffRoleSupport), handler)
	r.GET("/chained", AuthenticateToken(), AuthorizeRoles(models.RoleAdmin), handler)

	cases := []struct {
		path, tok string
		want      int
	}{
		{"/admin", token(t, models.RoleUser, nil), http.StatusForbidden},
		{"/admin", token(t, models.RoleStaff, &support), http.StatusForbidden},
		{"/staff", token(t, models.RoleRider, nil), http.StatusForbidden},
		{"/support", token(t, models.RoleStaff, &ops), http.StatusForbidden},
		{"/support", token(t, models.RoleUser, nil), http.StatusForbidden},
		{"/chained", token(t, models.RoleUser, nil), http.StatusForbidden},
		{"/chained", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := do(r, tc.path, tc.tok)
		assert.Equal(t, tc.want, w.Code, "%s", tc.path)
		assert.NotContains(t, w.Body.String(), "secret", "%s", tc.path)
	}
	assert.Zero(t, ran)

	w := do(r, "/chained", token(t, models.RoleAdmin, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, ran)
}

func TestTokenCookie(t *testing.T) {
	r := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token(t, models.RoleAdmin, nil)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDAndErrors(t *testing.T) {
	r := setup(t)

	w := do(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = do(r, "/fail", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, http.StatusNotFound, do(r, "/nope", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
