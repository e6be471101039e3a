package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/middleware"
	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/services"
	"foodtook_backoffice/pkg/session"
	"foodtook_backoffice/pkg/utils"
)

// Authenticator signs principals in against the auth provider
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*session.Principal, error)
	VerifyIDToken(ctx context.Context, idToken string) (*session.Principal, error)
}

// Deps wires the auth controllers. Auth is nil when Firebase is not configured.
type Deps struct {
	Auth     Authenticator
	Resolver *session.Resolver
	Tracker  *session.Tracker
}

var deps Deps

// Setup installs the controller dependencies
func Setup(d Deps) {
	deps = d
}

// Cookie session keys
const (
	sessionIDKey        = "sid"
	sessionModeKey      = "mode"
	sessionStaffRoleKey = "staffRole"
)

// sessionKey returns the tracker key of the browser session, creating it on first use
func sessionKey(c *gin.Context) string {
	s := sessions.Default(c)
	if id, ok := s.Get(sessionIDKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.Set(sessionIDKey, id)
	if err := s.Save(); err != nil {
		logger.FromGin(c).Warn("failed to save cookie session", zap.Error(err))
	}
	return id
}

// existingSessionKey returns the tracker key only when the browser already holds one
func existingSessionKey(c *gin.Context) (string, bool) {
	id, ok := sessions.Default(c).Get(sessionIDKey).(string)
	return id, ok && id != ""
}

// SignIn handles email/password login
func SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Route    string `json:"route"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}
	if deps.Auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Authentication is not configured"})
		return
	}

	p, err := deps.Auth.SignIn(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		authFailed(c, err)
		return
	}
	establish(c, p, req.Route)
}

// CreateSession exchanges a client ID token for a back-office session
func CreateSession(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
		Route   string `json:"route"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "idToken is required"})
		return
	}
	if deps.Auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Authentication is not configured"})
		return
	}

	p, err := deps.Auth.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		authFailed(c, err)
		return
	}
	establish(c, p, req.Route)
}

func authFailed(c *gin.Context, err error) {
	ae := services.ClassifyAuthError(err)
	status := http.StatusUnauthorized
	switch ae.Code {
	case services.AuthTooManyRequests:
		status = http.StatusTooManyRequests
	case services.AuthUserDisabled:
		status = http.StatusForbidden
	case services.AuthUnknown:
		status = http.StatusBadGateway
	}
	logger.FromGin(c).Info("sign-in rejected", zap.String("code", ae.Code), zap.Error(err))
	c.JSON(status, gin.H{"message": ae.Message, "code": ae.Code})
}

// establish resolves p, commits the result if no newer sign-in started meanwhile, forces
// the auth mode and issues the back-office token
func establish(c *gin.Context, p *session.Principal, route string) {
	key := sessionKey(c)
	tk := deps.Tracker.Begin(key)
	res := deps.Resolver.Resolve(c.Request.Context(), p, route)
	if !deps.Tracker.Commit(tk, res) {
		c.JSON(http.StatusConflict, gin.H{"message": "A newer sign-in superseded this one"})
		return
	}

	view, err := session.ViewForResolution(res, true)
	if err != nil {
		logger.FromGin(c).Error("no view for resolution", zap.String("mode", string(res.Mode)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	claims := utils.TokenClaims{UID: p.UID, Email: p.Email, Mode: string(res.Mode), Ghost: res.Ghost}
	if res.User != nil {
		claims.Role = res.User.Role
		claims.StaffRole = res.User.StaffRole
	}
	token, err := utils.GenerateToken(claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	m, _ := loadMachine(c)
	m.Force(res.Mode)
	saveMode(c, m.Mode(), claims.StaffRole)
	c.SetCookie(
		middleware.TokenCookie,
		token,
		int(config.JWTDuration().Seconds()),
		"/",
		"",
		config.AppConfig.CookieSecure == "true",
		true, // httpOnly
	)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Signed in successfully",
		"token":      token,
		"view":       view,
		"resolution": res,
	})
}

// Me returns the token claims and the committed resolution of this session
func Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}
	var res session.Resolution
	committed := false
	if key, ok := existingSessionKey(c); ok {
		res, committed = deps.Tracker.Current(key)
	}
	view, err := session.ViewForResolution(res, committed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	resp := gin.H{
		"uid":       claims.UID,
		"email":     claims.Email,
		"role":      claims.Role,
		"staffRole": claims.StaffRole,
		"mode":      claims.Mode,
		"ghost":     claims.Ghost,
		"view":      view,
	}
	if committed {
		resp["resolution"] = res
	}
	c.JSON(http.StatusOK, resp)
}

// SignOut clears the token, the committed resolution and the auth mode
func SignOut(c *gin.Context) {
	if key, ok := existingSessionKey(c); ok {
		deps.Tracker.Forget(key)
	}
	saveMode(c, session.ModeNone, nil)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", config.AppConfig.CookieSecure == "true", true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

func saveMode(c *gin.Context, mode session.AuthMode, staffRole *models.StaffRole) {
	s := sessions.Default(c)
	s.Set(sessionModeKey, string(mode))
	if staffRole != nil {
		s.Set(sessionStaffRoleKey, string(*staffRole))
	} else {
		s.Delete(sessionStaffRoleKey)
	}
	if err := s.Save(); err != nil {
		logger.FromGin(c).Warn("failed to save cookie session", zap.Error(err))
	}
}

// loadMachine rebuilds the auth-mode machine of this session. An unreadable stored mode
// restarts at none.
func loadMachine(c *gin.Context) (*session.Machine, *models.StaffRole) {
	s := sessions.Default(c)
	stored, _ := s.Get(sessionModeKey).(string)
	mode, err := session.ParseAuthMode(stored)
	if err != nil {
		mode = session.ModeNone
	}
	var sr *models.StaffRole
	if raw, ok := s.Get(sessionStaffRoleKey).(string); ok {
		if r, err := models.ParseStaffRole(raw); err == nil {
			sr = &r
		}
	}
	return session.NewMachine(mode), sr
}

func modeResponse(c *gin.Context, m *session.Machine, sr *models.StaffRole) {
	view, err := session.ViewFor(m.Mode(), sr)
	if err != nil {
		logger.FromGin(c).Warn("stored auth mode has no view", zap.String("mode", string(m.Mode())), zap.Error(err))
		view = session.ViewLanding
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":        m.Mode(),
		"view":        view,
		"validEvents": session.ValidEvents(m.Mode()),
	})
}

// GetMode returns the current auth mode and the events it accepts
func GetMode(c *gin.Context) {
	m, sr := loadMachine(c)
	modeResponse(c, m, sr)
}

// ApplyModeEvent moves the auth mode along a UI event
func ApplyModeEvent(c *gin.Context) {
	var req struct {
		Event session.Event `json:"event" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "event is required"})
		return
	}

	m, sr := loadMachine(c)
	if err := m.Apply(req.Event); err != nil {
		if errors.Is(err, session.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error(), "validEvents": session.ValidEvents(m.Mode())})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if m.Mode() == session.ModeNone {
		// logging out through the machine drops the resolved session too
		if key, ok := existingSessionKey(c); ok {
			deps.Tracker.Forget(key)
		}
		c.SetCookie(middleware.TokenCookie, "", -1, "/", "", config.AppConfig.CookieSecure == "true", true)
		sr = nil
	}
	saveMode(c, m.Mode(), sr)
	modeResponse(c, m, sr)
}

// GetTransitions lists the auth-mode transition table
func GetTransitions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transitions": session.GetAllTransitions()})
}
