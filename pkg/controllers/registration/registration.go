package registration

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/middleware"
	"foodtook_backoffice/pkg/models"
	reg "foodtook_backoffice/pkg/registration"
	"foodtook_backoffice/pkg/services"
)

// maxDocumentSize caps each uploaded document
const maxDocumentSize = 10 << 20

// captchaAction is the reCAPTCHA action the wizard submits with
const captchaAction = "submit_registration"

// Deps wires the wizard controllers. Service is nil when Firebase is not configured;
// step validation still works without it.
type Deps struct {
	Service *reg.Service
}

var deps Deps

func Setup(d Deps) {
	deps = d
}

func kindParam(c *gin.Context) (models.RegistrationKind, bool) {
	kind, err := models.ParseRegistrationKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return "", false
	}
	return kind, true
}

func serviceAvailable(c *gin.Context) bool {
	if deps.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Registration is not configured"})
		return false
	}
	return true
}

// respondError maps wizard errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var ae *services.AuthError
	switch {
	case errors.Is(err, reg.ErrPasswordMismatch), errors.Is(err, reg.ErrMissingAddress),
		errors.Is(err, reg.ErrMissingDocuments), errors.Is(err, reg.ErrInvalidStep),
		errors.Is(err, reg.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, reg.ErrNoDraft), errors.Is(err, reg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, reg.ErrAlreadySubmitted), errors.Is(err, reg.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrCaptchaRejected):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.As(err, &ae):
		status := http.StatusUnauthorized
		if ae.Code == services.AuthEmailInUse || ae.Code == services.AuthWeakPassword {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"message": ae.Message, "code": ae.Code})
	default:
		logger.FromGin(c).Error("registration request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// ValidateStep checks one wizard step and reports the next one
func ValidateStep(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	var req struct {
		Step      int      `json:"step" binding:"required"`
		Form      reg.Form `json:"form"`
		Documents []string `json:"documents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "step is required"})
		return
	}

	var (
		out  reg.StepOutcome
		form = req.Form
		err  error
	)
	if deps.Service != nil {
		out, form, err = deps.Service.Step(c.Request.Context(), kind, req.Step, req.Form, req.Documents)
	} else {
		out, err = reg.ValidateStep(kind, req.Step, req.Form, req.Documents)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "outcome": out})
		return
	}
	form.Password, form.ConfirmPassword = "", ""
	c.JSON(http.StatusOK, gin.H{"outcome": out, "form": form, "steps": reg.Steps(kind)})
}

// uploadsFrom collects the document files of a multipart request, in required order
func uploadsFrom(c *gin.Context, kind models.RegistrationKind) ([]reg.Upload, error) {
	var uploads []reg.Upload
	for _, doc := range reg.RequiredDocuments(kind) {
		fh, err := c.FormFile(doc)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if fh.Size > maxDocumentSize {
			return nil, fmt.Errorf("%w: %s exceeds 10 MB", reg.ErrInvalidInput, doc)
		}
		uploads = append(uploads, upload(doc, fh))
	}
	return uploads, nil
}

func upload(doc string, fh *multipart.FileHeader) reg.Upload {
	return reg.Upload{
		Document:    doc,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open:        func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// SaveDraft stores the wizard progress keyed by the applicant's account
func SaveDraft(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok || !serviceAvailable(c) {
		return
	}
	var form reg.Form
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid form data"})
		return
	}
	uploads, err := uploadsFrom(c, kind)
	if err != nil {
		respondError(c, err)
		return
	}

	draft, err := deps.Service.SaveDraft(c.Request.Context(), kind, form, uploads)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Borrador guardado", "draft": draft})
}

// GetDraft returns the signed-in applicant's draft for resuming
func GetDraft(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok || !serviceAvailable(c) {
		return
	}
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}
	data, err := deps.Service.Resume(c.Request.Context(), kind, claims.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Submit turns the wizard into a pending request
func Submit(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok || !serviceAvailable(c) {
		return
	}
	var form reg.Form
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid form data"})
		return
	}
	uploads, err := uploadsFrom(c, kind)
	if err != nil {
		respondError(c, err)
		return
	}

	captcha := services.CaptchaRequest{
		Token:     c.PostForm("captchaToken"),
		Action:    captchaAction,
		UserIP:    c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	pending, err := deps.Service.Submit(c.Request.Context(), kind, form, uploads, captcha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Solicitud enviada", "request": pending})
}
