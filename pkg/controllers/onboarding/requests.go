package onboarding

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/models"
	reg "foodtook_backoffice/pkg/registration"
)

// Deps wires the onboarding review controllers. Service is nil when Firebase is not configured.
type Deps struct {
	Service *reg.Service
}

var deps Deps

func Setup(d Deps) {
	deps = d
}

func prepare(c *gin.Context) (models.RegistrationKind, bool) {
	kind, err := models.ParseRegistrationKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return "", false
	}
	if deps.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Onboarding review is not configured"})
		return "", false
	}
	return kind, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Request not found"})
	case errors.Is(err, reg.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, reg.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		logger.FromGin(c).Error("onboarding request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// ListRequests lists registration requests of a kind; status defaults to pending
func ListRequests(c *gin.Context) {
	kind, ok := prepare(c)
	if !ok {
		return
	}
	status := models.RequestStatus(c.DefaultQuery("status", string(models.RequestStatusPending)))
	switch status {
	case models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "status must be pending, approved or rejected"})
		return
	}

	reqs, err := deps.Service.List(c.Request.Context(), kind, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Requests fetched successfully",
		"requests": reqs,
		"total":    len(reqs),
	})
}

func GetRequest(c *gin.Context) {
	kind, ok := prepare(c)
	if !ok {
		return
	}
	req, err := deps.Service.Get(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request fetched successfully", "request": req})
}

func ApproveRequest(c *gin.Context) {
	kind, ok := prepare(c)
	if !ok {
		return
	}
	var body struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid approval note"})
		return
	}

	req, err := deps.Service.Approve(c.Request.Context(), kind, c.Param("id"), body.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request approved", "request": req})
}

func RejectRequest(c *gin.Context) {
	kind, ok := prepare(c)
	if !ok {
		return
	}
	var body struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A rejection note is required"})
		return
	}

	req, err := deps.Service.Reject(c.Request.Context(), kind, c.Param("id"), body.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected", "request": req})
}
