package routes

import (
	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/controllers/registration"
	"foodtook_backoffice/pkg/middleware"
)

// RegisterRegistrationRoutes registers the restaurant and rider wizards
func RegisterRegistrationRoutes(router *gin.RouterGroup) {
	regGroup := router.Group("/registration/:kind")
	{
		regGroup.POST("/steps", registration.ValidateStep)
		regGroup.POST("/draft", registration.SaveDraft)
		regGroup.GET("/draft", middleware.AuthenticateToken(), registration.GetDraft)
		regGroup.POST("/submit", registration.Submit)
	}
}
