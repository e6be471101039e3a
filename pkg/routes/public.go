package routes

import (
	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/controllers/public"
)

// RegisterPublicRoutes registers unauthenticated landing and geocoding routes
func RegisterPublicRoutes(router *gin.RouterGroup) {
	publicGroup := router.Group("/public")
	{
		publicGroup.GET("/landing/:audience", public.GetLanding)
		publicGroup.GET("/geocode", public.Geocode)
		publicGroup.GET("/reverse-geocode", public.ReverseGeocode)
	}
}
