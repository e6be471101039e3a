package routes

import (
	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/controllers/auth"
	"foodtook_backoffice/pkg/middleware"
)

// RegisterAuthRoutes registers sign-in, session and auth-mode routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", auth.SignIn)
		authGroup.POST("/session", auth.CreateSession)
		authGroup.GET("/me", middleware.AuthenticateToken(), auth.Me)
		authGroup.POST("/signout", auth.SignOut)

		// Auth-mode state machine
		authGroup.GET("/mode", auth.GetMode)
		authGroup.POST("/mode", auth.ApplyModeEvent)
		authGroup.GET("/mode/transitions", auth.GetTransitions)
	}
}
