package routes

import (
	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/controllers/admin"
	"foodtook_backoffice/pkg/controllers/onboarding"
	"foodtook_backoffice/pkg/controllers/support"
	"foodtook_backoffice/pkg/middleware"
)

// RegisterAdminRoutes registers the admin dashboard routes
func RegisterAdminRoutes(router *gin.RouterGroup) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.RestrictToAdmin())
	{
		adminGroup.GET("/shell", admin.GetShell)

		// Users and restaurants
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.POST("/users", admin.AddUser)
		adminGroup.POST("/users/:id/ban", admin.ToggleBan)
		adminGroup.GET("/restaurants", admin.ListRestaurants)

		// Dishes
		adminGroup.GET("/dishes", admin.ListDishes)
		adminGroup.POST("/dishes", admin.AddDish)
		adminGroup.GET("/dish-requests", admin.ListDishRequests)
		adminGroup.POST("/dish-requests/:id/approve", admin.ApproveDish)
		adminGroup.POST("/dish-requests/:id/reject", admin.RejectDish)

		// Support tickets
		adminGroup.GET("/tickets", support.ListTickets)
		adminGroup.GET("/tickets/:id", support.GetTicket)
		adminGroup.POST("/tickets/:id/messages", support.ReplyTicket)
		adminGroup.PUT("/tickets/:id/status", support.SetTicketStatus)

		// Metrics and export
		adminGroup.GET("/metrics/:section", admin.GetMetrics)
		adminGroup.GET("/export/:dataset", admin.ExportDataset)

		// Restaurant and rider registration review
		adminGroup.GET("/requests/:kind", onboarding.ListRequests)
		adminGroup.GET("/requests/:kind/:id", onboarding.GetRequest)
		adminGroup.POST("/requests/:kind/:id/approve", onboarding.ApproveRequest)
		adminGroup.POST("/requests/:kind/:id/reject", onboarding.RejectRequest)
	}
}
