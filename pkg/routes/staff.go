package routes

import (
	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/controllers/onboarding"
	"foodtook_backoffice/pkg/controllers/staff"
	"foodtook_backoffice/pkg/controllers/support"
	"foodtook_backoffice/pkg/middleware"
	"foodtook_backoffice/pkg/models"
)

// RegisterStaffRoutes registers the staff dashboards; each area is gated by staff sub-role
func RegisterStaffRoutes(router *gin.RouterGroup) {
	staffGroup := router.Group("/staff")
	{
		staffGroup.GET("/dashboard", middleware.RestrictToStaff(), staff.GetDashboard)

		// Customer support
		supportGroup := staffGroup.Group("/support", middleware.RestrictToStaffRole(models.StaffRoleSupport))
		supportGroup.GET("/tickets", support.ListTickets)
		supportGroup.GET("/tickets/:id", support.GetTicket)
		supportGroup.POST("/tickets/:id/messages", support.ReplyTicket)
		supportGroup.PUT("/tickets/:id/status", support.SetTicketStatus)

		// Onboarding review
		onboardingGroup := staffGroup.Group("/onboarding", middleware.RestrictToStaffRole(models.StaffRoleOnboarding))
		onboardingGroup.GET("/requests/:kind", onboarding.ListRequests)
		onboardingGroup.GET("/requests/:kind/:id", onboarding.GetRequest)
		onboardingGroup.POST("/requests/:kind/:id/approve", onboarding.ApproveRequest)
		onboardingGroup.POST("/requests/:kind/:id/reject", onboarding.RejectRequest)

		// Operations
		opsGroup := staffGroup.Group("/operations", middleware.RestrictToStaffRole(models.StaffRoleOperations))
		opsGroup.GET("/metrics/:section", staff.GetOperationsMetrics)

		// Security Management
		securityGroup := staffGroup.Group("/security", middleware.RestrictToStaff())
		securityGroup.GET("/2fa-status", staff.Get2FAStatus)
		securityGroup.POST("/2fa-setup", staff.Generate2FASetup)
		securityGroup.POST("/2fa-enable", staff.Enable2FA)
		securityGroup.POST("/2fa-disable", staff.Disable2FA)
	}
}
