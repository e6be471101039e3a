package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/controllers/admin"
	"foodtook_backoffice/pkg/controllers/auth"
	"foodtook_backoffice/pkg/controllers/onboarding"
	"foodtook_backoffice/pkg/controllers/public"
	regctl "foodtook_backoffice/pkg/controllers/registration"
	"foodtook_backoffice/pkg/controllers/staff"
	"foodtook_backoffice/pkg/controllers/support"
	"foodtook_backoffice/pkg/registration"
	"foodtook_backoffice/pkg/session"
)

// Deps is everything the controllers need. Auth and Registration are nil when Firebase
// is not configured; the routes then answer 503.
type Deps struct {
	DB           *gorm.DB
	Catalog      catalog.DemoCatalog
	Moderation   *catalog.Moderation
	Auth         auth.Authenticator
	Resolver     *session.Resolver
	Tracker      *session.Tracker
	Registration *registration.Service
	Geocoder     public.Geocoder
}

// Setup hands the dependencies to every controller package
func Setup(d Deps) {
	auth.Setup(auth.Deps{Auth: d.Auth, Resolver: d.Resolver, Tracker: d.Tracker})
	admin.Setup(admin.Deps{Catalog: d.Catalog, Moderation: d.Moderation})
	support.Setup(support.Deps{Catalog: d.Catalog})
	onboarding.Setup(onboarding.Deps{Service: d.Registration})
	staff.Setup(staff.Deps{Catalog: d.Catalog, Registration: d.Registration, DB: d.DB})
	regctl.Setup(regctl.Deps{Service: d.Registration})
	public.Setup(public.Deps{Geocoder: d.Geocoder})
}

// Register mounts every API group under /api
func Register(router *gin.Engine) *gin.RouterGroup {
	api := router.Group("/api")
	RegisterPublicRoutes(api)
	RegisterAuthRoutes(api)
	RegisterRegistrationRoutes(api)
	RegisterAdminRoutes(api)
	RegisterStaffRoutes(api)
	return api
}
