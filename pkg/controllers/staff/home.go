package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodtook_backoffice/pkg/analytics"
	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/middleware"
	"foodtook_backoffice/pkg/models"
	reg "foodtook_backoffice/pkg/registration"
	"foodtook_backoffice/pkg/session"
)

// Deps wires the staff controllers. Registration is nil when Firebase is not configured.
type Deps struct {
	Catalog      catalog.DemoCatalog
	Registration *reg.Service
	DB           *gorm.DB
}

var deps Deps

func Setup(d Deps) {
	deps = d
}

// operationsSections are the metrics sections operations staff may read
var operationsSections = map[analytics.Section]bool{
	analytics.SectionOverview:    true,
	analytics.SectionRestaurants: true,
	analytics.SectionRiders:      true,
	analytics.SectionHeatmap:     true,
}

// GetDashboard returns the home widgets of the caller's staff sub-role. Admins get every widget.
func GetDashboard(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)
	ctx := c.Request.Context()
	isAdmin := claims.Role == models.RoleAdmin
	has := func(r models.StaffRole) bool {
		return isAdmin || (claims.StaffRole != nil && *claims.StaffRole == r)
	}

	resp := gin.H{"message": "Dashboard fetched successfully"}
	if claims.StaffRole != nil {
		if view, err := session.ViewFor(session.ModeStaff, claims.StaffRole); err == nil {
			resp["view"] = view
		}
	} else if isAdmin {
		resp["view"] = session.ViewAdminShell
	}

	if has(models.StaffRoleSupport) {
		tickets, err := deps.Catalog.ListTickets(ctx)
		if err != nil {
			logger.FromGin(c).Error("failed to load tickets", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		counts := map[models.TicketStatus]int{}
		for _, t := range tickets {
			counts[t.Status]++
		}
		resp["tickets"] = counts
	}

	if has(models.StaffRoleOnboarding) && deps.Registration != nil {
		pending := gin.H{}
		for _, kind := range []models.RegistrationKind{models.RegistrationRestaurant, models.RegistrationRider} {
			reqs, err := deps.Registration.List(ctx, kind, models.RequestStatusPending)
			if err != nil {
				// onboarding counts come from Firestore; a failure there leaves the rest of the dashboard usable
				logger.FromGin(c).Warn("failed to count pending requests", zap.String("kind", string(kind)), zap.Error(err))
				continue
			}
			pending[string(kind)] = len(reqs)
		}
		resp["pendingRequests"] = pending
	}

	if has(models.StaffRoleOperations) {
		resp["riders"] = analytics.RiderOperationsData()
		resp["heatmap"] = analytics.Heatmap()
	}

	c.JSON(http.StatusOK, resp)
}

// GetOperationsMetrics returns one of the operations metrics sections
func GetOperationsMetrics(c *gin.Context) {
	section, err := analytics.ParseSection(c.Param("section"))
	if err != nil || !operationsSections[section] {
		c.JSON(http.StatusNotFound, gin.H{"message": "Unknown operations section " + c.Param("section")})
		return
	}
	data, err := analytics.Dataset(section)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Metrics fetched successfully",
		"section": section,
		"data":    data,
	})
}
