package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/analytics"
	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/middleware"
)

// Deps wires the admin controllers
type Deps struct {
	Catalog    catalog.DemoCatalog
	Moderation *catalog.Moderation
}

var deps Deps

func Setup(d Deps) {
	deps = d
}

// NavItem is one sidebar entry of the admin shell
type NavItem struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Path     string    `json:"path"`
	Children []NavItem `json:"children,omitempty"`
}

func sidebar() []NavItem {
	metrics := make([]NavItem, 0, len(analytics.Sections))
	for _, s := range analytics.Sections {
		metrics = append(metrics, NavItem{Key: string(s), Label: sectionLabels[s], Path: "/api/admin/metrics/" + string(s)})
	}
	return []NavItem{
		{Key: "metrics", Label: "Métricas", Path: "/api/admin/metrics/overview", Children: metrics},
		{Key: "users", Label: "Usuarios", Path: "/api/admin/users"},
		{Key: "restaurants", Label: "Restaurantes", Path: "/api/admin/restaurants"},
		{Key: "dishes", Label: "Platillos", Path: "/api/admin/dishes"},
		{Key: "dish-requests", Label: "Solicitudes de platillos", Path: "/api/admin/dish-requests"},
		{Key: "restaurant-requests", Label: "Solicitudes de restaurantes", Path: "/api/admin/requests/restaurant"},
		{Key: "rider-requests", Label: "Solicitudes de repartidores", Path: "/api/admin/requests/rider"},
		{Key: "tickets", Label: "Soporte", Path: "/api/admin/tickets"},
	}
}

var sectionLabels = map[analytics.Section]string{
	analytics.SectionOverview:    "Resumen",
	analytics.SectionGMV:         "GMV",
	analytics.SectionRetention:   "Retención",
	analytics.SectionFunnel:      "Embudo de conversión",
	analytics.SectionRestaurants: "Desempeño de restaurantes",
	analytics.SectionRiders:      "Operación de repartidores",
	analytics.SectionHeatmap:     "Mapa de calor",
}

// GetShell returns the navigation and header actions of the admin dashboard
func GetShell(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Admin shell fetched successfully",
		"user": gin.H{
			"uid":   claims.UID,
			"email": claims.Email,
			"role":  claims.Role,
		},
		"sidebar": sidebar(),
		"header": gin.H{
			"search":   "/api/admin/users?search=",
			"export":   "/api/admin/export/",
			"userMenu": []gin.H{{"label": "Cerrar sesión", "action": "/api/auth/signout"}},
		},
	})
}

// catalogError maps demo catalog errors onto HTTP statuses
func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, catalog.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, catalog.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		logger.FromGin(c).Error("catalog request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
