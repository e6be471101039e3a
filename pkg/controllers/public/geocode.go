package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/services"
)

// Geocoder resolves addresses for the wizard's autocomplete
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]services.Place, error)
	Reverse(ctx context.Context, lat, lon float64) (*services.Place, error)
}

type Deps struct {
	Geocoder Geocoder
}

var deps Deps

func Setup(d Deps) {
	deps = d
}

const maxSuggestions = 10

// Geocode suggests places for a free-form address
func Geocode(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "q must have at least 3 characters"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		limit = 5
	}
	if limit > maxSuggestions {
		limit = maxSuggestions
	}

	places, err := deps.Geocoder.Search(c.Request.Context(), q, limit)
	if err != nil {
		logger.FromGin(c).Warn("geocoding failed", zap.String("q", q), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"message": "Geocoding service unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// ReverseGeocode names the place at lat/lon
func ReverseGeocode(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "lat and lon must be valid coordinates"})
		return
	}

	place, err := deps.Geocoder.Reverse(c.Request.Context(), lat, lon)
	if errors.Is(err, services.ErrNoGeocodeResult) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No address found at these coordinates"})
		return
	}
	if err != nil {
		logger.FromGin(c).Warn("reverse geocoding failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"message": "Geocoding service unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": place})
}
