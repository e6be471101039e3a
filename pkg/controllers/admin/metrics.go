package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/analytics"
)

// GetMetrics returns the data of one dashboard section
func GetMetrics(c *gin.Context) {
	section, err := analytics.ParseSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error(), "sections": analytics.Sections})
		return
	}
	data, err := analytics.Dataset(section)
	if errors.Is(err, analytics.ErrUnknownSection) {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Metrics fetched successfully",
		"section": section,
		"label":   sectionLabels[section],
		"data":    data,
	})
}
