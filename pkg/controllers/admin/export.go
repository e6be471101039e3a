package admin

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/analytics"
	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/export"
	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/utils"
)

// errBadQuery marks query parameters that do not bind to the dataset filter
var errBadQuery = errors.New("invalid export filter")

// listExport loads one list dataset, applying the same query filters as its list view
func listExport(c *gin.Context, dataset string) (interface{}, bool, error) {
	ctx := c.Request.Context()
	switch dataset {
	case "users":
		var f catalog.UserFilter
		if err := c.ShouldBindQuery(&f); err != nil {
			return nil, true, fmt.Errorf("%w: %v", errBadQuery, err)
		}
		users, err := deps.Catalog.ListUsers(ctx)
		return catalog.FilterUsers(users, f), true, err
	case "restaurants":
		var f catalog.RestaurantFilter
		if err := c.ShouldBindQuery(&f); err != nil {
			return nil, true, fmt.Errorf("%w: %v", errBadQuery, err)
		}
		rests, err := deps.Catalog.ListRestaurants(ctx)
		return catalog.FilterRestaurants(rests, f), true, err
	case "dishes":
		var f catalog.DishFilter
		if err := c.ShouldBindQuery(&f); err != nil {
			return nil, true, fmt.Errorf("%w: %v", errBadQuery, err)
		}
		dishes, err := deps.Catalog.ListDishes(ctx)
		return catalog.FilterDishes(dishes, f), true, err
	case "dish-requests":
		dishes, err := deps.Catalog.ListDishes(ctx)
		return catalog.PendingDishes(dishes), true, err
	case "tickets":
		var f catalog.TicketFilter
		if err := c.ShouldBindQuery(&f); err != nil {
			return nil, true, fmt.Errorf("%w: %v", errBadQuery, err)
		}
		tickets, err := deps.Catalog.ListTickets(ctx)
		return catalog.FilterTickets(tickets, f), true, err
	}
	return nil, false, nil
}

// ExportDataset downloads a list view or a metrics section as CSV
func ExportDataset(c *gin.Context) {
	dataset := c.Param("dataset")

	var (
		columns []string
		records []export.Record
	)
	data, isList, err := listExport(c, dataset)
	switch {
	case errors.Is(err, errBadQuery):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid filter"})
		return
	case err != nil:
		catalogError(c, err)
		return
	case isList:
		columns, records, err = export.FromStructs(data)
	default:
		section, perr := analytics.ParseSection(dataset)
		if perr != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Unknown dataset " + dataset})
			return
		}
		columns, records, err = analytics.Export(section)
	}
	if err != nil {
		logger.FromGin(c).Error("export failed", zap.String("dataset", dataset), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, columns, records); err != nil {
		logger.FromGin(c).Error("csv encoding failed", zap.String("dataset", dataset), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	filename := dataset + "-" + time.Now().Format("2006-01-02") + ".csv"
	utils.AttachmentHeaders(c, filename, "text/csv; charset=utf-8")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
