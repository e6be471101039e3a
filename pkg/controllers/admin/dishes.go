package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/utils"
)

func ListDishes(c *gin.Context) {
	var (
		f    catalog.DishFilter
		page catalog.Page
	)
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid filter"})
		return
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page and pageSize must be numbers"})
		return
	}

	dishes, err := deps.Catalog.ListDishes(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.SuccessResponse(c, catalog.Paginate(catalog.FilterDishes(dishes, f), page), "Dishes fetched successfully")
}

// ListDishRequests returns the dishes waiting for review
func ListDishRequests(c *gin.Context) {
	var page catalog.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page and pageSize must be numbers"})
		return
	}

	dishes, err := deps.Catalog.ListDishes(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.SuccessResponse(c, catalog.Paginate(catalog.PendingDishes(dishes), page), "Dish requests fetched successfully")
}

func AddDish(c *gin.Context) {
	var req catalog.NewDish
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Restaurant, name and a positive price are required"})
		return
	}
	d, err := deps.Catalog.AddDish(c.Request.Context(), req)
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.CreatedResponse(c, d, "Dish created successfully")
}

func ApproveDish(c *gin.Context) {
	d, err := deps.Catalog.ApproveDish(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish approved", "dish": d})
}

func RejectDish(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A rejection reason is required"})
		return
	}
	d, err := deps.Catalog.RejectDish(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish rejected", "dish": d})
}
