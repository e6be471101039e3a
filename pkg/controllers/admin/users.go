package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/utils"
)

// ListUsers returns users filtered by search, role and status, paginated
func ListUsers(c *gin.Context) {
	var (
		f    catalog.UserFilter
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

	users, err := deps.Catalog.ListUsers(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.SuccessResponse(c, catalog.Paginate(catalog.FilterUsers(users, f), page), "Users fetched successfully")
}

// AddUser creates a demo user
func AddUser(c *gin.Context) {
	var req catalog.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and role are required"})
		return
	}
	u, err := deps.Catalog.AddUser(c.Request.Context(), req)
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.CreatedResponse(c, u, "User created successfully")
}

// ToggleBan bans an active user or reactivates a banned one
func ToggleBan(c *gin.Context) {
	res, err := deps.Moderation.ToggleBan(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "User status updated",
		"user":      res.User,
		"persisted": res.Persisted,
	})
}

// ListRestaurants returns restaurants filtered by search and status, paginated
func ListRestaurants(c *gin.Context) {
	var (
		f    catalog.RestaurantFilter
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

	rests, err := deps.Catalog.ListRestaurants(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.SuccessResponse(c, catalog.Paginate(catalog.FilterRestaurants(rests, f), page), "Restaurants fetched successfully")
}
