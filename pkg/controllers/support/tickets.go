package support

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/middleware"
	"foodtook_backoffice/pkg/models"
)

// Deps wires the support ticket controllers shared by admins and support staff
type Deps struct {
	Catalog catalog.DemoCatalog
}

var deps Deps

func Setup(d Deps) {
	deps = d
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Ticket not found"})
	case errors.Is(err, catalog.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, catalog.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		logger.FromGin(c).Error("ticket request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// ListTickets returns tickets filtered by search, status and priority
func ListTickets(c *gin.Context) {
	var (
		f    catalog.TicketFilter
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

	tickets, err := deps.Catalog.ListTickets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	filtered := catalog.FilterTickets(tickets, f)

	counts := map[models.TicketStatus]int{}
	for _, t := range tickets {
		counts[t.Status]++
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Tickets fetched successfully",
		"tickets": catalog.Paginate(filtered, page),
		"counts":  counts,
	})
}

// GetTicket returns one ticket with its thread
func GetTicket(c *gin.Context) {
	t, err := deps.Catalog.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket fetched successfully", "ticket": t})
}

// ReplyTicket appends a staff message; replying to an open ticket moves it to in progress
func ReplyTicket(c *gin.Context) {
	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message body is required"})
		return
	}
	author := "Soporte FoodTook"
	if claims, ok := middleware.GetClaims(c); ok && claims.Email != "" {
		author = claims.Email
	}

	msg, err := deps.Catalog.AddTicketMessage(c.Request.Context(), c.Param("id"), author, req.Body, false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reply sent", "ticketMessage": msg})
}

// SetTicketStatus changes the status of a ticket
func SetTicketStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}
	st, err := models.ParseTicketStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	t, err := deps.Catalog.SetTicketStatus(c.Request.Context(), c.Param("id"), st)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket updated", "ticket": t})
}
