package catalog

import (
	"context"
	"errors"

	"foodtook_backoffice/pkg/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidState = errors.New("invalid state for this action")
	ErrInvalidInput = errors.New("invalid input")
)

// NewUser is the admin "add user" form
type NewUser struct {
	Name      string            `json:"name" binding:"required"`
	Email     string            `json:"email" binding:"required,email"`
	Phone     string            `json:"phone"`
	Password  string            `json:"password"`
	Role      models.Role       `json:"role" binding:"required"`
	StaffRole *models.StaffRole `json:"staffRole"`
}

// NewDish is the admin "add dish" form
type NewDish struct {
	RestaurantID string  `json:"restaurantId" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Category     string  `json:"category"`
}

// DemoCatalog holds the back-office lists. Its mutations are demo-mode: they change the
// demo store only and are never propagated to the managed databases.
type DemoCatalog interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	ListDishes(ctx context.Context) ([]models.Dish, error)
	ListTickets(ctx context.Context) ([]models.SupportTicket, error)
	GetTicket(ctx context.Context, id string) (*models.SupportTicket, error)

	AddUser(ctx context.Context, in NewUser) (*models.User, error)
	AddDish(ctx context.Context, in NewDish) (*models.Dish, error)
	ApproveDish(ctx context.Context, id string) (*models.Dish, error)
	RejectDish(ctx context.Context, id, reason string) (*models.Dish, error)
	AddTicketMessage(ctx context.Context, ticketID, author, body string, fromUser bool) (*models.TicketMessage, error)
	SetTicketStatus(ctx context.Context, ticketID string, st models.TicketStatus) (*models.SupportTicket, error)
	ToggleBan(ctx context.Context, userID string) (*models.User, error)
}

// AccountStatusWriter persists a user status to the managed users database. Writes are
// one-directional; nothing is read back.
type AccountStatusWriter interface {
	SetStatus(ctx context.Context, uid string, st models.UserStatus) error
}

// NextBanStatus is the status after a ban toggle: banned users become active, everyone else banned
func NextBanStatus(st models.UserStatus) models.UserStatus {
	if st == models.UserStatusBanned {
		return models.UserStatusActive
	}
	return models.UserStatusBanned
}

// PendingDishes is the dish-request list
func PendingDishes(dishes []models.Dish) []models.Dish {
	return FilterDishes(dishes, DishFilter{Status: models.DishStatusPending})
}
