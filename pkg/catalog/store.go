package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/utils"
)

// Store is the gorm-backed DemoCatalog
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ DemoCatalog = (*Store)(nil)

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order(`"createdAt" DESC`).Find(&users).Error
	return users, err
}

func (s *Store) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var rests []models.Restaurant
	err := s.db.WithContext(ctx).Order("gmv DESC").Find(&rests).Error
	return rests, err
}

func (s *Store) ListDishes(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	err := s.db.WithContext(ctx).Order(`"createdAt" DESC`).Find(&dishes).Error
	return dishes, err
}

func (s *Store) ListTickets(ctx context.Context) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order(`"sentAt" ASC, id ASC`) }).
		Order(`"updatedAt" DESC`).
		Find(&tickets).Error
	return tickets, err
}

func (s *Store) GetTicket(ctx context.Context, id string) (*models.SupportTicket, error) {
	var t models.SupportTicket
	err := s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order(`"sentAt" ASC, id ASC`) }).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "ticket", id)
	}
	return &t, nil
}

func (s *Store) AddUser(ctx context.Context, in NewUser) (*models.User, error) {
	role, err := models.ParseRole(string(in.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if role == models.RoleStaff {
		if in.StaffRole == nil {
			return nil, fmt.Errorf("%w: staff users need a staffRole", ErrInvalidInput)
		}
		if _, err := models.ParseStaffRole(string(*in.StaffRole)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	} else {
		in.StaffRole = nil
	}

	u := models.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		Role:      role,
		Status:    models.UserStatusActive,
		StaffRole: in.StaffRole,
	}
	if in.Password != "" {
		if err := utils.CheckPasswordStrength(in.Password); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		hashed, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = &hashed
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) AddDish(ctx context.Context, in NewDish) (*models.Dish, error) {
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", in.RestaurantID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("restaurant %s: %w", in.RestaurantID, ErrNotFound)
	}

	d := models.Dish{
		ID:           uuid.NewString(),
		RestaurantID: in.RestaurantID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		Status:       models.DishStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) ApproveDish(ctx context.Context, id string) (*models.Dish, error) {
	return s.reviewDish(ctx, id, models.DishStatusActive, nil)
}

func (s *Store) RejectDish(ctx context.Context, id, reason string) (*models.Dish, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrInvalidInput)
	}
	return s.reviewDish(ctx, id, models.DishStatusRejected, &reason)
}

// reviewDish moves a pending dish to its review outcome
func (s *Store) reviewDish(ctx context.Context, id string, to models.DishStatus, reason *string) (*models.Dish, error) {
	var d models.Dish
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, "id = ?", id).Error; err != nil {
			return notFound(err, "dish", id)
		}
		if d.Status != models.DishStatusPending {
			return fmt.Errorf("dish %s is %s: %w", id, d.Status, ErrInvalidState)
		}
		d.Status = to
		d.RejectReason = reason
		return tx.Model(&d).Updates(map[string]interface{}{
			"status":       d.Status,
			"rejectReason": d.RejectReason,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) AddTicketMessage(ctx context.Context, ticketID, author, body string, fromUser bool) (*models.TicketMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is empty", ErrInvalidInput)
	}
	msg := models.TicketMessage{TicketID: ticketID, Author: author, Body: body, FromUser: fromUser}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.SupportTicket
		if err := tx.First(&t, "id = ?", ticketID).Error; err != nil {
			return notFound(err, "ticket", ticketID)
		}
		if t.Status == models.TicketStatusClosed {
			return fmt.Errorf("ticket %s is closed: %w", ticketID, ErrInvalidState)
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{"updatedAt": msg.SentAt}
		if !fromUser && t.Status == models.TicketStatusOpen {
			updates["status"] = models.TicketStatusInProgress
		}
		return tx.Model(&t).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Store) SetTicketStatus(ctx context.Context, ticketID string, st models.TicketStatus) (*models.SupportTicket, error) {
	if _, err := models.ParseTicketStatus(string(st)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	res := s.db.WithContext(ctx).Model(&models.SupportTicket{}).Where("id = ?", ticketID).Update("status", st)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, ErrNotFound)
	}
	return s.GetTicket(ctx, ticketID)
}

// ToggleBan flips the status of a user or restaurant account
func (s *Store) ToggleBan(ctx context.Context, userID string) (*models.User, error) {
	var out models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		err := tx.First(&u, "id = ?", userID).Error
		if err == nil {
			u.Status = NextBanStatus(u.Status)
			out = u
			return tx.Model(&u).Update("status", u.Status).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var r models.Restaurant
		if err := tx.First(&r, "id = ?", userID).Error; err != nil {
			return notFound(err, "user", userID)
		}
		r.Status = NextBanStatus(r.Status)
		out = r.User
		return tx.Model(&r).Update("status", r.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
