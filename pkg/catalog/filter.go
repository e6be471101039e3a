package catalog

import (
	"strings"

	"foodtook_backoffice/pkg/models"
)

// UserFilter selects users by free text (name or email) and facets
type UserFilter struct {
	Search string            `form:"search"`
	Role   models.Role       `form:"role"`
	Status models.UserStatus `form:"status"`
}

type RestaurantFilter struct {
	Search string            `form:"search"`
	Status models.UserStatus `form:"status"`
}

type DishFilter struct {
	Search       string            `form:"search"`
	Status       models.DishStatus `form:"status"`
	RestaurantID string            `form:"restaurantId"`
}

type TicketFilter struct {
	Search   string              `form:"search"`
	Status   models.TicketStatus `form:"status"`
	Priority models.Priority     `form:"priority"`
}

// containsFold reports whether sub is within s, ignoring case. An empty sub matches everything.
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func FilterUsers(users []models.User, f UserFilter) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if f.Search != "" && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		out = append(out, u)
	}
	return out
}

func FilterRestaurants(rests []models.Restaurant, f RestaurantFilter) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(rests))
	for _, r := range rests {
		if f.Search != "" && !containsFold(r.Name, f.Search) && !containsFold(r.Email, f.Search) {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out
}

func FilterDishes(dishes []models.Dish, f DishFilter) []models.Dish {
	out := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if f.Search != "" && !containsFold(d.Name, f.Search) {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.RestaurantID != "" && d.RestaurantID != f.RestaurantID {
			continue
		}
		out = append(out, d)
	}
	return out
}

func FilterTickets(tickets []models.SupportTicket, f TicketFilter) []models.SupportTicket {
	out := make([]models.SupportTicket, 0, len(tickets))
	for _, t := range tickets {
		if f.Search != "" && !containsFold(t.Subject, f.Search) &&
			!containsFold(t.CustomerName, f.Search) && !containsFold(t.CustomerEmail, f.Search) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Page is a 1-based page request
type Page struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageResult is one page of a filtered list with the total before paging
type PageResult[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items to the requested page. Out-of-range pages are empty, never an error.
func Paginate[T any](items []T, p Page) PageResult[T] {
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	if p.Page <= 0 {
		p.Page = 1
	}

	total := len(items)
	res := PageResult[T]{
		Items:      []T{},
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: (total + p.PageSize - 1) / p.PageSize,
	}
	start := (p.Page - 1) * p.PageSize
	if start >= total {
		return res
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	res.Items = items[start:end]
	return res
}
