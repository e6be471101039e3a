package catalog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"foodtook_backoffice/pkg/models"
)

func ptrF(v float64) *float64 { return &v }
func ptrB(v bool) *bool { return &v }
func ptrS(v string) *string { return &v }

func staffRole(r models.StaffRole) *models.StaffRole { return &r }

// SeedDemo fills an empty demo store with the back-office mock data. It does nothing
// when users already exist.
func SeedDemo(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	users := []models.User{
		{ID: "u-001", Name: "María González", Email: "maria.gonzalez@gmail.com", Phone: "+52 55 1234 5678", Role: models.RoleUser, Status: models.UserStatusActive, LTV: ptrF(4820), Frequency: ptrF(6.2), EngagementScore: ptrF(87), RiskFlag: ptrB(false), CreatedAt: base},
		{ID: "u-002", Name: "Carlos Ramírez", Email: "carlos.ramirez@hotmail.com", Phone: "+52 55 2345 6789", Role: models.RoleUser, Status: models.UserStatusActive, LTV: ptrF(1930), Frequency: ptrF(2.4), EngagementScore: ptrF(54), RiskFlag: ptrB(false), CreatedAt: base.Add(3 * day)},
		{ID: "u-003", Name: "Lucía Fernández", Email: "lucia.fernandez@gmail.com", Role: models.RoleUser, Status: models.UserStatusBanned, LTV: ptrF(310), Frequency: ptrF(0.8), EngagementScore: ptrF(12), RiskFlag: ptrB(true), CreatedAt: base.Add(9 * day)},
		{ID: "u-004", Name: "Jorge Herrera", Email: "jorge.herrera@yahoo.com", Role: models.RoleUser, Status: models.UserStatusInactive, LTV: ptrF(760), Frequency: ptrF(1.1), EngagementScore: ptrF(31), RiskFlag: ptrB(false), CreatedAt: base.Add(20 * day)},
		{ID: "r-101", Name: "Pedro Sánchez", Email: "pedro.rider@foodtook.mx", Phone: "+52 55 3456 7890", Role: models.RoleRider, Status: models.UserStatusActive, CreatedAt: base.Add(5 * day)},
		{ID: "r-102", Name: "Ana Torres", Email: "ana.rider@foodtook.mx", Role: models.RoleRider, Status: models.UserStatusPendingApproval, CreatedAt: base.Add(30 * day)},
		{ID: "s-201", Name: "Sofía Castillo", Email: "sofia.soporte@foodtook.mx", Role: models.RoleStaff, Status: models.UserStatusActive, StaffRole: staffRole(models.StaffRoleSupport), CreatedAt: base.Add(day)},
		{ID: "s-202", Name: "Diego Morales", Email: "diego.onboarding@foodtook.mx", Role: models.RoleStaff, Status: models.UserStatusActive, StaffRole: staffRole(models.StaffRoleOnboarding), CreatedAt: base.Add(day)},
		{ID: "s-203", Name: "Valeria Ruiz", Email: "valeria.ops@foodtook.mx", Role: models.RoleStaff, Status: models.UserStatusActive, StaffRole: staffRole(models.StaffRoleOperations), CreatedAt: base.Add(2 * day)},
		{ID: "a-001", Name: "Admin FoodTook", Email: "admin@foodtook.mx", Role: models.RoleAdmin, Status: models.UserStatusActive, CreatedAt: base},
	}

	rests := []models.Restaurant{
		{User: models.User{ID: "rest-01", Name: "Tacos El Güero", Email: "contacto@tacoselguero.mx", Role: models.RoleRestaurant, Status: models.UserStatusActive, CreatedAt: base.Add(2 * day)},
			Cuisine: "Mexicana", Address: "Av. Insurgentes Sur 1234, CDMX", GMV: 382000, MarginContribution: 18.2, ConversionRate: 24.5, OrdersFromStories: 312, AdsSpend: 12500, DependencyIndex: 0.42},
		{User: models.User{ID: "rest-02", Name: "Sushi Nori", Email: "hola@sushinori.mx", Role: models.RoleRestaurant, Status: models.UserStatusActive, CreatedAt: base.Add(4 * day)},
			Cuisine: "Japonesa", Address: "Calle Durango 201, Roma Norte", GMV: 295000, MarginContribution: 21.7, ConversionRate: 19.8, OrdersFromStories: 188, AdsSpend: 18400, DependencyIndex: 0.31},
		{User: models.User{ID: "rest-03", Name: "La Pizzería de Don Beto", Email: "donbeto@pizzeria.mx", Role: models.RoleRestaurant, Status: models.UserStatusActive, CreatedAt: base.Add(6 * day)},
			Cuisine: "Italiana", Address: "Av. Coyoacán 88, Del Valle", GMV: 241000, MarginContribution: 15.4, ConversionRate: 22.1, OrdersFromStories: 205, AdsSpend: 9800, DependencyIndex: 0.55},
		{User: models.User{ID: "rest-04", Name: "Green Bowl", Email: "team@greenbowl.mx", Role: models.RoleRestaurant, Status: models.UserStatusPendingApproval, CreatedAt: base.Add(40 * day)},
			Cuisine: "Saludable", Address: "Masaryk 410, Polanco", GMV: 0, MarginContribution: 0, ConversionRate: 0},
	}

	dishes := []models.Dish{
		{ID: "d-001", RestaurantID: "rest-01", Name: "Tacos al pastor (orden)", Description: "Cinco tacos con piña", Price: 95, Category: "Tacos", Status: models.DishStatusActive, CreatedAt: base.Add(3 * day)},
		{ID: "d-002", RestaurantID: "rest-01", Name: "Gringa de pastor", Price: 78, Category: "Tacos", Status: models.DishStatusActive, CreatedAt: base.Add(3 * day)},
		{ID: "d-003", RestaurantID: "rest-02", Name: "Roll California", Price: 145, Category: "Sushi", Status: models.DishStatusActive, CreatedAt: base.Add(5 * day)},
		{ID: "d-004", RestaurantID: "rest-02", Name: "Ramen tonkotsu", Description: "Caldo de cerdo 12 horas", Price: 189, Category: "Ramen", Status: models.DishStatusPending, CreatedAt: base.Add(41 * day)},
		{ID: "d-005", RestaurantID: "rest-03", Name: "Pizza margarita", Price: 169, Category: "Pizza", Status: models.DishStatusInactive, CreatedAt: base.Add(7 * day)},
		{ID: "d-006", RestaurantID: "rest-03", Name: "Pizza cuatro quesos", Price: 199, Category: "Pizza", Status: models.DishStatusPending, CreatedAt: base.Add(42 * day)},
		{ID: "d-007", RestaurantID: "rest-01", Name: "Quesadilla de chicharrón", Price: 65, Category: "Antojitos", Status: models.DishStatusRejected, RejectReason: ptrS("Foto del platillo ilegible"), CreatedAt: base.Add(35 * day)},
	}

	tickets := []models.SupportTicket{
		{ID: "t-001", Subject: "Mi pedido llegó frío", CustomerName: "María González", CustomerEmail: "maria.gonzalez@gmail.com", Priority: models.PriorityMedium, Status: models.TicketStatusOpen, CreatedAt: base.Add(50 * day),
			Messages: []models.TicketMessage{{Author: "María González", FromUser: true, Body: "El pedido tardó 70 minutos y llegó frío.", SentAt: base.Add(50 * day)}}},
		{ID: "t-002", Subject: "Cobro duplicado", CustomerName: "Carlos Ramírez", CustomerEmail: "carlos.ramirez@hotmail.com", Priority: models.PriorityHigh, Status: models.TicketStatusInProgress, CreatedAt: base.Add(51 * day),
			Messages: []models.TicketMessage{
				{Author: "Carlos Ramírez", FromUser: true, Body: "Me cobraron dos veces el mismo pedido.", SentAt: base.Add(51 * day)},
				{Author: "Sofía Castillo", FromUser: false, Body: "Estamos revisando el cargo con el banco.", SentAt: base.Add(51*day + time.Hour)},
			}},
		{ID: "t-003", Subject: "No puedo cambiar mi dirección", CustomerName: "Jorge Herrera", CustomerEmail: "jorge.herrera@yahoo.com", Priority: models.PriorityLow, Status: models.TicketStatusClosed, CreatedAt: base.Add(45 * day),
			Messages: []models.TicketMessage{{Author: "Jorge Herrera", FromUser: true, Body: "La app no guarda mi nueva dirección.", SentAt: base.Add(45 * day)}}},
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if err := tx.Create(&rests).Error; err != nil {
			return fmt.Errorf("seed restaurants: %w", err)
		}
		if err := tx.Create(&dishes).Error; err != nil {
			return fmt.Errorf("seed dishes: %w", err)
		}
		if err := tx.Create(&tickets).Error; err != nil {
			return fmt.Errorf("seed tickets: %w", err)
		}
		return nil
	})
	return err == nil, err
}
