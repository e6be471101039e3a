package main

import (
	"context"
	"fmt"
	"log"

	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/directory"
	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/services"
)

// Seeds the admin database with the demo staff and administrators so the demo accounts
// resolve to their roles at sign-in.
func main() {
	config.LoadConfig()

	ctx := context.Background()
	if err := services.InitFirebase(ctx); err != nil {
		log.Fatal("Failed to initialize Firebase:", err)
	}
	defer services.CloseFirebase()

	staff := []models.DirectoryEntry{
		{Email: "sofia.soporte@foodtook.mx", Name: "Sofía Castillo", Role: string(models.RoleStaff), StaffRole: string(models.StaffRoleSupport)},
		{Email: "diego.onboarding@foodtook.mx", Name: "Diego Morales", Role: string(models.RoleStaff), StaffRole: string(models.StaffRoleOnboarding)},
		{Email: "valeria.ops@foodtook.mx", Name: "Valeria Ruiz", Role: string(models.RoleStaff), StaffRole: string(models.StaffRoleOperations)},
	}
	admins := []models.DirectoryEntry{
		{Email: "admin@foodtook.mx", Name: "Admin FoodTook", Role: string(models.RoleAdmin)},
	}

	dir := directory.NewFirestore(services.UsersDB(), services.AdminDB())
	if err := dir.Seed(ctx, staff, admins); err != nil {
		log.Fatal("Failed to seed directory:", err)
	}

	// directory matches require a verified email
	verify := func(email string) string {
		ok, err := services.MarkEmailVerified(ctx, email)
		switch {
		case err != nil:
			log.Printf("⚠️  could not verify %s: %v", email, err)
			return "unverified"
		case !ok:
			return "no account yet"
		}
		return "verified"
	}
	for _, e := range staff {
		fmt.Printf("✅ staff %s (%s, %s)\n", e.Email, e.StaffRole, verify(e.Email))
	}
	for _, e := range admins {
		fmt.Printf("✅ admin %s (%s)\n", e.Email, verify(e.Email))
	}
	fmt.Printf("\n🎉 Directory seeded in database %s\n", config.AppConfig.AdminDatabaseID)
}
