package main

import (
	"context"
	"log"

	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/database"
	"foodtook_backoffice/pkg/models"
)

func main() {
	config.LoadConfig()

	if err := database.InitDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.CloseDatabase()

	if err := database.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	seeded, err := catalog.SeedDemo(context.Background(), database.DB)
	if err != nil {
		log.Fatal("Failed to seed demo data:", err)
	}
	if !seeded {
		var count int64
		database.DB.Model(&models.User{}).Count(&count)
		log.Printf("Demo store already holds %d users, nothing to do", count)
		return
	}

	log.Println("✅ Demo users, restaurants, dishes and tickets created")
}
