package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"foodtook_backoffice/pkg/config"
)

var (
	firebaseApp *firebase.App
	authClient  *auth.Client
	usersDB     *firestore.Client
	adminDB     *firestore.Client
)

func clientOptions() []option.ClientOption {
	if config.AppConfig.GoogleApplicationCredentials == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(config.AppConfig.GoogleApplicationCredentials)}
}

// InitFirebase initializes the Firebase app, the Auth client and both Firestore databases
func InitFirebase(ctx context.Context) error {
	cfg := config.AppConfig
	if cfg.FirebaseProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID not set")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	ac, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase Auth client: %w", err)
	}

	users, err := firestore.NewClientWithDatabase(ctx, cfg.FirebaseProjectID, cfg.UsersDatabaseID, clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to open Firestore database %s: %w", cfg.UsersDatabaseID, err)
	}

	admin, err := firestore.NewClientWithDatabase(ctx, cfg.FirebaseProjectID, cfg.AdminDatabaseID, clientOptions()...)
	if err != nil {
		users.Close()
		return fmt.Errorf("failed to open Firestore database %s: %w", cfg.AdminDatabaseID, err)
	}

	firebaseApp = app
	authClient = ac
	usersDB = users
	adminDB = admin
	return nil
}

// AuthClient returns the Firebase Auth client, nil before InitFirebase
func AuthClient() *auth.Client {
	return authClient
}

// UsersDB is the general user database (users, restaurant_requests, rider_requests)
func UsersDB() *firestore.Client {
	return usersDB
}

// AdminDB is the admin/staff directory database (staff, mandar)
func AdminDB() *firestore.Client {
	return adminDB
}

// CloseFirebase closes both Firestore clients
func CloseFirebase() {
	if usersDB != nil {
		usersDB.Close()
	}
	if adminDB != nil {
		adminDB.Close()
	}
}
