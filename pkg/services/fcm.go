package services

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/messaging"
)

// ErrStaleDeviceToken is returned when FCM no longer knows the applicant's device
var ErrStaleDeviceToken = errors.New("device token is no longer registered")

// onboardingChannel is the Android notification channel of the partner apps
const onboardingChannel = "onboarding"

var fcmClient *messaging.Client

// InitFCM initializes Firebase Cloud Messaging on the app created by InitFirebase
func InitFCM(ctx context.Context) error {
	if firebaseApp == nil {
		return fmt.Errorf("firebase app not initialized")
	}
	client, err := firebaseApp.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize FCM client: %w", err)
	}
	fcmClient = client
	return nil
}

// onboardingMessage builds a high-priority push for the restaurant and rider apps
func onboardingMessage(deviceToken, title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Token:        deviceToken,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{ChannelID: onboardingChannel},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
		},
	}
}

// SendPushNotification sends an onboarding notification to a single device and returns the message id
func SendPushNotification(ctx context.Context, deviceToken, title, body string, data map[string]string) (string, error) {
	if fcmClient == nil {
		return "", fmt.Errorf("FCM client not initialized")
	}
	id, err := fcmClient.Send(ctx, onboardingMessage(deviceToken, title, body, data))
	if messaging.IsRegistrationTokenNotRegistered(err) {
		return "", ErrStaleDeviceToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to send notification: %w", err)
	}
	return id, nil
}

// FCMNotifier notifies registration applicants through FCM
type FCMNotifier struct{}

func (FCMNotifier) Notify(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	_, err := SendPushNotification(ctx, deviceToken, title, body, data)
	return err
}

// GetServiceStatus reports whether FCM is ready, for the health check
func GetServiceStatus() map[string]interface{} {
	status := "not initialized"
	if fcmClient != nil {
		status = "connected"
	}
	return map[string]interface{}{
		"initialized": fcmClient != nil,
		"service":     "Firebase Cloud Messaging",
		"status":      status,
	}
}
