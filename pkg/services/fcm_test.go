package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnboardingMessage(t *testing.T) {
	msg := onboardingMessage("tok-1", "Solicitud aprobada", "Bienvenido", map[string]string{"requestId": "req-1"})

	assert.Equal(t, "tok-1", msg.Token)
	assert.Equal(t, "Solicitud aprobada", msg.Notification.Title)
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, onboardingChannel, msg.Android.Notification.ChannelID)
	assert.Equal(t, "req-1", msg.Data["requestId"])
}

func TestServiceStatusBeforeInit(t *testing.T) {
	st := GetServiceStatus()
	assert.Equal(t, false, st["initialized"])
	assert.Equal(t, "not initialized", st["status"])
}
