package staff

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/middleware"
	"foodtook_backoffice/pkg/models"
)

const totpIssuer = "FoodTook Back Office"

// loadSecurity returns the caller's 2FA record, creating an empty one on first use
func loadSecurity(c *gin.Context) (*models.StaffSecurity, string, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found."})
		return nil, "", false
	}

	sec := models.StaffSecurity{UID: claims.UID}
	err := deps.DB.WithContext(c.Request.Context()).
		Where(models.StaffSecurity{UID: claims.UID}).
		FirstOrCreate(&sec).Error
	if err != nil {
		logger.FromGin(c).Error("failed to load staff security", zap.String("uid", claims.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return nil, "", false
	}
	return &sec, claims.Email, true
}

// Get2FAStatus returns 2FA status
func Get2FAStatus(c *gin.Context) {
	sec, _, ok := loadSecurity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "2FA status fetched successfully",
		"twoFactorEnabled":   sec.TwoFactorEnabled,
		"twoFactorEnabledAt": sec.TwoFactorEnabledAt,
	})
}

// Generate2FASetup generates a TOTP secret and its QR code. The secret is stored but not
// enabled until Enable2FA verifies a code.
func Generate2FASetup(c *gin.Context) {
	sec, email, ok := loadSecurity(c)
	if !ok {
		return
	}
	if sec.TwoFactorEnabled {
		c.JSON(http.StatusConflict, gin.H{"message": "2FA is already enabled"})
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: email,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate 2FA key"})
		return
	}

	secret := key.Secret()
	if err := deps.DB.Model(sec).Update("twoFactorSecret", secret).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save 2FA secret"})
		return
	}

	img, err := key.Image(200, 200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate QR code"})
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate QR code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "2FA setup generated",
		"secret":     secret,
		"otpAuthUrl": key.URL(),
		"qrCode":     "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}

// Enable2FA enables 2FA after token verification
func Enable2FA(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token is required"})
		return
	}

	sec, _, ok := loadSecurity(c)
	if !ok {
		return
	}
	if sec.TwoFactorSecret == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "2FA setup not initiated"})
		return
	}
	if !totp.Validate(req.Token, *sec.TwoFactorSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid 2FA token"})
		return
	}

	now := time.Now()
	err := deps.DB.Model(sec).Updates(map[string]interface{}{
		"twoFactorEnabled":   true,
		"twoFactorEnabledAt": now,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to enable 2FA"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "2FA enabled successfully", "twoFactorEnabledAt": now})
}

// Disable2FA disables 2FA; a current code is required
func Disable2FA(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A current 2FA token is required to disable 2FA"})
		return
	}

	sec, _, ok := loadSecurity(c)
	if !ok {
		return
	}
	if !sec.TwoFactorEnabled || sec.TwoFactorSecret == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "2FA is not enabled"})
		return
	}
	if !totp.Validate(req.Token, *sec.TwoFactorSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid 2FA token"})
		return
	}

	err := deps.DB.Model(sec).Updates(map[string]interface{}{
		"twoFactorEnabled":   false,
		"twoFactorSecret":    nil,
		"twoFactorEnabledAt": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to disable 2FA"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled successfully"})
}
