// internals/features/users/auth/service/token_service.go
package service

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "ghostclass_backend/internals/features/users/auth/model"
	authRepo "ghostclass_backend/internals/features/users/auth/repository"
	helper "ghostclass_backend/internals/helpers"
)

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	// CSRF required for cookie-based endpoints
	if err := enforceCSRF(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	refreshCookie := strings.TrimSpace(c.Cookies(refreshCookieName))
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Parse & validate the refresh JWT
	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	// The hash must still exist and be live in the database
	hash := computeRefreshHash(refreshCookie, refreshSecret)
	var row authModel.RefreshToken
	if err := db.Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, time.Now().UTC()).
		First(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unknown refresh token")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	// ROTATE: drop the old row before issuing replacements
	if err := db.Delete(&row).Error; err != nil {
		log.Printf("[refresh] delete old token row failed: %v", err)
	}

	accessToken, expiresAt, err := issueAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	newRefresh, err := issueRefreshToken(db, c, user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	setAuthCookies(c, newRefresh)

	return helper.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token": accessToken,
		"expires_at":   expiresAt,
	})
}
