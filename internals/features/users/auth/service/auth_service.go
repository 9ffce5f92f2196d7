package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ghostclass_backend/internals/configs"
	authModel "ghostclass_backend/internals/features/users/auth/model"
	authRepo "ghostclass_backend/internals/features/users/auth/repository"
	userModel "ghostclass_backend/internals/features/users/user/model"
	helper "ghostclass_backend/internals/helpers"
)

/* ==========================
   Const & helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour

	refreshCookieName = "refresh_token"
	csrfCookieName    = "csrf_token"
	csrfHeaderName    = "X-CSRF-Token"
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

// computeRefreshHash: HMAC-SHA256 of the refresh JWT; only the hash touches
// the database.
func computeRefreshHash(token, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

/* ==========================
   Token issuing
========================== */

func issueAccessToken(user *userModel.UserModel) (string, time.Time, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	exp := nowUTC().Add(accessTTLDefault)
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"user_name": user.UserName,
		"exp":       exp.Unix(),
		"iat":       nowUTC().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	return token, exp, nil
}

func issueRefreshToken(db *gorm.DB, c *fiber.Ctx, user *userModel.UserModel) (string, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}
	exp := nowUTC().Add(refreshTTLDefault)
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": exp.Unix(),
		"jti": uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	ua := c.Get(fiber.HeaderUserAgent)
	ip := c.IP()
	row := authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(token, secret),
		ExpiresAt: exp,
		UserAgent: &ua,
		IP:        &ip,
	}
	if err := db.Create(&row).Error; err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to persist refresh token")
	}
	return token, nil
}

func newCSRFToken() string {
	raw := make([]byte, 32)
	_, _ = rand.Read(raw)
	return hex.EncodeToString(raw)
}

func setAuthCookies(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/api/auth",
		MaxAge:   int(refreshTTLDefault.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	// readable by the frontend, echoed back via header (double submit)
	c.Cookie(&fiber.Cookie{
		Name:     csrfCookieName,
		Value:    newCSRFToken(),
		Path:     "/",
		MaxAge:   int(refreshTTLDefault.Seconds()),
		HTTPOnly: false,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{Name: refreshCookieName, Value: "", Path: "/api/auth", MaxAge: -1, HTTPOnly: true, Secure: true})
	c.Cookie(&fiber.Cookie{Name: csrfCookieName, Value: "", Path: "/", MaxAge: -1, Secure: true})
}

// enforceCSRF: cookie-based endpoints require the CSRF cookie to be echoed in
// the request header.
func enforceCSRF(c *fiber.Ctx) error {
	cookie := strings.TrimSpace(c.Cookies(csrfCookieName))
	header := strings.TrimSpace(c.Get(csrfHeaderName))
	if cookie == "" || header == "" || subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
		return errors.New("CSRF token mismatch")
	}
	return nil
}

/* ==========================
   REGISTER
========================== */

// POST /api/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		UserName string `json:"user_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if len(strings.TrimSpace(input.UserName)) < 3 || !strings.Contains(input.Email, "@") || len(input.Password) < 8 {
		return helper.JsonValidationError(c, map[string][]string{
			"user_name": {"at least 3 characters"},
			"email":     {"must be a valid email"},
			"password":  {"at least 8 characters"},
		})
	}

	taken, err := authRepo.EmailTaken(db, input.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(input.UserName),
		Email:    input.Email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	log.Printf("[SUCCESS] user registered: %s", user.Email)
	return helper.JsonCreated(c, "Account created", fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
	})
}

/* ==========================
   LOGIN
========================== */

// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	user, err := authRepo.FindUserByEmail(db, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
	}

	accessToken, expiresAt, err := issueAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshToken, err := issueRefreshToken(db, c, user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	setAuthCookies(c, refreshToken)

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": accessToken,
		"expires_at":   expiresAt,
		"user": fiber.Map{
			"id":        user.ID,
			"user_name": user.UserName,
			"email":     user.Email,
		},
	})
}

/* ==========================
   LOGOUT
========================== */

// POST /api/auth/logout
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	// 1) blacklist the current access token until its natural expiry
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		tokenString := strings.TrimSpace(after)
		expiredAt := nowUTC().Add(accessTTLDefault)
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if secret, err := getJWTSecret(); err == nil {
			if _, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}); err == nil {
				if exp, ok := claims["exp"].(float64); ok {
					expiredAt = time.Unix(int64(exp), 0).UTC()
				}
			}
		}
		entry := authModel.TokenBlacklist{Token: tokenString, ExpiredAt: expiredAt}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("[WARN] failed to blacklist token: %v", err)
		}
	}

	// 2) revoke the refresh token row, if a cookie is present
	if refreshCookie := strings.TrimSpace(c.Cookies(refreshCookieName)); refreshCookie != "" {
		if secret, err := getRefreshSecret(); err == nil {
			now := nowUTC()
			db.Model(&authModel.RefreshToken{}).
				Where("token_hash = ?", computeRefreshHash(refreshCookie, secret)).
				Update("revoked_at", &now)
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logged out", nil)
}
