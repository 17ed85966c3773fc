package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"staffhub_backend/internals/configs"
	userModel "staffhub_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

/* ==========================
   ACCESS TOKEN
========================== */

// IssueAccessToken signs an HS256 access token carrying the session claims
// the SPA keeps in its local store (user id, role, display name).
func IssueAccessToken(u *userModel.UserModel) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	now := nowUTC()
	claims := jwt.MapClaims{
		"sub":       u.ID.String(),
		"user_id":   u.ID.String(),
		"user_name": u.FullName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	return signed, nil
}

// ParseClaims verifies signature only; expiry is validated separately so the
// middleware can apply leeway.
func ParseClaims(tokenString string) (jwt.MapClaims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateTokenExpiry checks the exp claim with the given leeway.
func ValidateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Token has no expiry")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Token expiry is malformed")
	}
	if nowUTC().After(time.Unix(int64(expFloat), 0).Add(leeway)) {
		return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
	}
	return nil
}

// TokenExpiry returns the exp claim as time; zero time when absent.
func TokenExpiry(claims jwt.MapClaims) time.Time {
	if expFloat, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(expFloat), 0)
	}
	return time.Time{}
}

// ExtractUserID pulls user_id (fallback sub) from verified claims.
func ExtractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"user_id", "sub"} {
		if raw, ok := claims[key].(string); ok && strings.TrimSpace(raw) != "" {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID claim is not a UUID")
			}
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Token carries no user ID")
}
