package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"hire-backend/config"
	"hire-backend/models"
)

// GetToken issues an access token. Tokens are normally minted by the identity
// service; this is used by tests and local tooling.
func GetToken(userID, email string, role models.UserRole) (tokenString string, err error) {
	return SignToken(config.Conf.Auth.JWTSecret, userID, email, role, time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec))
}

func SignToken(secret, userID, email string, role models.UserRole, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func ClaimString(claims jwt.MapClaims, key string) string {
	if value, exist := claims[key]; exist {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}
