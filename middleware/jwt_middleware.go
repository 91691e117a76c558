package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"hire-backend/config"
	"hire-backend/lib/identity"
	authutils "hire-backend/lib/utils/auth-utils"
	"hire-backend/models"
	apimodels "hire-backend/models/api"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtConfig(config.Conf.Auth.JWTSecret, nil))
}

// AuthorizationOptional parses the bearer token when one is sent and lets
// anonymous requests through. A present but invalid token is still rejected.
func AuthorizationOptional() fiber.Handler {
	return jwtware.New(jwtConfig(config.Conf.Auth.JWTSecret, func(ctx *fiber.Ctx) bool {
		return strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization)) == "" && ctx.Query(tokenQueryParam) == ""
	}))
}

// browsers cannot set headers on a websocket handshake
const tokenQueryParam = "token"

// jwtConfig sets AuthScheme explicitly: jwtware only defaults it for the default TokenLookup.
func jwtConfig(secret string, filter func(*fiber.Ctx) bool) jwtware.Config {
	return jwtware.Config{
		Filter:      filter,
		TokenLookup: "header:" + fiber.HeaderAuthorization + ",query:" + tokenQueryParam,
		AuthScheme:  "Bearer",
		Claims:      jwt.MapClaims{},
		SigningKey:  jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("invalid or missing token"))
		},
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.ClaimString(authutils.GetClaims(ctx), "sub")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(authutils.ClaimString(authutils.GetClaims(ctx), "role"))
}

// GetIdentity returns the anonymous identity for requests without a token.
func GetIdentity(ctx *fiber.Ctx) identity.Identity {
	claims := authutils.GetClaims(ctx)
	return identity.Identity{
		UserID: authutils.ClaimString(claims, "sub"),
		Role:   models.UserRole(authutils.ClaimString(claims, "role")),
		Email:  authutils.ClaimString(claims, "email"),
	}
}
