// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	helper "iescms_backend/internals/helpers"
	"iescms_backend/internals/helpers/principal"
)

// Path publik yang di-skip auth (relatif ke root app)
var skipPaths = map[string]struct{}{
	"/health": {},
}

// AuthMiddleware verifikasi JWT (HS256) lalu simpan Principal di UserContext.
// Token dari header Authorization atau cookie (user-token / access_token).
func AuthMiddleware(secret string, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("auth")

	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		}); err != nil {
			log.Debug("token parse failed", zap.Error(err))
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Debug("token expired", zap.Error(err))
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		p := principal.Principal{UserID: userID, Token: tokenString}
		storeBasicClaims(&p, claims)
		c.SetUserContext(principal.With(c.UserContext(), p))
		c.Locals("user_id", userID.String())
		return c.Next()
	}
}
