package middleware

import (
	"fmt"
	"strings"

	"go-matching-backend/config"
	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/apperror"
	"go-matching-backend/pkg/auth"
	"go-matching-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token and stores the caller's id, email and role on the context.
// HS256 tokens are checked against JWT_SECRET, RS256 tokens against the JWKS provider.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			abortWithError(c, apperror.Unauthorized("Authorization header or auth_token cookie required"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			switch token.Method.(type) {
			case *jwt.SigningMethodHMAC:
				if cfg.JWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but JWT_SECRET is not configured")
				}
				return []byte(cfg.JWTSecret), nil
			case *jwt.SigningMethodRSA:
				if jwksProvider == nil {
					return nil, fmt.Errorf("RS256 token received but JWKS_URL is not configured")
				}
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			logger.Log.WarnContext(c.Request.Context(), "token validation failed",
				"request_id", c.GetString(string(domain.KeyRequestID)), "error", err)
			abortWithError(c, apperror.Unauthorized("Invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithError(c, apperror.Unauthorized("Invalid claims"))
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), roleFromClaims(claims))

		c.Next()
	}
}

// roleFromClaims reads the application role, preferring app_metadata over the top-level claim.
// Tokens without a known role are treated as candidates.
func roleFromClaims(claims jwt.MapClaims) string {
	var role string
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		role, _ = meta["role"].(string)
	}
	if role == "" {
		role, _ = claims["role"].(string)
	}

	switch role {
	case domain.RoleCandidate, domain.RoleEmployer, domain.RoleAgent, domain.RoleAdmin:
		return role
	default:
		return domain.RoleCandidate
	}
}
