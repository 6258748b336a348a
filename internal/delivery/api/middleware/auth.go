package middleware

import (
	"strings"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys used to pass authenticated identity to handlers.
const (
	contextKeyUserID = "userID"
	contextKeyRole   = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

// Authenticate validates the Bearer access token, reloads the referenced user
// and loads the current identity into the echo context for handlers to use.
// The role always comes from the database, not the token, so deleted accounts
// lose access immediately and role changes take effect before token expiry.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return response.Unauthorized(c, "INVALID_TOKEN", "User no longer exists")
			}

			return response.InternalServerError(c, "INTERNAL_ERROR", "Failed to load user")
		}

		c.Set(contextKeyUserID, user.ID)
		c.Set(contextKeyRole, user.Role.String())

		return next(c)
	}
}

// RequireRole checks that the authenticated user holds the given role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := GetRole(c)
			if !ok || role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Insufficient permissions")
			}

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's ID from the echo context.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}

// GetRole returns the authenticated user's role from the echo context.
func GetRole(c echo.Context) (entity.Role, bool) {
	roleStr, ok := c.Get(contextKeyRole).(string)
	if !ok {
		return "", false
	}

	return entity.Role(roleStr), true
}

// IsAdmin reports whether the authenticated user holds the admin role.
func IsAdmin(c echo.Context) bool {
	role, ok := GetRole(c)

	return ok && role == entity.RoleAdmin
}
