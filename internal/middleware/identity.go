package middleware

import (
	"net/http"

	"ALH_backend/internal/model"
	"ALH_backend/internal/service"
	"ALH_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userContextKey = "current_user"

type Identity struct {
	userService service.UserServiceI
}

func NewIdentity(userService service.UserServiceI) *Identity {
	return &Identity{
		userService: userService,
	}
}

// RequireUser resolves the X-User-ID header to a registered user and stores
// it in the request context. Session management proper lives in the client;
// the backend only needs a stable identity per request.
func (m *Identity) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header is required"})
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			log.Info("invalid user id header", zap.String("value", header))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		user, err := m.userService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			log.Info("unknown user id", zap.String("user_id", header), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user placed in the context by RequireUser.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
