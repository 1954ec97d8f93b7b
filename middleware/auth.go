package middleware

import (
	"context"
	"errors"
	"strings"

	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware.
const (
	UserKey   = "user"
	UserIDKey = "userID"
)

var errTokenMismatch = errors.New("token does not match the current session")

// Authenticator resolves bearer tokens to users. The Redis cache holds the hash
// of each user's current token under utils.AuthCachePrefix+userID; the user
// document's tokenHash is the source of truth on a miss.
type Authenticator struct {
	Users userRepo.UserRepository
	Cache *redis.Client
}

func NewAuthenticator(users userRepo.UserRepository, cache *redis.Client) *Authenticator {
	return &Authenticator{Users: users, Cache: cache}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// resolve validates token and loads its user.
func (a *Authenticator) resolve(ctx context.Context, logger *zap.Logger, token string) (*models.User, error) {
	userID, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return nil, err
	}
	hash := utils.HashToken(token)
	key := utils.AuthCachePrefix + userID

	cached := false
	if a.Cache != nil {
		stored, err := a.Cache.Get(ctx, key).Result()
		switch {
		case err == nil && stored != hash:
			return nil, errTokenMismatch
		case err == nil:
			cached = true
		case !errors.Is(err, redis.Nil):
			logger.Warn("Auth cache unavailable, falling back to database", zap.Error(err))
		}
	}

	user, err := a.Users.GetByIDWithProjection(ctx, userID, bson.M{"passwordHash": 0})
	if err != nil {
		return nil, err
	}
	if !cached {
		if user.TokenHash == "" || user.TokenHash != hash {
			return nil, errTokenMismatch
		}
	}

	if a.Cache != nil {
		if cached {
			err = a.Cache.Expire(ctx, key, utils.AuthCacheTTL).Err()
		} else {
			err = a.Cache.Set(ctx, key, hash, utils.AuthCacheTTL).Err()
		}
		if err != nil {
			logger.Warn("Failed to refresh auth cache", zap.String("userID", userID), zap.Error(err))
		}
	}
	user.TokenHash = ""
	user.PasswordHash = ""
	return user, nil
}

// Required rejects requests without a valid bearer token.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.RespondError(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}
		user, err := a.resolve(c.Request.Context(), loggerFrom(c), token)
		if err != nil {
			loggerFrom(c).Debug("Rejected bearer token", zap.Error(err))
			utils.RespondError(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// Optional identifies the caller when a valid token is present and otherwise
// lets the request through anonymously.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := a.resolve(c.Request.Context(), loggerFrom(c), token); err == nil {
				c.Set(UserKey, user)
				c.Set(UserIDKey, user.ID)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after Required.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.RespondError(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			utils.RespondError(c, utils.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
