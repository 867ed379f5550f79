package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
)

const (
	SessionCookie = "session_id"
	sessionKey    = "session"

	cookieMaxAge = 60 * 60 * 24
)

type sessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.SessionContext, error)
	Save(ctx context.Context, sess *domain.SessionContext) error
	Delete(ctx context.Context, sessionID string) error
}

// Session resolves the caller's session cookie into a SessionContext and puts
// it on the request. First-time visitors get a fresh id and an empty cart; a
// broken session store also falls back to an empty context so browsing never
// fails, it just forgets.
func Session(store sessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, cookieMaxAge, "/", "", false, true)
		}

		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, repository.ErrSessionNotFound) {
				logger.Error("Failed to load session",
					zap.String("session_id", sessionID),
					zap.Error(err))
			}
			sess = domain.NewSessionContext(sessionID)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession returns the SessionContext installed by Session.
func GetSession(c *gin.Context) *domain.SessionContext {
	if sess, ok := c.Get(sessionKey); ok {
		return sess.(*domain.SessionContext)
	}
	// Session middleware not installed; should not happen on wired routes.
	return domain.NewSessionContext(uuid.NewString())
}
