package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// ContextKeyBot holds the *bot.Bot resolved by BotKeyMiddleware.
const ContextKeyBot = "bot"

// BotKeyMiddleware authenticates Ad Server calls with the X-Api-Key header.
// The key's signature only proves who issued it; the bot row is re-fetched on
// every call so rotation, revocation and suspension cut access immediately.
type BotKeyMiddleware struct {
	keys    *auth.BotKeyService
	botRepo bot.Repository
	logger  logger.Interface
}

func NewBotKeyMiddleware(keys *auth.BotKeyService, botRepo bot.Repository, logger logger.Interface) *BotKeyMiddleware {
	return &BotKeyMiddleware{
		keys:    keys,
		botRepo: botRepo,
		logger:  logger,
	}
}

func (m *BotKeyMiddleware) RequireBotKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(constants.HeaderAPIKey)
		if key == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing api key")
			c.Abort()
			return
		}

		claims, err := m.keys.Verify(key)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid api key")
			c.Abort()
			return
		}

		// A rotated key keeps a valid signature but its hash no longer
		// matches any row.
		b, err := m.botRepo.GetByAPIKeyHash(c.Request.Context(), m.keys.HashKey(key))
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "api key is no longer valid")
			c.Abort()
			return
		}
		if b.SID() != claims.BotSID {
			m.logger.Warnw("api key hash matched a different bot", "claims_bot", claims.BotSID, "stored_bot", b.SID())
			utils.ErrorResponse(c, http.StatusUnauthorized, "api key is no longer valid")
			c.Abort()
			return
		}
		if b.IsAPIKeyRevoked() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "api key has been revoked")
			c.Abort()
			return
		}
		if !b.Status().IsActive() {
			utils.ErrorResponse(c, http.StatusForbidden, "bot is not active")
			c.Abort()
			return
		}

		c.Set(ContextKeyBot, b)
		c.Set(constants.ContextKeyBotID, b.ID())
		c.Next()
	}
}

// BotFromContext returns the bot resolved by RequireBotKey.
func BotFromContext(c *gin.Context) (*bot.Bot, bool) {
	v, ok := c.Get(ContextKeyBot)
	if !ok {
		return nil, false
	}
	b, ok := v.(*bot.Bot)
	return b, ok
}
