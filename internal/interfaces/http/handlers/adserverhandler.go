package handlers

import (
	"net/http"
	"strconv"

	"github.com/biter777/countries"
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/adserver"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// AdServerHandler is the machine-facing delivery API used by registered bots,
// plus the public click redirect.
type AdServerHandler struct {
	adServer *adserver.Service
	clicks   *adserver.ClickTracker
	logger   logger.Interface
}

func NewAdServerHandler(adServer *adserver.Service, clicks *adserver.ClickTracker, logger logger.Interface) *AdServerHandler {
	return &AdServerHandler{
		adServer: adServer,
		clicks:   clicks,
		logger:   logger,
	}
}

// serveViewer is the end-user the bot wants an ad for, in the shape bots
// already hold from Telegram updates.
type serveViewer struct {
	ID           int64  `json:"id" binding:"required"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	Country      string `json:"country"`
	City         string `json:"city"`
}

type serveAdRequest struct {
	User serveViewer `json:"user" binding:"required"`

	// ChatID and Context are accepted for forward compatibility with bot
	// integrations; delivery keys on the viewer, not the chat.
	ChatID    int64  `json:"chat_id"`
	Context   string `json:"context"`
	RequestID string `json:"request_id"`
}

// SendPost asks for one ad for one viewer. 200 carries a ready-to-send
// Telegram message; 204 means nothing eligible right now.
func (h *AdServerHandler) SendPost(c *gin.Context) {
	b, ok := middleware.BotFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "bot authentication required")
		return
	}

	var req serveAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = c.GetString(constants.ContextKeyRequestID)
	}

	resp, err := h.adServer.ServeAd(c.Request.Context(), adserver.ServeCommand{
		Bot:            b,
		TelegramUserID: req.User.ID,
		Profile: delivery.TelegramProfile{
			FirstName:    req.User.FirstName,
			LastName:     req.User.LastName,
			Username:     req.User.Username,
			LanguageCode: req.User.LanguageCode,
			Country:      normalizeCountry(req.User.Country),
			City:         req.User.City,
		},
		RequestID: requestID,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	if resp == nil {
		utils.NoContentResponse(c)
		return
	}
	// The body is the Telegram payload alone, forwardable verbatim;
	// delivery identifiers travel as headers.
	c.Header("X-Ad-Id", resp.AdID)
	c.Header("X-Impression-Id", resp.ImpressionID)
	c.JSON(http.StatusOK, resp.Message)
}

// normalizeCountry maps free-form country input ("Uzbekistan", "UZB", "uz")
// to its ISO 3166-1 alpha-2 code. Unknown values pass through unchanged so
// the audience row still records what the bot reported.
func normalizeCountry(raw string) string {
	if raw == "" {
		return ""
	}
	if cc := countries.ByName(raw); cc != countries.Unknown {
		return cc.Alpha2()
	}
	return raw
}

// Click is the public redirect: log the click, send the viewer on.
func (h *AdServerHandler) Click(c *gin.Context) {
	adSID, err := utils.ParseSIDParam(c, "ad", id.PrefixAd, "ad")
	if err != nil {
		return
	}
	botSID, err := utils.ParseSIDParam(c, "bot", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	index, err := strconv.Atoi(c.Param("idx"))
	if err != nil || index < 0 {
		BadRequest(c, "invalid button index")
		return
	}
	viewerID, _ := strconv.ParseInt(c.Query("u"), 10, 64)

	target, err := h.clicks.Resolve(c.Request.Context(), adserver.ClickCommand{
		AdSID:          adSID,
		BotSID:         botSID,
		ButtonIndex:    index,
		TelegramUserID: viewerID,
		IPAddress:      c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "link not found")
		return
	}
	c.Redirect(http.StatusFound, target)
}
