package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appPayment "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/payment"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// WebhookHandler terminates the payment provider callbacks. Each provider
// speaks its own protocol, so responses here bypass the usual envelope.
type WebhookHandler struct {
	payme     *appPayment.PaymeAdapter
	click     *appPayment.ClickAdapter
	cryptopay *appPayment.CryptopayAdapter
	logger    logger.Interface
}

func NewWebhookHandler(
	payme *appPayment.PaymeAdapter,
	click *appPayment.ClickAdapter,
	cryptopay *appPayment.CryptopayAdapter,
	logger logger.Interface,
) *WebhookHandler {
	return &WebhookHandler{
		payme:     payme,
		click:     click,
		cryptopay: cryptopay,
		logger:    logger,
	}
}

// Payme is the JSON-RPC endpoint. Protocol errors travel inside the 200
// response body, never as HTTP statuses.
func (h *WebhookHandler) Payme(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	resp := h.payme.Handle(c.Request.Context(), c.GetHeader("Authorization"), body)
	c.JSON(http.StatusOK, resp)
}

// ClickPrepare and ClickComplete answer the two-phase callback. The gateway
// retries on non-200, so even rejections go back as 200 with an error code.
func (h *WebhookHandler) ClickPrepare(c *gin.Context) {
	var req appPayment.ClickRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("malformed click prepare callback", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed callback"})
		return
	}
	c.JSON(http.StatusOK, h.click.Prepare(c.Request.Context(), req))
}

func (h *WebhookHandler) ClickComplete(c *gin.Context) {
	var req appPayment.ClickRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("malformed click complete callback", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed callback"})
		return
	}
	c.JSON(http.StatusOK, h.click.Complete(c.Request.Context(), req))
}

// Cryptopay applies one signed IPN. Unverifiable notifications get 401 so the
// sender does not learn whether the order exists.
func (h *WebhookHandler) Cryptopay(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	err = h.cryptopay.HandleIPN(c.Request.Context(), body, c.GetHeader("X-Signature"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	case errors.Is(err, appPayment.ErrIPNSignature):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
	case errors.Is(err, appPayment.ErrIPNBadPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
	case errors.Is(err, appPayment.ErrIPNUnmatched):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown order"})
	default:
		h.logger.Errorw("cryptopay IPN processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
	}
}
