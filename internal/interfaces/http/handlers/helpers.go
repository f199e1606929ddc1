// Package handlers exposes the HTTP surface: JSON request/response shapes,
// parameter parsing and the mapping from service results onto status codes.
// Business rules live in the application layer, never here.
package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// CurrentUserID returns the authenticated account id set by the auth
// middleware. Zero means the request is anonymous.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func CurrentUserSID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserSID)
}

func IsStaff(c *gin.Context) bool {
	return authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)).IsStaff()
}

func IsAdmin(c *gin.Context) bool {
	return authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)).IsAdmin()
}

var notFoundErrors = []error{
	user.ErrUserNotFound,
	ad.ErrAdNotFound,
	bot.ErrBotNotFound,
	wallet.ErrWalletNotFound,
	wallet.ErrEntryNotFound,
	payment.ErrTransactionNotFound,
	withdrawal.ErrWithdrawalNotFound,
	pricing.ErrTierNotFound,
	setting.ErrSettingNotFound,
}

var conflictErrors = []error{
	user.ErrTelegramIDTaken,
	user.ErrAlreadyBanned,
	user.ErrNotBanned,
	bot.ErrTelegramBotIDTaken,
	bot.ErrAPIKeyAlreadyRevoked,
	pricing.ErrDuplicateImpressions,
	payment.ErrTransactionCompleted,
}

// RespondError translates domain errors into HTTP statuses. Sentinels the
// table doesn't know fall through as 400s carrying the error text; anything
// unexpected stays a generic 500 so internals never leak.
func RespondError(c *gin.Context, err error) {
	for _, sentinel := range notFoundErrors {
		if stderrors.Is(err, sentinel) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
	}
	for _, sentinel := range conflictErrors {
		if stderrors.Is(err, sentinel) {
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
	}
	if stderrors.Is(err, wallet.ErrInsufficientFunds) {
		utils.ErrorResponse(c, http.StatusPaymentRequired, err.Error())
		return
	}
	if isDomainRuleError(err) {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	utils.ErrorResponseWithError(c, err)
}

var ruleErrors = []error{
	ad.ErrNotEditable,
	ad.ErrBudgetExhausted,
	ad.ErrNotServable,
	bot.ErrBotNotActive,
	bot.ErrBotAlreadyPaused,
	bot.ErrBotNotPaused,
	bot.ErrFrequencyTooLow,
	wallet.ErrInvalidAmount,
	wallet.ErrInsufficientReserved,
	wallet.ErrInsufficientPending,
	pricing.ErrInvalidImpressions,
	pricing.ErrInvalidPrice,
	pricing.ErrInvalidCPMBid,
	pricing.ErrNoActiveTiers,
	withdrawal.ErrBelowMinimum,
	withdrawal.ErrDailyCapExceeded,
	withdrawal.ErrNotCancellable,
	withdrawal.ErrReasonRequired,
	payment.ErrTransactionFinal,
}

func isDomainRuleError(err error) bool {
	for _, sentinel := range ruleErrors {
		if stderrors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(c *gin.Context, msg string) {
	utils.ErrorResponse(c, http.StatusBadRequest, msg)
}

// BindingError reports a request body that failed binding, echoing per-field
// validation messages when the failure carries them.
func BindingError(c *gin.Context, err error) {
	BadRequest(c, utils.BindingErrorMessage(err))
}
