package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found sentinel", user.ErrUserNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", ad.ErrAdNotFound), http.StatusNotFound},
		{"conflict sentinel", user.ErrTelegramIDTaken, http.StatusConflict},
		{"insufficient funds", wallet.ErrInsufficientFunds, http.StatusPaymentRequired},
		{"domain rule", withdrawal.ErrBelowMinimum, http.StatusUnprocessableEntity},
		{"unknown error stays 500", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext()
			RespondError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := testContext()
	assert.Equal(t, uint(0), CurrentUserID(c), "anonymous request has no user id")

	c.Set(constants.ContextKeyUserID, uint(42))
	assert.Equal(t, uint(42), CurrentUserID(c))
}

func TestIsStaff(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"ADVERTISER", false},
		{"BOT_OWNER", false},
		{"MODERATOR", true},
		{"ADMIN", true},
		{"SUPER_ADMIN", true},
		{"", false},
	}
	for _, tt := range tests {
		c, _ := testContext()
		c.Set(constants.ContextKeyUserRole, tt.role)
		assert.Equal(t, tt.want, IsStaff(c), "role %q", tt.role)
	}
}
