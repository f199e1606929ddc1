package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

func TestAdDisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		sid  string
		want string
	}{
		{"plain text", "Buy our stuff", "ad_1", "Buy our stuff"},
		{"first line only", "Headline\nbody body body", "ad_1", "Headline"},
		{"empty falls back to sid", "", "ad_1", "ad_1"},
		{"long text shortened", strings.Repeat("я", 60), "ad_1", strings.Repeat("я", 48) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdDisplayTitle(tt.text, tt.sid))
		})
	}
}

func TestDispatcher_MissingChannelsAreNoOps(t *testing.T) {
	d := NewDispatcher(nil, nil, logger.NewLogger())

	// No channel configured: every send degrades to a no-op instead of
	// panicking or blocking.
	d.AdApproved(Recipient{TelegramID: 1, Locale: "en"}, "title")
	d.WithdrawRejected(Recipient{TelegramID: 1}, "$5.00", "reason")
	d.AdPendingReview("ad_1", "title", "usr_1")
	d.ReconciliationAlert("payme", "tx", "no match")
}
