package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuditLog(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		log, err := NewAuditLog(9, ActionApprove, KindAd.String(), "ad_123", map[string]interface{}{
			"note": "looks fine",
		})
		require.NoError(t, err)

		assert.Equal(t, uint(9), log.ModeratorID())
		assert.Equal(t, "approve", log.Action())
		assert.Equal(t, "AD", log.EntityType())
		assert.Equal(t, "ad_123", log.EntityID())
		assert.Equal(t, "looks fine", log.Metadata()["note"])
		assert.False(t, log.CreatedAt().IsZero())
	})

	t.Run("nil metadata becomes empty map", func(t *testing.T) {
		log, err := NewAuditLog(9, ActionReject, KindBot.String(), "bot_1", nil)
		require.NoError(t, err)
		assert.NotNil(t, log.Metadata())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewAuditLog(0, ActionApprove, "AD", "ad_1", nil)
		assert.ErrorIs(t, err, ErrAuditModeratorRequired)

		_, err = NewAuditLog(9, "", "AD", "ad_1", nil)
		assert.ErrorIs(t, err, ErrAuditActionRequired)

		_, err = NewAuditLog(9, ActionApprove, "", "ad_1", nil)
		assert.ErrorIs(t, err, ErrAuditEntityRequired)
	})
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindAd.IsValid())
	assert.True(t, KindBot.IsValid())
	assert.True(t, KindWithdrawal.IsValid())
	assert.False(t, Kind("USER").IsValid())
}

func TestSafetyResultShouldAutoReject(t *testing.T) {
	cases := []struct {
		name   string
		result *SafetyResult
		want   bool
	}{
		{"nil result", nil, false},
		{"not flagged", &SafetyResult{Flagged: false, Confidence: 0.99}, false},
		{"flagged below threshold", &SafetyResult{Flagged: true, Confidence: 0.9}, false},
		{"flagged above threshold", &SafetyResult{Flagged: true, Confidence: 0.95, Flags: []string{"gambling"}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.result.ShouldAutoReject())
		})
	}
}
