package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTargeting_NormalizesInput(t *testing.T) {
	targeting, err := NewTargeting(
		[]string{" Crypto_Traders ", "DEVELOPERS"},
		[]uint{4, 7},
		[]int64{111},
		[]string{"EN-us", "ru"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"crypto_traders", "developers"}, targeting.AISegments())
	assert.Equal(t, []string{"en", "ru"}, targeting.Languages())
}

func TestNewTargeting_Rejections(t *testing.T) {
	_, err := NewTargeting([]string{"  "}, nil, nil, nil)
	assert.Error(t, err, "blank segment slug")

	_, err = NewTargeting(nil, nil, nil, []string{"-"})
	assert.Error(t, err, "language with no primary subtag")

	tooMany := make([]int64, MaxExcludedUsers+1)
	_, err = NewTargeting(nil, nil, tooMany, nil)
	assert.Error(t, err, "exclusion list over the cap")
}

func TestTargeting_MatchesBot(t *testing.T) {
	var open Targeting
	assert.True(t, open.MatchesBot(42), "empty bot list matches every bot")

	narrow, err := NewTargeting(nil, []uint{4, 7}, nil, nil)
	require.NoError(t, err)
	assert.True(t, narrow.MatchesBot(4))
	assert.False(t, narrow.MatchesBot(5))
}

func TestTargeting_IsUserExcluded(t *testing.T) {
	targeting, err := NewTargeting(nil, nil, []int64{100, 200}, nil)
	require.NoError(t, err)

	assert.True(t, targeting.IsUserExcluded(100))
	assert.False(t, targeting.IsUserExcluded(300))
}

func TestTargeting_MatchesLanguage(t *testing.T) {
	tests := []struct {
		name   string
		filter []string
		code   string
		want   bool
	}{
		{"empty filter matches anything", nil, "zh", true},
		{"exact match", []string{"en"}, "en", true},
		{"regional variant matches primary", []string{"en"}, "en-US", true},
		{"case insensitive", []string{"ru"}, "RU", true},
		{"no match", []string{"en", "ru"}, "uz", false},
		{"blank code fails a set filter", []string{"en"}, "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targeting, err := NewTargeting(nil, nil, nil, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, targeting.MatchesLanguage(tt.code))
		})
	}
}

func TestTargeting_IsEmpty(t *testing.T) {
	var zero Targeting
	assert.True(t, zero.IsEmpty())

	withSegments, err := NewTargeting([]string{"investors"}, nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, withSegments.IsEmpty())
}
