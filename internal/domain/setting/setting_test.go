package setting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlatformSetting(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := NewPlatformSetting(CategoryPlatform, KeyPlatformFeePercentage, ValueTypeNumber, "platform cut of ad spend")
		require.NoError(t, err)

		assert.Equal(t, CategoryPlatform, s.Category())
		assert.Equal(t, KeyPlatformFeePercentage, s.Key())
		assert.Equal(t, ValueTypeNumber, s.ValueType())
		assert.False(t, s.HasValue())
		assert.Equal(t, 1, s.Version())
		assert.NotEmpty(t, s.SID())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewPlatformSetting("", "key", ValueTypeString, "")
		assert.Error(t, err)

		_, err = NewPlatformSetting("cat", "", ValueTypeString, "")
		assert.ErrorIs(t, err, ErrInvalidSettingKey)

		_, err = NewPlatformSetting("cat", "key", ValueType("json"), "")
		assert.ErrorIs(t, err, ErrInvalidValueType)
	})
}

func TestSettingTypedAccess(t *testing.T) {
	t.Run("number round trip", func(t *testing.T) {
		s, err := NewPlatformSetting(CategoryWithdraw, KeyWithdrawFeeUSD, ValueTypeNumber, "")
		require.NoError(t, err)

		require.NoError(t, s.SetNumberValue(decimal.RequireFromString("3.00"), 9))

		got, err := s.GetNumberValue()
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, uint(9), s.UpdatedBy())
		assert.Equal(t, 2, s.Version())
	})

	t.Run("bool round trip", func(t *testing.T) {
		s, err := NewPlatformSetting(CategoryPlatform, KeyMaintenanceMode, ValueTypeBoolean, "")
		require.NoError(t, err)

		require.NoError(t, s.SetBoolValue(true, 9))

		got, err := s.GetBoolValue()
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("int from number value", func(t *testing.T) {
		s, err := NewPlatformSetting(CategoryDelivery, KeyAdFrequencyMinutes, ValueTypeNumber, "")
		require.NoError(t, err)
		require.NoError(t, s.SetNumberValue(decimal.NewFromInt(180), 9))

		got, err := s.GetIntValue()
		require.NoError(t, err)
		assert.Equal(t, 180, got)
	})

	t.Run("type mismatch refused", func(t *testing.T) {
		s, err := NewPlatformSetting(CategoryPlatform, KeySupportContact, ValueTypeString, "")
		require.NoError(t, err)

		assert.ErrorIs(t, s.SetNumberValue(decimal.NewFromInt(1), 9), ErrInvalidValueType)
		assert.ErrorIs(t, s.SetBoolValue(true, 9), ErrInvalidValueType)
		require.NoError(t, s.SetStringValue("support@akhmads.net", 9))
		assert.Equal(t, "support@akhmads.net", s.GetStringValue())
	})

	t.Run("empty value defaults", func(t *testing.T) {
		s, err := NewPlatformSetting(CategoryPricing, KeyDefaultBaseCPM, ValueTypeNumber, "")
		require.NoError(t, err)

		num, err := s.GetNumberValue()
		require.NoError(t, err)
		assert.True(t, num.IsZero())

		n, err := s.GetIntValue()
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestSettingSetRawValue(t *testing.T) {
	cases := []struct {
		name      string
		valueType ValueType
		raw       string
		wantErr   bool
		want      string
	}{
		{"number ok", ValueTypeNumber, "20", false, "20"},
		{"number decimal ok", ValueTypeNumber, "4.50", false, "4.5"},
		{"number garbage", ValueTypeNumber, "twenty", true, ""},
		{"boolean ok", ValueTypeBoolean, "true", false, "true"},
		{"boolean numeric", ValueTypeBoolean, "1", false, "true"},
		{"boolean garbage", ValueTypeBoolean, "yes", true, ""},
		{"string passthrough", ValueTypeString, "anything goes", false, "anything goes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewPlatformSetting("cat", "key", tc.valueType, "")
			require.NoError(t, err)

			err = s.SetRawValue(tc.raw, 9)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValueType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.Value())
		})
	}
}

func TestReconstructPlatformSetting(t *testing.T) {
	s := ReconstructPlatformSetting(SettingReconstructParams{
		ID:        3,
		SID:       "set_abc",
		Category:  CategoryWithdraw,
		Key:       KeyMinWithdrawUSD,
		Value:     "10",
		ValueType: ValueTypeNumber,
		UpdatedBy: 9,
		Version:   4,
	})

	assert.Equal(t, uint(3), s.ID())
	num, err := s.GetNumberValue()
	require.NoError(t, err)
	assert.True(t, num.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 4, s.Version())
}
