package setting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// ValueType defines the type of a setting value
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
)

// Well-known platform setting keys. Values are seeded from the embedded
// defaults on first boot and adjustable by admins at runtime.
const (
	CategoryPlatform = "platform"
	CategoryPricing  = "pricing"
	CategoryWithdraw = "withdraw"
	CategoryDelivery = "delivery"

	KeyPlatformFeePercentage = "platform_fee_percentage"
	KeyDefaultBaseCPM        = "default_base_cpm"
	KeyMinWithdrawUSD        = "min_withdraw_usd"
	KeyMaxDailyWithdrawUSD   = "max_daily_withdraw_usd"
	KeyWithdrawFeeUSD        = "withdraw_fee_usd"
	KeyAdFrequencyMinutes    = "ad_frequency_minutes"
	KeyPendingTxTTLMinutes   = "pending_tx_ttl_minutes"
	KeyMaintenanceMode       = "maintenance_mode"
	KeySupportContact        = "support_contact"
)

// PlatformSetting is one typed key-value row. Values are stored as strings
// and parsed according to valueType; writes are audited with the admin who
// made them.
type PlatformSetting struct {
	id          uint
	sid         string
	category    string
	key         string
	value       string
	valueType   ValueType
	description string
	updatedBy   uint
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPlatformSetting creates a setting without a value; seed or admin write
// fills it in.
func NewPlatformSetting(category, key string, valueType ValueType, description string) (*PlatformSetting, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if key == "" {
		return nil, ErrInvalidSettingKey
	}
	if !isValidValueType(valueType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}

	now := biztime.NowUTC()
	return &PlatformSetting{
		sid:         id.NewSettingSID(),
		category:    category,
		key:         key,
		valueType:   valueType,
		description: description,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Getters
func (s *PlatformSetting) ID() uint             { return s.id }
func (s *PlatformSetting) SID() string          { return s.sid }
func (s *PlatformSetting) Category() string     { return s.category }
func (s *PlatformSetting) Key() string          { return s.key }
func (s *PlatformSetting) Value() string        { return s.value }
func (s *PlatformSetting) ValueType() ValueType { return s.valueType }
func (s *PlatformSetting) Description() string  { return s.description }
func (s *PlatformSetting) UpdatedBy() uint      { return s.updatedBy }
func (s *PlatformSetting) Version() int         { return s.version }
func (s *PlatformSetting) CreatedAt() time.Time { return s.createdAt }
func (s *PlatformSetting) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the setting ID (only for persistence layer use)
func (s *PlatformSetting) SetID(id uint) {
	s.id = id
}

// HasValue checks if the setting has a non-empty value
func (s *PlatformSetting) HasValue() bool {
	return s.value != ""
}

// GetStringValue returns the value as a string
func (s *PlatformSetting) GetStringValue() string {
	return s.value
}

// GetNumberValue returns the value as a decimal
func (s *PlatformSetting) GetNumberValue() (decimal.Decimal, error) {
	if s.value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s.value)
}

// GetIntValue returns the value as an integer
func (s *PlatformSetting) GetIntValue() (int, error) {
	if s.value == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s.value)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

// GetBoolValue returns the value as a boolean
func (s *PlatformSetting) GetBoolValue() (bool, error) {
	if s.value == "" {
		return false, nil
	}
	return strconv.ParseBool(s.value)
}

// SetStringValue sets the value as a string
func (s *PlatformSetting) SetStringValue(value string, updatedBy uint) error {
	if s.valueType != ValueTypeString {
		return fmt.Errorf("%w: expected %s, got string", ErrInvalidValueType, s.valueType)
	}
	s.applyValue(value, updatedBy)
	return nil
}

// SetNumberValue sets the value as a decimal
func (s *PlatformSetting) SetNumberValue(value decimal.Decimal, updatedBy uint) error {
	if s.valueType != ValueTypeNumber {
		return fmt.Errorf("%w: expected %s, got number", ErrInvalidValueType, s.valueType)
	}
	s.applyValue(value.String(), updatedBy)
	return nil
}

// SetBoolValue sets the value as a boolean
func (s *PlatformSetting) SetBoolValue(value bool, updatedBy uint) error {
	if s.valueType != ValueTypeBoolean {
		return fmt.Errorf("%w: expected %s, got boolean", ErrInvalidValueType, s.valueType)
	}
	s.applyValue(strconv.FormatBool(value), updatedBy)
	return nil
}

// SetRawValue parses and stores a string according to the declared type.
// Useful for seeding and for admin writes arriving as text.
func (s *PlatformSetting) SetRawValue(raw string, updatedBy uint) error {
	switch s.valueType {
	case ValueTypeString:
		s.applyValue(raw, updatedBy)
	case ValueTypeNumber:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidValueType, raw)
		}
		s.applyValue(d.String(), updatedBy)
	case ValueTypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValueType, raw)
		}
		s.applyValue(strconv.FormatBool(b), updatedBy)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidValueType, s.valueType)
	}
	return nil
}

func (s *PlatformSetting) applyValue(value string, updatedBy uint) {
	s.value = value
	s.updatedBy = updatedBy
	s.version++
	s.updatedAt = biztime.NowUTC()
}

// isValidValueType checks if the value type is valid
func isValidValueType(vt ValueType) bool {
	switch vt {
	case ValueTypeString, ValueTypeNumber, ValueTypeBoolean:
		return true
	default:
		return false
	}
}

// SettingReconstructParams carries persisted state back into the aggregate.
type SettingReconstructParams struct {
	ID          uint
	SID         string
	Category    string
	Key         string
	Value       string
	ValueType   ValueType
	Description string
	UpdatedBy   uint
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReconstructPlatformSetting rebuilds a PlatformSetting from persistence.
func ReconstructPlatformSetting(params SettingReconstructParams) *PlatformSetting {
	return &PlatformSetting{
		id:          params.ID,
		sid:         params.SID,
		category:    params.Category,
		key:         params.Key,
		value:       params.Value,
		valueType:   params.ValueType,
		description: params.Description,
		updatedBy:   params.UpdatedBy,
		version:     params.Version,
		createdAt:   params.CreatedAt,
		updatedAt:   params.UpdatedAt,
	}
}
