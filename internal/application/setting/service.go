// Package setting manages hot-reloadable platform settings: typed key-value
// rows seeded from embedded defaults, cached in two layers (in-process then
// redis) and invalidated across instances over pub/sub.
package setting

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/cache"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/pubsub"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// localTTL bounds how long an instance may serve a value from process memory
// if it somehow misses the pub/sub invalidation.
const localTTL = 30 * time.Second

type defaultSpec struct {
	Type        string `yaml:"type"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

// defaultsByCategory is category -> key -> spec, straight from the embedded
// file.
type defaultsByCategory map[string]map[string]defaultSpec

func parseDefaults() (defaultsByCategory, error) {
	var out defaultsByCategory
	if err := yaml.Unmarshal(defaultsYAML, &out); err != nil {
		return nil, fmt.Errorf("failed to parse settings defaults: %w", err)
	}
	return out, nil
}

type localEntry struct {
	value    string
	loadedAt time.Time
}

// Service is the platform settings store and the setting.Provider the rest of
// the system reads through.
type Service struct {
	repo       setting.Repository
	redisCache *cache.SettingsCache
	events     pubsub.SettingEventPublisher
	auditRepo  moderation.AuditLogRepository
	logger     logger.Interface

	defaults defaultsByCategory
	// defaultByKey flattens defaults for value lookups.
	defaultByKey map[string]defaultSpec

	mu    sync.RWMutex
	local map[string]localEntry
}

func NewService(
	repo setting.Repository,
	redisCache *cache.SettingsCache,
	events pubsub.SettingEventPublisher,
	auditRepo moderation.AuditLogRepository,
	logger logger.Interface,
) (*Service, error) {
	defaults, err := parseDefaults()
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]defaultSpec)
	for _, keys := range defaults {
		for key, spec := range keys {
			byKey[key] = spec
		}
	}

	return &Service{
		repo:         repo,
		redisCache:   redisCache,
		events:       events,
		auditRepo:    auditRepo,
		logger:       logger.With("component", "setting_service"),
		defaults:     defaults,
		defaultByKey: byKey,
		local:        make(map[string]localEntry),
	}, nil
}

// SeedDefaults inserts any setting the database does not know yet. Existing
// rows are left alone, so admin edits survive restarts and upgrades only add
// new keys.
func (s *Service) SeedDefaults(ctx context.Context) error {
	seeded := 0
	for category, keys := range s.defaults {
		for key, spec := range keys {
			_, err := s.repo.GetByKey(ctx, key)
			if err == nil {
				continue
			}
			if !errors.Is(err, setting.ErrSettingNotFound) {
				return fmt.Errorf("failed to check setting %s: %w", key, err)
			}

			row, err := setting.NewPlatformSetting(category, key, setting.ValueType(spec.Type), spec.Description)
			if err != nil {
				return fmt.Errorf("invalid default for %s: %w", key, err)
			}
			// updatedBy 0 marks a system write.
			if err := row.SetRawValue(spec.Value, 0); err != nil {
				return fmt.Errorf("invalid default value for %s: %w", key, err)
			}
			if err := s.repo.Upsert(ctx, row); err != nil {
				return fmt.Errorf("failed to seed setting %s: %w", key, err)
			}
			seeded++
		}
	}
	if seeded > 0 {
		s.logger.Infow("seeded default platform settings", "count", seeded)
	}
	return nil
}

// Get returns one setting row.
func (s *Service) Get(ctx context.Context, key string) (*setting.PlatformSetting, error) {
	return s.repo.GetByKey(ctx, key)
}

// List returns all settings, optionally narrowed to a category.
func (s *Service) List(ctx context.Context, category string) ([]*setting.PlatformSetting, error) {
	if category != "" {
		return s.repo.GetByCategory(ctx, category)
	}
	return s.repo.GetAll(ctx)
}

// UpdateValue writes a new raw value for the key, audits who changed it and
// invalidates every cache layer.
func (s *Service) UpdateValue(ctx context.Context, key, raw string, updatedBy uint, updatedBySID string) (*setting.PlatformSetting, error) {
	row, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	oldValue := row.Value()
	if err := row.SetRawValue(raw, updatedBy); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}

	audit, err := moderation.NewAuditLog(updatedBy, moderation.ActionSettingsUpdate, "SETTING", key, map[string]interface{}{
		"old_value": oldValue,
		"new_value": row.Value(),
	})
	if err == nil {
		if auditErr := s.auditRepo.Create(ctx, audit); auditErr != nil {
			s.logger.Errorw("failed to write settings audit", "error", auditErr, "key", key)
		}
	}

	s.invalidate(ctx, key)
	if s.events != nil {
		if pubErr := s.events.PublishSettingChange(ctx, key, updatedBySID); pubErr != nil {
			s.logger.Warnw("failed to publish setting change", "error", pubErr, "key", key)
		}
	}

	s.logger.Infow("platform setting updated", "key", key, "updated_by", updatedBy)
	return row, nil
}

// HandleSettingChange drops the in-process copy when another instance writes.
// Wire it as the pub/sub subscriber handler.
func (s *Service) HandleSettingChange(_ context.Context, event pubsub.SettingChangeEvent) {
	s.mu.Lock()
	delete(s.local, event.Key)
	s.mu.Unlock()
	s.logger.Debugw("dropped local setting after remote change", "key", event.Key)
}

// --- setting.Provider ---

// PlatformFeePercentage is the platform's cut of ad spend, 0-100.
func (s *Service) PlatformFeePercentage(ctx context.Context) decimal.Decimal {
	return s.numberValue(ctx, setting.KeyPlatformFeePercentage)
}

// DefaultBaseCPM prices impressions not covered by any tier.
func (s *Service) DefaultBaseCPM(ctx context.Context) decimal.Decimal {
	return s.numberValue(ctx, setting.KeyDefaultBaseCPM)
}

// MinWithdrawUSD is the smallest allowed payout request.
func (s *Service) MinWithdrawUSD(ctx context.Context) decimal.Decimal {
	return s.numberValue(ctx, setting.KeyMinWithdrawUSD)
}

// MaxDailyWithdrawUSD caps one user's requests per UTC day.
func (s *Service) MaxDailyWithdrawUSD(ctx context.Context) decimal.Decimal {
	return s.numberValue(ctx, setting.KeyMaxDailyWithdrawUSD)
}

// WithdrawFeeUSD is the fixed fee charged per payout.
func (s *Service) WithdrawFeeUSD(ctx context.Context) decimal.Decimal {
	return s.numberValue(ctx, setting.KeyWithdrawFeeUSD)
}

// AdFrequencyMinutes is the default spacing for bots without an override.
func (s *Service) AdFrequencyMinutes(ctx context.Context) int {
	raw := s.rawValue(ctx, setting.KeyAdFrequencyMinutes)
	n, err := decimal.NewFromString(raw)
	if err != nil {
		return s.fallbackInt(setting.KeyAdFrequencyMinutes)
	}
	return int(n.IntPart())
}

// PendingTxTTLMinutes is how long a PENDING deposit may stay open.
func (s *Service) PendingTxTTLMinutes(ctx context.Context) int {
	raw := s.rawValue(ctx, setting.KeyPendingTxTTLMinutes)
	n, err := decimal.NewFromString(raw)
	if err != nil {
		return s.fallbackInt(setting.KeyPendingTxTTLMinutes)
	}
	return int(n.IntPart())
}

// IsMaintenanceMode pauses ad delivery platform-wide.
func (s *Service) IsMaintenanceMode(ctx context.Context) bool {
	return s.rawValue(ctx, setting.KeyMaintenanceMode) == "true"
}

func (s *Service) numberValue(ctx context.Context, key string) decimal.Decimal {
	raw := s.rawValue(ctx, key)
	n, err := decimal.NewFromString(raw)
	if err != nil {
		s.logger.Warnw("setting value is not a number, using default", "key", key, "value", raw)
		n, _ = decimal.NewFromString(s.defaultByKey[key].Value)
	}
	return n
}

func (s *Service) fallbackInt(key string) int {
	n, err := decimal.NewFromString(s.defaultByKey[key].Value)
	if err != nil {
		return 0
	}
	return int(n.IntPart())
}

// rawValue reads through local memory, then redis, then the database, and
// falls back to the embedded default so Provider getters never fail.
func (s *Service) rawValue(ctx context.Context, key string) string {
	s.mu.RLock()
	entry, ok := s.local[key]
	s.mu.RUnlock()
	if ok && biztime.NowUTC().Sub(entry.loadedAt) < localTTL {
		return entry.value
	}

	if s.redisCache != nil {
		if val, hit, err := s.redisCache.Get(ctx, key); err == nil && hit {
			s.remember(key, val)
			return val
		}
	}

	row, err := s.repo.GetByKey(ctx, key)
	if err != nil || !row.HasValue() {
		if err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
			s.logger.Errorw("failed to load setting, using default", "error", err, "key", key)
		}
		return s.defaultByKey[key].Value
	}

	val := row.Value()
	if s.redisCache != nil {
		if err := s.redisCache.Set(ctx, key, val); err != nil {
			s.logger.Warnw("failed to fill settings cache", "error", err, "key", key)
		}
	}
	s.remember(key, val)
	return val
}

func (s *Service) remember(key, value string) {
	s.mu.Lock()
	s.local[key] = localEntry{value: value, loadedAt: biztime.NowUTC()}
	s.mu.Unlock()
}

func (s *Service) invalidate(ctx context.Context, key string) {
	s.mu.Lock()
	delete(s.local, key)
	s.mu.Unlock()

	if s.redisCache != nil {
		if err := s.redisCache.Invalidate(ctx, key); err != nil {
			s.logger.Warnw("failed to invalidate settings cache", "error", err, "key", key)
		}
	}
}
