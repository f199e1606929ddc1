// Package pricing exposes ad cost quoting and pricing tier administration on
// top of the pure domain engine.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// QuoteInput is one cost estimation request. TierSID empty means pick the
// best tier for the impression count; promo fields empty means no discount.
type QuoteInput struct {
	TierSID     string
	Impressions int64
	Category    string

	AISegments      []string
	HasSpecificBots bool
	LanguageCount   int

	CPMBid     decimal.Decimal
	PromoKind  string
	PromoValue decimal.Decimal
}

// Quote pairs the engine's breakdown with the tier that priced it.
type Quote struct {
	Breakdown *pricing.CostBreakdown
	Tier      *pricing.Tier
}

// Service quotes ad costs and manages pricing tiers.
type Service struct {
	tierRepo  pricing.TierRepository
	settings  setting.Provider
	auditRepo moderation.AuditLogRepository
	logger    logger.Interface
}

func NewService(
	tierRepo pricing.TierRepository,
	settings setting.Provider,
	auditRepo moderation.AuditLogRepository,
	logger logger.Interface,
) *Service {
	return &Service{
		tierRepo:  tierRepo,
		settings:  settings,
		auditRepo: auditRepo,
		logger:    logger.With("component", "pricing_service"),
	}
}

// QuoteAdCost prices an order using current platform settings.
func (s *Service) QuoteAdCost(ctx context.Context, in QuoteInput) (*Quote, error) {
	tier, err := s.resolveTier(ctx, in.TierSID, in.Impressions)
	if err != nil {
		return nil, err
	}

	costInput := pricing.CostInput{
		Tier:               tier,
		Impressions:        in.Impressions,
		Category:           in.Category,
		AISegments:         in.AISegments,
		HasSpecificBots:    in.HasSpecificBots,
		LanguageCount:      in.LanguageCount,
		CPMBid:             in.CPMBid,
		PlatformFeePercent: s.settings.PlatformFeePercentage(ctx),
		FallbackBaseCPM:    s.settings.DefaultBaseCPM(ctx),
	}
	if in.PromoKind != "" {
		costInput.Promo = &pricing.Promo{
			Kind:  pricing.PromoKind(in.PromoKind),
			Value: in.PromoValue,
		}
	}

	breakdown, err := pricing.CalculateAdCost(costInput)
	if err != nil {
		return nil, err
	}
	return &Quote{Breakdown: breakdown, Tier: tier}, nil
}

// resolveTier loads the named tier, or the best active match when no tier is
// named. Nil means the engine prices from the fallback CPM.
func (s *Service) resolveTier(ctx context.Context, tierSID string, impressions int64) (*pricing.Tier, error) {
	if tierSID != "" {
		tier, err := s.tierRepo.GetBySID(ctx, tierSID)
		if err != nil {
			return nil, err
		}
		if !tier.IsActive() {
			return nil, fmt.Errorf("%w: tier is inactive", pricing.ErrTierNotFound)
		}
		return tier, nil
	}

	tiers, err := s.tierRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiers: %w", err)
	}
	return pricing.FindTier(tiers, impressions), nil
}

// ListTiers returns tiers for display, optionally including deactivated ones.
func (s *Service) ListTiers(ctx context.Context, includeInactive bool) ([]*pricing.Tier, error) {
	if includeInactive {
		return s.tierRepo.List(ctx)
	}
	return s.tierRepo.ListActive(ctx)
}

// GetTier returns one tier by SID.
func (s *Service) GetTier(ctx context.Context, sid string) (*pricing.Tier, error) {
	return s.tierRepo.GetBySID(ctx, sid)
}

// CreateTier adds a pricing tier. Impression counts are unique across tiers.
func (s *Service) CreateTier(ctx context.Context, adminID uint, name string, impressions int64, priceUSD decimal.Decimal, sortOrder int) (*pricing.Tier, error) {
	taken, err := s.tierRepo.ExistsByImpressions(ctx, impressions, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check tier impressions: %w", err)
	}
	if taken {
		return nil, pricing.ErrDuplicateImpressions
	}

	tier, err := pricing.NewTier(name, impressions, priceUSD, sortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.tierRepo.Create(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to create tier: %w", err)
	}

	s.audit(ctx, adminID, "PRICING_TIER", tier.SID(), map[string]interface{}{
		"name":        name,
		"impressions": impressions,
		"price_usd":   priceUSD.String(),
	})
	s.logger.Infow("pricing tier created", "tier_sid", tier.SID(), "name", name, "impressions", impressions)
	return tier, nil
}

// UpdateTier rewrites a tier's terms. Ads already priced keep their numbers.
func (s *Service) UpdateTier(ctx context.Context, adminID uint, sid, name string, impressions int64, priceUSD decimal.Decimal, sortOrder int) (*pricing.Tier, error) {
	tier, err := s.tierRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	taken, err := s.tierRepo.ExistsByImpressions(ctx, impressions, tier.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check tier impressions: %w", err)
	}
	if taken {
		return nil, pricing.ErrDuplicateImpressions
	}

	if err := tier.Update(name, impressions, priceUSD, sortOrder); err != nil {
		return nil, err
	}
	if err := s.tierRepo.Update(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}

	s.audit(ctx, adminID, "PRICING_TIER", tier.SID(), map[string]interface{}{
		"name":        name,
		"impressions": impressions,
		"price_usd":   priceUSD.String(),
	})
	return tier, nil
}

// SetTierActive activates or deactivates a tier.
func (s *Service) SetTierActive(ctx context.Context, adminID uint, sid string, active bool) (*pricing.Tier, error) {
	tier, err := s.tierRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if active {
		tier.Activate()
	} else {
		tier.Deactivate()
	}
	if err := s.tierRepo.Update(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}

	s.audit(ctx, adminID, "PRICING_TIER", tier.SID(), map[string]interface{}{"active": active})
	return tier, nil
}

// DeleteTier removes a tier. Ads priced from it keep their recorded terms.
func (s *Service) DeleteTier(ctx context.Context, adminID uint, sid string) error {
	tier, err := s.tierRepo.GetBySID(ctx, sid)
	if err != nil {
		return err
	}
	if err := s.tierRepo.Delete(ctx, tier.ID()); err != nil {
		return fmt.Errorf("failed to delete tier: %w", err)
	}

	s.audit(ctx, adminID, "PRICING_TIER", tier.SID(), map[string]interface{}{"deleted": true})
	s.logger.Infow("pricing tier deleted", "tier_sid", sid)
	return nil
}

func (s *Service) audit(ctx context.Context, adminID uint, entityType, entityID string, metadata map[string]interface{}) {
	log, err := moderation.NewAuditLog(adminID, moderation.ActionSettingsUpdate, entityType, entityID, metadata)
	if err != nil {
		return
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Errorw("failed to write tier audit", "error", err, "entity_id", entityID)
	}
}
