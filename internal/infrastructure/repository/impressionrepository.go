package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type ImpressionRepository struct {
	db     *gorm.DB
	mapper *mappers.ImpressionMapper
}

func NewImpressionRepository(gdb *gorm.DB) *ImpressionRepository {
	return &ImpressionRepository{db: gdb, mapper: mappers.NewImpressionMapper()}
}

func (r *ImpressionRepository) Create(ctx context.Context, imp *delivery.Impression) error {
	model, err := r.mapper.ToModel(imp)
	if err != nil {
		return fmt.Errorf("failed to map impression: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create impression: %w", err)
	}

	imp.SetID(model.ID)
	return nil
}

func (r *ImpressionRepository) GetBySID(ctx context.Context, sid string) (*delivery.Impression, error) {
	var model models.ImpressionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, delivery.ErrImpressionNotFound
		}
		return nil, fmt.Errorf("failed to get impression by sid: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ImpressionRepository) List(ctx context.Context, filter delivery.ImpressionListFilter) ([]*delivery.Impression, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ImpressionModel{})

	if filter.AdID != nil {
		query = query.Where("ad_id = ?", *filter.AdID)
	}
	if filter.BotID != nil {
		query = query.Where("bot_id = ?", *filter.BotID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count impressions: %w", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	var impressionModels []*models.ImpressionModel
	if err := query.
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&impressionModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list impressions: %w", err)
	}

	impressions, err := r.mapper.ToDomainList(impressionModels)
	if err != nil {
		return nil, 0, err
	}

	return impressions, total, nil
}

func (r *ImpressionRepository) StatsByAd(ctx context.Context, adID uint) (*delivery.ImpressionStats, error) {
	return r.stats(ctx, "ad_id = ?", adID)
}

func (r *ImpressionRepository) StatsByBot(ctx context.Context, botID uint) (*delivery.ImpressionStats, error) {
	return r.stats(ctx, "bot_id = ?", botID)
}

func (r *ImpressionRepository) stats(ctx context.Context, cond string, arg uint) (*delivery.ImpressionStats, error) {
	var row struct {
		Impressions   int64
		Revenue       decimal.NullDecimal
		PlatformFee   decimal.NullDecimal
		BotOwnerEarns decimal.NullDecimal
	}

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ImpressionModel{}).
		Where(cond, arg).
		Select("COUNT(*) as impressions, SUM(revenue) as revenue, SUM(platform_fee) as platform_fee, SUM(bot_owner_earns) as bot_owner_earns").
		Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate impressions: %w", err)
	}

	stats := &delivery.ImpressionStats{
		Impressions:   row.Impressions,
		Revenue:       decimal.Zero,
		PlatformFee:   decimal.Zero,
		BotOwnerEarns: decimal.Zero,
	}
	if row.Revenue.Valid {
		stats.Revenue = row.Revenue.Decimal
	}
	if row.PlatformFee.Valid {
		stats.PlatformFee = row.PlatformFee.Decimal
	}
	if row.BotOwnerEarns.Valid {
		stats.BotOwnerEarns = row.BotOwnerEarns.Decimal
	}
	return stats, nil
}

func (r *ImpressionRepository) SumRevenueByAd(ctx context.Context, adID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ImpressionModel{}).
		Where("ad_id = ?", adID).
		Select("SUM(revenue)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ad revenue: %w", err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

type ClickRepository struct {
	db     *gorm.DB
	mapper *mappers.ImpressionMapper
}

func NewClickRepository(gdb *gorm.DB) *ClickRepository {
	return &ClickRepository{db: gdb, mapper: mappers.NewImpressionMapper()}
}

func (r *ClickRepository) Create(ctx context.Context, click *delivery.ClickEvent) error {
	model, err := r.mapper.ClickToModel(click)
	if err != nil {
		return fmt.Errorf("failed to map click event: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create click event: %w", err)
	}

	click.SetID(model.ID)
	return nil
}

func (r *ClickRepository) List(ctx context.Context, filter delivery.ClickListFilter) ([]*delivery.ClickEvent, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ClickEventModel{})

	if filter.AdID != nil {
		query = query.Where("ad_id = ?", *filter.AdID)
	}
	if filter.BotID != nil {
		query = query.Where("bot_id = ?", *filter.BotID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	var clickModels []*models.ClickEventModel
	if err := query.
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&clickModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list clicks: %w", err)
	}

	clicks, err := r.mapper.ClicksToDomain(clickModels)
	if err != nil {
		return nil, 0, err
	}

	return clicks, total, nil
}

func (r *ClickRepository) CountByAd(ctx context.Context, adID uint) (int64, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ClickEventModel{}).
		Where("ad_id = ?", adID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clicks by ad: %w", err)
	}

	return count, nil
}

type BotUserRepository struct {
	db     *gorm.DB
	mapper *mappers.ImpressionMapper
}

func NewBotUserRepository(gdb *gorm.DB) *BotUserRepository {
	return &BotUserRepository{db: gdb, mapper: mappers.NewImpressionMapper()}
}

// Upsert inserts the audience row or refreshes the profile and last_seen_at
// when the (bot_id, telegram_user_id) pair already exists.
func (r *BotUserRepository) Upsert(ctx context.Context, botUser *delivery.BotUser) error {
	model, err := r.mapper.BotUserToModel(botUser)
	if err != nil {
		return fmt.Errorf("failed to map bot user: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "bot_id"}, {Name: "telegram_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "username", "language_code", "country", "city", "last_seen_at",
			}),
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert bot user: %w", err)
	}

	botUser.SetID(model.ID)
	return nil
}

func (r *BotUserRepository) Get(ctx context.Context, botID uint, telegramUserID int64) (*delivery.BotUser, error) {
	var model models.BotUserModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("bot_id = ? AND telegram_user_id = ?", botID, telegramUserID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, delivery.ErrBotUserNotFound
		}
		return nil, fmt.Errorf("failed to get bot user: %w", err)
	}

	return r.mapper.BotUserToDomain(&model)
}

func (r *BotUserRepository) CountByBot(ctx context.Context, botID uint) (int64, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BotUserModel{}).
		Where("bot_id = ?", botID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bot users: %w", err)
	}

	return count, nil
}

func (r *BotUserRepository) CountActiveByBot(ctx context.Context, botID uint, since time.Time) (int64, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BotUserModel{}).
		Where("bot_id = ? AND last_seen_at >= ?", botID, since).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active bot users: %w", err)
	}

	return count, nil
}
