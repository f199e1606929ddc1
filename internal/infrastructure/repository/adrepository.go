package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type AdRepository struct {
	db     *gorm.DB
	mapper *mappers.AdMapper
}

func NewAdRepository(gdb *gorm.DB) *AdRepository {
	return &AdRepository{db: gdb, mapper: mappers.NewAdMapper()}
}

func (r *AdRepository) Create(ctx context.Context, a *ad.Ad) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		return fmt.Errorf("failed to map ad: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ad: %w", err)
	}

	a.SetID(model.ID)
	return nil
}

func (r *AdRepository) Update(ctx context.Context, a *ad.Ad) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		return fmt.Errorf("failed to map ad: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AdModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"content_type":      model.ContentType,
			"text":              model.Text,
			"html_content":      model.HTMLContent,
			"media_url":         model.MediaURL,
			"media_type":        model.MediaType,
			"buttons":           model.Buttons,
			"poll":              model.Poll,
			"category":          model.Category,
			"selected_tier_id":  model.SelectedTierID,
			"target_impressions": model.TargetImpressions,
			"base_cpm":          model.BaseCPM,
			"cpm_bid":           model.CPMBid,
			"final_cpm":         model.FinalCPM,
			"total_cost":        model.TotalCost,
			"platform_fee":      model.PlatformFee,
			"bot_owner_revenue": model.BotOwnerRevenue,
			"ai_segments":       model.AISegments,
			"specific_bot_ids":  model.SpecificBotIDs,
			"excluded_user_ids": model.ExcludedUserIDs,
			"languages":         model.Languages,
			"schedule_start":    model.ScheduleStart,
			"schedule_end":      model.ScheduleEnd,
			"timezone":          model.Timezone,
			"active_days":       model.ActiveDays,
			"active_hours":      model.ActiveHours,
			"status":            model.Status,
			"moderated_by":      model.ModeratedBy,
			"moderated_at":      model.ModeratedAt,
			"rejection_reason":  model.RejectionReason,
			"is_archived":       model.IsArchived,
			"started_at":        model.StartedAt,
			"completed_at":      model.CompletedAt,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ad: %w", result.Error)
	}

	return nil
}

func (r *AdRepository) GetByID(ctx context.Context, id uint) (*ad.Ad, error) {
	var model models.AdModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ad.ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AdRepository) GetBySID(ctx context.Context, sid string) (*ad.Ad, error) {
	var model models.AdModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ad.ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to get ad by sid: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AdRepository) List(ctx context.Context, filter ad.ListFilter) ([]*ad.Ad, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.AdModel{})

	if filter.AdvertiserID != 0 {
		query = query.Where("advertiser_id = ?", filter.AdvertiserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Archived != nil {
		query = query.Where("is_archived = ?", *filter.Archived)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ads: %w", err)
	}

	orderBy := "created_at"
	switch filter.OrderBy {
	case "updated_at", "total_cost", "delivered_impressions":
		orderBy = filter.OrderBy
	}
	order := "DESC"
	if filter.Order == "asc" {
		order = "ASC"
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	var adModels []*models.AdModel
	if err := query.
		Order(orderBy + " " + order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&adModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ads: %w", err)
	}

	ads, err := r.mapper.ToDomainList(adModels)
	if err != nil {
		return nil, 0, err
	}

	return ads, total, nil
}

func (r *AdRepository) ListPendingReview(ctx context.Context, limit, offset int) ([]*ad.Ad, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.AdModel{}).
		Where("status IN ?", []string{vo.AdStatusSubmitted.String(), vo.AdStatusPendingReview.String()})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending ads: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	var adModels []*models.AdModel
	if err := query.
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&adModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pending ads: %w", err)
	}

	ads, err := r.mapper.ToDomainList(adModels)
	if err != nil {
		return nil, 0, err
	}

	return ads, total, nil
}

// ListDeliverable applies the cheap SQL-side delivery filters. Schedule hour
// windows and targeting run in the caller afterwards because they need the
// unpacked value objects.
func (r *AdRepository) ListDeliverable(ctx context.Context, now time.Time) ([]*ad.Ad, error) {
	var adModels []*models.AdModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", vo.AdStatusRunning.String()).
		Where("is_archived = ?", false).
		Where("remaining_budget > 0").
		Where("delivered_impressions < target_impressions").
		Where("schedule_start IS NULL OR schedule_start <= ?", now).
		Where("schedule_end IS NULL OR schedule_end > ?", now).
		Find(&adModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list deliverable ads: %w", err)
	}

	return r.mapper.ToDomainList(adModels)
}

// ApplyDelivery accounts one impression with a guarded UPDATE. The WHERE
// clause re-checks status, budget and target under the row lock, so two
// concurrent deliveries can never spend the same budget twice.
func (r *AdRepository) ApplyDelivery(ctx context.Context, adID uint, revenue decimal.Decimal) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AdModel{}).
		Where("id = ?", adID).
		Where("status = ?", vo.AdStatusRunning.String()).
		Where("remaining_budget >= ?", revenue).
		Where("delivered_impressions < target_impressions").
		Updates(map[string]interface{}{
			"delivered_impressions": gorm.Expr("delivered_impressions + 1"),
			"remaining_budget":      gorm.Expr("remaining_budget - ?", revenue),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to apply delivery: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *AdRepository) ListScheduledToStart(ctx context.Context, now time.Time) ([]*ad.Ad, error) {
	var adModels []*models.AdModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", vo.AdStatusScheduled.String()).
		Where("schedule_start IS NOT NULL AND schedule_start <= ?", now).
		Find(&adModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list scheduled ads: %w", err)
	}

	return r.mapper.ToDomainList(adModels)
}

func (r *AdRepository) ListRunningPastEnd(ctx context.Context, now time.Time) ([]*ad.Ad, error) {
	var adModels []*models.AdModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("status IN ?", []string{vo.AdStatusRunning.String(), vo.AdStatusPaused.String()}).
		Where("schedule_end IS NOT NULL AND schedule_end <= ?", now).
		Find(&adModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list ended ads: %w", err)
	}

	return r.mapper.ToDomainList(adModels)
}

func (r *AdRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.AdModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count ads by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
