package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type BotRepository struct {
	db     *gorm.DB
	mapper *mappers.BotMapper
}

func NewBotRepository(gdb *gorm.DB) *BotRepository {
	return &BotRepository{db: gdb, mapper: mappers.NewBotMapper()}
}

func (r *BotRepository) Create(ctx context.Context, b *bot.Bot) error {
	model, err := r.mapper.ToModel(b)
	if err != nil {
		return fmt.Errorf("failed to map bot: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	b.SetID(model.ID)
	return nil
}

func (r *BotRepository) Update(ctx context.Context, b *bot.Bot) error {
	model, err := r.mapper.ToModel(b)
	if err != nil {
		return fmt.Errorf("failed to map bot: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.BotModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"username":           model.Username,
			"title":              model.Title,
			"description":        model.Description,
			"token_encrypted":    model.TokenEncrypted,
			"api_key_hash":       model.APIKeyHash,
			"api_key_issued_at":  model.APIKeyIssuedAt,
			"api_key_revoked":    model.APIKeyRevoked,
			"status":             model.Status,
			"is_paused":          model.IsPaused,
			"monetized":          model.Monetized,
			"category":           model.Category,
			"language":           model.Language,
			"total_members":      model.TotalMembers,
			"active_members":     model.ActiveMembers,
			"blocked_categories": model.BlockedCategories,
			"frequency_minutes":  model.FrequencyMinutes,
			"total_earnings":     model.TotalEarnings,
			"pending_earnings":   model.PendingEarnings,
			"reject_reason":      model.RejectReason,
			"suspend_reason":     model.SuspendReason,
			"last_served_at":     model.LastServedAt,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update bot: %w", result.Error)
	}

	return nil
}

func (r *BotRepository) GetByID(ctx context.Context, id uint) (*bot.Bot, error) {
	var model models.BotModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bot.ErrBotNotFound
		}
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *BotRepository) GetBySID(ctx context.Context, sid string) (*bot.Bot, error) {
	var model models.BotModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bot.ErrBotNotFound
		}
		return nil, fmt.Errorf("failed to get bot by sid: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *BotRepository) GetByTelegramBotID(ctx context.Context, telegramBotID int64) (*bot.Bot, error) {
	var model models.BotModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("telegram_bot_id = ?", telegramBotID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bot.ErrBotNotFound
		}
		return nil, fmt.Errorf("failed to get bot by telegram id: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *BotRepository) GetByAPIKeyHash(ctx context.Context, hash string) (*bot.Bot, error) {
	var model models.BotModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("api_key_hash = ? AND api_key_revoked = ?", hash, false).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bot.ErrBotNotFound
		}
		return nil, fmt.Errorf("failed to get bot by key hash: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *BotRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*bot.Bot, error) {
	var botModels []*models.BotModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&botModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list bots by owner: %w", err)
	}

	return r.mapper.ToDomainList(botModels)
}

func (r *BotRepository) List(ctx context.Context, filter bot.ListFilter) ([]*bot.Bot, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.BotModel{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.IsPaused != nil {
		query = query.Where("is_paused = ?", *filter.IsPaused)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("username LIKE ? OR title LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bots: %w", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	var botModels []*models.BotModel
	if err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&botModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bots: %w", err)
	}

	bots, err := r.mapper.ToDomainList(botModels)
	if err != nil {
		return nil, 0, err
	}

	return bots, total, nil
}

func (r *BotRepository) ListPendingReview(ctx context.Context, limit int) ([]*bot.Bot, error) {
	if limit <= 0 {
		limit = 50
	}

	var botModels []*models.BotModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", vo.BotStatusPending.String()).
		Order("created_at ASC").
		Limit(limit).
		Find(&botModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending bots: %w", err)
	}

	return r.mapper.ToDomainList(botModels)
}

func (r *BotRepository) CountByStatus(ctx context.Context) (map[vo.BotStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BotModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count bots by status: %w", err)
	}

	counts := make(map[vo.BotStatus]int64, len(rows))
	for _, r := range rows {
		counts[vo.BotStatus(r.Status)] = r.Count
	}
	return counts, nil
}

func (r *BotRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.BotModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete bot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return bot.ErrBotNotFound
	}
	return nil
}
