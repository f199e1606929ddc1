package bot

import (
	"context"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
)

// ListFilter narrows bot listings.
type ListFilter struct {
	Page     int
	PageSize int
	OwnerID  *uint
	Status   *valueobjects.BotStatus
	IsPaused *bool
	Search   string
}

// Repository defines bot persistence operations.
type Repository interface {
	// Create persists a new bot
	Create(ctx context.Context, b *Bot) error

	// Update persists changes to an existing bot
	Update(ctx context.Context, b *Bot) error

	// GetByID retrieves a bot by internal ID
	GetByID(ctx context.Context, id uint) (*Bot, error)

	// GetBySID retrieves a bot by short ID
	GetBySID(ctx context.Context, sid string) (*Bot, error)

	// GetByTelegramBotID retrieves a bot by its Telegram bot identifier
	GetByTelegramBotID(ctx context.Context, telegramBotID int64) (*Bot, error)

	// GetByAPIKeyHash retrieves a bot by the SHA-256 hash of its delivery key
	GetByAPIKeyHash(ctx context.Context, hash string) (*Bot, error)

	// ListByOwner returns all bots registered by one user
	ListByOwner(ctx context.Context, ownerID uint) ([]*Bot, error)

	// List returns bots matching the filter with total count
	List(ctx context.Context, filter ListFilter) ([]*Bot, int64, error)

	// ListPendingReview returns bots awaiting moderation, oldest first
	ListPendingReview(ctx context.Context, limit int) ([]*Bot, error)

	// CountByStatus returns the number of bots per status
	CountByStatus(ctx context.Context) (map[valueobjects.BotStatus]int64, error)

	// Delete removes a bot
	Delete(ctx context.Context, id uint) error
}
