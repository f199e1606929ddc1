// Package bot implements the publisher-side registry: owners enroll their
// Telegram bots, manage the delivery credential and serving preferences, and
// read per-bot delivery stats. Moderation decisions live in the moderation
// package; this one only covers what owners drive themselves.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	infraAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// activeAudienceWindow bounds how far back a directory row still counts as
// an active member.
const activeAudienceWindow = 30 * 24 * time.Hour

// ErrInvalidBotToken rejects tokens that do not look like `<id>:<secret>`.
var ErrInvalidBotToken = errors.New("bot token is malformed")

// RegisterCommand enrolls one bot. The username comes from the owner because
// registration never calls out to Telegram; moderation verifies it.
type RegisterCommand struct {
	OwnerID  uint
	Token    string
	Username string
	Title    string
	Category string
	Language string
}

// RegisterResult carries the one and only exposure of the plain API key.
type RegisterResult struct {
	Bot    *bot.Bot
	APIKey string
}

// Stats aggregates what a bot has delivered and earned.
type Stats struct {
	Impressions    int64
	Clicks         int64
	Revenue        decimal.Decimal
	OwnerEarnings  decimal.Decimal
	PlatformFee    decimal.Decimal
	AudienceTotal  int64
	AudienceActive int64
}

// Service owns the bot registry for owners and admins.
type Service struct {
	botRepo     bot.Repository
	userRepo    user.Repository
	impRepo     delivery.ImpressionRepository
	clickRepo   delivery.ClickRepository
	botUserRepo delivery.BotUserRepository
	cipher      *infraAuth.TokenCipher
	keys        *infraAuth.BotKeyService
	txMgr       *db.TransactionManager
	dispatcher  *appNotification.Dispatcher
	logger      logger.Interface
}

func NewService(
	botRepo bot.Repository,
	userRepo user.Repository,
	impRepo delivery.ImpressionRepository,
	clickRepo delivery.ClickRepository,
	botUserRepo delivery.BotUserRepository,
	cipher *infraAuth.TokenCipher,
	keys *infraAuth.BotKeyService,
	txMgr *db.TransactionManager,
	dispatcher *appNotification.Dispatcher,
	logger logger.Interface,
) *Service {
	return &Service{
		botRepo:     botRepo,
		userRepo:    userRepo,
		impRepo:     impRepo,
		clickRepo:   clickRepo,
		botUserRepo: botUserRepo,
		cipher:      cipher,
		keys:        keys,
		txMgr:       txMgr,
		dispatcher:  dispatcher,
		logger:      logger.With("component", "bot_service"),
	}
}

// Register enrolls a bot in PENDING state. The token is stored encrypted and
// the API key is issued inside the creating transaction, so the row is never
// visible with a credential that will not survive.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	tgBotID, err := telegramBotIDFromToken(cmd.Token)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, cmd.OwnerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.botRepo.GetByTelegramBotID(ctx, tgBotID); err == nil {
		return nil, fmt.Errorf("%w: %d", bot.ErrTelegramBotIDTaken, tgBotID)
	} else if !errors.Is(err, bot.ErrBotNotFound) {
		return nil, err
	}

	encToken, err := s.cipher.Encrypt(cmd.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt bot token: %w", err)
	}

	// The key slot is filled with a throwaway value until the SID exists to
	// sign into the real key; the swap happens before anything persists.
	b, err := bot.NewBot(cmd.OwnerID, tgBotID, cmd.Username, cmd.Title, encToken, uuid.NewString())
	if err != nil {
		return nil, err
	}
	b.UpdateProfile("", "", cmd.Category, cmd.Language)

	plainKey, keyHash, err := s.keys.Generate(b.SID(), owner.SID(), tgBotID, b.Username())
	if err != nil {
		return nil, err
	}
	if err := b.RotateKey(keyHash); err != nil {
		return nil, err
	}

	err = s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.botRepo.Create(txCtx, b)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("bot registered",
		"bot_sid", b.SID(), "owner_id", cmd.OwnerID, "username", b.Username())
	if s.dispatcher != nil {
		s.dispatcher.BotPendingReview(b.SID(), b.Username(), owner.SID())
	}
	return &RegisterResult{Bot: b, APIKey: plainKey}, nil
}

// Get returns one bot. Non-admin callers only see their own; a foreign SID
// reads as not found.
func (s *Service) Get(ctx context.Context, sid string, requesterID uint, isAdmin bool) (*bot.Bot, error) {
	b, err := s.botRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.OwnerID() != requesterID {
		return nil, fmt.Errorf("%w: %s", bot.ErrBotNotFound, sid)
	}
	return b, nil
}

// ListByOwner returns all bots one user registered.
func (s *Service) ListByOwner(ctx context.Context, ownerID uint) ([]*bot.Bot, error) {
	return s.botRepo.ListByOwner(ctx, ownerID)
}

// List returns bots matching the filter, for admin listings.
func (s *Service) List(ctx context.Context, filter bot.ListFilter) ([]*bot.Bot, int64, error) {
	return s.botRepo.List(ctx, filter)
}

// RotateKey issues a fresh API key, invalidating the previous one. The plain
// key is returned once and only its hash survives.
func (s *Service) RotateKey(ctx context.Context, ownerID uint, sid string) (*RegisterResult, error) {
	b, err := s.ownedBot(ctx, ownerID, sid)
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByID(ctx, b.OwnerID())
	if err != nil {
		return nil, err
	}

	plainKey, keyHash, err := s.keys.Generate(b.SID(), owner.SID(), b.TelegramBotID(), b.Username())
	if err != nil {
		return nil, err
	}
	if err := b.RotateKey(keyHash); err != nil {
		return nil, err
	}
	if err := s.botRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Infow("bot api key rotated", "bot_sid", sid, "owner_id", ownerID)
	return &RegisterResult{Bot: b, APIKey: plainKey}, nil
}

// RevokeKey disables the current credential until the owner rotates.
func (s *Service) RevokeKey(ctx context.Context, ownerID uint, sid string) (*bot.Bot, error) {
	b, err := s.ownedBot(ctx, ownerID, sid)
	if err != nil {
		return nil, err
	}
	if err := b.RevokeKey(); err != nil {
		return nil, err
	}
	if err := s.botRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Infow("bot api key revoked", "bot_sid", sid, "owner_id", ownerID)
	return b, nil
}

// Pause stops delivery through the bot without touching its status.
func (s *Service) Pause(ctx context.Context, ownerID uint, sid string) (*bot.Bot, error) {
	return s.updateOwned(ctx, ownerID, sid, func(b *bot.Bot) error { return b.Pause() })
}

// Resume re-enables delivery for a paused bot.
func (s *Service) Resume(ctx context.Context, ownerID uint, sid string) (*bot.Bot, error) {
	return s.updateOwned(ctx, ownerID, sid, func(b *bot.Bot) error { return b.Resume() })
}

// UpdateProfile adjusts the owner-editable listing fields.
func (s *Service) UpdateProfile(ctx context.Context, ownerID uint, sid, title, description, category, language string) (*bot.Bot, error) {
	return s.updateOwned(ctx, ownerID, sid, func(b *bot.Bot) error {
		b.UpdateProfile(title, description, category, language)
		return nil
	})
}

// SetBlockedCategories replaces the bot's ad-category blocklist.
func (s *Service) SetBlockedCategories(ctx context.Context, ownerID uint, sid string, categories []string) (*bot.Bot, error) {
	return s.updateOwned(ctx, ownerID, sid, func(b *bot.Bot) error {
		b.SetBlockedCategories(categories)
		return nil
	})
}

// SetFrequency adjusts the minimum spacing between posts to this bot.
func (s *Service) SetFrequency(ctx context.Context, ownerID uint, sid string, minutes int) (*bot.Bot, error) {
	return s.updateOwned(ctx, ownerID, sid, func(b *bot.Bot) error {
		return b.SetFrequency(minutes)
	})
}

// Stats aggregates delivery counters and audience sizing for one bot.
func (s *Service) Stats(ctx context.Context, sid string, requesterID uint, isAdmin bool) (*Stats, error) {
	b, err := s.Get(ctx, sid, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}

	imp, err := s.impRepo.StatsByBot(ctx, b.ID())
	if err != nil {
		return nil, err
	}
	clickCount, err := s.countClicks(ctx, b.ID())
	if err != nil {
		return nil, err
	}
	total, err := s.botUserRepo.CountByBot(ctx, b.ID())
	if err != nil {
		return nil, err
	}
	active, err := s.botUserRepo.CountActiveByBot(ctx, b.ID(), biztime.NowUTC().Add(-activeAudienceWindow))
	if err != nil {
		return nil, err
	}

	return &Stats{
		Impressions:    imp.Impressions,
		Clicks:         clickCount,
		Revenue:        imp.Revenue,
		OwnerEarnings:  imp.BotOwnerEarns,
		PlatformFee:    imp.PlatformFee,
		AudienceTotal:  total,
		AudienceActive: active,
	}, nil
}

func (s *Service) countClicks(ctx context.Context, botID uint) (int64, error) {
	_, count, err := s.clickRepo.List(ctx, delivery.ClickListFilter{BotID: &botID, PageSize: 1})
	return count, err
}

// ownedBot loads a bot and enforces ownership; foreign SIDs read as not
// found so ownership cannot be probed.
func (s *Service) ownedBot(ctx context.Context, ownerID uint, sid string) (*bot.Bot, error) {
	b, err := s.botRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if b.OwnerID() != ownerID {
		return nil, fmt.Errorf("%w: %s", bot.ErrBotNotFound, sid)
	}
	return b, nil
}

func (s *Service) updateOwned(ctx context.Context, ownerID uint, sid string, mutate func(*bot.Bot) error) (*bot.Bot, error) {
	b, err := s.ownedBot(ctx, ownerID, sid)
	if err != nil {
		return nil, err
	}
	if err := mutate(b); err != nil {
		return nil, err
	}
	if err := s.botRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// telegramBotIDFromToken extracts the numeric bot id from a `<id>:<secret>`
// token without calling Telegram.
func telegramBotIDFromToken(token string) (int64, error) {
	idPart, secret, ok := strings.Cut(strings.TrimSpace(token), ":")
	if !ok || secret == "" {
		return 0, ErrInvalidBotToken
	}
	tgBotID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || tgBotID <= 0 {
		return 0, ErrInvalidBotToken
	}
	return tgBotID, nil
}
