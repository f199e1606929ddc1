package bot

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/shared/events"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

const (
	// DefaultFrequencyMinutes spaces ad posts when the owner has not tuned it.
	DefaultFrequencyMinutes = 180

	// MinFrequencyMinutes keeps bots from hammering their audiences.
	MinFrequencyMinutes = 30
)

// Bot is a publisher-side Telegram bot enrolled in the ad network. It carries
// the delivery credential (hash only, the raw key is shown once at issue
// time), its moderation status and earning counters.
type Bot struct {
	id                uint
	sid               string
	ownerID           uint
	telegramBotID     int64
	username          string
	title             string
	description       string
	tokenEncrypted    string
	apiKeyHash        string
	apiKeyIssuedAt    time.Time
	apiKeyRevoked     bool
	status            valueobjects.BotStatus
	isPaused          bool
	monetized         bool
	category          string
	language          string
	totalMembers      int64
	activeMembers     int64
	blockedCategories []string
	frequencyMinutes  int
	totalEarnings     decimal.Decimal
	pendingEarnings   decimal.Decimal
	rejectReason      string
	suspendReason     string
	lastServedAt      *time.Time
	createdAt         time.Time
	updatedAt         time.Time
	events            []events.DomainEvent
}

// NewBot enrolls a bot in PENDING state. The API key hash is part of the
// constructor so the credential is final before the row ever becomes visible;
// rotation after approval goes through RotateKey.
func NewBot(ownerID uint, telegramBotID int64, username, title, tokenEncrypted, apiKeyHash string) (*Bot, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if ownerID == 0 {
		return nil, ErrInvalidOwner
	}
	if telegramBotID <= 0 {
		return nil, ErrInvalidTelegramBotID
	}
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if tokenEncrypted == "" {
		return nil, ErrMissingBotToken
	}
	if apiKeyHash == "" {
		return nil, ErrMissingAPIKeyHash
	}

	now := time.Now()
	b := &Bot{
		sid:              id.NewBotSID(),
		ownerID:          ownerID,
		telegramBotID:    telegramBotID,
		username:         username,
		title:            strings.TrimSpace(title),
		tokenEncrypted:   tokenEncrypted,
		apiKeyHash:       apiKeyHash,
		apiKeyIssuedAt:   now,
		status:           valueobjects.BotStatusPending,
		language:         "en",
		frequencyMinutes: DefaultFrequencyMinutes,
		totalEarnings:    decimal.Zero,
		pendingEarnings:  decimal.Zero,
		createdAt:        now,
		updatedAt:        now,
	}
	b.addEvent(NewBotRegisteredEvent(b))
	return b, nil
}

// Getters

func (b *Bot) ID() uint                     { return b.id }
func (b *Bot) SID() string                  { return b.sid }
func (b *Bot) OwnerID() uint                { return b.ownerID }
func (b *Bot) TelegramBotID() int64         { return b.telegramBotID }
func (b *Bot) Username() string             { return b.username }
func (b *Bot) Title() string                { return b.title }
func (b *Bot) Description() string          { return b.description }
func (b *Bot) TokenEncrypted() string       { return b.tokenEncrypted }
func (b *Bot) APIKeyHash() string           { return b.apiKeyHash }
func (b *Bot) APIKeyIssuedAt() time.Time    { return b.apiKeyIssuedAt }
func (b *Bot) IsAPIKeyRevoked() bool        { return b.apiKeyRevoked }
func (b *Bot) Status() valueobjects.BotStatus { return b.status }
func (b *Bot) IsPaused() bool               { return b.isPaused }
func (b *Bot) IsMonetized() bool            { return b.monetized }
func (b *Bot) Category() string             { return b.category }
func (b *Bot) Language() string             { return b.language }
func (b *Bot) TotalMembers() int64          { return b.totalMembers }
func (b *Bot) ActiveMembers() int64         { return b.activeMembers }
func (b *Bot) BlockedCategories() []string  { return b.blockedCategories }
func (b *Bot) FrequencyMinutes() int        { return b.frequencyMinutes }
func (b *Bot) TotalEarnings() decimal.Decimal   { return b.totalEarnings }
func (b *Bot) PendingEarnings() decimal.Decimal { return b.pendingEarnings }
func (b *Bot) RejectReason() string         { return b.rejectReason }
func (b *Bot) SuspendReason() string        { return b.suspendReason }
func (b *Bot) LastServedAt() *time.Time     { return b.lastServedAt }
func (b *Bot) CreatedAt() time.Time         { return b.createdAt }
func (b *Bot) UpdatedAt() time.Time         { return b.updatedAt }

// Moderation

// Approve activates a pending bot so it can request ads.
func (b *Bot) Approve() error {
	if err := b.status.TransitionTo(valueobjects.BotStatusActive); err != nil {
		return err
	}
	b.monetized = true
	b.rejectReason = ""
	b.updatedAt = time.Now()
	b.addEvent(NewBotApprovedEvent(b))
	return nil
}

// Reject declines a pending bot. The state is terminal; owners re-register.
func (b *Bot) Reject(reason string) error {
	if err := b.status.TransitionTo(valueobjects.BotStatusRejected); err != nil {
		return err
	}
	b.rejectReason = reason
	b.monetized = false
	b.updatedAt = time.Now()
	return nil
}

// Suspend pulls an active bot out of rotation permanently.
func (b *Bot) Suspend(reason string) error {
	if err := b.status.TransitionTo(valueobjects.BotStatusSuspended); err != nil {
		return err
	}
	b.suspendReason = reason
	b.monetized = false
	b.updatedAt = time.Now()
	b.addEvent(NewBotSuspendedEvent(b, reason))
	return nil
}

// Owner controls

// Pause stops ad delivery without losing the active status.
func (b *Bot) Pause() error {
	if !b.status.IsActive() {
		return ErrBotNotActive
	}
	if b.isPaused {
		return ErrBotAlreadyPaused
	}
	b.isPaused = true
	b.updatedAt = time.Now()
	return nil
}

// Resume re-enables delivery for a paused bot.
func (b *Bot) Resume() error {
	if !b.status.IsActive() {
		return ErrBotNotActive
	}
	if !b.isPaused {
		return ErrBotNotPaused
	}
	b.isPaused = false
	b.updatedAt = time.Now()
	return nil
}

// UpdateProfile lets the owner adjust listing metadata.
func (b *Bot) UpdateProfile(title, description, category, language string) {
	if t := strings.TrimSpace(title); t != "" {
		b.title = t
	}
	b.description = strings.TrimSpace(description)
	if category != "" {
		b.category = strings.ToLower(category)
	}
	if language != "" {
		b.language = strings.ToLower(language)
	}
	b.updatedAt = time.Now()
}

// SetBlockedCategories replaces the owner's category blocklist.
func (b *Bot) SetBlockedCategories(categories []string) {
	seen := make(map[string]struct{}, len(categories))
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		cleaned = append(cleaned, c)
	}
	b.blockedCategories = cleaned
	b.updatedAt = time.Now()
}

// SetFrequency adjusts the minimum spacing between posts to this bot.
func (b *Bot) SetFrequency(minutes int) error {
	if minutes < MinFrequencyMinutes {
		return ErrFrequencyTooLow
	}
	b.frequencyMinutes = minutes
	b.updatedAt = time.Now()
	return nil
}

// UpdateMemberCounts refreshes audience sizing reported by the bot.
func (b *Bot) UpdateMemberCounts(total, active int64) {
	if total < 0 {
		total = 0
	}
	if active < 0 {
		active = 0
	}
	if active > total {
		active = total
	}
	b.totalMembers = total
	b.activeMembers = active
	b.updatedAt = time.Now()
}

// Credential lifecycle

// RotateKey installs a freshly issued key hash and clears any revocation.
func (b *Bot) RotateKey(newHash string) error {
	if newHash == "" {
		return ErrMissingAPIKeyHash
	}
	b.apiKeyHash = newHash
	b.apiKeyIssuedAt = time.Now()
	b.apiKeyRevoked = false
	b.updatedAt = b.apiKeyIssuedAt
	return nil
}

// RevokeKey disables the current credential until the owner rotates.
func (b *Bot) RevokeKey() error {
	if b.apiKeyRevoked {
		return ErrAPIKeyAlreadyRevoked
	}
	b.apiKeyRevoked = true
	b.updatedAt = time.Now()
	return nil
}

// Delivery accounting

// CanServe reports whether the bot may receive ads right now.
func (b *Bot) CanServe() bool {
	return b.status.IsActive() && !b.isPaused && !b.apiKeyRevoked && b.monetized
}

// CategoryAllowed checks the ad category against the owner's blocklist.
func (b *Bot) CategoryAllowed(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, blocked := range b.blockedCategories {
		if blocked == category {
			return false
		}
	}
	return true
}

// FrequencyWindow is the minimum gap between served posts.
func (b *Bot) FrequencyWindow() time.Duration {
	return time.Duration(b.frequencyMinutes) * time.Minute
}

// MarkServed stamps the moment an ad went out through this bot.
func (b *Bot) MarkServed(at time.Time) {
	b.lastServedAt = &at
	b.updatedAt = at
}

// AddEarnings accumulates the owner's share from one delivered impression.
func (b *Bot) AddEarnings(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeEarnings
	}
	b.totalEarnings = b.totalEarnings.Add(amount)
	b.pendingEarnings = b.pendingEarnings.Add(amount)
	b.updatedAt = time.Now()
	return nil
}

// SettlePendingEarnings clears the pending counter once funds hit the wallet.
func (b *Bot) SettlePendingEarnings(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeEarnings
	}
	if amount.GreaterThan(b.pendingEarnings) {
		return ErrSettleExceedsPending
	}
	b.pendingEarnings = b.pendingEarnings.Sub(amount)
	b.updatedAt = time.Now()
	return nil
}

// Events

func (b *Bot) addEvent(event events.DomainEvent) {
	b.events = append(b.events, event)
}

func (b *Bot) GetEvents() []events.DomainEvent {
	return b.events
}

func (b *Bot) ClearEvents() {
	b.events = nil
}

// SetID sets the bot ID after persistence (used by repository after Create)
func (b *Bot) SetID(id uint) {
	b.id = id
}

// BotReconstructParams carries persisted state back into the aggregate.
type BotReconstructParams struct {
	ID                uint
	SID               string
	OwnerID           uint
	TelegramBotID     int64
	Username          string
	Title             string
	Description       string
	TokenEncrypted    string
	APIKeyHash        string
	APIKeyIssuedAt    time.Time
	APIKeyRevoked     bool
	Status            valueobjects.BotStatus
	IsPaused          bool
	Monetized         bool
	Category          string
	Language          string
	TotalMembers      int64
	ActiveMembers     int64
	BlockedCategories []string
	FrequencyMinutes  int
	TotalEarnings     decimal.Decimal
	PendingEarnings   decimal.Decimal
	RejectReason      string
	SuspendReason     string
	LastServedAt      *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructBot rebuilds a Bot from persistence without firing events.
func ReconstructBot(params BotReconstructParams) *Bot {
	freq := params.FrequencyMinutes
	if freq <= 0 {
		freq = DefaultFrequencyMinutes
	}
	return &Bot{
		id:                params.ID,
		sid:               params.SID,
		ownerID:           params.OwnerID,
		telegramBotID:     params.TelegramBotID,
		username:          params.Username,
		title:             params.Title,
		description:       params.Description,
		tokenEncrypted:    params.TokenEncrypted,
		apiKeyHash:        params.APIKeyHash,
		apiKeyIssuedAt:    params.APIKeyIssuedAt,
		apiKeyRevoked:     params.APIKeyRevoked,
		status:            params.Status,
		isPaused:          params.IsPaused,
		monetized:         params.Monetized,
		category:          params.Category,
		language:          params.Language,
		totalMembers:      params.TotalMembers,
		activeMembers:     params.ActiveMembers,
		blockedCategories: params.BlockedCategories,
		frequencyMinutes:  freq,
		totalEarnings:     params.TotalEarnings,
		pendingEarnings:   params.PendingEarnings,
		rejectReason:      params.RejectReason,
		suspendReason:     params.SuspendReason,
		lastServedAt:      params.LastServedAt,
		createdAt:         params.CreatedAt,
		updatedAt:         params.UpdatedAt,
	}
}
