package delivery

import (
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
)

// BotUser is the (bot, telegram user) directory row, upserted on each
// impression with the latest profile snapshot.
type BotUser struct {
	id             uint
	botID          uint
	telegramUserID int64
	profile        TelegramProfile
	firstSeenAt    time.Time
	lastSeenAt     time.Time
}

func NewBotUser(botID uint, telegramUserID int64, profile TelegramProfile) (*BotUser, error) {
	if botID == 0 {
		return nil, ErrInvalidDeliveryRef
	}
	if telegramUserID <= 0 {
		return nil, ErrInvalidTelegramUser
	}

	now := biztime.NowUTC()
	return &BotUser{
		botID:          botID,
		telegramUserID: telegramUserID,
		profile:        profile,
		firstSeenAt:    now,
		lastSeenAt:     now,
	}, nil
}

func (u *BotUser) ID() uint                 { return u.id }
func (u *BotUser) BotID() uint              { return u.botID }
func (u *BotUser) TelegramUserID() int64    { return u.telegramUserID }
func (u *BotUser) Profile() TelegramProfile { return u.profile }
func (u *BotUser) FirstSeenAt() time.Time   { return u.firstSeenAt }
func (u *BotUser) LastSeenAt() time.Time    { return u.lastSeenAt }

// Touch refreshes the profile snapshot and bumps lastSeenAt.
func (u *BotUser) Touch(profile TelegramProfile, at time.Time) {
	u.profile = profile
	u.lastSeenAt = at
}

func (u *BotUser) SetID(id uint) { u.id = id }

// BotUserReconstructParams carries persisted state back in.
type BotUserReconstructParams struct {
	ID             uint
	BotID          uint
	TelegramUserID int64
	Profile        TelegramProfile
	FirstSeenAt    time.Time
	LastSeenAt     time.Time
}

func ReconstructBotUser(params BotUserReconstructParams) *BotUser {
	return &BotUser{
		id:             params.ID,
		botID:          params.BotID,
		telegramUserID: params.TelegramUserID,
		profile:        params.Profile,
		firstSeenAt:    params.FirstSeenAt,
		lastSeenAt:     params.LastSeenAt,
	}
}
