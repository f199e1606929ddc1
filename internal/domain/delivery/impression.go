package delivery

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// TelegramProfile is the viewer snapshot denormalized onto impressions and
// kept fresh on the bot-user directory row.
type TelegramProfile struct {
	FirstName    string
	LastName     string
	Username     string
	LanguageCode string
	Country      string
	City         string
}

// Impression records one delivered ad post. Rows are append-only; the
// revenue split is frozen at delivery time. The SID doubles as the messageId
// correlation hint embedded in the delivery response.
type Impression struct {
	id             uint
	sid            string
	adID           uint
	botID          uint
	telegramUserID int64
	profile        TelegramProfile
	revenue        decimal.Decimal
	platformFee    decimal.Decimal
	botOwnerEarns  decimal.Decimal
	createdAt      time.Time
}

// NewImpression freezes the delivery facts. The split must conserve value:
// platformFee + botOwnerEarns = revenue.
func NewImpression(adID, botID uint, telegramUserID int64, profile TelegramProfile, revenue, platformFee, botOwnerEarns decimal.Decimal) (*Impression, error) {
	if adID == 0 || botID == 0 {
		return nil, ErrInvalidDeliveryRef
	}
	if telegramUserID <= 0 {
		return nil, ErrInvalidTelegramUser
	}
	if revenue.IsNegative() || platformFee.IsNegative() || botOwnerEarns.IsNegative() {
		return nil, ErrNegativeRevenue
	}
	if !platformFee.Add(botOwnerEarns).Equal(revenue) {
		return nil, ErrSplitMismatch
	}

	return &Impression{
		sid:            id.NewImpressionSID(),
		adID:           adID,
		botID:          botID,
		telegramUserID: telegramUserID,
		profile:        profile,
		revenue:        revenue,
		platformFee:    platformFee,
		botOwnerEarns:  botOwnerEarns,
		createdAt:      biztime.NowUTC(),
	}, nil
}

func (i *Impression) ID() uint                      { return i.id }
func (i *Impression) SID() string                   { return i.sid }
func (i *Impression) AdID() uint                    { return i.adID }
func (i *Impression) BotID() uint                   { return i.botID }
func (i *Impression) TelegramUserID() int64         { return i.telegramUserID }
func (i *Impression) Profile() TelegramProfile      { return i.profile }
func (i *Impression) Revenue() decimal.Decimal      { return i.revenue }
func (i *Impression) PlatformFee() decimal.Decimal  { return i.platformFee }
func (i *Impression) BotOwnerEarns() decimal.Decimal { return i.botOwnerEarns }
func (i *Impression) CreatedAt() time.Time          { return i.createdAt }

// MessageID is the correlation hint the delivery response embeds.
func (i *Impression) MessageID() string { return i.sid }

func (i *Impression) SetID(id uint) { i.id = id }

// ImpressionReconstructParams carries persisted state back in.
type ImpressionReconstructParams struct {
	ID             uint
	SID            string
	AdID           uint
	BotID          uint
	TelegramUserID int64
	Profile        TelegramProfile
	Revenue        decimal.Decimal
	PlatformFee    decimal.Decimal
	BotOwnerEarns  decimal.Decimal
	CreatedAt      time.Time
}

func ReconstructImpression(params ImpressionReconstructParams) *Impression {
	return &Impression{
		id:             params.ID,
		sid:            params.SID,
		adID:           params.AdID,
		botID:          params.BotID,
		telegramUserID: params.TelegramUserID,
		profile:        params.Profile,
		revenue:        params.Revenue,
		platformFee:    params.PlatformFee,
		botOwnerEarns:  params.BotOwnerEarns,
		createdAt:      params.CreatedAt,
	}
}
