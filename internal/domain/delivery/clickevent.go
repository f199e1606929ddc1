package delivery

import (
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// ClickEvent records one followed button redirect. Append-only.
type ClickEvent struct {
	id             uint
	sid            string
	adID           uint
	botID          uint
	telegramUserID int64
	buttonIndex    int
	originalURL    string
	clicked        bool
	clickedAt      time.Time
	ipAddress      string
	createdAt      time.Time
}

func NewClickEvent(adID, botID uint, telegramUserID int64, buttonIndex int, originalURL, ipAddress string) (*ClickEvent, error) {
	if adID == 0 || botID == 0 {
		return nil, ErrInvalidDeliveryRef
	}
	if buttonIndex < 0 {
		return nil, ErrInvalidButtonIndex
	}
	if originalURL == "" {
		return nil, ErrMissingOriginalURL
	}

	now := biztime.NowUTC()
	return &ClickEvent{
		sid:            id.NewClickSID(),
		adID:           adID,
		botID:          botID,
		telegramUserID: telegramUserID,
		buttonIndex:    buttonIndex,
		originalURL:    originalURL,
		clicked:        true,
		clickedAt:      now,
		ipAddress:      ipAddress,
		createdAt:      now,
	}, nil
}

func (c *ClickEvent) ID() uint              { return c.id }
func (c *ClickEvent) SID() string           { return c.sid }
func (c *ClickEvent) AdID() uint            { return c.adID }
func (c *ClickEvent) BotID() uint           { return c.botID }
func (c *ClickEvent) TelegramUserID() int64 { return c.telegramUserID }
func (c *ClickEvent) ButtonIndex() int      { return c.buttonIndex }
func (c *ClickEvent) OriginalURL() string   { return c.originalURL }
func (c *ClickEvent) IsClicked() bool       { return c.clicked }
func (c *ClickEvent) ClickedAt() time.Time  { return c.clickedAt }
func (c *ClickEvent) IPAddress() string     { return c.ipAddress }
func (c *ClickEvent) CreatedAt() time.Time  { return c.createdAt }

func (c *ClickEvent) SetID(id uint) { c.id = id }

// ClickEventReconstructParams carries persisted state back in.
type ClickEventReconstructParams struct {
	ID             uint
	SID            string
	AdID           uint
	BotID          uint
	TelegramUserID int64
	ButtonIndex    int
	OriginalURL    string
	Clicked        bool
	ClickedAt      time.Time
	IPAddress      string
	CreatedAt      time.Time
}

func ReconstructClickEvent(params ClickEventReconstructParams) *ClickEvent {
	return &ClickEvent{
		id:             params.ID,
		sid:            params.SID,
		adID:           params.AdID,
		botID:          params.BotID,
		telegramUserID: params.TelegramUserID,
		buttonIndex:    params.ButtonIndex,
		originalURL:    params.OriginalURL,
		clicked:        params.Clicked,
		clickedAt:      params.ClickedAt,
		ipAddress:      params.IPAddress,
		createdAt:      params.CreatedAt,
	}
}
