package adserver

import (
	"context"
	"fmt"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// ClickCommand is one tracked button click from the redirect endpoint.
type ClickCommand struct {
	AdSID          string
	BotSID         string
	ButtonIndex    int
	TelegramUserID int64
	IPAddress      string
}

// ClickTracker resolves tracked links back to their destination and logs the
// click on the way through.
type ClickTracker struct {
	adRepo    ad.Repository
	botRepo   bot.Repository
	clickRepo delivery.ClickRepository
	logger    logger.Interface
}

func NewClickTracker(
	adRepo ad.Repository,
	botRepo bot.Repository,
	clickRepo delivery.ClickRepository,
	logger logger.Interface,
) *ClickTracker {
	return &ClickTracker{
		adRepo:    adRepo,
		botRepo:   botRepo,
		clickRepo: clickRepo,
		logger:    logger.With("component", "click_tracker"),
	}
}

// Resolve returns the original button URL for the redirect. The click row is
// best effort: a failed insert still redirects the user.
func (t *ClickTracker) Resolve(ctx context.Context, cmd ClickCommand) (string, error) {
	a, err := t.adRepo.GetBySID(ctx, cmd.AdSID)
	if err != nil {
		return "", err
	}
	buttons := a.Buttons()
	if cmd.ButtonIndex < 0 || cmd.ButtonIndex >= len(buttons) {
		return "", fmt.Errorf("%w: index %d", delivery.ErrInvalidButtonIndex, cmd.ButtonIndex)
	}
	target := buttons[cmd.ButtonIndex].URL()

	b, err := t.botRepo.GetBySID(ctx, cmd.BotSID)
	if err != nil {
		return "", err
	}

	click, err := delivery.NewClickEvent(a.ID(), b.ID(), cmd.TelegramUserID, cmd.ButtonIndex, target, cmd.IPAddress)
	if err != nil {
		t.logger.Warnw("invalid click event", "error", err, "ad_sid", cmd.AdSID)
		return target, nil
	}
	if err := t.clickRepo.Create(ctx, click); err != nil {
		t.logger.Warnw("failed to record click", "error", err, "ad_sid", cmd.AdSID, "bot_sid", cmd.BotSID)
	}
	return target, nil
}
