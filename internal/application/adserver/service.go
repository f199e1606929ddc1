// Package adserver implements the bot-facing delivery pipeline: pick the
// best eligible ad for one viewer, account the impression atomically and hand
// back a Telegram-ready payload. Everything after authentication degrades to
// "no ad" instead of surfacing errors to the calling bot.
package adserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/cache"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/services/markdown"
)

// errCandidateTaken aborts one delivery attempt when the conditional budget
// decrement matched no row; the next candidate is tried.
var errCandidateTaken = errors.New("candidate taken")

// ServeCommand is one ad request from an authenticated bot.
type ServeCommand struct {
	Bot            *bot.Bot
	TelegramUserID int64
	Profile        delivery.TelegramProfile

	// RequestID makes retried requests idempotent for 60 seconds. Optional.
	RequestID string
}

// Service is the delivery engine.
type Service struct {
	adRepo       ad.Repository
	botRepo      bot.Repository
	userRepo     user.Repository
	impRepo      delivery.ImpressionRepository
	botUserRepo  delivery.BotUserRepository
	walletSvc    *appWallet.Service
	settings     setting.Provider
	freqGate     *cache.FrequencyGate
	latch        *cache.InflightLatch
	requestCache *cache.AdRequestCache
	txMgr        *db.TransactionManager
	dispatcher   *appNotification.Dispatcher
	builder      *messageBuilder
	logger       logger.Interface
}

func NewService(
	adRepo ad.Repository,
	botRepo bot.Repository,
	userRepo user.Repository,
	impRepo delivery.ImpressionRepository,
	botUserRepo delivery.BotUserRepository,
	walletSvc *appWallet.Service,
	settings setting.Provider,
	freqGate *cache.FrequencyGate,
	latch *cache.InflightLatch,
	requestCache *cache.AdRequestCache,
	txMgr *db.TransactionManager,
	dispatcher *appNotification.Dispatcher,
	md markdown.MarkdownService,
	clickBaseURL string,
	logger logger.Interface,
) *Service {
	return &Service{
		adRepo:       adRepo,
		botRepo:      botRepo,
		userRepo:     userRepo,
		impRepo:      impRepo,
		botUserRepo:  botUserRepo,
		walletSvc:    walletSvc,
		settings:     settings,
		freqGate:     freqGate,
		latch:        latch,
		requestCache: requestCache,
		txMgr:        txMgr,
		dispatcher:   dispatcher,
		builder:      newMessageBuilder(md, clickBaseURL),
		logger:       logger.With("component", "adserver"),
	}
}

// ServeAd runs the pipeline. A nil response with nil error means no ad right
// now; the handler answers 204.
func (s *Service) ServeAd(ctx context.Context, cmd ServeCommand) (*ServeResponse, error) {
	b := cmd.Bot
	if b == nil || !b.CanServe() || cmd.TelegramUserID <= 0 {
		return nil, nil
	}
	if s.settings.IsMaintenanceMode(ctx) {
		return nil, nil
	}
	if !s.ownerEligible(ctx, b.OwnerID()) {
		return nil, nil
	}

	// Replayed request: hand back the recorded response, no second
	// impression.
	if cmd.RequestID != "" {
		if cached, ok, err := s.requestCache.Lookup(ctx, b.ID(), cmd.RequestID); err == nil && ok {
			var resp ServeResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	// One request per viewer at a time.
	acquired, err := s.latch.Acquire(ctx, b.ID(), cmd.TelegramUserID)
	if err != nil || !acquired {
		if err != nil {
			s.logger.Warnw("inflight latch unavailable", "error", err, "bot_id", b.ID())
		}
		return nil, nil
	}
	defer func() {
		if err := s.latch.Release(context.WithoutCancel(ctx), b.ID(), cmd.TelegramUserID); err != nil {
			s.logger.Warnw("failed to release inflight latch", "error", err, "bot_id", b.ID())
		}
	}()

	window := s.frequencyWindow(ctx, b)
	if _, shown, err := s.freqGate.LastShownAt(ctx, b.ID(), cmd.TelegramUserID); err == nil && shown {
		return nil, nil
	}

	now := biztime.NowUTC()
	candidates, err := s.rankedCandidates(ctx, b, cmd.TelegramUserID, now)
	if err != nil {
		s.logger.Errorw("failed to select candidates", "error", err, "bot_id", b.ID())
		return nil, nil
	}

	for _, candidate := range candidates {
		resp, err := s.deliver(ctx, b, candidate, cmd)
		if errors.Is(err, errCandidateTaken) {
			continue
		}
		if err != nil {
			s.logger.Errorw("delivery failed", "error", err, "ad_sid", candidate.SID(), "bot_id", b.ID())
			return nil, nil
		}

		if err := s.freqGate.MarkShown(ctx, b.ID(), cmd.TelegramUserID, window); err != nil {
			s.logger.Warnw("failed to mark frequency window", "error", err, "bot_id", b.ID())
		}
		if cmd.RequestID != "" {
			if body, err := json.Marshal(resp); err == nil {
				if err := s.requestCache.Store(ctx, b.ID(), cmd.RequestID, body); err != nil {
					s.logger.Warnw("failed to cache response", "error", err, "bot_id", b.ID())
				}
			}
		}
		return resp, nil
	}
	return nil, nil
}

// ownerEligible keeps suspended owners' bots out of rotation.
func (s *Service) ownerEligible(ctx context.Context, ownerID uint) bool {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		s.logger.Warnw("failed to load bot owner", "error", err, "owner_id", ownerID)
		return false
	}
	return owner.IsActive() && !owner.IsBanned()
}

func (s *Service) frequencyWindow(ctx context.Context, b *bot.Bot) time.Duration {
	if w := b.FrequencyWindow(); w > 0 {
		return w
	}
	return time.Duration(s.settings.AdFrequencyMinutes(ctx)) * time.Minute
}

// rankedCandidates filters the coarse deliverable set down to this bot and
// viewer, then orders it: highest CPM first, ties broken oldest first, then
// closest to exhaustion so ads finish instead of lingering.
func (s *Service) rankedCandidates(ctx context.Context, b *bot.Bot, viewerID int64, now time.Time) ([]*ad.Ad, error) {
	all, err := s.adRepo.ListDeliverable(ctx, now)
	if err != nil {
		return nil, err
	}

	candidates := make([]*ad.Ad, 0, len(all))
	for _, a := range all {
		if !a.IsServableAt(now) {
			continue
		}
		if !b.CategoryAllowed(a.Category()) {
			continue
		}
		t := a.Targeting()
		if !t.MatchesBot(b.ID()) || t.IsUserExcluded(viewerID) || !t.MatchesLanguage(b.Language()) {
			continue
		}
		candidates = append(candidates, a)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].FinalCPM().Equal(candidates[j].FinalCPM()) {
			return candidates[i].FinalCPM().GreaterThan(candidates[j].FinalCPM())
		}
		if !candidates[i].CreatedAt().Equal(candidates[j].CreatedAt()) {
			return candidates[i].CreatedAt().Before(candidates[j].CreatedAt())
		}
		return candidates[i].RemainingBudget().LessThan(candidates[j].RemainingBudget())
	})
	return candidates, nil
}

// deliver accounts one impression for the candidate in a single transaction:
// conditional budget decrement, impression row, audience upsert, owner credit
// and bot counters. errCandidateTaken means a concurrent delivery won the
// last budget slice.
func (s *Service) deliver(ctx context.Context, b *bot.Bot, a *ad.Ad, cmd ServeCommand) (*ServeResponse, error) {
	rev := pricing.CalculateImpressionRevenue(a.FinalCPM(), s.settings.PlatformFeePercentage(ctx))

	var (
		imp       *delivery.Impression
		completed *ad.Ad
	)
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.adRepo.ApplyDelivery(txCtx, a.ID(), rev.RevenuePerImpression)
		if err != nil {
			return err
		}
		if !ok {
			return errCandidateTaken
		}

		imp, err = delivery.NewImpression(a.ID(), b.ID(), cmd.TelegramUserID, cmd.Profile,
			rev.RevenuePerImpression, rev.PlatformFee, rev.BotOwnerEarns)
		if err != nil {
			return err
		}
		if err := s.impRepo.Create(txCtx, imp); err != nil {
			return fmt.Errorf("failed to record impression: %w", err)
		}

		bu, err := delivery.NewBotUser(b.ID(), cmd.TelegramUserID, cmd.Profile)
		if err != nil {
			return err
		}
		if err := s.botUserRepo.Upsert(txCtx, bu); err != nil {
			return fmt.Errorf("failed to upsert bot user: %w", err)
		}

		if _, err := s.walletSvc.CreditEarnings(txCtx, b.OwnerID(), rev.BotOwnerEarns,
			appWallet.ImpressionRef(imp.SID()), "Ad delivery earnings"); err != nil {
			return err
		}

		b.MarkServed(imp.CreatedAt())
		if err := b.AddEarnings(rev.BotOwnerEarns); err != nil {
			return err
		}
		if err := s.botRepo.Update(txCtx, b); err != nil {
			return fmt.Errorf("failed to update bot counters: %w", err)
		}

		// Close the ad out when this impression was the last one it could
		// afford or needed.
		fresh, err := s.adRepo.GetByID(txCtx, a.ID())
		if err != nil {
			return err
		}
		if fresh.DeliveredImpressions() >= fresh.TargetImpressions() ||
			fresh.RemainingBudget().LessThan(rev.RevenuePerImpression) {
			if err := fresh.Complete(); err == nil {
				// Rounding can leave a sliver the ad cannot spend; give it
				// back to the advertiser.
				if leftover := fresh.RemainingBudget(); leftover.IsPositive() {
					if _, err := s.walletSvc.ReturnBudget(txCtx, fresh.AdvertiserID(), leftover,
						appWallet.AdRef(fresh.SID()), "Unspent ad budget"); err != nil {
						return err
					}
					fresh.SyncDeliveryCounters(fresh.DeliveredImpressions(), decimal.Zero)
				}
				if err := s.adRepo.Update(txCtx, fresh); err != nil {
					return err
				}
				completed = fresh
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed != nil {
		s.notifyCompleted(ctx, completed)
	}

	msg, err := s.builder.Build(a, b.SID(), cmd.TelegramUserID)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("ad delivered",
		"ad_sid", a.SID(),
		"bot_sid", b.SID(),
		"impression_sid", imp.SID(),
		"revenue", rev.RevenuePerImpression,
		"owner_earns", rev.BotOwnerEarns)
	return &ServeResponse{
		AdID:         a.SID(),
		ImpressionID: imp.SID(),
		Message:      msg,
	}, nil
}

func (s *Service) notifyCompleted(ctx context.Context, a *ad.Ad) {
	s.logger.Infow("ad completed", "ad_sid", a.SID(), "delivered", a.DeliveredImpressions())
	if s.dispatcher == nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, a.AdvertiserID())
	if err != nil {
		return
	}
	s.dispatcher.AdCompleted(
		appNotification.Recipient{TelegramID: owner.TelegramID(), Locale: owner.Locale()},
		appNotification.AdDisplayTitle(a.Text(), a.SID()),
		a.DeliveredImpressions(),
	)
}
