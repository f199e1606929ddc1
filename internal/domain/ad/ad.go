package ad

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// Ad is the advertiser creative plus its priced order and delivery counters.
// Content and order terms are only mutable in DRAFT; once submitted the ad
// moves through moderation and delivery via the status graph, and every
// money-moving transition pairs with exactly one wallet operation in the
// application layer.
type Ad struct {
	id           uint
	sid          string
	advertiserID uint

	contentType vo.ContentType
	text        string
	htmlContent string
	mediaURL    string
	mediaType   string
	buttons     []vo.Button
	poll        *vo.Poll
	category    string

	selectedTierID    *uint
	targetImpressions int64
	baseCPM           decimal.Decimal
	cpmBid            decimal.Decimal
	finalCPM          decimal.Decimal
	totalCost         decimal.Decimal
	platformFee       decimal.Decimal
	botOwnerRevenue   decimal.Decimal

	deliveredImpressions int64
	remainingBudget      decimal.Decimal

	targeting vo.Targeting
	schedule  vo.Schedule

	status          vo.AdStatus
	moderatedBy     *uint
	moderatedAt     *time.Time
	rejectionReason string
	isArchived      bool

	startedAt   *time.Time
	completedAt *time.Time

	events []interface{}
	mu     sync.Mutex

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewAdParams carries the advertiser's draft input.
type NewAdParams struct {
	AdvertiserID      uint
	ContentType       vo.ContentType
	Text              string
	HTMLContent       string
	MediaURL          string
	MediaType         string
	Buttons           []vo.Button
	Poll              *vo.Poll
	Category          string
	SelectedTierID    *uint
	TargetImpressions int64
	CPMBid            decimal.Decimal
	Targeting         vo.Targeting
	Schedule          vo.Schedule
}

// NewAd creates a draft ad. Pricing is applied separately once the order has
// been run through the pricing engine.
func NewAd(params NewAdParams) (*Ad, error) {
	if params.AdvertiserID == 0 {
		return nil, fmt.Errorf("advertiser ID is required")
	}
	if !params.ContentType.IsValid() {
		return nil, fmt.Errorf("invalid content type: %s", params.ContentType)
	}
	if err := validateCreative(params.ContentType, params.Text, params.MediaURL, params.Poll); err != nil {
		return nil, err
	}
	if len(params.Buttons) > vo.MaxButtons {
		return nil, fmt.Errorf("at most %d buttons allowed", vo.MaxButtons)
	}
	if params.TargetImpressions <= 0 {
		return nil, fmt.Errorf("target impressions must be positive")
	}
	if params.CPMBid.IsNegative() {
		return nil, fmt.Errorf("cpm bid cannot be negative")
	}

	now := biztime.NowUTC()
	return &Ad{
		sid:               id.NewAdSID(),
		advertiserID:      params.AdvertiserID,
		contentType:       params.ContentType,
		text:              params.Text,
		htmlContent:       params.HTMLContent,
		mediaURL:          params.MediaURL,
		mediaType:         params.MediaType,
		buttons:           append([]vo.Button(nil), params.Buttons...),
		poll:              params.Poll,
		category:          strings.TrimSpace(strings.ToLower(params.Category)),
		selectedTierID:    params.SelectedTierID,
		targetImpressions: params.TargetImpressions,
		cpmBid:            params.CPMBid,
		targeting:         params.Targeting,
		schedule:          params.Schedule,
		status:            vo.AdStatusDraft,
		events:            []interface{}{},
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func validateCreative(contentType vo.ContentType, text, mediaURL string, poll *vo.Poll) error {
	if contentType.RequiresMedia() && mediaURL == "" {
		return fmt.Errorf("media content requires a media url")
	}
	if poll == nil && strings.TrimSpace(text) == "" && mediaURL == "" {
		return fmt.Errorf("ad needs text, media or a poll")
	}
	return nil
}

// SetPricing stores the engine's quote on the ad. Only drafts can be repriced.
func (a *Ad) SetPricing(baseCPM, cpmBid, finalCPM, totalCost, platformFee, botOwnerRevenue decimal.Decimal) error {
	if a.status != vo.AdStatusDraft {
		return ErrNotEditable
	}
	if totalCost.IsNegative() || finalCPM.IsNegative() {
		return fmt.Errorf("pricing cannot be negative")
	}

	a.baseCPM = baseCPM
	a.cpmBid = cpmBid
	a.finalCPM = finalCPM
	a.totalCost = totalCost
	a.platformFee = platformFee
	a.botOwnerRevenue = botOwnerRevenue
	a.touch()
	return nil
}

// UpdateContentParams carries draft content changes.
type UpdateContentParams struct {
	ContentType vo.ContentType
	Text        string
	HTMLContent string
	MediaURL    string
	MediaType   string
	Buttons     []vo.Button
	Poll        *vo.Poll
	Category    string
}

// UpdateContent replaces the creative. Only drafts are editable.
func (a *Ad) UpdateContent(params UpdateContentParams) error {
	if a.status != vo.AdStatusDraft {
		return ErrNotEditable
	}
	if !params.ContentType.IsValid() {
		return fmt.Errorf("invalid content type: %s", params.ContentType)
	}
	if err := validateCreative(params.ContentType, params.Text, params.MediaURL, params.Poll); err != nil {
		return err
	}
	if len(params.Buttons) > vo.MaxButtons {
		return fmt.Errorf("at most %d buttons allowed", vo.MaxButtons)
	}

	a.contentType = params.ContentType
	a.text = params.Text
	a.htmlContent = params.HTMLContent
	a.mediaURL = params.MediaURL
	a.mediaType = params.MediaType
	a.buttons = append([]vo.Button(nil), params.Buttons...)
	a.poll = params.Poll
	a.category = strings.TrimSpace(strings.ToLower(params.Category))
	a.touch()
	return nil
}

// UpdateOrder replaces the priced order inputs. The caller must reprice the
// ad afterwards. Only drafts are editable.
func (a *Ad) UpdateOrder(selectedTierID *uint, targetImpressions int64, cpmBid decimal.Decimal, targeting vo.Targeting) error {
	if a.status != vo.AdStatusDraft {
		return ErrNotEditable
	}
	if targetImpressions <= 0 {
		return fmt.Errorf("target impressions must be positive")
	}
	if cpmBid.IsNegative() {
		return fmt.Errorf("cpm bid cannot be negative")
	}

	a.selectedTierID = selectedTierID
	a.targetImpressions = targetImpressions
	a.cpmBid = cpmBid
	a.targeting = targeting
	a.touch()
	return nil
}

// UpdateSchedule replaces the serving window. Only drafts are editable.
func (a *Ad) UpdateSchedule(schedule vo.Schedule) error {
	if a.status != vo.AdStatusDraft {
		return ErrNotEditable
	}
	a.schedule = schedule
	a.touch()
	return nil
}

// Submit sends the draft to moderation. The caller pairs this with the
// wallet reserve of TotalCost.
func (a *Ad) Submit() error {
	if err := a.transitionTo(vo.AdStatusSubmitted); err != nil {
		return err
	}

	a.rejectionReason = ""
	a.remainingBudget = a.totalCost
	a.touch()
	a.recordEvent(NewAdSubmittedEvent(a.id, a.sid, a.advertiserID, a.totalCost))
	return nil
}

// MarkPendingReview claims the ad for a moderator.
func (a *Ad) MarkPendingReview() error {
	if err := a.transitionTo(vo.AdStatusPendingReview); err != nil {
		return err
	}
	a.touch()
	return nil
}

// Approve accepts the ad: it passes through APPROVED and lands in RUNNING
// right away, or in SCHEDULED when the serving window opens later. The caller
// pairs this with the wallet reserve confirmation.
func (a *Ad) Approve(moderatorID uint) error {
	if !a.status.IsUnderReview() {
		return fmt.Errorf("cannot approve ad in status %s", a.status)
	}
	if err := a.transitionTo(vo.AdStatusApproved); err != nil {
		return err
	}

	now := biztime.NowUTC()
	a.moderatedBy = &moderatorID
	a.moderatedAt = &now

	next := vo.AdStatusRunning
	if a.schedule.StartsAfter(now) {
		next = vo.AdStatusScheduled
	}
	if err := a.transitionTo(next); err != nil {
		return err
	}
	if next == vo.AdStatusRunning {
		a.startedAt = &now
	}
	a.touch()
	a.recordEvent(NewAdApprovedEvent(a.id, a.sid, a.advertiserID, moderatorID, next.String()))
	return nil
}

// Reject declines the ad with a reason the advertiser sees. The caller pairs
// this with the wallet escrow refund.
func (a *Ad) Reject(moderatorID uint, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("rejection reason is required")
	}
	if err := a.transitionTo(vo.AdStatusRejected); err != nil {
		return err
	}

	now := biztime.NowUTC()
	a.moderatedBy = &moderatorID
	a.moderatedAt = &now
	a.rejectionReason = reason
	a.touch()
	a.recordEvent(NewAdRejectedEvent(a.id, a.sid, a.advertiserID, moderatorID, reason))
	return nil
}

// RequestEdit sends the ad back to draft with moderator feedback. The caller
// pairs this with the wallet escrow refund.
func (a *Ad) RequestEdit(moderatorID uint, feedback string) error {
	if strings.TrimSpace(feedback) == "" {
		return fmt.Errorf("edit feedback is required")
	}
	if !a.status.IsUnderReview() {
		return fmt.Errorf("cannot request edits for ad in status %s", a.status)
	}
	if err := a.transitionTo(vo.AdStatusDraft); err != nil {
		return err
	}

	now := biztime.NowUTC()
	a.moderatedBy = &moderatorID
	a.moderatedAt = &now
	a.rejectionReason = feedback
	a.touch()
	a.recordEvent(NewAdEditRequestedEvent(a.id, a.sid, a.advertiserID, moderatorID, feedback))
	return nil
}

// Start flips a scheduled ad to RUNNING once its window opens.
func (a *Ad) Start() error {
	if err := a.transitionTo(vo.AdStatusRunning); err != nil {
		return err
	}

	if a.startedAt == nil {
		now := biztime.NowUTC()
		a.startedAt = &now
	}
	a.touch()
	return nil
}

// Pause suspends delivery; Resume continues it.
func (a *Ad) Pause() error {
	if err := a.transitionTo(vo.AdStatusPaused); err != nil {
		return err
	}
	a.touch()
	return nil
}

func (a *Ad) Resume() error {
	if a.status != vo.AdStatusPaused {
		return fmt.Errorf("cannot resume ad in status %s", a.status)
	}
	if err := a.transitionTo(vo.AdStatusRunning); err != nil {
		return err
	}
	a.touch()
	return nil
}

// Complete finishes delivery, either on target or because budget ran out.
func (a *Ad) Complete() error {
	if err := a.transitionTo(vo.AdStatusCompleted); err != nil {
		return err
	}

	now := biztime.NowUTC()
	a.completedAt = &now
	a.touch()
	a.recordEvent(NewAdCompletedEvent(a.id, a.sid, a.advertiserID, a.deliveredImpressions))
	return nil
}

// Cancel terminates an undelivered ad. The caller settles any held or
// confirmed funds.
func (a *Ad) Cancel() error {
	if err := a.transitionTo(vo.AdStatusCancelled); err != nil {
		return err
	}
	a.touch()
	return nil
}

// ApplyDelivery accounts one served impression and reports whether delivery
// just finished. The hot path performs the equivalent mutation with a
// conditional UPDATE; this method keeps the rule in one place for everything
// else.
func (a *Ad) ApplyDelivery(revenue decimal.Decimal) (completed bool, err error) {
	if a.status != vo.AdStatusRunning {
		return false, fmt.Errorf("cannot deliver ad in status %s", a.status)
	}
	if revenue.IsNegative() {
		return false, fmt.Errorf("delivery revenue cannot be negative")
	}
	if a.remainingBudget.LessThan(revenue) {
		return false, ErrBudgetExhausted
	}

	a.deliveredImpressions++
	a.remainingBudget = a.remainingBudget.Sub(revenue)
	a.touch()

	if a.deliveredImpressions >= a.targetImpressions || a.remainingBudget.IsZero() {
		return true, a.Complete()
	}
	return false, nil
}

// SyncDeliveryCounters overwrites the delivery counters from storage after a
// conditional UPDATE bypassed the aggregate.
func (a *Ad) SyncDeliveryCounters(delivered int64, remaining decimal.Decimal) {
	a.deliveredImpressions = delivered
	a.remainingBudget = remaining
}

// IsServableAt reports whether the ad may serve at the instant: running,
// inside its schedule, with budget and impressions left.
func (a *Ad) IsServableAt(now time.Time) bool {
	return a.status.IsRunning() &&
		a.schedule.IsActiveAt(now) &&
		a.deliveredImpressions < a.targetImpressions &&
		a.remainingBudget.IsPositive()
}

func (a *Ad) Archive() {
	if a.isArchived {
		return
	}
	a.isArchived = true
	a.touch()
}

func (a *Ad) Unarchive() {
	if !a.isArchived {
		return
	}
	a.isArchived = false
	a.touch()
}

func (a *Ad) transitionTo(target vo.AdStatus) error {
	return a.status.TransitionTo(target)
}

func (a *Ad) touch() {
	a.updatedAt = biztime.NowUTC()
	a.version++
}

// recordEvent records a domain event
func (a *Ad) recordEvent(event interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

// GetEvents returns and clears recorded domain events
func (a *Ad) GetEvents() []interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	events := a.events
	a.events = []interface{}{}
	return events
}

func (a *Ad) ID() uint {
	return a.id
}

func (a *Ad) SID() string {
	return a.sid
}

func (a *Ad) AdvertiserID() uint {
	return a.advertiserID
}

func (a *Ad) ContentType() vo.ContentType {
	return a.contentType
}

func (a *Ad) Text() string {
	return a.text
}

func (a *Ad) HTMLContent() string {
	return a.htmlContent
}

func (a *Ad) MediaURL() string {
	return a.mediaURL
}

func (a *Ad) MediaType() string {
	return a.mediaType
}

func (a *Ad) Buttons() []vo.Button {
	return append([]vo.Button(nil), a.buttons...)
}

func (a *Ad) Poll() *vo.Poll {
	return a.poll
}

func (a *Ad) Category() string {
	return a.category
}

func (a *Ad) SelectedTierID() *uint {
	return a.selectedTierID
}

func (a *Ad) TargetImpressions() int64 {
	return a.targetImpressions
}

func (a *Ad) DeliveredImpressions() int64 {
	return a.deliveredImpressions
}

func (a *Ad) BaseCPM() decimal.Decimal {
	return a.baseCPM
}

func (a *Ad) CPMBid() decimal.Decimal {
	return a.cpmBid
}

func (a *Ad) FinalCPM() decimal.Decimal {
	return a.finalCPM
}

func (a *Ad) TotalCost() decimal.Decimal {
	return a.totalCost
}

func (a *Ad) PlatformFee() decimal.Decimal {
	return a.platformFee
}

func (a *Ad) BotOwnerRevenue() decimal.Decimal {
	return a.botOwnerRevenue
}

func (a *Ad) RemainingBudget() decimal.Decimal {
	return a.remainingBudget
}

func (a *Ad) Targeting() vo.Targeting {
	return a.targeting
}

func (a *Ad) Schedule() vo.Schedule {
	return a.schedule
}

func (a *Ad) Status() vo.AdStatus {
	return a.status
}

func (a *Ad) ModeratedBy() *uint {
	return a.moderatedBy
}

func (a *Ad) ModeratedAt() *time.Time {
	return a.moderatedAt
}

func (a *Ad) RejectionReason() string {
	return a.rejectionReason
}

func (a *Ad) IsArchived() bool {
	return a.isArchived
}

func (a *Ad) StartedAt() *time.Time {
	return a.startedAt
}

func (a *Ad) CompletedAt() *time.Time {
	return a.completedAt
}

func (a *Ad) Version() int {
	return a.version
}

func (a *Ad) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Ad) UpdatedAt() time.Time {
	return a.updatedAt
}

// SetID sets the ad ID after persistence (used by repository after Create)
func (a *Ad) SetID(id uint) {
	a.id = id
}

// AdReconstructParams carries persisted state for rebuilding an Ad.
type AdReconstructParams struct {
	ID           uint
	SID          string
	AdvertiserID uint

	ContentType vo.ContentType
	Text        string
	HTMLContent string
	MediaURL    string
	MediaType   string
	Buttons     []vo.Button
	Poll        *vo.Poll
	Category    string

	SelectedTierID    *uint
	TargetImpressions int64
	BaseCPM           decimal.Decimal
	CPMBid            decimal.Decimal
	FinalCPM          decimal.Decimal
	TotalCost         decimal.Decimal
	PlatformFee       decimal.Decimal
	BotOwnerRevenue   decimal.Decimal

	DeliveredImpressions int64
	RemainingBudget      decimal.Decimal

	Targeting vo.Targeting
	Schedule  vo.Schedule

	Status          vo.AdStatus
	ModeratedBy     *uint
	ModeratedAt     *time.Time
	RejectionReason string
	IsArchived      bool

	StartedAt   *time.Time
	CompletedAt *time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconstructAd rebuilds an Ad from persistence without validation.
func ReconstructAd(params AdReconstructParams) *Ad {
	return &Ad{
		id:                   params.ID,
		sid:                  params.SID,
		advertiserID:         params.AdvertiserID,
		contentType:          params.ContentType,
		text:                 params.Text,
		htmlContent:          params.HTMLContent,
		mediaURL:             params.MediaURL,
		mediaType:            params.MediaType,
		buttons:              params.Buttons,
		poll:                 params.Poll,
		category:             params.Category,
		selectedTierID:       params.SelectedTierID,
		targetImpressions:    params.TargetImpressions,
		baseCPM:              params.BaseCPM,
		cpmBid:               params.CPMBid,
		finalCPM:             params.FinalCPM,
		totalCost:            params.TotalCost,
		platformFee:          params.PlatformFee,
		botOwnerRevenue:      params.BotOwnerRevenue,
		deliveredImpressions: params.DeliveredImpressions,
		remainingBudget:      params.RemainingBudget,
		targeting:            params.Targeting,
		schedule:             params.Schedule,
		status:               params.Status,
		moderatedBy:          params.ModeratedBy,
		moderatedAt:          params.ModeratedAt,
		rejectionReason:      params.RejectionReason,
		isArchived:           params.IsArchived,
		startedAt:            params.StartedAt,
		completedAt:          params.CompletedAt,
		events:               []interface{}{},
		version:              params.Version,
		createdAt:            params.CreatedAt,
		updatedAt:            params.UpdatedAt,
	}
}
