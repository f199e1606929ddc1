package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	adUC "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/ad/usecases"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// AdHandler is the advertiser-facing campaign surface: drafting, submission
// into moderation, lifecycle controls and stats.
type AdHandler struct {
	createUC  *adUC.CreateAdUseCase
	getUC     *adUC.GetAdUseCase
	listUC    *adUC.ListAdsUseCase
	updateUC  *adUC.UpdateAdUseCase
	submitUC  *adUC.SubmitAdUseCase
	pauseUC   *adUC.PauseAdUseCase
	resumeUC  *adUC.ResumeAdUseCase
	cancelUC  *adUC.CancelAdUseCase
	archiveUC *adUC.ArchiveAdUseCase
	clickRepo delivery.ClickRepository
	logger    logger.Interface
}

func NewAdHandler(
	createUC *adUC.CreateAdUseCase,
	getUC *adUC.GetAdUseCase,
	listUC *adUC.ListAdsUseCase,
	updateUC *adUC.UpdateAdUseCase,
	submitUC *adUC.SubmitAdUseCase,
	pauseUC *adUC.PauseAdUseCase,
	resumeUC *adUC.ResumeAdUseCase,
	cancelUC *adUC.CancelAdUseCase,
	archiveUC *adUC.ArchiveAdUseCase,
	clickRepo delivery.ClickRepository,
	logger logger.Interface,
) *AdHandler {
	return &AdHandler{
		createUC:  createUC,
		getUC:     getUC,
		listUC:    listUC,
		updateUC:  updateUC,
		submitUC:  submitUC,
		pauseUC:   pauseUC,
		resumeUC:  resumeUC,
		cancelUC:  cancelUC,
		archiveUC: archiveUC,
		clickRepo: clickRepo,
		logger:    logger,
	}
}

type buttonRequest struct {
	Text  string `json:"text" binding:"required"`
	URL   string `json:"url" binding:"required"`
	Color string `json:"color"`
}

type pollRequest struct {
	Question        string   `json:"question" binding:"required"`
	Options         []string `json:"options" binding:"required"`
	IsAnonymous     bool     `json:"is_anonymous"`
	MultipleAnswers bool     `json:"multiple_answers"`
}

type scheduleRequest struct {
	Start       *time.Time     `json:"start"`
	End         *time.Time     `json:"end"`
	Timezone    string         `json:"timezone"`
	ActiveDays  []int          `json:"active_days"`
	ActiveHours []vo.HourRange `json:"active_hours"`
}

type targetingRequest struct {
	AISegments      []string `json:"ai_segments"`
	SpecificBotIDs  []uint   `json:"specific_bot_ids"`
	ExcludedUserIDs []int64  `json:"excluded_user_ids"`
	Languages       []string `json:"languages"`
}

type contentRequest struct {
	ContentType string          `json:"content_type" binding:"required"`
	Text        string          `json:"text"`
	HTMLContent string          `json:"html_content"`
	MediaURL    string          `json:"media_url"`
	MediaType   string          `json:"media_type"`
	Buttons     []buttonRequest `json:"buttons"`
	Poll        *pollRequest    `json:"poll"`
	Category    string          `json:"category"`
}

type orderRequest struct {
	TierID            string           `json:"tier_id"`
	TargetImpressions int64            `json:"target_impressions"`
	CPMBid            *decimal.Decimal `json:"cpm_bid"`
	Targeting         targetingRequest `json:"targeting"`
}

type createAdRequest struct {
	Content  contentRequest   `json:"content" binding:"required"`
	Order    orderRequest     `json:"order" binding:"required"`
	Schedule *scheduleRequest `json:"schedule"`
}

func (h *AdHandler) Create(c *gin.Context) {
	var req createAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}
	if err := validateContentURLs(req.Content); err != nil {
		BadRequest(c, err.Error())
		return
	}

	a, err := h.createUC.Execute(c.Request.Context(), adUC.CreateAdCommand{
		AdvertiserID: CurrentUserID(c),
		Content:      toContentInput(req.Content),
		Order:        toOrderInput(req.Order),
		Schedule:     toScheduleInput(req.Schedule),
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, ToAdResponse(a), "ad draft created")
}

func (h *AdHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixAd, "ad")
	if err != nil {
		return
	}

	a, err := h.getUC.Execute(c.Request.Context(), adUC.GetAdQuery{
		AdSID:       sid,
		RequesterID: CurrentUserID(c),
		IsAdmin:     IsStaff(c),
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", ToAdResponse(a))
}

func (h *AdHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	q := adUC.ListAdsQuery{
		AdvertiserID: CurrentUserID(c),
		Status:       c.Query("status"),
		Category:     c.Query("category"),
		Page:         p.Page,
		PageSize:     p.PageSize,
	}
	if archived := c.Query("archived"); archived != "" {
		v := archived == "true"
		q.Archived = &v
	}

	ads, total, err := h.listUC.Execute(c.Request.Context(), q)
	if err != nil {
		RespondError(c, err)
		return
	}

	items := make([]*AdResponse, 0, len(ads))
	for _, a := range ads {
		items = append(items, ToAdResponse(a))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

type updateAdRequest struct {
	Content  *contentRequest  `json:"content"`
	Order    *orderRequest    `json:"order"`
	Schedule *scheduleRequest `json:"schedule"`
}

func (h *AdHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixAd, "ad")
	if err != nil {
		return
	}

	var req updateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	cmd := adUC.UpdateAdCommand{
		AdSID:        sid,
		AdvertiserID: CurrentUserID(c),
		Schedule:     toScheduleInput(req.Schedule),
	}
	if req.Content != nil {
		if err := validateContentURLs(*req.Content); err != nil {
			BadRequest(c, err.Error())
			return
		}
		content := toContentInput(*req.Content)
		cmd.Content = &content
	}
	if req.Order != nil {
		order := toOrderInput(*req.Order)
		cmd.Order = &order
	}

	a, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ad updated", ToAdResponse(a))
}

// Submit escrows the full budget and queues the ad for review.
func (h *AdHandler) Submit(c *gin.Context) {
	h.lifecycle(c, func(sid string) (*ad.Ad, error) {
		return h.submitUC.Execute(c.Request.Context(), adUC.SubmitAdCommand{
			AdSID:        sid,
			AdvertiserID: CurrentUserID(c),
		})
	}, "ad submitted for review")
}

func (h *AdHandler) Pause(c *gin.Context) {
	h.lifecycle(c, func(sid string) (*ad.Ad, error) {
		return h.pauseUC.Execute(c.Request.Context(), adUC.PauseAdCommand{
			AdSID:        sid,
			AdvertiserID: CurrentUserID(c),
		})
	}, "ad paused")
}

func (h *AdHandler) Resume(c *gin.Context) {
	h.lifecycle(c, func(sid string) (*ad.Ad, error) {
		return h.resumeUC.Execute(c.Request.Context(), adUC.ResumeAdCommand{
			AdSID:        sid,
			AdvertiserID: CurrentUserID(c),
		})
	}, "ad resumed")
}

// Cancel tears the ad down and returns the unspent money.
func (h *AdHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, func(sid string) (*ad.Ad, error) {
		return h.cancelUC.Execute(c.Request.Context(), adUC.CancelAdCommand{
			AdSID:       sid,
			RequesterID: CurrentUserID(c),
			IsAdmin:     IsStaff(c),
		})
	}, "ad cancelled")
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

func (h *AdHandler) Archive(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixAd, "ad")
	if err != nil {
		return
	}
	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	a, err := h.archiveUC.Execute(c.Request.Context(), adUC.ArchiveAdCommand{
		AdSID:        sid,
		AdvertiserID: CurrentUserID(c),
		Archived:     req.Archived,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ad archive flag updated", ToAdResponse(a))
}

type adStatsResponse struct {
	TargetImpressions    int64  `json:"target_impressions"`
	DeliveredImpressions int64  `json:"delivered_impressions"`
	Clicks               int64  `json:"clicks"`
	CTR                  string `json:"ctr"`
	TotalCost            string `json:"total_cost"`
	RemainingBudget      string `json:"remaining_budget"`
	Spent                string `json:"spent"`
}

func (h *AdHandler) Stats(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixAd, "ad")
	if err != nil {
		return
	}

	a, err := h.getUC.Execute(c.Request.Context(), adUC.GetAdQuery{
		AdSID:       sid,
		RequesterID: CurrentUserID(c),
		IsAdmin:     IsStaff(c),
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	clicks, err := h.clickRepo.CountByAd(c.Request.Context(), a.ID())
	if err != nil {
		RespondError(c, err)
		return
	}

	ctr := decimal.Zero
	if a.DeliveredImpressions() > 0 {
		ctr = decimal.NewFromInt(clicks).
			Div(decimal.NewFromInt(a.DeliveredImpressions())).
			Round(4)
	}
	utils.SuccessResponse(c, http.StatusOK, "", adStatsResponse{
		TargetImpressions:    a.TargetImpressions(),
		DeliveredImpressions: a.DeliveredImpressions(),
		Clicks:               clicks,
		CTR:                  ctr.String(),
		TotalCost:            a.TotalCost().String(),
		RemainingBudget:      a.RemainingBudget().String(),
		Spent:                a.TotalCost().Sub(a.RemainingBudget()).String(),
	})
}

func (h *AdHandler) lifecycle(c *gin.Context, op func(sid string) (*ad.Ad, error), message string) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixAd, "ad")
	if err != nil {
		return
	}
	a, err := op(sid)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, ToAdResponse(a))
}

// --- request/response mapping ---

// validateContentURLs rejects creatives whose media or button links point at
// non-public hosts before the draft ever reaches the domain layer.
func validateContentURLs(req contentRequest) error {
	if req.MediaURL != "" {
		if err := utils.ValidateMediaURL(req.MediaURL); err != nil {
			return err
		}
	}
	for _, b := range req.Buttons {
		if b.URL == "" {
			continue
		}
		if err := utils.ValidateButtonURL(b.URL); err != nil {
			return err
		}
	}
	return nil
}

func toContentInput(req contentRequest) adUC.ContentInput {
	buttons := make([]adUC.ButtonInput, 0, len(req.Buttons))
	for _, b := range req.Buttons {
		buttons = append(buttons, adUC.ButtonInput{Text: b.Text, URL: b.URL, Color: b.Color})
	}
	in := adUC.ContentInput{
		ContentType: req.ContentType,
		Text:        req.Text,
		HTMLContent: req.HTMLContent,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
		Buttons:     buttons,
		Category:    req.Category,
	}
	if req.Poll != nil {
		in.Poll = &adUC.PollInput{
			Question:        req.Poll.Question,
			Options:         req.Poll.Options,
			IsAnonymous:     req.Poll.IsAnonymous,
			MultipleAnswers: req.Poll.MultipleAnswers,
		}
	}
	return in
}

func toOrderInput(req orderRequest) adUC.OrderInput {
	in := adUC.OrderInput{
		TierSID:           req.TierID,
		TargetImpressions: req.TargetImpressions,
		Targeting: adUC.TargetingInput{
			AISegments:      req.Targeting.AISegments,
			SpecificBotIDs:  req.Targeting.SpecificBotIDs,
			ExcludedUserIDs: req.Targeting.ExcludedUserIDs,
			Languages:       req.Targeting.Languages,
		},
	}
	if req.CPMBid != nil {
		in.CPMBid = *req.CPMBid
	}
	return in
}

func toScheduleInput(req *scheduleRequest) *adUC.ScheduleInput {
	if req == nil {
		return nil
	}
	return &adUC.ScheduleInput{
		Start:       req.Start,
		End:         req.End,
		Timezone:    req.Timezone,
		ActiveDays:  req.ActiveDays,
		ActiveHours: req.ActiveHours,
	}
}

type buttonResponse struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Color string `json:"color,omitempty"`
}

type pollResponse struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	IsAnonymous     bool     `json:"is_anonymous"`
	MultipleAnswers bool     `json:"multiple_answers"`
}

type scheduleResponse struct {
	Start       *time.Time     `json:"start,omitempty"`
	End         *time.Time     `json:"end,omitempty"`
	Timezone    string         `json:"timezone,omitempty"`
	ActiveDays  []int          `json:"active_days,omitempty"`
	ActiveHours []vo.HourRange `json:"active_hours,omitempty"`
}

type AdResponse struct {
	ID                   string           `json:"id"`
	Status               string           `json:"status"`
	ContentType          string           `json:"content_type"`
	Text                 string           `json:"text,omitempty"`
	HTMLContent          string           `json:"html_content,omitempty"`
	MediaURL             string           `json:"media_url,omitempty"`
	MediaType            string           `json:"media_type,omitempty"`
	Buttons              []buttonResponse `json:"buttons,omitempty"`
	Poll                 *pollResponse    `json:"poll,omitempty"`
	Category             string           `json:"category,omitempty"`
	TargetImpressions    int64            `json:"target_impressions"`
	DeliveredImpressions int64            `json:"delivered_impressions"`
	BaseCPM              string           `json:"base_cpm"`
	CPMBid               string           `json:"cpm_bid"`
	FinalCPM             string           `json:"final_cpm"`
	TotalCost            string           `json:"total_cost"`
	RemainingBudget      string           `json:"remaining_budget"`
	Targeting            targetingRequest `json:"targeting"`
	Schedule             scheduleResponse `json:"schedule"`
	RejectionReason      string           `json:"rejection_reason,omitempty"`
	IsArchived           bool             `json:"is_archived"`
	StartedAt            *time.Time       `json:"started_at,omitempty"`
	CompletedAt          *time.Time       `json:"completed_at,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

func ToAdResponse(a *ad.Ad) *AdResponse {
	buttons := make([]buttonResponse, 0, len(a.Buttons()))
	for _, b := range a.Buttons() {
		buttons = append(buttons, buttonResponse{Text: b.Text(), URL: b.URL(), Color: string(b.Color())})
	}

	resp := &AdResponse{
		ID:                   a.SID(),
		Status:               a.Status().String(),
		ContentType:          string(a.ContentType()),
		Text:                 a.Text(),
		HTMLContent:          a.HTMLContent(),
		MediaURL:             a.MediaURL(),
		MediaType:            a.MediaType(),
		Buttons:              buttons,
		Category:             a.Category(),
		TargetImpressions:    a.TargetImpressions(),
		DeliveredImpressions: a.DeliveredImpressions(),
		BaseCPM:              a.BaseCPM().String(),
		CPMBid:               a.CPMBid().String(),
		FinalCPM:             a.FinalCPM().String(),
		TotalCost:            a.TotalCost().String(),
		RemainingBudget:      a.RemainingBudget().String(),
		Targeting: targetingRequest{
			AISegments:      a.Targeting().AISegments(),
			SpecificBotIDs:  a.Targeting().SpecificBotIDs(),
			ExcludedUserIDs: a.Targeting().ExcludedUserIDs(),
			Languages:       a.Targeting().Languages(),
		},
		Schedule: scheduleResponse{
			Start:       a.Schedule().Start(),
			End:         a.Schedule().End(),
			Timezone:    a.Schedule().Timezone(),
			ActiveDays:  a.Schedule().ActiveDays(),
			ActiveHours: a.Schedule().ActiveHours(),
		},
		RejectionReason: a.RejectionReason(),
		IsArchived:      a.IsArchived(),
		StartedAt:       a.StartedAt(),
		CompletedAt:     a.CompletedAt(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
	if p := a.Poll(); p != nil {
		resp.Poll = &pollResponse{
			Question:        p.Question(),
			Options:         p.Options(),
			IsAnonymous:     p.IsAnonymous(),
			MultipleAnswers: p.MultipleAnswers(),
		}
	}
	return resp
}
