package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// buttonDoc is the JSON shape of one inline button inside the buttons column.
type buttonDoc struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Color string `json:"color,omitempty"`
}

// pollDoc is the JSON shape of the poll column.
type pollDoc struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	IsAnonymous     bool     `json:"is_anonymous"`
	MultipleAnswers bool     `json:"multiple_answers"`
}

// AdMapper provides mapping between ad entities and persistence models.
type AdMapper struct{}

// NewAdMapper creates a new ad mapper.
func NewAdMapper() *AdMapper {
	return &AdMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *AdMapper) ToModel(entity *ad.Ad) (*models.AdModel, error) {
	if entity == nil {
		return nil, nil
	}

	var buttonsJSON datatypes.JSON
	if buttons := entity.Buttons(); len(buttons) > 0 {
		docs := make([]buttonDoc, 0, len(buttons))
		for _, b := range buttons {
			docs = append(docs, buttonDoc{Text: b.Text(), URL: b.URL(), Color: b.Color().String()})
		}
		jsonBytes, err := json.Marshal(docs)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize buttons: %w", err)
		}
		buttonsJSON = jsonBytes
	}

	var pollJSON datatypes.JSON
	if poll := entity.Poll(); poll != nil {
		jsonBytes, err := json.Marshal(pollDoc{
			Question:        poll.Question(),
			Options:         poll.Options(),
			IsAnonymous:     poll.IsAnonymous(),
			MultipleAnswers: poll.MultipleAnswers(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to serialize poll: %w", err)
		}
		pollJSON = jsonBytes
	}

	var hoursJSON datatypes.JSON
	if hours := entity.Schedule().ActiveHours(); len(hours) > 0 {
		jsonBytes, err := json.Marshal(hours)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize active hours: %w", err)
		}
		hoursJSON = jsonBytes
	}

	targeting := entity.Targeting()
	schedule := entity.Schedule()

	return &models.AdModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		AdvertiserID: entity.AdvertiserID(),

		ContentType: entity.ContentType().String(),
		Text:        entity.Text(),
		HTMLContent: entity.HTMLContent(),
		MediaURL:    entity.MediaURL(),
		MediaType:   entity.MediaType(),
		Buttons:     buttonsJSON,
		Poll:        pollJSON,
		Category:    entity.Category(),

		SelectedTierID:    entity.SelectedTierID(),
		TargetImpressions: entity.TargetImpressions(),
		BaseCPM:           entity.BaseCPM(),
		CPMBid:            entity.CPMBid(),
		FinalCPM:          entity.FinalCPM(),
		TotalCost:         entity.TotalCost(),
		PlatformFee:       entity.PlatformFee(),
		BotOwnerRevenue:   entity.BotOwnerRevenue(),

		DeliveredImpressions: entity.DeliveredImpressions(),
		RemainingBudget:      entity.RemainingBudget(),

		AISegments:      models.StringArray(targeting.AISegments()),
		SpecificBotIDs:  models.UintArray(targeting.SpecificBotIDs()),
		ExcludedUserIDs: models.Int64Array(targeting.ExcludedUserIDs()),
		Languages:       models.StringArray(targeting.Languages()),

		ScheduleStart: schedule.Start(),
		ScheduleEnd:   schedule.End(),
		Timezone:      schedule.Timezone(),
		ActiveDays:    models.IntArray(schedule.ActiveDays()),
		ActiveHours:   hoursJSON,

		Status:          entity.Status().String(),
		ModeratedBy:     entity.ModeratedBy(),
		ModeratedAt:     entity.ModeratedAt(),
		RejectionReason: entity.RejectionReason(),
		IsArchived:      entity.IsArchived(),

		StartedAt:   entity.StartedAt(),
		CompletedAt: entity.CompletedAt(),

		Version:   entity.Version(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *AdMapper) ToDomain(model *models.AdModel) (*ad.Ad, error) {
	if model == nil {
		return nil, nil
	}

	var buttons []vo.Button
	if len(model.Buttons) > 0 {
		var docs []buttonDoc
		if err := json.Unmarshal(model.Buttons, &docs); err != nil {
			return nil, fmt.Errorf("failed to parse buttons: %w", err)
		}
		buttons = make([]vo.Button, 0, len(docs))
		for _, d := range docs {
			buttons = append(buttons, vo.ReconstructButton(d.Text, d.URL, vo.ButtonColor(d.Color)))
		}
	}

	var poll *vo.Poll
	if len(model.Poll) > 0 {
		var doc pollDoc
		if err := json.Unmarshal(model.Poll, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse poll: %w", err)
		}
		poll = vo.ReconstructPoll(doc.Question, doc.Options, doc.IsAnonymous, doc.MultipleAnswers)
	}

	var activeHours []vo.HourRange
	if len(model.ActiveHours) > 0 {
		if err := json.Unmarshal(model.ActiveHours, &activeHours); err != nil {
			return nil, fmt.Errorf("failed to parse active hours: %w", err)
		}
	}

	targeting := vo.ReconstructTargeting(
		model.AISegments,
		model.SpecificBotIDs,
		model.ExcludedUserIDs,
		model.Languages,
	)
	schedule := vo.ReconstructSchedule(
		model.ScheduleStart,
		model.ScheduleEnd,
		model.Timezone,
		model.ActiveDays,
		activeHours,
	)

	return ad.ReconstructAd(ad.AdReconstructParams{
		ID:           model.ID,
		SID:          model.SID,
		AdvertiserID: model.AdvertiserID,

		ContentType: vo.ContentType(model.ContentType),
		Text:        model.Text,
		HTMLContent: model.HTMLContent,
		MediaURL:    model.MediaURL,
		MediaType:   model.MediaType,
		Buttons:     buttons,
		Poll:        poll,
		Category:    model.Category,

		SelectedTierID:    model.SelectedTierID,
		TargetImpressions: model.TargetImpressions,
		BaseCPM:           model.BaseCPM,
		CPMBid:            model.CPMBid,
		FinalCPM:          model.FinalCPM,
		TotalCost:         model.TotalCost,
		PlatformFee:       model.PlatformFee,
		BotOwnerRevenue:   model.BotOwnerRevenue,

		DeliveredImpressions: model.DeliveredImpressions,
		RemainingBudget:      model.RemainingBudget,

		Targeting: targeting,
		Schedule:  schedule,

		Status:          vo.AdStatus(model.Status),
		ModeratedBy:     model.ModeratedBy,
		ModeratedAt:     model.ModeratedAt,
		RejectionReason: model.RejectionReason,
		IsArchived:      model.IsArchived,

		StartedAt:   model.StartedAt,
		CompletedAt: model.CompletedAt,

		Version:   model.Version,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to domain entities.
func (m *AdMapper) ToDomainList(modelList []*models.AdModel) ([]*ad.Ad, error) {
	if modelList == nil {
		return nil, nil
	}

	ads := make([]*ad.Ad, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		ads = append(ads, entity)
	}
	return ads, nil
}
