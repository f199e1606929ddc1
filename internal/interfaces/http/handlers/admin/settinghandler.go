package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appSetting "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// SettingHandler exposes the platform configuration knobs. Updates fan out to
// every instance through the setting change channel.
type SettingHandler struct {
	settingSvc *appSetting.Service
	logger     logger.Interface
}

func NewSettingHandler(settingSvc *appSetting.Service, logger logger.Interface) *SettingHandler {
	return &SettingHandler{
		settingSvc: settingSvc,
		logger:     logger,
	}
}

func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settingSvc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	items := make([]settingResponse, 0, len(settings))
	for _, s := range settings {
		items = append(items, toSettingResponse(s))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *SettingHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		handlers.BadRequest(c, "setting key is required")
		return
	}
	s, err := h.settingSvc.Get(c.Request.Context(), key)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", toSettingResponse(s))
}

type updateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// Update validates the raw value against the setting's declared type before
// persisting it.
func (h *SettingHandler) Update(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		handlers.BadRequest(c, "setting key is required")
		return
	}
	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "value is required")
		return
	}

	s, err := h.settingSvc.UpdateValue(c.Request.Context(), key, req.Value,
		handlers.CurrentUserID(c), handlers.CurrentUserSID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "setting updated", toSettingResponse(s))
}

type settingResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	ValueType   string    `json:"value_type"`
	Description string    `json:"description,omitempty"`
	UpdatedBy   uint      `json:"updated_by,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toSettingResponse(s *setting.PlatformSetting) settingResponse {
	return settingResponse{
		ID:          s.SID(),
		Category:    s.Category(),
		Key:         s.Key(),
		Value:       s.Value(),
		ValueType:   string(s.ValueType()),
		Description: s.Description(),
		UpdatedBy:   s.UpdatedBy(),
		UpdatedAt:   s.UpdatedAt(),
	}
}
