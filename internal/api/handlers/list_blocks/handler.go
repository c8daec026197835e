package list_blocks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendame/AGD-AvailabilityService/internal/api/handlers"
	blocksService "github.com/agendame/AGD-AvailabilityService/internal/service/blocks"
	"github.com/agendame/AGD-AvailabilityService/internal/service/blocks/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BlocksService
	logger  Logger
}

func NewHandler(service BlocksService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/blocks
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/blocks - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/blocks - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListBlocksRequest{
		BusinessID: businessID,
		Date:       dateStr,
	})
	if err != nil {
		switch {
		case errors.Is(err, blocksService.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/blocks - Invalid date %q: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /businesses/{id}/blocks - Failed to list blocks: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/blocks - Blocks retrieved: business_id=%d, date=%s, count=%d",
		businessID, dateStr, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
