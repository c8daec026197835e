package create_block

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendame/AGD-AvailabilityService/internal/api/handlers"
	"github.com/agendame/AGD-AvailabilityService/internal/api/middleware"
	blocksService "github.com/agendame/AGD-AvailabilityService/internal/service/blocks"
	"github.com/agendame/AGD-AvailabilityService/internal/service/blocks/models"
)

const (
	msgInvalidBusinessID    = "некорректный ID бизнеса"
	msgInvalidBody          = "некорректное тело запроса"
	msgUnauthorized         = "пользователь не аутентифицирован"
	msgBusinessNotFound     = "бизнес не найден"
	msgProfessionalNotFound = "мастер не найден в этом бизнесе"
	msgAccessDenied         = "доступ запрещён"
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

// Handle POST /api/v1/businesses/{businessId}/blocks
// Требует заголовок X-User-ID (менеджер бизнеса)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/blocks - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/blocks - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /businesses/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.BusinessID = businessID
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blocksService.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/blocks - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, blocksService.ErrProfessionalNotFound):
			h.logger.Warn("POST /businesses/{id}/blocks - Professional not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, blocksService.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/blocks - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, blocksService.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /businesses/{id}/blocks - Failed to create block: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/blocks - Block created: business_id=%d, block_id=%d, user_id=%d",
		businessID, result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
