package delete_block

import (
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
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidBlockID    = "некорректный ID блока"
	msgUnauthorized      = "пользователь не аутентифицирован"
	msgBusinessNotFound  = "бизнес не найден"
	msgBlockNotFound     = "временной блок не найден"
	msgAccessDenied      = "доступ запрещён"
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

// Handle DELETE /api/v1/businesses/{businessId}/blocks/{blockId}
// Требует заголовок X-User-ID (менеджер бизнеса)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/blocks/{blockId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/blocks/{blockId} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /businesses/{id}/blocks/{blockId} - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.DeleteBlockRequest{
		BusinessID: businessID,
		BlockID:    blockID,
		UserID:     userID,
	}

	if err := h.service.Delete(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, blocksService.ErrBusinessNotFound):
			h.logger.Warn("DELETE /businesses/{id}/blocks/{blockId} - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, blocksService.ErrBlockNotFound):
			h.logger.Warn("DELETE /businesses/{id}/blocks/{blockId} - Block not found: business_id=%d, block_id=%d",
				businessID, blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, blocksService.ErrAccessDenied):
			h.logger.Warn("DELETE /businesses/{id}/blocks/{blockId} - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /businesses/{id}/blocks/{blockId} - Failed to delete block: block_id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/blocks/{blockId} - Block deleted: business_id=%d, block_id=%d, user_id=%d",
		businessID, blockID, userID)
	handlers.RespondNoContent(w)
}
