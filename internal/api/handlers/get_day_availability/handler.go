package get_day_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendame/AGD-AvailabilityService/internal/api/handlers"
	getDayAvailability "github.com/agendame/AGD-AvailabilityService/internal/usecase/get_day_availability"
)

const (
	msgInvalidBusinessID     = "некорректный ID бизнеса"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgMissingDuration       = "длительность услуги обязательна"
	msgInvalidDuration       = "некорректная длительность услуги"
	msgMissingDate           = "дата обязательна"
	msgInvalidRequest        = "некорректный формат параметров, ожидается serviceDuration (минуты) и date (YYYY-MM-DD)"
	msgBusinessNotFound      = "бизнес не найден"
	msgProfessionalNotFound  = "мастер не найден в этом бизнесе"
)

type Handler struct {
	useCase GetDayAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetDayAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/professionals/{professionalId}/availability
// Query params: serviceDuration (required, minutes), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем businessId из URL
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/professionals/{id}/availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем professionalId из URL
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/professionals/{id}/availability - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Извлекаем обязательные query параметры
	durationStr := r.URL.Query().Get("serviceDuration")
	if durationStr == "" {
		h.logger.Warn("GET /businesses/{id}/professionals/{id}/availability - Missing service duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/professionals/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты и длительности)
	useCaseReq, err := ToUseCaseRequest(businessID, professionalID, durationStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/professionals/{id}/availability - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDayAvailability.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/professionals/{id}/availability - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getDayAvailability.ErrProfessionalNotFound):
			h.logger.Warn("GET /businesses/{id}/professionals/{id}/availability - Professional not found: business_id=%d, professional_id=%d",
				businessID, professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getDayAvailability.ErrInvalidInput),
			errors.Is(err, getDayAvailability.ErrInvalidDate):
			h.logger.Warn("GET /businesses/{id}/professionals/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /businesses/{id}/professionals/{id}/availability - Failed to get availability: business_id=%d, professional_id=%d, error=%v",
				businessID, professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /businesses/{id}/professionals/{id}/availability - Availability retrieved: business_id=%d, professional_id=%d, slots_count=%d",
		businessID, professionalID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
