package get_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/domain"
	getAvailableSlots "github.com/barberbook/booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "query parameter 'date' is required"
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
	msgPastDate    = "cannot request slots for a past date"

	// Совпадает с TTL записи в кеше
	cacheControlValue = "public, max-age=60"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	cache   SlotsCache
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, cache SlotsCache, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		cache:   cache,
		logger:  logger,
	}
}

// Handle GET /slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %q", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Сначала пробуем кеш: расчет слотов ходит в базу
	if slots, ok, cerr := h.cache.Get(r.Context(), rawDate); cerr == nil && ok {
		w.Header().Set("Cache-Control", cacheControlValue)
		handlers.RespondJSON(w, http.StatusOK, SlotsResponse{
			Success:        true,
			Date:           rawDate,
			AvailableSlots: slots,
		})
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Invalid date: %q", rawDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrPastDate):
			h.logger.Warn("GET /slots - Past date: %q", rawDate)
			handlers.RespondBadRequest(w, msgPastDate)

		default:
			h.logger.Error("GET /slots - Failed to get slots: date=%s, error=%v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if cerr := h.cache.Set(r.Context(), rawDate, response.AvailableSlots); cerr != nil {
		// Кеш не критичен, запрос обслуживаем в любом случае
		h.logger.Warn("GET /slots - Failed to cache slots: date=%s, error=%v", rawDate, cerr)
	}

	w.Header().Set("Cache-Control", cacheControlValue)
	handlers.RespondJSON(w, http.StatusOK, response)
}
