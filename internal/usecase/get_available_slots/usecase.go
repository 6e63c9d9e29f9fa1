package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	apptRepo      AppointmentRepository
	template      domain.SlotTemplate
	location      *time.Location
	bufferMinutes int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	template domain.SlotTemplate,
	location *time.Location,
	bufferMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:      apptRepo,
		template:      template,
		location:      location,
		bufferMinutes: bufferMinutes,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailableSlots: missing date")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	// 2. "Сегодня" вычисляется в часовом поясе барбершопа, а не хоста
	now := uc.timeProvider.Now().In(uc.location)

	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: past date %s requested", req.Date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	// 3. Получаем занятые времена (только живые записи: pending/confirmed)
	occupied, err := uc.apptRepo.GetTimesByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupied times: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied times: %v", ErrInternal, err)
	}

	// 4. Вычисляем свободные слоты
	available, err := computeAvailableSlots(uc.template, occupied, req.Date, now, uc.bufferMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available on %s",
		len(available), len(uc.template), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:           req.Date,
		AvailableSlots: available,
	}, nil
}
