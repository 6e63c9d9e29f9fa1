package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/barberbook/booking-service/internal/domain"
	apptRepo "github.com/barberbook/booking-service/internal/infra/storage/appointment"
)

// UseCase use case для создания записи клиентом
type UseCase struct {
	apptRepo     AppointmentRepository
	txManager    TransactionManager
	events       EventPublisher
	slotsCache   SlotsCache
	template     domain.SlotTemplate
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	events EventPublisher,
	slotsCache SlotsCache,
	template domain.SlotTemplate,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		txManager:    txManager,
		events:       events,
		slotsCache:   slotsCache,
		template:     template,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи.
// Занятость слота проверяется и фиксируется в сериализуемой транзакции,
// поэтому два конкурентных запроса на один слот не могут пройти оба:
// второй получит ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: service=%s, date=%s, time=%s",
		req.Service, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе барбершопа
	now := uc.timeProvider.Now().In(uc.location)

	if isDateInPast(req.Date, now) {
		uc.logger.Warn("BookAppointment: past date %s requested", req.Date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	// 3. Время должно быть одним из слотов шаблона
	if !uc.template.Contains(req.Time) {
		uc.logger.Warn("BookAppointment: time %s is not in the slot template", req.Time)
		return nil, ErrInvalidTimeSlot
	}

	var result *domain.Appointment

	// 4. Проверка занятости и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Занятые времена на дату, строки блокируются (FOR UPDATE)
		occupied, err := uc.apptRepo.GetTimesByDate(txCtx, req.Date)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSerializationConflict) {
				return ErrSlotTaken
			}
			uc.logger.Error("BookAppointment: failed to get occupied times: %v", err)
			return fmt.Errorf("%w: failed to get occupied times: %v", ErrInternal, err)
		}

		for _, taken := range occupied {
			if taken == req.Time {
				uc.logger.Warn("BookAppointment: slot %s %s already taken",
					req.Date.Format(domain.DateFormat), req.Time)
				return ErrSlotTaken
			}
		}

		// 4.2. Статус новой записи всегда pending, created_at выставляет БД
		appt := &domain.Appointment{
			Name:          req.Name,
			Email:         req.Email,
			Phone:         req.Phone,
			Service:       req.Service,
			Date:          req.Date,
			Time:          req.Time,
			Status:        domain.StatusPending,
			CustomerID:    req.CustomerID,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			// Уникальный индекс - страховка на случай обхода транзакции.
			// Конфликт сериализации означает, что конкурентная транзакция
			// уже работала с этим слотом.
			if errors.Is(err, apptRepo.ErrSlotTaken) || errors.Is(err, apptRepo.ErrSerializationConflict) {
				return ErrSlotTaken
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации на COMMIT - конкурентная бронь того же
		// слота прошла первой, для клиента это тот же занятый слот
		if isSerializationFailure(err) {
			uc.logger.Warn("BookAppointment: serialization conflict for %s %s",
				req.Date.Format(domain.DateFormat), req.Time)
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	// 5. Сброс кеша слотов и публикация события - вне транзакции,
	// их сбой не откатывает уже созданную запись
	dateStr := result.Date.Format(domain.DateFormat)
	if err := uc.slotsCache.Invalidate(ctx, dateStr); err != nil {
		uc.logger.Warn("BookAppointment: failed to invalidate slots cache for %s: %v", dateStr, err)
	}
	uc.events.AppointmentCreated(ctx, result)

	return &Response{
		ID:        result.ID,
		Name:      result.Name,
		Service:   string(result.Service),
		Date:      result.Date,
		Time:      result.Time,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
	}, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего календарного дня.
// Сравниваем только календарные компоненты: дата запроса парсится как
// полночь UTC, а now приходит в часовом поясе барбершопа, поэтому
// сравнение моментов времени здесь недопустимо.
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return int(m1) < int(m2)
	}
	return d1 < d2
}

// isSerializationFailure распознает ошибку сериализации PostgreSQL (40001),
// всплывшую из менеджера транзакций при COMMIT
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}
