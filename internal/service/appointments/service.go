package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberbook/booking-service/internal/domain"
	apptRepo "github.com/barberbook/booking-service/internal/infra/storage/appointment"
	"github.com/barberbook/booking-service/internal/service/appointments/models"
)

// Service сервис администрирования записей: список, смена статуса,
// частичное обновление, удаление
type Service struct {
	apptRepo   AppointmentRepository
	events     EventPublisher
	slotsCache SlotsCache
	logger     Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	events EventPublisher,
	slotsCache SlotsCache,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:   apptRepo,
		events:     events,
		slotsCache: slotsCache,
		logger:     logger,
	}
}

// List возвращает все записи, отсортированные по дате и времени по возрастанию
func (s *Service) List(ctx context.Context) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching all appointments")

	appts, err := s.apptRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(appts))
	return models.FromDomainAppointmentList(appts), nil
}

// UpdateStatus меняет статус записи.
// Значение валидируется до обращения к хранилищу; запрещённые переходы
// (из cancelled, из confirmed назад в pending) отклоняются.
func (s *Service) UpdateStatus(ctx context.Context, id int64, rawStatus string) error {
	s.logger.Info("UpdateStatus: appointment id=%d -> status=%s", id, rawStatus)

	status, ok := models.ToDomainStatus(rawStatus)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status %q for appointment id=%d", rawStatus, id)
		return fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}

	appt, err := s.getByID(ctx, id, "UpdateStatus")
	if err != nil {
		return err
	}

	if !appt.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%d",
			appt.Status, status, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, status)
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Смена статуса меняет занятость слота (cancelled освобождает его)
	s.invalidateSlots(ctx, appt.Date.Format(domain.DateFormat))
	s.events.AppointmentStatusChanged(ctx, id, status)

	s.logger.Info("UpdateStatus: appointment id=%d updated to %s", id, status)
	return nil
}

// Update выполняет частичное обновление записи.
// Перенос даты/времени не перепроверяет занятость нового слота прикладным
// кодом - конфликт поймает уникальный индекс хранилища.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) error {
	s.logger.Info("Update: appointment id=%d", id)

	update, err := s.buildUpdate(req)
	if err != nil {
		s.logger.Warn("Update: invalid request for appointment id=%d: %v", id, err)
		return err
	}

	appt, err := s.getByID(ctx, id, "Update")
	if err != nil {
		return err
	}

	if update.Status != nil && !appt.CanTransitionTo(*update.Status) {
		s.logger.Warn("Update: transition %s -> %s not allowed for appointment id=%d",
			appt.Status, *update.Status, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, *update.Status)
	}

	if err := s.apptRepo.Update(ctx, id, update); err != nil {
		switch {
		case errors.Is(err, apptRepo.ErrAppointmentNotFound):
			return ErrAppointmentNotFound
		case errors.Is(err, apptRepo.ErrSlotTaken):
			s.logger.Warn("Update: target slot already taken for appointment id=%d", id)
			return ErrSlotTaken
		default:
			s.logger.Error("Update: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	// Сбрасываем кеш и для старой, и для новой даты
	s.invalidateSlots(ctx, appt.Date.Format(domain.DateFormat))
	if update.Date != nil {
		s.invalidateSlots(ctx, update.Date.Format(domain.DateFormat))
	}
	if update.Status != nil {
		s.events.AppointmentStatusChanged(ctx, id, *update.Status)
	}

	s.logger.Info("Update: appointment id=%d updated", id)
	return nil
}

// Delete удаляет запись физически.
// Удаление несуществующей записи - отдельный исход (not found), а не тихий успех.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: appointment id=%d", id)

	appt, err := s.getByID(ctx, id, "Delete")
	if err != nil {
		return err
	}

	if err := s.apptRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, appt.Date.Format(domain.DateFormat))
	s.events.AppointmentDeleted(ctx, id)

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

func (s *Service) getByID(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// buildUpdate валидирует запрос и собирает доменное частичное обновление
func (s *Service) buildUpdate(req *models.UpdateAppointmentRequest) (domain.AppointmentUpdate, error) {
	var update domain.AppointmentUpdate

	if req.Status != nil {
		status, ok := models.ToDomainStatus(*req.Status)
		if !ok {
			return update, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		update.Status = &status
	}

	if req.Name != nil {
		if len(*req.Name) < domain.MinNameLength || len(*req.Name) > domain.MaxNameLength {
			return update, fmt.Errorf("%w: name length out of range", ErrInvalidInput)
		}
		update.Name = req.Name
	}

	if req.Service != nil {
		service := domain.ServiceType(*req.Service)
		if !service.IsValid() {
			return update, fmt.Errorf("%w: unknown service %q", ErrInvalidInput, *req.Service)
		}
		update.Service = &service
	}

	if req.Time != nil {
		if !req.Time.IsValid() {
			return update, fmt.Errorf("%w: invalid time format", ErrInvalidInput)
		}
		update.Time = req.Time
	}

	update.Email = req.Email
	update.Phone = req.Phone
	update.Date = req.Date

	if update.IsEmpty() {
		return update, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return update, nil
}

func (s *Service) invalidateSlots(ctx context.Context, date string) {
	if err := s.slotsCache.Invalidate(ctx, date); err != nil {
		s.logger.Warn("failed to invalidate slots cache for %s: %v", date, err)
	}
}
