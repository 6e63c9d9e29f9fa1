package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidStatus возвращается при недопустимом значении статуса
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidTransition возвращается при запрещённом переходе статуса
	// (например, из cancelled обратно в pending)
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotTaken возвращается, когда перенос записи упирается в занятый слот
	ErrSlotTaken = errors.New("slot already taken")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
