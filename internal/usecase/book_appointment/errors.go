package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrPastDate возвращается при попытке записи на прошедшую дату
	ErrPastDate = errors.New("book_appointment: date is in the past")

	// ErrInvalidTimeSlot возвращается, когда время не входит в шаблон слотов
	ErrInvalidTimeSlot = errors.New("book_appointment: time is not a bookable slot")

	// ErrSlotTaken возвращается, когда слот уже занят живой записью
	ErrSlotTaken = errors.New("book_appointment: slot already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
