package verification

import "errors"

var (
	// ErrInvalidPhone возвращается при телефоне не в международном формате
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrSessionNotFound возвращается, когда сессия верификации не найдена
	// или её TTL истёк
	ErrSessionNotFound = errors.New("verification session not found or expired")

	// ErrInvalidCode возвращается при неверном коде подтверждения
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrTooManyAttempts возвращается, когда попытки ввода кода исчерпаны.
	// Сессия при этом удаляется, нужен новый запрос кода.
	ErrTooManyAttempts = errors.New("too many verification attempts")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
