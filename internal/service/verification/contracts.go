package verification

import "context"

// SMSSender отправляет SMS с кодом подтверждения
type SMSSender interface {
	Send(ctx context.Context, to string, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
