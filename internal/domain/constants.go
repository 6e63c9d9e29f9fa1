package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default booking policy values
const (
	// DefaultSameDayBufferMinutes минимальный запас до начала слота при записи
	// на сегодняшний день
	DefaultSameDayBufferMinutes = 30

	// DefaultTimezone часовой пояс барбершопа, в нём вычисляется "сегодня"
	DefaultTimezone = "Europe/Berlin"
)

// Business validation constants
const (
	MinNameLength = 2
	MaxNameLength = 100
)

// LiveStatuses статусы, при которых запись занимает свой слот.
// Отменённые записи слот не блокируют.
var LiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
