package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда слот (дата, время) уже занят живой записью.
	// Гарантируется частичным уникальным индексом на таблице appointments.
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrSerializationConflict возвращается, когда сериализуемая транзакция
	// не может быть завершена из-за конкурентной транзакции (SQLSTATE 40001)
	ErrSerializationConflict = errors.New("appointment.repository: serialization conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
