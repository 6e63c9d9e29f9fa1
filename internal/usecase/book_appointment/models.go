package book_appointment

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Name    string             // Имя клиента
	Email   *string            // Email (опционально)
	Phone   string             // Телефон в международном формате
	Service domain.ServiceType // Услуга: haircut | beard | both
	Date    time.Time          // Дата записи (без времени)
	Time    types.TimeString   // Время слота, например "10:00"

	// Привязка к аутентифицированному клиенту (опционально)
	CustomerID    *string
	CustomerEmail *string
	CustomerPhone *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64            // ID созданной записи
	Name      string           // Имя клиента
	Service   string           // Услуга
	Date      time.Time        // Дата записи
	Time      types.TimeString // Время слота
	Status    string           // Всегда "pending" при создании
	CreatedAt time.Time        // Время создания (выставляется хранилищем)
}
