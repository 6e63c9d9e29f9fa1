package cache

import "time"

const (
	// Кеш доступных слотов на дату: slots:{YYYY-MM-DD} -> JSON-массив времен
	KeySlots = "slots:%s"

	// Сессия верификации телефона: verify:{token} -> JSON сессии
	KeyVerification = "verify:%s"

	// Счетчик оставшихся попыток ввода кода: verify:{token}:attempts -> int.
	// Отдельный ключ, чтобы списывать попытки атомарным DECR
	KeyVerificationAttempts = "verify:%s:attempts"

	// Стабильный идентификатор клиента по телефону: customer:{phone} -> uuid
	KeyCustomer = "customer:%s"
)

var (
	// TTLSlots совпадает с Cache-Control: max-age=60 на эндпоинте слотов
	TTLSlots = 60 * time.Second
)
