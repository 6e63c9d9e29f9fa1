package get_available_slots

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// computeAvailableSlots вычисляет свободные слоты на дату.
//
// Шаг 1: берем весь шаблон слотов в фиксированном порядке.
// Шаг 2: если дата - сегодня, оставляем только слоты, начинающиеся строго
// позже now + bufferMinutes. Буфер применяется всегда, без ослабления
// к концу дня. Для остальных дат берем весь шаблон.
// Шаг 3: убираем слоты, занятые живыми записями.
//
// Порядок шаблона сохраняется - он отражает естественную последовательность
// рабочего дня, а не лексикографическую сортировку.
func computeAvailableSlots(
	template domain.SlotTemplate,
	occupied []types.TimeString,
	date time.Time,
	now time.Time,
	bufferMinutes int,
) ([]types.TimeString, error) {
	candidates := template

	if isSameDay(date, now) {
		nowMinutes := now.Hour()*60 + now.Minute()

		filtered := make([]types.TimeString, 0, len(template))
		for _, slot := range template {
			slotMinutes, err := slot.Minutes()
			if err != nil {
				return nil, err
			}
			if slotMinutes > nowMinutes+bufferMinutes {
				filtered = append(filtered, slot)
			}
		}
		candidates = filtered
	}

	occupiedSet := make(map[types.TimeString]struct{}, len(occupied))
	for _, t := range occupied {
		occupiedSet[t] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := occupiedSet[slot]; taken {
			continue
		}
		available = append(available, slot)
	}

	return available, nil
}

// isSameDay проверяет, что две даты относятся к одному календарному дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
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
