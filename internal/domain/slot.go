package domain

import "github.com/barberbook/booking-service/pkg/types"

// SlotTemplate is the fixed, ordered sequence of bookable start times for any
// calendar day. Порядок значим: он отражает естественную последовательность
// рабочего дня (утренний блок, обеденный перерыв, дневной блок).
type SlotTemplate []types.TimeString

// DefaultSlotTemplate рабочие слоты по умолчанию: 09:00-11:30 и 14:00-17:00
// с шагом 30 минут, перерыв на обед между блоками
var DefaultSlotTemplate = SlotTemplate{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
}

// Contains reports whether the given time is one of the template slots
func (t SlotTemplate) Contains(slot types.TimeString) bool {
	for _, s := range t {
		if s == slot {
			return true
		}
	}
	return false
}

// Strings returns the template as plain strings, in template order
func (t SlotTemplate) Strings() []string {
	out := make([]string, len(t))
	for i, s := range t {
		out[i] = s.String()
	}
	return out
}
