package get_available_slots

import (
	"github.com/m04kA/SMC-SlotsService/internal/domain"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

type dayStatus int

const (
	dayOpen dayStatus = iota
	dayClosed
	dayMisconfigured // активная запись с start >= end
)

type requestedService struct {
	id       string
	quantity int
}

// lookupWorkingHours возвращает рабочее окно дня в минутах от полуночи.
// День недели берется из календарных компонент даты, без перевода во временную зону сервера
func lookupWorkingHours(date types.Date, records []domain.WeeklyAvailability) (start, end int, status dayStatus) {
	weekday := int(date.Weekday())

	for i := range records {
		if records[i].DayOfWeek != weekday {
			continue
		}
		if !records[i].IsActive {
			return 0, 0, dayClosed
		}

		start, end, ok := records[i].Window()
		if !ok {
			return 0, 0, dayMisconfigured
		}
		return start, end, dayOpen
	}

	return 0, 0, dayClosed
}

// normalizeRequestedServices убирает пустые и повторные id с сохранением порядка
// и подставляет количество. Отсутствующее или неположительное количество считается за 1
func normalizeRequestedServices(ids []string, quantities map[string]int) []requestedService {
	seen := make(map[string]struct{}, len(ids))
	result := make([]requestedService, 0, len(ids))

	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		qty := quantities[id]
		if qty < 1 {
			qty = 1
		}
		result = append(result, requestedService{id: id, quantity: qty})
	}

	return result
}

// resolveDuration суммирует длительности запрошенных услуг с учетом количества.
// Неизвестные id дают 0 и возвращаются отдельно для логирования
func resolveDuration(requested []requestedService, durations map[string]int) (total int, unknown []string) {
	for _, rs := range requested {
		d, ok := durations[rs.id]
		if !ok {
			unknown = append(unknown, rs.id)
			continue
		}
		total += d * rs.quantity
	}
	return total, unknown
}

// buildBookedIntervals строит занятые интервалы существующих записей.
// Запись, ссылающаяся на удаленную услугу, пропускается; ее id возвращается в skipped
func buildBookedIntervals(appointments []domain.Appointment, durations map[string]int) (booked []domain.TimeInterval, skipped []string) {
	booked = make([]domain.TimeInterval, 0, len(appointments))

	for i := range appointments {
		interval, ok := appointments[i].Interval(durations)
		if !ok {
			skipped = append(skipped, appointments[i].ID)
			continue
		}
		booked = append(booked, interval)
	}

	return booked, skipped
}

// generateSlots проходит окно [dayStart, dayEnd] с шагом SlotStepMinutes.
// Кандидат m попадает в результат, если m + total <= dayEnd; недоступные слоты не отбрасываются
func generateSlots(dayStart, dayEnd, total int, booked []domain.TimeInterval) ([]Slot, error) {
	if total <= 0 || dayEnd-total < dayStart {
		return []Slot{}, nil
	}

	slots := make([]Slot, 0, (dayEnd-total-dayStart)/domain.SlotStepMinutes+1)

	for m := dayStart; m <= dayEnd-total; m += domain.SlotStepMinutes {
		candidate := domain.TimeInterval{StartMinutes: m, EndMinutes: m + total}

		available := true
		for _, b := range booked {
			if candidate.Overlaps(b) {
				available = false
				break
			}
		}

		t, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, Slot{Time: t, Available: available})
	}

	return slots, nil
}
