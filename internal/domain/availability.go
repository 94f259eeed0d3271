package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// WeeklyAvailability рабочие часы на один день недели
// DayOfWeek: 0 = воскресенье ... 6 = суббота
type WeeklyAvailability struct {
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	UpdatedAt time.Time
}

// IsValidDayOfWeek проверяет диапазон дня недели
func IsValidDayOfWeek(day int) bool {
	return day >= 0 && day < DaysInWeek
}

// Window возвращает рабочее окно в минутах от полуночи.
// ok = false, если день неактивен или окно некорректно (start >= end)
func (a *WeeklyAvailability) Window() (start, end int, ok bool) {
	if !a.IsActive {
		return 0, 0, false
	}

	start, err := a.StartTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	end, err = a.EndTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if start >= end {
		return 0, 0, false
	}

	return start, end, true
}

// Closed запись "выходной" для дня без настроек
func Closed(day int) WeeklyAvailability {
	return WeeklyAvailability{DayOfWeek: day, IsActive: false}
}
