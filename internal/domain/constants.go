package domain

// Шаг сетки слотов
const SlotStepMinutes = 30

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ограничения входных данных
const (
	MaxRequestedServices = 50
	MaxServiceQuantity   = 20
	MaxNotesLength       = 500
	MaxCustomerNameLen   = 200
)

// DaysInWeek количество записей недельного расписания
const DaysInWeek = 7
