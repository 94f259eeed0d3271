package domain

// Service услуга из каталога. Ядро расчета слотов читает только DurationMinutes
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
}
