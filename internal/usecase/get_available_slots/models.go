package get_available_slots

import "github.com/m04kA/SMC-SlotsService/pkg/types"

// Request модель запроса на получение слотов
type Request struct {
	Date              types.Date     // Календарная дата без часового пояса
	ServiceIDs        []string       // Запрошенные услуги
	ServiceQuantities map[string]int // Количество по id услуги, по умолчанию 1
}

// Response модель ответа со списком слотов
// Пустой список - нормальный результат (выходной, нет услуг, процедура не помещается в день)
type Response struct {
	Timeslots []Slot
}

// Slot кандидат на время начала записи
type Slot struct {
	Time      types.TimeString // "HH:MM"
	Available bool             // false, если пересекается с существующей записью
}
