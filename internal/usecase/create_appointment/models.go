package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Date              types.Date
	Time              types.TimeString
	ServiceIDs        []string
	ServiceQuantities map[string]int
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Notes             *string
}

// Response модель созданной записи
type Response struct {
	ID              string
	Date            types.Date
	Time            types.TimeString
	ServiceIDs      []string // С повторами по количеству
	DurationMinutes int
	Status          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Notes           *string
	CreatedAt       time.Time
}
