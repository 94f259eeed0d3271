package models

import (
	"time"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
)

// UpdateDayRequest запрос на изменение расписания одного дня недели
type UpdateDayRequest struct {
	StartTime string `json:"startTime"` // "09:00", для выходного может быть пустым
	EndTime   string `json:"endTime"`   // "17:00"
	IsActive  bool   `json:"isActive"`
}

// DayResponse расписание одного дня
type DayResponse struct {
	DayOfWeek int        `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string     `json:"startTime,omitempty"`
	EndTime   string     `json:"endTime,omitempty"`
	IsActive  bool       `json:"isActive"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// WeekResponse расписание на неделю, всегда 7 элементов
type WeekResponse struct {
	Days []DayResponse `json:"days"`
}

// FromDomain конвертирует запись расписания в ответ
func FromDomain(a *domain.WeeklyAvailability) DayResponse {
	resp := DayResponse{
		DayOfWeek: a.DayOfWeek,
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
		IsActive:  a.IsActive,
	}
	if !a.UpdatedAt.IsZero() {
		updated := a.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
