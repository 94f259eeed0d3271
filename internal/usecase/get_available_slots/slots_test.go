package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

func weekSchedule() []domain.WeeklyAvailability {
	return []domain.WeeklyAvailability{
		{DayOfWeek: 0, IsActive: false},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", IsActive: true},
		{DayOfWeek: 3, StartTime: "18:00", EndTime: "09:00", IsActive: true},
		{DayOfWeek: 4, StartTime: "10:00", EndTime: "19:00", IsActive: false},
	}
}

func TestLookupWorkingHours(t *testing.T) {
	tests := []struct {
		name       string
		date       types.Date
		wantStart  int
		wantEnd    int
		wantStatus dayStatus
	}{
		{"monday open", types.Date{Year: 2024, Month: time.March, Day: 11}, 540, 1020, dayOpen},
		{"tuesday short day", types.Date{Year: 2024, Month: time.March, Day: 12}, 540, 600, dayOpen},
		{"wednesday inverted window", types.Date{Year: 2024, Month: time.March, Day: 13}, 0, 0, dayMisconfigured},
		{"thursday inactive", types.Date{Year: 2024, Month: time.March, Day: 14}, 0, 0, dayClosed},
		{"friday has no record", types.Date{Year: 2024, Month: time.March, Day: 15}, 0, 0, dayClosed},
		{"sunday inactive", types.Date{Year: 2024, Month: time.March, Day: 10}, 0, 0, dayClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, status := lookupWorkingHours(tt.date, weekSchedule())
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestNormalizeRequestedServices(t *testing.T) {
	got := normalizeRequestedServices(
		[]string{"facial", "", "massage", "facial", "peel"},
		map[string]int{"facial": 2, "massage": 0, "peel": -3, "other": 5},
	)

	assert.Equal(t, []requestedService{
		{id: "facial", quantity: 2},
		{id: "massage", quantity: 1},
		{id: "peel", quantity: 1},
	}, got)

	assert.Empty(t, normalizeRequestedServices(nil, nil))
}

func TestResolveDuration(t *testing.T) {
	durations := map[string]int{"facial": 45, "massage": 30}

	t.Run("two services quantity one each", func(t *testing.T) {
		total, unknown := resolveDuration([]requestedService{{"facial", 1}, {"massage", 1}}, durations)
		assert.Equal(t, 75, total)
		assert.Empty(t, unknown)
	})

	t.Run("quantity multiplies", func(t *testing.T) {
		total, _ := resolveDuration([]requestedService{{"massage", 3}}, durations)
		assert.Equal(t, 90, total)
	})

	t.Run("unknown ids contribute zero", func(t *testing.T) {
		total, unknown := resolveDuration([]requestedService{{"facial", 1}, {"ghost", 2}}, durations)
		assert.Equal(t, 45, total)
		assert.Equal(t, []string{"ghost"}, unknown)
	})
}

func TestBuildBookedIntervals(t *testing.T) {
	durations := map[string]int{"facial": 60, "massage": 45}
	appointments := []domain.Appointment{
		{ID: "a-1", Time: "10:00", ServiceIDs: []string{"facial"}},
		{ID: "a-2", Time: "13:30", ServiceIDs: []string{"massage", "facial"}},
		{ID: "a-3", Time: "15:00", ServiceIDs: []string{"deleted"}},
		{ID: "a-4", Time: "16:00", ServiceIDs: nil},
	}

	booked, skipped := buildBookedIntervals(appointments, durations)

	assert.Equal(t, []domain.TimeInterval{
		{StartMinutes: 600, EndMinutes: 660},
		{StartMinutes: 810, EndMinutes: 915},
	}, booked)
	assert.Equal(t, []string{"a-3", "a-4"}, skipped)
}

func TestGenerateSlotsScenarioA(t *testing.T) {
	booked := []domain.TimeInterval{{StartMinutes: 600, EndMinutes: 660}}

	slots, err := generateSlots(540, 1020, 30, booked)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	assert.Equal(t, Slot{Time: "09:00", Available: true}, slots[0])
	assert.Equal(t, Slot{Time: "09:30", Available: true}, slots[1])
	assert.Equal(t, Slot{Time: "10:00", Available: false}, slots[2])
	assert.Equal(t, Slot{Time: "10:30", Available: false}, slots[3])
	assert.Equal(t, Slot{Time: "11:00", Available: true}, slots[4])
	assert.Equal(t, Slot{Time: "16:30", Available: true}, slots[15])
}

func TestGenerateSlotsTreatmentDoesNotFit(t *testing.T) {
	slots, err := generateSlots(540, 600, 90, nil)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlotsExactFit(t *testing.T) {
	slots, err := generateSlots(540, 600, 60, nil)
	require.NoError(t, err)
	assert.Equal(t, []Slot{{Time: "09:00", Available: true}}, slots)
}

func TestGenerateSlotsOffGridWindow(t *testing.T) {
	// 09:15-11:00, 45 минут: 09:15, 09:45, 10:15
	slots, err := generateSlots(555, 660, 45, nil)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("10:15"), slots[2].Time)
}

func TestGenerateSlotsLongTreatmentBlockedByEarlierBooking(t *testing.T) {
	// 90-минутная процедура с 09:00 задевает запись 10:00-10:30
	booked := []domain.TimeInterval{{StartMinutes: 600, EndMinutes: 630}}

	slots, err := generateSlots(540, 720, 90, booked)
	require.NoError(t, err)

	want := []Slot{
		{Time: "09:00", Available: false},
		{Time: "09:30", Available: false},
		{Time: "10:00", Available: false},
		{Time: "10:30", Available: true},
	}
	assert.Equal(t, want, slots)
}

func TestGenerateSlotsProperties(t *testing.T) {
	windows := [][2]int{{540, 1020}, {480, 600}, {600, 630}, {0, 1439}, {555, 1000}}
	durations := []int{15, 30, 45, 60, 75, 90, 240, 600}
	bookings := [][]domain.TimeInterval{
		nil,
		{{StartMinutes: 600, EndMinutes: 660}},
		{{StartMinutes: 540, EndMinutes: 570}, {StartMinutes: 700, EndMinutes: 745}, {StartMinutes: 900, EndMinutes: 1020}},
		{{StartMinutes: 0, EndMinutes: 30}, {StartMinutes: 1400, EndMinutes: 1439}},
	}

	for _, w := range windows {
		for _, total := range durations {
			for _, booked := range bookings {
				slots, err := generateSlots(w[0], w[1], total, booked)
				require.NoError(t, err)

				if total > w[1]-w[0] {
					assert.Empty(t, slots, "window %v duration %d", w, total)
					continue
				}

				require.NotEmpty(t, slots)
				first, err := slots[0].Time.Minutes()
				require.NoError(t, err)
				assert.Equal(t, w[0], first)

				prev := -1
				for _, s := range slots {
					m, err := s.Time.Minutes()
					require.NoError(t, err)

					if prev >= 0 {
						assert.Equal(t, domain.SlotStepMinutes, m-prev)
					}
					prev = m
					assert.LessOrEqual(t, m+total, w[1])

					overlaps := false
					for _, b := range booked {
						if m < b.EndMinutes && m+total > b.StartMinutes {
							overlaps = true
						}
					}
					assert.Equal(t, !overlaps, s.Available, "slot %s duration %d", s.Time, total)
				}
				assert.Greater(t, prev+domain.SlotStepMinutes+total, w[1])
			}
		}
	}
}

func TestGenerateSlotsIsDeterministic(t *testing.T) {
	booked := []domain.TimeInterval{{StartMinutes: 700, EndMinutes: 760}, {StartMinutes: 600, EndMinutes: 630}}

	first, err := generateSlots(540, 1020, 60, booked)
	require.NoError(t, err)
	second, err := generateSlots(540, 1020, 60, booked)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
