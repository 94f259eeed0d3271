package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat возвращается, если строка не является датой YYYY-MM-DD
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// Date календарная дата без времени и часового пояса.
// День недели вычисляется только из года, месяца и дня, поэтому он не зависит
// от часового пояса сервера и не "съезжает" около полуночи.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// sakamotoOffsets смещения месяцев для алгоритма Сакамото
var sakamotoOffsets = [12]int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}

// ParseDate разбирает строку "YYYY-MM-DD" покомпонентно
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 ||
		!isDigits(parts[0]) || !isDigits(parts[1]) || !isDigits(parts[2]) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > daysIn(time.Month(month), year) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// DateOf возвращает календарную дату момента t в его собственном часовом поясе
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Weekday возвращает день недели (0 = воскресенье ... 6 = суббота)
func (d Date) Weekday() time.Weekday {
	y := d.Year
	if d.Month < time.March {
		y--
	}
	w := (y + y/4 - y/100 + y/400 + sakamotoOffsets[d.Month-1] + d.Day) % 7
	return time.Weekday(w)
}

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Before возвращает true, если d строго раньше other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Scan реализует sql.Scanner для колонки типа date
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		// lib/pq отдает date как полночь UTC, компоненты берем как есть
		*d = DateOf(v)
		return nil
	case string:
		if len(v) > 10 {
			v = v[:10]
		}
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T into Date", ErrInvalidDateFormat, src)
	}
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func daysIn(m time.Month, year int) int {
	switch m {
	case time.February:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}
