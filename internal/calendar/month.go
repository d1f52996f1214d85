package calendar

import (
	"fmt"
	"time"
)

// Month is one page of the booking calendar
type Month struct {
	year  int
	month time.Month
}

func NewMonth(year int, month time.Month) Month {
	first := NewDate(year, month, 1)
	return Month{year: first.Year(), month: first.Month()}
}

// MonthOf returns the month containing d
func MonthOf(d Date) Month {
	return NewMonth(d.Year(), d.Month())
}

func (m Month) Year() int         { return m.year }
func (m Month) Month() time.Month { return m.month }

func (m Month) First() Date {
	return NewDate(m.year, m.month, 1)
}

func (m Month) Last() Date {
	return NewDate(m.year, m.month+1, 1).AddDays(-1)
}

func (m Month) Prev() Month { return NewMonth(m.year, m.month-1) }
func (m Month) Next() Month { return NewMonth(m.year, m.month+1) }

// Contains reports whether d belongs to this month (not to the padding)
func (m Month) Contains(d Date) bool {
	return d.Year() == m.year && d.Month() == m.month
}

// Grid returns the days displayed for the month: the trailing days of the
// previous month needed to start the first row on a Monday, then every day
// of the month.
func (m Month) Grid() []Date {
	first := m.First()
	lead := (int(first.Weekday()) + 6) % 7
	return Days(first.AddDays(-lead), m.Last())
}

func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.month, m.year)
}
