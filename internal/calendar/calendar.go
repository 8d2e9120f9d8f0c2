// Package calendar implements the 30-minute-granularity date and time
// arithmetic the reservation engine is built on: half-hour indices,
// the business-hours predicate, inclusive date-range expansion, and
// ISO week bucketing.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout and TimeLayout mirror the on-disk formats from spec.md §6.
const (
	DateLayout = "01-02-2006"
	TimeLayout = "15:04"
)

// Date is a naive local calendar date with no time-of-day component.
type Date struct {
	Year, Month, Day int
}

// NewDate truncates t to a calendar date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// ParseDate parses a spec.md-format MM-DD-YYYY date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return d.toTime().Format(DateLayout)
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool {
	return d.toTime().Before(other.toTime())
}

// Equal reports whether d and other denote the same calendar date.
func (d Date) Equal(other Date) bool {
	return d == other
}

// AddDays returns d shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.toTime().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to other (other - d).
func (d Date) DaysUntil(other Date) int {
	return int(other.toTime().Sub(d.toTime()).Hours() / 24)
}

// Weekday returns ISO weekday with Monday=0 ... Sunday=6.
func (d Date) Weekday() int {
	wd := int(d.toTime().Weekday()) // Sunday=0 ... Saturday=6
	return (wd + 6) % 7
}

// ISOWeek returns the (year, week) bucket the date falls into.
func (d Date) ISOWeek() (int, int) {
	y, w := d.toTime().ISOWeek()
	return y, w
}

// ExpandRange returns every date from start to end, inclusive on both ends.
func ExpandRange(start, end Date) []Date {
	if end.Before(start) {
		return nil
	}
	n := start.DaysUntil(end)
	days := make([]Date, 0, n+1)
	for i := 0; i <= n; i++ {
		days = append(days, start.AddDays(i))
	}
	return days
}

// HalfHour is a half-hour-of-day index in [0, 48): hh*2 + mm/30.
type HalfHour int

// ParseHalfHour parses an HH:MM time-of-day string into a half-hour
// index. It rejects minute values other than 0 or 30.
func ParseHalfHour(s string) (HalfHour, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if t.Minute() != 0 && t.Minute() != 30 {
		return 0, fmt.Errorf("reservations for all resources are made in 30 minute blocks and always start on the hour or half hour")
	}
	return HalfHour(t.Hour()*2 + t.Minute()/30), nil
}

func (h HalfHour) String() string {
	hh := int(h) / 2
	mm := (int(h) % 2) * 30
	return fmt.Sprintf("%02d:%02d", hh, mm)
}

// Open reports whether the business is open for the half-open interval
// [start, end) on the given date, per spec.md §4.1:
//
//	Sunday:    closed all day
//	Saturday:  open [10:00, 16:00)
//	weekdays:  open [09:00, 18:00)
func Open(start, end HalfHour, d Date) bool {
	const (
		satOpen  = HalfHour(20) // 10:00
		satClose = HalfHour(32) // 16:00
		wdOpen   = HalfHour(18) // 09:00
		wdClose  = HalfHour(36) // 18:00
	)
	switch d.Weekday() {
	case 6: // Sunday
		return false
	case 5: // Saturday
		return start >= satOpen && end <= satClose
	default:
		return start >= wdOpen && end <= wdClose
	}
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap.
func Overlaps(aStart, aEnd, bStart, bEnd HalfHour) bool {
	return !(aEnd <= bStart || bEnd <= aStart)
}

// WeekBucket uniquely identifies an ISO (year, week) bucket.
type WeekBucket struct {
	Year, Week int
}

// BucketOf returns the ISO week bucket d falls into.
func BucketOf(d Date) WeekBucket {
	y, w := d.ISOWeek()
	return WeekBucket{Year: y, Week: w}
}
