package domain

import (
	"fmt"
	"strconv"
	"strings"

	"mpcs-reservation/internal/calendar"
)

// Reservation is one confirmed booking of one resource across one or
// more contiguous calendar days, at the same time-of-day window each
// day. See spec.md §3.
type Reservation struct {
	ID                int
	CustomerID        string
	Resource          Resource
	StartDate         calendar.Date
	EndDate           calendar.Date
	StartTime         calendar.HalfHour
	EndTime           calendar.HalfHour
	DateOfReservation calendar.Date
	TotalCost         float64
	DownPayment       float64
}

// ActiveOn reports whether the reservation is active at day d and
// half-hour index t, per the GLOSSARY's "Active at (d, t)" definition.
func (r Reservation) ActiveOn(d calendar.Date, t calendar.HalfHour) bool {
	if d.Before(r.StartDate) || r.EndDate.Before(d) {
		return false
	}
	return t >= r.StartTime && t < r.EndTime
}

// Days returns every calendar day the reservation occupies.
func (r Reservation) Days() []calendar.Date {
	return calendar.ExpandRange(r.StartDate, r.EndDate)
}

// reservationFieldCount is the number of whitespace-separated fields in one
// reservation record, per spec.md §6.
const reservationFieldCount = 10

// EncodeFields renders the reservation as the 10 on-disk fields, in order.
func (r Reservation) EncodeFields() []string {
	return []string{
		strconv.Itoa(r.ID),
		r.CustomerID,
		string(r.Resource),
		r.StartDate.String(),
		r.EndDate.String(),
		r.StartTime.String(),
		r.EndTime.String(),
		r.DateOfReservation.String(),
		formatAmount(r.TotalCost),
		formatAmount(r.DownPayment),
	}
}

// DecodeReservationFields parses the 10 on-disk fields of a reservation
// record, in order.
func DecodeReservationFields(fields []string) (Reservation, error) {
	if len(fields) != reservationFieldCount {
		return Reservation{}, fmt.Errorf("reservation record: expected %d fields, got %d", reservationFieldCount, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Reservation{}, fmt.Errorf("reservation id: %w", err)
	}
	startDate, err := calendar.ParseDate(fields[3])
	if err != nil {
		return Reservation{}, err
	}
	endDate, err := calendar.ParseDate(fields[4])
	if err != nil {
		return Reservation{}, err
	}
	startTime, err := calendar.ParseHalfHour(fields[5])
	if err != nil {
		return Reservation{}, err
	}
	endTime, err := calendar.ParseHalfHour(fields[6])
	if err != nil {
		return Reservation{}, err
	}
	dateOfReservation, err := calendar.ParseDate(fields[7])
	if err != nil {
		return Reservation{}, err
	}
	totalCost, err := strconv.ParseFloat(fields[8], 64)
	if err != nil {
		return Reservation{}, fmt.Errorf("total cost: %w", err)
	}
	downPayment, err := strconv.ParseFloat(fields[9], 64)
	if err != nil {
		return Reservation{}, fmt.Errorf("down payment: %w", err)
	}
	return Reservation{
		ID:                id,
		CustomerID:        fields[1],
		Resource:          Resource(fields[2]),
		StartDate:         startDate,
		EndDate:           endDate,
		StartTime:         startTime,
		EndTime:           endTime,
		DateOfReservation: dateOfReservation,
		TotalCost:         totalCost,
		DownPayment:       downPayment,
	}, nil
}

func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
