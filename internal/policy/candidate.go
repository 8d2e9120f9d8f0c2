package policy

import (
	"mpcs-reservation/internal/calendar"
	"mpcs-reservation/internal/domain"
)

// Candidate is a proposed reservation, not yet priced or assigned an
// id, as it arrives at the policy layer for evaluation.
type Candidate struct {
	CustomerID        string
	Resource          domain.Resource
	StartDate         calendar.Date
	EndDate           calendar.Date
	StartTime         calendar.HalfHour
	EndTime           calendar.HalfHour
	DateOfReservation calendar.Date
}

// Days returns every calendar day the candidate would occupy.
func (c Candidate) Days() []calendar.Date {
	return calendar.ExpandRange(c.StartDate, c.EndDate)
}

func coversDay(r domain.Reservation, d calendar.Date) bool {
	return !d.Before(r.StartDate) && !r.EndDate.Before(d)
}
