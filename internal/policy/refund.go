package policy

import "mpcs-reservation/internal/calendar"

// Refund computes the percent of the down payment returned and the
// dollar refund, given how many days before the reservation's start
// the cancellation is made, per spec.md §4.3.
func Refund(startDate, cancelDate calendar.Date, downPayment float64) (percentReturned int, refund float64) {
	daysBefore := cancelDate.DaysUntil(startDate)
	switch {
	case daysBefore >= 7:
		return 75, 0.75 * downPayment
	case daysBefore >= 2:
		return 50, 0.5 * downPayment
	default:
		return 0, 0
	}
}
