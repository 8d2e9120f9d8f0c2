package policy

import "mpcs-reservation/internal/domain"

// halfHourPrice gives the dollar price of one half-hour slot of each
// resource, per spec.md §4.3. The hvc rate is not halved relative to
// the others; this reproduces the source pricing formula exactly (see
// DESIGN.md, "HVC pricing asymmetry").
var halfHourPrice = map[domain.Resource]float64{
	domain.Workshop:   49.50,
	domain.Microvac:   500.00,
	domain.Irradiator: 1110.00,
	domain.Extruder:   300.00,
	domain.HVC:        10000.00,
	domain.Harvester:  4400.00,
}

// advanceDiscountDays is the minimum booking lead time, in days, that
// earns the 25% advance-booking discount.
const advanceDiscountDays = 14

// Price computes the total cost, down payment, and discount percent
// for an admissible candidate.
func Price(c Candidate) (totalCost, downPayment float64, discountPercent int) {
	days := c.StartDate.DaysUntil(c.EndDate) + 1
	halfHours := int(c.EndTime-c.StartTime) * days
	totalCost = float64(halfHours) * halfHourPrice[c.Resource]

	if c.DateOfReservation.DaysUntil(c.StartDate) >= advanceDiscountDays {
		totalCost *= 0.75
		discountPercent = 25
	}

	if c.Resource == domain.Workshop {
		downPayment = 0
	} else {
		downPayment = totalCost * 0.5
	}
	return totalCost, downPayment, discountPercent
}
