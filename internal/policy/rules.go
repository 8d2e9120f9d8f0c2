package policy

import (
	"mpcs-reservation/internal/calendar"
	"mpcs-reservation/internal/domain"
)

// Rule is one independently testable admission predicate. It inspects
// the current reservation snapshot against a candidate and returns
// nil if the candidate satisfies the rule, or a RuleError naming the
// violation.
type Rule func(snapshot []domain.Reservation, c Candidate) *RuleError

// Rules lists the twelve admission rules in the evaluation order
// fixed by spec.md §4.3: the first violation returned wins.
var Rules = []Rule{
	ruleKnownResource,
	ruleNotInPast,
	ruleWithinAdvanceWindow,
	ruleHalfHourAlignment,
	ruleBusinessHours,
	ruleOneSpecialAtATime,
	ruleCapacity,
	ruleIrradiatorExclusive,
	ruleHarvesterCoop,
	ruleHVCCooldown,
	ruleIrradiatorCooldown,
	ruleWeeklyQuota,
}

// Evaluate runs every rule against the candidate in order, returning
// the first violation, or nil if the candidate is admissible.
func Evaluate(snapshot []domain.Reservation, c Candidate) *RuleError {
	for _, rule := range Rules {
		if err := rule(snapshot, c); err != nil {
			return err
		}
	}
	return nil
}

// rule 1: known resource.
func ruleKnownResource(_ []domain.Reservation, c Candidate) *RuleError {
	if !c.Resource.Known() {
		return reservationError("Unsupported resource: %s", c.Resource)
	}
	return nil
}

// rule 2: not in the past.
func ruleNotInPast(_ []domain.Reservation, c Candidate) *RuleError {
	if c.DateOfReservation.DaysUntil(c.StartDate) < 0 {
		return reservationError("Cannot reserve time already passed.")
	}
	return nil
}

// rule 3: within the 30-day advance-booking window.
func ruleWithinAdvanceWindow(_ []domain.Reservation, c Candidate) *RuleError {
	if c.DateOfReservation.DaysUntil(c.EndDate) > 30 {
		return reservationError("Cannot reserve time more than 30 days away.")
	}
	return nil
}

// rule 4: start strictly precedes end, per the Reservation invariant
// in spec.md §3. Minute-of-hour alignment is enforced earlier, at
// parse time, by calendar.ParseHalfHour.
func ruleHalfHourAlignment(_ []domain.Reservation, c Candidate) *RuleError {
	if c.StartTime >= c.EndTime {
		return reservationError("Reservations for all resources are made in 30 minute blocks and always start on the hour or half hour")
	}
	return nil
}

// rule 5: business hours, checked on every day the candidate occupies.
func ruleBusinessHours(_ []domain.Reservation, c Candidate) *RuleError {
	for _, d := range c.Days() {
		if !calendar.Open(c.StartTime, c.EndTime, d) {
			return reservationError("Cannot reserve time interval from %s to %s on %s", c.StartTime, c.EndTime, d)
		}
	}
	return nil
}

// rule 6: one special machine at a time per customer.
func ruleOneSpecialAtATime(snapshot []domain.Reservation, c Candidate) *RuleError {
	for _, d := range c.Days() {
		for _, r := range snapshot {
			if r.CustomerID != c.CustomerID || !r.Resource.Special() || !coversDay(r, d) {
				continue
			}
			if calendar.Overlaps(r.StartTime, r.EndTime, c.StartTime, c.EndTime) {
				return reservationError("A client can only reserve one special machine at a time")
			}
		}
	}
	return nil
}

// rule 7: per-half-hour capacity for the candidate's resource.
func ruleCapacity(snapshot []domain.Reservation, c Candidate) *RuleError {
	capacity := c.Resource.PerHalfHourCapacity()
	for _, d := range c.Days() {
		for t := c.StartTime; t < c.EndTime; t++ {
			count := 0
			for _, r := range snapshot {
				if r.Resource == c.Resource && r.ActiveOn(d, t) {
					count++
				}
			}
			if count+1 > capacity {
				return reservationError("Not enough available %s, %d already reserved", c.Resource, count)
			}
		}
	}
	return nil
}

// rule 8: at most one irradiator in use at any half-hour.
func ruleIrradiatorExclusive(snapshot []domain.Reservation, c Candidate) *RuleError {
	if c.Resource != domain.Irradiator {
		return nil
	}
	for _, d := range c.Days() {
		for t := c.StartTime; t < c.EndTime; t++ {
			count := 0
			for _, r := range snapshot {
				if r.Resource == domain.Irradiator && r.ActiveOn(d, t) {
					count++
				}
			}
			if count >= 1 {
				return reservationError("Only 1 irradiator can be used at a time")
			}
		}
	}
	return nil
}

// rule 9: no more than 3 other machines may run while the harvester
// is operating.
func ruleHarvesterCoop(snapshot []domain.Reservation, c Candidate) *RuleError {
	for _, d := range c.Days() {
		for t := c.StartTime; t < c.EndTime; t++ {
			harvesterRunning := c.Resource == domain.Harvester
			specialCount := 0
			for _, r := range snapshot {
				if !r.ActiveOn(d, t) {
					continue
				}
				if r.Resource == domain.Harvester {
					harvesterRunning = true
				}
				if r.Resource.Special() {
					specialCount++
				}
			}
			if c.Resource.Special() {
				specialCount++
			}
			if harvesterRunning && specialCount > 4 {
				return reservationError("Only 3 other machines can run while the 1.21 gigawatt lightning harvester is operating")
			}
		}
	}
	return nil
}

// rule 10: hvc requires a 6-hour cooldown (12 half-hours) from any
// other hvc reservation on the same day.
func ruleHVCCooldown(snapshot []domain.Reservation, c Candidate) *RuleError {
	if c.Resource != domain.HVC {
		return nil
	}
	const cooldownHalfHours = calendar.HalfHour(12)
	windowStart := c.StartTime - cooldownHalfHours
	windowEnd := c.EndTime + cooldownHalfHours
	for _, d := range c.Days() {
		for _, r := range snapshot {
			if r.Resource != domain.HVC || !coversDay(r, d) {
				continue
			}
			if calendar.Overlaps(windowStart, windowEnd, r.StartTime, r.EndTime) {
				return reservationError("High velocity crusher needs to cool down for 6 hours between uses, hvc currently reserved for %s-%s.", r.StartTime, r.EndTime)
			}
		}
	}
	return nil
}

// rule 11: irradiator requires a 1-hour cooldown (2 half-hours): the
// candidate's window widened by that much on each side may overlap at
// most one existing irradiator reservation on the same day.
func ruleIrradiatorCooldown(snapshot []domain.Reservation, c Candidate) *RuleError {
	if c.Resource != domain.Irradiator {
		return nil
	}
	const cooldownHalfHours = calendar.HalfHour(2)
	windowStart := c.StartTime - cooldownHalfHours
	windowEnd := c.EndTime + cooldownHalfHours
	for _, d := range c.Days() {
		count := 0
		for _, r := range snapshot {
			if r.Resource != domain.Irradiator || !coversDay(r, d) {
				continue
			}
			if calendar.Overlaps(windowStart, windowEnd, r.StartTime, r.EndTime) {
				count++
			}
		}
		if count >= 2 {
			return reservationError("Irradiators need to cool down for 1 hour between uses")
		}
	}
	return nil
}

// rule 12: no more than 3 reservation-days per customer per ISO week.
func ruleWeeklyQuota(snapshot []domain.Reservation, c Candidate) *RuleError {
	buckets := make(map[calendar.WeekBucket]int)
	for _, r := range snapshot {
		if r.CustomerID != c.CustomerID {
			continue
		}
		for _, d := range r.Days() {
			buckets[calendar.BucketOf(d)]++
		}
	}
	for _, d := range c.Days() {
		buckets[calendar.BucketOf(d)]++
	}
	for _, count := range buckets {
		if count > 3 {
			return reservationError("A client can only make reservations for 3 different days in a given week")
		}
	}
	return nil
}
