package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpcs-reservation/internal/calendar"
	"mpcs-reservation/internal/domain"
)

func mustDate(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustHalfHour(t *testing.T, s string) calendar.HalfHour {
	t.Helper()
	h, err := calendar.ParseHalfHour(s)
	require.NoError(t, err)
	return h
}

// Scenario 1: workshop admit, single day, no discount.
func TestScenarioWorkshopAdmitNoDiscount(t *testing.T) {
	c := Candidate{
		CustomerID:        "alice",
		Resource:          domain.Workshop,
		StartDate:         mustDate(t, "04-28-2022"),
		EndDate:           mustDate(t, "04-28-2022"),
		StartTime:         mustHalfHour(t, "11:00"),
		EndTime:           mustHalfHour(t, "11:30"),
		DateOfReservation: mustDate(t, "04-25-2022"),
	}
	require.Nil(t, Evaluate(nil, c))
	totalCost, downPayment, discount := Price(c)
	assert.Equal(t, 49.5, totalCost)
	assert.Equal(t, 0.0, downPayment)
	assert.Equal(t, 0, discount)
}

// Scenario 2: hvc admit, recurring two days.
func TestScenarioHVCAdmitTwoDays(t *testing.T) {
	c := Candidate{
		CustomerID:        "bob",
		Resource:          domain.HVC,
		StartDate:         mustDate(t, "04-28-2022"),
		EndDate:           mustDate(t, "04-29-2022"),
		StartTime:         mustHalfHour(t, "11:00"),
		EndTime:           mustHalfHour(t, "11:30"),
		DateOfReservation: mustDate(t, "04-25-2022"),
	}
	require.Nil(t, Evaluate(nil, c))
	totalCost, downPayment, discount := Price(c)
	assert.Equal(t, 20000.0, totalCost)
	assert.Equal(t, 10000.0, downPayment)
	assert.Equal(t, 0, discount)
}

// Scenario 3: discount path.
func TestScenarioAdvanceBookingDiscount(t *testing.T) {
	c := Candidate{
		CustomerID:        "alice",
		Resource:          domain.Workshop,
		StartDate:         mustDate(t, "05-16-2022"),
		EndDate:           mustDate(t, "05-16-2022"),
		StartTime:         mustHalfHour(t, "11:00"),
		EndTime:           mustHalfHour(t, "11:30"),
		DateOfReservation: mustDate(t, "04-25-2022"),
	}
	require.Nil(t, Evaluate(nil, c))
	totalCost, _, discount := Price(c)
	assert.Equal(t, 37.125, totalCost)
	assert.Equal(t, 25, discount)
}

// Scenario 4: weekly quota violation.
func TestScenarioWeeklyQuotaViolation(t *testing.T) {
	snapshot := []domain.Reservation{
		{CustomerID: "carol", Resource: domain.Workshop, StartDate: mustDate(t, "04-25-2022"), EndDate: mustDate(t, "04-25-2022"), StartTime: mustHalfHour(t, "11:00"), EndTime: mustHalfHour(t, "11:30")},
		{CustomerID: "carol", Resource: domain.Workshop, StartDate: mustDate(t, "04-26-2022"), EndDate: mustDate(t, "04-26-2022"), StartTime: mustHalfHour(t, "11:00"), EndTime: mustHalfHour(t, "11:30")},
		{CustomerID: "carol", Resource: domain.Workshop, StartDate: mustDate(t, "04-27-2022"), EndDate: mustDate(t, "04-27-2022"), StartTime: mustHalfHour(t, "11:00"), EndTime: mustHalfHour(t, "11:30")},
	}
	c := Candidate{
		CustomerID:        "carol",
		Resource:          domain.Workshop,
		StartDate:         mustDate(t, "04-28-2022"),
		EndDate:           mustDate(t, "04-28-2022"),
		StartTime:         mustHalfHour(t, "11:00"),
		EndTime:           mustHalfHour(t, "11:30"),
		DateOfReservation: mustDate(t, "04-25-2022"),
	}
	err := Evaluate(snapshot, c)
	require.NotNil(t, err)
	assert.Equal(t, "A client can only make reservations for 3 different days in a given week", err.Message)
}

// Scenario 5: HVC cooldown.
func TestScenarioHVCCooldown(t *testing.T) {
	snapshot := []domain.Reservation{
		{CustomerID: "dave", Resource: domain.HVC, StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022"), StartTime: mustHalfHour(t, "11:30"), EndTime: mustHalfHour(t, "12:00")},
	}
	c := Candidate{
		CustomerID:        "erin",
		Resource:          domain.HVC,
		StartDate:         mustDate(t, "04-28-2022"),
		EndDate:           mustDate(t, "04-28-2022"),
		StartTime:         mustHalfHour(t, "14:30"),
		EndTime:           mustHalfHour(t, "15:00"),
		DateOfReservation: mustDate(t, "04-25-2022"),
	}
	err := Evaluate(snapshot, c)
	require.NotNil(t, err)
}

// Scenario 6: cancellation refund tiers.
func TestScenarioRefundTiers(t *testing.T) {
	startDate := mustDate(t, "05-10-2022")
	percent, refund := Refund(startDate, mustDate(t, "05-02-2022"), 1000)
	assert.Equal(t, 75, percent)
	assert.Equal(t, 750.0, refund)

	percent, refund = Refund(startDate, mustDate(t, "05-05-2022"), 1000)
	assert.Equal(t, 50, percent)
	assert.Equal(t, 500.0, refund)

	percent, refund = Refund(startDate, mustDate(t, "05-09-2022"), 1000)
	assert.Equal(t, 0, percent)
	assert.Equal(t, 0.0, refund)
}

func TestRuleUnknownResource(t *testing.T) {
	c := Candidate{Resource: "cyclotron", StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022")}
	err := ruleKnownResource(nil, c)
	require.NotNil(t, err)
}

func TestRuleNotInPast(t *testing.T) {
	c := Candidate{
		DateOfReservation: mustDate(t, "04-28-2022"),
		StartDate:         mustDate(t, "04-25-2022"),
	}
	err := ruleNotInPast(nil, c)
	require.NotNil(t, err)
	assert.Equal(t, "Cannot reserve time already passed.", err.Message)
}

func TestRuleWithinAdvanceWindow(t *testing.T) {
	c := Candidate{
		DateOfReservation: mustDate(t, "04-25-2022"),
		EndDate:           mustDate(t, "06-15-2022"),
	}
	err := ruleWithinAdvanceWindow(nil, c)
	require.NotNil(t, err)
	assert.Equal(t, "Cannot reserve time more than 30 days away.", err.Message)
}

func TestRuleBusinessHoursClosedOnSunday(t *testing.T) {
	c := Candidate{
		StartDate: mustDate(t, "05-01-2022"), // Sunday
		EndDate:   mustDate(t, "05-01-2022"),
		StartTime: mustHalfHour(t, "11:00"),
		EndTime:   mustHalfHour(t, "11:30"),
	}
	err := ruleBusinessHours(nil, c)
	require.NotNil(t, err)
}

func TestRuleOneSpecialAtATime(t *testing.T) {
	snapshot := []domain.Reservation{
		{CustomerID: "alice", Resource: domain.Microvac, StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022"), StartTime: mustHalfHour(t, "11:00"), EndTime: mustHalfHour(t, "12:00")},
	}
	c := Candidate{
		CustomerID: "alice",
		Resource:   domain.Extruder,
		StartDate:  mustDate(t, "04-28-2022"),
		EndDate:    mustDate(t, "04-28-2022"),
		StartTime:  mustHalfHour(t, "11:30"),
		EndTime:    mustHalfHour(t, "12:30"),
	}
	err := ruleOneSpecialAtATime(snapshot, c)
	require.NotNil(t, err)
	assert.Equal(t, "A client can only reserve one special machine at a time", err.Message)
}

func TestRuleCapacityRejectsOverLimit(t *testing.T) {
	var snapshot []domain.Reservation
	for i := 0; i < 2; i++ {
		snapshot = append(snapshot, domain.Reservation{
			CustomerID: "c", Resource: domain.Microvac,
			StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022"),
			StartTime: mustHalfHour(t, "11:00"), EndTime: mustHalfHour(t, "11:30"),
		})
	}
	c := Candidate{
		CustomerID: "new-customer",
		Resource:   domain.Microvac,
		StartDate:  mustDate(t, "04-28-2022"),
		EndDate:    mustDate(t, "04-28-2022"),
		StartTime:  mustHalfHour(t, "11:00"),
		EndTime:    mustHalfHour(t, "11:30"),
	}
	err := ruleCapacity(snapshot, c)
	require.NotNil(t, err)
}

func TestRuleIrradiatorExclusive(t *testing.T) {
	snapshot := []domain.Reservation{
		{CustomerID: "c", Resource: domain.Irradiator, StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022"), StartTime: mustHalfHour(t, "11:00"), EndTime: mustHalfHour(t, "11:30")},
	}
	c := Candidate{
		CustomerID: "other",
		Resource:   domain.Irradiator,
		StartDate:  mustDate(t, "04-28-2022"),
		EndDate:    mustDate(t, "04-28-2022"),
		StartTime:  mustHalfHour(t, "11:00"),
		EndTime:    mustHalfHour(t, "11:30"),
	}
	err := ruleIrradiatorExclusive(snapshot, c)
	require.NotNil(t, err)
	assert.Equal(t, "Only 1 irradiator can be used at a time", err.Message)
}

func TestRuleHarvesterCoopLimit(t *testing.T) {
	var snapshot []domain.Reservation
	snapshot = append(snapshot, domain.Reservation{CustomerID: "h", Resource: domain.Harvester, StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022"), StartTime: mustHalfHour(t, "11:00"), EndTime: mustHalfHour(t, "12:00")})
	for i, r := range []domain.Resource{domain.Microvac, domain.Extruder, domain.Extruder, domain.Extruder} {
		snapshot = append(snapshot, domain.Reservation{CustomerID: "cust" + string(rune('a'+i)), Resource: r, StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022"), StartTime: mustHalfHour(t, "11:00"), EndTime: mustHalfHour(t, "11:30")})
	}
	c := Candidate{
		CustomerID: "new",
		Resource:   domain.Microvac,
		StartDate:  mustDate(t, "04-28-2022"),
		EndDate:    mustDate(t, "04-28-2022"),
		StartTime:  mustHalfHour(t, "11:00"),
		EndTime:    mustHalfHour(t, "11:30"),
	}
	err := ruleHarvesterCoop(snapshot, c)
	require.NotNil(t, err)
}

func TestRuleIrradiatorCooldown(t *testing.T) {
	snapshot := []domain.Reservation{
		{CustomerID: "a", Resource: domain.Irradiator, StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022"), StartTime: mustHalfHour(t, "09:00"), EndTime: mustHalfHour(t, "09:30")},
		{CustomerID: "b", Resource: domain.Irradiator, StartDate: mustDate(t, "04-28-2022"), EndDate: mustDate(t, "04-28-2022"), StartTime: mustHalfHour(t, "10:00"), EndTime: mustHalfHour(t, "10:30")},
	}
	c := Candidate{
		CustomerID: "c",
		Resource:   domain.Irradiator,
		StartDate:  mustDate(t, "04-28-2022"),
		EndDate:    mustDate(t, "04-28-2022"),
		StartTime:  mustHalfHour(t, "09:30"),
		EndTime:    mustHalfHour(t, "10:00"),
	}
	err := ruleIrradiatorCooldown(snapshot, c)
	require.NotNil(t, err)
	assert.Equal(t, "Irradiators need to cool down for 1 hour between uses", err.Message)
}
