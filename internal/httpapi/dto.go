package httpapi

import (
	"mpcs-reservation/internal/calendar"
	"mpcs-reservation/internal/domain"
)

// ReserveRequest is the wire shape of an admission request.
type ReserveRequest struct {
	CustomerID        string `json:"customer_id" binding:"required"`
	Resource          string `json:"resource" binding:"required"`
	StartDate         string `json:"start_date" binding:"required"`
	EndDate           string `json:"end_date" binding:"required"`
	StartTime         string `json:"start_time" binding:"required"`
	EndTime           string `json:"end_time" binding:"required"`
	DateOfReservation string `json:"date_of_reservation" binding:"required"`
}

// ReserveResponse mirrors engine.AdmitResult.
type ReserveResponse struct {
	ReservationID int     `json:"reservation_id"`
	TotalCost     float64 `json:"total_cost"`
	DownPayment   float64 `json:"down_payment"`
	Discount      int     `json:"discount"`
}

// CancelRequest is the wire shape of a cancellation request.
type CancelRequest struct {
	CancelDate string `json:"cancel_date" binding:"required"`
}

// CancelResponse mirrors engine.CancelResult.
type CancelResponse struct {
	PercentReturned int     `json:"percent_returned"`
	Refund          float64 `json:"refund"`
}

// ReservationDTO is the wire shape of a domain.Reservation.
type ReservationDTO struct {
	ReservationID     int     `json:"reservation_id"`
	CustomerID        string  `json:"customer_id"`
	Resource          string  `json:"resource"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	DateOfReservation string  `json:"date_of_reservation"`
	TotalCost         float64 `json:"total_cost"`
	DownPayment       float64 `json:"down_payment"`
}

func reservationDTO(r domain.Reservation) ReservationDTO {
	return ReservationDTO{
		ReservationID:     r.ID,
		CustomerID:        r.CustomerID,
		Resource:          string(r.Resource),
		StartDate:         r.StartDate.String(),
		EndDate:           r.EndDate.String(),
		StartTime:         r.StartTime.String(),
		EndTime:           r.EndTime.String(),
		DateOfReservation: r.DateOfReservation.String(),
		TotalCost:         r.TotalCost,
		DownPayment:       r.DownPayment,
	}
}

// TransactionDTO is the wire shape of a domain.Transaction.
type TransactionDTO struct {
	TransactionID   int            `json:"transaction_id"`
	Kind            string         `json:"kind"`
	TransactionDate string         `json:"transaction_date"`
	Payload         ReservationDTO `json:"payload"`
	Amount          float64        `json:"amount"`
	Timestamp       int64          `json:"timestamp"`
	StaffID         string         `json:"staff_id"`
}

func transactionDTO(t domain.Transaction) TransactionDTO {
	return TransactionDTO{
		TransactionID:   t.ID,
		Kind:            t.Kind.String(),
		TransactionDate: t.TransactionDate.String(),
		Payload:         reservationDTO(t.Payload),
		Amount:          t.Amount,
		Timestamp:       t.Timestamp,
		StaffID:         t.StaffID,
	}
}

func parseDate(s string) (calendar.Date, error) {
	return calendar.ParseDate(s)
}

func parseHalfHour(s string) (calendar.HalfHour, error) {
	return calendar.ParseHalfHour(s)
}

func parseResource(s string) (domain.Resource, error) {
	r := domain.Resource(s)
	if !r.Known() {
		return "", errUnknownResource(s)
	}
	return r, nil
}
