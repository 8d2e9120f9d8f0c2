// Package engine orchestrates admission and cancellation: it
// assembles a candidate reservation, runs it against Policy using the
// current Store view, and on success commits the Reservation and its
// paired Transaction. See spec.md §4.4.
package engine

import (
	"fmt"
	"sync"

	"mpcs-reservation/internal/calendar"
	"mpcs-reservation/internal/domain"
	"mpcs-reservation/internal/policy"
	storeiface "mpcs-reservation/internal/store/interfaces"
)

// Clock supplies the wall-clock timestamp recorded on every
// transaction. Production wiring uses time.Now().Unix(); tests supply
// a fixed value so transaction records are reproducible.
type Clock func() int64

// Engine is the sole mutator of a Store. It serializes every request
// through a single mutex, per spec.md §5.
type Engine struct {
	mu    sync.Mutex
	store storeiface.Store
	clock Clock
}

// New builds an Engine backed by store. clock defaults to a zero
// timestamp source if nil; callers in cmd/server wire time.Now().Unix.
func New(store storeiface.Store, clock Clock) *Engine {
	if clock == nil {
		clock = func() int64 { return 0 }
	}
	return &Engine{store: store, clock: clock}
}

// AdmitRequest is the fully-parsed candidate a caller submits for
// admission.
type AdmitRequest struct {
	CustomerID        string
	Resource          domain.Resource
	StartDate         calendar.Date
	EndDate           calendar.Date
	StartTime         calendar.HalfHour
	EndTime           calendar.HalfHour
	DateOfReservation calendar.Date
	StaffID           string
}

// AdmitResult is the positive outcome of an admitted reservation.
type AdmitResult struct {
	ReservationID int
	TotalCost     float64
	DownPayment   float64
	Discount      int
}

// RejectError wraps a policy violation with the operation that
// produced it, matching the `<operation> failed: <reason>` contract
// spec.md §6 assigns to the HTTP edge.
type RejectError struct {
	Category policy.Category
	Message  string
}

func (e *RejectError) Error() string {
	return e.Message
}

// NotFoundError reports a cancellation against an unknown reservation id.
type NotFoundError struct {
	ReservationID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("invalid reservation id %d", e.ReservationID)
}

// Admit evaluates req against Policy using the current Store snapshot.
// On acceptance it allocates an id, computes pricing, appends the
// Reservation and its RESERVATION Transaction, and persists the Store.
func (e *Engine) Admit(req AdmitRequest) (AdmitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate := policy.Candidate{
		CustomerID:        req.CustomerID,
		Resource:          req.Resource,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		DateOfReservation: req.DateOfReservation,
	}

	snapshot := e.store.SnapshotReservations()
	if violation := policy.Evaluate(snapshot, candidate); violation != nil {
		// The source persists the Store unconditionally, even on
		// rejection. No mutation occurred, so there is nothing to
		// write; skipping this is safe, per spec.md §9 Design Notes.
		return AdmitResult{}, &RejectError{Category: violation.Category, Message: violation.Message}
	}

	totalCost, downPayment, discount := policy.Price(candidate)

	reservationID := e.store.NextReservationID()
	reservation := domain.Reservation{
		ID:                reservationID,
		CustomerID:        req.CustomerID,
		Resource:          req.Resource,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		DateOfReservation: req.DateOfReservation,
		TotalCost:         totalCost,
		DownPayment:       downPayment,
	}
	if err := e.store.AppendReservation(reservation); err != nil {
		return AdmitResult{}, fmt.Errorf("append reservation: %w", err)
	}

	transaction := domain.Transaction{
		ID:              e.store.NextTransactionID(),
		Kind:            domain.KindReservation,
		TransactionDate: req.DateOfReservation,
		Payload:         reservation,
		Amount:          reservation.DownPayment,
		Timestamp:       e.clock(),
		StaffID:         req.StaffID,
	}
	if err := e.store.AppendTransaction(transaction); err != nil {
		return AdmitResult{}, fmt.Errorf("append reservation transaction: %w", err)
	}

	if err := e.store.Persist(); err != nil {
		return AdmitResult{}, fmt.Errorf("persist store: %w", err)
	}

	return AdmitResult{
		ReservationID: reservationID,
		TotalCost:     totalCost,
		DownPayment:   downPayment,
		Discount:      discount,
	}, nil
}

// CancelResult is the positive outcome of a cancellation.
type CancelResult struct {
	PercentReturned int
	Refund          float64
}

// Cancel looks up reservationID, removes it, computes the refund via
// Policy, and appends a CANCELLATION Transaction carrying the full
// snapshot of the removed reservation.
func (e *Engine) Cancel(reservationID int, cancelDate calendar.Date, staffID string) (CancelResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reservation, found := e.store.FindReservation(reservationID)
	if !found {
		return CancelResult{}, &NotFoundError{ReservationID: reservationID}
	}

	percentReturned, refund := policy.Refund(reservation.StartDate, cancelDate, reservation.DownPayment)

	if !e.store.RemoveReservation(reservationID) {
		return CancelResult{}, &NotFoundError{ReservationID: reservationID}
	}

	transaction := domain.Transaction{
		ID:              e.store.NextTransactionID(),
		Kind:            domain.KindCancellation,
		TransactionDate: cancelDate,
		Payload:         reservation,
		Amount:          refund,
		Timestamp:       e.clock(),
		StaffID:         staffID,
	}
	if err := e.store.AppendTransaction(transaction); err != nil {
		return CancelResult{}, fmt.Errorf("append cancellation transaction: %w", err)
	}

	if err := e.store.Persist(); err != nil {
		return CancelResult{}, fmt.Errorf("persist store: %w", err)
	}

	return CancelResult{PercentReturned: percentReturned, Refund: refund}, nil
}

// ListReservations returns every reservation whose start_date falls
// within [startDate, endDate], optionally filtered to one customer.
func (e *Engine) ListReservations(startDate, endDate calendar.Date, customerID string) []domain.Reservation {
	e.mu.Lock()
	snapshot := e.store.SnapshotReservations()
	e.mu.Unlock()

	var out []domain.Reservation
	for _, r := range snapshot {
		if customerID != "" && r.CustomerID != customerID {
			continue
		}
		if r.StartDate.Before(startDate) || endDate.Before(r.StartDate) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ListTransactions returns every transaction whose transaction_date
// falls within [startDate, endDate].
func (e *Engine) ListTransactions(startDate, endDate calendar.Date) []domain.Transaction {
	e.mu.Lock()
	snapshot := e.store.SnapshotTransactions()
	e.mu.Unlock()

	var out []domain.Transaction
	for _, tx := range snapshot {
		if tx.TransactionDate.Before(startDate) || endDate.Before(tx.TransactionDate) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
