package domain

import (
	"fmt"
	"strconv"
	"strings"

	"mpcs-reservation/internal/calendar"
)

// TransactionKind distinguishes a reservation transaction from a
// cancellation transaction.
type TransactionKind int

const (
	KindReservation TransactionKind = iota
	KindCancellation
)

func (k TransactionKind) String() string {
	if k == KindCancellation {
		return "CANCELLATION"
	}
	return "RESERVATION"
}

// Transaction is an immutable audit record of either a reservation
// creation or a cancellation. See spec.md §3.
type Transaction struct {
	ID              int
	Kind            TransactionKind
	TransactionDate calendar.Date
	Payload         Reservation
	Amount          float64
	Timestamp       int64
	StaffID         string
}

// EncodeKind renders the kind field in its canonical on-disk form:
// "RESERVATION" or "CANCELLATION$<amount>".
func (t Transaction) EncodeKind() string {
	if t.Kind == KindCancellation {
		return fmt.Sprintf("CANCELLATION$%s", formatAmount(t.Amount))
	}
	return "RESERVATION"
}

// DecodeKind splits the on-disk kind field into a TransactionKind and,
// for cancellations, the refund amount it carries. For RESERVATION
// records the amount is not carried in the kind field; callers fall
// back to the payload's down payment (spec.md §4.3 amount invariant).
func DecodeKind(raw string) (TransactionKind, float64, error) {
	parts := strings.SplitN(raw, "$", 2)
	switch parts[0] {
	case "RESERVATION":
		return KindReservation, 0, nil
	case "CANCELLATION":
		if len(parts) != 2 {
			return KindCancellation, 0, fmt.Errorf("cancellation transaction missing amount: %q", raw)
		}
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return KindCancellation, 0, fmt.Errorf("cancellation amount: %w", err)
		}
		return KindCancellation, amount, nil
	default:
		return 0, 0, fmt.Errorf("unknown transaction kind: %q", raw)
	}
}

// EncodeFields renders the transaction as its 16 on-disk fields, in order.
func (t Transaction) EncodeFields() []string {
	fields := make([]string, 0, 16)
	fields = append(fields, strconv.Itoa(t.ID), t.EncodeKind(), t.TransactionDate.String())
	fields = append(fields, t.Payload.EncodeFields()...)
	fields = append(fields, strconv.FormatInt(t.Timestamp, 10), t.StaffID)
	return fields
}

const transactionFieldCount = 3 + reservationFieldCount + 2

// DecodeTransactionFields parses the 16 on-disk fields of a transaction
// record, in order.
func DecodeTransactionFields(fields []string) (Transaction, error) {
	if len(fields) != transactionFieldCount {
		return Transaction{}, fmt.Errorf("transaction record: expected %d fields, got %d", transactionFieldCount, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction id: %w", err)
	}
	kind, amount, err := DecodeKind(fields[1])
	if err != nil {
		return Transaction{}, err
	}
	transactionDate, err := calendar.ParseDate(fields[2])
	if err != nil {
		return Transaction{}, err
	}
	payload, err := DecodeReservationFields(fields[3 : 3+reservationFieldCount])
	if err != nil {
		return Transaction{}, err
	}
	if kind == KindReservation {
		amount = payload.DownPayment
	}
	timestamp, err := strconv.ParseInt(fields[3+reservationFieldCount], 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("timestamp: %w", err)
	}
	staffID := fields[3+reservationFieldCount+1]
	return Transaction{
		ID:              id,
		Kind:            kind,
		TransactionDate: transactionDate,
		Payload:         payload,
		Amount:          amount,
		Timestamp:       timestamp,
		StaffID:         staffID,
	}, nil
}
