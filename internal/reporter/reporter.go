// Package reporter implements the read-only, range-filtered
// projections over reservation and transaction state, and their
// tabular console rendering. Nothing here mutates a Store.
package reporter

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mpcs-reservation/internal/calendar"
	"mpcs-reservation/internal/domain"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a dollar amount the way console reports and
// the CLI client print it.
func FormatCurrency(amount float64) string {
	return currencyPrinter.Sprint(currency.Symbol(currency.USD.Amount(amount)))
}

// ReservationsInRange filters reservations to those whose start_date
// falls within [start, end], optionally restricted to one customer.
// This mirrors generate_reservations_report in
// original_source/server/reserve.py.
func ReservationsInRange(reservations []domain.Reservation, start, end calendar.Date, customerID string) []domain.Reservation {
	var out []domain.Reservation
	for _, r := range reservations {
		if customerID != "" && r.CustomerID != customerID {
			continue
		}
		if r.StartDate.Before(start) || end.Before(r.StartDate) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// TransactionsInRange filters transactions to those whose
// transaction_date falls within [start, end].
func TransactionsInRange(transactions []domain.Transaction, start, end calendar.Date) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range transactions {
		if tx.TransactionDate.Before(start) || end.Before(tx.TransactionDate) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// RenderReservations writes a table of reservations to w.
func RenderReservations(w io.Writer, reservations []domain.Reservation) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Customer", "Resource", "Start Date", "End Date", "Start", "End", "Total Cost", "Down Payment"})
	for _, r := range reservations {
		t.AppendRow(table.Row{
			r.ID, r.CustomerID, r.Resource,
			r.StartDate.String(), r.EndDate.String(),
			r.StartTime.String(), r.EndTime.String(),
			FormatCurrency(r.TotalCost), FormatCurrency(r.DownPayment),
		})
	}
	t.Render()
}

// TransactionAmountLabel splits the on-disk kind encoding into a
// display kind and the amount to show, defaulting to the reservation
// payload's down payment for RESERVATION records, per spec.md §6's
// reporter contract.
func TransactionAmountLabel(tx domain.Transaction) (kind string, amount float64) {
	if tx.Kind == domain.KindCancellation {
		return "CANCELLATION", tx.Amount
	}
	return "RESERVATION", tx.Payload.DownPayment
}

// RenderTransactions writes a table of transactions to w.
func RenderTransactions(w io.Writer, transactions []domain.Transaction) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Kind", "Date", "Reservation", "Customer", "Amount", "Staff"})
	for _, tx := range transactions {
		kind, amount := TransactionAmountLabel(tx)
		t.AppendRow(table.Row{
			tx.ID, kind, tx.TransactionDate.String(),
			tx.Payload.ID, tx.Payload.CustomerID,
			FormatCurrency(amount), tx.StaffID,
		})
	}
	t.Render()
}

// FinancialSummary totals reservation revenue and refunds issued
// across a set of transactions, the same figures the CLI client's
// "financial" command surfaces.
type FinancialSummary struct {
	GrossDownPayments float64
	TotalRefunds      float64
	ReservationCount  int
	CancellationCount int
}

// Summarize computes a FinancialSummary over transactions.
func Summarize(transactions []domain.Transaction) FinancialSummary {
	var s FinancialSummary
	for _, tx := range transactions {
		switch tx.Kind {
		case domain.KindReservation:
			s.GrossDownPayments += tx.Payload.DownPayment
			s.ReservationCount++
		case domain.KindCancellation:
			s.TotalRefunds += tx.Amount
			s.CancellationCount++
		}
	}
	return s
}

// RenderFinancialSummary writes a one-row table of s to w.
func RenderFinancialSummary(w io.Writer, s FinancialSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Reservations", "Gross Down Payments", "Cancellations", "Total Refunds", "Net"})
	t.AppendRow(table.Row{
		s.ReservationCount, FormatCurrency(s.GrossDownPayments),
		s.CancellationCount, FormatCurrency(s.TotalRefunds),
		FormatCurrency(s.GrossDownPayments - s.TotalRefunds),
	})
	t.Render()
}

// CustomerLabel is a small helper the CLI uses to echo back customer
// filters in report headings.
func CustomerLabel(customerID string) string {
	if strings.TrimSpace(customerID) == "" {
		return "all customers"
	}
	return customerID
}
