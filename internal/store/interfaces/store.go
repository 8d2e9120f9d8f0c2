// Package interfaces defines the contract the engine layer uses to
// read and mutate reservation state, independent of how that state is
// persisted.
package interfaces

import "mpcs-reservation/internal/domain"

// Store is the contract for reservation and transaction persistence.
// A Store is the single owner of reservation and transaction state;
// callers never mutate the slices it returns.
type Store interface {
	// SnapshotReservations returns every reservation currently on file,
	// in append order.
	SnapshotReservations() []domain.Reservation

	// SnapshotTransactions returns every transaction ever recorded, in
	// append order.
	SnapshotTransactions() []domain.Transaction

	// NextReservationID returns the id the next appended reservation
	// must use.
	NextReservationID() int

	// NextTransactionID returns the id the next appended transaction
	// must use.
	NextTransactionID() int

	// AppendReservation adds r to the reservation set and persists it.
	AppendReservation(r domain.Reservation) error

	// AppendTransaction adds tx to the transaction log and persists it.
	AppendTransaction(tx domain.Transaction) error

	// FindReservation returns the reservation with the given id, or
	// false if none exists.
	FindReservation(id int) (domain.Reservation, bool)

	// RemoveReservation deletes the reservation with the given id and
	// persists the change. It is a no-op, returning false, if no such
	// reservation exists.
	RemoveReservation(id int) bool

	// Load reads the on-disk file into memory, replacing current state.
	Load() error

	// Persist writes current state to the on-disk file.
	Persist() error
}
