package store

import (
	"os"
	"path/filepath"
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

func sampleReservation(t *testing.T, id int) domain.Reservation {
	return domain.Reservation{
		ID:                id,
		CustomerID:        "client-1",
		Resource:          domain.Workshop,
		StartDate:         mustDate(t, "04-28-2022"),
		EndDate:           mustDate(t, "04-28-2022"),
		StartTime:         calendar.HalfHour(18),
		EndTime:           calendar.HalfHour(19),
		DateOfReservation: mustDate(t, "04-20-2022"),
		TotalCost:         49.5,
		DownPayment:       0,
	}
}

func TestNewStoreIsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "ledger.txt"))
	require.NoError(t, s.Load())
	assert.Equal(t, 1, s.NextReservationID())
	assert.Equal(t, 1, s.NextTransactionID())
	assert.Empty(t, s.SnapshotReservations())
	assert.Empty(t, s.SnapshotTransactions())
}

func TestAppendPersistsAndReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.txt")
	s := New(path)
	require.NoError(t, s.Load())

	r := sampleReservation(t, 1)
	require.NoError(t, s.AppendReservation(r))

	tx := domain.Transaction{
		ID:              1,
		Kind:            domain.KindReservation,
		TransactionDate: r.DateOfReservation,
		Payload:         r,
		Amount:          r.DownPayment,
		Timestamp:       1650412800,
		StaffID:         "system",
	}
	require.NoError(t, s.AppendTransaction(tx))

	assert.Equal(t, 2, s.NextReservationID())
	assert.Equal(t, 2, s.NextTransactionID())

	reloaded := New(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []domain.Reservation{r}, reloaded.SnapshotReservations())
	assert.Equal(t, []domain.Transaction{tx}, reloaded.SnapshotTransactions())
	assert.Equal(t, 2, reloaded.NextReservationID())
	assert.Equal(t, 2, reloaded.NextTransactionID())
}

func TestRemoveReservationNextIDFollowsLastRemaining(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "ledger.txt"))
	require.NoError(t, s.Load())

	require.NoError(t, s.AppendReservation(sampleReservation(t, 1)))
	require.NoError(t, s.AppendReservation(sampleReservation(t, 2)))
	assert.Equal(t, 3, s.NextReservationID())

	ok := s.RemoveReservation(2)
	assert.True(t, ok)
	_, found := s.FindReservation(2)
	assert.False(t, found)
	// max_reservation_id is driven off the last remaining element, not
	// a running counter, mirroring original_source/server/persist.py.
	assert.Equal(t, 2, s.NextReservationID())
}

func TestTransactionIDNeverReusedAfterCancellation(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "ledger.txt"))
	require.NoError(t, s.Load())

	r := sampleReservation(t, 1)
	require.NoError(t, s.AppendReservation(r))
	require.NoError(t, s.AppendTransaction(domain.Transaction{ID: 1, Kind: domain.KindReservation, Payload: r}))
	require.NoError(t, s.AppendTransaction(domain.Transaction{ID: 2, Kind: domain.KindCancellation, Payload: r, Amount: 0}))

	assert.Equal(t, 3, s.NextTransactionID())
}

func TestLoadMissingFileIsEmptyStore(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "missing.txt"))
	require.NoError(t, s.Load())
	assert.Equal(t, 1, s.NextReservationID())
}

func TestDecodeRejectsMalformedReservationLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 client-1 workshop\n#\n"), 0o644))
	s := New(path)
	err := s.Load()
	require.Error(t, err)
}
