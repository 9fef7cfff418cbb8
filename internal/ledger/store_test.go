package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordDayAndHistory(t *testing.T) {
	store := openTestStore(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for day := 2; day <= 5; day++ {
		require.NoError(t, store.RecordDay(DayRecord{
			Day: day, Cash: 50000 - day, Loan: 10000,
			InterestPaid: 10, NetWorth: 40000 - day,
			RecordedAt: at.AddDate(0, 0, day),
		}))
	}

	records, err := store.History(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// newest first
	assert.Equal(t, 5, records[0].Day)
	assert.Equal(t, 4, records[1].Day)
	assert.Equal(t, 10, records[0].InterestPaid)
}

func TestRecordDayIsIdempotentPerDay(t *testing.T) {
	store := openTestStore(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordDay(DayRecord{Day: 2, Cash: 100, RecordedAt: at}))
	require.NoError(t, store.RecordDay(DayRecord{Day: 2, Cash: 200, RecordedAt: at}))

	records, err := store.History(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 200, records[0].Cash, "re-recording a day replaces the row")
}

func TestTransactions(t *testing.T) {
	store := openTestStore(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordTransaction(TransactionRecord{
		Day: 3, Kind: TxBuy, PropertyID: "prop_abc", Amount: -60000, Detail: "Starter Home", RecordedAt: at,
	}))
	require.NoError(t, store.RecordTransaction(TransactionRecord{
		Day: 3, Kind: TxLoanTaken, Amount: 10000, RecordedAt: at,
	}))
	require.NoError(t, store.RecordTransaction(TransactionRecord{
		Day: 4, Kind: TxSell, PropertyID: "prop_abc", Amount: 70000, RecordedAt: at,
	}))

	txs, err := store.Transactions(3)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	// insertion order within the day
	assert.Equal(t, TxBuy, txs[0].Kind)
	assert.Equal(t, "prop_abc", txs[0].PropertyID)
	assert.Equal(t, -60000, txs[0].Amount)
	assert.Equal(t, TxLoanTaken, txs[1].Kind)
	assert.Empty(t, txs[1].PropertyID)

	txs, err = store.Transactions(99)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestHistoryEmptyAndDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	records, err := store.History(0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
