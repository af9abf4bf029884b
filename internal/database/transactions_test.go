package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

func TestTransactionsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("CreateTransaction computes total at insert", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "trader@example.com")

		tx := &models.Transaction{
			UserID:    user.ID,
			Symbol:    "eth",
			Name:      "Ethereum",
			AssetType: models.AssetTypeCrypto,
			Action:    models.ActionBuy,
			Quantity:  decimal.NewFromFloat(2.5),
			Price:     decimal.NewFromInt(2000),
			Notes:     "DCA buy",
		}
		err := testDB.CreateTransaction(tx)
		require.NoError(t, err)
		assert.NotZero(t, tx.ID)
		assert.Equal(t, "ETH", tx.Symbol)
		assert.True(t, decimal.NewFromInt(5000).Equal(tx.Total))
		assert.False(t, tx.TransactionDate.IsZero())
	})

	t.Run("total is not recomputed when the record is read back", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "trader@example.com")

		tx := &models.Transaction{
			UserID:    user.ID,
			Symbol:    "AAPL",
			Name:      "Apple Inc.",
			AssetType: models.AssetTypeStock,
			Action:    models.ActionBuy,
			Quantity:  decimal.NewFromInt(10),
			Price:     decimal.NewFromInt(100),
		}
		require.NoError(t, testDB.CreateTransaction(tx))

		// Corrupt the stored price; the total must stay as written.
		_, err := testDB.GetRawConn().Exec(`UPDATE transactions SET price = 999 WHERE id = $1`, tx.ID)
		require.NoError(t, err)

		transactions, err := testDB.GetTransactionsByUser(user.ID)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.True(t, decimal.NewFromInt(1000).Equal(transactions[0].Total))
	})

	t.Run("GetTransactionsByUser returns newest first", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "trader@example.com")

		now := time.Now()
		dates := []time.Time{now.Add(-48 * time.Hour), now, now.Add(-24 * time.Hour)}
		symbols := []string{"OLD", "NEW", "MID"}
		for i, d := range dates {
			tx := &models.Transaction{
				UserID:          user.ID,
				Symbol:          symbols[i],
				Name:            symbols[i],
				AssetType:       models.AssetTypeStock,
				Action:          models.ActionBuy,
				Quantity:        decimal.NewFromInt(1),
				Price:           decimal.NewFromInt(10),
				TransactionDate: d,
			}
			require.NoError(t, testDB.CreateTransaction(tx))
		}

		transactions, err := testDB.GetTransactionsByUser(user.ID)
		require.NoError(t, err)
		require.Len(t, transactions, 3)
		assert.Equal(t, "NEW", transactions[0].Symbol)
		assert.Equal(t, "MID", transactions[1].Symbol)
		assert.Equal(t, "OLD", transactions[2].Symbol)
	})

	t.Run("GetTransactionsByUser never returns another user's rows", func(t *testing.T) {
		testDB.TruncateAll(t)
		alice := testDB.CreateTestUser(t, "alice@example.com")
		bob := testDB.CreateTestUser(t, "bob@example.com")

		tx := &models.Transaction{
			UserID:    bob.ID,
			Symbol:    "MSFT",
			Name:      "Microsoft",
			AssetType: models.AssetTypeStock,
			Action:    models.ActionSell,
			Quantity:  decimal.NewFromInt(3),
			Price:     decimal.NewFromInt(370),
		}
		require.NoError(t, testDB.CreateTransaction(tx))

		transactions, err := testDB.GetTransactionsByUser(alice.ID)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("DeleteTransaction scoped to owner", func(t *testing.T) {
		testDB.TruncateAll(t)
		alice := testDB.CreateTestUser(t, "alice@example.com")
		bob := testDB.CreateTestUser(t, "bob@example.com")

		tx := &models.Transaction{
			UserID:    alice.ID,
			Symbol:    "AAPL",
			Name:      "Apple Inc.",
			AssetType: models.AssetTypeStock,
			Action:    models.ActionBuy,
			Quantity:  decimal.NewFromInt(1),
			Price:     decimal.NewFromInt(150),
		}
		require.NoError(t, testDB.CreateTransaction(tx))

		err := testDB.DeleteTransaction(bob.ID, tx.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))

		require.NoError(t, testDB.DeleteTransaction(alice.ID, tx.ID))

		err = testDB.DeleteTransaction(alice.ID, tx.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}
