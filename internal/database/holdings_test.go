package database

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

func TestHoldingsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("MergeBuy creates holding on first buy", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "holder@example.com")

		holding, created, err := testDB.MergeBuy(user.ID, "aapl", "Apple Inc.", models.AssetTypeStock,
			decimal.NewFromInt(10), decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotZero(t, holding.ID)
		assert.Equal(t, "AAPL", holding.Symbol)
		assert.True(t, decimal.NewFromInt(10).Equal(holding.Quantity))
		assert.True(t, decimal.NewFromInt(100).Equal(holding.PurchasePrice))
		assert.False(t, holding.PurchaseDate.IsZero())
	})

	t.Run("MergeBuy averages price into existing holding", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "holder@example.com")

		_, created, err := testDB.MergeBuy(user.ID, "AAPL", "Apple Inc.", models.AssetTypeStock,
			decimal.NewFromInt(10), decimal.NewFromInt(100))
		require.NoError(t, err)
		require.True(t, created)

		holding, created, err := testDB.MergeBuy(user.ID, "AAPL", "Apple Inc.", models.AssetTypeStock,
			decimal.NewFromInt(5), decimal.NewFromInt(130))
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, decimal.NewFromInt(15).Equal(holding.Quantity))
		assert.True(t, decimal.NewFromInt(110).Equal(holding.PurchasePrice))

		holdings, err := testDB.GetHoldingsByUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, holdings, 1)
	})

	t.Run("MergeBuy keeps same symbol of different asset types separate", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "holder@example.com")

		_, _, err := testDB.MergeBuy(user.ID, "UNI", "Uniswap", models.AssetTypeCrypto,
			decimal.NewFromInt(100), decimal.NewFromInt(8))
		require.NoError(t, err)
		_, created, err := testDB.MergeBuy(user.ID, "UNI", "Universal Corp", models.AssetTypeStock,
			decimal.NewFromInt(20), decimal.NewFromInt(55))
		require.NoError(t, err)
		assert.True(t, created)

		holdings, err := testDB.GetHoldingsByUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, holdings, 2)
	})

	t.Run("MergeBuy rejects non-positive quantity", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "holder@example.com")

		_, _, err := testDB.MergeBuy(user.ID, "AAPL", "Apple Inc.", models.AssetTypeStock,
			decimal.Zero, decimal.NewFromInt(100))
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("concurrent buys of same instrument do not lose updates", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "holder@example.com")

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := testDB.MergeBuy(user.ID, "BTC", "Bitcoin", models.AssetTypeCrypto,
					decimal.NewFromInt(1), decimal.NewFromInt(50000))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		holdings, err := testDB.GetHoldingsByUser(user.ID)
		require.NoError(t, err)
		require.Len(t, holdings, 1)
		assert.True(t, decimal.NewFromInt(10).Equal(holdings[0].Quantity))
		assert.True(t, decimal.NewFromInt(50000).Equal(holdings[0].PurchasePrice))
	})

	t.Run("GetHoldingsByUser returns newest first and only own rows", func(t *testing.T) {
		testDB.TruncateAll(t)
		alice := testDB.CreateTestUser(t, "alice@example.com")
		bob := testDB.CreateTestUser(t, "bob@example.com")

		_, _, err := testDB.MergeBuy(alice.ID, "AAPL", "Apple Inc.", models.AssetTypeStock,
			decimal.NewFromInt(10), decimal.NewFromInt(150))
		require.NoError(t, err)
		_, _, err = testDB.MergeBuy(alice.ID, "BTC", "Bitcoin", models.AssetTypeCrypto,
			decimal.NewFromInt(1), decimal.NewFromInt(60000))
		require.NoError(t, err)
		_, _, err = testDB.MergeBuy(bob.ID, "MSFT", "Microsoft", models.AssetTypeStock,
			decimal.NewFromInt(5), decimal.NewFromInt(370))
		require.NoError(t, err)

		holdings, err := testDB.GetHoldingsByUser(alice.ID)
		require.NoError(t, err)
		require.Len(t, holdings, 2)
		assert.Equal(t, "BTC", holdings[0].Symbol)
		assert.Equal(t, "AAPL", holdings[1].Symbol)
	})

	t.Run("UpdateHolding updates only provided fields", func(t *testing.T) {
		testDB.TruncateAll(t)
		user := testDB.CreateTestUser(t, "holder@example.com")

		holding, _, err := testDB.MergeBuy(user.ID, "AAPL", "Apple Inc.", models.AssetTypeStock,
			decimal.NewFromInt(10), decimal.NewFromInt(100))
		require.NoError(t, err)

		qty := decimal.NewFromInt(25)
		updated, err := testDB.UpdateHolding(user.ID, holding.ID, &qty, nil)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(25).Equal(updated.Quantity))
		assert.True(t, decimal.NewFromInt(100).Equal(updated.PurchasePrice))
	})

	t.Run("UpdateHolding scoped to owner", func(t *testing.T) {
		testDB.TruncateAll(t)
		alice := testDB.CreateTestUser(t, "alice@example.com")
		bob := testDB.CreateTestUser(t, "bob@example.com")

		holding, _, err := testDB.MergeBuy(alice.ID, "AAPL", "Apple Inc.", models.AssetTypeStock,
			decimal.NewFromInt(10), decimal.NewFromInt(100))
		require.NoError(t, err)

		qty := decimal.NewFromInt(0)
		_, err = testDB.UpdateHolding(bob.ID, holding.ID, &qty, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))

		// Alice's row is untouched
		unchanged, err := testDB.GetHoldingByID(alice.ID, holding.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(unchanged.Quantity))
	})

	t.Run("DeleteHolding scoped to owner", func(t *testing.T) {
		testDB.TruncateAll(t)
		alice := testDB.CreateTestUser(t, "alice@example.com")
		bob := testDB.CreateTestUser(t, "bob@example.com")

		holding, _, err := testDB.MergeBuy(alice.ID, "AAPL", "Apple Inc.", models.AssetTypeStock,
			decimal.NewFromInt(10), decimal.NewFromInt(100))
		require.NoError(t, err)

		err = testDB.DeleteHolding(bob.ID, holding.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))

		err = testDB.DeleteHolding(alice.ID, holding.ID)
		require.NoError(t, err)

		holdings, err := testDB.GetHoldingsByUser(alice.ID)
		require.NoError(t, err)
		assert.Empty(t, holdings)
	})
}
