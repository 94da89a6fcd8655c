package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barliman/internal/testutil"
)

func TestFindAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupProductTable(t, db)
	defer testutil.CleanupTestDB(t, db)

	_, err := db.Exec(`INSERT INTO Product (code, name, price, stock) VALUES
		('P001', 'Coca-Cola', 3.50, 100),
		('P002', 'Chips', 5.00, 80)`)
	require.NoError(t, err)

	repo := NewMySQLProductRepository(db)

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "P001", products[0].Code)
	assert.Equal(t, "Coca-Cola", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("3.5")))
	assert.Equal(t, 100, products[0].Stock)
	assert.Equal(t, "P002", products[1].Code)
}

func TestFindAll_EmptyTable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupProductTable(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
