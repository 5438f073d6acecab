package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price string, stock int) Product {
	return Product{ID: id, Name: "Product " + id, Price: d(price), Stock: stock}
}

func TestAddOrIncrementItem(t *testing.T) {
	headphones := product("1", "79.99", 25)
	phoneCase := product("2", "24.99", 50)

	items, err := AddOrIncrementItem(nil, headphones, 2)
	require.NoError(t, err)
	items, err = AddOrIncrementItem(items, phoneCase, 1)
	require.NoError(t, err)
	items, err = AddOrIncrementItem(items, headphones, 3)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "2", items[1].Product.ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestAddOrIncrementItem_InsufficientStock(t *testing.T) {
	p := product("p1", "10", 4)

	items, err := AddOrIncrementItem(nil, p, 2)
	require.NoError(t, err)

	got, err := AddOrIncrementItem(items, p, 3)
	require.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 4, stockErr.Available)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity, "collection must be unchanged")
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddOrIncrementItem_FirstAddOverStock(t *testing.T) {
	_, err := AddOrIncrementItem(nil, product("p1", "10", 1), 2)
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddOrIncrementItem_QuantityOverflow(t *testing.T) {
	p := product("p1", "10", 5)
	items := []LineItem{{Product: p, Quantity: 1}}

	got, err := AddOrIncrementItem(items, p, math.MaxInt)
	require.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, math.MaxInt, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Quantity)
}

func TestAddOrIncrementItem_InvalidQuantity(t *testing.T) {
	_, err := AddOrIncrementItem(nil, product("p1", "10", 5), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddOrIncrementItem_DoesNotMutateInput(t *testing.T) {
	p := product("p1", "10", 10)
	items := []LineItem{{Product: p, Quantity: 1}}

	got, err := AddOrIncrementItem(items, p, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, got[0].Quantity)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestSetItemQuantity(t *testing.T) {
	a := product("a", "1", 10)
	b := product("b", "2", 10)
	c := product("c", "3", 10)
	items := []LineItem{{Product: a, Quantity: 1}, {Product: b, Quantity: 2}, {Product: c, Quantity: 3}}

	t.Run("replaces quantity", func(t *testing.T) {
		got, err := SetItemQuantity(items, "b", 7)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, 7, got[1].Quantity)
		assert.Equal(t, 2, items[1].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		got, err := SetItemQuantity(items, "b", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Product.ID)
		assert.Equal(t, "c", got[1].Product.ID)
	})

	t.Run("negative removes the line", func(t *testing.T) {
		got, err := SetItemQuantity(items, "a", -3)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].Product.ID)
	})

	t.Run("over stock is rejected", func(t *testing.T) {
		got, err := SetItemQuantity(items, "c", 11)
		require.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, items, got)
	})

	t.Run("unknown product is ignored", func(t *testing.T) {
		got, err := SetItemQuantity(items, "zzz", 4)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})
}

func TestRemoveItem(t *testing.T) {
	items := []LineItem{
		{Product: product("a", "1", 10), Quantity: 1},
		{Product: product("b", "1", 10), Quantity: 1},
	}

	got := RemoveItem(items, "a")
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Product.ID)

	again := RemoveItem(got, "a")
	assert.Equal(t, got, again)
	assert.Empty(t, RemoveItem(nil, "a"))
}
