package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	item, err := NewItem(" JPA Book ", 10000, 10, "book", " book", "", "jpa")
	require.NoError(t, err)
	require.Equal(t, "JPA Book", item.Name)
	require.Equal(t, []string{"book", "jpa"}, item.Categories)

	_, err = NewItem("", 1, 1)
	require.ErrorIs(t, err, ErrEmptyName)
	_, err = NewItem("x", -1, 1)
	require.ErrorIs(t, err, ErrInvalidPrice)
	_, err = NewItem("x", 1, -1)
	require.ErrorIs(t, err, ErrInvalidStock)
}

func TestStockChanges(t *testing.T) {
	item := &Item{Name: "book", StockQuantity: 3}

	require.NoError(t, item.RemoveStock(2))
	require.Equal(t, 1, item.StockQuantity)

	require.ErrorIs(t, item.RemoveStock(2), ErrNotEnoughStock)
	require.Equal(t, 1, item.StockQuantity)

	require.NoError(t, item.RemoveStock(1))
	require.Zero(t, item.StockQuantity)

	require.NoError(t, item.AddStock(5))
	require.Equal(t, 5, item.StockQuantity)

	require.ErrorIs(t, item.AddStock(0), ErrInvalidQuantity)
	require.ErrorIs(t, item.RemoveStock(-1), ErrInvalidQuantity)
}

func TestCloneCopiesCategories(t *testing.T) {
	item := &Item{Name: "book", Categories: []string{"a"}}
	clone := item.Clone()
	clone.Categories[0] = "b"
	require.Equal(t, "a", item.Categories[0])
}
