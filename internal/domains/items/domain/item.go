package domain

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrEmptyName       = errors.New("item name is required")
	ErrInvalidPrice    = errors.New("item price must not be negative")
	ErrInvalidStock    = errors.New("stock quantity must not be negative")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrNotEnoughStock  = errors.New("not enough stock")
)

// Item is a sellable product with a stock level.
type Item struct {
	ID            int64
	Name          string
	Price         int
	StockQuantity int
	Categories    []string
}

// NewItem builds an unsaved item.
func NewItem(name string, price, stock int, categories ...string) (*Item, error) {
	item := &Item{}
	if err := item.Change(name, price, stock); err != nil {
		return nil, err
	}
	item.SetCategories(categories)
	return item, nil
}

// Change replaces the editable fields of the item.
func (i *Item) Change(name string, price, stock int) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ErrEmptyName
	case price < 0:
		return ErrInvalidPrice
	case stock < 0:
		return ErrInvalidStock
	}
	i.Name = name
	i.Price = price
	i.StockQuantity = stock
	return nil
}

// SetCategories stores trimmed, de-duplicated category names.
func (i *Item) SetCategories(categories []string) {
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c != "" && !slices.Contains(cleaned, c) {
			cleaned = append(cleaned, c)
		}
	}
	i.Categories = cleaned
}

// AddStock increases the stock level.
func (i *Item) AddStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.StockQuantity += quantity
	return nil
}

// RemoveStock decreases the stock level, refusing to go below zero.
func (i *Item) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.StockQuantity-quantity < 0 {
		return ErrNotEnoughStock
	}
	i.StockQuantity -= quantity
	return nil
}

// Validate re-applies core invariants for persistence.
func (i *Item) Validate() error {
	return i.Change(i.Name, i.Price, i.StockQuantity)
}

// Clone returns a deep copy.
func (i *Item) Clone() *Item {
	clone := *i
	clone.Categories = slices.Clone(i.Categories)
	return &clone
}
