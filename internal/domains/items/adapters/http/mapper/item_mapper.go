package mapper

import (
	"slices"

	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	itemports "github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
)

// Item represents the transport-level item payload.
type Item struct {
	ID            int64
	Name          string
	Price         int
	StockQuantity int
	Categories    []string
}

// ToDomainItem converts a transport item to an unsaved domain item.
func ToDomainItem(model Item) (*itemdomain.Item, error) {
	return itemdomain.NewItem(model.Name, model.Price, model.StockQuantity, model.Categories...)
}

// ToItemChanges extracts the editable fields of a transport item.
func ToItemChanges(model Item) itemports.ItemChanges {
	return itemports.ItemChanges{Name: model.Name, Price: model.Price, StockQuantity: model.StockQuantity}
}

// FromDomainItem converts a domain item into a transport representation.
func FromDomainItem(item *itemdomain.Item) Item {
	if item == nil {
		return Item{}
	}
	return Item{
		ID:            item.ID,
		Name:          item.Name,
		Price:         item.Price,
		StockQuantity: item.StockQuantity,
		Categories:    slices.Clone(item.Categories),
	}
}

func FromDomainItems(items []*itemdomain.Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, FromDomainItem(item))
	}
	return result
}
