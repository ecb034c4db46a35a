package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	itemmapper "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/http/mapper"
	itemports "github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// ItemAPI wires HTTP transport with the items bounded context service.
type ItemAPI struct {
	service itemports.Service
}

// NewItemAPI creates an ItemAPI backed by the provided service.
func NewItemAPI(service itemports.Service) ItemAPI {
	return ItemAPI{service: service}
}

func toTransportItem(model Item) itemmapper.Item {
	return itemmapper.Item{
		ID:            model.Id,
		Name:          model.Name,
		Price:         model.Price,
		StockQuantity: model.StockQuantity,
		Categories:    model.Categories,
	}
}

func fromTransportItem(item itemmapper.Item) Item {
	return Item{
		Id:            item.ID,
		Name:          item.Name,
		Price:         item.Price,
		StockQuantity: item.StockQuantity,
		Categories:    item.Categories,
	}
}

// Post /api/v1/items
// Add an item to the catalogue
func (api *ItemAPI) CreateItem(c *gin.Context) {
	var payload Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := itemmapper.ToDomainItem(toTransportItem(payload))
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	saved, err := api.service.Save(c.Request.Context(), item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromTransportItem(itemmapper.FromDomainItem(saved)))
}

// Get /api/v1/items
// List items
func (api *ItemAPI) ListItems(c *gin.Context) {
	items, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]Item, 0, len(items))
	for _, item := range itemmapper.FromDomainItems(items) {
		result = append(result, fromTransportItem(item))
	}
	c.JSON(http.StatusOK, result)
}

// Get /api/v1/items/:itemId
// Find item by ID
func (api *ItemAPI) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportItem(itemmapper.FromDomainItem(item)))
}

// Put /api/v1/items/:itemId
// Change an item's name, price and stock
func (api *ItemAPI) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), id, itemmapper.ToItemChanges(toTransportItem(payload)))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportItem(itemmapper.FromDomainItem(updated)))
}
