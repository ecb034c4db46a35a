package shopserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	ordermapper "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
)

// idempotencyKeyHeader lets clients retry a placement without ordering twice.
const idempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// SearchOrdersParams defines parameters for SearchOrders.
type SearchOrdersParams struct {
	// Status filters by order status
	Status *string `form:"status,omitempty" json:"status,omitempty"`

	// MemberName matches members whose name contains the value
	MemberName *string `form:"memberName,omitempty" json:"memberName,omitempty"`
}

// PageParams defines paging parameters for order listings.
type PageParams struct {
	Offset *int `form:"offset,omitempty" json:"offset,omitempty"`

	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

func fromTransportOrder(order ordermapper.Order) Order {
	model := Order{
		Id:         order.ID,
		MemberId:   order.MemberID,
		MemberName: order.MemberName,
		OrderDate:  order.OrderDate,
		Status:     order.Status,
		Delivery: Delivery{
			Id:      order.Delivery.ID,
			Address: fromTransportAddress(order.Delivery.Address),
			Status:  order.Delivery.Status,
		},
		TotalPrice: order.TotalPrice,
	}
	if order.Lines != nil {
		model.OrderItems = make([]OrderLine, 0, len(order.Lines))
		for _, line := range order.Lines {
			model.OrderItems = append(model.OrderItems, OrderLine{
				ItemId:     line.ItemID,
				ItemName:   line.ItemName,
				OrderPrice: line.OrderPrice,
				Count:      line.Count,
				TotalPrice: line.TotalPrice,
			})
		}
	}
	return model
}

func fromDomainOrders(orders []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range ordermapper.FromDomainOrders(orders) {
		result = append(result, fromTransportOrder(order))
	}
	return result
}

// Post /api/v1/orders
// Place an order
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload OrderPlacement
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := ordertypes.PlaceOrderInput{
		MemberID:       payload.MemberId,
		ItemID:         payload.ItemId,
		Count:          payload.Count,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	}
	order, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromTransportOrder(ordermapper.FromDomainOrder(order)))
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /api/v1/orders
// Search orders by status and member name
func (api *OrderAPI) SearchOrders(c *gin.Context) {
	var params SearchOrdersParams
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "memberName", query, &params.MemberName); err != nil {
		respondBadRequest(c, err)
		return
	}
	search := orderdomain.OrderSearch{}
	if params.Status != nil {
		search.Status = orderdomain.Status(*params.Status)
	}
	if params.MemberName != nil {
		search.MemberName = *params.MemberName
	}
	orders, err := api.service.Search(c.Request.Context(), search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainOrders(orders))
}

// Get /api/v1/orders/:orderId
// Find order by ID with its order lines
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportOrder(ordermapper.FromDomainOrder(order)))
}

// Post /api/v1/orders/:orderId/cancel
// Cancel an undelivered order
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportOrder(ordermapper.FromDomainOrder(order)))
}

// Get /api/v2/simple-orders
// List orders with member and delivery
func (api *OrderAPI) ListSimpleOrders(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	orders, err := api.service.ListWithMemberDelivery(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainOrders(orders))
}

// Get /api/v3/orders
// List orders with member, delivery and order lines
func (api *OrderAPI) ListOrdersWithItems(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	orders, err := api.service.ListWithItems(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainOrders(orders))
}

func bindPage(c *gin.Context) (orderdomain.Page, bool) {
	var params PageParams
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "offset", query, &params.Offset); err != nil {
		respondBadRequest(c, err)
		return orderdomain.Page{}, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		respondBadRequest(c, err)
		return orderdomain.Page{}, false
	}
	var page orderdomain.Page
	if params.Offset != nil {
		page.Offset = *params.Offset
	}
	if params.Limit != nil {
		page.Limit = *params.Limit
	}
	return page, true
}
