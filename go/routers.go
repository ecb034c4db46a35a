package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the shop routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.Use(RequestID())
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes whose API is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// RequestID propagates an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

type ApiHandleFunctions struct {
	// Routes for the ItemAPI part of the API
	ItemAPI ItemAPI
	// Routes for the MemberAPI part of the API
	MemberAPI MemberAPI
	// Routes for the OrderAPI part of the API
	OrderAPI OrderAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"CreateItem", http.MethodPost, "/api/v1/items", handleFunctions.ItemAPI.CreateItem},
		{"ListItems", http.MethodGet, "/api/v1/items", handleFunctions.ItemAPI.ListItems},
		{"GetItem", http.MethodGet, "/api/v1/items/:itemId", handleFunctions.ItemAPI.GetItem},
		{"UpdateItem", http.MethodPut, "/api/v1/items/:itemId", handleFunctions.ItemAPI.UpdateItem},
		{"RegisterMember", http.MethodPost, "/api/v1/members", handleFunctions.MemberAPI.RegisterMember},
		{"ListMembers", http.MethodGet, "/api/v1/members", handleFunctions.MemberAPI.ListMembers},
		{"GetMember", http.MethodGet, "/api/v1/members/:memberId", handleFunctions.MemberAPI.GetMember},
		{"UpdateMemberName", http.MethodPatch, "/api/v1/members/:memberId", handleFunctions.MemberAPI.UpdateMemberName},
		{"PlaceOrder", http.MethodPost, "/api/v1/orders", handleFunctions.OrderAPI.PlaceOrder},
		{"SearchOrders", http.MethodGet, "/api/v1/orders", handleFunctions.OrderAPI.SearchOrders},
		{"GetOrder", http.MethodGet, "/api/v1/orders/:orderId", handleFunctions.OrderAPI.GetOrder},
		{"CancelOrder", http.MethodPost, "/api/v1/orders/:orderId/cancel", handleFunctions.OrderAPI.CancelOrder},
		{"ListSimpleOrders", http.MethodGet, "/api/v2/simple-orders", handleFunctions.OrderAPI.ListSimpleOrders},
		{"ListOrdersWithItems", http.MethodGet, "/api/v3/orders", handleFunctions.OrderAPI.ListOrdersWithItems},
	}
}
