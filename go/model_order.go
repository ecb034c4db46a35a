package shopserver

import "time"

type Delivery struct {
	Id int64 `json:"id,omitempty"`

	Address Address `json:"address"`

	// Delivery Status
	Status string `json:"status"`
}

type OrderLine struct {
	ItemId int64 `json:"itemId"`

	ItemName string `json:"itemName"`

	OrderPrice int `json:"orderPrice"`

	Count int `json:"count"`

	TotalPrice int `json:"totalPrice"`
}

type Order struct {
	Id int64 `json:"id"`

	MemberId int64 `json:"memberId"`

	MemberName string `json:"memberName"`

	OrderDate time.Time `json:"orderDate"`

	// Order Status
	Status string `json:"status"`

	Delivery Delivery `json:"delivery"`

	// OrderItems is omitted by views that do not load order lines.
	OrderItems []OrderLine `json:"orderItems,omitempty"`

	TotalPrice int `json:"totalPrice"`
}

// OrderPlacement asks for count units of one item on behalf of a member.
type OrderPlacement struct {
	MemberId int64 `json:"memberId"`

	ItemId int64 `json:"itemId"`

	Count int `json:"count"`
}
