package types

// PlaceOrderInput asks for count units of one item on behalf of a member.
type PlaceOrderInput struct {
	MemberID int64
	ItemID   int64
	Count    int
	// IdempotencyKey, when set, makes retries of the same placement return
	// the order placed first.
	IdempotencyKey string
}

