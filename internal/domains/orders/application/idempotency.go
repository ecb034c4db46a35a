package application

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
)

// FingerprintPlaceOrder hashes the placement payload, excluding the
// idempotency key itself.
func FingerprintPlaceOrder(input ordertypes.PlaceOrderInput) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "member=%d;item=%d;count=%d", input.MemberID, input.ItemID, input.Count))
	return hex.EncodeToString(sum[:])
}
