package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

// Join aliases GORM assigns to the to-one associations of orderRecord.
const (
	memberAlias   = "Member"
	deliveryAlias = "Delivery"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var orderByID = clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}}

// compileFilters translates search filters into bound GORM clause
// expressions. The caller joins them with AND.
func compileFilters(filters []domain.Filter) ([]clause.Expression, error) {
	exprs := make([]clause.Expression, 0, len(filters))
	for _, f := range filters {
		switch f := f.(type) {
		case domain.StatusIs:
			exprs = append(exprs, clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: "status"},
				Value:  string(f.Status),
			})
		case domain.MemberNameContains:
			exprs = append(exprs, clause.Like{
				Column: clause.Column{Table: memberAlias, Name: "name"},
				Value:  "%" + likeEscaper.Replace(f.Fragment) + "%",
			})
		default:
			return nil, fmt.Errorf("unsupported order filter %T", f)
		}
	}
	return exprs, nil
}
