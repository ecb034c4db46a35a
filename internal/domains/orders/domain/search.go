package domain

import "strings"

// MaxSearchResults caps every order search and page.
const MaxSearchResults = 1000

// OrderSearch holds the optional order search criteria. An empty Status and a
// blank MemberName mean "no constraint".
type OrderSearch struct {
	Status     Status
	MemberName string
}

// Filter is one conjunctive search predicate. Each store compiles the
// variants below into its own query language.
type Filter interface {
	isFilter()
}

// StatusIs matches orders in the given status.
type StatusIs struct {
	Status Status
}

// MemberNameContains matches orders whose member name contains Fragment,
// case-sensitively.
type MemberNameContains struct {
	Fragment string
}

func (StatusIs) isFilter()           {}
func (MemberNameContains) isFilter() {}

// Validate rejects unknown statuses.
func (s OrderSearch) Validate() error {
	if s.Status != "" && !s.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Filters lists the predicates for the populated criteria, in a fixed order.
func (s OrderSearch) Filters() []Filter {
	var filters []Filter
	if s.Status != "" {
		filters = append(filters, StatusIs{Status: s.Status})
	}
	if strings.TrimSpace(s.MemberName) != "" {
		filters = append(filters, MemberNameContains{Fragment: s.MemberName})
	}
	return filters
}

// Matches evaluates filters against an order held in memory.
func Matches(order *Order, filters []Filter) bool {
	for _, f := range filters {
		switch f := f.(type) {
		case StatusIs:
			if order.Status != f.Status {
				return false
			}
		case MemberNameContains:
			if !strings.Contains(order.Member.Name, f.Fragment) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Page selects a window of root orders.
type Page struct {
	Offset int
	Limit  int
}

// Normalize clamps the offset at zero and the limit to (0, MaxSearchResults].
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 || p.Limit > MaxSearchResults {
		p.Limit = MaxSearchResults
	}
	return p
}
