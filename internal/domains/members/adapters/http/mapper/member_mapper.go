package mapper

import memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"

// Address represents the transport-level address payload.
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// Member represents the transport-level member payload.
type Member struct {
	ID      int64
	Name    string
	Address Address
}

// ToDomainMember converts a transport member to an unsaved domain member.
func ToDomainMember(model Member) (*memberdomain.Member, error) {
	return memberdomain.NewMember(model.Name, ToDomainAddress(model.Address))
}

func ToDomainAddress(model Address) memberdomain.Address {
	return memberdomain.NewAddress(model.City, model.Street, model.Zipcode)
}

func FromDomainAddress(address memberdomain.Address) Address {
	return Address{City: address.City, Street: address.Street, Zipcode: address.Zipcode}
}

// FromDomainMember converts a domain member into a transport representation.
func FromDomainMember(member *memberdomain.Member) Member {
	if member == nil {
		return Member{}
	}
	return Member{
		ID:      member.ID,
		Name:    member.Name,
		Address: FromDomainAddress(member.Address),
	}
}

// FromDomainMembers converts a slice of domain members to transport representation.
func FromDomainMembers(members []*memberdomain.Member) []Member {
	result := make([]Member, 0, len(members))
	for _, member := range members {
		result = append(result, FromDomainMember(member))
	}
	return result
}
