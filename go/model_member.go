package shopserver

type Member struct {
	Id int64 `json:"id,omitempty"`

	Name string `json:"name"`

	Address Address `json:"address"`
}

// MemberCreate is the payload for registering a member.
type MemberCreate struct {
	Name string `json:"name"`

	Address Address `json:"address"`
}

// MemberCreated answers a registration with the new identity.
type MemberCreated struct {
	Id int64 `json:"id"`
}

// MemberNameUpdate renames a member.
type MemberNameUpdate struct {
	Name string `json:"name"`
}

// MemberList wraps members with their count.
type MemberList struct {
	Count int `json:"count"`

	Data []Member `json:"data"`
}
