package shopserver

type Address struct {
	City string `json:"city,omitempty"`

	Street string `json:"street,omitempty"`

	Zipcode string `json:"zipcode,omitempty"`
}
