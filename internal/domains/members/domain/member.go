package domain

import (
	"errors"
	"strings"
)

var ErrEmptyName = errors.New("member name is required")

// Address is a value shared by members and deliveries. Every field is
// optional and none is format checked.
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// NewAddress sets all address fields together.
func NewAddress(city, street, zipcode string) Address {
	return Address{
		City:    strings.TrimSpace(city),
		Street:  strings.TrimSpace(street),
		Zipcode: strings.TrimSpace(zipcode),
	}
}

// Member represents a registered shop customer.
type Member struct {
	ID      int64
	Name    string
	Address Address
}

// NewMember builds an unsaved member.
func NewMember(name string, address Address) (*Member, error) {
	member := &Member{Address: address}
	if err := member.Rename(name); err != nil {
		return nil, err
	}
	return member, nil
}

// Rename trims and validates the member name.
func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.Name = name
	return nil
}

// Validate re-applies core invariants for persistence.
func (m *Member) Validate() error {
	return m.Rename(m.Name)
}
