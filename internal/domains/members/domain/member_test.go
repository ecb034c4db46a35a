package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMemberTrimsName(t *testing.T) {
	member, err := NewMember("  Kim  ", NewAddress("Seoul", "Gangnam-daero 1", "06000"))
	require.NoError(t, err)
	require.Equal(t, "Kim", member.Name)
	require.Equal(t, Address{City: "Seoul", Street: "Gangnam-daero 1", Zipcode: "06000"}, member.Address)
	require.Zero(t, member.ID)
}

func TestNewMemberRejectsBlankName(t *testing.T) {
	_, err := NewMember("   ", Address{})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestRenameKeepsPreviousNameOnError(t *testing.T) {
	member := &Member{ID: 1, Name: "Kim"}
	require.ErrorIs(t, member.Rename(""), ErrEmptyName)
	require.Equal(t, "Kim", member.Name)

	require.NoError(t, member.Rename("Lee"))
	require.Equal(t, "Lee", member.Name)
}

func TestAddressFieldsAreOptional(t *testing.T) {
	member, err := NewMember("Kim", NewAddress("", "", ""))
	require.NoError(t, err)
	require.Equal(t, Address{}, member.Address)
}
