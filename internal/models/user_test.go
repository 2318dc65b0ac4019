package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("correct horse"))

	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.True(t, u.CheckPassword("correct horse"))
	assert.False(t, u.CheckPassword("wrong horse"))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "june", (&User{Username: "june"}).FullName())
	assert.Equal(t, "June", (&User{Username: "june", FirstName: "June"}).FullName())
	assert.Equal(t, "June Vega", (&User{FirstName: "June", LastName: "Vega"}).FullName())
}
