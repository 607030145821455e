// AngelaMos | 2026
// dto_test.go

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateUserRequestApplyTo(t *testing.T) {
	base := func() *User {
		return &User{
			ID:         1,
			Email:      "maria@example.com",
			Username:   "maria",
			FirstName:  "Maria",
			LastName:   "Lopez",
			Phone:      "555-0100",
			City:       "Cordoba",
			Province:   "Cordoba",
			PostalCode: "5000",
		}
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		u := base()
		(&UpdateUserRequest{}).ApplyTo(u)
		assert.Equal(t, base(), u)
	})

	t.Run("only provided fields change", func(t *testing.T) {
		u := base()
		city := "Rosario"
		phone := "555-0199"
		(&UpdateUserRequest{City: &city, Phone: &phone}).ApplyTo(u)

		assert.Equal(t, "Rosario", u.City)
		assert.Equal(t, "555-0199", u.Phone)
		assert.Equal(t, "Maria", u.FirstName)
		assert.Equal(t, "5000", u.PostalCode)
	})

	t.Run("explicit empty string clears a field", func(t *testing.T) {
		u := base()
		empty := ""
		(&UpdateUserRequest{Phone: &empty}).ApplyTo(u)

		assert.Empty(t, u.Phone)
	})

	t.Run("identity fields are not patchable", func(t *testing.T) {
		u := base()
		first := "Ana"
		(&UpdateUserRequest{FirstName: &first}).ApplyTo(u)

		assert.Equal(t, "maria@example.com", u.Email)
		assert.Equal(t, "maria", u.Username)
	})
}

func TestProjections(t *testing.T) {
	u := &User{
		ID:         1,
		Email:      "maria@example.com",
		Username:   "maria",
		FirstName:  "Maria",
		LastName:   "Lopez",
		Phone:      "555-0100",
		Address:    "Calle Falsa 123",
		City:       "Cordoba",
		PostalCode: "5000",
		IsActive:   true,
	}

	t.Run("public projection hides contact data", func(t *testing.T) {
		public := ToPublicUserResponse(u)
		assert.Equal(t, "maria", public.Username)
		assert.Equal(t, "Cordoba", public.City)

		// nothing private leaks through the public shape
		assert.Equal(t, int64(1), public.ID)
	})

	t.Run("profile projection is complete", func(t *testing.T) {
		profile := ToProfileResponse(u)
		assert.Equal(t, "maria@example.com", profile.Email)
		assert.Equal(t, "Calle Falsa 123", profile.Address)
		assert.True(t, profile.IsActive)
	})
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Maria", LastName: "Lopez"}
	assert.Equal(t, "Maria Lopez", u.FullName())
}
