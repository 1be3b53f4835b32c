package fakers

import (
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// DefaultPassword is the plain-text password given to every seeded account.
const DefaultPassword = "password123"

// UserFaker builds an unsaved user with a unique address. Password is plain
// text; the user repository hashes it on create.
func UserFaker(role string) *models.User {
	name := faker.FirstName() + " " + faker.LastName()

	user := &models.User{
		Name:     name,
		Email:    strings.ToLower(faker.Username()+"."+uuid.NewString()[:6]) + "@example.com",
		Phone:    faker.Phonenumber(),
		Password: DefaultPassword,
		Role:     role,
	}
	if role == models.RoleSeller {
		user.BusinessName = faker.LastName() + " Supply Co."
	}
	return user
}
