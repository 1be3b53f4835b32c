package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/db/testdb"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := testdb.New(t)
	auth := NewAuthService(repositories.NewUserRepository(db))
	ctx := context.Background()

	user, err := auth.Register(ctx, RegisterInput{
		Name:         "Sam Seller",
		Email:        " Sam@Example.com ",
		Password:     "hunter22",
		Role:         models.RoleSeller,
		BusinessName: "Sam's Goods",
	})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", user.Email)
	assert.Equal(t, models.RoleSeller, user.Role)
	assert.NotEqual(t, "hunter22", user.Password)

	found, err := auth.Authenticate(ctx, "SAM@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = auth.Authenticate(ctx, "sam@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidLogin)
	_, err = auth.Authenticate(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	_, err = auth.Register(ctx, RegisterInput{Name: "Again", Email: "sam@example.com", Password: "hunter22"})
	requireFieldError(t, err, "email")
}

func TestRegisterValidation(t *testing.T) {
	db := testdb.New(t)
	auth := NewAuthService(repositories.NewUserRepository(db))
	ctx := context.Background()

	_, err := auth.Register(ctx, RegisterInput{Name: "A", Email: "not-an-email", Password: "hunter22"})
	requireFieldError(t, err, "email")

	_, err = auth.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "123"})
	requireFieldError(t, err, "password")

	_, err = auth.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "hunter22", Role: models.RoleAdmin})
	requireFieldError(t, err, "role")

	user, err := auth.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
}
