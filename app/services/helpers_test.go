package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/services"
)

var ctx = context.Background()

func seedCategory(t *testing.T, db *gorm.DB, name string, parent *uint) models.Category {
	t.Helper()
	c, err := services.NewCategoryService(db).Create(ctx, services.CategoryInput{Name: name, ParentID: parent})
	require.NoError(t, err)
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name, description string) services.ProductCreated {
	t.Helper()
	created, err := services.NewProductService(db).Create(ctx, services.ProductInput{
		Name:        name,
		Description: description,
		BasePrice:   decimal.RequireFromString("19.99"),
		CategoryID:  categoryID,
		Size:        "M",
		Color:       []string{"Rose", "Nude"},
		Price:       decimal.RequireFromString("21.50"),
		Stock:       5,
	})
	require.NoError(t, err)
	return created
}

func seedUser(t *testing.T, db *gorm.DB, email, role string, employee *services.EmployeeInput) models.User {
	t.Helper()
	u, err := services.NewUserService(db).Create(ctx, services.UserInput{
		Name:     "Test " + role,
		Email:    email,
		Password: "secret123",
		Role:     role,
		Profile:  &services.ProfileInput{Address: "1 Main St", Dob: "1992-04-01"},
		Employee: employee,
	})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }
