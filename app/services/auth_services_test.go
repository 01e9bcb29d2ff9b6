package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/auth"
	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/testkit"
)

var hired = &services.EmployeeInput{DateOfHire: "2024-03-01", Salary: decimal.NewFromInt(3200)}

func TestLoginIssuesToken(t *testing.T) {
	db := testkit.DB(t)
	u := seedUser(t, db, "buyer@sheshine.test", models.RoleUser, nil)

	res, err := services.NewAuthService(db).Login(ctx, services.Credentials{Email: "Buyer@SheShine.test", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.ID)
	assert.Equal(t, models.RoleUser, res.Role)
	assert.Nil(t, res.IsWorking)

	claims, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.ID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := testkit.DB(t)
	seedUser(t, db, "buyer@sheshine.test", models.RoleUser, nil)
	svc := services.NewAuthService(db)

	for _, c := range []services.Credentials{
		{Email: "buyer@sheshine.test", Password: "wrong-pass"},
		{Email: "nobody@sheshine.test", Password: "secret123"},
	} {
		_, err := svc.Login(ctx, c)
		e := errs.From(err)
		assert.Equal(t, errs.KindUnauthorized, e.Kind)
		assert.Equal(t, "Invalid email or password", e.Message)
	}
}

func TestLoginInactiveEmployeeIsForbidden(t *testing.T) {
	db := testkit.DB(t)
	u := seedUser(t, db, "staff@sheshine.test", models.RoleEmployee, hired)
	require.NotNil(t, u.EmployeeID)

	_, err := services.NewEmployeeService(db).Update(ctx, *u.EmployeeID, services.EmployeeUpdate{IsWorking: ptr(false)})
	require.NoError(t, err)

	res, err := services.NewAuthService(db).Login(ctx, services.Credentials{Email: "staff@sheshine.test", Password: "secret123"})
	e := errs.From(err)
	assert.Equal(t, errs.KindForbidden, e.Kind)
	assert.Equal(t, "Your account is inactive. Please contact an administrator.", e.Message)
	assert.Empty(t, res.Token)
}

func TestLoginActiveEmployeeReportsWorking(t *testing.T) {
	db := testkit.DB(t)
	seedUser(t, db, "staff@sheshine.test", models.RoleEmployee, hired)

	res, err := services.NewAuthService(db).Login(ctx, services.Credentials{Email: "staff@sheshine.test", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	require.NotNil(t, res.IsWorking)
	assert.True(t, *res.IsWorking)
}

func TestResolveIdentityUsesStoredRole(t *testing.T) {
	db := testkit.DB(t)
	u := seedUser(t, db, "boss@sheshine.test", models.RoleAdmin, nil)
	svc := services.NewAuthService(db)

	id, ok, err := svc.ResolveIdentity(ctx, &auth.Claims{ID: u.ID, Role: models.RoleUser})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, id.Role)

	_, ok, err = svc.ResolveIdentity(ctx, &auth.Claims{ID: 9999, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, ok)
}
