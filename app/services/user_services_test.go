package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/auth"
	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/testkit"
)

func TestCreateUserWithProfileAndEmployee(t *testing.T) {
	db := testkit.DB(t)

	u := seedUser(t, db, "staff@sheshine.test", models.RoleEmployee, hired)
	require.NotNil(t, u.Profile)
	require.NotNil(t, u.Employee)
	assert.Equal(t, u.ID, u.Profile.UserID)
	assert.Equal(t, "1 Main St", u.Profile.Address)
	assert.True(t, u.Employee.IsWorking)
	assert.Equal(t, 2024, u.Employee.DateOfHire.Year())
	assert.NotEqual(t, "secret123", u.Password)
}

func TestCreateUserRules(t *testing.T) {
	db := testkit.DB(t)
	svc := services.NewUserService(db)

	_, err := svc.Create(ctx, services.UserInput{Name: "A", Email: "a@sheshine.test", Password: "secret123"})
	assert.Equal(t, "is required", errs.From(err).Fields["profile"])

	_, err = svc.Create(ctx, services.UserInput{
		Name: "A", Email: "a@sheshine.test", Password: "123", Role: models.RoleEmployee,
		Profile: &services.ProfileInput{Address: "x", Dob: "01/02/1990"},
	})
	fields := errs.From(err).Fields
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "profile.dob")
	assert.Contains(t, fields, "employee")

	seedUser(t, db, "taken@sheshine.test", models.RoleUser, nil)
	_, err = svc.Create(ctx, services.UserInput{
		Name: "B", Email: "TAKEN@sheshine.test", Password: "secret123",
		Profile: &services.ProfileInput{Address: "x", Dob: "1990-01-02"},
	})
	assert.Equal(t, errs.KindDuplicate, errs.From(err).Kind)

	var profiles int64
	db.Model(&models.Profile{}).Count(&profiles)
	assert.Equal(t, int64(1), profiles)
}

func TestUpdateUserMergesAndRehashes(t *testing.T) {
	db := testkit.DB(t)
	u := seedUser(t, db, "buyer@sheshine.test", models.RoleUser, nil)
	svc := services.NewUserService(db)

	updated, err := svc.Update(ctx, u.ID, services.UserUpdate{Phone: ptr("+20 100"), Password: ptr("new-secret")})
	require.NoError(t, err)
	assert.Equal(t, u.Name, updated.Name)
	assert.Equal(t, "+20 100", updated.Phone)
	assert.True(t, auth.CheckPassword(updated.Password, "new-secret"))

	_, err = svc.Update(ctx, 999, services.UserUpdate{Name: ptr("x")})
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteUserRemovesProfileAndEmployee(t *testing.T) {
	db := testkit.DB(t)
	u := seedUser(t, db, "staff@sheshine.test", models.RoleEmployee, hired)
	svc := services.NewUserService(db)

	require.NoError(t, svc.Delete(ctx, u.ID))

	var n int64
	db.Model(&models.Profile{}).Where("user_id = ?", u.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.Employee{}).Where("user_id = ?", u.ID).Count(&n)
	assert.Zero(t, n)
	assert.True(t, errs.IsNotFound(svc.Delete(ctx, u.ID)))
}

func TestProfiles(t *testing.T) {
	db := testkit.DB(t)
	u := seedUser(t, db, "buyer@sheshine.test", models.RoleUser, nil)
	svc := services.NewProfileService(db)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "buyer@sheshine.test", list[0].User.Email)

	updated, err := svc.Update(ctx, *u.ProfileID, services.ProfileUpdate{Dob: ptr("1988-12-24")})
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", updated.Address)
	assert.Equal(t, 1988, updated.Dob.Year())

	require.NoError(t, svc.Delete(ctx, *u.ProfileID))
	owner, err := services.NewUserService(db).Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, owner.ProfileID)

	_, err = svc.Get(ctx, *u.ProfileID)
	assert.True(t, errs.IsNotFound(err))
}

func TestEmployees(t *testing.T) {
	db := testkit.DB(t)
	u := seedUser(t, db, "new@sheshine.test", models.RoleUser, nil)
	svc := services.NewEmployeeService(db)

	_, err := svc.Create(ctx, services.EmployeeCreate{UserID: 999, DateOfHire: "2025-01-01", Salary: hired.Salary})
	assert.True(t, errs.IsNotFound(err))

	e, err := svc.Create(ctx, services.EmployeeCreate{UserID: u.ID, DateOfHire: "2025-01-01", Salary: hired.Salary})
	require.NoError(t, err)
	assert.True(t, e.IsWorking)

	_, err = svc.Create(ctx, services.EmployeeCreate{UserID: u.ID, DateOfHire: "2025-01-01", Salary: hired.Salary})
	assert.Equal(t, errs.KindDuplicate, errs.From(err).Kind)

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "new@sheshine.test", got.User.Email)

	linked, err := services.NewUserService(db).Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.EmployeeID)
	assert.Equal(t, e.ID, *linked.EmployeeID)

	require.NoError(t, svc.Delete(ctx, e.ID))
	unlinked, err := services.NewUserService(db).Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, unlinked.EmployeeID)
	assert.True(t, errs.IsNotFound(svc.Delete(ctx, e.ID)))
}
