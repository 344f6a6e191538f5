package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
	"github.com/presenz/presenz-backend-go/internal/domain/user"
	"github.com/presenz/presenz-backend-go/internal/repository/postgresql"
)

func TestStaffRepository_CreateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewStaffRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, employee.Employee{
		UID:            strPtr("uid-1"),
		Name:           "Meera",
		Email:          "meera@example.com",
		Role:           "Designer",
		AccessRole:     user.RoleEmployee,
		ShiftRuleID:    strPtr("night"),
		Salary:         "30,000",
		PaidHolidays:   shiftrule.Unpaid,
		UnpaidHolidays: []string{"2024-03-08"},
		BankDetails:    employee.BankDetails{AccountNumber: "1234", BankName: "SBI"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, employee.StatusActive, created.Status)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meera", got.Name)
	assert.Equal(t, shiftrule.Unpaid, got.PaidHolidays)
	assert.Equal(t, shiftrule.Inherit, got.PaidWeeklyOffs)
	assert.Equal(t, []string{"2024-03-08"}, got.UnpaidHolidays)
	assert.Equal(t, "SBI", got.BankDetails.BankName)
	require.NotNil(t, got.ShiftRuleID)
	assert.Equal(t, "night", *got.ShiftRuleID)

	byKey, err := repo.GetByKey(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byKey.ID)

	_, err = repo.Create(ctx, employee.Employee{UID: strPtr("uid-1"), Name: "Clone"})
	assert.ErrorIs(t, err, employee.ErrUIDExists)
}

func TestStaffRepository_KeyFallsBackToID(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewStaffRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, employee.Employee{Name: "No Account"})
	require.NoError(t, err)

	got, err := repo.GetByKey(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByKey(ctx, "nobody")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestStaffRepository_ListAndSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewStaffRepository(db)
	ctx := context.Background()

	a, err := repo.Create(ctx, employee.Employee{Name: "Anil", Email: "anil@example.com"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, employee.Employee{Name: "Bina", Email: "bina@example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, a.ID))
	assert.ErrorIs(t, repo.SoftDelete(ctx, a.ID), employee.ErrEmployeeNotFound)

	active, err := repo.List(ctx, employee.ListFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Bina", active[0].Name)

	all, err := repo.List(ctx, employee.ListFilter{IncludeRemoved: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	searched, err := repo.List(ctx, employee.ListFilter{IncludeRemoved: true, Search: "ANIL"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, employee.StatusRemoved, searched[0].Status)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStaffRepository_UpdateAndProfileImage(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewStaffRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, employee.Employee{Name: "Kiran"})
	require.NoError(t, err)

	created.Name = "Kiran K"
	created.PaidWeeklyOffs = shiftrule.Paid
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Kiran K", updated.Name)
	assert.Equal(t, shiftrule.Paid, updated.PaidWeeklyOffs)

	require.NoError(t, repo.UpdateProfileImage(ctx, created.ID, strPtr("profiles/k.jpg")))
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProfileImage)
	assert.Equal(t, "profiles/k.jpg", *got.ProfileImage)

	missing := created
	missing.ID = "00000000-0000-0000-0000-000000000000"
	_, err = repo.Update(ctx, missing)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
