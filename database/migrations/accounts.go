package migrations

import (
	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000003_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000004_create_profiles_table", &CreateProfilesTable{})
	migration.Register("20260101000005_create_employees_table", &CreateEmployeesTable{})
}

// -------- users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

// -------- profiles --------

type CreateProfilesTable struct{}

func (m *CreateProfilesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Profile{})
}

func (m *CreateProfilesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Profile{})
}

// -------- employees --------

type CreateEmployeesTable struct{}

func (m *CreateEmployeesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Employee{})
}

func (m *CreateEmployeesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Employee{})
}
