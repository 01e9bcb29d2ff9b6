package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/config"
	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/logger"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the administrator named by ADMIN_EMAIL unless it
// exists. It does nothing when ADMIN_EMAIL or ADMIN_PASSWORD is unset.
func SeedAdmin(ctx context.Context, db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "")
	password := config.Get("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		logger.Info("seeder: admin skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	users := services.NewUserService(db)
	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errs.IsNotFound(err) {
		return err
	}

	admin, err := users.Create(ctx, services.UserInput{
		Name:     config.Get("ADMIN_NAME", "Administrator"),
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
		Profile:  &services.ProfileInput{Address: "Admin HQ", Dob: "1990-01-01"},
	})
	if err != nil {
		return err
	}
	logger.Info("seeder: default admin created", "user_id", admin.ID, "email", admin.Email)
	return nil
}
