package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/repositories"
	"github.com/sheshine/backoffice/pkg/auth"
	"github.com/sheshine/backoffice/pkg/errs"
)

const msgEmailTaken = "A user with this email already exists"

type ProfileInput struct {
	Address string `json:"address" validate:"required"`
	Dob     string `json:"dob"     validate:"required,datetime=2006-01-02"`
}

type EmployeeInput struct {
	DateOfHire string          `json:"dateOfHire" validate:"required,datetime=2006-01-02"`
	Salary     decimal.Decimal `json:"salary"`
}

// UserInput creates a user with a profile, and an employee record when
// the role is employee.
type UserInput struct {
	Name     string         `json:"name"     validate:"required"`
	Email    string         `json:"email"    validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	Phone    string         `json:"phone"`
	Role     string         `json:"role"     validate:"omitempty,oneof=user admin employee"`
	Profile  *ProfileInput  `json:"profile"  validate:"required"`
	Employee *EmployeeInput `json:"employee"`
}

type UserUpdate struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"     validate:"omitempty,oneof=user admin employee"`
}

type UserService struct {
	db    *gorm.DB
	users *repositories.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, users: repositories.NewUserRepository(db)}
}

func (in UserInput) fieldErrors() map[string]string {
	out := map[string]string{}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if role == models.RoleEmployee {
		switch {
		case in.Employee == nil:
			out["employee"] = "is required for the employee role"
		case !in.Employee.Salary.IsPositive():
			out["employee.salary"] = "must be greater than 0"
		}
	}
	return out
}

// Create inserts the user, profile and optional employee record in one
// transaction.
func (s *UserService) Create(ctx context.Context, in UserInput) (models.User, error) {
	if err := check(in, in.fieldErrors()); err != nil {
		return models.User{}, err
	}

	dob, _ := parseDate(in.Profile.Dob)
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, errs.Internal(err)
	}

	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		Password: hash,
		Phone:    in.Phone,
		Role:     in.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		if err := users.Create(ctx, &user); err != nil {
			if errs.IsDuplicateKey(err) {
				return errs.Duplicate(msgEmailTaken)
			}
			return err
		}

		profile := models.Profile{Address: in.Profile.Address, Dob: dob, UserID: user.ID}
		if err := repositories.NewProfileRepository(tx).Create(ctx, &profile); err != nil {
			return err
		}
		if err := users.Link(ctx, user.ID, "profile_id", &profile.ID); err != nil {
			return err
		}

		if user.Role == models.RoleEmployee {
			hired, _ := parseDate(in.Employee.DateOfHire)
			employee := models.Employee{UserID: user.ID, DateOfHire: hired, Salary: in.Employee.Salary, IsWorking: true}
			if err := repositories.NewEmployeeRepository(tx).Create(ctx, &employee); err != nil {
				return err
			}
			if err := users.Link(ctx, user.ID, "employee_id", &employee.ID); err != nil {
				return err
			}
		}

		created, err := users.FindByID(ctx, user.ID)
		if err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.All(ctx)
	return nonNil(users), err
}

func (s *UserService) Get(ctx context.Context, id uint) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	return user, notFound(err, "User not found")
}

// FindByEmail returns the user with email, or NotFound.
func (s *UserService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	return user, notFound(err, "User not found")
}

// Update merges name, email, phone and role; a supplied password is
// re-hashed.
func (s *UserService) Update(ctx context.Context, id uint, in UserUpdate) (models.User, error) {
	if err := check(in, nil); err != nil {
		return models.User{}, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = normalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return models.User{}, errs.Internal(err)
		}
		user.Password = hash
	}

	if err := s.users.Update(ctx, &user); err != nil {
		if errs.IsDuplicateKey(err) {
			return models.User{}, errs.Duplicate(msgEmailTaken)
		}
		return models.User{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes the user with its profile and employee record.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewUserRepository(tx).Delete(ctx, id); err != nil {
			return err
		}
		if err := repositories.NewProfileRepository(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		return repositories.NewEmployeeRepository(tx).DeleteByUser(ctx, id)
	})
	return notFound(err, "User not found")
}
