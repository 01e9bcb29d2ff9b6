package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/repositories"
	"github.com/sheshine/backoffice/pkg/errs"
)

type EmployeeCreate struct {
	UserID     uint            `json:"userId"     validate:"required"`
	DateOfHire string          `json:"dateOfHire" validate:"required,datetime=2006-01-02"`
	Salary     decimal.Decimal `json:"salary"`
}

type EmployeeUpdate struct {
	DateOfHire *string          `json:"dateOfHire" validate:"omitempty,datetime=2006-01-02"`
	Salary     *decimal.Decimal `json:"salary"`
	IsWorking  *bool            `json:"isWorking"`
}

type EmployeeService struct {
	db        *gorm.DB
	employees *repositories.EmployeeRepository
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db, employees: repositories.NewEmployeeRepository(db)}
}

// Create registers an existing user as an employee and links the record
// to the user.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeCreate) (models.Employee, error) {
	extra := map[string]string{}
	if !in.Salary.IsPositive() {
		extra["salary"] = "must be greater than 0"
	}
	if err := check(in, extra); err != nil {
		return models.Employee{}, err
	}
	hired, _ := parseDate(in.DateOfHire)

	employee := models.Employee{UserID: in.UserID, DateOfHire: hired, Salary: in.Salary, IsWorking: true}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		employees := repositories.NewEmployeeRepository(tx)

		ok, err := users.Exists(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("User not found")
		}

		taken, err := employees.ExistsForUser(ctx, in.UserID)
		if err != nil {
			return err
		}
		if taken {
			return errs.Duplicate("User is already registered as an employee")
		}

		if err := employees.Create(ctx, &employee); err != nil {
			return err
		}
		return users.Link(ctx, in.UserID, "employee_id", &employee.ID)
	})
	if err != nil {
		return models.Employee{}, err
	}
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.employees.All(ctx)
	return nonNil(employees), err
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (models.Employee, error) {
	employee, err := s.employees.Find(ctx, id)
	return employee, notFound(err, "Employee not found")
}

// Update merges dateOfHire, salary and isWorking.
func (s *EmployeeService) Update(ctx context.Context, id uint, in EmployeeUpdate) (models.Employee, error) {
	extra := map[string]string{}
	if in.Salary != nil && !in.Salary.IsPositive() {
		extra["salary"] = "must be greater than 0"
	}
	if err := check(in, extra); err != nil {
		return models.Employee{}, err
	}

	employee, err := s.Get(ctx, id)
	if err != nil {
		return models.Employee{}, err
	}

	if in.DateOfHire != nil {
		employee.DateOfHire, _ = parseDate(*in.DateOfHire)
	}
	if in.Salary != nil {
		employee.Salary = *in.Salary
	}
	if in.IsWorking != nil {
		employee.IsWorking = *in.IsWorking
	}

	if err := s.employees.Save(ctx, &employee); err != nil {
		return models.Employee{}, err
	}
	return employee, nil
}

// Delete removes the employee record and unlinks it from its user.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employees := repositories.NewEmployeeRepository(tx)
		employee, err := employees.Find(ctx, id)
		if err != nil {
			return err
		}
		if err := employees.Delete(ctx, id); err != nil {
			return err
		}
		return repositories.NewUserRepository(tx).Link(ctx, employee.UserID, "employee_id", nil)
	})
	return notFound(err, "Employee not found")
}
