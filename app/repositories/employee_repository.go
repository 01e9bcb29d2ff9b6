package repositories

import (
	"context"

	"github.com/sheshine/backoffice/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository handles database operations for Employee.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) All(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := withOwner(r.db.WithContext(ctx), "name", "email", "phone").Order("id").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Find(ctx context.Context, id uint) (models.Employee, error) {
	var employee models.Employee
	err := withOwner(r.db.WithContext(ctx), "name", "email", "phone").First(&employee, id).Error
	return employee, err
}

// ExistsForUser reports whether userID already has an employee record.
func (r *EmployeeRepository) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("user_id = ?", userID).Count(&n).Error
	return n > 0, err
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(employee).Error
}

// Save writes every column, so IsWorking=false is persisted.
func (r *EmployeeRepository) Save(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(employee).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByUser removes the employee record of userID, if any.
func (r *EmployeeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Employee{}).Error
}
