package repository

import (
	"context"
	"errors"

	"staffhub/internal/model"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("employee not found")
	ErrDuplicate = errors.New("employee with the email or mobile already exists")
)

// EmployeeInterface is the store-adapter boundary. Every read goes to the
// database; there is no caching layer in front of it.
type EmployeeInterface interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByID(ctx context.Context, id uint64) (*model.Employee, error)
	List(ctx context.Context, search string) ([]model.Employee, error)
	Update(ctx context.Context, emp *model.Employee) error
	Delete(ctx context.Context, id uint64) (*model.Employee, error)
	ExistsByEmailOrMobile(ctx context.Context, email, mobile string, excludeID uint64) (bool, error)
	PingContext(ctx context.Context) error
}

// EmployeeRepository implements EmployeeInterface for MySQL.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts the record. Unique-index violations on email or mobile
// surface as ErrDuplicate; the row-level atomicity belongs to MySQL.
func (r *EmployeeRepository) Create(ctx context.Context, emp *model.Employee) error {
	if err := r.db.WithContext(ctx).Create(emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint64) (*model.Employee, error) {
	var emp model.Employee
	if err := r.db.WithContext(ctx).First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) List(ctx context.Context, search string) ([]model.Employee, error) {
	var employees []model.Employee
	query := r.db.WithContext(ctx)

	if search != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	err := query.Order("created_at DESC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Update(ctx context.Context, emp *model.Employee) error {
	if err := r.db.WithContext(ctx).Save(emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes the record and returns the deleted row.
func (r *EmployeeRepository) Delete(ctx context.Context, id uint64) (*model.Employee, error) {
	emp, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&model.Employee{}, id).Error; err != nil {
		return nil, err
	}
	return emp, nil
}

// ExistsByEmailOrMobile reports whether another employee already claims
// either value. excludeID skips the record being edited.
func (r *EmployeeRepository) ExistsByEmailOrMobile(ctx context.Context, email, mobile string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("email = ? OR mobile = ?", email, mobile)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EmployeeRepository) PingContext(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
