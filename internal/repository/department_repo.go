package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
)

type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return translateError(r.db.WithContext(ctx).Create(dept).Error)
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &dept, nil
}
