package employee

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Create(ctx context.Context, e *Employee) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(e).Error
}

func (r *Repo) Update(ctx context.Context, e *Employee) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(e).Error
}

// DeleteCascade 删除员工并级联删除其名下所有许可。
// 级联在存储层显式执行（单事务），不依赖外键默认行为。
func (r *Repo) DeleteCascade(ctx context.Context, id uint64) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM vehicle_permits WHERE employee_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Employee{}, id).Error
	})
}

func (r *Repo) GetByID(ctx context.Context, id uint64) (*Employee, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var e Employee
	if err := db.Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByCode 按员工编号精确查找（无模糊匹配）。
func (r *Repo) FindByCode(ctx context.Context, code string) (*Employee, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var e Employee
	if err := db.Where("employee_id = ?", code).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// CodeInUse 判断员工编号是否已被其他记录占用。
// excludeID > 0 时排除该记录本身（更新时保留自己的编号）。
func (r *Repo) CodeInUse(ctx context.Context, code string, excludeID uint64) (bool, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return false, fmt.Errorf("repo db is nil")
	}
	q := db.Model(&Employee{}).Where("employee_id = ?", code)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 按创建时间倒序分页。
func (r *Repo) List(ctx context.Context, offset, limit int) ([]Employee, int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if limit <= 0 {
		limit = 15
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := db.Model(&Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var employees []Employee
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListWithPermitCounts 员工列表 + 每人的许可数量（显式 join，I/O 成本在调用处可见）。
func (r *Repo) ListWithPermitCounts(ctx context.Context, offset, limit int) ([]WithPermitCount, int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if limit <= 0 {
		limit = 15
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := db.Model(&Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []WithPermitCount
	err := db.Model(&Employee{}).
		Select("employees.*, COUNT(vehicle_permits.id) AS permit_count").
		Joins("LEFT JOIN vehicle_permits ON vehicle_permits.employee_id = employees.id").
		Group("employees.id").
		Order("employees.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// PermitCount 某员工名下的许可数量。
func (r *Repo) PermitCount(ctx context.Context, id uint64) (int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var count int64
	if err := db.Table("vehicle_permits").Where("employee_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAll 员工总数。
func (r *Repo) CountAll(ctx context.Context) (int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var count int64
	if err := db.Model(&Employee{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDepartments 不同部门数量。
func (r *Repo) CountDepartments(ctx context.Context) (int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var count int64
	if err := db.Model(&Employee{}).Distinct("department").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
