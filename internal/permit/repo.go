package permit

import (
	"context"
	"fmt"
	"time"

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

func (r *Repo) Create(ctx context.Context, p *Permit) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(p).Error
}

func (r *Repo) Update(ctx context.Context, p *Permit) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(p).Error
}

func (r *Repo) Delete(ctx context.Context, id uint64) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Delete(&Permit{}, id).Error
}

// GetByID 查询单条许可。withEmployee 控制是否联带员工
// （显式参数，让关联加载的 I/O 成本在调用处可见）。
func (r *Repo) GetByID(ctx context.Context, id uint64, withEmployee bool) (*Permit, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := db.Where("id = ?", id)
	if withEmployee {
		q = q.Preload("Employee")
	}
	var p Permit
	if err := q.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListFilter 查询条件。
type ListFilter struct {
	EmployeeID   uint64
	Status       Status
	WithEmployee bool
	Offset       int
	Limit        int
}

// List 支持按 employee_id / status 过滤 + 分页，按提交时间倒序。
func (r *Repo) List(ctx context.Context, f ListFilter) ([]Permit, int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	q := db.Model(&Permit{})
	if f.EmployeeID > 0 {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.WithEmployee {
		q = q.Preload("Employee")
	}
	var permits []Permit
	if err := q.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&permits).Error; err != nil {
		return nil, 0, err
	}
	return permits, total, nil
}

// ListCreatedBetween 导出查询：按提交日期（自然日，含两端）过滤，联带员工，
// 一次性物化全部结果（导出不分页）。
func (r *Repo) ListCreatedBetween(ctx context.Context, start, end *time.Time) ([]Permit, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}

	q := db.Model(&Permit{}).Preload("Employee")
	if start != nil {
		q = q.Where("DATE(created_at) >= ?", start.Format("2006-01-02"))
	}
	if end != nil {
		q = q.Where("DATE(created_at) <= ?", end.Format("2006-01-02"))
	}

	var permits []Permit
	if err := q.Order("created_at ASC").Find(&permits).Error; err != nil {
		return nil, err
	}
	return permits, nil
}

// Stats 按状态统计（HR 面板用）。
type Stats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

func (r *Repo) CountByStatus(ctx context.Context) (*Stats, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}

	var rows []struct {
		Status Status
		Count  int64
	}
	if err := db.Model(&Permit{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case StatusPending:
			stats.Pending = row.Count
		case StatusApproved:
			stats.Approved = row.Count
		case StatusRejected:
			stats.Rejected = row.Count
		}
	}
	return stats, nil
}
