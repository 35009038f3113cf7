package employee

import "time"

// Employee 是 employees 表的 GORM 模型。
// EmployeeID 是外部分配的员工编号（对外查询键），与自增主键 ID 区分。
type Employee struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	EmployeeID string    `gorm:"column:employee_id;uniqueIndex;size:255;not null" json:"employee_id"`
	Name       string    `gorm:"size:255;not null;index" json:"name"`
	Department string    `gorm:"size:255;not null;index" json:"department"`
	Grade      string    `gorm:"size:255;not null" json:"grade"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// WithPermitCount 员工 + 名下许可数量（管理面板列表用）。
type WithPermitCount struct {
	Employee
	PermitCount int64 `json:"permit_count"`
}
