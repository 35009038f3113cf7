package permit

import (
	"strings"
	"time"

	"github.com/FleetGate/FleetGate/internal/employee"
)

// Status 许可状态枚举（持久化为小写字符串）。
type Status string

const (
	StatusPending  Status = "pending"  // 待审批（初始状态）
	StatusApproved Status = "approved" // 已批准（终态）
	StatusRejected Status = "rejected" // 已拒绝（终态）
)

// Valid 是否为已知状态。
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Decided 是否为终态。
func (s Status) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

// Display 展示用：首字母大写（存储保持小写）。
func (s Status) Display() string {
	str := string(s)
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

// Permit 是 vehicle_permits 表的 GORM 模型。
// 每条许可归属唯一员工；删除员工时其许可被级联删除。
type Permit struct {
	ID         uint64             `gorm:"primaryKey" json:"id"`
	EmployeeID uint64             `gorm:"index;not null" json:"employee_id"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`

	VehicleType  string    `gorm:"size:255;not null" json:"vehicle_type"`
	LicensePlate string    `gorm:"size:255;not null" json:"license_plate"`
	UsageStart   time.Time `gorm:"index;not null" json:"usage_start"`
	UsageEnd     time.Time `gorm:"index;not null" json:"usage_end"`
	Purpose      string    `gorm:"type:text" json:"purpose"`

	Status     Status     `gorm:"type:varchar(16);not null;default:'pending';index;index:idx_status_created_at,priority:1" json:"status"`
	HRComments string     `gorm:"column:hr_comments;type:text" json:"hr_comments"`
	HRActionAt *time.Time `gorm:"column:hr_action_at" json:"hr_action_at"`
	HRActionBy string     `gorm:"column:hr_action_by;size:255" json:"hr_action_by"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_status_created_at,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Permit) TableName() string {
	return "vehicle_permits"
}
