package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/errs"
	"github.com/FleetGate/FleetGate/internal/common/validate"
	"gorm.io/gorm"
)

// Service 封装员工名录的核心用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// Input 创建/更新员工的入参。
type Input struct {
	EmployeeID string
	Name       string
	Department string
	Grade      string
}

// fieldRules 员工字段的类型化校验规则表。
var fieldRules = []validate.Rule{
	{
		Field: "employee_id", Kind: validate.KindString, Required: true, MaxLen: 255,
		Messages: map[string]string{"required": "Employee ID is required."},
	},
	{
		Field: "name", Kind: validate.KindString, Required: true, MaxLen: 255,
		Messages: map[string]string{"required": "Employee name is required."},
	},
	{
		Field: "department", Kind: validate.KindString, Required: true, MaxLen: 255,
		Messages: map[string]string{"required": "Department is required."},
	},
	{
		Field: "grade", Kind: validate.KindString, Required: true, MaxLen: 255,
		Messages: map[string]string{"required": "Grade is required."},
	},
}

func (in Input) values() map[string]validate.Input {
	return map[string]validate.Input{
		"employee_id": validate.String(in.EmployeeID),
		"name":        validate.String(in.Name),
		"department":  validate.String(in.Department),
		"grade":       validate.String(in.Grade),
	}
}

// validateInput 规则表校验 + 编号唯一性检查（excludeID 排除自身）。
func (s *Service) validateInput(ctx context.Context, in Input, excludeID uint64) error {
	fields := validate.Apply(fieldRules, in.values(), time.Now())

	if _, bad := fields["employee_id"]; !bad {
		used, err := s.repo.CodeInUse(ctx, strings.TrimSpace(in.EmployeeID), excludeID)
		if err != nil {
			return fmt.Errorf("check employee code: %w", err)
		}
		if used {
			fields["employee_id"] = "This Employee ID is already taken by another employee."
		}
	}

	if len(fields) > 0 {
		return &errs.ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Employee, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if err := s.validateInput(ctx, in, 0); err != nil {
		return nil, err
	}

	e := &Employee{
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		Name:       strings.TrimSpace(in.Name),
		Department: strings.TrimSpace(in.Department),
		Grade:      strings.TrimSpace(in.Grade),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id uint64, in Input) (*Employee, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("Employee")
		}
		return nil, err
	}

	if err := s.validateInput(ctx, in, id); err != nil {
		return nil, err
	}

	e.EmployeeID = strings.TrimSpace(in.EmployeeID)
	e.Name = strings.TrimSpace(in.Name)
	e.Department = strings.TrimSpace(in.Department)
	e.Grade = strings.TrimSpace(in.Grade)
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete 删除员工，显式级联删除其名下所有许可（单事务）。
func (s *Service) Delete(ctx context.Context, id uint64) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound("Employee")
		}
		return err
	}
	return s.repo.DeleteCascade(ctx, id)
}

// LookupByCode 按员工编号精确查找（公开自动填充接口 + 许可提交用）。
func (s *Service) LookupByCode(ctx context.Context, code string) (*Employee, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	e, err := s.repo.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("Employee")
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id uint64) (*Employee, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("Employee")
		}
		return nil, err
	}
	return e, nil
}

// GetWithPermitCount 员工详情 + 名下许可数量。
func (s *Service) GetWithPermitCount(ctx context.Context, id uint64) (*WithPermitCount, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.PermitCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WithPermitCount{Employee: *e, PermitCount: count}, nil
}

func (s *Service) List(ctx context.Context, page, pageSize int) ([]Employee, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	offset, limit := pageWindow(page, pageSize, 15)
	return s.repo.List(ctx, offset, limit)
}

func (s *Service) ListWithPermitCounts(ctx context.Context, page, pageSize int) ([]WithPermitCount, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	offset, limit := pageWindow(page, pageSize, 15)
	return s.repo.ListWithPermitCounts(ctx, offset, limit)
}

// Stats 管理面板的员工侧统计。
type Stats struct {
	TotalEmployees int64 `json:"total_employees"`
	Departments    int64 `json:"departments"`
}

func (s *Service) Overview(ctx context.Context) (*Stats, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.repo.CountDepartments(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalEmployees: total, Departments: departments}, nil
}

func pageWindow(page, pageSize, defaultSize int) (offset, limit int) {
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if page <= 0 {
		page = 1
	}
	return (page - 1) * pageSize, pageSize
}
