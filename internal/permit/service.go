package permit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/errs"
	"github.com/FleetGate/FleetGate/internal/common/validate"
	"github.com/FleetGate/FleetGate/internal/employee"
	"gorm.io/gorm"
)

// Notifier 通知接收方（当前实现是 mock WhatsApp 日志落地）。
// 通知是尽力而为的旁路副作用：实现不返回错误，失败不影响主流程。
type Notifier interface {
	PermitSubmitted(ctx context.Context, p *Permit)
	PermitDecided(ctx context.Context, p *Permit)
}

// Service 封装许可生命周期的核心用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	repo      *Repo
	employees *employee.Service
	notifier  Notifier
}

func NewService(repo *Repo, employees *employee.Service, notifier Notifier) *Service {
	return &Service{repo: repo, employees: employees, notifier: notifier}
}

// SubmitInput 公开提交流程的入参。
type SubmitInput struct {
	EmployeeCode string // 员工编号（对外键，非自增主键）
	VehicleType  string
	LicensePlate string
	UsageStart   time.Time
	UsageEnd     time.Time
	Purpose      string
}

// submitRules 提交字段的类型化校验规则表。
var submitRules = []validate.Rule{
	{
		Field: "employee_id", Kind: validate.KindString, Required: true, MaxLen: 255,
		Messages: map[string]string{"required": "Employee ID is required."},
	},
	{
		Field: "vehicle_type", Kind: validate.KindString, Required: true, MaxLen: 255,
		Messages: map[string]string{"required": "Vehicle type is required."},
	},
	{
		Field: "license_plate", Kind: validate.KindString, Required: true, MaxLen: 255,
		Messages: map[string]string{"required": "License plate is required."},
	},
	{
		Field: "usage_start", Kind: validate.KindTime, Required: true, Future: true,
		Messages: map[string]string{
			"required": "Usage start date and time is required.",
			"future":   "Usage start must be in the future.",
		},
	},
	{
		Field: "usage_end", Kind: validate.KindTime, Required: true, After: "usage_start",
		Messages: map[string]string{
			"required": "Usage end date and time is required.",
			"after":    "Usage end must be after the start time.",
		},
	},
	{
		Field: "purpose", Kind: validate.KindString, MaxLen: 1000,
	},
}

func (in SubmitInput) values() map[string]validate.Input {
	return map[string]validate.Input{
		"employee_id":   validate.String(in.EmployeeCode),
		"vehicle_type":  validate.String(in.VehicleType),
		"license_plate": validate.String(in.LicensePlate),
		"usage_start":   validate.TimeVal(in.UsageStart),
		"usage_end":     validate.TimeVal(in.UsageEnd),
		"purpose":       validate.String(in.Purpose),
	}
}

// Submit 公开提交流程：校验通过后创建 pending 许可并通知 HR。
// 通知失败只记日志，不影响提交结果。
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Permit, error) {
	if s == nil || s.repo == nil || s.employees == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	fields := validate.Apply(submitRules, in.values(), time.Now())

	var emp *employee.Employee
	if _, bad := fields["employee_id"]; !bad {
		var err error
		emp, err = s.employees.LookupByCode(ctx, in.EmployeeCode)
		if err != nil {
			if errs.IsNotFound(err) {
				fields["employee_id"] = "Employee ID not found in the system."
			} else {
				return nil, fmt.Errorf("resolve employee: %w", err)
			}
		}
	}
	if len(fields) > 0 {
		return nil, &errs.ValidationError{Fields: fields}
	}

	p := &Permit{
		EmployeeID:   emp.ID,
		VehicleType:  strings.TrimSpace(in.VehicleType),
		LicensePlate: strings.TrimSpace(in.LicensePlate),
		UsageStart:   in.UsageStart,
		UsageEnd:     in.UsageEnd,
		Purpose:      strings.TrimSpace(in.Purpose),
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Employee = emp

	if s.notifier != nil {
		s.notifier.PermitSubmitted(ctx, p)
	}
	return p, nil
}

// Decide HR 裁决：pending -> approved / rejected，一次性落 HR 字段。
// 已裁决的许可不允许再次裁决。
func (s *Service) Decide(ctx context.Context, id uint64, decision Status, comments, actor string) (*Permit, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if !decision.Decided() {
		return nil, errs.NewValidation("status", "The selected status is invalid.")
	}

	p, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("Permit")
		}
		return nil, err
	}

	if err := ApplyDecision(p, decision, strings.TrimSpace(comments), strings.TrimSpace(actor), time.Now()); err != nil {
		return nil, errs.NewValidation("status", "This permit has already been decided.")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.PermitDecided(ctx, p)
	}
	return p, nil
}

// Delete 无条件硬删除，任意状态，无生命周期保护。
func (s *Service) Delete(ctx context.Context, id uint64) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	if _, err := s.repo.GetByID(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound("Permit")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uint64, withEmployee bool) (*Permit, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	p, err := s.repo.GetByID(ctx, id, withEmployee)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("Permit")
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Permit, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Overview(ctx context.Context) (*Stats, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.CountByStatus(ctx)
}
