package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/FleetGate/FleetGate/internal/common/logger"
	"github.com/FleetGate/FleetGate/internal/permit"
)

// WhatsAppMock 把通知落到结构化日志（mock 实现）。
// 真实接入 WhatsApp Business API 时替换本实现即可；
// 通知是旁路副作用，这里不返回错误、不重试、无送达保证。
type WhatsAppMock struct {
	log logger.Logger
}

func NewWhatsAppMock(log logger.Logger) *WhatsAppMock {
	return &WhatsAppMock{log: log}
}

const notifyTimeLayout = "Jan 2, 2006 15:04"

// PermitSubmitted 新许可提交后通知 HR。
func (m *WhatsAppMock) PermitSubmitted(ctx context.Context, p *permit.Permit) {
	if m == nil || m.log == nil || p == nil {
		return
	}
	m.log.WithFields(map[string]interface{}{
		"channel":   "hr",
		"permit_id": p.ID,
	}).Infof("Mock WhatsApp to HR: %s", SubmittedMessage(p))
}

// PermitDecided 裁决后通知员工。
func (m *WhatsAppMock) PermitDecided(ctx context.Context, p *permit.Permit) {
	if m == nil || m.log == nil || p == nil {
		return
	}
	m.log.WithFields(map[string]interface{}{
		"channel":   "employee",
		"permit_id": p.ID,
	}).Infof("Mock WhatsApp to Employee: %s", DecidedMessage(p))
}

// SubmittedMessage 给 HR 的消息正文。
func SubmittedMessage(p *permit.Permit) string {
	var b strings.Builder
	b.WriteString("New Vehicle Permit Request\n\n")
	if p.Employee != nil {
		fmt.Fprintf(&b, "Employee: %s (%s)\n", p.Employee.Name, p.Employee.EmployeeID)
	}
	fmt.Fprintf(&b, "Vehicle: %s - %s\n", p.VehicleType, p.LicensePlate)
	fmt.Fprintf(&b, "Duration: %s - %s\n", p.UsageStart.Format(notifyTimeLayout), p.UsageEnd.Format(notifyTimeLayout))
	fmt.Fprintf(&b, "Purpose: %s\n", p.Purpose)
	return b.String()
}

// DecidedMessage 给员工的消息正文。
func DecidedMessage(p *permit.Permit) string {
	var b strings.Builder
	b.WriteString("Vehicle Permit Update\n\n")
	if p.Employee != nil {
		fmt.Fprintf(&b, "Hello %s,\n\n", p.Employee.Name)
	}
	fmt.Fprintf(&b, "Your vehicle permit request has been %s.\n", p.Status)
	fmt.Fprintf(&b, "Vehicle: %s - %s\n", p.VehicleType, p.LicensePlate)
	fmt.Fprintf(&b, "Duration: %s - %s\n", p.UsageStart.Format(notifyTimeLayout), p.UsageEnd.Format(notifyTimeLayout))
	if p.HRComments != "" {
		fmt.Fprintf(&b, "HR Comments: %s\n", p.HRComments)
	}
	return b.String()
}
