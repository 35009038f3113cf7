package export

import (
	"context"
	"fmt"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/errs"
	"github.com/FleetGate/FleetGate/internal/permit"
)

// Service 历史数据导出（只读聚合，许可联员工，CSV 投影）。
type Service struct {
	permits *permit.Repo
}

func NewService(permits *permit.Repo) *Service {
	return &Service{permits: permits}
}

// Result 一次导出的产物。整份结果集在内存物化后一次性输出，
// 与导出语义一致（不分页）。
type Result struct {
	Filename string
	Rows     [][]string
}

// Export 按提交日期（自然日，含两端）过滤并生成 CSV 行。
// start / end 任一为空表示该侧无界；两者都给定时要求 start <= end。
func (s *Service) Export(ctx context.Context, start, end *time.Time) (*Result, error) {
	if s == nil || s.permits == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, errs.NewValidation("end_date", "End date must be a date after or equal to start date.")
	}

	permits, err := s.permits.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &Result{
		Filename: Filename(time.Now()),
		Rows:     Rows(permits),
	}, nil
}
