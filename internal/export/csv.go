package export

import (
	"strconv"
	"time"

	"github.com/FleetGate/FleetGate/internal/permit"
)

const (
	cellTimeLayout     = "2006-01-02 15:04:05"
	filenameTimeLayout = "2006-01-02-15-04-05"
	emptyActionAt      = "N/A"
)

// Header CSV 表头，列序固定。
var Header = []string{
	"ID",
	"Employee ID",
	"Employee Name",
	"Department",
	"Grade",
	"Vehicle Type",
	"License Plate",
	"Usage Start",
	"Usage End",
	"Purpose",
	"Status",
	"HR Comments",
	"Submitted At",
	"HR Action At",
}

// Filename 导出文件名：vehicle-permits-<生成时刻>.csv。
func Filename(now time.Time) string {
	return "vehicle-permits-" + now.Format(filenameTimeLayout) + ".csv"
}

// Row 把一条许可（含员工）投影为一行 CSV 单元格。
// 时间格式 YYYY-MM-DD HH:MM:SS；HR Action At 为空时输出 N/A；状态首字母大写。
func Row(p *permit.Permit) []string {
	empCode, empName, department, grade := "", "", "", ""
	if p.Employee != nil {
		empCode = p.Employee.EmployeeID
		empName = p.Employee.Name
		department = p.Employee.Department
		grade = p.Employee.Grade
	}

	actionAt := emptyActionAt
	if p.HRActionAt != nil {
		actionAt = p.HRActionAt.Format(cellTimeLayout)
	}

	return []string{
		strconv.FormatUint(p.ID, 10),
		empCode,
		empName,
		department,
		grade,
		p.VehicleType,
		p.LicensePlate,
		p.UsageStart.Format(cellTimeLayout),
		p.UsageEnd.Format(cellTimeLayout),
		p.Purpose,
		p.Status.Display(),
		p.HRComments,
		p.CreatedAt.Format(cellTimeLayout),
		actionAt,
	}
}

// Rows 表头 + 全部数据行。
func Rows(permits []permit.Permit) [][]string {
	out := make([][]string, 0, len(permits)+1)
	out = append(out, Header)
	for i := range permits {
		out = append(out, Row(&permits[i]))
	}
	return out
}
