package export

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/errs"
	"github.com/FleetGate/FleetGate/internal/common/server"
	"github.com/gin-gonic/gin"
)

// Handler 导出接口的 HTTP 处理器。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

const dateLayout = "2006-01-02"

type exportPayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func parseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// Export POST /admin/export：过滤结果集流式输出为 CSV 附件。
func (h *Handler) Export(c *gin.Context) {
	var p exportPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fields := map[string]string{}
	start, ok := parseDate(p.StartDate)
	if !ok {
		fields["start_date"] = "Start date must be a valid date."
	}
	end, ok := parseDate(p.EndDate)
	if !ok {
		fields["end_date"] = "End date must be a valid date."
	}
	if len(fields) > 0 {
		server.RespondError(c, &errs.ValidationError{Fields: fields})
		return
	}

	result, err := h.svc.Export(c.Request.Context(), start, end)
	if err != nil {
		server.RespondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	for _, row := range result.Rows {
		// 响应已经开始，写失败只能中断
		if err := w.Write(row); err != nil {
			return
		}
	}
	w.Flush()
}
