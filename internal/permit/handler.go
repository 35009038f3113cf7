package permit

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/errs"
	"github.com/FleetGate/FleetGate/internal/common/server"
	"github.com/gin-gonic/gin"
)

// Handler 许可相关的 HTTP 处理器。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// 接受的时间格式：RFC3339、HTML datetime-local、普通 "Y-m-d H:i:s"。
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type submitPayload struct {
	EmployeeID   string `json:"employee_id"`
	VehicleType  string `json:"vehicle_type"`
	LicensePlate string `json:"license_plate"`
	UsageStart   string `json:"usage_start"`
	UsageEnd     string `json:"usage_end"`
	Purpose      string `json:"purpose"`
}

// Submit 公开提交接口（无需登录）。
func (h *Handler) Submit(c *gin.Context) {
	var p submitPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fields := map[string]string{}
	start, ok := parseDateTime(p.UsageStart)
	if !ok {
		fields["usage_start"] = "Usage start must be a valid date."
	}
	end, ok := parseDateTime(p.UsageEnd)
	if !ok {
		fields["usage_end"] = "Usage end must be a valid date."
	}
	if len(fields) > 0 {
		server.RespondError(c, &errs.ValidationError{Fields: fields})
		return
	}

	created, err := h.svc.Submit(c.Request.Context(), SubmitInput{
		EmployeeCode: p.EmployeeID,
		VehicleType:  p.VehicleType,
		LicensePlate: p.LicensePlate,
		UsageStart:   start,
		UsageEnd:     end,
		Purpose:      p.Purpose,
	})
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Vehicle permit request submitted successfully! HR will be notified.",
		"data":    created,
	})
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	f := ListFilter{
		Status:       Status(c.Query("status")),
		WithEmployee: true,
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize,
	}
	permits, total, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      permits,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *Handler) Show(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid permit id"})
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id, true)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

type decidePayload struct {
	Status     string `json:"status"`
	HRComments string `json:"hr_comments"`
}

// Decide HR 裁决接口：操作人身份来自鉴权上下文显式传入，
// 不依赖任何隐式会话状态。
func (h *Handler) Decide(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid permit id"})
		return
	}
	var p decidePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := ""
	if ai, ok := server.AuthFromContext(c); ok {
		actor = ai.Name
	}

	updated, err := h.svc.Decide(c.Request.Context(), id, Status(p.Status), p.HRComments, actor)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Permit " + string(updated.Status) + " successfully!",
		"data":    updated,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid permit id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Permit deleted successfully."})
}

func parseID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
