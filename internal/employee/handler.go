package employee

import (
	"net/http"
	"strconv"

	"github.com/FleetGate/FleetGate/internal/common/server"
	"github.com/gin-gonic/gin"
)

// Handler 员工相关的 HTTP 处理器。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type employeePayload struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
}

func (p employeePayload) input() Input {
	return Input{
		EmployeeID: p.EmployeeID,
		Name:       p.Name,
		Department: p.Department,
		Grade:      p.Grade,
	}
}

// Lookup 公开的自动填充接口：按员工编号返回最小投影。
// 未命中返回 404 {"error": "Employee not found"}。
func (h *Handler) Lookup(c *gin.Context) {
	e, err := h.svc.LookupByCode(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":       e.Name,
		"department": e.Department,
		"grade":      e.Grade,
	})
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "15"))

	employees, total, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      employees,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var p employeePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	e, err := h.svc.Create(c.Request.Context(), p.input())
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Employee created successfully.",
		"data":    e,
	})
}

func (h *Handler) Show(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}
	e, err := h.svc.GetWithPermitCount(c.Request.Context(), id)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": e})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}
	var p employeePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	e, err := h.svc.Update(c.Request.Context(), id, p.input())
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Employee updated successfully.",
		"data":    e,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully."})
}

func parseID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
