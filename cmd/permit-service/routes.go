package main

import (
	"net/http"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/config"
	"github.com/FleetGate/FleetGate/internal/common/logger"
	"github.com/FleetGate/FleetGate/internal/common/middleware"
	"github.com/FleetGate/FleetGate/internal/common/server"
	"github.com/FleetGate/FleetGate/internal/employee"
	"github.com/FleetGate/FleetGate/internal/export"
	"github.com/FleetGate/FleetGate/internal/permit"
	"github.com/FleetGate/FleetGate/internal/user"
	"github.com/gin-gonic/gin"
)

type application struct {
	cfg *config.Config
	log logger.Logger

	employees *employee.Handler
	permits   *permit.Handler
	exports   *export.Handler
	users     *user.Handler

	employeeSvc *employee.Service
	permitSvc   *permit.Service
}

// registerRoutes 路由表。
// 公开路由：健康检查、员工编号自动填充、许可提交、登录；
// 其余资源路由都在 JWT 鉴权组内，按角色（hr / admin）限权。
func (app *application) registerRoutes(r *gin.Engine) error {
	authCfg := app.cfg.Auth

	r.GET("/health-check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// 公开的员工自动填充接口（提交表单无需登录）
	r.GET("/api/employees/:employee_id", app.employees.Lookup)

	// 公开的许可提交接口（带限流）
	submit := r.Group("/")
	if app.cfg.RateLimit.Enabled {
		bucket := middleware.NewTokenBucket(app.cfg.RateLimit.Capacity, app.cfg.RateLimit.RefillRate)
		submit.Use(server.RateLimit(bucket))
	}
	submit.POST("/permits", app.permits.Submit)

	// 登录
	r.POST("/api/auth/login", app.users.Login)

	// 需要登录的路由
	authed := r.Group("/", server.JWTAuth(authCfg, app.log))

	// HR：许可审批与查看
	hr := authed.Group("/", server.RequireRoles(authCfg, "hr", "admin"))
	{
		hr.GET("/admin/hr", app.hrPanel)
		hr.GET("/permits", app.permits.List)
		hr.GET("/permits/:id", app.permits.Show)
		hr.PUT("/permits/:id", app.permits.Decide)
		hr.DELETE("/permits/:id", app.permits.Delete)
	}

	// 总务管理员：员工管理与导出
	admin := authed.Group("/", server.RequireRoles(authCfg, "admin"))
	{
		admin.GET("/admin/general", app.generalPanel)
		admin.POST("/admin/export", app.exports.Export)

		admin.GET("/employees", app.employees.List)
		admin.POST("/employees", app.employees.Create)
		admin.GET("/employees/:id", app.employees.Show)
		admin.PUT("/employees/:id", app.employees.Update)
		admin.DELETE("/employees/:id", app.employees.Delete)
	}

	return nil
}

// hrPanel HR 面板：最新许可列表（联员工）+ 状态统计。
func (app *application) hrPanel(c *gin.Context) {
	ctx := c.Request.Context()

	permits, total, err := app.permitSvc.List(ctx, permit.ListFilter{
		WithEmployee: true,
		Limit:        10,
	})
	if err != nil {
		server.RespondError(c, err)
		return
	}
	stats, err := app.permitSvc.Overview(ctx)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"permits": gin.H{"data": permits, "total": total},
		"stats":   stats,
	})
}

// generalPanel 总务面板：员工列表（含许可数量）+ 汇总统计。
func (app *application) generalPanel(c *gin.Context) {
	ctx := c.Request.Context()

	employees, total, err := app.employeeSvc.ListWithPermitCounts(ctx, 1, 15)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	empStats, err := app.employeeSvc.Overview(ctx)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	permitStats, err := app.permitSvc.Overview(ctx)
	if err != nil {
		server.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"employees": gin.H{"data": employees, "total": total},
		"stats": gin.H{
			"total_employees": empStats.TotalEmployees,
			"total_permits":   permitStats.Total,
			"pending_permits": permitStats.Pending,
			"departments":     empStats.Departments,
		},
	})
}
