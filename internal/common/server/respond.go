package server

import (
	"net/http"

	"github.com/FleetGate/FleetGate/internal/common/errs"
	"github.com/gin-gonic/gin"
)

// RespondError 把领域错误映射为 HTTP 响应：
// - ValidationError -> 422 + 每字段错误信息
// - NotFoundError   -> 404
// - 其他            -> 500（不向外暴露内部细节）
func RespondError(c *gin.Context, err error) {
	if ve, ok := errs.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  ve.Fields,
		})
		return
	}
	if errs.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
