package handlers

import (
	"github.com/gin-gonic/gin"
)

// RespondData は {success: true, data} を返します。
func RespondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// RespondList は {success: true, count, data} を返します。
func RespondList[T any](c *gin.Context, status int, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(status, gin.H{"success": true, "count": len(items), "data": items})
}

// RespondMessage は {success: true, message} を返します。
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

// RespondError は {success: false, error} を返します。
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// AbortWithError は RespondError を返した上で後続のハンドラーを中断します。
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}
