package utils

import "github.com/gin-gonic/gin"

func CurrentOperatorID(c *gin.Context) uint {
	v, _ := c.Get("operatorId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}
