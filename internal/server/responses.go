package server

import (
	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

func success(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{Status: statusSuccess, Data: data, Message: message})
}

func fail(c *gin.Context, code int, message string, errs ...string) {
	c.AbortWithStatusJSON(code, APIResponse{Status: statusError, Message: message, Errors: errs})
}
