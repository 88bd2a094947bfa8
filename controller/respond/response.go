package respond

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response unified API response envelope
type Response struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"ok"`
	Data    interface{} `json:"data,omitempty"`
}

// Success respond 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// SuccessWithMessage respond 200 with data and a message
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created respond 201 with data and an optional message
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// InvalidParam respond 400
func InvalidParam(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}

// Unauthorized respond 401
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{Success: false, Message: message})
}

// NotFound respond 404
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{Success: false, Message: message})
}

// ServiceUnavailable respond 503
func ServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, Response{Success: false, Message: message})
}

// ServerError respond 500
func ServerError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: message})
}

// TimingMiddleware log request duration
func TimingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
