// Package dto contains Data Transfer Objects for API responses
package dto

import (
	"time"

	"github.com/gin-gonic/gin"
)

// BaseResponse holds the fields shared by every response
type BaseResponse struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SuccessResponse wraps a successful payload
type SuccessResponse struct {
	BaseResponse
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse describes a failed request
type ErrorResponse struct {
	BaseResponse
	Error   string      `json:"error"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Pagination describes a window over a filtered collection
type Pagination struct {
	CurrentPage  int   `json:"current_page" example:"0"`
	PerPage      int   `json:"per_page" example:"25"`
	TotalPages   int   `json:"total_pages" example:"4"`
	TotalRecords int64 `json:"total_records" example:"90"`
	HasNext      bool  `json:"has_next" example:"true"`
	HasPrev      bool  `json:"has_prev" example:"false"`
}

// NewPagination computes the window for a zero-based page over total records
func NewPagination(page, perPage, total int) Pagination {
	p := Pagination{
		CurrentPage:  page,
		PerPage:      perPage,
		TotalRecords: int64(total),
	}
	if perPage > 0 {
		p.TotalPages = (total + perPage - 1) / perPage
		p.HasNext = (page+1)*perPage < total
	}
	p.HasPrev = page > 0
	return p
}

// HealthResponse is returned by the healthcheck
type HealthResponse struct {
	BaseResponse
	Status  string            `json:"status" example:"OK"`
	Service string            `json:"service" example:"calldesk-api"`
	Version string            `json:"version" example:"1.0.0"`
	Uptime  string            `json:"uptime,omitempty" example:"1h30m45s"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// AuthErrorResponse is returned when the agent token is missing or invalid
type AuthErrorResponse struct {
	BaseResponse
	Error   string `json:"error" example:"unauthorized"`
	Code    int    `json:"code" example:"401"`
	Message string `json:"message" example:"Invalid or expired agent token"`
}

// RateLimitErrorResponse is returned when a client exceeds its request window
type RateLimitErrorResponse struct {
	BaseResponse
	Error      string `json:"error" example:"rate_limit_exceeded"`
	Code       int    `json:"code" example:"429"`
	Message    string `json:"message" example:"Too many requests"`
	RetryAfter string `json:"retry_after" example:"60s"`
	Limit      int    `json:"limit" example:"100"`
}

// NewSuccessResponse builds a success response
func NewSuccessResponse(c *gin.Context, data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		BaseResponse: newBase(c, true),
		Data:         data,
		Message:      message,
	}
}

// NewErrorResponse builds an error response
func NewErrorResponse(c *gin.Context, code int, error string, message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		BaseResponse: newBase(c, false),
		Error:        error,
		Code:         code,
		Message:      message,
		Details:      details,
	}
}

// NewHealthResponse builds a health response
func NewHealthResponse(c *gin.Context, status, service, version, uptime string, checks map[string]string) HealthResponse {
	return HealthResponse{
		BaseResponse: newBase(c, status == "OK"),
		Status:       status,
		Service:      service,
		Version:      version,
		Uptime:       uptime,
		Checks:       checks,
	}
}

// NewAuthErrorResponse builds an authentication error response
func NewAuthErrorResponse(c *gin.Context, message string) AuthErrorResponse {
	return AuthErrorResponse{
		BaseResponse: newBase(c, false),
		Error:        "unauthorized",
		Code:         401,
		Message:      message,
	}
}

// NewRateLimitErrorResponse builds a rate limit response
func NewRateLimitErrorResponse(c *gin.Context, retryAfter string, limit int) RateLimitErrorResponse {
	return RateLimitErrorResponse{
		BaseResponse: newBase(c, false),
		Error:        "rate_limit_exceeded",
		Code:         429,
		Message:      "Too many requests",
		RetryAfter:   retryAfter,
		Limit:        limit,
	}
}

func newBase(c *gin.Context, success bool) BaseResponse {
	return BaseResponse{
		Success:   success,
		Timestamp: time.Now().UTC(),
		RequestID: getRequestID(c),
	}
}

// getRequestID extracts the request ID from the gin context
func getRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
