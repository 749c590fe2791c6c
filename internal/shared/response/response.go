package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ErrorBody struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type ApiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    any             `json:"data,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func SuccessWithMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Code:    errorCode,
			Details: details,
		},
	})
}

// ErrorWithData is used when the failure carries a payload the client needs,
// e.g. the already-complete attendance record.
func ErrorWithData(c *gin.Context, status int, errorCode string, message string, data interface{}) {
	c.JSON(status, ApiEnvelope{
		Success: false,
		Message: message,
		Data:    data,
		Error:   &ErrorBody{Code: errorCode},
	})
}

// Paginate slices an already loaded list according to page/pageSize.
func Paginate[T any](items []T, page, pageSize int) ([]T, PaginationMeta) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	total := len(items)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return items[start:end], NewPaginationMeta(int64(total), page, pageSize)
}
