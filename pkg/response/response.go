package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// ErrorItem 单条错误信息
// 对外契约：失败响应统一为 { "errors": [ { "message": "..." } ] }
type ErrorItem struct {
	Message string `json:"message"`
}

// ErrorBody 失败响应体
type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

// Success 成功响应（直接返回业务payload，不额外包一层envelope）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := bookService.CreateBook(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// 设计说明：
// 1. 业务错误码 → HTTP状态码的映射集中在这一处
// 2. 5xxxx错误不向客户端暴露内部细节（appErr.Err仅记录日志）
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	status := httpStatus(appErr.Code)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		// 服务端错误统一话术，内部原因只进日志
		message = "服务内部错误"
	}

	c.JSON(status, ErrorBody{
		Errors: []ErrorItem{{Message: message}},
	})
}

// ErrorWithMessage 自定义错误信息（保持errors数组的响应形状）
func ErrorWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{
		Errors: []ErrorItem{{Message: message}},
	})
}

// httpStatus 业务错误码 → HTTP状态码
func httpStatus(code int) int {
	switch code {
	case apperrors.ErrCodeInvalidQuery,
		apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeBindError,
		apperrors.ErrCodeBusinessError:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized,
		apperrors.ErrCodeInvalidToken,
		apperrors.ErrCodeTokenExpired:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeUserNotFound,
		apperrors.ErrCodeBookNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict,
		apperrors.ErrCodeDuplicateEntry:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
