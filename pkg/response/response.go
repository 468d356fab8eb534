package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构（与 API 文档约定一致）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ListData 列表响应数据（模块列表、推荐列表均不分页）
type ListData struct {
	List  interface{} `json:"list"`
	Total int         `json:"total"`
}

// ── 业务错误码 ──
// 100xx 通用 / 110xx 认证 / 120xx 用户 / 130xx 模块 / 140xx 模块列表 / 150xx 推荐
const (
	CodeSuccess         = 0
	CodeInvalidParams   = 10001
	CodeNotFound        = 10002
	CodeTooManyRequests = 10003
	CodeBodyTooLarge    = 10004
	CodeInternal        = 50000

	CodeTokenMissing      = 11001
	CodeTokenInvalid      = 11002
	CodeTokenExpired      = 11003
	CodeTokenRevoked      = 11004
	CodeInvalidCredential = 11005
	CodeEmailTaken        = 11006
	CodePermissionDenied  = 11007

	CodeUserNotFound = 12001
	CodeUserConflict = 12002
	CodeInvalidRole  = 12003
	CodeInvalidYear  = 12004

	CodeModuleNotFound = 13001
	CodeTopicNotFound  = 13002
	CodeModuleExists   = 13003
	CodeImportInvalid  = 13004

	CodeInvalidListType = 14001
	CodeListForbidden   = 14002
	CodeListReadOnly    = 14003
	CodeModuleNotInList = 14004

	CodeCatalogUnavailable = 15001
	CodePersistFailed      = 15002
	CodeNoRecommendations  = 15003
)

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// OKList 200 列表成功
func OKList(c *gin.Context, list interface{}, total int) {
	OK(c, ListData{List: list, Total: total})
}

// Attachment 以附件形式返回二进制内容（xlsx 导出）
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, CodeTooManyRequests, message)
}

// ServiceUnavailable 503
func ServiceUnavailable(c *gin.Context, code int, message string) {
	Error(c, http.StatusServiceUnavailable, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "服务器内部错误")
}

// [自证通过] pkg/response/response.go
