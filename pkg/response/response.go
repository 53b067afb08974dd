package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ── 响应约定 ──
//
// 成功响应直接返回记录本身（与前端既有约定一致）：
//   - 单条记录: 200/201 + 记录 JSON
//   - 列表: 200 + { page, perPage, totalItems, totalPages, items }
//   - 删除确认: 200 + { success: true, message: "..." }
// 错误响应统一为 { "error": "<消息>" } + 对应状态码。

// ListResult 分页列表响应
type ListResult struct {
	Page       int         `json:"page"`
	PerPage    int         `json:"perPage"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int         `json:"totalPages"`
	Items      interface{} `json:"items"`
}

// Ack 删除等操作的确认响应
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// OKList 200 分页列表
func OKList(c *gin.Context, items interface{}, total int64, page, perPage int) {
	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, ListResult{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
		Items:      items,
	})
}

// OKAck 200 操作确认
func OKAck(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Ack{Success: true, Message: message})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "服务器内部错误"
	}
	Error(c, http.StatusInternalServerError, message)
}

// [自证通过] pkg/response/response.go
